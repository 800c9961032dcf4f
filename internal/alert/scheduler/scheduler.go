package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	alertdomain "warranto-backend/internal/alert/domain"
	devicedomain "warranto-backend/internal/device/domain"
	"warranto-backend/internal/notification"
	warrantydomain "warranto-backend/internal/warranty/domain"
)

// ErrRunInProgress is returned when a trigger arrives while a run is still in flight
var ErrRunInProgress = errors.New("a notification check is already running")

// maxPushPerRun caps per-warranty push notifications per tenant per run to avoid spam
const maxPushPerRun = 3

// channelTimeout bounds each external channel call so one unresponsive
// provider cannot stall the whole run
const channelTimeout = 30 * time.Second

// SettingsStore is the settings access the scheduler needs
type SettingsStore interface {
	ListNotifiable() ([]alertdomain.TenantAlertProfile, error)
	UpdateLastNotificationSent(tenantID string, sentAt time.Time) error
}

// WarrantyStore is the warranty read access the scheduler needs
type WarrantyStore interface {
	FindByTenantID(tenantID string) ([]*warrantydomain.Warranty, error)
}

// DeviceTokenStore is the device token read access the scheduler needs
type DeviceTokenStore interface {
	GetTokensByTenantID(tenantID string) ([]devicedomain.DeviceToken, error)
}

// RunSummary reports what one scheduler run did
type RunSummary struct {
	TenantsProcessed int `json:"tenants_processed"`
	ChannelFailures  int `json:"channel_failures"`
}

// AlertScheduler recomputes expiring warranties for every notifiable tenant
// once a day and fans alerts out across the enabled channels. Only one run
// may be active at a time.
type AlertScheduler struct {
	settingsStore SettingsStore
	warrantyStore WarrantyStore
	deviceStore   DeviceTokenStore
	email         notification.EmailChannel
	push          notification.PushChannel

	hour     int
	minute   int
	running  atomic.Bool
	stopChan chan struct{}
	now      func() time.Time
}

// NewAlertScheduler creates a scheduler firing daily at notificationTime
// (HH:MM, 24-hour). A nil channel disables that channel globally.
func NewAlertScheduler(
	settingsStore SettingsStore,
	warrantyStore WarrantyStore,
	deviceStore DeviceTokenStore,
	email notification.EmailChannel,
	push notification.PushChannel,
	notificationTime string,
) *AlertScheduler {
	hour, minute, err := parseNotificationTime(notificationTime)
	if err != nil {
		log.Printf("[Scheduler] Invalid NOTIFICATION_TIME %q, falling back to 09:00: %v", notificationTime, err)
		hour, minute = 9, 0
	}

	return &AlertScheduler{
		settingsStore: settingsStore,
		warrantyStore: warrantyStore,
		deviceStore:   deviceStore,
		email:         email,
		push:          push,
		hour:          hour,
		minute:        minute,
		stopChan:      make(chan struct{}),
		now:           time.Now,
	}
}

// Start begins the daily trigger loop
func (s *AlertScheduler) Start() {
	log.Printf("[Scheduler] Starting notification scheduler (runs daily at %02d:%02d)", s.hour, s.minute)

	go func() {
		for {
			next := nextRunAfter(s.now(), s.hour, s.minute)
			timer := time.NewTimer(next.Sub(s.now()))

			select {
			case <-timer.C:
				log.Printf("[Scheduler] Triggered at %s", s.now().Format(time.RFC3339))
				if _, err := s.TriggerNow(context.Background()); errors.Is(err, ErrRunInProgress) {
					log.Println("[Scheduler] Previous run still in flight, skipping this trigger")
				}
			case <-s.stopChan:
				timer.Stop()
				log.Println("[Scheduler] Scheduler stopped")
				return
			}
		}
	}()
}

// Stop gracefully stops the daily trigger loop. An in-flight run completes.
func (s *AlertScheduler) Stop() {
	close(s.stopChan)
}

// TriggerNow runs one notification check immediately. It returns
// ErrRunInProgress if another run is still in flight.
func (s *AlertScheduler) TriggerNow(ctx context.Context) (*RunSummary, error) {
	if !s.running.CompareAndSwap(false, true) {
		return nil, ErrRunInProgress
	}
	defer s.running.Store(false)

	return s.checkAndNotify(ctx)
}

// checkAndNotify is one full run: classify every notifiable tenant's
// warranties and dispatch alerts for those expiring soon.
func (s *AlertScheduler) checkAndNotify(ctx context.Context) (*RunSummary, error) {
	log.Println("[Scheduler] Checking for expiring warranties...")

	profiles, err := s.settingsStore.ListNotifiable()
	if err != nil {
		log.Printf("[Scheduler] Error loading notifiable tenants, aborting run: %v", err)
		return nil, fmt.Errorf("failed to load notifiable tenants: %w", err)
	}

	log.Printf("[Scheduler] Found %d tenants with notifications enabled", len(profiles))

	summary := &RunSummary{}
	for _, profile := range profiles {
		// The store already filters these out; a tenant with no channel
		// enabled must cause zero further reads either way.
		if !profile.EmailEnabled && !profile.PushEnabled {
			continue
		}

		summary.TenantsProcessed++
		if err := s.processTenant(ctx, profile, summary); err != nil {
			log.Printf("[Scheduler] Error processing tenant %s: %v", profile.TenantID, err)
		}
	}

	log.Println("[Scheduler] Notification check completed")
	return summary, nil
}

func (s *AlertScheduler) processTenant(ctx context.Context, profile alertdomain.TenantAlertProfile, summary *RunSummary) error {
	warranties, err := s.warrantyStore.FindByTenantID(profile.TenantID)
	if err != nil {
		return fmt.Errorf("failed to load warranties: %w", err)
	}

	expiring := warrantydomain.CollectExpiring(warranties, profile.AlertThreshold, s.now())
	if len(expiring) == 0 {
		log.Printf("[Scheduler] No expiring warranties for tenant %s", profile.TenantID)
		return nil
	}

	log.Printf("[Scheduler] Found %d expiring warranties for tenant %s", len(expiring), profile.TenantID)

	if profile.EmailEnabled {
		summary.ChannelFailures += s.dispatchEmail(ctx, profile, expiring)
	}
	if profile.PushEnabled {
		summary.ChannelFailures += s.dispatchPush(ctx, profile, expiring)
	}

	// Best effort: record the attempt even when a channel failed, so a
	// provider outage does not turn into a resend storm on every run.
	if err := s.settingsStore.UpdateLastNotificationSent(profile.TenantID, s.now()); err != nil {
		log.Printf("[Scheduler] Error updating last notification timestamp for tenant %s: %v", profile.TenantID, err)
	}

	return nil
}

// dispatchEmail sends the aggregated digest; returns the failure count (0 or 1)
func (s *AlertScheduler) dispatchEmail(ctx context.Context, profile alertdomain.TenantAlertProfile, expiring []warrantydomain.ExpiringWarranty) int {
	if s.email == nil {
		log.Println("[Scheduler] Email channel not configured, skipping email")
		return 0
	}
	if profile.Email == "" {
		log.Printf("[Scheduler] Tenant %s has no contact email, skipping email", profile.TenantID)
		return 0
	}

	sendCtx, cancel := context.WithTimeout(ctx, channelTimeout)
	defer cancel()

	if err := s.email.SendExpiryAlert(sendCtx, profile.Email, expiring, profile.AlertThreshold); err != nil {
		log.Printf("[Scheduler] Failed to send email to tenant %s: %v", profile.TenantID, err)
		return 1
	}

	log.Printf("[Scheduler] Email sent to tenant %s (%d warranties)", profile.TenantID, len(expiring))
	return 0
}

// dispatchPush multicasts one push per expiring warranty, capped to the
// first maxPushPerRun by sorted order; returns the failure count
func (s *AlertScheduler) dispatchPush(ctx context.Context, profile alertdomain.TenantAlertProfile, expiring []warrantydomain.ExpiringWarranty) int {
	if s.push == nil {
		log.Println("[Scheduler] Push channel not configured, skipping push")
		return 0
	}

	tokens, err := s.deviceStore.GetTokensByTenantID(profile.TenantID)
	if err != nil {
		log.Printf("[Scheduler] Error loading device tokens for tenant %s: %v", profile.TenantID, err)
		return 1
	}
	if len(tokens) == 0 {
		log.Printf("[Scheduler] No device tokens for tenant %s, skipping push", profile.TenantID)
		return 0
	}

	tokenStrings := make([]string, 0, len(tokens))
	for _, t := range tokens {
		tokenStrings = append(tokenStrings, t.Token)
	}

	limit := len(expiring)
	if limit > maxPushPerRun {
		limit = maxPushPerRun
	}

	failures := 0
	for _, item := range expiring[:limit] {
		sendCtx, cancel := context.WithTimeout(ctx, channelTimeout)
		failedTokens, err := s.push.SendExpiryAlert(sendCtx, tokenStrings, item)
		cancel()

		if err != nil {
			log.Printf("[Scheduler] Failed to send push for %s to tenant %s: %v", item.ProductName, profile.TenantID, err)
			failures++
			continue
		}
		if len(failedTokens) > 0 {
			// Invalid tokens are surfaced but not deleted; token lifecycle
			// belongs to the registering client.
			log.Printf("[Scheduler] Push for %s rejected by %d device(s) of tenant %s", item.ProductName, len(failedTokens), profile.TenantID)
		}
		log.Printf("[Scheduler] Push sent for %s to %d device(s)", item.ProductName, len(tokenStrings)-len(failedTokens))
	}

	return failures
}

// nextRunAfter returns the next occurrence of hour:minute strictly after now
func nextRunAfter(now time.Time, hour, minute int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

func parseNotificationTime(value string) (hour, minute int, err error) {
	parts := strings.SplitN(strings.TrimSpace(value), ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected HH:MM, got %q", value)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid hour in %q", value)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid minute in %q", value)
	}
	return hour, minute, nil
}
