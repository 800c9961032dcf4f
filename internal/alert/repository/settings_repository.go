package repository

import (
	"errors"
	"time"

	alertdomain "warranto-backend/internal/alert/domain"
	warrantydomain "warranto-backend/internal/warranty/domain"

	"gorm.io/gorm"
)

// NotificationSettingsRepository defines the interface for notification settings operations
type NotificationSettingsRepository interface {
	// GetByTenantID returns a tenant's settings, creating the defaults row on first read
	GetByTenantID(tenantID string) (*alertdomain.NotificationSettings, error)

	// Update persists changed settings
	Update(settings *alertdomain.NotificationSettings) error

	// ListNotifiable returns the alert profiles of every tenant with at
	// least one channel enabled; tenants with no channel enabled are not returned
	ListNotifiable() ([]alertdomain.TenantAlertProfile, error)

	// UpdateLastNotificationSent records when a tenant was last notified (last-write-wins)
	UpdateLastNotificationSent(tenantID string, sentAt time.Time) error
}

// notificationSettingsRepository implements NotificationSettingsRepository using GORM
type notificationSettingsRepository struct {
	db *gorm.DB
}

// NewNotificationSettingsRepository creates a new instance of notificationSettingsRepository
func NewNotificationSettingsRepository(db *gorm.DB) NotificationSettingsRepository {
	return &notificationSettingsRepository{
		db: db,
	}
}

func (r *notificationSettingsRepository) GetByTenantID(tenantID string) (*alertdomain.NotificationSettings, error) {
	var settings alertdomain.NotificationSettings
	err := r.db.Where("tenant_id = ?", tenantID).First(&settings).Error
	if err == nil {
		return &settings, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// First read for this tenant: create the defaults row
	settings = alertdomain.NotificationSettings{
		TenantID:       tenantID,
		EmailEnabled:   true,
		PushEnabled:    false,
		AlertThreshold: warrantydomain.DefaultAlertThreshold,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
	if err := r.db.Create(&settings).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *notificationSettingsRepository) Update(settings *alertdomain.NotificationSettings) error {
	settings.UpdatedAt = time.Now()
	return r.db.Save(settings).Error
}

func (r *notificationSettingsRepository) ListNotifiable() ([]alertdomain.TenantAlertProfile, error) {
	var profiles []alertdomain.TenantAlertProfile
	err := r.db.Table("notification_settings").
		Select("notification_settings.tenant_id, tenants.email, notification_settings.email_enabled, notification_settings.push_enabled, notification_settings.alert_threshold, notification_settings.last_notification_sent").
		Joins("LEFT JOIN tenants ON tenants.id = notification_settings.tenant_id").
		Where("notification_settings.email_enabled = ? OR notification_settings.push_enabled = ?", true, true).
		Scan(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *notificationSettingsRepository) UpdateLastNotificationSent(tenantID string, sentAt time.Time) error {
	return r.db.Model(&alertdomain.NotificationSettings{}).
		Where("tenant_id = ?", tenantID).
		Updates(map[string]interface{}{
			"last_notification_sent": sentAt,
			"updated_at":             time.Now(),
		}).Error
}
