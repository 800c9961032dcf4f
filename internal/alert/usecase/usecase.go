package usecase

import (
	alertdomain "warranto-backend/internal/alert/domain"
	devicedomain "warranto-backend/internal/device/domain"
	warrantydomain "warranto-backend/internal/warranty/domain"
)

// AlertUsecase defines the interface for notification preference and
// warranty status business logic
type AlertUsecase interface {
	// GetSettings returns a tenant's notification settings, creating defaults on first read
	GetSettings(tenantID string) (*alertdomain.NotificationSettings, error)

	// UpdateSettings applies validated settings changes
	UpdateSettings(tenantID string, req SettingsUpdateRequest) (*alertdomain.NotificationSettings, error)

	// RegisterDeviceToken upserts a push-capable device endpoint for a tenant
	RegisterDeviceToken(tenantID, token, platform string) error

	// ListDeviceTokens returns a tenant's registered devices, most recently used first
	ListDeviceTokens(tenantID string) ([]devicedomain.DeviceToken, error)

	// ListExpiring returns the tenant's warranties currently classified as
	// expiring soon, sorted ascending by days remaining
	ListExpiring(tenantID string) ([]warrantydomain.ExpiringWarranty, error)
}

// SettingsUpdateRequest represents the fields a tenant may change
type SettingsUpdateRequest struct {
	EmailEnabled   *bool `json:"email_enabled,omitempty"`
	PushEnabled    *bool `json:"push_enabled,omitempty"`
	AlertThreshold *int  `json:"alert_threshold,omitempty"`
}
