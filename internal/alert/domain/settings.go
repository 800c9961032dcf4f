package domain

import "time"

// NotificationSettings holds a tenant's alert preferences. One row per
// tenant; last_notification_sent is the only field this service writes
// outside the settings API.
type NotificationSettings struct {
	TenantID             string     `json:"tenant_id" gorm:"primaryKey"`
	EmailEnabled         bool       `json:"email_enabled" gorm:"default:true"`
	PushEnabled          bool       `json:"push_enabled" gorm:"default:false"`
	AlertThreshold       int        `json:"alert_threshold" gorm:"default:30"` // days before expiry
	LastNotificationSent *time.Time `json:"last_notification_sent,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

// TenantAlertProfile is the joined read model the scheduler iterates: a
// tenant's contact email together with their notification settings.
type TenantAlertProfile struct {
	TenantID             string     `json:"tenant_id"`
	Email                string     `json:"email,omitempty"`
	EmailEnabled         bool       `json:"email_enabled"`
	PushEnabled          bool       `json:"push_enabled"`
	AlertThreshold       int        `json:"alert_threshold"`
	LastNotificationSent *time.Time `json:"last_notification_sent,omitempty"`
}
