package domain

import "time"

// DeviceToken represents a push-capable device endpoint registered by a
// tenant's client. Tokens are upserted on registration and never deleted
// by this service; lifecycle is owned by the registering client.
type DeviceToken struct {
	ID         string    `json:"id" gorm:"primaryKey"`
	TenantID   string    `json:"tenant_id" gorm:"index;not null"`
	Token      string    `json:"-" gorm:"uniqueIndex;not null"` // Don't expose token in JSON
	Platform   string    `json:"platform"`                      // ios, android, web
	CreatedAt  time.Time `json:"created_at"`
	LastUsedAt time.Time `json:"last_used_at"`
}
