package domain

import "time"

// Tenant is the owner of a set of warranties and notification settings.
// Rows are created by the external account/auth flow; this service reads
// the contact email for the alert fan-out.
type Tenant struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email,omitempty" gorm:"index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
