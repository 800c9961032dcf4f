package domain

import "time"

// WarrantyStatus represents the lifecycle state of a warranty relative to today
type WarrantyStatus string

const (
	StatusActive       WarrantyStatus = "active"
	StatusExpiringSoon WarrantyStatus = "expiring-soon"
	StatusExpired      WarrantyStatus = "expired"
	StatusUnknown      WarrantyStatus = "unknown"
)

// Warranty represents a tracked product warranty. Rows are created by the
// external CRUD API; this service only reads them.
type Warranty struct {
	ID             string    `json:"id" gorm:"primaryKey"`
	TenantID       string    `json:"tenant_id" gorm:"index;not null"`
	ProductName    string    `json:"product_name" gorm:"not null"`
	Retailer       string    `json:"retailer,omitempty"`
	PurchaseDate   string    `json:"purchase_date"`             // YYYY-MM-DD
	WarrantyPeriod string    `json:"warranty_period,omitempty"` // free text, e.g. "1 year", "90 days"
	ExpiryDate     string    `json:"expiry_date,omitempty"`     // YYYY-MM-DD, authoritative when present
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ExpiringWarranty is a warranty that classified as expiring-soon,
// carrying its computed days-remaining and resolved expiry date.
type ExpiringWarranty struct {
	Warranty
	DaysRemaining      int       `json:"days_remaining"`
	ResolvedExpiryDate time.Time `json:"resolved_expiry_date"`
}
