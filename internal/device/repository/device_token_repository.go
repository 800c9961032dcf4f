package repository

import (
	"time"

	devicedomain "warranto-backend/internal/device/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DeviceTokenRepository defines the interface for device token operations
type DeviceTokenRepository interface {
	// SaveToken registers or refreshes a device token for a tenant (atomic upsert)
	SaveToken(tenantID, token, platform string) error

	// GetTokensByTenantID returns a tenant's tokens, most recently used first
	GetTokensByTenantID(tenantID string) ([]devicedomain.DeviceToken, error)
}

// deviceTokenRepository implements DeviceTokenRepository interface
type deviceTokenRepository struct {
	db *gorm.DB
}

// NewDeviceTokenRepository creates a new instance of deviceTokenRepository
func NewDeviceTokenRepository(db *gorm.DB) DeviceTokenRepository {
	return &deviceTokenRepository{
		db: db,
	}
}

// SaveToken saves or updates a device token (atomic upsert keyed on token).
// Re-registering an existing token refreshes tenant, platform and last_used_at
// in place rather than inserting a duplicate row.
func (r *deviceTokenRepository) SaveToken(tenantID, token, platform string) error {
	deviceToken := &devicedomain.DeviceToken{
		ID:         uuid.New().String(),
		TenantID:   tenantID,
		Token:      token,
		Platform:   platform,
		CreatedAt:  time.Now(),
		LastUsedAt: time.Now(),
	}

	// Atomic upsert: INSERT ... ON CONFLICT (token) DO UPDATE
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "token"}},
		DoUpdates: clause.AssignmentColumns([]string{"tenant_id", "platform", "last_used_at"}),
	}).Create(deviceToken).Error
}

// GetTokensByTenantID returns all device tokens for a tenant ordered by recency
func (r *deviceTokenRepository) GetTokensByTenantID(tenantID string) ([]devicedomain.DeviceToken, error) {
	var tokens []devicedomain.DeviceToken
	err := r.db.Where("tenant_id = ?", tenantID).Order("last_used_at DESC").Find(&tokens).Error
	if err != nil {
		return nil, err
	}
	return tokens, nil
}
