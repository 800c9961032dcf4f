package repository

import (
	"warranto-backend/internal/warranty/domain"

	"gorm.io/gorm"
)

// WarrantyRepository defines the read access this service needs to the
// warranty store. Writes belong to the external CRUD API.
type WarrantyRepository interface {
	// FindByTenantID returns all warranties owned by one tenant
	FindByTenantID(tenantID string) ([]*domain.Warranty, error)
}

// gormWarrantyRepository implements WarrantyRepository using GORM
type gormWarrantyRepository struct {
	db *gorm.DB
}

// NewGormWarrantyRepository creates a new GORM-based WarrantyRepository
func NewGormWarrantyRepository(db *gorm.DB) WarrantyRepository {
	return &gormWarrantyRepository{db: db}
}

func (r *gormWarrantyRepository) FindByTenantID(tenantID string) ([]*domain.Warranty, error) {
	var warranties []*domain.Warranty
	err := r.db.Where("tenant_id = ?", tenantID).Order("created_at ASC").Find(&warranties).Error
	if err != nil {
		return nil, err
	}
	return warranties, nil
}
