package usecase

import (
	"errors"
	"fmt"
	"time"

	alertdomain "warranto-backend/internal/alert/domain"
	alertrepo "warranto-backend/internal/alert/repository"
	devicedomain "warranto-backend/internal/device/domain"
	devicerepo "warranto-backend/internal/device/repository"
	warrantydomain "warranto-backend/internal/warranty/domain"
	warrantyrepo "warranto-backend/internal/warranty/repository"
)

var (
	ErrInvalidThreshold = fmt.Errorf("alert threshold must be between %d and %d days",
		warrantydomain.MinAlertThreshold, warrantydomain.MaxAlertThreshold)
	ErrMissingToken    = errors.New("device token is required")
	ErrMissingTenantID = errors.New("tenant id is required")
)

// alertUsecase implements AlertUsecase interface
type alertUsecase struct {
	settingsRepo alertrepo.NotificationSettingsRepository
	deviceRepo   devicerepo.DeviceTokenRepository
	warrantyRepo warrantyrepo.WarrantyRepository
}

// NewAlertUsecase creates a new instance of alertUsecase
func NewAlertUsecase(
	settingsRepo alertrepo.NotificationSettingsRepository,
	deviceRepo devicerepo.DeviceTokenRepository,
	warrantyRepo warrantyrepo.WarrantyRepository,
) AlertUsecase {
	return &alertUsecase{
		settingsRepo: settingsRepo,
		deviceRepo:   deviceRepo,
		warrantyRepo: warrantyRepo,
	}
}

func (u *alertUsecase) GetSettings(tenantID string) (*alertdomain.NotificationSettings, error) {
	if tenantID == "" {
		return nil, ErrMissingTenantID
	}
	return u.settingsRepo.GetByTenantID(tenantID)
}

func (u *alertUsecase) UpdateSettings(tenantID string, req SettingsUpdateRequest) (*alertdomain.NotificationSettings, error) {
	settings, err := u.GetSettings(tenantID)
	if err != nil {
		return nil, err
	}

	if req.AlertThreshold != nil {
		if *req.AlertThreshold < warrantydomain.MinAlertThreshold || *req.AlertThreshold > warrantydomain.MaxAlertThreshold {
			return nil, ErrInvalidThreshold
		}
		settings.AlertThreshold = *req.AlertThreshold
	}
	if req.EmailEnabled != nil {
		settings.EmailEnabled = *req.EmailEnabled
	}
	if req.PushEnabled != nil {
		settings.PushEnabled = *req.PushEnabled
	}

	if err := u.settingsRepo.Update(settings); err != nil {
		return nil, err
	}
	return settings, nil
}

func (u *alertUsecase) RegisterDeviceToken(tenantID, token, platform string) error {
	if tenantID == "" {
		return ErrMissingTenantID
	}
	if token == "" {
		return ErrMissingToken
	}
	return u.deviceRepo.SaveToken(tenantID, token, platform)
}

func (u *alertUsecase) ListDeviceTokens(tenantID string) ([]devicedomain.DeviceToken, error) {
	if tenantID == "" {
		return nil, ErrMissingTenantID
	}
	return u.deviceRepo.GetTokensByTenantID(tenantID)
}

// ListExpiring runs the same classification the scheduler uses, so the
// presentation layer can never disagree with what got alerted.
func (u *alertUsecase) ListExpiring(tenantID string) ([]warrantydomain.ExpiringWarranty, error) {
	if tenantID == "" {
		return nil, ErrMissingTenantID
	}

	settings, err := u.settingsRepo.GetByTenantID(tenantID)
	if err != nil {
		return nil, err
	}

	warranties, err := u.warrantyRepo.FindByTenantID(tenantID)
	if err != nil {
		return nil, err
	}

	return warrantydomain.CollectExpiring(warranties, settings.AlertThreshold, time.Now()), nil
}
