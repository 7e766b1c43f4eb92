package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yudharma/resto-pos/models"
)

// SettingsService implements SettingsProvider with lazily created
// per-tenant defaults.
type SettingsService struct {
	db *gorm.DB
}

func NewSettingsService(db *gorm.DB) *SettingsService {
	return &SettingsService{db: db}
}

// GetSettings returns the tenant's settings row, creating it with
// defaults on first access.
func (s *SettingsService) GetSettings(tenantID uint) (*models.Settings, error) {
	var settings models.Settings
	err := s.db.Where("tenant_id = ?", tenantID).First(&settings).Error
	if err == nil {
		return &settings, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	settings = models.Settings{
		TenantID:       tenantID,
		CurrencyCode:   "USD",
		CurrencySymbol: "$",
	}
	if err := s.db.Create(&settings).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

// UpdateSettings overwrites the tenant's configurable fields.
func (s *SettingsService) UpdateSettings(tenantID uint, updated *models.Settings) (*models.Settings, error) {
	settings, err := s.GetSettings(tenantID)
	if err != nil {
		return nil, err
	}

	settings.EnableTaxSystem = updated.EnableTaxSystem
	settings.DefaultTaxRate = updated.DefaultTaxRate
	settings.DefaultDeliveryCharge = updated.DefaultDeliveryCharge
	settings.FreeDeliveryThreshold = updated.FreeDeliveryThreshold
	if updated.CurrencyCode != "" {
		settings.CurrencyCode = updated.CurrencyCode
	}
	if updated.CurrencySymbol != "" {
		settings.CurrencySymbol = updated.CurrencySymbol
	}

	if err := s.db.Save(settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}
