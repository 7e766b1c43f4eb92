package services

import (
	"gorm.io/gorm"

	"github.com/yudharma/resto-pos/models"
)

// TaxService implements TaxProvider: per-category rate overrides with
// the tenant default rate as fallback.
type TaxService struct {
	db       *gorm.DB
	settings SettingsProvider
}

func NewTaxService(db *gorm.DB, settings SettingsProvider) *TaxService {
	return &TaxService{db: db, settings: settings}
}

// CalculateTaxForOrder taxes each line at its category rate, scaled so
// the bases sum to the discounted taxable amount, then adds delivery and
// service charges at the default rate. serviceCharge is always zero
// today; the parameter is reserved.
func (s *TaxService) CalculateTaxForOrder(tenantID uint, lines []TaxLine, taxableAmount, deliveryCharge, serviceCharge float64) (float64, error) {
	settings, err := s.settings.GetSettings(tenantID)
	if err != nil {
		return 0, err
	}
	defaultRate := settings.DefaultTaxRate

	var rules []models.TaxRule
	if err := s.db.Where("tenant_id = ? AND is_active = ?", tenantID, true).Find(&rules).Error; err != nil {
		return 0, err
	}

	categoryRates := make(map[uint]float64)
	for _, rule := range rules {
		if rule.CategoryID != nil {
			categoryRates[*rule.CategoryID] = rule.Rate
		} else {
			// Tenant-wide rule shadows the settings default.
			defaultRate = rule.Rate
		}
	}

	var lineTotal float64
	for _, line := range lines {
		lineTotal += line.Subtotal
	}

	// Discounts are spread proportionally over the lines so that the
	// taxed bases sum exactly to the taxable amount.
	scale := 0.0
	if lineTotal > 0 {
		scale = taxableAmount / lineTotal
	}

	var tax float64
	for _, line := range lines {
		rate, ok := categoryRates[line.CategoryID]
		if !ok {
			rate = defaultRate
		}
		tax += line.Subtotal * scale * rate / 100
	}

	tax += (deliveryCharge + serviceCharge) * defaultRate / 100

	return round2(tax), nil
}
