package models

import "time"

// Settings holds the per-tenant runtime configuration the order
// pipeline reads: tax switch, delivery charge defaults and currency.
// One row per tenant, created lazily with defaults.
type Settings struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	TenantID uint `gorm:"not null;uniqueIndex" json:"tenant_id"`

	EnableTaxSystem bool    `gorm:"not null;default:false" json:"enable_tax_system"`
	DefaultTaxRate  float64 `gorm:"type:decimal(5,2);not null;default:0.00" json:"default_tax_rate"` // percent

	DefaultDeliveryCharge float64 `gorm:"type:decimal(10,2);not null;default:0.00" json:"default_delivery_charge"`
	FreeDeliveryThreshold float64 `gorm:"type:decimal(10,2);not null;default:0.00" json:"free_delivery_threshold"` // 0 = never free

	CurrencyCode   string `gorm:"type:varchar(10);not null;default:'USD'" json:"currency_code"`
	CurrencySymbol string `gorm:"type:varchar(10);not null;default:'$'" json:"currency_symbol"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// TaxRule overrides the default tax rate for one category. A rule
// without a category applies tenant-wide and shadows the default.
type TaxRule struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	TenantID   uint      `gorm:"not null;index" json:"tenant_id"`
	CategoryID *uint     `gorm:"index" json:"category_id,omitempty"`
	Name       string    `gorm:"type:varchar(100)" json:"name"`
	Rate       float64   `gorm:"type:decimal(5,2);not null" json:"rate"` // percent
	IsActive   bool      `gorm:"not null" json:"is_active"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null" json:"updated_at"`
}
