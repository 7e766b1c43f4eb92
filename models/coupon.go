package models

import (
	"time"

	"gorm.io/gorm"
)

// Coupon types
const (
	CouponPercentage = "percentage"
	CouponFixed      = "fixed"
)

type Coupon struct {
	ID                uint           `gorm:"primaryKey" json:"id"`
	TenantID          uint           `gorm:"not null;uniqueIndex:idx_tenant_code" json:"tenant_id"`
	Code              string         `gorm:"type:varchar(50);not null;uniqueIndex:idx_tenant_code" json:"code"`
	Type              string         `gorm:"type:varchar(20);not null" json:"type"` // percentage or fixed
	Value             float64        `gorm:"type:decimal(10,2);not null" json:"value"`
	MinOrderAmount    float64        `gorm:"type:decimal(10,2);not null;default:0.00" json:"min_order_amount"`
	MaxDiscountAmount float64        `gorm:"type:decimal(10,2);not null;default:0.00" json:"max_discount_amount"` // cap for percentage coupons, 0 = uncapped
	UsageLimit        int            `gorm:"not null;default:0" json:"usage_limit"`                               // 0 = unlimited
	UsedCount         int            `gorm:"not null;default:0" json:"used_count"`
	OncePerCustomer   bool           `gorm:"not null" json:"once_per_customer"`
	IsActive          bool           `gorm:"not null" json:"is_active"`
	StartDate         *time.Time     `json:"start_date,omitempty"`
	EndDate           *time.Time     `json:"end_date,omitempty"`
	CreatedAt         time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt         time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

// CouponUsage records one redemption of a coupon against an order.
type CouponUsage struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	TenantID   uint      `gorm:"not null;index" json:"tenant_id"`
	CouponID   uint      `gorm:"not null;index" json:"coupon_id"`
	OrderID    uint      `gorm:"not null;index" json:"order_id"`
	CustomerID *uint     `gorm:"index" json:"customer_id,omitempty"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
}
