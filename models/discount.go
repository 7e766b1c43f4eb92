package models

import "time"

// Discount types
const (
	DiscountPercentage = "percentage"
	DiscountFixed      = "fixed"
)

// Discount is a promotional discount attached to a food item. It is
// applied automatically at pricing time while active and inside its
// optional validity window.
type Discount struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	TenantID   uint       `gorm:"not null;index" json:"tenant_id"`
	FoodItemID uint       `gorm:"not null;index" json:"food_item_id"`
	Name       string     `gorm:"type:varchar(255)" json:"name"`
	Type       string     `gorm:"type:varchar(20);not null" json:"type"` // percentage or fixed
	Value      float64    `gorm:"type:decimal(10,2);not null" json:"value"`
	IsActive   bool       `gorm:"not null" json:"is_active"`
	StartDate  *time.Time `json:"start_date,omitempty"`
	EndDate    *time.Time `json:"end_date,omitempty"`
	CreatedAt  time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"not null" json:"updated_at"`
}

// ActiveAt reports whether the discount applies at the given time.
// Window ends are inclusive; a missing end leaves that side open.
func (d *Discount) ActiveAt(now time.Time) bool {
	if !d.IsActive {
		return false
	}
	if d.StartDate != nil && now.Before(*d.StartDate) {
		return false
	}
	if d.EndDate != nil && now.After(*d.EndDate) {
		return false
	}
	return true
}
