package models

import "time"

type OrderItem struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	OrderID uint `gorm:"not null;index" json:"order_id"`
	// Omitting Order field from JSON to avoid recursive nesting
	Order          Order            `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	FoodItemID     uint             `gorm:"not null;index" json:"food_item_id"`
	FoodItem       FoodItem         `gorm:"foreignKey:FoodItemID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"food_item"`
	VariationID    *uint            `gorm:"index" json:"variation_id,omitempty"`
	Variation      *Variation       `gorm:"foreignKey:VariationID" json:"variation,omitempty"`
	Quantity       int              `gorm:"not null" json:"quantity"`
	UnitPrice      float64          `gorm:"type:decimal(10,2);not null" json:"unit_price"` // base + variation + add-ons, at order time
	DiscountAmount float64          `gorm:"type:decimal(10,2);not null;default:0.00" json:"discount_amount"`
	TaxAmount      float64          `gorm:"type:decimal(10,2);not null;default:0.00" json:"tax_amount"`
	Subtotal       float64          `gorm:"type:decimal(10,2);not null" json:"subtotal"`
	Notes          string           `gorm:"type:text" json:"notes"`
	AddOns         []OrderItemAddOn `gorm:"foreignKey:OrderItemID" json:"add_ons,omitempty"`
	CreatedAt      time.Time        `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time        `gorm:"not null" json:"updated_at"`
}

// OrderItemAddOn snapshots an add-on at order time; the price is never
// re-read from the catalog afterwards.
type OrderItemAddOn struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	OrderItemID uint      `gorm:"not null;index" json:"order_item_id"`
	AddOnID     uint      `gorm:"not null;index" json:"add_on_id"`
	AddOn       AddOn     `gorm:"foreignKey:AddOnID" json:"add_on"`
	Quantity    int       `gorm:"not null;default:1" json:"quantity"`
	UnitPrice   float64   `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
}
