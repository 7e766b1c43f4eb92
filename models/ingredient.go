package models

import "time"

type Ingredient struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	TenantID       uint      `gorm:"not null;index" json:"tenant_id"`
	Name           string    `gorm:"type:varchar(255);not null" json:"name"`
	Unit           string    `gorm:"type:varchar(50);not null" json:"unit"` // g, ml, pcs, ...
	Stock          float64   `gorm:"type:decimal(12,3);not null;default:0" json:"stock"`
	AlertThreshold float64   `gorm:"type:decimal(12,3);not null;default:0" json:"alert_threshold"`
	CreatedAt      time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time `gorm:"not null" json:"updated_at"`
}

// RecipeItem maps a food item to the ingredient quantity one unit consumes.
type RecipeItem struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	FoodItemID   uint       `gorm:"not null;index" json:"food_item_id"`
	IngredientID uint       `gorm:"not null;index" json:"ingredient_id"`
	Ingredient   Ingredient `gorm:"foreignKey:IngredientID" json:"ingredient"`
	Quantity     float64    `gorm:"type:decimal(12,3);not null" json:"quantity"`
	CreatedAt    time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"not null" json:"updated_at"`
}

// Stock movement reasons
const (
	StockReasonOrder      = "order"
	StockReasonAdjustment = "adjustment"
	StockReasonRestock    = "restock"
)

// StockMovement is the audit trail of every stock change. Order
// deductions carry the order id so a deduction can be traced back.
type StockMovement struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	TenantID     uint      `gorm:"not null;index" json:"tenant_id"`
	IngredientID uint      `gorm:"not null;index" json:"ingredient_id"`
	Change       float64   `gorm:"type:decimal(12,3);not null" json:"change"` // negative = consumption
	Reason       string    `gorm:"type:varchar(50);not null" json:"reason"`
	OrderID      *uint     `gorm:"index" json:"order_id,omitempty"`
	ActorID      *uint     `json:"actor_id,omitempty"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
}
