package models

import (
	"time"

	"gorm.io/gorm"
)

type FoodItem struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	TenantID    uint           `gorm:"not null;index" json:"tenant_id"`
	CategoryID  uint           `gorm:"not null;index" json:"category_id"`
	Category    Category       `gorm:"foreignKey:CategoryID" json:"category"`
	Name        string         `gorm:"type:varchar(255);not null" json:"name"`
	Price       float64        `gorm:"type:decimal(10,2);not null" json:"price"`
	Description string         `gorm:"type:text" json:"description"`
	ImageURL    *string        `gorm:"type:varchar(255)" json:"image_url,omitempty"`
	IsActive    bool           `gorm:"not null" json:"is_active"`
	Variations  []Variation    `gorm:"foreignKey:FoodItemID" json:"variations,omitempty"`
	AddOns      []AddOn        `gorm:"foreignKey:FoodItemID" json:"add_ons,omitempty"`
	Discounts   []Discount     `gorm:"foreignKey:FoodItemID" json:"discounts,omitempty"`
	Recipe      []RecipeItem   `gorm:"foreignKey:FoodItemID" json:"recipe,omitempty"`
	CreatedAt   time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// Variation adjusts the base price of a food item (e.g. size Large +2.00).
type Variation struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	FoodItemID      uint      `gorm:"not null;index" json:"food_item_id"`
	Name            string    `gorm:"type:varchar(100);not null" json:"name"`
	PriceAdjustment float64   `gorm:"type:decimal(10,2);not null;default:0.00" json:"price_adjustment"`
	CreatedAt       time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time `gorm:"not null" json:"updated_at"`
}

type AddOn struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FoodItemID uint      `gorm:"not null;index" json:"food_item_id"`
	Name       string    `gorm:"type:varchar(100);not null" json:"name"`
	Price      float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null" json:"updated_at"`
}
