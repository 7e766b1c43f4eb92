package models

import "time"

type Customer struct {
	ID            uint              `gorm:"primaryKey" json:"id"`
	TenantID      uint              `gorm:"not null;index" json:"tenant_id"`
	Name          string            `gorm:"type:varchar(255);not null" json:"name"`
	Phone         string            `gorm:"type:varchar(50)" json:"phone"`
	Email         string            `gorm:"type:varchar(255)" json:"email"`
	TotalOrders   int               `gorm:"not null;default:0" json:"total_orders"`
	TotalSpent    float64           `gorm:"type:decimal(12,2);not null;default:0.00" json:"total_spent"`
	LastOrderDate *time.Time        `json:"last_order_date,omitempty"`
	Addresses     []CustomerAddress `gorm:"foreignKey:CustomerID" json:"addresses,omitempty"`
	CreatedAt     time.Time         `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time         `gorm:"not null" json:"updated_at"`
}

type CustomerAddress struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CustomerID  uint      `gorm:"not null;index" json:"customer_id"`
	Label       string    `gorm:"type:varchar(100)" json:"label"`
	AddressLine string    `gorm:"type:text;not null" json:"address_line"`
	City        string    `gorm:"type:varchar(100)" json:"city"`
	Phone       string    `gorm:"type:varchar(50)" json:"phone"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}
