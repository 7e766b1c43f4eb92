package models

import "time"

// Delivery statuses
const (
	DeliveryPending        = "pending"
	DeliveryAssigned       = "assigned"
	DeliveryOutForDelivery = "out_for_delivery"
	DeliveryDelivered      = "delivered"
	DeliveryCancelled      = "cancelled"
)

type Delivery struct {
	ID                uint             `gorm:"primaryKey" json:"id"`
	TenantID          uint             `gorm:"not null;index" json:"tenant_id"`
	OrderID           uint             `gorm:"not null;uniqueIndex" json:"order_id"`
	CustomerAddressID *uint            `gorm:"index" json:"customer_address_id,omitempty"`
	CustomerAddress   *CustomerAddress `gorm:"foreignKey:CustomerAddressID" json:"customer_address,omitempty"`
	RiderID           *uint            `gorm:"index" json:"rider_id,omitempty"`
	Rider             *User            `gorm:"foreignKey:RiderID" json:"rider,omitempty"`
	Status            string           `gorm:"type:varchar(30);not null;default:'pending'" json:"status"`
	Charge            float64          `gorm:"type:decimal(10,2);not null;default:0.00" json:"charge"`
	Notes             string           `gorm:"type:text" json:"notes"` // free-text address note for walk-in customers
	AssignedAt        *time.Time       `json:"assigned_at,omitempty"`
	DeliveredAt       *time.Time       `json:"delivered_at,omitempty"`
	CreatedAt         time.Time        `gorm:"not null" json:"created_at"`
	UpdatedAt         time.Time        `gorm:"not null" json:"updated_at"`
}
