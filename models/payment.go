package models

import "time"

// Payment record statuses
const (
	PaymentRecordPending   = "pending"
	PaymentRecordCompleted = "completed"
)

// Payment represents a payment transaction for an order.
type Payment struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	TenantID    uint       `gorm:"not null;index" json:"tenant_id"`
	OrderID     uint       `gorm:"not null;index" json:"order_id"`
	Amount      float64    `gorm:"type:decimal(10,2);not null" json:"amount"`
	Method      string     `gorm:"type:varchar(50);not null;default:'cash'" json:"method"` // cash, card, qris, bank_transfer
	Status      string     `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	ReferenceID string     `gorm:"type:varchar(64)" json:"reference_id"`
	PaidAt      *time.Time `json:"paid_at,omitempty"`
	CreatedAt   time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"not null" json:"updated_at"`
}
