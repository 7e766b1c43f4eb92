package models

import (
	"time"

	"gorm.io/gorm"
)

// Order types
const (
	OrderTypeDineIn   = "dine_in"
	OrderTypeTakeaway = "takeaway"
	OrderTypeDelivery = "delivery"
)

// Order statuses
const (
	OrderStatusPending   = "pending"
	OrderStatusPreparing = "preparing"
	OrderStatusReady     = "ready"
	OrderStatusServed    = "served"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// Payment statuses
const (
	PaymentStatusUnpaid = "unpaid"
	PaymentStatusPaid   = "paid"
)

// Payment timings
const (
	PayFirst = "pay_first"
	PayAfter = "pay_after"
)

type Order struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	TenantID    uint   `gorm:"not null;index" json:"tenant_id"`
	BranchID    uint   `gorm:"not null;index" json:"branch_id"`
	Branch      Branch `gorm:"foreignKey:BranchID" json:"branch"`
	OrderNumber string `gorm:"type:varchar(50);not null;index" json:"order_number"`
	TokenNumber string `gorm:"type:varchar(10)" json:"token_number"`

	OrderType     string `gorm:"type:varchar(20);not null" json:"order_type"`
	Status        string `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	PaymentStatus string `gorm:"type:varchar(20);not null;default:'unpaid'" json:"payment_status"`
	PaymentTiming string `gorm:"type:varchar(20);not null;default:'pay_after'" json:"payment_timing"`

	Subtotal       float64 `gorm:"type:decimal(10,2);not null;default:0.00" json:"subtotal"`
	DiscountAmount float64 `gorm:"type:decimal(10,2);not null;default:0.00" json:"discount_amount"`
	TaxAmount      float64 `gorm:"type:decimal(10,2);not null;default:0.00" json:"tax_amount"`
	DeliveryCharge float64 `gorm:"type:decimal(10,2);not null;default:0.00" json:"delivery_charge"`
	TotalAmount    float64 `gorm:"type:decimal(10,2);not null;default:0.00" json:"total_amount"`

	CounterID  *uint     `gorm:"index" json:"counter_id,omitempty"`
	Counter    *Counter  `gorm:"foreignKey:CounterID" json:"counter,omitempty"`
	TableID    *uint     `gorm:"index" json:"table_id,omitempty"`
	Table      *Table    `gorm:"foreignKey:TableID" json:"table,omitempty"`
	CustomerID *uint     `gorm:"index" json:"customer_id,omitempty"`
	Customer   *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	CashierID  *uint     `gorm:"index" json:"cashier_id,omitempty"`
	Cashier    *User     `gorm:"foreignKey:CashierID" json:"cashier,omitempty"`
	CouponID   *uint     `gorm:"index" json:"coupon_id,omitempty"`

	Items    []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
	Payments []Payment   `gorm:"foreignKey:OrderID" json:"payments,omitempty"`

	PlacedAt           time.Time  `gorm:"not null" json:"placed_at"`
	PaidAt             *time.Time `json:"paid_at,omitempty"`
	CompletedAt        *time.Time `json:"completed_at,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	CancellationReason string     `gorm:"type:text" json:"cancellation_reason,omitempty"`

	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// RecomputeTotal derives TotalAmount from the stored components.
// TotalAmount is never written directly.
func (o *Order) RecomputeTotal() {
	total := o.Subtotal - o.DiscountAmount + o.TaxAmount + o.DeliveryCharge
	if total < 0 {
		total = 0
	}
	o.TotalAmount = total
}
