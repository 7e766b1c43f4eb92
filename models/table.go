package models

import "time"

// Table statuses
const (
	TableAvailable = "available"
	TableOccupied  = "occupied"
)

type Table struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	TenantID    uint      `gorm:"not null;index" json:"tenant_id"`
	BranchID    uint      `gorm:"not null;index" json:"branch_id"`
	TableNumber string    `gorm:"type:varchar(50);not null" json:"table_number"`
	Capacity    int       `gorm:"not null;default:4" json:"capacity"`
	Status      string    `gorm:"type:varchar(50);not null;default:'available'" json:"status"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}
