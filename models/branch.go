package models

import (
	"time"

	"gorm.io/gorm"
)

type Branch struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	TenantID  uint           `gorm:"not null;index" json:"tenant_id"`
	Name      string         `gorm:"type:varchar(255);not null" json:"name"`
	Code      string         `gorm:"type:varchar(20);not null" json:"code"` // used as the order-number prefix
	Address   string         `gorm:"type:text" json:"address"`
	Phone     string         `gorm:"type:varchar(50)" json:"phone"`
	IsActive  bool           `gorm:"not null" json:"is_active"`
	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

type Counter struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TenantID  uint      `gorm:"not null;index" json:"tenant_id"`
	BranchID  uint      `gorm:"not null;index" json:"branch_id"`
	Branch    Branch    `gorm:"foreignKey:BranchID" json:"-"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	IsActive  bool      `gorm:"not null" json:"is_active"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
