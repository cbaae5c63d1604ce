package models

import (
	"time"

	"gorm.io/gorm"
)

// Product is a tenant-scoped catalog item. Stock is decremented only on
// order confirmation, never on creation, and may go negative as a
// low-stock signal.
type Product struct {
	ID       uint    `json:"id" gorm:"primaryKey"`
	AdminID  uint    `json:"admin_id" gorm:"not null;index"`
	Name     string  `json:"name" gorm:"not null"`
	Price    float64 `json:"price" gorm:"type:decimal(10,3);not null"`
	Stock    int     `json:"stock" gorm:"default:0"`
	IsActive bool    `json:"is_active" gorm:"default:true"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (p *Product) IsOutOfStock() bool {
	return p.Stock <= 0
}
