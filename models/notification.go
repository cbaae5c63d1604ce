package models

import (
	"time"

	"gorm.io/datatypes"
)

// Notification types
const (
	NotifOrderCreated    = "order_created"
	NotifOrderAssigned   = "order_assigned"
	NotifOrderUnassigned = "order_unassigned"
	NotifOrderConfirmed  = "order_confirmed"
	NotifOrderDated      = "order_dated"
)

// Notification is a database-delivered notification row. Delivery is
// fire-and-forget, failures never roll back the triggering transition.
type Notification struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	UserID    uint           `json:"user_id" gorm:"not null;index"`
	Type      string         `json:"type" gorm:"type:varchar(32);not null"`
	Data      datatypes.JSON `json:"data" gorm:"type:jsonb"`
	ReadAt    *time.Time     `json:"read_at"`
	CreatedAt time.Time      `json:"created_at" gorm:"index"`
}
