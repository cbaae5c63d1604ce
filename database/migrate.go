package database

import (
	"github.com/faouziesf/cod-manager/models"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Setting{},
		&models.Region{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderNote{},
		&models.Notification{},
	); err != nil {
		return err
	}

	// Indexes backing the processing queue and the scope filters.
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_orders_admin_status ON orders (admin_id, status)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_assigned_to ON orders (assigned_to)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_scheduled_date ON orders (scheduled_date)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_queue ON orders (daily_attempts, attempts, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_order_notes_order_id ON order_notes (order_id)`,
		`CREATE INDEX IF NOT EXISTS idx_notifications_user_read ON notifications (user_id, read_at)`,
		`CREATE INDEX IF NOT EXISTS idx_users_admin_role ON users (admin_id, role)`,
	}
	for _, stmt := range indexes {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}

	return nil
}
