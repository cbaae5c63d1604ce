package services

import (
	"log"

	"github.com/faouziesf/cod-manager/config"
	"github.com/faouziesf/cod-manager/utils"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// StartMaintenanceCron schedules the recurring jobs: the daily attempt
// reset at midnight, trial-expiry deactivation at 01:00, notification
// cleanup on Monday 02:00, and optionally the scheduled-date promotion.
func StartMaintenanceCron(db *gorm.DB, cfg *config.Config) *cron.Cron {
	orderService := NewOrderService(db)
	userService := NewUserService(db)
	notificationService := NewNotificationService(db, cfg)

	c := cron.New()

	c.AddFunc("0 0 * * *", func() {
		logger, logFile := utils.CronLogger()
		defer logFile.Close()

		count, err := orderService.ResetDailyAttempts()
		if err != nil {
			logger.Printf("daily attempt reset failed: %v", err)
			return
		}
		logger.Printf("daily attempt reset done - %d orders updated", count)
	})

	c.AddFunc("0 1 * * *", func() {
		logger, logFile := utils.CronLogger()
		defer logFile.Close()

		count, err := userService.DeactivateExpiredTrials()
		if err != nil {
			logger.Printf("trial deactivation failed after %d accounts: %v", count, err)
			return
		}
		logger.Printf("trial deactivation done - %d accounts suspended", count)
	})

	c.AddFunc("0 2 * * 1", func() {
		logger, logFile := utils.CronLogger()
		defer logFile.Close()

		count, err := notificationService.ClearOld(10)
		if err != nil {
			logger.Printf("notification cleanup failed: %v", err)
			return
		}
		logger.Printf("notification cleanup done - %d notifications removed", count)
	})

	if cfg.PromoteScheduledOrders {
		c.AddFunc("30 0 * * *", func() {
			logger, logFile := utils.CronLogger()
			defer logFile.Close()

			count, err := orderService.PromoteScheduledOrders()
			if err != nil {
				logger.Printf("scheduled order promotion failed: %v", err)
				return
			}
			logger.Printf("scheduled order promotion done - %d orders moved to dated", count)
		})
	}

	c.Start()
	log.Printf("[MAINTENANCE CRON] Scheduler started")
	return c
}
