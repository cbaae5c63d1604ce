package services

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/faouziesf/cod-manager/config"
	"github.com/faouziesf/cod-manager/models"
	"github.com/faouziesf/cod-manager/utils"

	"gorm.io/gorm"
)

// NotificationService writes database notifications after successful
// transitions. Delivery is best effort: failures are logged and never
// surface to the transition that triggered them.
type NotificationService struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewNotificationService(db *gorm.DB, cfg *config.Config) *NotificationService {
	return &NotificationService{DB: db, Cfg: cfg}
}

func (s *NotificationService) notify(userID uint, notifType string, payload map[string]interface{}) {
	raw, err := json.Marshal(payload)
	if err != nil {
		utils.LogError(err, "notification payload")
		return
	}
	n := models.Notification{
		UserID: userID,
		Type:   notifType,
		Data:   raw,
	}
	if err := s.DB.Create(&n).Error; err != nil {
		utils.LogError(err, "notification insert")
	}
}

func (s *NotificationService) NotifyOrderCreated(order *models.Order) {
	payload := map[string]interface{}{
		"message":  fmt.Sprintf("Order #%d was created (%s)", order.ID, utils.FormatTND(order.TotalPrice)),
		"order_id": order.ID,
	}
	s.notify(order.AdminID, models.NotifOrderCreated, payload)
	if order.AssignedTo != nil {
		s.notify(*order.AssignedTo, models.NotifOrderCreated, payload)
	}
}

// NotifyOrderAssigned tells the new assignee, and the previous holder
// when the order moved away from them.
func (s *NotificationService) NotifyOrderAssigned(order *models.Order, previousAssignee *models.User) {
	if order.AssignedTo != nil {
		s.notify(*order.AssignedTo, models.NotifOrderAssigned, map[string]interface{}{
			"message":  fmt.Sprintf("Order #%d was assigned to you", order.ID),
			"order_id": order.ID,
		})
	}
	if previousAssignee != nil && (order.AssignedTo == nil || previousAssignee.ID != *order.AssignedTo) {
		s.notify(previousAssignee.ID, models.NotifOrderUnassigned, map[string]interface{}{
			"message":  fmt.Sprintf("Order #%d was unassigned from you", order.ID),
			"order_id": order.ID,
		})
	}
}

func (s *NotificationService) NotifyOrderConfirmed(order *models.Order) {
	price := order.TotalPrice
	if order.ConfirmedPrice != nil {
		price = *order.ConfirmedPrice
	}
	payload := map[string]interface{}{
		"message":  fmt.Sprintf("Order #%d was confirmed at %s", order.ID, utils.FormatTND(price)),
		"order_id": order.ID,
	}
	s.notify(order.AdminID, models.NotifOrderConfirmed, payload)
	if order.AssignedTo != nil {
		s.notify(*order.AssignedTo, models.NotifOrderConfirmed, payload)
	}
}

// NotifyOrderDated reaches the assignee and every manager of the
// tenant; managers also get an email mirror when SMTP is configured.
func (s *NotificationService) NotifyOrderDated(order *models.Order) {
	date := ""
	if order.ScheduledDate != nil {
		date = order.ScheduledDate.Format("2006-01-02")
	}
	payload := map[string]interface{}{
		"message":        fmt.Sprintf("Order #%d was scheduled for %s", order.ID, date),
		"order_id":       order.ID,
		"scheduled_date": date,
	}

	if order.AssignedTo != nil {
		s.notify(*order.AssignedTo, models.NotifOrderDated, payload)
	}

	var managers []models.User
	err := s.DB.Where("admin_id = ? AND role = ?", order.AdminID, models.RoleManager).
		Find(&managers).Error
	if err != nil {
		utils.LogError(err, "notification managers lookup")
		return
	}
	for _, m := range managers {
		s.notify(m.ID, models.NotifOrderDated, payload)
		if s.Cfg != nil && s.Cfg.SMTPHost != "" {
			go func(email string) {
				subject := fmt.Sprintf("Order #%d scheduled", order.ID)
				body := fmt.Sprintf("Order #%d is scheduled for a call on %s.", order.ID, date)
				if err := utils.SendEmail(email, subject, body,
					s.Cfg.SMTPHost, s.Cfg.SMTPPort, s.Cfg.SMTPUser, s.Cfg.SMTPPass); err != nil {
					utils.LogError(err, "notification email")
				}
			}(m.Email)
		}
	}
}

func (s *NotificationService) ListForUser(user *models.User, limit int) ([]models.Notification, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	var notifications []models.Notification
	err := s.DB.Where("user_id = ?", user.ID).
		Order("created_at DESC").Limit(limit).
		Find(&notifications).Error
	return notifications, err
}

func (s *NotificationService) UnreadCount(user *models.User) (int64, error) {
	var count int64
	err := s.DB.Model(&models.Notification{}).
		Where("user_id = ? AND read_at IS NULL", user.ID).
		Count(&count).Error
	return count, err
}

func (s *NotificationService) MarkAllRead(user *models.User) error {
	return s.DB.Model(&models.Notification{}).
		Where("user_id = ? AND read_at IS NULL", user.ID).
		Update("read_at", time.Now()).Error
}

// ClearOld drops notifications older than the retention window.
// Triggered weekly by cron or the CLI.
func (s *NotificationService) ClearOld(days int) (int64, error) {
	if days <= 0 {
		days = 10
	}
	cutoff := time.Now().AddDate(0, 0, -days)
	res := s.DB.Where("created_at < ?", cutoff).Delete(&models.Notification{})
	return res.RowsAffected, res.Error
}
