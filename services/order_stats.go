package services

import (
	"time"

	"github.com/faouziesf/cod-manager/models"
	"github.com/faouziesf/cod-manager/utils"

	"gorm.io/gorm"
)

type ProductStat struct {
	ProductID     uint   `json:"product_id"`
	Name          string `json:"name"`
	TotalQuantity int    `json:"total_quantity"`
}

type RegionStat struct {
	Region string `json:"region"`
	Total  int64  `json:"total"`
}

type OrderStatistics struct {
	Total            int64         `json:"total"`
	Confirmed        int64         `json:"confirmed"`
	Canceled         int64         `json:"canceled"`
	Standard         int64         `json:"standard"`
	Dated            int64         `json:"dated"`
	Old              int64         `json:"old"`
	ConfirmationRate float64       `json:"confirmation_rate"`
	Revenue          float64       `json:"revenue"`
	TopProducts      []ProductStat `json:"top_products"`
	TopRegions       []RegionStat  `json:"top_regions"`
}

// periodRange maps a dashboard period name to [start, end). Weeks start
// on Monday.
func periodRange(now time.Time, period string) (time.Time, time.Time, bool) {
	day := utils.StartOfDay(now)
	switch period {
	case "today":
		return day, day.AddDate(0, 0, 1), true
	case "yesterday":
		return day.AddDate(0, 0, -1), day, true
	case "this_week":
		offset := (int(day.Weekday()) + 6) % 7
		start := day.AddDate(0, 0, -offset)
		return start, start.AddDate(0, 0, 7), true
	case "this_month":
		start := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
		return start, start.AddDate(0, 1, 0), true
	case "last_month":
		end := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
		return end.AddDate(0, -1, 0), end, true
	}
	return time.Time{}, time.Time{}, false
}

// OrderStatistics aggregates the dashboard numbers for one period under
// the caller's scope.
func (s *OrderService) OrderStatistics(user *models.User, period string) (*OrderStatistics, error) {
	stats := &OrderStatistics{
		TopProducts: []ProductStat{},
		TopRegions:  []RegionStat{},
	}

	base := func() *gorm.DB {
		q := s.scopedOrders(user).Model(&models.Order{})
		if start, end, ok := periodRange(s.Now(), period); ok {
			q = q.Where("orders.created_at >= ? AND orders.created_at < ?", start, end)
		}
		return q
	}

	if err := base().Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	byStatus := map[models.OrderStatus]*int64{
		models.StatusConfirmed: &stats.Confirmed,
		models.StatusCanceled:  &stats.Canceled,
		models.StatusStandard:  &stats.Standard,
		models.StatusDated:     &stats.Dated,
		models.StatusOld:       &stats.Old,
	}
	for status, dst := range byStatus {
		if err := base().Where("status = ?", status).Count(dst).Error; err != nil {
			return nil, err
		}
	}
	if stats.Total > 0 {
		stats.ConfirmationRate = float64(stats.Confirmed) / float64(stats.Total) * 100
	}

	// Revenue counts confirmed orders only.
	err := base().Where("status = ?", models.StatusConfirmed).
		Select("COALESCE(SUM(confirmed_price), 0)").
		Scan(&stats.Revenue).Error
	if err != nil {
		return nil, err
	}

	scope := models.ScopeFor(user)
	products := s.DB.Table("order_items").
		Select("order_items.product_id, products.name, SUM(order_items.quantity) AS total_quantity").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Joins("JOIN products ON products.id = order_items.product_id").
		Where("orders.deleted_at IS NULL").
		Where("orders.admin_id = ?", scope.AdminID)
	if scope.AssignedTo != nil {
		products = products.Where("orders.assigned_to = ?", *scope.AssignedTo)
	}
	if start, end, ok := periodRange(s.Now(), period); ok {
		products = products.Where("orders.created_at >= ? AND orders.created_at < ?", start, end)
	}
	err = products.Group("order_items.product_id, products.name").
		Order("total_quantity DESC").Limit(5).
		Scan(&stats.TopProducts).Error
	if err != nil {
		return nil, err
	}

	err = base().Select("region, COUNT(*) AS total").
		Group("region").Order("total DESC").Limit(5).
		Scan(&stats.TopRegions).Error
	if err != nil {
		return nil, err
	}

	return stats, nil
}
