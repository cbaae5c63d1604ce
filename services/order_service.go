package services

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/faouziesf/cod-manager/models"
	"github.com/faouziesf/cod-manager/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OrderService owns the order lifecycle: creation, the five transitions,
// the processing queue and its maintenance jobs. Every transition runs
// in one transaction with a row lock on the order, so concurrent
// conflicting transitions serialize and the loser sees ErrStaleOrder.
type OrderService struct {
	DB  *gorm.DB
	Now utils.Clock
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{DB: db, Now: utils.TunisTime}
}

type OrderItemInput struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

type CreateOrderInput struct {
	AssignedTo    *uint            `json:"assigned_to"`
	FirstName     string           `json:"first_name"`
	LastName      string           `json:"last_name"`
	Phone1        string           `json:"phone1" binding:"required"`
	Phone2        string           `json:"phone2"`
	Country       string           `json:"country"`
	Region        string           `json:"region" binding:"required"`
	City          string           `json:"city"`
	Address       string           `json:"address"`
	Status        string           `json:"status"`
	TotalPrice    float64          `json:"total_price" binding:"required,min=0"`
	ScheduledDate *time.Time       `json:"scheduled_date"`
	Note          string           `json:"note"`
	Items         []OrderItemInput `json:"items" binding:"required,min=1,dive"`
}

// CreateOrder builds the order, its line items and the optional create
// note as one unit. Orders may be created directly in any status (the
// CSV import path produces the same input); a confirmed creation gets
// confirmed_price backfilled from total_price.
func (s *OrderService) CreateOrder(in CreateOrderInput, actor *models.User) (*models.Order, error) {
	status := models.StatusStandard
	if in.Status != "" {
		parsed, ok := models.ParseOrderStatus(in.Status)
		if !ok {
			return nil, validationErr("status", "unknown order status")
		}
		status = parsed
	}
	if status == models.StatusDated && in.ScheduledDate == nil {
		return nil, validationErr("scheduled_date", "a date is required for dated orders")
	}
	if status == models.StatusConfirmed {
		if in.FirstName == "" || in.LastName == "" || in.Address == "" {
			return nil, validationErr("message", "first name, last name and address are required for confirmed orders")
		}
	}
	if len(in.Items) == 0 {
		return nil, validationErr("items", "at least one item is required")
	}

	country := in.Country
	if country == "" {
		country = "Tunisie"
	}

	order := &models.Order{
		Reference:     uuid.NewString(),
		AdminID:       actor.TenantID(),
		CreatedBy:     actor.ID,
		AssignedTo:    in.AssignedTo,
		FirstName:     in.FirstName,
		LastName:      in.LastName,
		Phone1:        in.Phone1,
		Phone2:        in.Phone2,
		Country:       country,
		Region:        in.Region,
		City:          in.City,
		Address:       in.Address,
		Status:        status,
		TotalPrice:    in.TotalPrice,
		ScheduledDate: in.ScheduledDate,
	}
	if status == models.StatusConfirmed {
		price := in.TotalPrice
		order.ConfirmedPrice = &price
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		if err := s.createItems(tx, order, in.Items); err != nil {
			return err
		}
		if in.Note != "" {
			return addNote(tx, order.ID, actor.ID, in.Note, models.ActionCreate)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// createItems snapshots the current product price onto each line item.
func (s *OrderService) createItems(tx *gorm.DB, order *models.Order, items []OrderItemInput) error {
	for _, it := range items {
		if it.Quantity < 1 {
			return validationErr("items", "quantity must be at least 1")
		}
		var product models.Product
		err := tx.Where("admin_id = ?", order.AdminID).First(&product, it.ProductID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		} else if err != nil {
			return err
		}
		item := models.OrderItem{
			OrderID:   order.ID,
			ProductID: product.ID,
			Quantity:  it.Quantity,
			Price:     product.Price,
		}
		if err := tx.Create(&item).Error; err != nil {
			return err
		}
		order.Items = append(order.Items, item)
	}
	return nil
}

type UpdateOrderInput struct {
	FirstName  *string          `json:"first_name"`
	LastName   *string          `json:"last_name"`
	Phone1     *string          `json:"phone1"`
	Phone2     *string          `json:"phone2"`
	Country    *string          `json:"country"`
	Region     *string          `json:"region"`
	City       *string          `json:"city"`
	Address    *string          `json:"address"`
	TotalPrice *float64         `json:"total_price"`
	Note       string           `json:"note"`
	Items      []OrderItemInput `json:"items"`
}

// UpdateOrder edits contact fields and optionally replaces the line
// items. Status never changes here, only through transitions.
func (s *OrderService) UpdateOrder(orderID uint, in UpdateOrderInput, actor *models.User) (*models.Order, error) {
	var updated *models.Order
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		order, err := s.lockOrder(tx, orderID, actor)
		if err != nil {
			return err
		}

		assignString(&order.FirstName, in.FirstName)
		assignString(&order.LastName, in.LastName)
		assignString(&order.Phone1, in.Phone1)
		assignString(&order.Phone2, in.Phone2)
		assignString(&order.Country, in.Country)
		assignString(&order.Region, in.Region)
		assignString(&order.City, in.City)
		assignString(&order.Address, in.Address)

		if in.Items != nil {
			if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
				return err
			}
			order.Items = nil
			if err := s.createItems(tx, order, in.Items); err != nil {
				return err
			}
			if in.TotalPrice != nil {
				order.TotalPrice = *in.TotalPrice
			}
		}

		if err := tx.Save(order).Error; err != nil {
			return err
		}
		if in.Note != "" {
			if err := addNote(tx, order.ID, actor.ID, in.Note, models.ActionUpdate); err != nil {
				return err
			}
		}
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// AssignOrder reassigns the order to an employee. Scope checks on the
// employee belong to the caller; the transition itself is always
// permitted.
func (s *OrderService) AssignOrder(orderID uint, employee *models.User, assigner *models.User) (*models.Order, error) {
	var updated *models.Order
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		order, err := s.lockOrder(tx, orderID, assigner)
		if err != nil {
			return err
		}
		order.AssignedTo = &employee.ID
		if err := tx.Save(order).Error; err != nil {
			return err
		}
		note := fmt.Sprintf("Order assigned to %s", employee.Name)
		if err := addNote(tx, order.ID, assigner.ID, note, models.ActionAssign); err != nil {
			return err
		}
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// ConfirmOrder resolves the order as a sale. First name, last name and
// address must be present. Stock of every line product is decremented by
// its quantity in the same transaction; stock may go negative.
func (s *OrderService) ConfirmOrder(orderID uint, confirmedPrice *float64, note string, actor *models.User) (*models.Order, error) {
	var updated *models.Order
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		order, err := s.lockOrder(tx, orderID, actor)
		if err != nil {
			return err
		}
		if err := checkTransition(order, models.StatusConfirmed); err != nil {
			return err
		}
		if order.FirstName == "" || order.LastName == "" || order.Address == "" {
			return validationErr("message", "first name, last name and address are required to confirm an order")
		}

		price := order.TotalPrice
		if confirmedPrice != nil {
			price = *confirmedPrice
		}
		order.Status = models.StatusConfirmed
		order.ConfirmedPrice = &price
		if err := tx.Save(order).Error; err != nil {
			return err
		}

		var items []models.OrderItem
		if err := tx.Where("order_id = ?", order.ID).Find(&items).Error; err != nil {
			return err
		}
		for _, item := range items {
			res := tx.Model(&models.Product{}).Where("id = ?", item.ProductID).
				UpdateColumn("stock", gorm.Expr("stock - ?", item.Quantity))
			if res.Error != nil {
				return res.Error
			}
		}

		text := fmt.Sprintf("%s confirmed the order", actor.Name)
		if note != "" {
			text += fmt.Sprintf(" with the note: %s", note)
		}
		if err := addNote(tx, order.ID, actor.ID, text, models.ActionConfirm); err != nil {
			return err
		}
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// CancelOrder resolves the order as lost. A note is mandatory. No stock
// effect.
func (s *OrderService) CancelOrder(orderID uint, note string, actor *models.User) (*models.Order, error) {
	if note == "" {
		return nil, validationErr("note", "a note is required to cancel an order")
	}
	var updated *models.Order
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		order, err := s.lockOrder(tx, orderID, actor)
		if err != nil {
			return err
		}
		if err := checkTransition(order, models.StatusCanceled); err != nil {
			return err
		}
		order.Status = models.StatusCanceled
		if err := tx.Save(order).Error; err != nil {
			return err
		}
		text := fmt.Sprintf("The customer canceled the order. %s left the note: %s", actor.Name, note)
		if err := addNote(tx, order.ID, actor.ID, text, models.ActionCancel); err != nil {
			return err
		}
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// ScheduleOrder moves the order to the dated queue for a specific call
// date. Both the note and the date are mandatory.
func (s *OrderService) ScheduleOrder(orderID uint, date *time.Time, note string, actor *models.User) (*models.Order, error) {
	if note == "" || date == nil {
		return nil, validationErr("message", "a date and a note are required to schedule an order")
	}
	var updated *models.Order
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		order, err := s.lockOrder(tx, orderID, actor)
		if err != nil {
			return err
		}
		if err := checkTransition(order, models.StatusDated); err != nil {
			return err
		}
		order.Status = models.StatusDated
		order.ScheduledDate = date
		if err := tx.Save(order).Error; err != nil {
			return err
		}
		text := fmt.Sprintf("%s scheduled a call for %s and left the note: %s",
			actor.Name, date.Format("2006-01-02"), note)
		if err := addNote(tx, order.ID, actor.ID, text, models.ActionSchedule); err != nil {
			return err
		}
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// NoAnswerOrder records a failed contact attempt: both counters go up,
// last_attempt_at is stamped, and a standard/dated order that reached
// its total ceiling tips over to old.
func (s *OrderService) NoAnswerOrder(orderID uint, note string, actor *models.User, settings *models.Setting) (*models.Order, error) {
	if note == "" {
		return nil, validationErr("note", "a note is required for this action")
	}
	var updated *models.Order
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		order, err := s.lockOrder(tx, orderID, actor)
		if err != nil {
			return err
		}
		if order.Status.IsTerminal() {
			return ErrStaleOrder
		}

		order.RecordAttempt(s.Now())

		text := fmt.Sprintf("%s tried to reach the customer without success and left the note: %s", actor.Name, note)
		if err := addNote(tx, order.ID, actor.ID, text, models.ActionNoAnswer); err != nil {
			return err
		}

		if order.ShouldBecomeOld(settings) {
			order.Status = models.StatusOld
		}
		if err := tx.Save(order).Error; err != nil {
			return err
		}
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteOrder soft-deletes. Role checks (admin/manager only) run in the
// controller.
func (s *OrderService) DeleteOrder(orderID uint, actor *models.User) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		order, err := s.lockOrder(tx, orderID, actor)
		if err != nil {
			return err
		}
		return tx.Delete(order).Error
	})
}

// GetOrder loads one order with its items, notes and people, enforcing
// tenant and assignment scope.
func (s *OrderService) GetOrder(orderID uint, user *models.User) (*models.Order, error) {
	var order models.Order
	err := s.DB.Preload("Items.Product").Preload("Notes", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at DESC")
	}).Preload("Notes.User").Preload("Assignee").Preload("Creator").
		First(&order, orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}

	scope := models.ScopeFor(user)
	if order.AdminID != scope.AdminID {
		return nil, ErrNotFound
	}
	if scope.AssignedTo != nil && (order.AssignedTo == nil || *order.AssignedTo != *scope.AssignedTo) {
		return nil, ErrForbidden
	}
	return &order, nil
}

// ListOrders is the paginated browse view; it applies the same scope as
// the queue but none of the eligibility filtering.
func (s *OrderService) ListOrders(user *models.User, status, search string, page, limit int) ([]models.Order, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 15
	}

	query := s.scopedOrders(user)
	if st, ok := models.ParseOrderStatus(status); ok {
		query = query.Where("status = ?", st)
	}
	if search != "" {
		like := "%" + search + "%"
		query = query.Where(
			"first_name ILIKE ? OR last_name ILIKE ? OR phone1 ILIKE ? OR phone2 ILIKE ?",
			like, like, like, like,
		)
	}

	var total int64
	if err := query.Model(&models.Order{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []models.Order
	err := query.Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&orders).Error
	return orders, total, err
}

// OrdersForProcessing builds the call queue for one type. Candidates
// come from the user's scope; inactive tenants yield nothing; both
// eligibility predicates then gate each order; the survivors are sorted
// least-daily-attempted, then least-attempted, then oldest first.
func (s *OrderService) OrdersForProcessing(user *models.User, settings *models.Setting, typ models.OrderStatus) ([]models.Order, error) {
	if !typ.IsProcessable() {
		return nil, validationErr("type", "type must be standard, dated or old")
	}

	now := s.Now()
	query := s.scopedOrders(user).Where("status = ?", typ)
	if typ == models.StatusDated {
		query = query.Where("scheduled_date <= ?", utils.StartOfDay(now))
	}

	// Suspended tenants (expired trials) have no processable orders.
	activeAdmins := s.DB.Model(&models.User{}).Select("id").Where("is_active = ?", true)
	query = query.Where("admin_id IN (?)", activeAdmins)

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}

	eligible := filterProcessable(orders, settings, now)
	sortForProcessing(eligible)
	return eligible, nil
}

// filterProcessable keeps orders passing both the daily cap and the
// inter-attempt delay.
func filterProcessable(orders []models.Order, settings *models.Setting, now time.Time) []models.Order {
	out := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if o.CanAttemptToday(settings) && o.CanAttemptNow(settings, now) {
			out = append(out, o)
		}
	}
	return out
}

// sortForProcessing orders by daily_attempts asc, attempts asc,
// created_at asc, so under-attempted and longest-waiting orders surface
// first.
func sortForProcessing(orders []models.Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		a, b := orders[i], orders[j]
		if a.DailyAttempts != b.DailyAttempts {
			return a.DailyAttempts < b.DailyAttempts
		}
		if a.Attempts != b.Attempts {
			return a.Attempts < b.Attempts
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})
}

// nextQueueType is the cascading fallback: standard falls back to
// dated, dated to old, old to nothing.
func nextQueueType(typ models.OrderStatus) (models.OrderStatus, bool) {
	switch typ {
	case models.StatusStandard:
		return models.StatusDated, true
	case models.StatusDated:
		return models.StatusOld, true
	}
	return "", false
}

// NextOrderForProcessing returns the head of the requested queue,
// cascading through the fallback sequence when queues are empty. The
// returned status names the queue the order actually came from.
func (s *OrderService) NextOrderForProcessing(user *models.User, settings *models.Setting, typ models.OrderStatus) (*models.Order, models.OrderStatus, error) {
	for {
		orders, err := s.OrdersForProcessing(user, settings, typ)
		if err != nil {
			return nil, typ, err
		}
		if len(orders) > 0 {
			return &orders[0], typ, nil
		}
		next, ok := nextQueueType(typ)
		if !ok {
			return nil, typ, nil
		}
		typ = next
	}
}

// OrderCounts are the dashboard badge numbers.
type OrderCounts struct {
	Standard int `json:"standard"`
	Dated    int `json:"dated"`
	Old      int `json:"old"`
	Total    int `json:"total"`
}

// AvailableOrderCount runs the real queue builder for all three types;
// there is deliberately no count-only shortcut that could drift from the
// queue semantics.
func (s *OrderService) AvailableOrderCount(user *models.User, settings *models.Setting) (OrderCounts, error) {
	var counts OrderCounts
	for _, typ := range []models.OrderStatus{models.StatusStandard, models.StatusDated, models.StatusOld} {
		orders, err := s.OrdersForProcessing(user, settings, typ)
		if err != nil {
			return counts, err
		}
		switch typ {
		case models.StatusStandard:
			counts.Standard = len(orders)
		case models.StatusDated:
			counts.Dated = len(orders)
		case models.StatusOld:
			counts.Old = len(orders)
		}
	}
	counts.Total = counts.Standard + counts.Dated + counts.Old
	return counts, nil
}

// ResetDailyAttempts zeroes daily_attempts tenant-agnostically. Total
// attempts are untouched. Triggered daily by cron or the CLI.
func (s *OrderService) ResetDailyAttempts() (int64, error) {
	res := s.DB.Model(&models.Order{}).
		Where("daily_attempts > ?", 0).
		Update("daily_attempts", 0)
	return res.RowsAffected, res.Error
}

// PromoteScheduledOrders moves standard orders whose scheduled date is
// due into the dated queue. Only wired into cron when
// PROMOTE_SCHEDULED_ORDERS is set.
func (s *OrderService) PromoteScheduledOrders() (int64, error) {
	res := s.DB.Model(&models.Order{}).
		Where("status = ?", models.StatusStandard).
		Where("scheduled_date IS NOT NULL AND scheduled_date <= ?", utils.StartOfDay(s.Now())).
		Update("status", models.StatusDated)
	return res.RowsAffected, res.Error
}

func (s *OrderService) scopedOrders(user *models.User) *gorm.DB {
	scope := models.ScopeFor(user)
	query := s.DB.Where("admin_id = ?", scope.AdminID)
	if scope.AssignedTo != nil {
		query = query.Where("assigned_to = ?", *scope.AssignedTo)
	}
	return query
}

// lockOrder loads the order FOR UPDATE inside the transaction and
// enforces the actor's scope.
func (s *OrderService) lockOrder(tx *gorm.DB, orderID uint, actor *models.User) (*models.Order, error) {
	var order models.Order
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&order, orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}

	scope := models.ScopeFor(actor)
	if order.AdminID != scope.AdminID {
		return nil, ErrNotFound
	}
	if scope.AssignedTo != nil && (order.AssignedTo == nil || *order.AssignedTo != *scope.AssignedTo) {
		return nil, ErrForbidden
	}
	return &order, nil
}

// checkTransition distinguishes a lost race against a terminal state
// from a transition the lifecycle simply does not allow.
func checkTransition(order *models.Order, to models.OrderStatus) error {
	if order.Status.IsTerminal() {
		return ErrStaleOrder
	}
	if !models.CanTransition(order.Status, to) {
		return validationErr("status", fmt.Sprintf("cannot move a %s order to %s", order.Status, to))
	}
	return nil
}

func addNote(tx *gorm.DB, orderID, userID uint, note, actionType string) error {
	return tx.Create(&models.OrderNote{
		OrderID:    orderID,
		UserID:     userID,
		Note:       note,
		ActionType: actionType,
	}).Error
}

func assignString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
