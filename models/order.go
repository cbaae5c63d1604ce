package models

import (
	"time"

	"gorm.io/gorm"
)

// Order is a customer purchase awaiting resolution by phone.
type Order struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	Reference  string `json:"reference" gorm:"uniqueIndex;not null"`
	AdminID    uint   `json:"admin_id" gorm:"not null;index:idx_orders_admin_status,priority:1"`
	CreatedBy  uint   `json:"created_by" gorm:"not null"`
	AssignedTo *uint  `json:"assigned_to" gorm:"index"`

	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone1    string `json:"phone1" gorm:"not null"`
	Phone2    string `json:"phone2"`
	Country   string `json:"country" gorm:"default:'Tunisie'"`
	Region    string `json:"region" gorm:"not null"`
	City      string `json:"city"`
	Address   string `json:"address" gorm:"type:text"`

	Status         OrderStatus `json:"status" gorm:"type:varchar(16);default:'standard';index:idx_orders_admin_status,priority:2"`
	TotalPrice     float64     `json:"total_price" gorm:"type:decimal(10,3);not null"`
	ConfirmedPrice *float64    `json:"confirmed_price" gorm:"type:decimal(10,3)"`

	Attempts      int        `json:"attempts" gorm:"default:0"`
	DailyAttempts int        `json:"daily_attempts" gorm:"default:0"`
	ScheduledDate *time.Time `json:"scheduled_date" gorm:"type:date"`
	LastAttemptAt *time.Time `json:"last_attempt_at"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	Admin    *User       `json:"admin,omitempty" gorm:"foreignKey:AdminID"`
	Creator  *User       `json:"creator,omitempty" gorm:"foreignKey:CreatedBy"`
	Assignee *User       `json:"assignee,omitempty" gorm:"foreignKey:AssignedTo"`
	Items    []OrderItem `json:"items,omitempty"`
	Notes    []OrderNote `json:"notes,omitempty"`
}

// OrderItem is a line item with the price snapshotted at order time,
// independent of later product price changes.
type OrderItem struct {
	ID        uint     `json:"id" gorm:"primaryKey"`
	OrderID   uint     `json:"order_id" gorm:"not null;index"`
	ProductID uint     `json:"product_id" gorm:"not null;index"`
	Quantity  int      `json:"quantity" gorm:"not null"`
	Price     float64  `json:"price" gorm:"type:decimal(10,3);not null"`
	Product   *Product `json:"product,omitempty"`
}

// Note action types
const (
	ActionCreate   = "create"
	ActionUpdate   = "update"
	ActionAssign   = "assign"
	ActionConfirm  = "confirm"
	ActionCancel   = "cancel"
	ActionSchedule = "schedule"
	ActionNoAnswer = "no_answer"
)

// OrderNote is an append-only audit trail entry. Notes are never edited
// or deleted.
type OrderNote struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	OrderID    uint      `json:"order_id" gorm:"not null;index"`
	UserID     uint      `json:"user_id" gorm:"not null"`
	Note       string    `json:"note" gorm:"type:text;not null"`
	ActionType string    `json:"action_type" gorm:"type:varchar(16);not null"`
	CreatedAt  time.Time `json:"created_at"`
	User       *User     `json:"user,omitempty"`
}

func (o *Order) IsStandard() bool  { return o.Status == StatusStandard }
func (o *Order) IsDated() bool     { return o.Status == StatusDated }
func (o *Order) IsConfirmed() bool { return o.Status == StatusConfirmed }
func (o *Order) IsCanceled() bool  { return o.Status == StatusCanceled }
func (o *Order) IsOld() bool       { return o.Status == StatusOld }

// CanAttemptToday checks the per-day attempt cap for the order's status.
// Old orders have no daily limit.
func (o *Order) CanAttemptToday(s *Setting) bool {
	if o.IsStandard() {
		return o.DailyAttempts < s.StandardMaxDailyAttempts
	}
	if o.IsDated() {
		return o.DailyAttempts < s.DatedMaxDailyAttempts
	}
	return true
}

// CanAttemptNow checks the inter-attempt delay. An order that was never
// contacted is always eligible.
func (o *Order) CanAttemptNow(s *Setting, now time.Time) bool {
	if o.LastAttemptAt == nil {
		return true
	}

	var delay float64
	if o.IsStandard() {
		delay = s.StandardAttemptsDelay
	} else if o.IsDated() {
		delay = s.DatedAttemptsDelay
	} else {
		delay = s.OldAttemptsDelay
	}

	nextPossible := o.LastAttemptAt.Add(time.Duration(delay * float64(time.Hour)))
	return !now.Before(nextPossible)
}

// ShouldBecomeOld reports whether the order exhausted its total attempt
// ceiling. Old orders have no ceiling and stay old until resolved
// manually.
func (o *Order) ShouldBecomeOld(s *Setting) bool {
	if o.IsStandard() {
		return o.Attempts >= s.StandardMaxTotalAttempts
	}
	if o.IsDated() {
		return o.Attempts >= s.DatedMaxTotalAttempts
	}
	return false
}

// ShouldBecomeDated reports whether a standard order reached its
// scheduled call date. Promotion based on this predicate is opt-in, see
// services.StartMaintenanceCron.
func (o *Order) ShouldBecomeDated(now time.Time) bool {
	if !o.IsStandard() || o.ScheduledDate == nil {
		return false
	}
	y1, m1, d1 := o.ScheduledDate.Date()
	y2, m2, d2 := now.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// RecordAttempt bumps both attempt counters and stamps the contact time.
func (o *Order) RecordAttempt(now time.Time) {
	o.Attempts++
	o.DailyAttempts++
	t := now
	o.LastAttemptAt = &t
}
