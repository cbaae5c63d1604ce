package models

// OrderStatus is the closed set of order lifecycle states.
type OrderStatus string

const (
	StatusStandard  OrderStatus = "standard"
	StatusDated     OrderStatus = "dated"
	StatusConfirmed OrderStatus = "confirmed"
	StatusCanceled  OrderStatus = "canceled"
	StatusOld       OrderStatus = "old"
)

// validNext lists the reachable states from each status. confirmed and
// canceled are terminal. dated may re-enter dated via reschedule.
var validNext = map[OrderStatus]map[OrderStatus]bool{
	StatusStandard:  {StatusDated: true, StatusConfirmed: true, StatusCanceled: true, StatusOld: true},
	StatusDated:     {StatusDated: true, StatusConfirmed: true, StatusCanceled: true, StatusOld: true},
	StatusOld:       {StatusConfirmed: true, StatusCanceled: true},
	StatusConfirmed: {},
	StatusCanceled:  {},
}

func CanTransition(from, to OrderStatus) bool {
	return validNext[from][to]
}

func (s OrderStatus) IsTerminal() bool {
	return s == StatusConfirmed || s == StatusCanceled
}

// IsProcessable reports whether orders in this status belong to a
// processing queue.
func (s OrderStatus) IsProcessable() bool {
	return s == StatusStandard || s == StatusDated || s == StatusOld
}

func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch OrderStatus(s) {
	case StatusStandard, StatusDated, StatusConfirmed, StatusCanceled, StatusOld:
		return OrderStatus(s), true
	}
	return "", false
}
