package services

import (
	"testing"
	"time"

	"github.com/faouziesf/cod-manager/models"

	"github.com/stretchr/testify/assert"
)

func day(d int) time.Time {
	return time.Date(2026, 1, d, 0, 0, 0, 0, time.UTC)
}

func TestFilterProcessable(t *testing.T) {
	settings := models.DefaultSetting(1)
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	recent := now.Add(-1 * time.Hour)
	stale := now.Add(-3 * time.Hour)

	orders := []models.Order{
		{ID: 1, Status: models.StatusStandard},                                          // never contacted
		{ID: 2, Status: models.StatusStandard, DailyAttempts: 3},                        // daily cap hit
		{ID: 3, Status: models.StatusStandard, DailyAttempts: 1, LastAttemptAt: &recent}, // inside delay window
		{ID: 4, Status: models.StatusStandard, DailyAttempts: 1, LastAttemptAt: &stale},  // delay elapsed
	}

	eligible := filterProcessable(orders, settings, now)

	ids := make([]uint, 0, len(eligible))
	for _, o := range eligible {
		ids = append(ids, o.ID)
	}
	assert.Equal(t, []uint{1, 4}, ids)
}

func TestSortForProcessing(t *testing.T) {
	orders := []models.Order{
		{ID: 1, DailyAttempts: 0, Attempts: 5, CreatedAt: day(1)},
		{ID: 2, DailyAttempts: 0, Attempts: 2, CreatedAt: day(3)},
		{ID: 3, DailyAttempts: 1, Attempts: 0, CreatedAt: day(2)},
	}

	sortForProcessing(orders)

	// Fewest daily attempts first, then fewest total, then oldest.
	assert.Equal(t, uint(2), orders[0].ID)
	assert.Equal(t, uint(1), orders[1].ID)
	assert.Equal(t, uint(3), orders[2].ID)
}

func TestSortForProcessingOldestFirstOnTie(t *testing.T) {
	orders := []models.Order{
		{ID: 1, CreatedAt: day(5)},
		{ID: 2, CreatedAt: day(1)},
		{ID: 3, CreatedAt: day(3)},
	}

	sortForProcessing(orders)

	assert.Equal(t, uint(2), orders[0].ID)
	assert.Equal(t, uint(3), orders[1].ID)
	assert.Equal(t, uint(1), orders[2].ID)
}

func TestNextQueueTypeCascade(t *testing.T) {
	next, ok := nextQueueType(models.StatusStandard)
	assert.True(t, ok)
	assert.Equal(t, models.StatusDated, next)

	next, ok = nextQueueType(models.StatusDated)
	assert.True(t, ok)
	assert.Equal(t, models.StatusOld, next)

	_, ok = nextQueueType(models.StatusOld)
	assert.False(t, ok)
}

func TestCreateOrderValidation(t *testing.T) {
	svc := &OrderService{Now: func() time.Time { return day(10) }}
	actor := &models.User{ID: 1, Role: models.RoleAdmin}

	_, err := svc.CreateOrder(CreateOrderInput{Status: "pending"}, actor)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, "status", verr.Field)

	// Dated orders need a scheduled date.
	_, err = svc.CreateOrder(CreateOrderInput{Status: "dated"}, actor)
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, "scheduled_date", verr.Field)
}

func TestActionNoteRequired(t *testing.T) {
	svc := &OrderService{Now: func() time.Time { return day(10) }}
	actor := &models.User{ID: 1, Role: models.RoleAdmin}
	settings := models.DefaultSetting(1)

	var verr *ValidationError

	_, err := svc.CancelOrder(1, "", actor)
	assert.ErrorAs(t, err, &verr)

	_, err = svc.NoAnswerOrder(1, "", actor, settings)
	assert.ErrorAs(t, err, &verr)

	date := day(12)
	_, err = svc.ScheduleOrder(1, &date, "", actor)
	assert.ErrorAs(t, err, &verr)

	_, err = svc.ScheduleOrder(1, nil, "client asked to call back", actor)
	assert.ErrorAs(t, err, &verr)
}

func TestPeriodRange(t *testing.T) {
	// A Tuesday afternoon.
	now := time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)

	start, end, ok := periodRange(now, "today")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC), end)

	start, end, ok = periodRange(now, "yesterday")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), end)

	// Weeks start on Monday.
	start, end, ok = periodRange(now, "this_week")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC), end)

	start, end, ok = periodRange(now, "this_month")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), end)

	start, end, ok = periodRange(now, "last_month")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), end)

	_, _, ok = periodRange(now, "all")
	assert.False(t, ok)
}
