package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testSetting() *Setting {
	return DefaultSetting(1)
}

func at(h, m int) time.Time {
	return time.Date(2026, 3, 10, h, m, 0, 0, time.UTC)
}

func TestCanAttemptTodayDailyCaps(t *testing.T) {
	s := testSetting()

	standard := Order{Status: StatusStandard, DailyAttempts: 2}
	assert.True(t, standard.CanAttemptToday(s))
	standard.DailyAttempts = 3
	assert.False(t, standard.CanAttemptToday(s))

	dated := Order{Status: StatusDated, DailyAttempts: 1}
	assert.True(t, dated.CanAttemptToday(s))
	dated.DailyAttempts = 2
	assert.False(t, dated.CanAttemptToday(s))

	// Old orders never hit a daily cap.
	old := Order{Status: StatusOld, DailyAttempts: 50}
	assert.True(t, old.CanAttemptToday(s))
}

func TestCanAttemptNowDelay(t *testing.T) {
	s := testSetting()
	lastAttempt := at(10, 0)

	order := Order{Status: StatusStandard, LastAttemptAt: &lastAttempt}

	// Standard delay is 2.5h: eligible again at exactly 12:30.
	assert.False(t, order.CanAttemptNow(s, at(12, 29)))
	assert.True(t, order.CanAttemptNow(s, at(12, 30)))
	assert.True(t, order.CanAttemptNow(s, at(13, 0)))

	// Dated delay is 3.5h.
	order.Status = StatusDated
	assert.False(t, order.CanAttemptNow(s, at(13, 29)))
	assert.True(t, order.CanAttemptNow(s, at(13, 30)))

	// Old uses its own delay, 2.5h by default.
	order.Status = StatusOld
	assert.False(t, order.CanAttemptNow(s, at(12, 29)))
	assert.True(t, order.CanAttemptNow(s, at(12, 30)))
}

func TestCanAttemptNowNeverContacted(t *testing.T) {
	s := testSetting()
	order := Order{Status: StatusStandard}
	assert.True(t, order.CanAttemptNow(s, at(0, 1)))
}

func TestShouldBecomeOld(t *testing.T) {
	s := testSetting()

	standard := Order{Status: StatusStandard, Attempts: 8}
	assert.False(t, standard.ShouldBecomeOld(s))
	standard.Attempts = 9
	assert.True(t, standard.ShouldBecomeOld(s))

	dated := Order{Status: StatusDated, Attempts: 4}
	assert.False(t, dated.ShouldBecomeOld(s))
	dated.Attempts = 5
	assert.True(t, dated.ShouldBecomeOld(s))

	// Old orders stay old no matter the count.
	old := Order{Status: StatusOld, Attempts: 100}
	assert.False(t, old.ShouldBecomeOld(s))
}

func TestShouldBecomeDated(t *testing.T) {
	today := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	scheduled := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	order := Order{Status: StatusStandard, ScheduledDate: &scheduled}
	assert.True(t, order.ShouldBecomeDated(today))

	tomorrow := scheduled.AddDate(0, 0, 1)
	order.ScheduledDate = &tomorrow
	assert.False(t, order.ShouldBecomeDated(today))

	order.ScheduledDate = nil
	assert.False(t, order.ShouldBecomeDated(today))

	order.Status = StatusDated
	order.ScheduledDate = &scheduled
	assert.False(t, order.ShouldBecomeDated(today))
}

func TestRecordAttempt(t *testing.T) {
	now := at(9, 15)
	order := Order{Status: StatusStandard, Attempts: 3, DailyAttempts: 1}

	order.RecordAttempt(now)

	assert.Equal(t, 4, order.Attempts)
	assert.Equal(t, 2, order.DailyAttempts)
	if assert.NotNil(t, order.LastAttemptAt) {
		assert.True(t, order.LastAttemptAt.Equal(now))
	}
}

func TestStatusTransitions(t *testing.T) {
	assert.True(t, CanTransition(StatusStandard, StatusConfirmed))
	assert.True(t, CanTransition(StatusStandard, StatusDated))
	assert.True(t, CanTransition(StatusStandard, StatusCanceled))
	assert.True(t, CanTransition(StatusStandard, StatusOld))

	// Rescheduling a dated order is allowed.
	assert.True(t, CanTransition(StatusDated, StatusDated))

	assert.True(t, CanTransition(StatusOld, StatusConfirmed))
	assert.True(t, CanTransition(StatusOld, StatusCanceled))
	assert.False(t, CanTransition(StatusOld, StatusStandard))
	assert.False(t, CanTransition(StatusOld, StatusDated))

	// Confirmed and canceled are terminal.
	for _, terminal := range []OrderStatus{StatusConfirmed, StatusCanceled} {
		assert.True(t, terminal.IsTerminal())
		for _, next := range []OrderStatus{StatusStandard, StatusDated, StatusConfirmed, StatusCanceled, StatusOld} {
			assert.False(t, CanTransition(terminal, next))
		}
	}
}

func TestParseOrderStatus(t *testing.T) {
	status, ok := ParseOrderStatus("dated")
	assert.True(t, ok)
	assert.Equal(t, StatusDated, status)

	_, ok = ParseOrderStatus("pending")
	assert.False(t, ok)
}

func TestDefaultSettingDailyBelowTotal(t *testing.T) {
	s := DefaultSetting(1)
	assert.LessOrEqual(t, s.StandardMaxDailyAttempts, s.StandardMaxTotalAttempts)
	assert.LessOrEqual(t, s.DatedMaxDailyAttempts, s.DatedMaxTotalAttempts)
}
