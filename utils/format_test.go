package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatTND(t *testing.T) {
	assert.Equal(t, "0.000 DT", FormatTND(0))
	assert.Equal(t, "49.900 DT", FormatTND(49.9))
	assert.Equal(t, "1 250.500 DT", FormatTND(1250.5))
	assert.Equal(t, "12 250.500 DT", FormatTND(12250.5))
	assert.Equal(t, "1 000 000.000 DT", FormatTND(1000000))
	assert.Equal(t, "-1 250.500 DT", FormatTND(-1250.5))
}

func TestSameDate(t *testing.T) {
	a := time.Date(2026, 3, 10, 0, 5, 0, 0, time.UTC)
	b := time.Date(2026, 3, 10, 23, 55, 0, 0, time.UTC)
	c := time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)

	assert.True(t, SameDate(a, b))
	assert.False(t, SameDate(b, c))
}

func TestStartOfDay(t *testing.T) {
	ts := time.Date(2026, 3, 10, 18, 42, 13, 500, time.UTC)
	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), StartOfDay(ts))
}
