package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func d(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestAge(t *testing.T) {
	birth := d(1985, time.June, 15)

	assert.Equal(t, 40, Age(birth, d(2025, time.June, 15)))
	assert.Equal(t, 39, Age(birth, d(2025, time.June, 14)))
	assert.Equal(t, 40, Age(birth, d(2025, time.December, 1)))
}

func TestIsLeapYear(t *testing.T) {
	assert.True(t, IsLeapYear(2024))
	assert.True(t, IsLeapYear(2000))
	assert.False(t, IsLeapYear(2025))
	assert.False(t, IsLeapYear(1900))
}

func TestMonthsBetween(t *testing.T) {
	tests := []struct {
		name     string
		from, to time.Time
		want     int
	}{
		{"same instant", d(2026, time.March, 1), d(2026, time.March, 1), 0},
		{"to before from", d(2026, time.March, 1), d(2025, time.March, 1), 0},
		{"one month", d(2026, time.March, 1), d(2026, time.April, 1), 1},
		{"partial month rounds down", d(2026, time.March, 15), d(2026, time.April, 10), 0},
		{"across years", d(2025, time.November, 1), d(2026, time.February, 1), 3},
		{"whole year", d(2025, time.January, 1), d(2026, time.January, 1), 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MonthsBetween(tt.from, tt.to))
		})
	}
}

func TestActiveFraction(t *testing.T) {
	var zero time.Time

	t.Run("open window covers the whole year", func(t *testing.T) {
		assert.Equal(t, 1.0, ActiveFraction(2026, zero, zero))
	})

	t.Run("start after the year", func(t *testing.T) {
		assert.Equal(t, 0.0, ActiveFraction(2026, d(2027, time.January, 1), zero))
	})

	t.Run("end before the year", func(t *testing.T) {
		assert.Equal(t, 0.0, ActiveFraction(2026, zero, d(2025, time.June, 1)))
	})

	t.Run("mid-year start", func(t *testing.T) {
		frac := ActiveFraction(2026, d(2026, time.July, 1), zero)
		// 184 days remain from July 1.
		assert.InDelta(t, 184.0/365.0, frac, 1e-9)
	})

	t.Run("window inside the year", func(t *testing.T) {
		frac := ActiveFraction(2026, d(2026, time.March, 1), d(2026, time.June, 1))
		assert.InDelta(t, 92.0/365.0, frac, 1e-9)
	})

	t.Run("never exceeds one", func(t *testing.T) {
		frac := ActiveFraction(2026, d(2000, time.January, 1), d(2100, time.January, 1))
		assert.Equal(t, 1.0, frac)
	})
}
