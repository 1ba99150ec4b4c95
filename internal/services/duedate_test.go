package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func TestNextDueDate(t *testing.T) {
	tests := []struct {
		name   string
		dueDay int
		today  time.Time
		want   string
	}{
		{"later this month", 20, day(2026, time.March, 10), "2026-03-20"},
		{"already passed, next month", 5, day(2026, time.March, 10), "2026-04-05"},
		{"today is the due day", 10, day(2026, time.March, 10), "2026-03-10"},
		{"day 31 skips April", 31, day(2026, time.April, 1), "2026-05-31"},
		{"day 30 skips February", 30, day(2026, time.February, 1), "2026-03-30"},
		{"day 29 in a leap year", 29, day(2028, time.February, 1), "2028-02-29"},
		{"day 29 skips a non-leap February", 29, day(2026, time.February, 1), "2026-03-29"},
		{"year rollover", 15, day(2026, time.December, 20), "2027-01-15"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextDueDate(tt.dueDay, tt.today))
		})
	}
}

func TestValidDueDay(t *testing.T) {
	assert.True(t, ValidDueDay(1))
	assert.True(t, ValidDueDay(31))
	assert.False(t, ValidDueDay(0))
	assert.False(t, ValidDueDay(32))
	assert.False(t, ValidDueDay(-1))
}
