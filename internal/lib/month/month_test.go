package month

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNextDueDate(t *testing.T) {
	tests := []struct {
		name       string
		last       time.Time
		recurrence int
		want       time.Time
	}{
		{
			name:       "месячный план",
			last:       date(2025, time.January, 10),
			recurrence: 1,
			want:       date(2025, time.February, 10),
		},
		{
			name:       "годовой план",
			last:       date(2025, time.January, 10),
			recurrence: 12,
			want:       date(2026, time.January, 10),
		},
		{
			name:       "нулевой период трактуется как месяц",
			last:       date(2025, time.January, 10),
			recurrence: 0,
			want:       date(2025, time.February, 10),
		},
		{
			name:       "переход через конец года",
			last:       date(2025, time.December, 15),
			recurrence: 1,
			want:       date(2026, time.January, 15),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextDueDate(tt.last, tt.recurrence))
		})
	}
}

func TestMonthsBetween(t *testing.T) {
	tests := []struct {
		name string
		from time.Time
		to   time.Time
		want int
	}{
		{
			name: "ровно один месяц",
			from: date(2025, time.January, 10),
			to:   date(2025, time.February, 10),
			want: 1,
		},
		{
			name: "неполный месяц не считается",
			from: date(2025, time.January, 10),
			to:   date(2025, time.February, 9),
			want: 0,
		},
		{
			name: "to раньше from дает ноль",
			from: date(2025, time.February, 10),
			to:   date(2025, time.January, 10),
			want: 0,
		},
		{
			name: "год и два месяца",
			from: date(2024, time.January, 10),
			to:   date(2025, time.March, 10),
			want: 14,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MonthsBetween(tt.from, tt.to))
		})
	}
}
