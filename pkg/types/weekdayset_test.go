package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseWeekdaySet(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{
			name: "JSON массив",
			raw:  `["Monday","Wednesday","Friday"]`,
			want: []string{"Monday", "Wednesday", "Friday"},
		},
		{
			name: "строка через запятую",
			raw:  "Monday,Tuesday",
			want: []string{"Monday", "Tuesday"},
		},
		{
			name: "запятая с пробелами и регистр",
			raw:  "saturday, SUNDAY",
			want: []string{"Saturday", "Sunday"},
		},
		{
			name: "неизвестные дни игнорируются",
			raw:  "Monday,Someday",
			want: []string{"Monday"},
		},
		{
			name: "пустая строка",
			raw:  "",
			want: []string{},
		},
		{
			name: "битый JSON даёт пустой набор",
			raw:  `["Monday"`,
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseWeekdaySet(tt.raw)
			assert.Equal(t, tt.want, got.Names())
		})
	}
}

func TestWeekdaySet_Contains(t *testing.T) {
	set := NewWeekdaySet(time.Monday, time.Friday)

	assert.True(t, set.Contains(time.Monday))
	assert.True(t, set.Contains(time.Friday))
	assert.False(t, set.Contains(time.Sunday))
}

func TestWeekdaySet_IsEmpty(t *testing.T) {
	assert.True(t, NewWeekdaySet().IsEmpty())
	assert.False(t, FullWeek().IsEmpty())
}

func TestWeekdaySet_NamesOrdered(t *testing.T) {
	set := NewWeekdaySet(time.Sunday, time.Monday, time.Wednesday)

	// Неделя начинается с понедельника
	assert.Equal(t, []string{"Monday", "Wednesday", "Sunday"}, set.Names())
}

func TestFullWeek(t *testing.T) {
	assert.Len(t, FullWeek().Names(), 7)
}
