package entity

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFreeVolume(t *testing.T) {

	s := Sending{TotalVolume: decimal.RequireFromString("10")}

	t.Run("no orders", func(t *testing.T) {
		free := s.FreeVolume(nil)
		assert.True(t, free.Equal(decimal.RequireFromString("10")), "got %s", free)
	})

	t.Run("single order", func(t *testing.T) {
		orders := []Order{orderWithDims("100", "60", "50")} // 0.3 m^3
		free := s.FreeVolume(orders)
		assert.True(t, free.Equal(decimal.RequireFromString("9.7")), "got %s", free)
	})

	t.Run("tie in the summed volume rounds to even", func(t *testing.T) {
		orders := []Order{orderWithDims("50", "50", "50")} // 0.125 m^3
		free := s.FreeVolume(orders)
		assert.True(t, free.Equal(decimal.RequireFromString("9.88")), "got %s", free)
	})

	t.Run("overbooked goes negative", func(t *testing.T) {
		orders := []Order{
			orderWithDims("300", "200", "100"), // 6 m^3
			orderWithDims("300", "200", "100"),
		}
		free := s.FreeVolume(orders)
		assert.True(t, free.IsNegative(), "got %s", free)
		assert.True(t, free.Equal(decimal.RequireFromString("-2")), "got %s", free)
	})
}

func TestDays(t *testing.T) {

	s := Sending{
		DepartureDate: time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC),
		ArrivalDate:   time.Date(2023, 5, 4, 0, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, 3, s.Days())
	assert.Equal(t, "3 дня", s.DaysLabel())
}

func TestDayWord(t *testing.T) {

	cases := []struct {
		n        int
		expected string
	}{
		{1, "день"},
		{2, "дня"},
		{4, "дня"},
		{5, "дней"},
		{10, "дней"},
		{11, "дней"},
		{12, "дней"},
		{14, "дней"},
		{21, "день"},
		{22, "дня"},
		{25, "дней"},
		{100, "дней"},
		{101, "день"},
		{111, "дней"},
		{0, "дней"},
		// Arrival before departure still produces a label.
		{-1, "дней"},
		{-2, "дней"},
	}

	for _, c := range cases {
		assert.Equal(t, c.expected, DayWord(c.n), "n=%d", c.n)
	}
}
