package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2026-03-04 is a Wednesday.
var wed = time.Date(2026, 3, 4, 15, 30, 0, 0, time.UTC)

func TestStartAndEndOfDay(t *testing.T) {
	c := New(time.UTC, time.Monday)
	assert.Equal(t, time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC), c.StartOfDay(wed))
	assert.Equal(t, time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC), c.EndOfDay(wed))
}

func TestStartOfDay_UsesCalendarLocation(t *testing.T) {
	plus9 := time.FixedZone("UTC+9", 9*3600)
	c := New(plus9, time.Monday)
	// 15:30 UTC is 00:30 the next day at UTC+9.
	got := c.StartOfDay(wed)
	assert.Equal(t, time.Date(2026, 3, 5, 0, 0, 0, 0, plus9), got)
	assert.Equal(t, DayKey("2026-03-05"), c.DayBucket(wed))
}

func TestStartOfWeek_Monday(t *testing.T) {
	c := New(time.UTC, time.Monday)
	monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, monday, c.StartOfWeek(wed))
	assert.Equal(t, monday, c.StartOfWeek(monday), "monday is its own week start")

	sunday := time.Date(2026, 3, 8, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, monday, c.StartOfWeek(sunday), "sunday belongs to the week that started monday")
}

func TestStartOfWeek_Sunday(t *testing.T) {
	c := New(time.UTC, time.Sunday)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), c.StartOfWeek(wed))
}

func TestDaysBetween(t *testing.T) {
	c := New(time.UTC, time.Monday)
	late := time.Date(2026, 3, 4, 23, 59, 0, 0, time.UTC)
	early := time.Date(2026, 3, 5, 0, 1, 0, 0, time.UTC)

	assert.Equal(t, 1, c.DaysBetween(late, early), "two minutes apart but different days")
	assert.Equal(t, -1, c.DaysBetween(early, late))
	assert.Equal(t, 0, c.DaysBetween(wed, late))
	assert.Equal(t, 365, c.DaysBetween(wed, wed.AddDate(1, 0, 0)))
}

func TestDST_DayLengths(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata unavailable")
	}
	c := New(ny, time.Monday)

	// 2026-03-08 is the spring-forward day in the US.
	day := time.Date(2026, 3, 8, 12, 0, 0, 0, ny)
	start, end := c.StartOfDay(day), c.EndOfDay(day)
	assert.Equal(t, 23*time.Hour, end.Sub(start))
	assert.Equal(t, 1, c.DaysBetween(start, end))
	assert.Equal(t, time.Date(2026, 3, 9, 0, 0, 0, 0, ny), end)
}

func TestWeekDays(t *testing.T) {
	c := New(time.UTC, time.Monday)
	days := c.WeekDays(wed)
	require.Len(t, days, 7)
	assert.Equal(t, time.Monday, days[0].Weekday())
	assert.Equal(t, time.Sunday, days[6].Weekday())
	assert.Equal(t, DayKey("2026-03-08"), c.DayBucket(days[6]))
}

func TestDaysAround(t *testing.T) {
	c := New(time.UTC, time.Monday)
	days := c.DaysAround(wed, 3, 3)
	require.Len(t, days, 7)
	assert.Equal(t, DayKey("2026-03-01"), c.DayBucket(days[0]))
	assert.Equal(t, DayKey("2026-03-04"), c.DayBucket(days[3]))
	assert.Equal(t, DayKey("2026-03-07"), c.DayBucket(days[6]))
	assert.Nil(t, c.DaysAround(wed, -1, 2))
}

func TestParseDay(t *testing.T) {
	c := New(time.UTC, time.Monday)
	d, err := c.ParseDay("2026-03-04")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC), d)

	_, err = c.ParseDay("03/04/2026")
	assert.Error(t, err)
}

func TestParseWeekday(t *testing.T) {
	d, err := ParseWeekday("Monday")
	require.NoError(t, err)
	assert.Equal(t, time.Monday, d)

	d, err = ParseWeekday("sun")
	require.NoError(t, err)
	assert.Equal(t, time.Sunday, d)

	_, err = ParseWeekday("funday")
	assert.Error(t, err)
}

func TestCurrent_SetCurrent(t *testing.T) {
	prev := Current()
	t.Cleanup(func() { SetCurrent(prev) })

	require.NotNil(t, prev)
	custom := New(time.UTC, time.Sunday)
	SetCurrent(custom)
	assert.Same(t, custom, Current())

	SetCurrent(nil)
	assert.Same(t, custom, Current(), "nil is ignored")
}
