// Package calendar holds the day and week boundary arithmetic shared by the
// rollup and timeline engines. A Calendar is immutable; the process uses one
// Calendar for all bucketing, installed with SetCurrent at startup.
package calendar

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"
)

// DayLayout is the textual form of a DayKey.
const DayLayout = "2006-01-02"

// DayKey is a date-only grouping key such as "2026-03-02".
type DayKey string

// Calendar resolves instants to civil days in one location, with weeks
// anchored on WeekStart.
type Calendar struct {
	loc       *time.Location
	weekStart time.Weekday
}

// New returns a Calendar. A nil loc means time.Local.
func New(loc *time.Location, weekStart time.Weekday) *Calendar {
	if loc == nil {
		loc = time.Local
	}
	return &Calendar{loc: loc, weekStart: weekStart}
}

var current atomic.Pointer[Calendar]

func init() {
	current.Store(New(time.Local, time.Monday))
}

// Current returns the process-wide calendar. It defaults to time.Local with
// Monday-anchored weeks.
func Current() *Calendar {
	return current.Load()
}

// SetCurrent replaces the process-wide calendar. A nil c is ignored.
func SetCurrent(c *Calendar) {
	if c != nil {
		current.Store(c)
	}
}

func (c *Calendar) Location() *time.Location { return c.loc }

func (c *Calendar) WeekStart() time.Weekday { return c.weekStart }

// StartOfDay returns midnight of t's civil day in the calendar location.
func (c *Calendar) StartOfDay(t time.Time) time.Time {
	y, m, d := t.In(c.loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, c.loc)
}

// EndOfDay returns the start of the following day, the exclusive upper bound
// of t's day. Days are not assumed to be 24 hours long.
func (c *Calendar) EndOfDay(t time.Time) time.Time {
	return c.AddDays(t, 1)
}

// AddDays returns the start of the day n days after t's day.
func (c *Calendar) AddDays(t time.Time, n int) time.Time {
	y, m, d := t.In(c.loc).Date()
	return time.Date(y, m, d+n, 0, 0, 0, 0, c.loc)
}

// StartOfWeek returns the start of the first day of t's week.
func (c *Calendar) StartOfWeek(t time.Time) time.Time {
	offset := (int(t.In(c.loc).Weekday()) - int(c.weekStart) + 7) % 7
	return c.AddDays(t, -offset)
}

// DayBucket returns the grouping key of t's day.
func (c *Calendar) DayBucket(t time.Time) DayKey {
	return DayKey(t.In(c.loc).Format(DayLayout))
}

// DaysBetween returns the signed number of calendar days from a to b,
// ignoring time of day.
func (c *Calendar) DaysBetween(a, b time.Time) int {
	ay, am, ad := a.In(c.loc).Date()
	by, bm, bd := b.In(c.loc).Date()
	// Civil dates compared in UTC have no DST gaps.
	ua := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	ub := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}

// SameDay reports whether a and b fall on the same civil day.
func (c *Calendar) SameDay(a, b time.Time) bool {
	return c.DayBucket(a) == c.DayBucket(b)
}

// WeekDays returns the start of each of the seven days of t's week.
func (c *Calendar) WeekDays(t time.Time) []time.Time {
	start := c.StartOfWeek(t)
	days := make([]time.Time, 7)
	for i := range days {
		days[i] = c.AddDays(start, i)
	}
	return days
}

// DaysAround returns the days from t-before through t+after inclusive.
func (c *Calendar) DaysAround(t time.Time, before, after int) []time.Time {
	if before < 0 || after < 0 {
		return nil
	}
	days := make([]time.Time, 0, before+after+1)
	for i := -before; i <= after; i++ {
		days = append(days, c.AddDays(t, i))
	}
	return days
}

// ParseDay parses a DayKey ("2006-01-02") into the start of that day.
func (c *Calendar) ParseDay(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DayLayout, strings.TrimSpace(s), c.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing day %q (want YYYY-MM-DD): %w", s, err)
	}
	return t, nil
}

// ParseWeekday accepts full or three-letter English weekday names.
func ParseWeekday(s string) (time.Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToLower(d.String())
		if s == name || s == name[:3] {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", s)
}
