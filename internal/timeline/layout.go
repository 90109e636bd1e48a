// Package timeline maps the sessions of one day onto a vertical minute axis.
// One unit is one minute from the start of the day; session intervals are
// clipped to the day and, while running, to the caller's "now".
package timeline

import (
	"sort"
	"time"

	"github.com/alexanderramin/tempo/internal/calendar"
	"github.com/alexanderramin/tempo/internal/domain"
)

// MinutesPerDay is the nominal axis height. DST days are 23 or 25 hours and
// report their real length in DayView.TotalMinutes.
const MinutesPerDay = 24 * 60

// MinHeightMinutes keeps every block visible, including zero-length ones.
const MinHeightMinutes = 2

// Geometry is a block's position on the day axis, in minutes.
type Geometry struct {
	OffsetMinutes int
	HeightMinutes int
}

// Block is a laid-out session.
type Block struct {
	Geometry
	Session      *domain.TimeSession
	Title        string
	Color        domain.Color
	Running      bool
	ClippedStart time.Time
	ClippedEnd   time.Time
}

// DayView is the layout of one day.
type DayView struct {
	Day          time.Time
	TotalMinutes int
	Blocks       []Block
	// NowOffset is the minute offset of now when now falls within Day.
	NowOffset *int
}

// StripDay is one entry of the day-picker strip.
type StripDay struct {
	Day      time.Time
	Selected bool
	IsToday  bool
}

// Engine lays out sessions using one calendar.
type Engine struct {
	cal *calendar.Calendar
}

// New returns an Engine. A nil cal uses calendar.Current().
func New(cal *calendar.Calendar) *Engine {
	if cal == nil {
		cal = calendar.Current()
	}
	return &Engine{cal: cal}
}

// SessionsOverlappingDay returns the sessions whose interval intersects day,
// ordered by start time. A running session extends to now.
func (e *Engine) SessionsOverlappingDay(sessions []*domain.TimeSession, day, now time.Time) []*domain.TimeSession {
	start, end := e.cal.StartOfDay(day), e.cal.EndOfDay(day)

	var out []*domain.TimeSession
	for _, s := range sessions {
		if s.StartTime.Before(end) && s.EffectiveEnd(now).After(start) {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartTime.Before(out[j].StartTime)
	})
	return out
}

// Layout clips s to day (and to now while running) and converts the result
// to minute offsets. Overlapping siblings are laid out independently.
func (e *Engine) Layout(s *domain.TimeSession, day, now time.Time) Geometry {
	start, end := e.clip(s, day, now)
	dayStart := e.cal.StartOfDay(day)
	return Geometry{
		OffsetMinutes: minutesSince(dayStart, start),
		HeightMinutes: max(minutesSince(start, end), MinHeightMinutes),
	}
}

func (e *Engine) clip(s *domain.TimeSession, day, now time.Time) (time.Time, time.Time) {
	dayStart, dayEnd := e.cal.StartOfDay(day), e.cal.EndOfDay(day)
	start := s.StartTime
	if start.Before(dayStart) {
		start = dayStart
	}
	end := s.EffectiveEnd(now)
	if end.After(dayEnd) {
		end = dayEnd
	}
	return start, end
}

// Day lays out every session overlapping day.
func (e *Engine) Day(sessions []*domain.TimeSession, day, now time.Time) DayView {
	dayStart, dayEnd := e.cal.StartOfDay(day), e.cal.EndOfDay(day)
	view := DayView{
		Day:          dayStart,
		TotalMinutes: minutesSince(dayStart, dayEnd),
	}

	for _, s := range e.SessionsOverlappingDay(sessions, day, now) {
		start, end := e.clip(s, day, now)
		view.Blocks = append(view.Blocks, Block{
			Geometry:     e.Layout(s, day, now),
			Session:      s,
			Title:        s.DisplayTitle(),
			Color:        s.DisplayColor(),
			Running:      s.IsRunning(),
			ClippedStart: start,
			ClippedEnd:   end,
		})
	}

	if !now.Before(dayStart) && now.Before(dayEnd) {
		offset := minutesSince(dayStart, now)
		view.NowOffset = &offset
	}
	return view
}

// WeekStrip returns the seven days centered on today, flagging selected.
func (e *Engine) WeekStrip(selected, now time.Time) []StripDay {
	days := e.cal.DaysAround(now, 3, 3)
	strip := make([]StripDay, len(days))
	for i, d := range days {
		strip[i] = StripDay{
			Day:      d,
			Selected: e.cal.SameDay(d, selected),
			IsToday:  e.cal.SameDay(d, now),
		}
	}
	return strip
}

// minutesSince returns whole minutes from a to b, truncated toward zero.
func minutesSince(a, b time.Time) int {
	return int(b.Sub(a) / time.Minute)
}
