// Package stats rolls session history up into streaks, weekly counts and
// day-grouped lists. Every function is a pure function of its inputs; the
// reference instant is always passed in by the caller.
package stats

import (
	"sort"
	"time"

	"github.com/alexanderramin/tempo/internal/calendar"
	"github.com/alexanderramin/tempo/internal/domain"
)

// Labels used by GroupByDay for the two most recent days.
const (
	LabelToday     = "Today"
	LabelYesterday = "Yesterday"
)

// DefaultRecentLimit is how many closed sessions the dashboard lists.
const DefaultRecentLimit = 8

// Rollup computes aggregates over session history using one calendar.
type Rollup struct {
	cal *calendar.Calendar
}

// New returns a Rollup. A nil cal uses calendar.Current().
func New(cal *calendar.Calendar) *Rollup {
	if cal == nil {
		cal = calendar.Current()
	}
	return &Rollup{cal: cal}
}

// DayGroup is a run of consecutive sessions sharing a day label.
type DayGroup struct {
	Label    string
	Sessions []*domain.TimeSession
}

// WeekDay is one cell of the current-week grid.
type WeekDay struct {
	Day        time.Time
	Label      string
	HasSession bool
	IsToday    bool
	IsFuture   bool
}

// Summary is everything the dashboard shows, computed in one pass.
type Summary struct {
	Now              time.Time
	Active           *domain.TimeSession
	Streak           int
	DaysThisWeek     int
	SessionsThisWeek int
	TrackedToday     time.Duration
	Week             []WeekDay
	Recent           []DayGroup
}

// dayIndex is the set of days on which at least one session started.
type dayIndex map[calendar.DayKey]struct{}

func (r *Rollup) index(sessions []*domain.TimeSession) dayIndex {
	idx := make(dayIndex, len(sessions))
	for _, s := range sessions {
		idx[r.cal.DayBucket(s.StartTime)] = struct{}{}
	}
	return idx
}

func (idx dayIndex) has(key calendar.DayKey) bool {
	_, ok := idx[key]
	return ok
}

// HasSessionOnDay reports whether any session started within day's
// [startOfDay, endOfDay) range.
func (r *Rollup) HasSessionOnDay(sessions []*domain.TimeSession, day time.Time) bool {
	start, end := r.cal.StartOfDay(day), r.cal.EndOfDay(day)
	for _, s := range sessions {
		if !s.StartTime.Before(start) && s.StartTime.Before(end) {
			return true
		}
	}
	return false
}

// CurrentStreak counts consecutive days with a session, walking backward
// from today. When no session has started today the walk starts at
// yesterday, so a day still in progress does not break the streak. That
// includes a session running since before midnight: it counts for the day
// it started on, not for today.
func (r *Rollup) CurrentStreak(sessions []*domain.TimeSession, now time.Time) int {
	idx := r.index(sessions)
	check := r.cal.StartOfDay(now)

	if !idx.has(r.cal.DayBucket(check)) {
		check = r.cal.AddDays(check, -1)
	}

	streak := 0
	for idx.has(r.cal.DayBucket(check)) {
		streak++
		check = r.cal.AddDays(check, -1)
	}
	return streak
}

// DaysTrackedThisWeek counts the days from the start of now's week through
// today that have at least one session.
func (r *Rollup) DaysTrackedThisWeek(sessions []*domain.TimeSession, now time.Time) int {
	idx := r.index(sessions)
	today := r.cal.StartOfDay(now)

	count := 0
	for _, day := range r.cal.WeekDays(now) {
		if day.After(today) {
			break
		}
		if idx.has(r.cal.DayBucket(day)) {
			count++
		}
	}
	return count
}

// TotalSessionsThisWeek counts sessions that started in
// [startOfWeek(now), endOfDay(now)).
func (r *Rollup) TotalSessionsThisWeek(sessions []*domain.TimeSession, now time.Time) int {
	from, to := r.cal.StartOfWeek(now), r.cal.EndOfDay(now)
	count := 0
	for _, s := range sessions {
		if !s.StartTime.Before(from) && s.StartTime.Before(to) {
			count++
		}
	}
	return count
}

// DayLabel is "Today", "Yesterday", or a "Monday, Jan 2" date relative to now.
func (r *Rollup) DayLabel(t, now time.Time) string {
	switch r.cal.DaysBetween(t, now) {
	case 0:
		return LabelToday
	case 1:
		return LabelYesterday
	default:
		return t.In(r.cal.Location()).Format("Monday, Jan 2")
	}
}

// GroupByDay run-length encodes sessions, which the caller has already
// sorted, by day label. Labels that recur non-contiguously start a new group.
func (r *Rollup) GroupByDay(sessions []*domain.TimeSession, now time.Time) []DayGroup {
	var groups []DayGroup
	for _, s := range sessions {
		label := r.DayLabel(s.StartTime, now)
		if n := len(groups); n > 0 && groups[n-1].Label == label {
			groups[n-1].Sessions = append(groups[n-1].Sessions, s)
			continue
		}
		groups = append(groups, DayGroup{Label: label, Sessions: []*domain.TimeSession{s}})
	}
	return groups
}

// WeekGrid returns the seven days of now's week with tracking flags.
func (r *Rollup) WeekGrid(sessions []*domain.TimeSession, now time.Time) []WeekDay {
	idx := r.index(sessions)
	today := r.cal.StartOfDay(now)

	days := r.cal.WeekDays(now)
	grid := make([]WeekDay, len(days))
	for i, day := range days {
		grid[i] = WeekDay{
			Day:        day,
			Label:      day.Weekday().String()[:1],
			HasSession: idx.has(r.cal.DayBucket(day)),
			IsToday:    day.Equal(today),
			IsFuture:   day.After(today),
		}
	}
	return grid
}

// TrackedBetween sums the tracked time of sessions clipped to [from, to).
// Running sessions count up to now.
func TrackedBetween(sessions []*domain.TimeSession, from, to, now time.Time) time.Duration {
	var total time.Duration
	for _, s := range sessions {
		start, end := s.StartTime, s.EffectiveEnd(now)
		if start.Before(from) {
			start = from
		}
		if end.After(to) {
			end = to
		}
		if end.After(start) {
			total += end.Sub(start)
		}
	}
	return total
}

// ActiveSession returns the running session, or nil. If the history
// violates the single-running invariant the most recently started one wins.
func ActiveSession(sessions []*domain.TimeSession) *domain.TimeSession {
	var active *domain.TimeSession
	for _, s := range sessions {
		if s.IsRunning() && (active == nil || s.StartTime.After(active.StartTime)) {
			active = s
		}
	}
	return active
}

// RecentSessions returns up to limit closed sessions, newest first. The
// input slice is not modified.
func RecentSessions(sessions []*domain.TimeSession, limit int) []*domain.TimeSession {
	closed := make([]*domain.TimeSession, 0, len(sessions))
	for _, s := range sessions {
		if !s.IsRunning() {
			closed = append(closed, s)
		}
	}
	sort.SliceStable(closed, func(i, j int) bool {
		return closed[i].StartTime.After(closed[j].StartTime)
	})
	if limit >= 0 && len(closed) > limit {
		closed = closed[:limit]
	}
	return closed
}

// Summarize computes the dashboard summary. recentLimit <= 0 uses
// DefaultRecentLimit.
func (r *Rollup) Summarize(sessions []*domain.TimeSession, now time.Time, recentLimit int) Summary {
	if recentLimit <= 0 {
		recentLimit = DefaultRecentLimit
	}
	return Summary{
		Now:              now,
		Active:           ActiveSession(sessions),
		Streak:           r.CurrentStreak(sessions, now),
		DaysThisWeek:     r.DaysTrackedThisWeek(sessions, now),
		SessionsThisWeek: r.TotalSessionsThisWeek(sessions, now),
		TrackedToday:     TrackedBetween(sessions, r.cal.StartOfDay(now), r.cal.EndOfDay(now), now),
		Week:             r.WeekGrid(sessions, now),
		Recent:           r.GroupByDay(RecentSessions(sessions, recentLimit), now),
	}
}
