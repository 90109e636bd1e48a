package domain

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Rating bounds shared by productivity and distraction ratings.
const (
	MinRating     = 1
	MaxRating     = 10
	DefaultRating = 5
)

// TimeSession is one interval of tracked time. A nil EndTime means the
// session is running.
//
// ActivityID is a weak reference: it is cleared when the activity is deleted
// and never implies ownership. Activity is the resolved lookup for ActivityID
// and may be nil. SavedActivityName and SavedActivityColor are the snapshot
// of the activity's display attributes; they follow the activity while the
// reference is live and freeze once it is severed.
type TimeSession struct {
	ID         string
	ActivityID *string
	Activity   *Activity

	StartTime time.Time
	EndTime   *time.Time

	SavedActivityName  string
	SavedActivityColor Color

	Goals []*SessionGoal

	ProductivityRating int
	DistractionRating  int
	Notes              string

	CreatedAt time.Time
}

// NewTimeSession creates a running session for a, snapshotting its display
// attributes and materializing one open goal per text in order.
func NewTimeSession(a *Activity, goalTexts []string, now time.Time) (*TimeSession, error) {
	s := &TimeSession{
		ID:                 uuid.New().String(),
		StartTime:          now,
		ProductivityRating: DefaultRating,
		DistractionRating:  DefaultRating,
		CreatedAt:          now,
	}
	if a != nil {
		id := a.ID
		s.ActivityID = &id
		s.Activity = a
		s.Snapshot(a)
	}
	for _, text := range goalTexts {
		if _, err := s.AddGoal(text, false, now); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *TimeSession) IsRunning() bool {
	return s.EndTime == nil
}

// DisplayTitle is the live activity name when the reference resolves,
// otherwise the snapshot name.
func (s *TimeSession) DisplayTitle() string {
	if s.Activity != nil {
		return s.Activity.Name
	}
	return s.SavedActivityName
}

// DisplayColor is the live activity color when the reference resolves,
// otherwise the snapshot color.
func (s *TimeSession) DisplayColor() Color {
	if s.Activity != nil {
		return s.Activity.Color.Display()
	}
	return s.SavedActivityColor.Display()
}

// Snapshot copies a's display attributes into the snapshot fields.
func (s *TimeSession) Snapshot(a *Activity) {
	s.SavedActivityName = a.Name
	s.SavedActivityColor = a.Color
}

// Close sets EndTime. Closing a closed session fails and leaves EndTime as is.
func (s *TimeSession) Close(now time.Time) error {
	if !s.IsRunning() {
		return &InvalidStateError{Entity: "session", ID: s.ID, Reason: "is already closed"}
	}
	end := now
	s.EndTime = &end
	return nil
}

// EffectiveEnd is EndTime, or now for a running session.
func (s *TimeSession) EffectiveEnd(now time.Time) time.Time {
	if s.EndTime != nil {
		return *s.EndTime
	}
	return now
}

// Duration is the tracked time up to EndTime, or up to now while running.
func (s *TimeSession) Duration(now time.Time) time.Duration {
	d := s.EffectiveEnd(now).Sub(s.StartTime)
	if d < 0 {
		return 0
	}
	return d
}

// SetRatings validates both ratings before applying either.
func (s *TimeSession) SetRatings(productivity, distraction int) error {
	if err := validateRating("productivity rating", productivity); err != nil {
		return err
	}
	if err := validateRating("distraction rating", distraction); err != nil {
		return err
	}
	s.ProductivityRating = productivity
	s.DistractionRating = distraction
	return nil
}

// AddGoal appends a goal at the next position.
func (s *TimeSession) AddGoal(text string, completed bool, now time.Time) (*SessionGoal, error) {
	g, err := NewSessionGoal(text, completed, now)
	if err != nil {
		return nil, err
	}
	g.SessionID = s.ID
	g.Position = len(s.Goals)
	s.Goals = append(s.Goals, g)
	return g, nil
}

// Goal returns the goal with the given ID, or nil.
func (s *TimeSession) Goal(id string) *SessionGoal {
	for _, g := range s.Goals {
		if g.ID == id {
			return g
		}
	}
	return nil
}

// GoalProgress returns the completed and total goal counts.
func (s *TimeSession) GoalProgress() (done, total int) {
	for _, g := range s.Goals {
		if g.IsCompleted {
			done++
		}
	}
	return done, len(s.Goals)
}

func validateRating(field string, v int) error {
	if v < MinRating || v > MaxRating {
		return &ValidationError{Field: field, Reason: "must be between 1 and 10"}
	}
	return nil
}

// SessionGoal is a short objective owned by exclusively one session.
// Pre-planned goals start open; accomplishments added during review start
// completed.
type SessionGoal struct {
	ID          string
	SessionID   string
	Position    int
	Text        string
	IsCompleted bool
	CreatedAt   time.Time
}

func NewSessionGoal(text string, completed bool, now time.Time) (*SessionGoal, error) {
	if err := requireText("goal text", text); err != nil {
		return nil, err
	}
	return &SessionGoal{
		ID:          uuid.New().String(),
		Text:        strings.TrimSpace(text),
		IsCompleted: completed,
		CreatedAt:   now,
	}, nil
}

func (g *SessionGoal) Toggle() {
	g.IsCompleted = !g.IsCompleted
}

// SortByStartDesc orders sessions newest first. Ties keep their input order.
func SortByStartDesc(sessions []*TimeSession) {
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].StartTime.After(sessions[j].StartTime)
	})
}

// PreviousNotes returns the trimmed notes of the most recent session in
// sessions, if they are non-empty.
func PreviousNotes(sessions []*TimeSession) (string, bool) {
	var latest *TimeSession
	for _, s := range sessions {
		if latest == nil || s.StartTime.After(latest.StartTime) {
			latest = s
		}
	}
	if latest == nil {
		return "", false
	}
	notes := strings.TrimSpace(latest.Notes)
	return notes, notes != ""
}
