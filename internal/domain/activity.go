package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Activity is a named, colored category that time is tracked against.
// Name uniqueness is not enforced.
type Activity struct {
	ID        string
	Name      string
	Color     Color
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewActivity validates name and color and returns an activity with a fresh ID.
func NewActivity(name, color string, now time.Time) (*Activity, error) {
	a := &Activity{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now}
	if err := a.SetDetails(name, color, now); err != nil {
		return nil, err
	}
	return a, nil
}

// SetDetails renames and recolors the activity in place. Nothing changes
// when validation fails.
func (a *Activity) SetDetails(name, color string, now time.Time) error {
	if err := requireText("activity name", name); err != nil {
		return err
	}
	c, err := ParseColor(color)
	if err != nil {
		return err
	}
	a.Name = strings.TrimSpace(name)
	a.Color = c
	a.UpdatedAt = now
	return nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
