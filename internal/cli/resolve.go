package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/tempo/internal/domain"
)

// resolveSession accepts a full session ID or a unique prefix of one.
func resolveSession(ctx context.Context, app *App, ref string) (*domain.TimeSession, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, &domain.ValidationError{Field: "session", Reason: "must not be empty"}
	}
	s, err := app.Sessions.GetByID(ctx, ref)
	if err == nil {
		return s, nil
	}
	if !errors.Is(err, domain.ErrInvalidState) {
		return nil, err
	}

	all, err := app.Sessions.List(ctx)
	if err != nil {
		return nil, err
	}
	var matches []*domain.TimeSession
	for _, s := range all {
		if strings.HasPrefix(s.ID, ref) {
			matches = append(matches, s)
		}
	}
	switch len(matches) {
	case 0:
		return nil, &domain.InvalidStateError{Entity: "session", ID: ref, Reason: "does not exist"}
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("session prefix %q is ambiguous (%d matches)", ref, len(matches))
	}
}

// resolveActive returns the running session or an InvalidStateError.
func resolveActive(ctx context.Context, app *App) (*domain.TimeSession, error) {
	active, err := app.Sessions.Active(ctx)
	if err != nil {
		return nil, err
	}
	if active == nil {
		return nil, &domain.InvalidStateError{Entity: "session", Reason: "is not running; start one with: tempo start ACTIVITY"}
	}
	return active, nil
}

// goalByNumber maps a 1-based goal number, as printed by "session show",
// to the goal.
func goalByNumber(s *domain.TimeSession, ref string) (*domain.SessionGoal, error) {
	if len(s.Goals) == 0 {
		return nil, &domain.InvalidStateError{Entity: "session", ID: s.ID, Reason: "has no goals"}
	}
	n, err := strconv.Atoi(strings.TrimSpace(ref))
	if err != nil || n < 1 || n > len(s.Goals) {
		return nil, &domain.ValidationError{
			Field:  "goal",
			Reason: fmt.Sprintf("must be a goal number between 1 and %d", len(s.Goals)),
		}
	}
	return s.Goals[n-1], nil
}
