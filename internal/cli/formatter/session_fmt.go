package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/alexanderramin/tempo/internal/stats"
)

// FormatActivityList renders activities as a table.
func FormatActivityList(activities []*domain.Activity) string {
	if len(activities) == 0 {
		return Dim("No activities yet. Add one with: tempo activity add NAME") + "\n"
	}
	headers := []string{"ID", "", "NAME", "COLOR"}
	rows := make([][]string, 0, len(activities))
	for _, a := range activities {
		rows = append(rows, []string{
			TruncID(a.ID),
			Swatch(a.Color),
			a.Name,
			Dim(string(a.Color.Display())),
		})
	}
	return RenderBox("Activities", RenderTable(headers, rows))
}

// FormatSessionRow renders one session as a single line: swatch, title,
// span, duration and goal progress.
func FormatSessionRow(s *domain.TimeSession, now time.Time, loc *time.Location) string {
	parts := []string{
		Swatch(s.DisplayColor()),
		TruncID(s.ID),
		ActivityStyle(s.DisplayColor()).Render(s.DisplayTitle()),
		Dim(FormatSpan(s.StartTime, s.EndTime, loc)),
	}
	if s.IsRunning() {
		parts = append(parts, StyleGreen.Render(FormatElapsed(s.Duration(now))))
	} else {
		parts = append(parts, FormatDuration(s.Duration(now)))
	}
	if progress := RenderGoalProgress(s.GoalProgress()); progress != "" {
		parts = append(parts, progress)
	}
	return strings.Join(parts, "  ")
}

// FormatSessionGroups renders day groups under their labels.
func FormatSessionGroups(groups []stats.DayGroup, now time.Time, loc *time.Location) string {
	if len(groups) == 0 {
		return Dim("No sessions yet.") + "\n"
	}
	var b strings.Builder
	for i, g := range groups {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(StyleHeader.Render(g.Label))
		b.WriteString("\n")
		for _, s := range g.Sessions {
			b.WriteString("  ")
			b.WriteString(FormatSessionRow(s, now, loc))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// FormatSessionDetail renders every field of a session, goals included.
func FormatSessionDetail(s *domain.TimeSession, now time.Time, loc *time.Location) string {
	var b strings.Builder

	title := Swatch(s.DisplayColor()) + " " + Bold(s.DisplayTitle())
	if s.Activity == nil {
		title += Dim(" (activity deleted)")
	}
	b.WriteString(title + "\n\n")

	state := Dim("closed")
	if s.IsRunning() {
		state = StyleGreen.Render("running")
	}
	fmt.Fprintf(&b, "%s  %s\n", Dim("ID      "), s.ID)
	fmt.Fprintf(&b, "%s  %s\n", Dim("State   "), state)
	fmt.Fprintf(&b, "%s  %s %s\n", Dim("When    "), s.StartTime.In(loc).Format("Mon Jan 2"), FormatSpan(s.StartTime, s.EndTime, loc))
	if s.IsRunning() {
		fmt.Fprintf(&b, "%s  %s\n", Dim("Elapsed "), FormatElapsed(s.Duration(now)))
	} else {
		fmt.Fprintf(&b, "%s  %s\n", Dim("Duration"), FormatDuration(s.Duration(now)))
	}
	fmt.Fprintf(&b, "%s  %s\n", Dim("Focus   "), RenderRatingBar(s.ProductivityRating, false))
	fmt.Fprintf(&b, "%s  %s\n", Dim("Distract"), RenderRatingBar(s.DistractionRating, true))

	if len(s.Goals) > 0 {
		b.WriteString("\n" + Header("Goals") + "\n")
		for i, g := range s.Goals {
			fmt.Fprintf(&b, "%2d. %s %s\n", i+1, GoalMark(g.IsCompleted), g.Text)
		}
	}
	if notes := strings.TrimSpace(s.Notes); notes != "" {
		b.WriteString("\n" + Header("Notes") + "\n" + notes + "\n")
	}
	return RenderBox("Session", strings.TrimRight(b.String(), "\n"))
}
