package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/alexanderramin/tempo/internal/stats"
	"github.com/charmbracelet/lipgloss"
)

// FormatActiveCard renders the running session with its live elapsed clock,
// or a hint when nothing runs.
func FormatActiveCard(active *domain.TimeSession, now time.Time, loc *time.Location) string {
	if active == nil {
		return Dim("No session running. Start one with: tempo start ACTIVITY")
	}
	var b strings.Builder
	b.WriteString(Swatch(active.DisplayColor()) + " " + Bold(active.DisplayTitle()) + "\n")
	b.WriteString(StyleGreen.Bold(true).Render(FormatElapsed(active.Duration(now))))
	b.WriteString(Dim("  since " + FormatClock(active.StartTime, loc)))
	for _, g := range active.Goals {
		b.WriteString("\n" + GoalMark(g.IsCompleted) + " " + g.Text)
	}
	return b.String()
}

// FormatWeekGrid renders the current week as one cell per day: filled for
// tracked days, hollow otherwise, dimmed for the future.
func FormatWeekGrid(week []stats.WeekDay) string {
	labels := make([]string, len(week))
	cells := make([]string, len(week))
	for i, d := range week {
		label := d.Label
		cell := "○"
		style := StyleDim
		switch {
		case d.HasSession:
			cell = "●"
			style = StyleGreen
		case !d.IsFuture:
			style = StyleFg
		}
		if d.IsToday {
			label = StyleHeader.Render(label)
		} else {
			label = Dim(label)
		}
		labels[i] = label
		cells[i] = style.Render(cell)
	}
	return strings.Join(labels, " ") + "\n" + strings.Join(cells, " ")
}

func statBlock(value, label string) string {
	return lipgloss.JoinVertical(lipgloss.Left, Bold(value), Dim(label))
}

// FormatStats renders streak, week and today counters side by side.
func FormatStats(s *stats.Summary) string {
	blocks := []string{
		statBlock(Plural(s.Streak, "day"), "streak"),
		statBlock(fmt.Sprintf("%d/7", s.DaysThisWeek), "days this week"),
		statBlock(fmt.Sprint(s.SessionsThisWeek), "sessions this week"),
		statBlock(FormatDuration(s.TrackedToday), "today"),
	}
	spaced := make([]string, 0, len(blocks)*2)
	for i, b := range blocks {
		if i > 0 {
			spaced = append(spaced, "    ")
		}
		spaced = append(spaced, b)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, spaced...)
}

// FormatDashboard renders the full dashboard.
func FormatDashboard(s *stats.Summary, loc *time.Location) string {
	var b strings.Builder
	b.WriteString(RenderBox("Now", FormatActiveCard(s.Active, s.Now, loc)))
	b.WriteString("\n")
	b.WriteString(RenderBox("This week", FormatStats(s)+"\n\n"+FormatWeekGrid(s.Week)))
	b.WriteString("\n")
	b.WriteString(RenderBox("Recent", strings.TrimRight(FormatSessionGroups(s.Recent, s.Now, loc), "\n")))
	b.WriteString("\n")
	return b.String()
}
