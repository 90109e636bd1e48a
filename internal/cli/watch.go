package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/tempo/internal/cli/formatter"
	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/alexanderramin/tempo/internal/service"
	"github.com/alexanderramin/tempo/internal/stats"
	"github.com/alexanderramin/tempo/internal/timeline"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

const (
	tickInterval    = time.Second
	refreshInterval = 10 * time.Second
)

func newWatchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Live view of the running session and today's timeline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return errors.New("watch needs an interactive terminal")
			}
			p := tea.NewProgram(
				newWatchModel(cmd.Context(), app),
				tea.WithAltScreen(),
				tea.WithContext(cmd.Context()),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			_, err := p.Run()
			return err
		},
	}
}

// ── messages ─────────────────────────────────────────────────────────────────

// tickMsg advances the live clock.
type tickMsg time.Time

// refreshMsg asks for a reload from the database.
type refreshMsg struct{}

// watchLoadedMsg carries a fresh read of the dashboard and selected day.
type watchLoadedMsg struct {
	summary *stats.Summary
	view    *timeline.DayView
	strip   []timeline.StripDay
	err     error
}

// sessionStoppedMsg reports the result of stopping the running session.
type sessionStoppedMsg struct {
	session *domain.TimeSession
	err     error
}

// ── keys ─────────────────────────────────────────────────────────────────────

type watchKeyMap struct {
	Quit    key.Binding
	Stop    key.Binding
	Refresh key.Binding
	Prev    key.Binding
	Next    key.Binding
	Today   key.Binding
}

func defaultWatchKeys() watchKeyMap {
	return watchKeyMap{
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Stop:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "stop")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Prev:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev day")),
		Next:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next day")),
		Today:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
	}
}

func (k watchKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Stop, k.Prev, k.Next, k.Today, k.Refresh, k.Quit}
}

// ── model ────────────────────────────────────────────────────────────────────

// watchModel redraws the running session every second and reloads history
// every refreshInterval.
type watchModel struct {
	ctx  context.Context
	app  *App
	keys watchKeyMap

	vp    viewport.Model
	ready bool

	now     time.Time
	day     time.Time
	summary *stats.Summary
	view    *timeline.DayView
	strip   []timeline.StripDay

	status   string
	err      error
	quitting bool
}

func newWatchModel(ctx context.Context, app *App) *watchModel {
	if ctx == nil {
		ctx = context.Background()
	}
	now := app.now()
	return &watchModel{
		ctx:  ctx,
		app:  app,
		keys: defaultWatchKeys(),
		vp:   viewport.New(0, 0),
		now:  now,
		day:  app.calendar().StartOfDay(now),
	}
}

func (m *watchModel) Init() tea.Cmd {
	return tea.Batch(m.load(), tick(), scheduleRefresh())
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func scheduleRefresh() tea.Cmd {
	return tea.Tick(refreshInterval, func(time.Time) tea.Msg { return refreshMsg{} })
}

// ── data loading ─────────────────────────────────────────────────────────────

func (m *watchModel) load() tea.Cmd {
	ctx, app, day, now := m.ctx, m.app, m.day, m.app.now()
	return func() tea.Msg {
		summary, err := app.Dashboard.Summary(ctx, now)
		if err != nil {
			return watchLoadedMsg{err: err}
		}
		view, err := app.Timeline.Day(ctx, day, now)
		if err != nil {
			return watchLoadedMsg{err: err}
		}
		return watchLoadedMsg{summary: summary, view: view, strip: app.Timeline.Strip(day, now)}
	}
}

func (m *watchModel) stop() tea.Cmd {
	if m.summary == nil || m.summary.Active == nil {
		m.status = "Nothing is running."
		return nil
	}
	ctx, app, id := m.ctx, m.app, m.summary.Active.ID
	return func() tea.Msg {
		s, err := app.Sessions.EndWithReview(ctx, id, service.Review{})
		return sessionStoppedMsg{session: s, err: err}
	}
}

// ── update ───────────────────────────────────────────────────────────────────

func (m *watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.vp.Width = msg.Width
		m.vp.Height = max(1, msg.Height-2)
		m.ready = true
		m.render()
		return m, nil

	case tickMsg:
		m.now = m.app.now()
		m.render()
		return m, tick()

	case refreshMsg:
		return m, tea.Batch(m.load(), scheduleRefresh())

	case watchLoadedMsg:
		m.err = msg.err
		if msg.err == nil {
			m.summary, m.view, m.strip = msg.summary, msg.view, msg.strip
			m.now = msg.summary.Now
		}
		m.render()
		return m, nil

	case sessionStoppedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.render()
			return m, nil
		}
		m.status = fmt.Sprintf("Stopped %s after %s.",
			msg.session.DisplayTitle(), formatter.FormatDuration(msg.session.Duration(m.now)))
		return m, m.load()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Stop):
			cmd := m.stop()
			m.render()
			return m, cmd
		case key.Matches(msg, m.keys.Refresh):
			m.status = ""
			return m, m.load()
		case key.Matches(msg, m.keys.Prev):
			return m, m.selectDay(m.app.calendar().AddDays(m.day, -1))
		case key.Matches(msg, m.keys.Next):
			return m, m.selectDay(m.app.calendar().AddDays(m.day, 1))
		case key.Matches(msg, m.keys.Today):
			return m, m.selectDay(m.app.calendar().StartOfDay(m.app.now()))
		}
		var cmd tea.Cmd
		m.vp, cmd = m.vp.Update(msg)
		return m, cmd
	}

	return m, nil
}

// selectDay moves the timeline to day. Days after today are not selectable.
func (m *watchModel) selectDay(day time.Time) tea.Cmd {
	if day.After(m.app.calendar().StartOfDay(m.app.now())) {
		return nil
	}
	m.day = day
	return m.load()
}

// ── view rendering ───────────────────────────────────────────────────────────

func (m *watchModel) content() string {
	if m.err != nil {
		return "\n  " + formatter.StyleRed.Render("Error: "+m.err.Error())
	}
	if m.summary == nil || m.view == nil {
		return "\n  " + formatter.Dim("Loading...")
	}

	loc := m.app.calendar().Location()
	var b strings.Builder
	b.WriteString(formatter.RenderBox("Now", formatter.FormatActiveCard(m.summary.Active, m.now, loc)))
	b.WriteString("\n")
	b.WriteString(formatter.FormatStats(m.summary))
	b.WriteString("\n\n")
	b.WriteString(formatter.FormatDayView(m.view, m.strip, loc))
	if m.status != "" {
		b.WriteString("\n" + m.status)
	}
	return b.String()
}

func (m *watchModel) render() {
	if m.ready {
		m.vp.SetContent(m.content())
	}
}

func (m *watchModel) help() string {
	parts := make([]string, 0, len(m.keys.ShortHelp()))
	for _, b := range m.keys.ShortHelp() {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return formatter.Dim(strings.Join(parts, " · "))
}

func (m *watchModel) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return m.content() + "\n\n" + m.help()
	}
	return m.vp.View() + "\n\n" + m.help()
}
