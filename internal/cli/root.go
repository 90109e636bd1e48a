package cli

import (
	"time"

	"github.com/alexanderramin/tempo/internal/calendar"
	"github.com/alexanderramin/tempo/internal/service"
	"github.com/alexanderramin/tempo/internal/stats"
	"github.com/spf13/cobra"
)

// App holds the services and process settings used by CLI commands.
type App struct {
	Activities service.ActivityService
	Sessions   service.SessionService
	Dashboard  service.DashboardService
	Timeline   service.TimelineService

	Calendar *calendar.Calendar

	// Now is the display clock. Writes use the services' own clock.
	Now func() time.Time

	// IsInteractive reports whether prompts may be shown.
	IsInteractive func() bool
}

func (a *App) now() time.Time {
	if a.Now == nil {
		return time.Now()
	}
	return a.Now()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) calendar() *calendar.Calendar {
	if a.Calendar == nil {
		return calendar.Current()
	}
	return a.Calendar
}

func (a *App) rollup() *stats.Rollup {
	return stats.New(a.calendar())
}

// NewRootCmd creates the top-level "tempo" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "tempo",
		Short:         "Track focused time against activities",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newActivityCmd(app),
		newStartCmd(app),
		newStopCmd(app),
		newSessionCmd(app),
		newDashboardCmd(app),
		newTimelineCmd(app),
		newWatchCmd(app),
	)

	return root
}
