package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/tempo/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newTimelineCmd(app *App) *cobra.Command {
	var date string
	var offset int

	cmd := &cobra.Command{
		Use:     "timeline",
		Aliases: []string{"tl", "day"},
		Short:   "Show one day's sessions on a time axis",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now := app.now()
			day, err := selectedDay(app, date, offset, now)
			if err != nil {
				return err
			}

			view, err := app.Timeline.Day(cmd.Context(), day, now)
			if err != nil {
				return err
			}
			strip := app.Timeline.Strip(day, now)
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatDayView(view, strip, app.calendar().Location()))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day to show (YYYY-MM-DD, default today)")
	cmd.Flags().IntVar(&offset, "offset", 0, "Days relative to --date, e.g. -1 for the day before")
	return cmd
}

func selectedDay(app *App, date string, offset int, now time.Time) (time.Time, error) {
	cal := app.calendar()
	day := cal.StartOfDay(now)
	if date != "" {
		parsed, err := cal.ParseDay(date)
		if err != nil {
			return time.Time{}, err
		}
		day = parsed
	}
	return cal.AddDays(day, offset), nil
}
