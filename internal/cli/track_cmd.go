package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/tempo/internal/cli/formatter"
	"github.com/alexanderramin/tempo/internal/service"
	"github.com/spf13/cobra"
)

func newStartCmd(app *App) *cobra.Command {
	var goals []string

	cmd := &cobra.Command{
		Use:   "start ACTIVITY",
		Short: "Start a session for an activity",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := app.Activities.Resolve(ctx, strings.Join(args, " "))
			if err != nil {
				return err
			}

			notes, err := app.Sessions.PreviousNotes(ctx, a.ID)
			if err != nil {
				return err
			}

			s, err := app.Sessions.Start(ctx, a.ID, goals)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Started %s %s at %s (%s)\n",
				formatter.Swatch(s.DisplayColor()),
				formatter.Bold(s.DisplayTitle()),
				formatter.FormatClock(s.StartTime, app.calendar().Location()),
				formatter.ShortID(s.ID))
			for _, g := range s.Goals {
				fmt.Fprintf(out, "  %s %s\n", formatter.GoalMark(false), g.Text)
			}

			if notes != "" {
				fmt.Fprintf(out, "\n%s\n%s\n", formatter.Header("Notes from last time"), notes)
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&goals, "goal", "g", nil, "Goal for this session (repeatable)")
	return cmd
}

func newStopCmd(app *App) *cobra.Command {
	var productivity, distraction *int
	var note string
	var done, accomplished []string

	cmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop the running session and record a review",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			active, err := resolveActive(ctx, app)
			if err != nil {
				return err
			}

			review := service.Review{
				Productivity:    productivity,
				Distraction:     distraction,
				Accomplishments: accomplished,
			}
			if cmd.Flags().Changed("note") {
				review.Notes = &note
			}
			for _, ref := range done {
				g, err := goalByNumber(active, ref)
				if err != nil {
					return err
				}
				review.CompletedGoals = append(review.CompletedGoals, g.ID)
			}

			closed, err := app.Sessions.EndWithReview(ctx, active.ID, review)
			if err != nil {
				return err
			}

			doneCount, total := closed.GoalProgress()
			line := fmt.Sprintf("Stopped %s %s after %s",
				formatter.Swatch(closed.DisplayColor()),
				formatter.Bold(closed.DisplayTitle()),
				formatter.FormatDuration(closed.Duration(app.now())))
			if total > 0 {
				line += formatter.Dim(fmt.Sprintf(" (%d/%d goals)", doneCount, total))
			}
			fmt.Fprintln(cmd.OutOrStdout(), line)
			return nil
		},
	}

	cmd.Flags().Var(newRatingValue(&productivity), "productivity", "Productivity rating")
	cmd.Flags().Var(newRatingValue(&distraction), "distraction", "Distraction rating")
	cmd.Flags().StringVar(&note, "note", "", "Notes for next time")
	cmd.Flags().StringArrayVar(&done, "done", nil, "Number of a planned goal that was completed (repeatable)")
	cmd.Flags().StringArrayVar(&accomplished, "accomplished", nil, "Something else you got done (repeatable)")
	return cmd
}
