package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/tempo/internal/cli/formatter"
	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/spf13/cobra"
)

func newSessionCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "session",
		Aliases: []string{"sessions", "s"},
		Short:   "Review and edit sessions",
	}

	cmd.AddCommand(
		newSessionListCmd(app),
		newSessionShowCmd(app),
		newSessionGoalCmd(app),
		newSessionRateCmd(app),
		newSessionNoteCmd(app),
		newSessionRemoveCmd(app),
	)

	return cmd
}

func newSessionListCmd(app *App) *cobra.Command {
	var limit int
	var activityRef string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List sessions grouped by day, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var sessions []*domain.TimeSession
			var err error
			if activityRef != "" {
				a, resolveErr := app.Activities.Resolve(ctx, activityRef)
				if resolveErr != nil {
					return resolveErr
				}
				sessions, err = app.Sessions.ListByActivity(ctx, a.ID)
			} else {
				sessions, err = app.Sessions.List(ctx)
			}
			if err != nil {
				return err
			}

			domain.SortByStartDesc(sessions)
			if limit > 0 && len(sessions) > limit {
				sessions = sessions[:limit]
			}

			now := app.now()
			groups := app.rollup().GroupByDay(sessions, now)
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSessionGroups(groups, now, app.calendar().Location()))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum sessions to show (0 for all)")
	cmd.Flags().StringVar(&activityRef, "activity", "", "Only sessions of this activity")
	return cmd
}

func newSessionShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show [SESSION]",
		Short: "Show a session; defaults to the running one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var s *domain.TimeSession
			var err error
			if len(args) == 0 {
				s, err = resolveActive(ctx, app)
			} else {
				s, err = resolveSession(ctx, app, args[0])
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSessionDetail(s, app.now(), app.calendar().Location()))
			return nil
		},
	}
}

func newSessionGoalCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goal",
		Short: "Add or toggle session goals",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add SESSION TEXT",
			Short: "Record a completed accomplishment on a session",
			Args:  cobra.MinimumNArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx := cmd.Context()
				s, err := resolveSession(ctx, app, args[0])
				if err != nil {
					return err
				}
				g, err := app.Sessions.AddAccomplishment(ctx, s.ID, strings.Join(args[1:], " "))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", formatter.GoalMark(g.IsCompleted), g.Text)
				return nil
			},
		},
		&cobra.Command{
			Use:   "toggle SESSION NUMBER",
			Short: "Toggle a goal by its number in \"session show\"",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx := cmd.Context()
				s, err := resolveSession(ctx, app, args[0])
				if err != nil {
					return err
				}
				g, err := goalByNumber(s, args[1])
				if err != nil {
					return err
				}
				g, err = app.Sessions.ToggleGoal(ctx, g.ID)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", formatter.GoalMark(g.IsCompleted), g.Text)
				return nil
			},
		},
	)

	return cmd
}

func newSessionRateCmd(app *App) *cobra.Command {
	var productivity, distraction *int

	cmd := &cobra.Command{
		Use:   "rate SESSION",
		Short: "Set productivity and distraction ratings (1-10)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if productivity == nil && distraction == nil {
				return fmt.Errorf("nothing to change: pass --productivity and/or --distraction")
			}
			ctx := cmd.Context()
			s, err := resolveSession(ctx, app, args[0])
			if err != nil {
				return err
			}
			p, d := s.ProductivityRating, s.DistractionRating
			if productivity != nil {
				p = *productivity
			}
			if distraction != nil {
				d = *distraction
			}
			if err := app.Sessions.Rate(ctx, s.ID, p, d); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n", formatter.Dim("Focus   "), formatter.RenderRatingBar(p, false))
			fmt.Fprintf(out, "%s %s\n", formatter.Dim("Distract"), formatter.RenderRatingBar(d, true))
			return nil
		},
	}

	cmd.Flags().Var(newRatingValue(&productivity), "productivity", "Productivity rating")
	cmd.Flags().Var(newRatingValue(&distraction), "distraction", "Distraction rating")
	return cmd
}

func newSessionNoteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "note SESSION TEXT",
		Short: "Replace a session's notes",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := resolveSession(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Sessions.SetNotes(ctx, s.ID, strings.Join(args[1:], " ")); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Notes saved.")
			return nil
		},
	}
}

func newSessionRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove SESSION",
		Aliases: []string{"rm"},
		Short:   "Delete a session and its goals",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := resolveSession(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Sessions.Delete(ctx, s.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted session %s (%s).\n", formatter.ShortID(s.ID), s.DisplayTitle())
			return nil
		},
	}
}
