package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/tempo/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newActivityCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "activity",
		Aliases: []string{"activities", "a"},
		Short:   "Manage activities",
	}

	cmd.AddCommand(
		newActivityAddCmd(app),
		newActivityListCmd(app),
		newActivityRenameCmd(app),
		newActivityRemoveCmd(app),
		newActivityClearHistoryCmd(app),
	)

	return cmd
}

func newActivityAddCmd(app *App) *cobra.Command {
	var color string

	cmd := &cobra.Command{
		Use:   "add [NAME]",
		Short: "Add an activity",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args, " ")
			if name == "" {
				if !app.interactive() {
					return fmt.Errorf("activity name is required")
				}
				if err := activityForm(&name, &color).Run(); err != nil {
					return err
				}
			}

			a, err := app.Activities.Create(cmd.Context(), name, color)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s %s (%s)\n",
				formatter.Swatch(a.Color), formatter.Bold(a.Name), formatter.ShortID(a.ID))
			return nil
		},
	}

	cmd.Flags().Var(newColorValue(&color), "color", "Hex color such as #fabd2f")
	return cmd
}

func newActivityListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List activities",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			activities, err := app.Activities.List(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatActivityList(activities))
			return nil
		},
	}
}

func newActivityRenameCmd(app *App) *cobra.Command {
	var name, color string

	cmd := &cobra.Command{
		Use:   "rename ACTIVITY",
		Short: "Rename or recolor an activity and the sessions that reference it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("name") && !cmd.Flags().Changed("color") {
				return fmt.Errorf("nothing to change: pass --name and/or --color")
			}
			ctx := cmd.Context()
			a, err := app.Activities.Resolve(ctx, args[0])
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("name") {
				name = a.Name
			}
			if err := app.Activities.UpdateDetails(ctx, a.ID, name, color); err != nil {
				return err
			}

			updated, err := app.Activities.GetByID(ctx, a.ID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s %s\n", formatter.Swatch(updated.Color), formatter.Bold(updated.Name))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().Var(newColorValue(&color), "color", "New hex color")
	return cmd
}

func newActivityRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "remove ACTIVITY",
		Aliases: []string{"rm"},
		Short:   "Delete an activity; its sessions are kept",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := app.Activities.Resolve(ctx, args[0])
			if err != nil {
				return err
			}

			if !yes && app.interactive() {
				confirmed := false
				form := confirmForm(
					fmt.Sprintf("Delete activity %q?", a.Name),
					"Sessions stay in your history under the same name.",
					&confirmed,
				)
				if err := form.Run(); err != nil {
					return err
				}
				if !confirmed {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
			}

			if err := app.Activities.Delete(ctx, a.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted activity %s. Its sessions are kept.\n", formatter.Bold(a.Name))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")
	return cmd
}

func newActivityClearHistoryCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear-history ACTIVITY",
		Short: "Delete every session of an activity; the activity is kept",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := app.Activities.Resolve(ctx, args[0])
			if err != nil {
				return err
			}

			if !yes && app.interactive() {
				confirmed := false
				form := confirmForm(
					fmt.Sprintf("Delete all sessions of %q?", a.Name),
					"This cannot be undone.",
					&confirmed,
				)
				if err := form.Run(); err != nil {
					return err
				}
				if !confirmed {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
			}

			n, err := app.Activities.DeleteSessionHistory(ctx, a.ID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s of %s.\n", formatter.Plural(n, "session"), formatter.Bold(a.Name))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")
	return cmd
}
