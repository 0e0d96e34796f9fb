package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"weeklytask/internal/ui"
)

func newDayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "day",
		Short: "Put a task on a day or take it off",
	}
	cmd.AddCommand(newDayAddCmd(), newDayRmCmd())
	return cmd
}

func newDayAddCmd() *cobra.Command {
	var date string
	var once bool

	cmd := &cobra.Command{
		Use:   "add <task>",
		Short: "Schedule a task on a day",
		Long: `Schedule a task on a day. By default the day's weekday joins the task's
recurrence; with --once the task is added to that date only.`,
		Args: exactArgs(1, "task is"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openReadyService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			t, err := resolveTask(svc.Data().Tasks, args[0])
			if err != nil {
				return err
			}
			day, err := dateFlag(svc, date)
			if err != nil {
				return err
			}
			if err := svc.AddTaskToDay(ctx, t.ID, day, once); err != nil {
				return err
			}
			how := "every week"
			if once {
				how = "once"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s on %s %s\n", ui.Good.Render(ui.IconPlus+" Scheduled"), t.Title, day, ui.Muted.Render("("+how+")"))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day (yyyy-mm-dd, today, tomorrow)")
	cmd.Flags().BoolVar(&once, "once", false, "Only this date, not the weekday")
	return cmd
}

func newDayRmCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "rm <task>",
		Short: "Take a task off a day",
		Long: `Take a task off a day. A one-off entry for the date is removed first;
otherwise the day's weekday is dropped from the task's recurrence.`,
		Args: exactArgs(1, "task is"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openReadyService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			t, err := resolveTask(svc.Data().Tasks, args[0])
			if err != nil {
				return err
			}
			day, err := dateFlag(svc, date)
			if err != nil {
				return err
			}
			if err := svc.RemoveTaskFromDay(ctx, t.ID, day); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s from %s\n", ui.Warn.Render("Removed"), t.Title, day)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day (yyyy-mm-dd, today, tomorrow)")
	return cmd
}
