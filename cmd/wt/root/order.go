package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"weeklytask/internal/ui"
)

func newOrderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "order",
		Short: "Display order of a day's tasks",
	}
	cmd.AddCommand(newOrderSetCmd(), newOrderRmCmd())
	return cmd
}

func newOrderSetCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "set <task>...",
		Short: "Show the given tasks first on a day, in this order",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openReadyService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			day, err := dateFlag(svc, date)
			if err != nil {
				return err
			}
			tasks := svc.Data().Tasks
			ids := make([]string, 0, len(args))
			for _, ref := range args {
				t, err := resolveTask(tasks, ref)
				if err != nil {
					return err
				}
				ids = append(ids, t.ID)
			}
			if err := svc.AddTaskOrder(ctx, day, ids); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d tasks on %s\n", ui.Good.Render("Ordered"), len(ids), day)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day (yyyy-mm-dd, today, tomorrow)")
	return cmd
}

func newOrderRmCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "rm",
		Short: "Drop the custom order of a day",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openReadyService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			day, err := dateFlag(svc, date)
			if err != nil {
				return err
			}
			if err := svc.RemoveTaskOrder(ctx, day); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Warn.Render("Order cleared"), ui.Muted.Render(day))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day (yyyy-mm-dd, today, tomorrow)")
	return cmd
}
