package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"weeklytask/internal/ui"
)

func newDoneCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "done <task>",
		Short: "Mark a task done for a day, or undo it",
		Args:  exactArgs(1, "task is"),
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
			r, err := svc.ToggleComplete(ctx, t.ID, day)
			if err != nil {
				return err
			}
			if r.Completed {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", ui.Good.Render(ui.IconDone+" Done"), t.Title, ui.Muted.Render(day))
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", ui.Warn.Render(ui.IconUndo+" Undone"), t.Title, ui.Muted.Render(day))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day (yyyy-mm-dd, today, yesterday)")
	return cmd
}
