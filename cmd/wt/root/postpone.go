package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"weeklytask/internal/ui"
)

func newPostponeCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "postpone <task>",
		Short: "Mark a task as postponed for a day",
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
			if _, ok := svc.RecordFor(t.ID, day); ok {
				warnf(cmd, "%s already has a record on %s; the day shows the first one", t.Title, day)
			}
			if _, err := svc.Postpone(ctx, t.ID, day); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", ui.Warn.Render(ui.IconLater+" Postponed"), t.Title, ui.Muted.Render(day))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day (yyyy-mm-dd, today, yesterday)")
	return cmd
}
