package root

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"weeklytask/internal/ui"
)

func newNoteCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "note <task> <text>",
		Short: "Set the one-line memo on a task's record for a day",
		Args:  cobra.MinimumNArgs(2),
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
			r, ok := svc.RecordFor(t.ID, day)
			if !ok {
				return fmt.Errorf("%s has no record on %s; use `wt done` or `wt log` first", t.Title, day)
			}
			memo := strings.Join(args[1:], " ")
			if err := svc.UpdateTaskMemo(ctx, r.ID, memo); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", ui.Good.Render(ui.IconMemo+" Noted"), t.Title, ui.Muted.Render(day))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day (yyyy-mm-dd, today, yesterday)")
	return cmd
}
