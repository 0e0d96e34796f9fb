package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"weeklytask/internal/storage"
	"weeklytask/internal/ui"
)

func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List saved versions of the data",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			snaps, err := svc.Snapshots(ctx, limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconUndo, "History"))
			if len(snaps) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("(nothing saved yet)"))
				return nil
			}
			for _, s := range snaps {
				fmt.Fprintf(out, "- %s %s %s\n", ui.Key.Render(fmt.Sprintf("#%d", s.ID)), s.SavedAt.Local().Format("2006-01-02 15:04:05"), ui.Muted.Render(snapshotSummary(s)))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Show at most n versions (0 for all)")
	return cmd
}

func snapshotSummary(s storage.Snapshot) string {
	d, err := storage.DecodeAppData(s.Value)
	if err != nil {
		return "(unreadable)"
	}
	return fmt.Sprintf("%s: %d tasks, %d records", orDash(d.Settings.CurrentGrade), len(d.Tasks), len(d.Records))
}
