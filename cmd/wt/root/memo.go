package root

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"weeklytask/internal/ui"
)

func newMemoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "memo",
		Short: "Daily memos",
	}
	cmd.AddCommand(newMemoSetCmd(), newMemoListCmd(), newMemoRmCmd())
	return cmd
}

func newMemoSetCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "set <text>",
		Short: "Write the memo for a day, replacing any existing one",
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
			content := strings.Join(args, " ")
			if err := svc.UpdateDailyMemo(ctx, day, content); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Good.Render(ui.IconMemo+" Saved"), ui.Muted.Render(day))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day (yyyy-mm-dd, today, yesterday)")
	return cmd
}

func newMemoListCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List daily memos, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openReadyService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			memos := svc.DailyMemos()
			if len(memos) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("(no memos)"))
				return nil
			}
			if limit > 0 && len(memos) > limit {
				memos = memos[:limit]
			}
			for _, m := range memos {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Key.Render(m.Date), m.Content)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Show at most n memos")
	return cmd
}

func newMemoRmCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "rm",
		Short: "Delete the memo of a day",
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
			m, ok := svc.DailyMemo(day)
			if !ok {
				return fmt.Errorf("no memo on %s", day)
			}
			if err := svc.DeleteDailyMemo(ctx, m.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Warn.Render("Deleted memo"), ui.Muted.Render(day))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day (yyyy-mm-dd, today, yesterday)")
	return cmd
}
