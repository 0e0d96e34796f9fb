package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"weeklytask/internal/ui"
)

func newRestoreCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "restore <version>",
		Short: "Roll the data back to a saved version",
		Long: `Replace the current data with a version listed by wt history.

This will:
- Replace every grade's tasks, records, memos and goals
- Keep the newer versions in history, so a restore can itself be undone`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("version is required")
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return errors.New("version must be an integer")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireYes(yes, "restore"); err != nil {
				return err
			}
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			id, _ := strconv.ParseInt(args[0], 10, 64)
			ok, err := svc.RestoreSnapshot(ctx, id)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("version #%d not found", id)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s #%d\n", ui.Warn.Render(ui.IconUndo+" Restored"), id)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm the restore")
	return cmd
}
