package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"weeklytask/internal/ui"
)

func newResetCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all data, every grade and the history",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireYes(yes, "reset"); err != nil {
				return err
			}
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := svc.Reset(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render(ui.IconWarn+" All data deleted. Run `wt setup` to start over."))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm the reset")
	return cmd
}
