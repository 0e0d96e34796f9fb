package root

import (
	"context"

	"github.com/spf13/cobra"

	"weeklytask/internal/tui"
)

func newBoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Open the interactive day board with a study timer",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openReadyService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			return tui.RunBoard(ctx, svc, cmd.OutOrStdout())
		},
	}

	return cmd
}
