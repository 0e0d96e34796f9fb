package root

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"weeklytask/internal/engine"
	"weeklytask/internal/ui"
)

func newSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <keyword>",
		Short: "Search daily memos and task memos",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openReadyService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			keyword := strings.Join(args, " ")
			results := svc.Search(keyword)
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconSearch, fmt.Sprintf("%q: %d results", keyword, len(results))))
			for _, r := range results {
				label := "memo"
				if r.Kind == engine.SearchTaskMemo {
					label = r.TaskTitle
				}
				fmt.Fprintf(out, "%s %s %s\n", ui.Key.Render(r.Date), ui.Muted.Render("["+label+"]"), r.Content)
			}
			return nil
		},
	}
	return cmd
}
