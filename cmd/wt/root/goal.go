package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"weeklytask/internal/ui"
)

func newGoalCmd() *cobra.Command {
	var oneYear string
	var threeYears string
	var fiveYears string

	cmd := &cobra.Command{
		Use:   "goal",
		Short: "Show or set the current grade's long-term goals",
		Example: `  wt goal
  wt goal --one "Finish the kanji book" --three "Pass the entrance exam"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openReadyService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			goals := svc.Data().Goals
			flags := cmd.Flags()
			if flags.Changed("one") || flags.Changed("three") || flags.Changed("five") {
				if flags.Changed("one") {
					goals.OneYear = oneYear
				}
				if flags.Changed("three") {
					goals.ThreeYears = threeYears
				}
				if flags.Changed("five") {
					goals.FiveYears = fiveYears
				}
				if err := svc.UpdateGoals(ctx, goals); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconStar, "Goals"))
			fmt.Fprintln(out, ui.LabelValue("1 year", orDash(goals.OneYear)))
			fmt.Fprintln(out, ui.LabelValue("3 years", orDash(goals.ThreeYears)))
			fmt.Fprintln(out, ui.LabelValue("5 years", orDash(goals.FiveYears)))
			return nil
		},
	}

	cmd.Flags().StringVar(&oneYear, "one", "", "One-year goal")
	cmd.Flags().StringVar(&threeYears, "three", "", "Three-year goal")
	cmd.Flags().StringVar(&fiveYears, "five", "", "Five-year goal")
	return cmd
}

func orDash(s string) string {
	if s == "" {
		return ui.Muted.Render("-")
	}
	return s
}
