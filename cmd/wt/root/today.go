package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"weeklytask/internal/engine"
	"weeklytask/internal/ui"
)

func newTodayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "today [date]",
		Short: "Show the tasks scheduled for a day",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openReadyService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			date, err := dateFlag(svc, input)
			if err != nil {
				return err
			}
			plan, err := svc.DayPlan(date)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconCalendar, fmt.Sprintf("%s (%s)", plan.Date, engine.WeekdayLabel(plan.Weekday))))
			if len(plan.Tasks) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("(nothing scheduled)"))
			}
			for _, p := range plan.Tasks {
				line := fmt.Sprintf("%s %s %s %s", ui.StatusIcon(string(p.Status)), ui.Swatch(p.Task.Color), p.Task.Title, ui.StatusText(string(p.Status)))
				if p.Irregular {
					line += ui.Muted.Render(" (one-off)")
				}
				if p.Task.DailyAmount > 0 {
					line += ui.Muted.Render(fmt.Sprintf(" %s %s/day", amountText(p.Task.DailyAmount), p.Task.Unit))
				}
				if p.Record != nil && p.Record.Duration > 0 {
					line += " " + ui.Minutes(p.Record.Duration)
				}
				fmt.Fprintln(out, line)
				if p.Record != nil && p.Record.Memo != "" {
					fmt.Fprintln(out, "   "+ui.Muted.Render(ui.IconMemo+" "+p.Record.Memo))
				}
			}
			fmt.Fprintln(out, "")
			fmt.Fprintln(out, ui.LabelValue("Progress", fmt.Sprintf("%d/%d (%d%%)", plan.Completed, len(plan.Tasks), plan.Progress)))
			fmt.Fprintln(out, ui.LabelValue("Studied", ui.Minutes(plan.Minutes)))
			if plan.Memo != nil {
				fmt.Fprintln(out, ui.LabelValue("Memo", plan.Memo.Content))
			}
			return nil
		},
	}
	return cmd
}
