package root

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"weeklytask/internal/engine"
	"weeklytask/internal/ui"
)

func newWeekCmd() *cobra.Command {
	var offset int

	cmd := &cobra.Command{
		Use:   "week",
		Short: "Summarize a week day by day",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openReadyService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			week := svc.WeekSummary(svc.Now(), offset)
			today := svc.Today()
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconCalendar, fmt.Sprintf("Week %s – %s", week.Start, week.End)))
			for _, d := range week.Days {
				mark := "  "
				if d.Date == today {
					mark = "> "
				}
				done := ui.Muted.Render("·")
				if d.Studied {
					done = ui.Good.Render(ui.IconDone)
				}
				fmt.Fprintf(out, "%s%s %s %s %d/%d %s\n", mark, engine.WeekdayLabel(d.Weekday), d.Date, done, d.Done, d.Scheduled, ui.Muted.Render(padMinutes(d.Minutes)))
			}
			fmt.Fprintln(out, "")
			fmt.Fprintln(out, ui.LabelValue("Studied", ui.Minutes(week.TotalMinutes)))
			fmt.Fprintln(out, ui.LabelValue("Study days", fmt.Sprintf("%d/7", week.StudyDays)))
			return nil
		},
	}

	cmd.Flags().IntVarP(&offset, "offset", "o", 0, "Weeks from the current one (-1 is last week)")
	return cmd
}

func padMinutes(m int) string {
	s := ui.Minutes(m)
	if len(s) < 7 {
		s = strings.Repeat(" ", 7-len(s)) + s
	}
	return s
}
