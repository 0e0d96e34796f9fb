package root

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"weeklytask/internal/engine"
	"weeklytask/internal/ui"
)

func newStatsCmd() *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Totals and streak for the current grade",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openReadyService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			if month != "" {
				m, err := time.Parse("2006-01", month)
				if err != nil {
					return engine.ValidationError{Field: "month", Value: month, Reason: "want yyyy-mm"}
				}
				sum := svc.MonthSummary(m)
				fmt.Fprintln(out, ui.Heading(ui.IconCalendar, "Month "+sum.Month))
				for _, d := range sum.Days {
					if d.Minutes == 0 && d.CompletedRecords == 0 {
						continue
					}
					fmt.Fprintf(out, "- %s %s %s %s\n", d.Date, engine.WeekdayLabel(d.Weekday), ui.Minutes(d.Minutes), ui.Muted.Render(fmt.Sprintf("(%d done)", d.CompletedRecords)))
				}
				fmt.Fprintln(out, ui.LabelValue("Studied", ui.Minutes(sum.TotalMinutes)))
				fmt.Fprintln(out, ui.LabelValue("Completed", sum.TotalCompleted))
				return nil
			}

			st := svc.Statistics(svc.Now())
			fmt.Fprintln(out, ui.Heading(ui.IconStar, "Statistics ("+svc.Data().Settings.CurrentGrade+")"))
			fmt.Fprintln(out, ui.LabelValue("Studied", ui.Minutes(st.TotalMinutes)))
			fmt.Fprintln(out, ui.LabelValue("Days with records", st.TotalDays))
			fmt.Fprintln(out, ui.LabelValue("Completed", st.TotalCompleted))
			streak := fmt.Sprintf("%d days", st.ConsecutiveDays)
			if st.ConsecutiveDays > 0 {
				streak = ui.Gold.Render(ui.IconFire + " " + streak)
			}
			fmt.Fprintln(out, ui.LabelValue("Streak", streak))
			return nil
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "Show one month day by day (yyyy-mm)")
	return cmd
}
