package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"weeklytask/internal/engine"
	"weeklytask/internal/ui"
)

func newGradeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grade",
		Short: "Switch between per-grade workspaces",
	}
	cmd.AddCommand(newGradeSwitchCmd(), newGradeListCmd(), newGradeShowCmd())
	return cmd
}

func newGradeSwitchCmd() *cobra.Command {
	var start string
	var weekStart string
	var yes bool

	cmd := &cobra.Command{
		Use:   "switch <grade>",
		Short: "Archive the current grade and open another one",
		Long: `Archive the current grade's tasks, records, memos and goals under its label
and load the ones stored for <grade>. A grade seen for the first time starts
empty. Switching back later restores the archived data.

Changing to another grade needs --yes. Switching to the current grade only
updates its start date and week start.`,
		Args: exactArgs(1, "grade is"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openReadyService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			grade := args[0]
			if grade != svc.Data().Settings.CurrentGrade {
				if err := requireYes(yes, "change grade"); err != nil {
					return err
				}
			}
			if !cfg.KnownGrade(grade) {
				warnf(cmd, "grade %q is not in the configured grade list", grade)
			}
			startDate, err := dateFlag(svc, start)
			if err != nil {
				return err
			}
			ws := svc.Data().Settings.WeekStart
			if cmd.Flags().Changed("week-start") {
				if ws, err = engine.ParseWeekStart(weekStart); err != nil {
					return err
				}
			}
			_, known := svc.Data().GradeDataMap[grade]

			if err := svc.SwitchGrade(ctx, grade, startDate, ws); err != nil {
				return err
			}
			how := "new, empty"
			if known {
				how = "restored"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", ui.Good.Render(ui.IconSchool+" Now in"), grade, ui.Muted.Render("("+how+")"))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Tasks", len(svc.Data().Tasks)))
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "Start date of the grade (default today)")
	cmd.Flags().StringVar(&weekStart, "week-start", "", "First day of the week (default: keep current)")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm changing to another grade")
	return cmd
}

func newGradeListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the current and archived grades",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openReadyService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconSchool, "Grades"))
			for _, g := range svc.Grades() {
				line := fmt.Sprintf("- %s %s %s", g.Grade, ui.Muted.Render("from "+orDash(g.StartDate)),
					ui.Muted.Render(fmt.Sprintf("(%d tasks, %d records, %d done)", g.Tasks, g.Records, g.Completed)))
				if g.Active {
					line += " " + ui.BadgeActive
				}
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}
	return cmd
}

func newGradeShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <grade>",
		Short: "Show the tasks and goals stored for a grade",
		Args:  exactArgs(1, "grade is"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openReadyService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			g, ok := svc.GradeBundle(args[0])
			if !ok {
				return fmt.Errorf("no data stored for grade %q", args[0])
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconSchool, args[0]))
			fmt.Fprintln(out, ui.LabelValue("Start", orDash(g.StartDate)))
			fmt.Fprintln(out, ui.LabelValue("Records", len(g.Records)))
			fmt.Fprintln(out, ui.LabelValue("Memos", len(g.DailyMemos)))
			fmt.Fprintln(out, ui.H2.Render("Tasks:"))
			if len(g.Tasks) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("(none)"))
			}
			for _, t := range g.Tasks {
				fmt.Fprintf(out, "- %s %s %s\n", ui.Swatch(t.Color), t.Title, ui.Muted.Render(weekDaysText(t.WeekDays)))
			}
			if g.Goals.OneYear != "" || g.Goals.ThreeYears != "" || g.Goals.FiveYears != "" {
				fmt.Fprintln(out, ui.H2.Render("Goals:"))
				fmt.Fprintln(out, ui.LabelValue("1 year", orDash(g.Goals.OneYear)))
				fmt.Fprintln(out, ui.LabelValue("3 years", orDash(g.Goals.ThreeYears)))
				fmt.Fprintln(out, ui.LabelValue("5 years", orDash(g.Goals.FiveYears)))
			}
			return nil
		},
	}
	return cmd
}
