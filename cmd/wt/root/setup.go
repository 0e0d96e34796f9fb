package root

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"weeklytask/internal/engine"
	"weeklytask/internal/storage"
	"weeklytask/internal/ui"
)

func newSetupCmd() *cobra.Command {
	var name string
	var grade string
	var start string
	var weekStart string
	var notifications bool

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Agree to the terms and register the child profile",
		Long: `Finish the first-run flow: accept the terms, complete onboarding and
register the child's name, grade and start date.

The grade becomes the current grade. Run it again to rewrite the profile;
existing tasks and records are kept. A different grade is handled like
"wt grade switch": the current grade's data is archived under its label.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			name = strings.TrimSpace(name)
			if name == "" {
				return errors.New("--name is required")
			}
			grade = strings.TrimSpace(grade)
			if grade == "" {
				return errors.New("--grade is required")
			}
			if !cfg.KnownGrade(grade) {
				warnf(cmd, "grade %q is not in the configured grade list", grade)
			}
			startDate, err := dateFlag(svc, start)
			if err != nil {
				return err
			}
			ws := cfg.WeekStart()
			if cmd.Flags().Changed("week-start") {
				if ws, err = engine.ParseWeekStart(weekStart); err != nil {
					return err
				}
			}

			child := storage.Child{Name: name, Grade: grade, StartDate: startDate}
			if err := svc.CompleteSetup(ctx, child, notifications, ws); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s, %s from %s\n", ui.Good.Render(ui.IconSchool+" Ready:"), name, grade, startDate)
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Week starts on", engine.WeekdayLabel(ws)))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Child's name")
	cmd.Flags().StringVarP(&grade, "grade", "g", "", "Current grade label")
	cmd.Flags().StringVar(&start, "start", "", "Start date of the grade (yyyy-mm-dd, default today)")
	cmd.Flags().StringVar(&weekStart, "week-start", "", "First day of the week (0-6 or a day name)")
	cmd.Flags().BoolVar(&notifications, "notifications", false, "Enable reminders")

	return cmd
}
