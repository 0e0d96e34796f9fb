package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"weeklytask/internal/engine"
	"weeklytask/internal/ui"
)

func newSettingsCmd() *cobra.Command {
	var notifications bool
	var weekStart string
	var name string

	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change settings and the child profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openReadyService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			flags := cmd.Flags()
			var patch engine.SettingsPatch
			changed := false
			if flags.Changed("notifications") {
				patch.Notifications = &notifications
				changed = true
			}
			if flags.Changed("week-start") {
				ws, err := engine.ParseWeekStart(weekStart)
				if err != nil {
					return err
				}
				patch.WeekStart = &ws
				changed = true
			}
			if changed {
				if err := svc.UpdateSettings(ctx, patch); err != nil {
					return err
				}
			}
			if flags.Changed("name") {
				child := *svc.Data().Child
				child.Name = name
				if err := svc.UpdateChild(ctx, child); err != nil {
					return err
				}
			}

			d := svc.Data()
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconInfo, "Settings"))
			fmt.Fprintln(out, ui.LabelValue("Child", d.Child.Name))
			fmt.Fprintln(out, ui.LabelValue("Grade", d.Settings.CurrentGrade))
			fmt.Fprintln(out, ui.LabelValue("Grade start", d.Child.StartDate))
			fmt.Fprintln(out, ui.LabelValue("Week starts on", engine.WeekdayLabel(d.Settings.WeekStart)))
			fmt.Fprintln(out, ui.LabelValue("Notifications", d.Settings.Notifications))
			fmt.Fprintln(out, ui.LabelValue("Storage key", svc.DocumentRepo().Key()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&notifications, "notifications", false, "Enable or disable reminders")
	cmd.Flags().StringVar(&weekStart, "week-start", "", "First day of the week (0-6 or a day name)")
	cmd.Flags().StringVar(&name, "name", "", "Rename the child")
	return cmd
}
