package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"weeklytask/internal/engine"
	"weeklytask/internal/ui"
)

func newTaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage the current grade's study tasks",
	}
	cmd.AddCommand(
		newTaskAddCmd(),
		newTaskListCmd(),
		newTaskEditCmd(),
		newTaskRmCmd(),
	)
	return cmd
}

func newTaskAddCmd() *cobra.Command {
	var color string
	var total float64
	var unit string
	var start string
	var end string
	var days string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task that recurs on the given weekdays",
		Example: `  wt task add "Kanji drill" --days mon,wed,fri --total 120 --end 2025-03-31
  wt task add "Summer project"`,
		Args: exactArgs(1, "title is"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openReadyService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			title, err := engine.ParseTitle(args[0])
			if err != nil {
				return err
			}
			weekDays, err := engine.ParseWeekDays(days)
			if err != nil {
				return err
			}
			startDate, err := dateFlag(svc, start)
			if err != nil {
				return err
			}
			endDate := ""
			if end != "" {
				if endDate, err = dateFlag(svc, end); err != nil {
					return err
				}
			}
			if color == "" && len(cfg.Colors) > 0 {
				color = cfg.Colors[len(svc.Data().Tasks)%len(cfg.Colors)]
			}
			if unit == "" {
				unit = cfg.DefaultUnit
			}

			t, err := svc.CreateTask(ctx, engine.TaskInput{
				Title:       title,
				Color:       color,
				TotalAmount: total,
				Unit:        unit,
				StartDate:   startDate,
				EndDate:     endDate,
				WeekDays:    weekDays,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s %s\n", ui.Good.Render(ui.IconPlus+" Added"), ui.Swatch(t.Color), t.Title, ui.Muted.Render("("+shortID(t.ID)+")"))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Days", weekDaysText(t.WeekDays)))
			if t.DailyAmount > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Per day", amountText(t.DailyAmount)+" "+t.Unit))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&color, "color", "c", "", "Hex color (default: next palette color)")
	cmd.Flags().Float64VarP(&total, "total", "n", 0, "Total amount to finish")
	cmd.Flags().StringVarP(&unit, "unit", "u", "", "Unit of the amount (default from config)")
	cmd.Flags().StringVar(&start, "start", "", "Start date (default today)")
	cmd.Flags().StringVar(&end, "end", "", "End date")
	cmd.Flags().StringVarP(&days, "days", "d", "", "Weekdays: mon,wed | weekdays | weekend | daily (empty: no recurrence)")

	return cmd
}

var categoryOrder = []engine.TaskCategory{
	engine.CategoryRegular,
	engine.CategoryIrregular,
	engine.CategoryUpcoming,
	engine.CategoryFinished,
}

var categoryTitles = map[engine.TaskCategory]string{
	engine.CategoryRegular:   "Regular",
	engine.CategoryIrregular: "One-off",
	engine.CategoryUpcoming:  "Upcoming",
	engine.CategoryFinished:  "Finished",
}

func newTaskListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks with their progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openReadyService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			d := svc.Data()
			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconBook, "Tasks ("+d.Settings.CurrentGrade+")"))
			progress := svc.TaskProgress(svc.Now())
			if len(progress) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("(no tasks yet, try `wt task add`)"))
				return nil
			}

			grouped := map[engine.TaskCategory][]engine.TaskProgress{}
			for _, p := range progress {
				grouped[p.Category] = append(grouped[p.Category], p)
			}
			for _, cat := range categoryOrder {
				list := grouped[cat]
				if len(list) == 0 {
					continue
				}
				fmt.Fprintln(cmd.OutOrStdout(), ui.H2.Render(categoryTitles[cat]+":"))
				for _, p := range list {
					line := fmt.Sprintf("- %s %s %s %s", ui.Swatch(p.Task.Color), ui.Muted.Render(shortID(p.Task.ID)), p.Task.Title, ui.Muted.Render(weekDaysText(p.Task.WeekDays)))
					if p.Task.TotalAmount > 0 {
						line += fmt.Sprintf(" %d%% (%d/%s %s)", p.Progress, p.CompletedCount, amountText(p.Task.TotalAmount), p.Task.Unit)
					}
					if p.Minutes > 0 {
						line += " " + ui.Muted.Render(ui.Minutes(p.Minutes))
					}
					fmt.Fprintln(cmd.OutOrStdout(), line)
				}
			}
			return nil
		},
	}
	return cmd
}

func newTaskEditCmd() *cobra.Command {
	var title string
	var color string
	var total float64
	var unit string
	var start string
	var end string
	var days string

	cmd := &cobra.Command{
		Use:   "edit <task>",
		Short: "Change fields of a task (only the given flags)",
		Args:  exactArgs(1, "task is"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openReadyService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			t, err := resolveTask(svc.Data().Tasks, args[0])
			if err != nil {
				return err
			}

			var patch engine.TaskPatch
			flags := cmd.Flags()
			if flags.Changed("title") {
				v, err := engine.ParseTitle(title)
				if err != nil {
					return err
				}
				patch.Title = &v
				t.Title = v
			}
			if flags.Changed("color") {
				patch.Color = &color
			}
			if flags.Changed("total") {
				patch.TotalAmount = &total
				t.TotalAmount = total
			}
			if flags.Changed("unit") {
				patch.Unit = &unit
			}
			if flags.Changed("start") {
				v, err := dateFlag(svc, start)
				if err != nil {
					return err
				}
				patch.StartDate = &v
				t.StartDate = v
			}
			if flags.Changed("end") {
				v := ""
				if end != "" {
					if v, err = dateFlag(svc, end); err != nil {
						return err
					}
				}
				patch.EndDate = &v
				t.EndDate = v
			}
			if flags.Changed("days") {
				v, err := engine.ParseWeekDays(days)
				if err != nil {
					return err
				}
				patch.WeekDays = v
				t.WeekDays = v
			}
			daily := engine.DailyAmount(t.TotalAmount, t.StartDate, t.EndDate, t.WeekDays)
			patch.DailyAmount = &daily

			if err := svc.UpdateTask(ctx, t.ID, patch); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", ui.Good.Render("Updated"), t.Title, ui.Muted.Render("("+shortID(t.ID)+")"))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVarP(&color, "color", "c", "", "Hex color")
	cmd.Flags().Float64VarP(&total, "total", "n", 0, "Total amount")
	cmd.Flags().StringVarP(&unit, "unit", "u", "", "Unit")
	cmd.Flags().StringVar(&start, "start", "", "Start date")
	cmd.Flags().StringVar(&end, "end", "", "End date (empty clears it)")
	cmd.Flags().StringVarP(&days, "days", "d", "", "Weekdays")

	return cmd
}

func newTaskRmCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "rm <task>",
		Aliases: []string{"delete"},
		Short:   "Delete a task and all of its records",
		Args:    exactArgs(1, "task is"),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireYes(yes, "delete a task"); err != nil {
				return err
			}
			ctx := context.Background()
			svc, cleanup, err := openReadyService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			t, err := resolveTask(svc.Data().Tasks, args[0])
			if err != nil {
				return err
			}
			records := 0
			for _, r := range svc.Data().Records {
				if r.TaskID == t.ID {
					records++
				}
			}
			if err := svc.DeleteTask(ctx, t.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", ui.Warn.Render("Deleted"), t.Title, ui.Muted.Render(fmt.Sprintf("(%d records removed)", records)))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm deleting the task and its records")
	return cmd
}
