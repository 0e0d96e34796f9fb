package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"weeklytask/internal/ui"
)

func newLogCmd() *cobra.Command {
	var date string
	var memo string
	var amount float64

	cmd := &cobra.Command{
		Use:   "log <task> <minutes>",
		Short: "Record a finished study session",
		Long: `Record minutes studied on a task. The day's record gains the minutes and
is marked done. --memo and --amount replace the stored values when given.

For a live stopwatch use the board (wt board, key s).`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("task and minutes are required")
			}
			if n, err := strconv.Atoi(args[1]); err != nil || n < 0 {
				return errors.New("minutes must be a non-negative integer")
			}
			return nil
		},
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
			day, err := dateFlag(svc, date)
			if err != nil {
				return err
			}
			minutes, _ := strconv.Atoi(args[1])

			var amt *float64
			if cmd.Flags().Changed("amount") {
				amt = &amount
			}
			r, err := svc.FinishTimer(ctx, t.ID, day, minutes, memo, amt)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s on %s %s\n", ui.Good.Render(ui.IconTimer+" Logged "+ui.Minutes(minutes)), t.Title, day, ui.Muted.Render("(total "+ui.Minutes(r.Duration)+")"))
			if r.Amount != nil && *r.Amount > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Amount", amountText(*r.Amount)+" "+t.Unit))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day (yyyy-mm-dd, today, yesterday)")
	cmd.Flags().StringVarP(&memo, "memo", "m", "", "One-line memo for the session")
	cmd.Flags().Float64VarP(&amount, "amount", "n", 0, "Amount done in the task's unit")
	return cmd
}
