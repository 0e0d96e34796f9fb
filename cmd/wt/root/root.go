package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"weeklytask/internal/config"
	"weeklytask/internal/logging"
	"weeklytask/internal/ui"
)

const Version = "0.1.0"

var (
	flagDB      string
	flagConfig  string
	flagVerbose bool

	cfg    = config.Default()
	logger = zap.NewNop()
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "wt",
		Short:         "Weekly Task: a local study planner for one child, kept per school grade",
		Long:          "Weekly Task plans recurring study tasks by weekday, records what was done each day, and keeps a separate workspace for every school grade.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			path := flagConfig
			if path == "" {
				p, err := config.DefaultPath()
				if err != nil {
					return err
				}
				path = p
			}
			loaded, err := config.Load(path)
			if err != nil {
				return err
			}
			cfg = loaded

			l, err := logging.New(cfg.LogLevel, flagVerbose)
			if err != nil {
				return err
			}
			logger = l
			logger.Debug("config loaded", zap.String("path", path), zap.String("storage_key", cfg.StorageKey))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}

	cmd.PersistentFlags().StringVar(&flagDB, "db", "", "SQLite database path (default $WEEKLYTASK_DB or ~/.weeklytask.db)")
	cmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default $WEEKLYTASK_CONFIG or ~/.weeklytask/config.yaml)")
	cmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Debug logging to stderr")

	cmd.AddCommand(
		newSetupCmd(),
		newTaskCmd(),
		newTodayCmd(),
		newDoneCmd(),
		newPostponeCmd(),
		newLogCmd(),
		newDayCmd(),
		newMemoCmd(),
		newNoteCmd(),
		newOrderCmd(),
		newWeekCmd(),
		newStatsCmd(),
		newGoalCmd(),
		newGradeCmd(),
		newSettingsCmd(),
		newSearchCmd(),
		newHistoryCmd(),
		newRestoreCmd(),
		newResetCmd(),
		newBoardCmd(),
	)
	return cmd
}

func Execute() {
	rootCmd := newRootCmd()
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	if err := rootCmd.Execute(); err != nil {
		_ = logger.Sync()
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
