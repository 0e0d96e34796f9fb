package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"weeklytask/internal/logging"
)

func TestParseAppliesDefaults(t *testing.T) {
	cfg, err := Parse([]byte("db_path: /tmp/x.db\n"))
	require.NoError(t, err)
	require.Equal(t, "/tmp/x.db", cfg.DBPath)
	require.Equal(t, "weekly_task_app_data", cfg.StorageKey)
	require.Equal(t, "warn", cfg.LogLevel)
	require.Equal(t, 50, cfg.SnapshotLimit)
	require.Equal(t, 1, cfg.WeekStart())
	require.Len(t, cfg.Grades, 9)
	require.True(t, cfg.KnownGrade("中学1年生"))
	require.False(t, cfg.KnownGrade("高校1年生"))
}

func TestParseExplicitSundayWeekStart(t *testing.T) {
	cfg, err := Parse([]byte("default_week_start: 0\ngrades: [G1, G2]\n"))
	require.NoError(t, err)
	require.Equal(t, 0, cfg.WeekStart())
	require.Equal(t, []string{"G1", "G2"}, cfg.Grades)
}

func TestParseValidation(t *testing.T) {
	_, err := Parse([]byte("log_level: loud\nsnapshot_limit: -1\ndefault_week_start: 9\ncolors: [red]\n"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "log_level")
	require.Contains(t, err.Error(), "snapshot_limit")
	require.Contains(t, err.Error(), "default_week_start")
	require.Contains(t, err.Error(), "colors[0]")
}

func TestParseAcceptsLoggerLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "warning", "WARNING", "error"} {
		cfg, err := Parse([]byte("log_level: " + level + "\n"))
		require.NoError(t, err, level)
		_, err = logging.ParseLevel(cfg.LogLevel)
		require.NoError(t, err, level)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: debug\nstorage_key: other\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, "other", cfg.StorageKey)
}

func TestDefaultPathHonorsEnv(t *testing.T) {
	t.Setenv(EnvConfigPath, "/tmp/wt.yaml")
	p, err := DefaultPath()
	require.NoError(t, err)
	require.Equal(t, "/tmp/wt.yaml", p)
}
