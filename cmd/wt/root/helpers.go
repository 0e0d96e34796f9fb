package root

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"weeklytask/internal/engine"
	"weeklytask/internal/storage"
	"weeklytask/internal/ui"
)

// resolveTask finds a task by exact id, unique id prefix or exact title.
func resolveTask(tasks []storage.Task, ref string) (storage.Task, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return storage.Task{}, errors.New("task is required")
	}
	var byPrefix, byTitle []storage.Task
	for _, t := range tasks {
		if t.ID == ref {
			return t, nil
		}
		if strings.HasPrefix(t.ID, ref) {
			byPrefix = append(byPrefix, t)
		}
		if strings.EqualFold(t.Title, ref) {
			byTitle = append(byTitle, t)
		}
	}
	for _, matches := range [][]storage.Task{byPrefix, byTitle} {
		switch len(matches) {
		case 0:
		case 1:
			return matches[0], nil
		default:
			return storage.Task{}, fmt.Errorf("task %q is ambiguous (%d matches)", ref, len(matches))
		}
	}
	return storage.Task{}, fmt.Errorf("task %q not found", ref)
}

// dateFlag normalizes a --date value against the service clock.
func dateFlag(svc *engine.Service, value string) (string, error) {
	return engine.NormalizeDate(value, svc.Today())
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func weekDaysText(days []int) string {
	if len(days) == 0 {
		return "-"
	}
	names := make([]string, 0, len(days))
	for _, d := range days {
		names = append(names, engine.WeekdayLabel(d))
	}
	return strings.Join(names, ",")
}

func amountText(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func warnf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintln(cmd.ErrOrStderr(), ui.Warn.Render(ui.IconWarn+" "+fmt.Sprintf(format, args...)))
}

func requireYes(yes bool, action string) error {
	if !yes {
		return fmt.Errorf("refusing to %s without --yes", action)
	}
	return nil
}

func exactArgs(n int, what string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return errors.New(what + " required")
		}
		return nil
	}
}
