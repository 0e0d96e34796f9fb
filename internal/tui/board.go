package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"weeklytask/internal/engine"
)

// RunBoard opens the day board on the service's current date.
func RunBoard(ctx context.Context, svc *engine.Service, out io.Writer) error {
	m := newBoardModel(ctx, svc, svc.Today())
	p := tea.NewProgram(m, tea.WithOutput(out))
	_, err := p.Run()
	return err
}
