package userstui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/louisbranch/crm-console/internal/core/usertable"
	"github.com/louisbranch/crm-console/internal/platform/logger"
)

// Run shows the users table until the user quits or ctx ends.
func Run(ctx context.Context, fetcher usertable.Fetcher, log logger.Logger, opts ...tea.ProgramOption) error {
	m := NewModel(ctx, fetcher, log)
	defer m.cancel()

	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	p := tea.NewProgram(m, opts...)
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("run users table: %w", err)
	}
	return nil
}
