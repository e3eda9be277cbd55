package present

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ziadkadry99/autodeck/internal/deck"
)

// Run presents d full screen until the user quits or ctx is cancelled.
func Run(ctx context.Context, d *deck.Deck, opts Options) error {
	m, err := New(d, opts)
	if err != nil {
		return err
	}
	defer m.teardown()

	p := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("running presenter: %w", err)
	}
	return nil
}
