package system

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/steadhq/stead/internal/cli"
	"github.com/steadhq/stead/internal/tui"
)

// TuiCmd launches the full-screen interactive mode.
type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	// A session can rewrite a lot of data, so snapshot before entering.
	ctx.PerformAutomaticBackup()

	p := tea.NewProgram(tui.NewModel(ctx.Store, ctx.Disciplines), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("interactive mode failed: %w", err)
	}
	return nil
}
