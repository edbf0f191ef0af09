package cmd

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/fchimpan/magic-pong/internal/config"
	"github.com/fchimpan/magic-pong/internal/tui"
)

func defaultRunTUI(cfg config.Config, logger *log.Logger) error {
	p := tea.NewProgram(
		tui.NewModel(cfg, logger),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}
