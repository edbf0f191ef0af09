package cmd

import (
	"github.com/charmbracelet/log"

	"github.com/fchimpan/magic-pong/internal/config"
	"github.com/fchimpan/magic-pong/internal/window"
)

func defaultRunWindow(cfg config.Config, logger *log.Logger) error {
	return window.Run(cfg, logger)
}
