package cmd

import (
	"fmt"

	"github.com/fchimpan/magic-pong/internal/config"
)

func run(deps Deps, cfg config.Config) error {
	if deps.OpenLog == nil {
		return fmt.Errorf("deps.OpenLog is nil")
	}
	if deps.RunTUI == nil {
		return fmt.Errorf("deps.RunTUI is nil")
	}
	if deps.RunWindow == nil {
		return fmt.Errorf("deps.RunWindow is nil")
	}

	logger, closer, err := deps.OpenLog(cfg.LogFile, cfg.LogLevel, deps.Stderr)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	defer closer.Close()

	logger.Info("starting", "frontend", cfg.Frontend, "speed", cfg.Speed, "seed", cfg.Seed)

	switch cfg.Frontend {
	case config.FrontendWindow:
		err = deps.RunWindow(cfg, logger)
	default:
		err = deps.RunTUI(cfg, logger)
	}
	if err != nil {
		logger.Error("session ended with error", "err", err)
		return fmt.Errorf("%s frontend: %w", cfg.Frontend, err)
	}
	return nil
}
