package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/fchimpan/magic-pong/internal/config"
	"github.com/fchimpan/magic-pong/internal/logging"
)

type Deps struct {
	LoadConfig func(path string) (config.Config, error)
	OpenLog    func(path, level string, stderr io.Writer) (*log.Logger, io.Closer, error)
	RunTUI     func(cfg config.Config, logger *log.Logger) error
	RunWindow  func(cfg config.Config, logger *log.Logger) error
	Now        func() time.Time
	Stdout     io.Writer
	Stderr     io.Writer
}

func DefaultDeps() Deps {
	return Deps{
		LoadConfig: config.Load,
		OpenLog:    logging.Open,
		RunTUI:     defaultRunTUI,
		RunWindow:  defaultRunWindow,
		Now:        time.Now,
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
	}
}

func NewRootCmd(deps Deps) *cobra.Command {
	var (
		configPath string
		frontend   string
		speed      float64
		seed       uint64
		logFile    string
		logLevel   string
	)

	c := &cobra.Command{
		Use:          "magic-pong",
		Short:        "Two-paddle pong starring the Descendants",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if deps.LoadConfig == nil {
				return fmt.Errorf("deps.LoadConfig is nil")
			}
			cfg, err := deps.LoadConfig(configPath)
			if err != nil {
				if config.IsValidation(err) {
					fmt.Fprintln(deps.Stderr, "hint: check the keys and values in your --config file")
				}
				return err
			}

			// Flags win over the file only when set explicitly.
			flags := cmd.Flags()
			if flags.Changed("frontend") {
				cfg.Frontend = frontend
			}
			if flags.Changed("speed") {
				if speed <= 0 {
					return fmt.Errorf("--speed must be > 0")
				}
				cfg.Speed = speed
			}
			if flags.Changed("seed") {
				cfg.Seed = seed
			}
			if flags.Changed("log-file") {
				cfg.LogFile = logFile
			}
			if flags.Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if cfg.Seed == 0 {
				cfg.Seed = uint64(deps.Now().UnixNano())
			}
			return run(deps, cfg)
		},
	}

	c.Flags().StringVarP(&configPath, "config", "c", "", "path to a TOML config file")
	c.Flags().StringVarP(&frontend, "frontend", "F", config.FrontendTUI, "frontend to play in (tui or window)")
	c.Flags().Float64VarP(&speed, "speed", "s", 1.0, "game speed multiplier (1.0 is normal)")
	c.Flags().Uint64Var(&seed, "seed", 0, "random seed for serves (default: from the clock)")
	c.Flags().StringVar(&logFile, "log-file", "", "write logs to this file (\"-\" for stderr)")
	c.Flags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	c.SetOut(deps.Stdout)
	c.SetErr(deps.Stderr)
	return c
}
