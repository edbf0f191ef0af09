package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/fchimpan/magic-pong/internal/game"
)

const (
	FrontendTUI    = "tui"
	FrontendWindow = "window"
)

// Config is the on-disk and command-line configuration of a session.
type Config struct {
	Frontend string  `toml:"frontend"`
	Speed    float64 `toml:"speed"`
	Seed     uint64  `toml:"seed"` // 0 picks one from the clock

	SelectionTransition bool          `toml:"selection_transition"`
	TransitionDuration  time.Duration `toml:"transition_duration"`
	CountdownDuration   time.Duration `toml:"countdown_duration"`

	AIDeadzone     float64 `toml:"ai_deadzone"`
	AISpeedFactor  float64 `toml:"ai_speed_factor"`
	MaxSpeedFactor float64 `toml:"max_speed_factor"`
	Spin           bool    `toml:"spin"`

	LogLevel string `toml:"log_level"`
	LogFile  string `toml:"log_file"`
}

func Default() Config {
	s := game.DefaultSettings()
	return Config{
		Frontend:            FrontendTUI,
		Speed:               1.0,
		SelectionTransition: s.SelectionTransition,
		TransitionDuration:  s.TransitionDuration,
		CountdownDuration:   s.CountdownDuration,
		AIDeadzone:          s.AIDeadzone,
		AISpeedFactor:       s.AISpeedFactor,
		MaxSpeedFactor:      s.MaxSpeedFactor,
		Spin:                s.Spin,
		LogLevel:            "info",
	}
}

// Load reads a TOML file on top of the defaults. An empty path returns the
// defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if und := md.Undecoded(); len(und) > 0 {
		keys := make([]string, 0, len(und))
		for _, k := range und {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return Config{}, &ValidationError{Field: keys[0], Reason: "unknown key (" + strings.Join(keys, ", ") + ")"}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Frontend {
	case FrontendTUI, FrontendWindow:
	default:
		return &ValidationError{Field: "frontend", Reason: fmt.Sprintf("must be %q or %q, got %q", FrontendTUI, FrontendWindow, c.Frontend)}
	}
	if c.Speed <= 0 {
		return &ValidationError{Field: "speed", Reason: "must be > 0"}
	}
	if c.TransitionDuration < 0 {
		return &ValidationError{Field: "transition_duration", Reason: "must be >= 0"}
	}
	if c.CountdownDuration < 0 {
		return &ValidationError{Field: "countdown_duration", Reason: "must be >= 0"}
	}
	if c.AIDeadzone < 0 {
		return &ValidationError{Field: "ai_deadzone", Reason: "must be >= 0"}
	}
	if c.AISpeedFactor <= 0 || c.AISpeedFactor > 1 {
		return &ValidationError{Field: "ai_speed_factor", Reason: "must be in (0, 1]"}
	}
	if c.MaxSpeedFactor != 0 && c.MaxSpeedFactor < 1 {
		return &ValidationError{Field: "max_speed_factor", Reason: "must be 0 (unbounded) or >= 1"}
	}
	return nil
}

// Settings converts the config into simulation settings.
func (c Config) Settings() game.Settings {
	return game.Settings{
		SelectionTransition: c.SelectionTransition,
		TransitionDuration:  c.TransitionDuration,
		CountdownDuration:   c.CountdownDuration,
		AIDeadzone:          c.AIDeadzone,
		AISpeedFactor:       c.AISpeedFactor,
		MaxSpeedFactor:      c.MaxSpeedFactor,
		Spin:                c.Spin,
	}
}

// ValidationError reports a bad configuration value.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "invalid config"
	}
	if e.Field == "" {
		return "invalid config: " + e.Reason
	}
	return fmt.Sprintf("invalid config %s: %s", e.Field, e.Reason)
}

func IsValidation(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}
