package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if MENTORPATH_CONFIG is set
//  3. env (prefix MENTORPATH_)
func Load(ctx context.Context) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(New(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("%w: defaults: %w", ErrLoadConfig, err)
	}

	if path := os.Getenv("MENTORPATH_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	// Environment variables: MENTORPATH_ADDR, MENTORPATH_MAX_PHASES, ...
	// Keys keep their underscores to match the koanf tags on the struct.
	envProvider := env.Provider("MENTORPATH_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "mentorpath_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	switch {
	case cfg.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case cfg.TopNMax < 1 || cfg.TopNDefault < 1:
		return fmt.Errorf("%w: top_n bounds must be positive", ErrInvalidConfig)
	case cfg.TopNDefault > cfg.TopNMax:
		return fmt.Errorf("%w: top_n_default exceeds top_n_max", ErrInvalidConfig)
	case cfg.MaxPhases < 1:
		return fmt.Errorf("%w: max_phases must be positive", ErrInvalidConfig)
	case cfg.DurationConstant <= 0:
		return fmt.Errorf("%w: duration_constant must be positive", ErrInvalidConfig)
	case cfg.ScoreConcurrency < 1:
		return fmt.Errorf("%w: score_concurrency must be positive", ErrInvalidConfig)
	case cfg.ScoreQueueCapacity < 1:
		return fmt.Errorf("%w: score_queue_capacity must be positive", ErrInvalidConfig)
	}
	return nil
}
