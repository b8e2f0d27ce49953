package game

import (
	"fmt"
	"os"
	"strconv"

	"github.com/samdwyer/hexboard/internal/generator"
	"github.com/samdwyer/hexboard/internal/rules"
)

// Environment variables read by ConfigFromEnv.
const (
	EnvPreventHigh     = "HEXBOARD_PREVENT_HIGH"
	EnvPreventExtreme  = "HEXBOARD_PREVENT_EXTREME"
	EnvPreventClumping = "HEXBOARD_PREVENT_CLUMPING"
	EnvClumpMode       = "HEXBOARD_CLUMP_MODE"
	EnvFixedPorts      = "HEXBOARD_FIXED_PORTS"
	EnvMaxAttempts     = "HEXBOARD_MAX_ATTEMPTS"
	EnvSeed            = "HEXBOARD_SEED"
)

// Config holds board generation options.
type Config struct {
	Rules rules.Config

	// FixedPorts places the harbours in their canonical arrangement instead
	// of shuffling them.
	FixedPorts bool

	// MaxAttempts caps the candidates dealt per board.
	MaxAttempts int

	// Seed for random number generation. Used for reproducible boards.
	// A seed of 0 means a random seed will be generated. Passing a
	// different non-zero seed to SetConfig restarts the sequence from it.
	Seed int64
}

// DefaultConfig returns the out of the box options.
func DefaultConfig() Config {
	return Config{
		Rules:       rules.DefaultConfig(),
		FixedPorts:  false,
		MaxAttempts: generator.DefaultMaxAttempts,
		Seed:        0,
	}
}

// ConfigFromEnv returns DefaultConfig overridden by any HEXBOARD_*
// variables that are set.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	bools := []struct {
		key string
		dst *bool
	}{
		{EnvPreventHigh, &cfg.Rules.PreventHighAdjacency},
		{EnvPreventExtreme, &cfg.Rules.PreventExtremeAdjacency},
		{EnvPreventClumping, &cfg.Rules.PreventClumping},
		{EnvFixedPorts, &cfg.FixedPorts},
	}
	for _, b := range bools {
		v, ok := os.LookupEnv(b.key)
		if !ok || v == "" {
			continue
		}
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", b.key, err)
		}
		*b.dst = parsed
	}

	if v := os.Getenv(EnvClumpMode); v != "" {
		mode := rules.ClumpMode(v)
		if !mode.Valid() {
			return Config{}, fmt.Errorf("%s: unknown clump mode %q", EnvClumpMode, v)
		}
		cfg.Rules.ClumpMode = mode
	}

	if v := os.Getenv(EnvMaxAttempts); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvMaxAttempts, err)
		}
		cfg.MaxAttempts = n
	}

	if v := os.Getenv(EnvSeed); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvSeed, err)
		}
		cfg.Seed = seed
	}

	return cfg, nil
}
