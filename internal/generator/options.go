package generator

import (
	"github.com/samdwyer/hexboard/internal/rules"
)

const (
	// DefaultMaxAttempts is enough for every built-in rule combination.
	DefaultMaxAttempts = 150000
	// MinRecommendedAttempts is the smallest cap worth using with any rule enabled.
	MinRecommendedAttempts = 2000
)

// Options configures layout generation.
type Options struct {
	Rules       rules.Config // Built-in rules to enforce
	MaxAttempts int          // Attempt cap; 0 fails immediately, negative is invalid
	Seed        int64        // Seed for reproducible layouts (0 = random)
	Extra       []rules.Rule // Additional rules, run after the built-in ones of the same stage
}

// DefaultOptions returns standard generator options.
func DefaultOptions() *Options {
	return &Options{
		Rules:       rules.DefaultConfig(),
		MaxAttempts: DefaultMaxAttempts,
		Seed:        0,
	}
}
