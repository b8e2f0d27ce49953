// Package generator deals randomized board layouts that satisfy a set of
// placement rules, by rejection sampling.
package generator

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/hexboard/internal/board"
	"github.com/samdwyer/hexboard/internal/rules"
	"github.com/samdwyer/hexboard/internal/telemetry"
)

// ctxCheckInterval is how many attempts run between context checks.
const ctxCheckInterval = 256

// Result describes how a generation went, successful or not.
type Result struct {
	Attempts   int
	Rejections map[string]int // Rule name to rejected candidates
	Duration   time.Duration
}

// Generator deals layouts from a board template.
type Generator struct {
	template *board.Template
	options  *Options
	rng      *rand.Rand
	logger   *slog.Logger

	attempts metric.Int64Histogram
	failures metric.Int64Counter
}

// New creates a layout generator with the given options.
func New(tpl *board.Template, options *Options) *Generator {
	if options == nil {
		options = DefaultOptions()
	}

	seed := options.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return NewWithRand(tpl, options, rand.New(rand.NewSource(seed)))
}

// NewWithRand creates a generator that draws from rng instead of seeding
// its own. options.Seed is ignored. The generator is not safe for
// concurrent use and neither is rng.
func NewWithRand(tpl *board.Template, options *Options, rng *rand.Rand) *Generator {
	if options == nil {
		options = DefaultOptions()
	}

	g := &Generator{
		template: tpl,
		options:  options,
		rng:      rng,
		logger:   slog.Default().With("component", "generator"),
	}

	return g.WithMeter(telemetry.Meter("generator"))
}

// WithMeter records the generator metrics on meter instead of the global one.
func (g *Generator) WithMeter(meter metric.Meter) *Generator {
	g.attempts, _ = meter.Int64Histogram("hexboard.generator.attempts",
		metric.WithDescription("Candidates dealt per generation request"))
	g.failures, _ = meter.Int64Counter("hexboard.generator.exhausted",
		metric.WithDescription("Generation requests that hit the attempt cap"))
	return g
}

// WithLogger replaces the generator's logger.
func (g *Generator) WithLogger(logger *slog.Logger) *Generator {
	if logger != nil {
		g.logger = logger.With("component", "generator")
	}
	return g
}

// Generate deals candidates until one satisfies every enabled rule or the
// attempt cap is reached. Each attempt shuffles the terrain pool onto the
// cells, rejects the candidate early if a terrain rule fails, then shuffles
// the number pool onto the producing cells and checks the number rules.
//
// On success the layout is complete and valid. On failure the layout is
// zero and the error wraps ErrGenerationExhausted, ErrInvalidConfiguration
// or the context's error.
func (g *Generator) Generate(ctx context.Context) (board.Layout, Result, error) {
	tracer := telemetry.Tracer("generator")
	ctx, span := tracer.Start(ctx, "layout.generate")
	defer span.End()

	startTime := time.Now()
	opts := g.options
	result := Result{Rejections: make(map[string]int)}

	span.SetAttributes(
		attribute.Bool("rules.prevent_high_adjacency", opts.Rules.PreventHighAdjacency),
		attribute.Bool("rules.prevent_extreme_adjacency", opts.Rules.PreventExtremeAdjacency),
		attribute.Bool("rules.prevent_clumping", opts.Rules.PreventClumping),
		attribute.String("rules.clump_mode", string(opts.Rules.Mode())),
		attribute.Int("generator.max_attempts", opts.MaxAttempts),
	)

	terrainRules, numberRules, err := g.ruleStages()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid configuration")
		return board.Layout{}, result, err
	}

	graph := g.template.Graph
	producing := g.template.ProducingCells()

	for result.Attempts < opts.MaxAttempts {
		if result.Attempts%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				result.Duration = time.Since(startTime)
				span.RecordError(err)
				span.SetStatus(codes.Error, "canceled")
				return board.Layout{}, result, fmt.Errorf("generation stopped after %d attempts: %w", result.Attempts, err)
			}
		}
		result.Attempts++

		candidate := board.NewLayout(board.Shuffled(g.template.Terrains, g.rng))
		if name := rules.FirstViolation(terrainRules, graph, candidate); name != "" {
			result.Rejections[name]++
			continue
		}

		numbers := board.Shuffled(g.template.Numbers, g.rng)
		candidate, err = candidate.WithNumbers(numbers)
		if err != nil {
			// The pools were checked up front; a mismatch here is a bug.
			return board.Layout{}, result, fmt.Errorf("dealing numbers on attempt %d: %w", result.Attempts, err)
		}
		if name := rules.FirstViolation(numberRules, graph, candidate); name != "" {
			result.Rejections[name]++
			continue
		}

		result.Duration = time.Since(startTime)
		g.record(ctx, span, result, true)
		g.logger.Debug("layout generated",
			"attempts", result.Attempts,
			"producing_cells", producing,
			"duration", result.Duration,
		)
		return candidate, result, nil
	}

	result.Duration = time.Since(startTime)
	g.record(ctx, span, result, false)

	exhausted := &ExhaustedError{Attempts: result.Attempts, Rejections: result.Rejections}
	span.RecordError(exhausted)
	span.SetStatus(codes.Error, "attempts exhausted")
	g.logger.Warn("no valid layout found",
		"attempts", result.Attempts,
		"rejections", result.Rejections,
	)
	return board.Layout{}, result, exhausted
}

// ruleStages validates the options and splits the enabled rules by stage.
func (g *Generator) ruleStages() (terrain, numbers []rules.Rule, err error) {
	opts := g.options

	if opts.MaxAttempts < 0 {
		return nil, nil, fmt.Errorf("%w: max attempts %d is negative", ErrInvalidConfiguration, opts.MaxAttempts)
	}
	if len(g.template.Numbers) != g.template.ProducingCells() {
		return nil, nil, fmt.Errorf("%w: %d number tokens for %d producing cells",
			ErrInvalidConfiguration, len(g.template.Numbers), g.template.ProducingCells())
	}
	if err := rules.Check(g.template, opts.Rules); err != nil {
		return nil, nil, err
	}

	all := append(rules.Set(opts.Rules), opts.Extra...)
	for _, r := range all {
		if r.Violated == nil {
			return nil, nil, fmt.Errorf("%w: rule %q has no predicate", ErrInvalidConfiguration, r.Name)
		}
		switch r.Stage {
		case rules.StageTerrain:
			terrain = append(terrain, r)
		case rules.StageNumbers:
			numbers = append(numbers, r)
		default:
			return nil, nil, fmt.Errorf("%w: rule %q has unknown stage %d", ErrInvalidConfiguration, r.Name, r.Stage)
		}
	}
	return terrain, numbers, nil
}

// record attaches the outcome to the span and the generator metrics.
func (g *Generator) record(ctx context.Context, span trace.Span, result Result, success bool) {
	attrs := []attribute.KeyValue{
		attribute.Int("generator.attempts", result.Attempts),
		attribute.Bool("generator.success", success),
		attribute.Int64("generator.duration_ms", result.Duration.Milliseconds()),
	}
	for name, count := range result.Rejections {
		attrs = append(attrs, attribute.Int("generator.rejected."+name, count))
	}
	span.SetAttributes(attrs...)

	outcome := metric.WithAttributes(attribute.Bool("success", success))
	if g.attempts != nil {
		g.attempts.Record(ctx, int64(result.Attempts), outcome)
	}
	if !success && g.failures != nil {
		g.failures.Add(ctx, 1)
	}
}

// GenerateStandard is a convenience function that deals one layout of the
// standard board under cfg.
func GenerateStandard(ctx context.Context, cfg rules.Config, maxAttempts int) (board.Layout, error) {
	tpl, err := board.Standard()
	if err != nil {
		return board.Layout{}, err
	}
	layout, _, err := New(tpl, &Options{Rules: cfg, MaxAttempts: maxAttempts}).Generate(ctx)
	return layout, err
}
