package game

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/samdwyer/hexboard/internal/board"
	"github.com/samdwyer/hexboard/internal/boarddata"
	"github.com/samdwyer/hexboard/internal/generator"
	"github.com/samdwyer/hexboard/internal/ports"
	"github.com/samdwyer/hexboard/internal/scoring"
	"github.com/samdwyer/hexboard/internal/telemetry"
)

// Board is a generated layout together with everything derived from it.
type Board struct {
	ID            uuid.UUID              `json:"id"`
	Layout        board.Layout           `json:"layout"`
	Ports         []ports.Slot           `json:"ports"`
	Intersections []scoring.Intersection `json:"intersections"`
	Resources     map[board.Terrain]int  `json:"resources"`
	Attempts      int                    `json:"attempts"`
}

// Game holds the board definition, the random source and the current board.
type Game struct {
	config    Config
	template  *board.Template
	geometry  *scoring.Geometry
	ports     *ports.Assigner
	rng       *rand.Rand
	generator *generator.Generator
	logger    *slog.Logger

	current *Board
	state   State
}

// New creates a game for the standard board.
func New(cfg Config) (*Game, error) {
	def, err := boarddata.Standard()
	if err != nil {
		return nil, err
	}
	tpl, err := board.Standard()
	if err != nil {
		return nil, err
	}
	geom, err := scoring.NewGeometry(def.Geometry)
	if err != nil {
		return nil, err
	}
	assigner, err := ports.NewAssigner(def.Ports)
	if err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	g := &Game{
		template: tpl,
		geometry: geom,
		ports:    assigner,
		rng:      rand.New(rand.NewSource(seed)),
		logger:   slog.Default(),
		state:    StateEmpty,
	}
	g.SetConfig(cfg)
	return g, nil
}

// WithLogger replaces the game's logger.
func (g *Game) WithLogger(logger *slog.Logger) *Game {
	if logger != nil {
		g.logger = logger
		g.generator.WithLogger(logger)
	}
	return g
}

// SetConfig changes the options used by later boards. A new non-zero seed
// reseeds the random source; otherwise it carries on, so a seeded game
// stays reproducible across changes.
func (g *Game) SetConfig(cfg Config) {
	if cfg.Seed != 0 && cfg.Seed != g.config.Seed {
		g.rng.Seed(cfg.Seed)
	}
	g.config = cfg
	g.generator = generator.NewWithRand(g.template, &generator.Options{
		Rules:       cfg.Rules,
		MaxAttempts: cfg.MaxAttempts,
	}, g.rng).WithLogger(g.logger)
}

// Config returns the current options.
func (g *Game) Config() Config {
	return g.config
}

// State returns whether a board is available.
func (g *Game) State() State {
	return g.state
}

// Current returns the latest board, or nil before the first success.
func (g *Game) Current() *Board {
	return g.current
}

// NewBoard generates a layout, places the harbours and scores the result.
// When generation fails the previous board stays current.
func (g *Game) NewBoard(ctx context.Context) (*Board, error) {
	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "board.new")
	defer span.End()

	span.SetAttributes(
		attribute.Bool("board.fixed_ports", g.config.FixedPorts),
		attribute.String("game.state", g.state.String()),
	)

	layout, result, err := g.generator.Generate(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "generation failed")
		return nil, err
	}

	points, err := scoring.Aggregate(layout, g.geometry)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "scoring failed")
		return nil, fmt.Errorf("scoring board: %w", err)
	}

	// Drawn from the game's random source so seeded boards keep their ids.
	id, err := uuid.NewRandomFromReader(g.rng)
	if err != nil {
		return nil, fmt.Errorf("board id: %w", err)
	}

	b := &Board{
		ID:            id,
		Layout:        layout,
		Ports:         g.ports.Assign(g.config.FixedPorts, g.rng),
		Intersections: points,
		Resources:     scoring.ResourcePips(layout),
		Attempts:      result.Attempts,
	}

	desert, _ := layout.Desert()
	high := 0
	for _, p := range points {
		if p.High() {
			high++
		}
	}
	span.SetAttributes(
		attribute.String("board.id", id.String()),
		attribute.Int("board.attempts", result.Attempts),
		attribute.Int("board.intersections", len(points)),
		attribute.Int("board.high_intersections", high),
	)
	g.logger.Info("board generated",
		"id", id,
		"attempts", result.Attempts,
		"desert", desert.ID,
		"high_intersections", high,
	)

	g.current = b
	g.state = StateReady
	return b, nil
}
