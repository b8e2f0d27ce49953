package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/samdwyer/hexboard/internal/game"
	"github.com/samdwyer/hexboard/internal/generator"
	"github.com/samdwyer/hexboard/internal/rules"
	"github.com/samdwyer/hexboard/internal/scoring"
	"github.com/samdwyer/hexboard/internal/ui"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// errNoMap is what the user sees when every attempt was rejected.
var errNoMap = errors.New("could not generate a valid map with these settings")

type generateFlags struct {
	preventHigh    bool
	preventExtreme bool
	noClump        bool
	clumpMode      string
	fixedPorts     bool
	maxAttempts    int
	seed           int64
	asJSON         bool
	format         string
	color          bool
	top            int
}

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "hexboard",
		Short:         "Random hex board generator",
		Long:          `hexboard deals balanced 19-cell island boards: terrains, number tokens and harbours, held to optional placement rules.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log generation details to stderr")

	root.AddCommand(newGenerateCmd())
	return root
}

func newGenerateCmd() *cobra.Command {
	defaults := game.DefaultConfig()
	f := &generateFlags{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a board",
		Long: `Generate a board that satisfies the enabled placement rules.

  Settings come from HEXBOARD_* environment variables, overridden by flags.

  Example: hexboard generate --no-clump --clump-mode groups --seed 42`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, f)
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&f.preventHigh, "prevent-6-8", defaults.Rules.PreventHighAdjacency, "Keep 6s and 8s apart")
	flags.BoolVar(&f.preventExtreme, "prevent-2-12", defaults.Rules.PreventExtremeAdjacency, "Keep 2s and 12s apart")
	flags.BoolVar(&f.noClump, "no-clump", defaults.Rules.PreventClumping, "Spread terrains out")
	flags.StringVar(&f.clumpMode, "clump-mode", string(defaults.Rules.ClumpMode), "How clumping is judged: adjacent or groups")
	flags.BoolVar(&f.fixedPorts, "fixed-ports", defaults.FixedPorts, "Use the canonical harbour arrangement")
	flags.IntVar(&f.maxAttempts, "max-attempts", defaults.MaxAttempts, "Candidates to try before giving up")
	flags.Int64Var(&f.seed, "seed", defaults.Seed, "Random seed (0 = random)")
	flags.StringVar(&f.format, "format", formatText, "Output format: text, json or yaml")
	flags.BoolVar(&f.asJSON, "json", false, "Shorthand for --format json")
	flags.BoolVar(&f.color, "color", false, "Color terrains in text output")
	flags.IntVar(&f.top, "top", ui.DefaultTop, "Intersections to list")

	return cmd
}

// config starts from the environment and applies the flags the user set.
func (f *generateFlags) config(cmd *cobra.Command) (game.Config, error) {
	cfg, err := game.ConfigFromEnv()
	if err != nil {
		return game.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("prevent-6-8") {
		cfg.Rules.PreventHighAdjacency = f.preventHigh
	}
	if flags.Changed("prevent-2-12") {
		cfg.Rules.PreventExtremeAdjacency = f.preventExtreme
	}
	if flags.Changed("no-clump") {
		cfg.Rules.PreventClumping = f.noClump
	}
	if flags.Changed("clump-mode") {
		mode := rules.ClumpMode(f.clumpMode)
		if !mode.Valid() {
			return game.Config{}, fmt.Errorf("unknown clump mode %q (want %s or %s)", f.clumpMode, rules.ClumpAdjacent, rules.ClumpGroups)
		}
		cfg.Rules.ClumpMode = mode
	}
	if flags.Changed("fixed-ports") {
		cfg.FixedPorts = f.fixedPorts
	}
	if flags.Changed("max-attempts") {
		cfg.MaxAttempts = f.maxAttempts
	}
	if flags.Changed("seed") {
		cfg.Seed = f.seed
	}
	return cfg, nil
}

func runGenerate(cmd *cobra.Command, f *generateFlags) error {
	format := f.format
	if f.asJSON {
		format = formatJSON
	}
	if format != formatText && format != formatJSON && format != formatYAML {
		return fmt.Errorf("unknown format %q", f.format)
	}

	cfg, err := f.config(cmd)
	if err != nil {
		return err
	}

	g, err := game.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to load board: %w", err)
	}

	b, err := g.NewBoard(cmd.Context())
	if err != nil {
		if errors.Is(err, generator.ErrGenerationExhausted) {
			return fmt.Errorf("%w (%v)", errNoMap, err)
		}
		return err
	}

	geom, err := scoring.StandardGeometry()
	if err != nil {
		return err
	}
	r := ui.NewRenderer(cmd.OutOrStdout(), geom).WithTop(f.top)
	if f.color {
		r.WithColor(ui.DefaultPalette())
	}

	switch format {
	case formatJSON:
		return r.RenderJSON(b)
	case formatYAML:
		return r.RenderYAML(b)
	default:
		return r.Render(b)
	}
}
