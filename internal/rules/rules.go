// Package rules provides the placement constraints a generated board can be
// held to. Every predicate is pure: the same layout always gets the same answer.
package rules

import (
	"fmt"

	"github.com/samdwyer/hexboard/internal/board"
)

// ClumpMode selects how same-terrain clustering is judged.
type ClumpMode string

const (
	// ClumpAdjacent rejects any two adjacent cells of the same terrain.
	ClumpAdjacent ClumpMode = "adjacent"
	// ClumpGroups rejects connected same-terrain regions larger than MaxGroupSize.
	// Pairs are allowed.
	ClumpGroups ClumpMode = "groups"
)

// MaxGroupSize is the largest same-terrain region ClumpGroups accepts.
const MaxGroupSize = 2

// Valid returns true for a known mode.
func (m ClumpMode) Valid() bool {
	return m == ClumpAdjacent || m == ClumpGroups
}

// Config selects which rules a generated board must satisfy.
type Config struct {
	PreventHighAdjacency    bool      // No 6 or 8 next to another 6 or 8
	PreventExtremeAdjacency bool      // No 2 or 12 next to another 2 or 12
	PreventClumping         bool      // Spread terrains out, judged by ClumpMode
	ClumpMode               ClumpMode // Empty means ClumpAdjacent
}

// DefaultConfig returns the rules enabled out of the box.
func DefaultConfig() Config {
	return Config{
		PreventHighAdjacency:    true,
		PreventExtremeAdjacency: true,
		PreventClumping:         false,
		ClumpMode:               ClumpAdjacent,
	}
}

// Mode returns the effective clump mode.
func (c Config) Mode() ClumpMode {
	if c.ClumpMode == "" {
		return ClumpAdjacent
	}
	return c.ClumpMode
}

// Stage says when a rule can be evaluated.
type Stage int

const (
	// StageTerrain rules only look at terrains, so they run before numbers are dealt.
	StageTerrain Stage = iota
	// StageNumbers rules need the number tokens in place.
	StageNumbers
)

// String returns a human-readable stage name.
func (s Stage) String() string {
	switch s {
	case StageTerrain:
		return "terrain"
	case StageNumbers:
		return "numbers"
	default:
		return "unknown"
	}
}

// Rule is a named constraint. Violated must be pure.
type Rule struct {
	Name     string
	Stage    Stage
	Violated func(g *board.Graph, l board.Layout) bool
}

// Rule names used in rejection counts and telemetry.
const (
	NameHighAdjacency    = "high_adjacency"
	NameExtremeAdjacency = "extreme_adjacency"
	NameClumping         = "clumping"
)

// Set returns the rules enabled by cfg, terrain-stage rules first.
func Set(cfg Config) []Rule {
	var set []Rule

	if cfg.PreventClumping {
		mode := cfg.Mode()
		set = append(set, Rule{
			Name:  NameClumping,
			Stage: StageTerrain,
			Violated: func(g *board.Graph, l board.Layout) bool {
				return ViolatesClumping(g, l, mode)
			},
		})
	}
	if cfg.PreventHighAdjacency {
		set = append(set, Rule{Name: NameHighAdjacency, Stage: StageNumbers, Violated: ViolatesHighAdjacency})
	}
	if cfg.PreventExtremeAdjacency {
		set = append(set, Rule{Name: NameExtremeAdjacency, Stage: StageNumbers, Violated: ViolatesExtremeAdjacency})
	}

	return set
}

// FirstViolation returns the name of the first rule l breaks, or "" if it
// satisfies them all.
func FirstViolation(set []Rule, g *board.Graph, l board.Layout) string {
	for _, r := range set {
		if r.Violated(g, l) {
			return r.Name
		}
	}
	return ""
}

// Valid reports whether l satisfies every rule enabled by cfg.
func Valid(cfg Config, g *board.Graph, l board.Layout) bool {
	return FirstViolation(Set(cfg), g, l) == ""
}

func isHigh(n int) bool    { return n == 6 || n == 8 }
func isExtreme(n int) bool { return n == 2 || n == 12 }

// ViolatesHighAdjacency returns true if a cell numbered 6 or 8 has a
// neighbor numbered 6 or 8.
func ViolatesHighAdjacency(g *board.Graph, l board.Layout) bool {
	return numbersTouch(g, l, isHigh)
}

// ViolatesExtremeAdjacency returns true if a cell numbered 2 or 12 has a
// neighbor numbered 2 or 12.
func ViolatesExtremeAdjacency(g *board.Graph, l board.Layout) bool {
	return numbersTouch(g, l, isExtreme)
}

func numbersTouch(g *board.Graph, l board.Layout, match func(int) bool) bool {
	for _, c := range l.Cells {
		if !match(c.Number) {
			continue
		}
		for _, nb := range g.Neighbors(c.ID) {
			if other, ok := l.Cell(nb); ok && match(other.Number) {
				return true
			}
		}
	}
	return false
}

// ViolatesClumping judges same-terrain clustering among producing cells.
// Only terrains are read, so a layout without numbers can be checked.
func ViolatesClumping(g *board.Graph, l board.Layout, mode ClumpMode) bool {
	switch mode {
	case ClumpGroups:
		for _, group := range TerrainGroups(g, l) {
			if len(group) > MaxGroupSize {
				return true
			}
		}
		return false
	default:
		return hasSameTerrainPair(g, l)
	}
}

func hasSameTerrainPair(g *board.Graph, l board.Layout) bool {
	for _, c := range l.Cells {
		if !c.Terrain.IsResource() {
			continue
		}
		for _, nb := range g.Neighbors(c.ID) {
			if other, ok := l.Cell(nb); ok && other.Terrain == c.Terrain {
				return true
			}
		}
	}
	return false
}

// TerrainGroups returns every maximal connected region of same-terrain
// producing cells. Each group lists cell ids in visit order; deserts are skipped.
func TerrainGroups(g *board.Graph, l board.Layout) [][]int {
	seen := make([]bool, l.Len())
	var groups [][]int

	for _, start := range l.Cells {
		if !start.Terrain.IsResource() || seen[start.ID] {
			continue
		}

		// BFS to collect the region
		queue := []int{start.ID}
		seen[start.ID] = true
		for qi := 0; qi < len(queue); qi++ {
			for _, nb := range g.Neighbors(queue[qi]) {
				other, ok := l.Cell(nb)
				if !ok || seen[nb] || other.Terrain != start.Terrain {
					continue
				}
				seen[nb] = true
				queue = append(queue, nb)
			}
		}
		groups = append(groups, queue)
	}
	return groups
}

// Check rejects configurations that no layout of tpl can satisfy: more
// restricted tokens, or (in adjacent clump mode) more cells of one terrain,
// than the board has mutually non-adjacent cells. Unknown clump modes are
// rejected too. Errors wrap ErrInvalidConfiguration.
func Check(tpl *board.Template, cfg Config) error {
	if cfg.PreventClumping && !cfg.Mode().Valid() {
		return fmt.Errorf("%w: unknown clump mode %q", ErrInvalidConfiguration, cfg.ClumpMode)
	}

	limit := tpl.Graph.MaxIndependentSet()

	if cfg.PreventHighAdjacency {
		if n := countNumbers(tpl.Numbers, isHigh); n > limit {
			return fmt.Errorf("%w: %d tokens of 6 and 8 cannot be kept apart on %d cells",
				ErrInvalidConfiguration, n, tpl.CellCount())
		}
	}
	if cfg.PreventExtremeAdjacency {
		if n := countNumbers(tpl.Numbers, isExtreme); n > limit {
			return fmt.Errorf("%w: %d tokens of 2 and 12 cannot be kept apart on %d cells",
				ErrInvalidConfiguration, n, tpl.CellCount())
		}
	}
	if cfg.PreventClumping && cfg.Mode() == ClumpAdjacent {
		counts := make(map[board.Terrain]int)
		for _, terrain := range tpl.Terrains {
			if terrain.IsResource() {
				counts[terrain]++
			}
		}
		for terrain, n := range counts {
			if n > limit {
				return fmt.Errorf("%w: %d %s cells cannot be kept apart",
					ErrInvalidConfiguration, n, terrain)
			}
		}
	}
	return nil
}

func countNumbers(numbers []int, match func(int) bool) int {
	count := 0
	for _, n := range numbers {
		if match(n) {
			count++
		}
	}
	return count
}
