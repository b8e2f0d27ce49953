// Package scoring rates board intersections and per-resource production.
package scoring

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/samdwyer/hexboard/internal/board"
)

// HighValue is the score at which an intersection is worth flagging.
const HighValue = 10

// Intersection is a board vertex and the production of the cells around it.
type Intersection struct {
	X     int   `json:"x"`
	Y     int   `json:"y"`
	Pips  int   `json:"pipScore"`
	Cells []int `json:"cells"` // Producing cells meeting here, ascending
}

// High returns true if the intersection scores at least HighValue.
func (i Intersection) High() bool {
	return i.Pips >= HighValue
}

type vertex struct{ x, y int }

// Aggregate snaps the corners of every producing cell onto the grid and sums
// the pip weight of the cells meeting at each one. The desert contributes
// nothing, so a vertex touched only by the desert is absent. The result is
// sorted by Y, then X.
func Aggregate(layout board.Layout, geom *Geometry) ([]Intersection, error) {
	if layout.Len() != geom.Len() {
		return nil, fmt.Errorf("scoring: layout has %d cells, geometry %d", layout.Len(), geom.Len())
	}

	index := make(map[vertex]int)
	var out []Intersection

	for _, c := range layout.Cells {
		if !c.Terrain.IsResource() {
			continue
		}
		corners, err := geom.Corners(c.ID)
		if err != nil {
			return nil, err
		}
		for _, p := range corners {
			v := vertex{geom.Snap(p.X), geom.Snap(p.Y)}
			i, ok := index[v]
			if !ok {
				i = len(out)
				index[v] = i
				out = append(out, Intersection{X: v.x, Y: v.y})
			}
			out[i].Pips += c.Pips()
			out[i].Cells = append(out[i].Cells, c.ID)
		}
	}

	slices.SortFunc(out, func(a, b Intersection) int {
		if a.Y != b.Y {
			return cmp.Compare(a.Y, b.Y)
		}
		return cmp.Compare(a.X, b.X)
	})
	return out, nil
}

// Best returns the n highest scoring intersections, ties in board order.
func Best(points []Intersection, n int) []Intersection {
	ranked := slices.Clone(points)
	slices.SortStableFunc(ranked, func(a, b Intersection) int {
		return cmp.Compare(b.Pips, a.Pips)
	})
	return ranked[:min(max(n, 0), len(ranked))]
}

// ResourcePips totals the pip weight each resource produces across the
// layout. Every resource has an entry, zero if nothing produces it.
func ResourcePips(layout board.Layout) map[board.Terrain]int {
	totals := make(map[board.Terrain]int, len(board.Resources))
	for _, r := range board.Resources {
		totals[r] = 0
	}
	for _, c := range layout.Cells {
		if c.Terrain.IsResource() {
			totals[c.Terrain] += c.Pips()
		}
	}
	return totals
}
