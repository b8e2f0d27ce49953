package board

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
)

// Layout is a terrain and number assignment over every cell, indexed by
// cell id. A layout returned by the generator is complete and valid; the
// generator never hands out a layout it is still working on.
type Layout struct {
	Cells []Cell
}

// NewLayout places terrains on cells 0..n-1 in order, without numbers.
func NewLayout(terrains []Terrain) Layout {
	cells := make([]Cell, len(terrains))
	for i, terrain := range terrains {
		cells[i] = Cell{ID: i, Terrain: terrain}
	}
	return Layout{Cells: cells}
}

// WithNumbers returns a copy of the layout with number tokens dealt to the
// producing cells in ascending id order, taking tokens off the end of the
// pool. The pool must hold exactly one token per producing cell.
func (l Layout) WithNumbers(pool []int) (Layout, error) {
	producing := 0
	for _, c := range l.Cells {
		if c.Terrain.IsResource() {
			producing++
		}
	}
	if len(pool) != producing {
		return Layout{}, fmt.Errorf("%d number tokens for %d producing cells", len(pool), producing)
	}

	dealt, _ := AssignFromPool(pool, producing)

	out := l.Clone()
	next := 0
	for i := range out.Cells {
		if !out.Cells[i].Terrain.IsResource() {
			out.Cells[i].Number = NoNumber
			continue
		}
		out.Cells[i].Number = dealt[next]
		next++
	}
	return out, nil
}

// Clone returns a deep copy.
func (l Layout) Clone() Layout {
	return Layout{Cells: slices.Clone(l.Cells)}
}

// Len returns the number of cells.
func (l Layout) Len() int {
	return len(l.Cells)
}

// IsZero returns true for the empty layout returned alongside errors.
func (l Layout) IsZero() bool {
	return len(l.Cells) == 0
}

// Cell returns the cell with the given id.
func (l Layout) Cell(id int) (Cell, bool) {
	if id < 0 || id >= len(l.Cells) {
		return Cell{}, false
	}
	return l.Cells[id], true
}

// Desert returns the first desert cell.
func (l Layout) Desert() (Cell, bool) {
	for _, c := range l.Cells {
		if c.Terrain == TerrainDesert {
			return c, true
		}
	}
	return Cell{}, false
}

// TerrainCounts returns how many cells hold each terrain.
func (l Layout) TerrainCounts() map[Terrain]int {
	counts := make(map[Terrain]int)
	for _, c := range l.Cells {
		counts[c.Terrain]++
	}
	return counts
}

// NumberCounts returns how many cells hold each number token.
func (l Layout) NumberCounts() map[int]int {
	counts := make(map[int]int)
	for _, c := range l.Cells {
		if c.HasNumber() {
			counts[c.Number]++
		}
	}
	return counts
}

// Validate checks the layout against the template's pools: one cell per
// id in order, the exact terrain and number multisets, and a number on
// every producing cell and on no other.
func (l Layout) Validate(t *Template) error {
	if len(l.Cells) != t.CellCount() {
		return fmt.Errorf("layout has %d cells, board has %d", len(l.Cells), t.CellCount())
	}

	for i, c := range l.Cells {
		if c.ID != i {
			return fmt.Errorf("cell at index %d has id %d", i, c.ID)
		}
		if c.Terrain.IsResource() != c.HasNumber() {
			return fmt.Errorf("cell %d: %s with number %d", c.ID, c.Terrain, c.Number)
		}
	}

	wantTerrains := make(map[Terrain]int)
	for _, terrain := range t.Terrains {
		wantTerrains[terrain]++
	}
	if !maps.Equal(wantTerrains, l.TerrainCounts()) {
		return fmt.Errorf("terrain counts %v, want %v", l.TerrainCounts(), wantTerrains)
	}

	wantNumbers := make(map[int]int)
	for _, n := range t.Numbers {
		wantNumbers[n]++
	}
	if !maps.Equal(wantNumbers, l.NumberCounts()) {
		return fmt.Errorf("number counts %v, want %v", l.NumberCounts(), wantNumbers)
	}

	return nil
}

// MarshalJSON encodes the layout as its ordered cell list.
func (l Layout) MarshalJSON() ([]byte, error) {
	if l.Cells == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l.Cells)
}

// UnmarshalJSON decodes an ordered cell list.
func (l *Layout) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &l.Cells)
}
