package board

import (
	"fmt"
	"sync"

	"github.com/samdwyer/hexboard/internal/boarddata"
)

// Template holds the fixed pieces of a board: its adjacency graph and the
// terrain and number pools that every layout is dealt from. Templates are
// process-wide constants and are never mutated.
type Template struct {
	Name     string
	Graph    *Graph
	Terrains []Terrain // Pool in definition order
	Numbers  []int     // Pool in definition order
}

// NewTemplate builds a template from a validated board definition.
func NewTemplate(def *boarddata.Definition) (*Template, error) {
	graph, err := NewGraph(def.Adjacency)
	if err != nil {
		return nil, fmt.Errorf("board %q: %w", def.Name, err)
	}

	terrains := make([]Terrain, 0, def.TerrainTotal())
	for _, tc := range def.Terrains {
		terrain := Terrain(tc.Terrain)
		if !terrain.Valid() {
			return nil, fmt.Errorf("board %q: unknown terrain %q", def.Name, tc.Terrain)
		}
		for i := 0; i < tc.Count; i++ {
			terrains = append(terrains, terrain)
		}
	}

	if len(terrains) != graph.Size() {
		return nil, fmt.Errorf("board %q: %d terrains for %d cells", def.Name, len(terrains), graph.Size())
	}

	numbers := make([]int, len(def.Numbers))
	copy(numbers, def.Numbers)

	return &Template{
		Name:     def.Name,
		Graph:    graph,
		Terrains: terrains,
		Numbers:  numbers,
	}, nil
}

var (
	standardOnce sync.Once
	standardTpl  *Template
	standardErr  error
)

// Standard returns the template of the embedded 19-cell board.
func Standard() (*Template, error) {
	standardOnce.Do(func() {
		def, err := boarddata.Standard()
		if err != nil {
			standardErr = err
			return
		}
		standardTpl, standardErr = NewTemplate(def)
	})
	return standardTpl, standardErr
}

// MustStandard returns the standard template, panicking on error.
func MustStandard() *Template {
	tpl, err := Standard()
	if err != nil {
		panic(err)
	}
	return tpl
}

// CellCount returns the number of land cells.
func (t *Template) CellCount() int {
	return t.Graph.Size()
}

// ProducingCells returns the number of cells that receive a number token.
func (t *Template) ProducingCells() int {
	count := 0
	for _, terrain := range t.Terrains {
		if terrain.IsResource() {
			count++
		}
	}
	return count
}
