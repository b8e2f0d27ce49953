package scoring

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/samdwyer/hexboard/internal/boarddata"
)

// Point is a position on the board drawing, in board units.
type Point struct {
	X float64
	Y float64
}

// Geometry is the static corner table of a board: the hex bounding box and
// the top-left position of every cell.
type Geometry struct {
	width  float64
	height float64
	upper  float64
	lower  float64
	snap   float64
	tiles  []boarddata.TilePos
}

// NewGeometry builds a corner table from a board definition.
func NewGeometry(def boarddata.GeometryDef) (*Geometry, error) {
	if def.Width <= 0 || def.Height <= 0 || def.Snap <= 0 {
		return nil, errors.New("geometry: dimensions must be positive")
	}
	if def.UpperShoulder <= 0 || def.LowerShoulder <= def.UpperShoulder || def.Height <= def.LowerShoulder {
		return nil, fmt.Errorf("geometry: shoulders %v/%v do not fit height %v",
			def.UpperShoulder, def.LowerShoulder, def.Height)
	}
	for i, tile := range def.Tiles {
		if tile.ID != i {
			return nil, fmt.Errorf("geometry: tile %d has id %d", i, tile.ID)
		}
	}
	return &Geometry{
		width:  def.Width,
		height: def.Height,
		upper:  def.UpperShoulder,
		lower:  def.LowerShoulder,
		snap:   def.Snap,
		tiles:  slices.Clone(def.Tiles),
	}, nil
}

// StandardGeometry returns the corner table of the embedded standard board.
func StandardGeometry() (*Geometry, error) {
	def, err := boarddata.Standard()
	if err != nil {
		return nil, err
	}
	return NewGeometry(def.Geometry)
}

// Len returns the number of cells in the table.
func (g *Geometry) Len() int {
	return len(g.tiles)
}

// Corners returns the six corners of a cell, clockwise from the top.
func (g *Geometry) Corners(id int) ([6]Point, error) {
	if id < 0 || id >= len(g.tiles) {
		return [6]Point{}, fmt.Errorf("geometry: no cell %d", id)
	}
	l, t := g.tiles[id].Left, g.tiles[id].Top
	mid := l + g.width/2
	right := l + g.width

	return [6]Point{
		{mid, t},
		{right, t + g.upper},
		{right, t + g.lower},
		{mid, t + g.height},
		{l, t + g.lower},
		{l, t + g.upper},
	}, nil
}

// Snap rounds a coordinate to the nearest grid line, halves rounding up, so
// that a corner computed from each cell sharing it lands on the same key.
func (g *Geometry) Snap(v float64) int {
	return int(math.Floor(v/g.snap+0.5) * g.snap)
}

// Rows groups cell ids by their top edge, top row first and left to right
// within a row.
func (g *Geometry) Rows() [][]int {
	ids := make([]int, len(g.tiles))
	for i := range ids {
		ids[i] = i
	}
	slices.SortStableFunc(ids, func(a, b int) int {
		ta, tb := g.tiles[a], g.tiles[b]
		if ta.Top != tb.Top {
			return cmp.Compare(ta.Top, tb.Top)
		}
		return cmp.Compare(ta.Left, tb.Left)
	})

	var rows [][]int
	for i, id := range ids {
		if i == 0 || g.tiles[id].Top != g.tiles[ids[i-1]].Top {
			rows = append(rows, nil)
		}
		rows[len(rows)-1] = append(rows[len(rows)-1], id)
	}
	return rows
}

// Indent returns how far a row starts right of the leftmost row, in half
// cell widths.
func (g *Geometry) Indent(row []int) int {
	if len(row) == 0 {
		return 0
	}
	minLeft := math.Inf(1)
	for _, tile := range g.tiles {
		minLeft = min(minLeft, tile.Left)
	}
	return int(math.Round((g.tiles[row[0]].Left - minLeft) / (g.width / 2)))
}
