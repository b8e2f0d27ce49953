package boarddata

import (
	"errors"
	"fmt"
	"sync"
)

// StandardFile is the embedded definition of the 19-cell base game board.
const StandardFile = "board.json"

// DesertTerrain is the only terrain that receives no number token.
const DesertTerrain = "desert"

// Definition describes a board: its piece pools, cell adjacency, harbour
// slots and per-cell geometry. It is loaded once and never mutated.
type Definition struct {
	Name       string         `json:"name"`
	Terrains   []TerrainCount `json:"terrains"`
	Numbers    []int          `json:"numbers"`
	Adjacency  [][]int        `json:"adjacency"`
	WaterSlots int            `json:"waterSlots"` // Water cells ringing the island
	Ports      PortsDef       `json:"ports"`
	Geometry   GeometryDef    `json:"geometry"`
}

// TerrainCount is one entry of the terrain pool.
type TerrainCount struct {
	Terrain string `json:"terrain"`
	Count   int    `json:"count"`
}

// PortsDef lists the harbour types and the water slots they attach to.
type PortsDef struct {
	Types []string   `json:"types"` // Pool shuffled in random mode
	Fixed []string   `json:"fixed"` // Canonical order, one per slot in slot order
	Slots []PortSlot `json:"slots"`
}

// PortSlot is a water cell that carries a harbour.
type PortSlot struct {
	Water int `json:"water"` // Water cell index
	Angle int `json:"angle"` // Facing in degrees, pointing at the adjoining land
}

// GeometryDef is the static corner table input: the hex bounding box and
// the top-left position of every land cell.
type GeometryDef struct {
	Width         float64   `json:"width"`
	Height        float64   `json:"height"`
	UpperShoulder float64   `json:"upperShoulder"` // Y offset of the upper side corners
	LowerShoulder float64   `json:"lowerShoulder"` // Y offset of the lower side corners
	Snap          float64   `json:"snap"`          // Grid used to merge shared corners
	Tiles         []TilePos `json:"tiles"`
}

// TilePos is the top-left corner of a cell's bounding box.
type TilePos struct {
	ID   int     `json:"id"`
	Left float64 `json:"left"`
	Top  float64 `json:"top"`
}

// CellCount returns the number of land cells.
func (d *Definition) CellCount() int {
	return len(d.Adjacency)
}

// TerrainTotal returns the size of the terrain pool.
func (d *Definition) TerrainTotal() int {
	total := 0
	for _, tc := range d.Terrains {
		total += tc.Count
	}
	return total
}

// Validate checks that the pools, graph, ports and geometry agree with each other.
func (d *Definition) Validate() error {
	cells := d.CellCount()
	if cells == 0 {
		return errors.New("board definition has no cells")
	}

	if total := d.TerrainTotal(); total != cells {
		return fmt.Errorf("terrain pool has %d pieces for %d cells", total, cells)
	}

	deserts := 0
	seen := make(map[string]bool)
	for _, tc := range d.Terrains {
		if tc.Count < 0 {
			return fmt.Errorf("terrain %q has negative count %d", tc.Terrain, tc.Count)
		}
		if seen[tc.Terrain] {
			return fmt.Errorf("terrain %q listed twice", tc.Terrain)
		}
		seen[tc.Terrain] = true
		if tc.Terrain == DesertTerrain {
			deserts = tc.Count
		}
	}
	if deserts != 1 {
		return fmt.Errorf("board needs exactly one desert, got %d", deserts)
	}

	if len(d.Numbers) != cells-deserts {
		return fmt.Errorf("number pool has %d tokens for %d producing cells", len(d.Numbers), cells-deserts)
	}
	for _, n := range d.Numbers {
		if n < 2 || n > 12 || n == 7 {
			return fmt.Errorf("invalid number token %d", n)
		}
	}

	if err := d.validatePorts(); err != nil {
		return err
	}

	if len(d.Geometry.Tiles) != cells {
		return fmt.Errorf("geometry lists %d tiles for %d cells", len(d.Geometry.Tiles), cells)
	}
	for i, tile := range d.Geometry.Tiles {
		if tile.ID != i {
			return fmt.Errorf("geometry tile %d has id %d", i, tile.ID)
		}
	}
	if d.Geometry.Width <= 0 || d.Geometry.Height <= 0 || d.Geometry.Snap <= 0 {
		return errors.New("geometry dimensions must be positive")
	}

	return nil
}

func (d *Definition) validatePorts() error {
	slots := d.Ports.Slots
	if len(d.Ports.Types) != len(slots) {
		return fmt.Errorf("%d port types for %d port slots", len(d.Ports.Types), len(slots))
	}
	if len(d.Ports.Fixed) != len(slots) {
		return fmt.Errorf("%d fixed ports for %d port slots", len(d.Ports.Fixed), len(slots))
	}

	// The fixed order must be a rearrangement of the random pool.
	counts := make(map[string]int)
	for _, t := range d.Ports.Types {
		counts[t]++
	}
	for _, t := range d.Ports.Fixed {
		counts[t]--
	}
	for t, c := range counts {
		if c != 0 {
			return fmt.Errorf("fixed ports disagree with port pool on %q", t)
		}
	}

	prev := -1
	for _, s := range slots {
		if s.Water < 0 || s.Water >= d.WaterSlots {
			return fmt.Errorf("port slot %d outside water ring of %d", s.Water, d.WaterSlots)
		}
		if s.Water <= prev {
			return fmt.Errorf("port slots must be ascending, got %d after %d", s.Water, prev)
		}
		prev = s.Water
	}
	return nil
}

var (
	standardOnce sync.Once
	standardDef  *Definition
	standardErr  error
)

// Standard loads and validates the embedded standard board. The result is
// cached and shared; callers must not modify it.
func Standard() (*Definition, error) {
	standardOnce.Do(func() {
		def, err := Load[Definition](StandardFile)
		if err != nil {
			standardErr = err
			return
		}
		if err := def.Validate(); err != nil {
			standardErr = fmt.Errorf("invalid %s: %w", StandardFile, err)
			return
		}
		standardDef = &def
	})
	return standardDef, standardErr
}

// MustStandard returns the standard board, panicking on error.
func MustStandard() *Definition {
	def, err := Standard()
	if err != nil {
		panic(err)
	}
	return def
}
