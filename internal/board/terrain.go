// Package board provides the cell, graph and layout types of a hex board.
package board

// Terrain is the resource a cell produces.
type Terrain string

const (
	// TerrainWood produces lumber.
	TerrainWood Terrain = "wood"
	// TerrainBrick produces brick.
	TerrainBrick Terrain = "brick"
	// TerrainSheep produces wool.
	TerrainSheep Terrain = "sheep"
	// TerrainWheat produces grain.
	TerrainWheat Terrain = "wheat"
	// TerrainOre produces ore.
	TerrainOre Terrain = "ore"
	// TerrainDesert produces nothing and carries no number token.
	TerrainDesert Terrain = "desert"
)

// Resources lists the producing terrains in display order.
var Resources = []Terrain{TerrainWood, TerrainBrick, TerrainSheep, TerrainWheat, TerrainOre}

// IsResource returns true if the terrain produces something.
func (t Terrain) IsResource() bool {
	switch t {
	case TerrainWood, TerrainBrick, TerrainSheep, TerrainWheat, TerrainOre:
		return true
	default:
		return false
	}
}

// Valid returns true for any known terrain, desert included.
func (t Terrain) Valid() bool {
	return t == TerrainDesert || t.IsResource()
}

// Rune returns the terrain's display character.
func (t Terrain) Rune() rune {
	switch t {
	case TerrainWood:
		return 'W'
	case TerrainBrick:
		return 'B'
	case TerrainSheep:
		return 'S'
	case TerrainWheat:
		return 'H'
	case TerrainOre:
		return 'O'
	case TerrainDesert:
		return 'D'
	default:
		return '?'
	}
}
