package board

import "encoding/json"

// NoNumber marks a cell without a number token.
const NoNumber = 0

// Cell is one land hexagon.
type Cell struct {
	ID      int     // Fixed index 0..18
	Terrain Terrain // Resource produced
	Number  int     // Dice trigger, NoNumber for the desert
}

// HasNumber returns true if the cell carries a number token.
func (c Cell) HasNumber() bool {
	return c.Number != NoNumber
}

// IsHot returns true for the most frequently rolled numbers, 6 and 8.
func (c Cell) IsHot() bool {
	return c.Number == 6 || c.Number == 8
}

// Pips returns the cell's production weight.
func (c Cell) Pips() int {
	return PipWeight(c.Number)
}

type cellJSON struct {
	ID      int     `json:"id"`
	Terrain Terrain `json:"terrain"`
	Number  *int    `json:"number"`
}

// MarshalJSON encodes a missing number as null.
func (c Cell) MarshalJSON() ([]byte, error) {
	out := cellJSON{ID: c.ID, Terrain: c.Terrain}
	if c.HasNumber() {
		n := c.Number
		out.Number = &n
	}
	return json.Marshal(out)
}

// UnmarshalJSON accepts null for a missing number.
func (c *Cell) UnmarshalJSON(data []byte) error {
	var in cellJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	c.ID = in.ID
	c.Terrain = in.Terrain
	c.Number = NoNumber
	if in.Number != nil {
		c.Number = *in.Number
	}
	return nil
}

// PipWeight returns the number of two-dice combinations that roll n,
// the dots printed under a number token. Numbers off the token range weigh 0.
func PipWeight(n int) int {
	if n < 2 || n > 12 || n == 7 {
		return 0
	}
	if n < 7 {
		return n - 1
	}
	return 13 - n
}
