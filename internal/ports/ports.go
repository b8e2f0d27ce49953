// Package ports places harbours on the water ring around the island.
package ports

import (
	"fmt"
	"math/rand"

	"github.com/samdwyer/hexboard/internal/board"
	"github.com/samdwyer/hexboard/internal/boarddata"
)

// Type is a harbour kind: generic, or one of the five resources.
type Type string

// Generic harbours accept any resource.
const Generic Type = "generic"

const (
	genericRatio  = 3
	resourceRatio = 2
)

// Resource returns the terrain a resource harbour trades, or "" for a
// generic one.
func (t Type) Resource() board.Terrain {
	if t == Generic {
		return ""
	}
	return board.Terrain(t)
}

// Ratio returns how many cards the harbour takes for one: 3 for generic,
// 2 for a resource harbour.
func (t Type) Ratio() int {
	if t == Generic {
		return genericRatio
	}
	return resourceRatio
}

// Valid returns true for generic and the five resources.
func (t Type) Valid() bool {
	return t == Generic || board.Terrain(t).IsResource()
}

// Slot is a harbour placed on a water cell.
type Slot struct {
	WaterSlot int  `json:"slot"`
	Type      Type `json:"type"`
	Angle     int  `json:"angle"` // Degrees, facing the adjoining land
}

// Assigner deals harbour types onto the fixed port slots of a board.
type Assigner struct {
	pool  []Type
	fixed []Type
	slots []boarddata.PortSlot
}

// NewAssigner checks a ports definition and prepares an assigner for it.
func NewAssigner(def boarddata.PortsDef) (*Assigner, error) {
	if len(def.Types) != len(def.Slots) || len(def.Fixed) != len(def.Slots) {
		return nil, fmt.Errorf("ports: %d types, %d fixed, %d slots", len(def.Types), len(def.Fixed), len(def.Slots))
	}

	a := &Assigner{
		pool:  make([]Type, len(def.Types)),
		fixed: make([]Type, len(def.Fixed)),
		slots: def.Slots,
	}
	for i, t := range def.Types {
		a.pool[i] = Type(t)
		if !a.pool[i].Valid() {
			return nil, fmt.Errorf("ports: unknown type %q", t)
		}
	}
	for i, t := range def.Fixed {
		a.fixed[i] = Type(t)
		if !a.fixed[i].Valid() {
			return nil, fmt.Errorf("ports: unknown fixed type %q", t)
		}
	}

	// Fixed and random mode must hand out the same harbours.
	counts := make(map[Type]int, len(a.pool))
	for _, t := range a.pool {
		counts[t]++
	}
	for _, t := range a.fixed {
		counts[t]--
	}
	for t, c := range counts {
		if c != 0 {
			return nil, fmt.Errorf("ports: fixed order has %d %s harbours, pool has %d", countOf(a.fixed, t), t, countOf(a.pool, t))
		}
	}
	return a, nil
}

// Assign returns one harbour per port slot, in slot order. In fixed mode
// the canonical arrangement is returned and rng is not used. Otherwise the
// type pool is shuffled uniformly onto the slots.
func (a *Assigner) Assign(fixed bool, rng *rand.Rand) []Slot {
	types := a.fixed
	if !fixed {
		types = board.Shuffled(a.pool, rng)
	}

	out := make([]Slot, len(a.slots))
	for i, s := range a.slots {
		out[i] = Slot{WaterSlot: s.Water, Type: types[i], Angle: s.Angle}
	}
	return out
}

func countOf(types []Type, t Type) int {
	n := 0
	for _, x := range types {
		if x == t {
			n++
		}
	}
	return n
}

// Len returns the number of port slots.
func (a *Assigner) Len() int {
	return len(a.slots)
}

// Assign is a convenience wrapper for a single assignment.
func Assign(def boarddata.PortsDef, fixed bool, rng *rand.Rand) ([]Slot, error) {
	a, err := NewAssigner(def)
	if err != nil {
		return nil, err
	}
	return a.Assign(fixed, rng), nil
}
