// Package game ties generation, harbours and scoring into boards a caller
// can request one after another.
package game

// State represents whether a board is available.
type State int

const (
	// StateEmpty means no board has been generated yet.
	StateEmpty State = iota
	// StateReady means a board is available. A failed request leaves the
	// game ready with its previous board.
	StateReady
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateReady:
		return "ready"
	default:
		return "unknown"
	}
}
