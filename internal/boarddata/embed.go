// Package boarddata holds the embedded definition of the standard board:
// piece pools, adjacency, harbour slots and cell geometry.
package boarddata

import "embed"

//go:embed *.json
var dataFS embed.FS
