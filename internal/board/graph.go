package board

import (
	"fmt"
	"slices"
	"sync"
)

// Graph is the static cell adjacency of a board. It is symmetric and is
// never mutated after construction.
type Graph struct {
	adj [][]int

	misOnce sync.Once
	mis     int
}

// NewGraph builds a graph from per-cell neighbor lists and checks that the
// lists are in range, free of self loops and duplicates, and symmetric.
func NewGraph(adjacency [][]int) (*Graph, error) {
	n := len(adjacency)
	if n > 64 {
		return nil, fmt.Errorf("graph of %d cells exceeds the 64 cell limit", n)
	}
	adj := make([][]int, n)

	for id, neighbors := range adjacency {
		seen := make(map[int]bool, len(neighbors))
		for _, nb := range neighbors {
			if nb < 0 || nb >= n {
				return nil, fmt.Errorf("cell %d: neighbor %d out of range", id, nb)
			}
			if nb == id {
				return nil, fmt.Errorf("cell %d: self loop", id)
			}
			if seen[nb] {
				return nil, fmt.Errorf("cell %d: duplicate neighbor %d", id, nb)
			}
			seen[nb] = true
		}
		adj[id] = slices.Clone(neighbors)
		slices.Sort(adj[id])
	}

	for id, neighbors := range adj {
		for _, nb := range neighbors {
			if _, ok := slices.BinarySearch(adj[nb], id); !ok {
				return nil, fmt.Errorf("cell %d lists %d but not the reverse", id, nb)
			}
		}
	}

	return &Graph{adj: adj}, nil
}

// Size returns the number of cells.
func (g *Graph) Size() int {
	return len(g.adj)
}

// Neighbors returns the ids adjacent to the cell in ascending order, or nil
// for an unknown id. The returned slice is shared and must not be modified.
func (g *Graph) Neighbors(id int) []int {
	if id < 0 || id >= len(g.adj) {
		return nil
	}
	return g.adj[id]
}

// Adjacent returns true if the two cells share an edge.
func (g *Graph) Adjacent(a, b int) bool {
	_, ok := slices.BinarySearch(g.Neighbors(a), b)
	return ok
}

// Edges returns every adjacent pair once, lower id first.
func (g *Graph) Edges() [][2]int {
	var edges [][2]int
	for id, neighbors := range g.adj {
		for _, nb := range neighbors {
			if id < nb {
				edges = append(edges, [2]int{id, nb})
			}
		}
	}
	return edges
}

// MaxIndependentSet returns the size of the largest set of pairwise
// non-adjacent cells. Computed once by exhaustive branching, which is
// fast for boards of a few dozen cells.
func (g *Graph) MaxIndependentSet() int {
	g.misOnce.Do(func() {
		masks := make([]uint64, len(g.adj))
		for id, neighbors := range g.adj {
			for _, nb := range neighbors {
				masks[id] |= 1 << uint(nb)
			}
		}
		var all uint64
		for id := range g.adj {
			all |= 1 << uint(id)
		}
		g.mis = maxIndependent(all, masks)
	})
	return g.mis
}

// maxIndependent branches on the lowest remaining cell: either skip it or
// take it and drop its neighbors.
func maxIndependent(remaining uint64, masks []uint64) int {
	if remaining == 0 {
		return 0
	}
	v := 0
	for remaining&(1<<uint(v)) == 0 {
		v++
	}
	rest := remaining &^ (1 << uint(v))

	without := maxIndependent(rest, masks)
	with := 1 + maxIndependent(rest&^masks[v], masks)
	return max(with, without)
}
