// Package graph implements the append-only edge store that backs expression
// graphs, together with ancestor extraction and topological traversal.
//
// A Store is a multiset of directed edges. Duplicate edges are preserved:
// when one node feeds the same consumer through two operand slots (x*x),
// two identical edges are recorded and both are reported by InEdges/OutEdges.
// The order of a node's in-edges is the order in which they were added and
// is the operand order of the consuming operation.
//
// A Store is not safe for concurrent use.
package graph

import (
	"fmt"
	"slices"
)

// NodeID is a stable handle for a node. Handles are assigned by the owner of
// the node arena; the store only records how handles are connected.
type NodeID int

// Edge is a directed connection from an operand (Src) to its consumer (Dst).
type Edge struct {
	Src NodeID
	Dst NodeID
}

// String returns "src->dst".
func (e Edge) String() string {
	return fmt.Sprintf("%d->%d", e.Src, e.Dst)
}

// Store is an append-only multiset of edges plus the implicit node set of
// all endpoints.
type Store struct {
	edges []Edge
	in    map[NodeID][]int // indices into edges, insertion order
	out   map[NodeID][]int
	nodes []NodeID // registration order
	known map[NodeID]struct{}
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		edges: make([]Edge, 0, 64),
		in:    make(map[NodeID][]int),
		out:   make(map[NodeID][]int),
		known: make(map[NodeID]struct{}),
	}
}

// AddNode registers n without connecting it. Registering an already known
// node is a no-op.
func (s *Store) AddNode(n NodeID) {
	if _, ok := s.known[n]; ok {
		return
	}
	s.known[n] = struct{}{}
	s.nodes = append(s.nodes, n)
}

// AddEdge appends the edge src->dst and registers both endpoints.
// Calling it twice with the same pair records two edges.
func (s *Store) AddEdge(src, dst NodeID) {
	s.AddNode(src)
	s.AddNode(dst)
	idx := len(s.edges)
	s.edges = append(s.edges, Edge{Src: src, Dst: dst})
	s.in[dst] = append(s.in[dst], idx)
	s.out[src] = append(s.out[src], idx)
}

// Contains reports whether n is registered.
func (s *Store) Contains(n NodeID) bool {
	_, ok := s.known[n]
	return ok
}

// Nodes returns all registered nodes in registration order.
func (s *Store) Nodes() []NodeID {
	out := make([]NodeID, len(s.nodes))
	copy(out, s.nodes)
	return out
}

// NumNodes returns the number of registered nodes.
func (s *Store) NumNodes() int {
	return len(s.nodes)
}

// Edges returns every edge in insertion order.
func (s *Store) Edges() []Edge {
	out := make([]Edge, len(s.edges))
	copy(out, s.edges)
	return out
}

// NumEdges returns the number of edges, counting duplicates.
func (s *Store) NumEdges() int {
	return len(s.edges)
}

// InEdges returns all edges ending at n in insertion order, duplicates included.
func (s *Store) InEdges(n NodeID) []Edge {
	return s.collect(s.in[n])
}

// OutEdges returns all edges starting at n in insertion order, duplicates included.
func (s *Store) OutEdges(n NodeID) []Edge {
	return s.collect(s.out[n])
}

// UniqueInEdges returns the distinct edges ending at n, in order of first occurrence.
func (s *Store) UniqueInEdges(n NodeID) []Edge {
	return unique(s.InEdges(n))
}

// UniqueOutEdges returns the distinct edges starting at n, in order of first occurrence.
func (s *Store) UniqueOutEdges(n NodeID) []Edge {
	return unique(s.OutEdges(n))
}

// InDegree returns the number of edges ending at n, duplicates included.
func (s *Store) InDegree(n NodeID) int {
	return len(s.in[n])
}

// OutDegree returns the number of edges starting at n, duplicates included.
func (s *Store) OutDegree(n NodeID) int {
	return len(s.out[n])
}

// Multiplicity returns how many times e occurs in the store.
func (s *Store) Multiplicity(e Edge) int {
	count := 0
	for _, idx := range s.out[e.Src] {
		if s.edges[idx].Dst == e.Dst {
			count++
		}
	}
	return count
}

// Ancestors returns a new store holding root and every node reachable from
// it by following edges backward, restricted to the in-edges of those
// nodes. Edge insertion order is preserved, so operand order survives the
// copy. The receiver is not modified.
func (s *Store) Ancestors(root NodeID) *Store {
	visited := map[NodeID]struct{}{root: {}}
	var edgeIdx []int

	queue := []NodeID{root}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		for _, idx := range s.in[n] {
			edgeIdx = append(edgeIdx, idx)
			src := s.edges[idx].Src
			if _, seen := visited[src]; seen {
				continue
			}
			visited[src] = struct{}{}
			queue = append(queue, src)
		}
	}

	slices.Sort(edgeIdx)

	sub := NewStore()
	for _, idx := range edgeIdx {
		e := s.edges[idx]
		sub.AddEdge(e.Src, e.Dst)
	}
	// An isolated root (a bare symbol or constant) has no edges.
	sub.AddNode(root)
	return sub
}

func (s *Store) collect(indices []int) []Edge {
	out := make([]Edge, len(indices))
	for i, idx := range indices {
		out[i] = s.edges[idx]
	}
	return out
}

func unique(edges []Edge) []Edge {
	seen := make(map[Edge]struct{}, len(edges))
	out := edges[:0]
	for _, e := range edges {
		if _, ok := seen[e]; ok {
			continue
		}
		seen[e] = struct{}{}
		out = append(out, e)
	}
	return out
}
