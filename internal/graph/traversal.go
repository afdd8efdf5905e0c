package graph

import (
	"errors"
	"fmt"
)

// ErrCycle is returned when a store cannot be ordered topologically.
var ErrCycle = errors.New("graph contains a cycle")

// TopologicalOrder orders the nodes of s with Kahn's algorithm.
//
// Zero in-degree nodes seed a FIFO queue in registration order. In-degree
// counts duplicate edges, and every duplicate out-edge decrements its
// successor once, so multiplicity does not affect the result. The order is
// a valid topological order, not a canonical one.
func TopologicalOrder(s *Store) ([]NodeID, error) {
	indegree := make(map[NodeID]int, s.NumNodes())
	queue := make([]NodeID, 0, s.NumNodes())
	for _, n := range s.nodes {
		d := s.InDegree(n)
		indegree[n] = d
		if d == 0 {
			queue = append(queue, n)
		}
	}

	order := make([]NodeID, 0, s.NumNodes())
	for head := 0; head < len(queue); head++ {
		n := queue[head]
		order = append(order, n)
		for _, idx := range s.out[n] {
			dst := s.edges[idx].Dst
			indegree[dst]--
			if indegree[dst] == 0 {
				queue = append(queue, dst)
			}
		}
	}

	if len(order) != s.NumNodes() {
		return nil, fmt.Errorf("ordered %d of %d nodes: %w", len(order), s.NumNodes(), ErrCycle)
	}
	return order, nil
}

// Traversal is the ancestor sub-graph of a root together with its
// topological order. It is computed once per query and shared by the
// forward and backward sweeps.
type Traversal struct {
	root  NodeID
	sub   *Store
	order []NodeID
}

// NewTraversal extracts the ancestor sub-graph of root from s and orders it.
func NewTraversal(s *Store, root NodeID) (*Traversal, error) {
	sub := s.Ancestors(root)
	order, err := TopologicalOrder(sub)
	if err != nil {
		return nil, fmt.Errorf("traversal from node %d: %w", root, err)
	}
	return &Traversal{root: root, sub: sub, order: order}, nil
}

// Root returns the node the traversal was built for.
func (t *Traversal) Root() NodeID {
	return t.root
}

// Graph returns the ancestor sub-graph.
func (t *Traversal) Graph() *Store {
	return t.sub
}

// Forward returns the nodes in topological order (operands before consumers).
// The root is always last.
func (t *Traversal) Forward() []NodeID {
	out := make([]NodeID, len(t.order))
	copy(out, t.order)
	return out
}

// Reverse returns the forward order reversed, which is a topological order
// of the transposed graph. The root is always first.
func (t *Traversal) Reverse() []NodeID {
	n := len(t.order)
	out := make([]NodeID, n)
	for i, id := range t.order {
		out[n-1-i] = id
	}
	return out
}
