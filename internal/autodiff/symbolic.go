package autodiff

import (
	"log/slog"

	"github.com/born-ml/cgraph/internal/autodiff/ops"
	"github.com/born-ml/cgraph/internal/graph"
)

// SymbolicGradient returns, for every node n in the ancestor sub-graph of
// root, a new expression for d(root)/d(n).
//
// It runs the same two sweeps as NumericGradient, but local partials come
// from the symbolic gradients of the operations and accumulation builds Add
// and Mul nodes. Partials arriving through duplicate edges are summed as
// separate terms, which stays exact for asymmetric operations such as x/x.
//
// The returned expressions are ordinary nodes of g and can be evaluated,
// simplified or differentiated again. The sub-graph of root itself is left
// untouched; new nodes and edges are only appended.
func (g *Graph) SymbolicGradient(root Node) (map[Node]Node, error) {
	tr, err := g.traverse(root)
	if err != nil {
		return nil, err
	}

	sub := tr.Graph()
	b := builder{g: g}
	edgeGrads := make(map[graph.Edge]graph.NodeID, sub.NumEdges())
	before := g.NumNodes()

	for _, id := range tr.Forward() {
		in := sub.InEdges(id)
		if len(in) == 0 {
			continue
		}
		local := g.records[id].op.SymbolicGradient(b, operandIDs(sub, id), id)
		for i, e := range in {
			if acc, ok := edgeGrads[e]; ok {
				edgeGrads[e] = b.Apply(ops.Add, acc, local[i])
			} else {
				edgeGrads[e] = local[i]
			}
		}
	}

	adjoints := make(map[Node]Node, sub.NumNodes())
	for _, id := range tr.Reverse() {
		var d graph.NodeID
		if id == root.id {
			d = b.Constant(1)
		} else {
			out := sub.UniqueOutEdges(id)
			d = edgeGrads[out[0]]
			for _, e := range out[1:] {
				d = b.Apply(ops.Add, d, edgeGrads[e])
			}
		}
		adjoints[g.node(id)] = g.node(d)

		for _, e := range sub.UniqueInEdges(id) {
			edgeGrads[e] = b.Apply(ops.Mul, d, edgeGrads[e])
		}
	}

	g.logger.Debug("symbolic gradient",
		slog.Int("root", int(root.id)),
		slog.Int("new_nodes", g.NumNodes()-before))
	return adjoints, nil
}
