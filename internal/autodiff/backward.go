package autodiff

import (
	"log/slog"

	"github.com/born-ml/cgraph/internal/graph"
	"github.com/born-ml/cgraph/internal/tensor"
)

// NumericGradient computes the adjoint d(root)/d(n) of every node n in the
// ancestor sub-graph of root, together with the forward values.
//
// Algorithm:
//  1. Forward pass: evaluate every node.
//  2. Forward sweep: for every operation node, compute the local partial
//     per operand position and accumulate it into the gradient of the edge
//     it flows through. Duplicate edges (x*x) share one key, so a node
//     used in k operand slots contributes k partials.
//  3. Backward sweep in reverse order: the root adjoint is 1; any other
//     node's adjoint is the sum of the gradients of its distinct out-edges.
//     Once a node's adjoint is known it is multiplied into the gradient of
//     each of its distinct in-edges, pushing it one layer upstream.
//
// Every edge is visited a constant number of times.
func (g *Graph) NumericGradient(root Node, inputs Inputs) (grads, values map[Node]tensor.Value, err error) {
	tr, err := g.traverse(root)
	if err != nil {
		return nil, nil, err
	}
	vals, err := g.forward(tr, inputs)
	if err != nil {
		return nil, nil, err
	}

	sub := tr.Graph()
	edgeGrads := make(map[graph.Edge]tensor.Value, sub.NumEdges())

	for _, id := range tr.Forward() {
		in := sub.InEdges(id)
		if len(in) == 0 {
			continue
		}
		operands := make([]tensor.Value, len(in))
		for i, e := range in {
			operands[i] = vals[e.Src]
		}
		local := g.records[id].op.Gradient(operands, vals[id])
		for i, e := range in {
			if acc, ok := edgeGrads[e]; ok {
				edgeGrads[e] = tensor.Add(acc, local[i])
			} else {
				edgeGrads[e] = local[i]
			}
		}
	}

	adjoints := make(map[graph.NodeID]tensor.Value, sub.NumNodes())
	for _, id := range tr.Reverse() {
		var d tensor.Value
		if id == root.id {
			d = tensor.OnesLike(vals[id])
		} else {
			out := sub.UniqueOutEdges(id)
			d = edgeGrads[out[0]]
			for _, e := range out[1:] {
				d = tensor.Add(d, edgeGrads[e])
			}
		}
		adjoints[id] = d

		for _, e := range sub.UniqueInEdges(id) {
			edgeGrads[e] = tensor.Mul(edgeGrads[e], d)
		}
	}

	g.logger.Debug("numeric gradient",
		slog.Int("root", int(root.id)),
		slog.Int("edges", len(edgeGrads)))
	return g.nodeMap(adjoints), g.nodeMap(vals), nil
}
