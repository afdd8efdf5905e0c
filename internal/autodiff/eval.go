package autodiff

import (
	"fmt"
	"log/slog"

	"github.com/born-ml/cgraph/internal/graph"
	"github.com/born-ml/cgraph/internal/tensor"
)

// Evaluate computes the value of every node in the ancestor sub-graph of
// root.
//
// Every symbol reachable from root needs an entry in inputs, otherwise a
// *MissingInputError is returned. Operand values must have equal shapes or
// hold a single element; anything else fails with tensor.ErrShapeMismatch.
// Domain errors (division by zero, logarithm of a non-positive number) do
// not fail: the affected elements are NaN.
func (g *Graph) Evaluate(root Node, inputs Inputs) (map[Node]tensor.Value, error) {
	tr, err := g.traverse(root)
	if err != nil {
		return nil, err
	}
	values, err := g.forward(tr, inputs)
	if err != nil {
		return nil, err
	}
	return g.nodeMap(values), nil
}

// Value returns the value of root only.
func (g *Graph) Value(root Node, inputs Inputs) (tensor.Value, error) {
	tr, err := g.traverse(root)
	if err != nil {
		return tensor.Value{}, err
	}
	values, err := g.forward(tr, inputs)
	if err != nil {
		return tensor.Value{}, err
	}
	return values[root.id], nil
}

// forward runs the forward pass over the traversal order.
func (g *Graph) forward(tr *graph.Traversal, inputs Inputs) (map[graph.NodeID]tensor.Value, error) {
	sub := tr.Graph()
	order := tr.Forward()
	values := make(map[graph.NodeID]tensor.Value, len(order))

	for _, id := range order {
		rec := g.records[id]
		switch rec.kind {
		case KindSymbol:
			v, ok := inputs[rec.name]
			if !ok || !v.IsValid() {
				return nil, &MissingInputError{Name: rec.name}
			}
			values[id] = v
		case KindConstant:
			values[id] = tensor.Scalar(rec.value)
		case KindOperation:
			operands := operandIDs(sub, id)
			in := make([]tensor.Value, len(operands))
			for i, src := range operands {
				in[i] = values[src]
			}
			if _, err := tensor.Compatible(in...); err != nil {
				return nil, fmt.Errorf("%s node %d: %w", rec.op.Name(), id, err)
			}
			values[id] = rec.op.Forward(in)
		}
	}

	g.logger.Debug("forward pass",
		slog.Int("root", int(tr.Root())),
		slog.Int("nodes", sub.NumNodes()),
		slog.Int("edges", sub.NumEdges()))
	return values, nil
}

func (g *Graph) nodeMap(values map[graph.NodeID]tensor.Value) map[Node]tensor.Value {
	out := make(map[Node]tensor.Value, len(values))
	for id, v := range values {
		out[g.node(id)] = v
	}
	return out
}
