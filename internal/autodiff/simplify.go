package autodiff

import (
	"log/slog"

	"github.com/born-ml/cgraph/internal/autodiff/ops"
	"github.com/born-ml/cgraph/internal/graph"
	"github.com/born-ml/cgraph/internal/tensor"
)

// rule rewrites an operation applied to already simplified operands. It
// returns the replacement node and true, or false if it does not apply.
type rule func(g *Graph, op ops.Operation, operands []graph.NodeID) (graph.NodeID, bool)

// simplificationRules are tried in order; the first match wins.
var simplificationRules = []rule{
	mulIdentityRule,
	addIdentityRule,
	constantFoldingRule,
}

// Simplify returns the root of a simplified copy of the expression rooted
// at root.
//
// The ancestor sub-graph is visited once in topological order. Symbols are
// kept; every other node is re-expressed with its operands replaced by their
// simplified versions and then rewritten by the first matching rule:
//   - x*1 and 1*x become x
//   - x+0 and 0+x become x
//   - an operation whose operands are all constants becomes one constant
//
// If no rule applies a copy of the node is created. The pass is not
// repeated until a fixpoint: a rewrite never re-examines nodes that were
// already visited. The original nodes are not modified.
func (g *Graph) Simplify(root Node) (Node, error) {
	tr, err := g.traverse(root)
	if err != nil {
		return Node{}, err
	}

	sub := tr.Graph()
	simplified := make(map[graph.NodeID]graph.NodeID, sub.NumNodes())
	rewrites := 0

	for _, id := range tr.Forward() {
		rec := g.records[id]
		switch rec.kind {
		case KindSymbol:
			simplified[id] = id
		case KindConstant:
			simplified[id] = g.Constant(rec.value).id
		case KindOperation:
			operands := operandIDs(sub, id)
			for i, src := range operands {
				operands[i] = simplified[src]
			}
			replaced := false
			for _, r := range simplificationRules {
				if n, ok := r(g, rec.op, operands); ok {
					simplified[id] = n
					replaced = true
					rewrites++
					break
				}
			}
			if !replaced {
				simplified[id] = g.apply(rec.op, operands)
			}
		}
	}

	g.logger.Debug("simplify",
		slog.Int("root", int(root.id)),
		slog.Int("nodes", sub.NumNodes()),
		slog.Int("rewrites", rewrites))
	return g.node(simplified[root.id]), nil
}

// SimplifyAll simplifies every node of nodes.
func (g *Graph) SimplifyAll(nodes []Node) ([]Node, error) {
	out := make([]Node, len(nodes))
	for i, n := range nodes {
		s, err := g.Simplify(n)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

// SimplifyGradient simplifies every derivative of a symbolic gradient.
func (g *Graph) SimplifyGradient(grads map[Node]Node) (map[Node]Node, error) {
	out := make(map[Node]Node, len(grads))
	for k, v := range grads {
		s, err := g.Simplify(v)
		if err != nil {
			return nil, err
		}
		out[k] = s
	}
	return out, nil
}

func (g *Graph) isConstant(id graph.NodeID, value float64) bool {
	rec := g.records[id]
	return rec.kind == KindConstant && rec.value == value
}

func mulIdentityRule(g *Graph, op ops.Operation, operands []graph.NodeID) (graph.NodeID, bool) {
	if op != ops.Mul {
		return 0, false
	}
	switch {
	case g.isConstant(operands[0], 1):
		return operands[1], true
	case g.isConstant(operands[1], 1):
		return operands[0], true
	}
	return 0, false
}

func addIdentityRule(g *Graph, op ops.Operation, operands []graph.NodeID) (graph.NodeID, bool) {
	if op != ops.Add {
		return 0, false
	}
	switch {
	case g.isConstant(operands[0], 0):
		return operands[1], true
	case g.isConstant(operands[1], 0):
		return operands[0], true
	}
	return 0, false
}

// constantFoldingRule evaluates operations without symbols among their
// transitive operands. Operands are simplified bottom-up, so such an
// operation only has constant operands here.
func constantFoldingRule(g *Graph, op ops.Operation, operands []graph.NodeID) (graph.NodeID, bool) {
	in := make([]tensor.Value, len(operands))
	for i, id := range operands {
		rec := g.records[id]
		if rec.kind != KindConstant {
			return 0, false
		}
		in[i] = tensor.Scalar(rec.value)
	}
	return g.Constant(op.Forward(in).Item()).id, true
}
