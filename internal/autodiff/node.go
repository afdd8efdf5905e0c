package autodiff

import (
	"github.com/born-ml/cgraph/internal/autodiff/ops"
	"github.com/born-ml/cgraph/internal/graph"
)

// Node is a handle to a node of a Graph. Nodes are comparable and can be
// used as map keys; two handles are equal when they denote the same node.
//
// The zero Node is invalid.
//
// The arithmetic methods accept another Node of the same Graph or a Go
// number, which becomes a new constant, and panic with an *OperandError
// otherwise.
type Node struct {
	g  *Graph
	id graph.NodeID
}

// ID returns the handle of the node within its graph.
func (n Node) ID() graph.NodeID { return n.id }

// Graph returns the graph the node belongs to, or nil for the zero Node.
func (n Node) Graph() *Graph { return n.g }

// IsValid reports whether n refers to a node.
func (n Node) IsValid() bool { return n.g != nil && n.g.owns(n) == nil }

// Kind returns the variant of the node.
func (n Node) Kind() Kind { return n.g.records[n.id].kind }

// Name returns the symbol name, or "" for other kinds.
func (n Node) Name() string { return n.g.records[n.id].name }

// Value returns the literal of a constant, or 0 for other kinds.
func (n Node) Value() float64 { return n.g.records[n.id].value }

// Op returns the operation of an operation node, or nil for other kinds.
func (n Node) Op() ops.Operation { return n.g.records[n.id].op }

// Operands returns the operands of an operation node in order.
func (n Node) Operands() []Node {
	ids := operandIDs(n.g.store, n.id)
	out := make([]Node, len(ids))
	for i, id := range ids {
		out[i] = n.g.node(id)
	}
	return out
}

// String renders the expression rooted at n.
func (n Node) String() string {
	if !n.IsValid() {
		return "<invalid>"
	}
	return n.g.Format(n)
}

// Add returns n + other.
func (n Node) Add(other any) Node { return n.g.Add(n, n.lift(ops.Add, other)) }

// Sub returns n - other.
func (n Node) Sub(other any) Node { return n.g.Sub(n, n.lift(ops.Sub, other)) }

// Mul returns n * other.
func (n Node) Mul(other any) Node { return n.g.Mul(n, n.lift(ops.Mul, other)) }

// Div returns n / other.
func (n Node) Div(other any) Node { return n.g.Div(n, n.lift(ops.Div, other)) }

// Pow returns n ** other.
func (n Node) Pow(other any) Node { return n.g.Pow(n, n.lift(ops.Pow, other)) }

// Min returns min(n, other).
func (n Node) Min(other any) Node { return n.g.Min(n, n.lift(ops.Min, other)) }

// Max returns max(n, other).
func (n Node) Max(other any) Node { return n.g.Max(n, n.lift(ops.Max, other)) }

// Neg returns -n.
func (n Node) Neg() Node { return n.g.Neg(n) }

// Abs returns |n|.
func (n Node) Abs() Node { return n.g.Abs(n) }

// Sign returns copysign(1, n).
func (n Node) Sign() Node { return n.g.Sign(n) }

// Exp returns e**n.
func (n Node) Exp() Node { return n.g.Exp(n) }

// Log returns ln(n).
func (n Node) Log() Node { return n.g.Log(n) }

// Sqrt returns sqrt(n).
func (n Node) Sqrt() Node { return n.g.Sqrt(n) }

// Sin returns sin(n).
func (n Node) Sin() Node { return n.g.Sin(n) }

// Cos returns cos(n).
func (n Node) Cos() Node { return n.g.Cos(n) }

func (n Node) lift(op ops.Operation, other any) Node {
	if n.g == nil {
		panic(&OperandError{Op: op.Name(), Details: "zero node"})
	}
	o, err := n.g.Lift(other)
	if oe, ok := err.(*OperandError); ok {
		oe.Op = op.Name()
		panic(oe)
	}
	return o
}
