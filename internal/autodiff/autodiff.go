// Package autodiff builds expression graphs of named inputs and computes
// their values and reverse-mode derivatives, numerically and symbolically.
//
// A Graph is one session: it owns the node arena and the append-only edge
// store shared by every expression built on it. Nodes are handles into the
// arena. Every query (Evaluate, NumericGradient, SymbolicGradient, Simplify)
// first extracts the ancestor sub-graph of its root, orders it once, and
// sweeps that order.
//
// Example:
//
//	g := autodiff.NewGraph()
//	x, y := g.Symbol("x"), g.Symbol("y")
//	xy := x.Mul(y)
//	f := xy.Add(1).Mul(xy)
//	grads, _, err := g.NumericGradient(f, autodiff.Inputs{"x": tensor.Scalar(2), "y": tensor.Scalar(3)})
//	// grads[x] = 39, grads[y] = 26
package autodiff

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/born-ml/cgraph/internal/autodiff/ops"
	"github.com/born-ml/cgraph/internal/graph"
	"github.com/born-ml/cgraph/internal/tensor"
)

// Inputs maps symbol names to their values.
type Inputs map[string]tensor.Value

// Kind is the variant of a node.
type Kind uint8

// Node kinds.
const (
	KindSymbol Kind = iota + 1
	KindConstant
	KindOperation
)

// String returns the lower-case kind name.
func (k Kind) String() string {
	switch k {
	case KindSymbol:
		return "symbol"
	case KindConstant:
		return "constant"
	case KindOperation:
		return "operation"
	default:
		return "unknown"
	}
}

type record struct {
	kind  Kind
	name  string        // KindSymbol
	value float64       // KindConstant
	op    ops.Operation // KindOperation
}

// Graph is an expression-building session.
//
// A Graph grows monotonically: building expressions and symbolic
// derivatives only appends nodes and edges. It is not safe for concurrent
// use; confine each Graph to one goroutine.
type Graph struct {
	id      uuid.UUID
	records []record // indexed by graph.NodeID; index 0 is unused
	symbols map[string]graph.NodeID
	store   *graph.Store
	logger  *slog.Logger
}

// Option configures a Graph.
type Option func(*Graph)

// WithLogger sets the logger used for debug output of queries.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Graph) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// NewGraph creates an empty session.
func NewGraph(opts ...Option) *Graph {
	g := &Graph{
		id:      uuid.New(),
		records: make([]record, 1, 64),
		symbols: make(map[string]graph.NodeID),
		store:   graph.NewStore(),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.logger = g.logger.With(slog.String("graph", g.id.String()))
	return g
}

// ID returns the session identifier used in log output.
func (g *Graph) ID() uuid.UUID {
	return g.id
}

// Store returns the edge store of the session. It must not be modified.
func (g *Graph) Store() *graph.Store {
	return g.store
}

// NumNodes returns the number of nodes created on the graph.
func (g *Graph) NumNodes() int {
	return len(g.records) - 1
}

// Symbol returns the symbol called name. Asking twice for the same name
// returns the same node.
func (g *Graph) Symbol(name string) Node {
	if id, ok := g.symbols[name]; ok {
		return Node{g: g, id: id}
	}
	id := g.push(record{kind: KindSymbol, name: name})
	g.symbols[name] = id
	return Node{g: g, id: id}
}

// Symbols returns the symbols of the graph in creation order.
func (g *Graph) Symbols() []Node {
	out := make([]Node, 0, len(g.symbols))
	for id, rec := range g.records {
		if rec.kind == KindSymbol {
			out = append(out, Node{g: g, id: graph.NodeID(id)})
		}
	}
	return out
}

// Constant returns a new constant node. Equal literals still produce
// distinct nodes.
func (g *Graph) Constant(v float64) Node {
	return Node{g: g, id: g.push(record{kind: KindConstant, value: v})}
}

// Lift turns v into a node of g. Nodes of g are returned unchanged, Go
// numbers become new constants, anything else is an *OperandError.
func (g *Graph) Lift(v any) (Node, error) {
	switch x := v.(type) {
	case Node:
		if err := g.owns(x); err != nil {
			return Node{}, &OperandError{Details: err.Error()}
		}
		return x, nil
	case float64:
		return g.Constant(x), nil
	case float32:
		return g.Constant(float64(x)), nil
	case int:
		return g.Constant(float64(x)), nil
	case int64:
		return g.Constant(float64(x)), nil
	case int32:
		return g.Constant(float64(x)), nil
	default:
		return Node{}, &OperandError{Details: fmt.Sprintf("unsupported type %T", v)}
	}
}

// Apply returns a new node applying op to operands in order. One edge is
// appended per operand, so passing the same node twice records two edges.
//
// Panics with an *OperandError if an operand does not belong to g or the
// operand count does not match the arity of op.
func (g *Graph) Apply(op ops.Operation, operands ...Node) Node {
	if err := ops.CheckArity(op, len(operands)); err != nil {
		panic(&OperandError{Op: op.Name(), Details: err.Error()})
	}
	ids := make([]graph.NodeID, len(operands))
	for i, n := range operands {
		if err := g.owns(n); err != nil {
			panic(&OperandError{Op: op.Name(), Details: fmt.Sprintf("operand %d: %v", i, err)})
		}
		ids[i] = n.id
	}
	return Node{g: g, id: g.apply(op, ids)}
}

// Add returns a + b.
func (g *Graph) Add(a, b Node) Node { return g.Apply(ops.Add, a, b) }

// Sub returns a - b.
func (g *Graph) Sub(a, b Node) Node { return g.Apply(ops.Sub, a, b) }

// Mul returns a * b.
func (g *Graph) Mul(a, b Node) Node { return g.Apply(ops.Mul, a, b) }

// Div returns a / b.
func (g *Graph) Div(a, b Node) Node { return g.Apply(ops.Div, a, b) }

// Pow returns a ** b.
func (g *Graph) Pow(a, b Node) Node { return g.Apply(ops.Pow, a, b) }

// Min returns min(a, b).
func (g *Graph) Min(a, b Node) Node { return g.Apply(ops.Min, a, b) }

// Max returns max(a, b).
func (g *Graph) Max(a, b Node) Node { return g.Apply(ops.Max, a, b) }

// Neg returns -x.
func (g *Graph) Neg(x Node) Node { return g.Apply(ops.Neg, x) }

// Abs returns |x|.
func (g *Graph) Abs(x Node) Node { return g.Apply(ops.Abs, x) }

// Sign returns copysign(1, x).
func (g *Graph) Sign(x Node) Node { return g.Apply(ops.Sign, x) }

// Step returns 1 where x >= 0, else 0.
func (g *Graph) Step(x Node) Node { return g.Apply(ops.Step, x) }

// Exp returns e**x.
func (g *Graph) Exp(x Node) Node { return g.Apply(ops.Exp, x) }

// Log returns ln(x).
func (g *Graph) Log(x Node) Node { return g.Apply(ops.Log, x) }

// Sqrt returns sqrt(x).
func (g *Graph) Sqrt(x Node) Node { return g.Apply(ops.Sqrt, x) }

// Sin returns sin(x).
func (g *Graph) Sin(x Node) Node { return g.Apply(ops.Sin, x) }

// Cos returns cos(x).
func (g *Graph) Cos(x Node) Node { return g.Apply(ops.Cos, x) }

// Sum returns a single node adding all terms. An empty list yields the
// constant 0 and a single term is returned unchanged.
func (g *Graph) Sum(terms ...Node) Node {
	switch len(terms) {
	case 0:
		return g.Constant(0)
	case 1:
		if err := g.owns(terms[0]); err != nil {
			panic(&OperandError{Op: ops.Sum.Name(), Details: err.Error()})
		}
		return terms[0]
	}
	return g.Apply(ops.Sum, terms...)
}

func (g *Graph) push(rec record) graph.NodeID {
	id := graph.NodeID(len(g.records))
	g.records = append(g.records, rec)
	g.store.AddNode(id)
	return id
}

func (g *Graph) apply(op ops.Operation, operands []graph.NodeID) graph.NodeID {
	id := g.push(record{kind: KindOperation, op: op})
	for _, src := range operands {
		g.store.AddEdge(src, id)
	}
	return id
}

func (g *Graph) owns(n Node) error {
	switch {
	case n.g == nil:
		return errors.New("zero node")
	case n.g != g:
		return fmt.Errorf("node %d belongs to another graph", n.id)
	case n.id <= 0 || int(n.id) >= len(g.records):
		return fmt.Errorf("unknown node %d", n.id)
	}
	return nil
}

func (g *Graph) node(id graph.NodeID) Node {
	return Node{g: g, id: id}
}

// traverse validates root and builds its traversal.
func (g *Graph) traverse(root Node) (*graph.Traversal, error) {
	if err := g.owns(root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOperand, err)
	}
	tr, err := graph.NewTraversal(g.store, root.id)
	if err != nil {
		return nil, err
	}
	return tr, nil
}

// operandIDs returns the operands of n in the traversal, in operand order.
func operandIDs(sub *graph.Store, n graph.NodeID) []graph.NodeID {
	in := sub.InEdges(n)
	ids := make([]graph.NodeID, len(in))
	for i, e := range in {
		ids[i] = e.Src
	}
	return ids
}

// builder exposes the graph to symbolic gradients of ops.
type builder struct {
	g *Graph
}

func (b builder) Constant(v float64) graph.NodeID {
	return b.g.Constant(v).id
}

func (b builder) Apply(op ops.Operation, operands ...graph.NodeID) graph.NodeID {
	return b.g.apply(op, operands)
}
