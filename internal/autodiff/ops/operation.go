// Package ops defines the closed set of primitive operations that can appear
// in an expression graph.
//
// Each operation provides:
//   - Forward: the value computed from ordered operand values
//   - Gradient: the numeric local partial derivative per operand position
//   - SymbolicGradient: the same partials expressed as new graph nodes
//   - Format: infix rendering from rendered operands
//
// Supported operations:
//   - AddOp, SubOp, MulOp, DivOp, PowOp: binary arithmetic
//   - NegOp, AbsOp, SignOp, StepOp: unary sign handling
//   - ExpOp, LogOp, SqrtOp, SinOp, CosOp: unary transcendental functions
//   - MinOp, MaxOp: elementwise minimum and maximum
//   - SumOp: n-ary addition
//
// Domain errors never fail: division by zero, logarithm of a non-positive
// number and the derived gradient singularities produce NaN for the affected
// elements only.
package ops

import (
	"fmt"

	"github.com/born-ml/cgraph/internal/graph"
	"github.com/born-ml/cgraph/internal/tensor"
)

// Variadic is the arity reported by operations that accept any positive
// number of operands.
const Variadic = -1

// Operation is a primitive operation kind. The set is closed: only types in
// this package implement it.
type Operation interface {
	// Name is the lower-case function name of the operation ("add", "exp").
	Name() string

	// Arity is the number of operands, or Variadic.
	Arity() int

	// Forward computes the output from operand values ordered by operand position.
	// Operand shapes have already been checked for compatibility.
	Forward(in []tensor.Value) tensor.Value

	// Gradient returns d(out)/d(in[i]) for every operand position i,
	// given the operand values and the forward output.
	Gradient(in []tensor.Value, out tensor.Value) []tensor.Value

	// SymbolicGradient returns d(self)/d(in[i]) for every operand position i
	// as nodes built with b. self is the node of this operation.
	SymbolicGradient(b Builder, in []graph.NodeID, self graph.NodeID) []graph.NodeID

	// Format renders the operation from rendered operands.
	Format(operands []string) string

	sealed()
}

// Builder constructs graph nodes on behalf of symbolic gradients.
type Builder interface {
	// Constant returns a new constant node.
	Constant(v float64) graph.NodeID

	// Apply returns a new node applying op to operands, in order.
	Apply(op Operation, operands ...graph.NodeID) graph.NodeID
}

// Operation singletons.
var (
	Add  Operation = AddOp{}
	Sub  Operation = SubOp{}
	Mul  Operation = MulOp{}
	Div  Operation = DivOp{}
	Pow  Operation = PowOp{}
	Neg  Operation = NegOp{}
	Abs  Operation = AbsOp{}
	Sign Operation = SignOp{}
	Step Operation = StepOp{}
	Exp  Operation = ExpOp{}
	Log  Operation = LogOp{}
	Sqrt Operation = SqrtOp{}
	Sin  Operation = SinOp{}
	Cos  Operation = CosOp{}
	Min  Operation = MinOp{}
	Max  Operation = MaxOp{}
	Sum  Operation = SumOp{}
)

var all = []Operation{Add, Sub, Mul, Div, Pow, Neg, Abs, Sign, Step, Exp, Log, Sqrt, Sin, Cos, Min, Max, Sum}

// All returns every operation.
func All() []Operation {
	out := make([]Operation, len(all))
	copy(out, all)
	return out
}

// ByName looks up an operation by its Name.
func ByName(name string) (Operation, bool) {
	for _, op := range all {
		if op.Name() == name {
			return op, true
		}
	}
	return nil, false
}

// CheckArity returns an error if n operands are not acceptable for op.
func CheckArity(op Operation, n int) error {
	switch a := op.Arity(); {
	case a == Variadic && n < 1:
		return fmt.Errorf("%s: needs at least one operand, got %d", op.Name(), n)
	case a != Variadic && a != n:
		return fmt.Errorf("%s: needs %d operands, got %d", op.Name(), a, n)
	}
	return nil
}

// unary and binary carry the arity and seal the interface.
type unary struct{}

func (unary) Arity() int { return 1 }
func (unary) sealed()    {}

type binary struct{}

func (binary) Arity() int { return 2 }
func (binary) sealed()    {}
