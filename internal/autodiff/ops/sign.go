package ops

import (
	"math"

	"github.com/born-ml/cgraph/internal/graph"
	"github.com/born-ml/cgraph/internal/tensor"
)

// SignOp represents the signum: output = copysign(1, x).
// Zero maps to 1 and negative zero to -1. The derivative is 0 everywhere.
type SignOp struct{ unary }

// Name returns "sign".
func (SignOp) Name() string { return "sign" }

// Forward computes copysign(1, x).
func (SignOp) Forward(in []tensor.Value) tensor.Value {
	return tensor.Map(in[0], func(x float64) float64 { return math.Copysign(1, x) })
}

// Gradient returns [0].
func (SignOp) Gradient(_ []tensor.Value, out tensor.Value) []tensor.Value {
	return []tensor.Value{zeros(out)}
}

// SymbolicGradient returns [0].
func (SignOp) SymbolicGradient(b Builder, _ []graph.NodeID, _ graph.NodeID) []graph.NodeID {
	return []graph.NodeID{b.Constant(0)}
}

// Format renders "sgn(x)".
func (SignOp) Format(s []string) string {
	return "sgn(" + s[0] + ")"
}

// StepOp represents the unit step: output = 1 where x >= 0, else 0.
// The derivative is 0 everywhere. It is the selector used by the symbolic
// gradients of MinOp and MaxOp.
type StepOp struct{ unary }

// Name returns "step".
func (StepOp) Name() string { return "step" }

// Forward computes the unit step of x.
func (StepOp) Forward(in []tensor.Value) tensor.Value {
	return tensor.Map(in[0], step)
}

// Gradient returns [0].
func (StepOp) Gradient(_ []tensor.Value, out tensor.Value) []tensor.Value {
	return []tensor.Value{zeros(out)}
}

// SymbolicGradient returns [0].
func (StepOp) SymbolicGradient(b Builder, _ []graph.NodeID, _ graph.NodeID) []graph.NodeID {
	return []graph.NodeID{b.Constant(0)}
}

// Format renders "step(x)".
func (StepOp) Format(s []string) string {
	return "step(" + s[0] + ")"
}

func step(x float64) float64 {
	if x >= 0 {
		return 1
	}
	return 0
}
