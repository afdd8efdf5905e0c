package ops

import (
	"fmt"
	"math"

	"github.com/born-ml/cgraph/internal/graph"
	"github.com/born-ml/cgraph/internal/tensor"
)

// MinOp represents the elementwise minimum: output = min(a, b).
//
// The whole gradient goes to the smaller operand; on ties it goes to a.
// Symbolically the selector is step(b - a).
type MinOp struct{ binary }

// Name returns "min".
func (MinOp) Name() string { return "min" }

// Forward computes min(a, b).
func (MinOp) Forward(in []tensor.Value) tensor.Value {
	return tensor.Zip(in[0], in[1], math.Min)
}

// Gradient returns [a <= b, a > b] as 1/0 masks.
func (MinOp) Gradient(in []tensor.Value, _ tensor.Value) []tensor.Value {
	gradA := tensor.Zip(in[0], in[1], func(x, y float64) float64 { return step(y - x) })
	return []tensor.Value{gradA, tensor.Map(gradA, complement)}
}

// SymbolicGradient returns [step(b-a), 1 - step(b-a)].
func (MinOp) SymbolicGradient(b Builder, in []graph.NodeID, _ graph.NodeID) []graph.NodeID {
	s := b.Apply(Step, sSub(b, in[1], in[0]))
	return []graph.NodeID{s, sSub(b, b.Constant(1), s)}
}

// Format renders "min(a,b)".
func (MinOp) Format(s []string) string {
	return fmt.Sprintf("min(%s,%s)", s[0], s[1])
}

// MaxOp represents the elementwise maximum: output = max(a, b).
//
// The whole gradient goes to the larger operand; on ties it goes to a.
// Symbolically the selector is step(a - b).
type MaxOp struct{ binary }

// Name returns "max".
func (MaxOp) Name() string { return "max" }

// Forward computes max(a, b).
func (MaxOp) Forward(in []tensor.Value) tensor.Value {
	return tensor.Zip(in[0], in[1], math.Max)
}

// Gradient returns [a >= b, a < b] as 1/0 masks.
func (MaxOp) Gradient(in []tensor.Value, _ tensor.Value) []tensor.Value {
	gradA := tensor.Zip(in[0], in[1], func(x, y float64) float64 { return step(x - y) })
	return []tensor.Value{gradA, tensor.Map(gradA, complement)}
}

// SymbolicGradient returns [step(a-b), 1 - step(a-b)].
func (MaxOp) SymbolicGradient(b Builder, in []graph.NodeID, _ graph.NodeID) []graph.NodeID {
	s := b.Apply(Step, sSub(b, in[0], in[1]))
	return []graph.NodeID{s, sSub(b, b.Constant(1), s)}
}

// Format renders "max(a,b)".
func (MaxOp) Format(s []string) string {
	return fmt.Sprintf("max(%s,%s)", s[0], s[1])
}

func complement(m float64) float64 {
	return 1 - m
}
