package ops

import (
	"fmt"

	"github.com/born-ml/cgraph/internal/graph"
	"github.com/born-ml/cgraph/internal/tensor"
)

// DivOp represents division: output = a / b.
//
// Gradient:
//   - d(a/b)/da = 1/b
//   - d(a/b)/db = -a/b²
//
// Where b is exactly zero the output and both partials are NaN.
type DivOp struct{ binary }

// Name returns "div".
func (DivOp) Name() string { return "div" }

// Forward computes a / b.
func (DivOp) Forward(in []tensor.Value) tensor.Value {
	return tensor.Div(in[0], in[1])
}

// Gradient returns [1/b, -a/b²].
func (DivOp) Gradient(in []tensor.Value, _ tensor.Value) []tensor.Value {
	a, b := in[0], in[1]
	gradA := tensor.Map(b, func(y float64) float64 { return 1 / tensor.NonZero(y) })
	gradB := tensor.Zip(a, b, func(x, y float64) float64 {
		return -x / tensor.NonZero(y*y)
	})
	return []tensor.Value{gradA, gradB}
}

// SymbolicGradient returns [1/b, -a/b**2].
func (DivOp) SymbolicGradient(b Builder, in []graph.NodeID, _ graph.NodeID) []graph.NodeID {
	x, y := in[0], in[1]
	return []graph.NodeID{
		sDiv(b, b.Constant(1), y),
		sDiv(b, sNeg(b, x), sPow(b, y, b.Constant(2))),
	}
}

// Format renders "(a/b)".
func (DivOp) Format(s []string) string {
	return fmt.Sprintf("(%s/%s)", s[0], s[1])
}
