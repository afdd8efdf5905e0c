package ops

import (
	"fmt"
	"math"

	"github.com/born-ml/cgraph/internal/graph"
	"github.com/born-ml/cgraph/internal/tensor"
)

// PowOp represents exponentiation: output = a ** b.
//
// Gradient:
//   - d(a**b)/da = b * a**(b-1)
//   - d(a**b)/db = a**b * ln(a)
//
// The forward value follows math.Pow, so negative bases are allowed. The
// exponent partial needs ln(a) and is NaN wherever a <= 0.
type PowOp struct{ binary }

// Name returns "pow".
func (PowOp) Name() string { return "pow" }

// Forward computes a ** b.
func (PowOp) Forward(in []tensor.Value) tensor.Value {
	return tensor.Zip(in[0], in[1], math.Pow)
}

// Gradient returns [b * a**(b-1), out * ln(a)].
func (PowOp) Gradient(in []tensor.Value, out tensor.Value) []tensor.Value {
	a, b := in[0], in[1]
	gradA := tensor.Zip(a, b, func(x, y float64) float64 {
		return y * math.Pow(x, y-1)
	})
	gradB := tensor.Zip(out, a, func(v, x float64) float64 {
		return v * tensor.SafeLog(x)
	})
	return []tensor.Value{gradA, gradB}
}

// SymbolicGradient returns [b * a**(b-1), self * log(a)].
func (PowOp) SymbolicGradient(b Builder, in []graph.NodeID, self graph.NodeID) []graph.NodeID {
	x, y := in[0], in[1]
	return []graph.NodeID{
		sMul(b, y, sPow(b, x, sSub(b, y, b.Constant(1)))),
		sMul(b, self, sLog(b, x)),
	}
}

// Format renders "a**b".
func (PowOp) Format(s []string) string {
	return fmt.Sprintf("%s**%s", s[0], s[1])
}
