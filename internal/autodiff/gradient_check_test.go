package autodiff_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/cgraph/internal/autodiff"
	"github.com/born-ml/cgraph/internal/tensor"
)

// finiteDifference estimates d(root)/d(name) with central differences.
func finiteDifference(t *testing.T, g *autodiff.Graph, root autodiff.Node, point map[string]float64, name string, eps float64) float64 {
	t.Helper()

	shifted := func(delta float64) float64 {
		in := scalarInputs(point)
		in[name] = tensor.Scalar(point[name] + delta)
		v, err := g.Value(root, in)
		require.NoError(t, err)
		return v.Item()
	}
	return (shifted(eps) - shifted(-eps)) / (2 * eps)
}

// expression is a composite test case over the symbols x, y and z.
type expression struct {
	name  string
	build func(g *autodiff.Graph, x, y, z autodiff.Node) autodiff.Node
	point map[string]float64
}

var compositeExpressions = []expression{
	{
		name: "rational",
		build: func(_ *autodiff.Graph, x, y, z autodiff.Node) autodiff.Node {
			return x.Mul(y).Add(3).Div(z.Sub(2))
		},
		point: map[string]float64{"x": 3, "y": 4, "z": 4},
	},
	{
		name: "shared product",
		build: func(_ *autodiff.Graph, x, y, _ autodiff.Node) autodiff.Node {
			xy := x.Mul(y)
			return xy.Add(1).Mul(xy)
		},
		point: map[string]float64{"x": 2, "y": 3},
	},
	{
		name: "exp log sqrt",
		build: func(_ *autodiff.Graph, x, y, z autodiff.Node) autodiff.Node {
			return x.Exp().Mul(y.Log()).Add(z.Sqrt().Div(x))
		},
		point: map[string]float64{"x": 0.7, "y": 2.5, "z": 3},
	},
	{
		name: "trigonometric",
		build: func(_ *autodiff.Graph, x, y, _ autodiff.Node) autodiff.Node {
			s := x.Mul(y).Sin()
			return s.Mul(s).Add(x.Cos().Pow(3))
		},
		point: map[string]float64{"x": 0.4, "y": 1.3},
	},
	{
		name: "power tower",
		build: func(_ *autodiff.Graph, x, y, _ autodiff.Node) autodiff.Node {
			return x.Pow(y).Pow(x.Sub(y).Abs())
		},
		point: map[string]float64{"x": 1.5, "y": 2.2},
	},
	{
		name: "min max",
		build: func(_ *autodiff.Graph, x, y, z autodiff.Node) autodiff.Node {
			return x.Mul(z).Min(y).Add(x.Max(y.Neg()).Mul(z))
		},
		point: map[string]float64{"x": 1.2, "y": 3.5, "z": 2},
	},
	{
		name: "sum",
		build: func(g *autodiff.Graph, x, y, z autodiff.Node) autodiff.Node {
			return g.Sum(x, x.Mul(y), y.Div(z), z.Exp()).Mul(x)
		},
		point: map[string]float64{"x": 0.5, "y": 1.5, "z": 2.5},
	},
	{
		name: "self division",
		build: func(_ *autodiff.Graph, x, y, _ autodiff.Node) autodiff.Node {
			xy := x.Add(y)
			return xy.Div(xy).Add(xy.Sub(xy)).Mul(x)
		},
		point: map[string]float64{"x": 2, "y": 5},
	},
}

func TestNumericGradient_MatchesFiniteDifferences(t *testing.T) {
	for _, tc := range compositeExpressions {
		t.Run(tc.name, func(t *testing.T) {
			g := autodiff.NewGraph()
			x, y, z := g.Symbol("x"), g.Symbol("y"), g.Symbol("z")
			f := tc.build(g, x, y, z)

			grads, _, err := g.NumericGradient(f, scalarInputs(tc.point))
			require.NoError(t, err)

			for _, s := range []autodiff.Node{x, y, z} {
				if _, used := tc.point[s.Name()]; !used {
					continue
				}
				want := finiteDifference(t, g, f, tc.point, s.Name(), 1e-6)
				assert.InDelta(t, want, grads[s].Item(), 1e-4, "d/d%s", s.Name())
			}
		})
	}
}

// TestSymbolicGradient_MatchesNumeric checks the round trip between the two
// differentiation modes for every node of the expression.
func TestSymbolicGradient_MatchesNumeric(t *testing.T) {
	for _, tc := range compositeExpressions {
		t.Run(tc.name, func(t *testing.T) {
			g := autodiff.NewGraph()
			x, y, z := g.Symbol("x"), g.Symbol("y"), g.Symbol("z")
			f := tc.build(g, x, y, z)
			in := scalarInputs(tc.point)

			grads, _, err := g.NumericGradient(f, in)
			require.NoError(t, err)
			sym, err := g.SymbolicGradient(f)
			require.NoError(t, err)
			require.Len(t, sym, len(grads))

			for n, want := range grads {
				expr, ok := sym[n]
				require.True(t, ok, "missing symbolic gradient for node %d", n.ID())
				got, err := g.Value(expr, in)
				require.NoError(t, err)
				assert.True(t, tensor.AllClose(want, got, 1e-9, 1e-9),
					"node %s: numeric %v, symbolic %v", n, want, got)
			}
		})
	}
}

func TestSymbolicGradient_Vectorized(t *testing.T) {
	g := autodiff.NewGraph()
	x, y := g.Symbol("x"), g.Symbol("y")
	f := x.Pow(2).Mul(y).Add(y.Exp())
	in := autodiff.Inputs{"x": tensor.Vector(1, 2, 3), "y": tensor.Vector(0.5, 1, 1.5)}

	grads, _, err := g.NumericGradient(f, in)
	require.NoError(t, err)
	sym, err := g.SymbolicGradient(f)
	require.NoError(t, err)

	for _, s := range []autodiff.Node{x, y} {
		got, err := g.Value(sym[s], in)
		require.NoError(t, err)
		assert.True(t, tensor.AllClose(grads[s], got, 1e-9, 1e-9))
	}
}

func TestSymbolicGradient_SecondDerivative(t *testing.T) {
	g := autodiff.NewGraph()
	x := g.Symbol("x")
	f := x.Pow(3)

	first, err := g.SymbolicGradient(f)
	require.NoError(t, err)
	second, err := g.SymbolicGradient(first[x])
	require.NoError(t, err)

	for _, xv := range []float64{0.5, 2, 3} {
		in := scalarInputs(map[string]float64{"x": xv})

		d1, err := g.Value(first[x], in)
		require.NoError(t, err)
		assert.InDelta(t, 3*xv*xv, d1.Item(), 1e-9)

		d2, err := g.Value(second[x], in)
		require.NoError(t, err)
		assert.InDelta(t, 6*xv, d2.Item(), 1e-9)
	}
}

func TestSymbolicGradient_LeavesExpressionUntouched(t *testing.T) {
	g := autodiff.NewGraph()
	x, y := g.Symbol("x"), g.Symbol("y")
	xy := x.Mul(y)
	f := xy.Add(1).Mul(xy)

	before := g.Store().Ancestors(f.ID()).Edges()
	rendered := f.String()

	_, err := g.SymbolicGradient(f)
	require.NoError(t, err)

	assert.Equal(t, before, g.Store().Ancestors(f.ID()).Edges())
	assert.Equal(t, rendered, f.String())
	assert.Greater(t, g.NumNodes(), 7)
}

func TestSymbolicGradient_InvalidRoot(t *testing.T) {
	g := autodiff.NewGraph()
	_, err := g.SymbolicGradient(autodiff.Node{})
	require.ErrorIs(t, err, autodiff.ErrInvalidOperand)
}

func TestGradients_AtNonDifferentiablePoints(t *testing.T) {
	g := autodiff.NewGraph()
	x := g.Symbol("x")

	tests := []struct {
		name string
		f    autodiff.Node
		x    float64
		want float64
	}{
		{"sign", x.Sign(), 0, 0},
		{"step", g.Step(x), 0, 0},
		{"min tie", x.Min(1), 1, 1},
		{"max tie", x.Max(1), 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grads, _, err := g.NumericGradient(tt.f, scalarInputs(map[string]float64{"x": tt.x}))
			require.NoError(t, err)
			assert.Equal(t, tt.want, grads[x].Item())
		})
	}

	grads, _, err := g.NumericGradient(x.Abs(), scalarInputs(map[string]float64{"x": 0}))
	require.NoError(t, err)
	assert.True(t, math.IsNaN(grads[x].Item()))
}
