package autodiff_test

import (
	"bytes"
	"errors"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/cgraph/internal/autodiff"
	"github.com/born-ml/cgraph/internal/autodiff/ops"
	"github.com/born-ml/cgraph/internal/tensor"
)

const tol = 1e-9

func scalarInputs(kv map[string]float64) autodiff.Inputs {
	in := make(autodiff.Inputs, len(kv))
	for k, v := range kv {
		in[k] = tensor.Scalar(v)
	}
	return in
}

// recoverError runs f and returns the error it panics with, if any.
func recoverError(f func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err, _ = r.(error)
		}
	}()
	f()
	return nil
}

func TestEvaluate_BinaryOps(t *testing.T) {
	tests := []struct {
		name  string
		build func(x, y autodiff.Node) autodiff.Node
		want  float64
	}{
		{"add", func(x, y autodiff.Node) autodiff.Node { return x.Add(y) }, 5},
		{"sub", func(x, y autodiff.Node) autodiff.Node { return x.Sub(y) }, -1},
		{"mul", func(x, y autodiff.Node) autodiff.Node { return x.Mul(y) }, 6},
		{"div", func(x, y autodiff.Node) autodiff.Node { return x.Div(y) }, 2.0 / 3},
		{"pow", func(x, y autodiff.Node) autodiff.Node { return x.Pow(y) }, 8},
		{"min", func(x, y autodiff.Node) autodiff.Node { return x.Min(y) }, 2},
		{"max", func(x, y autodiff.Node) autodiff.Node { return x.Max(y) }, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := autodiff.NewGraph()
			f := tt.build(g.Symbol("x"), g.Symbol("y"))
			v, err := g.Value(f, scalarInputs(map[string]float64{"x": 2, "y": 3}))
			require.NoError(t, err)
			assert.InDelta(t, tt.want, v.Item(), tol)
		})
	}
}

func TestEvaluate_ReturnsEveryNode(t *testing.T) {
	g := autodiff.NewGraph()
	x, y := g.Symbol("x"), g.Symbol("y")
	xy := x.Mul(y)
	f := xy.Add(1)

	values, err := g.Evaluate(f, scalarInputs(map[string]float64{"x": 2, "y": 3}))
	require.NoError(t, err)
	assert.Len(t, values, 5)
	assert.Equal(t, 2.0, values[x].Item())
	assert.Equal(t, 6.0, values[xy].Item())
	assert.Equal(t, 7.0, values[f].Item())
}

func TestNumericGradient_Division(t *testing.T) {
	g := autodiff.NewGraph()
	x, y := g.Symbol("x"), g.Symbol("y")
	f := x.Div(y)

	grads, values, err := g.NumericGradient(f, scalarInputs(map[string]float64{"x": 2, "y": 3}))
	require.NoError(t, err)
	assert.InDelta(t, 2.0/3, values[f].Item(), tol)
	assert.InDelta(t, 1.0/3, grads[x].Item(), tol)
	assert.InDelta(t, -2.0/9, grads[y].Item(), tol)
	assert.InDelta(t, 1.0, grads[f].Item(), tol)
}

func TestNumericGradient_Composite(t *testing.T) {
	g := autodiff.NewGraph()
	x, y, z := g.Symbol("x"), g.Symbol("y"), g.Symbol("z")
	f := x.Mul(y).Add(3).Div(z.Sub(2))

	grads, values, err := g.NumericGradient(f, scalarInputs(map[string]float64{"x": 3, "y": 4, "z": 4}))
	require.NoError(t, err)
	assert.InDelta(t, 7.5, values[f].Item(), tol)
	assert.InDelta(t, 2.0, grads[x].Item(), tol)
	assert.InDelta(t, 1.5, grads[y].Item(), tol)
	assert.InDelta(t, -3.75, grads[z].Item(), tol)
}

// TestNumericGradient_SharedSubexpression is the regression test for
// per-edge accumulation: xy feeds both the addition and the product.
func TestNumericGradient_SharedSubexpression(t *testing.T) {
	g := autodiff.NewGraph()
	x, y := g.Symbol("x"), g.Symbol("y")
	xy := x.Mul(y)
	f := xy.Add(1).Mul(xy)

	grads, values, err := g.NumericGradient(f, scalarInputs(map[string]float64{"x": 2, "y": 3}))
	require.NoError(t, err)
	assert.InDelta(t, 42, values[f].Item(), tol)
	assert.InDelta(t, 39, grads[x].Item(), tol)
	assert.InDelta(t, 26, grads[y].Item(), tol)
	assert.InDelta(t, 13, grads[xy].Item(), tol)
}

func TestNumericGradient_PowerRule(t *testing.T) {
	g := autodiff.NewGraph()
	x, y := g.Symbol("x"), g.Symbol("y")
	f := x.Pow(y)

	grads, values, err := g.NumericGradient(f, scalarInputs(map[string]float64{"x": 2, "y": 3}))
	require.NoError(t, err)
	assert.InDelta(t, 8, values[f].Item(), tol)
	assert.InDelta(t, 12, grads[x].Item(), tol)
	assert.InDelta(t, math.Log(256), grads[y].Item(), tol)
}

func TestNumericGradient_Multiplicity(t *testing.T) {
	tests := []struct {
		name  string
		build func(x autodiff.Node) autodiff.Node
		x     float64
		want  float64
	}{
		{"x*x", func(x autodiff.Node) autodiff.Node { return x.Mul(x) }, 3, 6},
		{"x+x", func(x autodiff.Node) autodiff.Node { return x.Add(x) }, 3, 2},
		{"x-x", func(x autodiff.Node) autodiff.Node { return x.Sub(x) }, 3, 0},
		{"x/x", func(x autodiff.Node) autodiff.Node { return x.Div(x) }, 3, 0},
		{"x**x", func(x autodiff.Node) autodiff.Node { return x.Pow(x) }, 2, 4 * (math.Log(2) + 1)},
		{"(x*x)*x", func(x autodiff.Node) autodiff.Node { return x.Mul(x).Mul(x) }, 2, 12},
		{"sum(x,x,x)", func(x autodiff.Node) autodiff.Node { return x.Graph().Sum(x, x, x) }, 2, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := autodiff.NewGraph()
			x := g.Symbol("x")
			f := tt.build(x)
			in := scalarInputs(map[string]float64{"x": tt.x})

			grads, _, err := g.NumericGradient(f, in)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, grads[x].Item(), 1e-9)

			sym, err := g.SymbolicGradient(f)
			require.NoError(t, err)
			v, err := g.Value(sym[x], in)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, v.Item(), 1e-9)
		})
	}
}

func TestNumericGradient_ConstantsGetAdjoints(t *testing.T) {
	g := autodiff.NewGraph()
	x := g.Symbol("x")
	c := g.Constant(5)
	f := x.Mul(c)

	grads, _, err := g.NumericGradient(f, scalarInputs(map[string]float64{"x": 2}))
	require.NoError(t, err)
	assert.InDelta(t, 5, grads[x].Item(), tol)
	assert.InDelta(t, 2, grads[c].Item(), tol)
}

func TestNumericGradient_IgnoresUnrelatedExpressions(t *testing.T) {
	g := autodiff.NewGraph()
	x, y := g.Symbol("x"), g.Symbol("y")
	f := x.Mul(y)

	// Later expressions reuse x and y but are not part of f.
	_ = x.Mul(x).Add(y)
	_ = x.Div(y.Sub(3))

	grads, _, err := g.NumericGradient(f, scalarInputs(map[string]float64{"x": 2, "y": 3}))
	require.NoError(t, err)
	assert.Len(t, grads, 3)
	assert.InDelta(t, 3, grads[x].Item(), tol)
	assert.InDelta(t, 2, grads[y].Item(), tol)
}

func TestNumericGradient_SymbolRoot(t *testing.T) {
	g := autodiff.NewGraph()
	x := g.Symbol("x")

	grads, values, err := g.NumericGradient(x, scalarInputs(map[string]float64{"x": 4}))
	require.NoError(t, err)
	assert.Equal(t, 4.0, values[x].Item())
	assert.Equal(t, 1.0, grads[x].Item())
}

func TestNumericGradient_Vectorized(t *testing.T) {
	g := autodiff.NewGraph()
	x, y := g.Symbol("x"), g.Symbol("y")
	f := x.Mul(y).Add(x.Sin())

	in := autodiff.Inputs{"x": tensor.Vector(0, 1, 2), "y": tensor.Vector(3, 4, 5)}
	grads, values, err := g.NumericGradient(f, in)
	require.NoError(t, err)

	for i, xv := range []float64{0, 1, 2} {
		yv := []float64{3, 4, 5}[i]
		assert.InDelta(t, xv*yv+math.Sin(xv), values[f].At(i), tol)
		assert.InDelta(t, yv+math.Cos(xv), grads[x].At(i), tol)
		assert.InDelta(t, xv, grads[y].At(i), tol)
	}
}

func TestEvaluate_MissingInput(t *testing.T) {
	g := autodiff.NewGraph()
	x, y := g.Symbol("x"), g.Symbol("y")
	f := x.Add(y)

	_, err := g.Evaluate(f, scalarInputs(map[string]float64{"x": 1}))
	require.ErrorIs(t, err, autodiff.ErrMissingInput)

	var missing *autodiff.MissingInputError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "y", missing.Name)

	_, _, err = g.NumericGradient(f, scalarInputs(map[string]float64{"y": 1}))
	require.ErrorIs(t, err, autodiff.ErrMissingInput)
}

func TestEvaluate_UnusedInputsAreIgnored(t *testing.T) {
	g := autodiff.NewGraph()
	x := g.Symbol("x")
	g.Symbol("unused")

	v, err := g.Value(x.Add(1), scalarInputs(map[string]float64{"x": 1, "other": 5}))
	require.NoError(t, err)
	assert.Equal(t, 2.0, v.Item())
}

func TestEvaluate_DomainErrorsAreNaN(t *testing.T) {
	g := autodiff.NewGraph()

	v, err := g.Value(g.Constant(1).Div(0), nil)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(v.Item()))

	v, err = g.Value(g.Log(g.Constant(0)), nil)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(v.Item()))

	x := g.Symbol("x")
	batch := autodiff.Inputs{"x": tensor.Vector(1, 0, 4)}
	v, err = g.Value(g.Constant(1).Div(x), batch)
	require.NoError(t, err)
	assert.Equal(t, 1.0, v.At(0))
	assert.True(t, math.IsNaN(v.At(1)))
	assert.Equal(t, 0.25, v.At(2))

	grads, _, err := g.NumericGradient(x.Log(), batch)
	require.NoError(t, err)
	assert.Equal(t, 1.0, grads[x].At(0))
	assert.True(t, math.IsNaN(grads[x].At(1)))
	assert.Equal(t, 0.25, grads[x].At(2))
}

func TestEvaluate_ShapeMismatch(t *testing.T) {
	g := autodiff.NewGraph()
	f := g.Symbol("x").Add(g.Symbol("y"))

	_, err := g.Value(f, autodiff.Inputs{"x": tensor.Vector(1, 2), "y": tensor.Vector(1, 2, 3)})
	require.ErrorIs(t, err, tensor.ErrShapeMismatch)
}

func TestGraph_SymbolIdentity(t *testing.T) {
	g := autodiff.NewGraph()
	assert.Equal(t, g.Symbol("x"), g.Symbol("x"))
	assert.NotEqual(t, g.Symbol("x"), g.Symbol("y"))
	assert.NotEqual(t, g.Constant(1), g.Constant(1), "equal literals are distinct nodes")
	assert.Len(t, g.Symbols(), 2)

	other := autodiff.NewGraph()
	assert.NotEqual(t, g.Symbol("x"), other.Symbol("x"))
	assert.NotEqual(t, g.ID(), other.ID())
}

func TestGraph_OperandOrderIsPreserved(t *testing.T) {
	g := autodiff.NewGraph()
	x, y := g.Symbol("x"), g.Symbol("y")
	f := y.Sub(x)

	assert.Equal(t, []autodiff.Node{y, x}, f.Operands())
	v, err := g.Value(f, scalarInputs(map[string]float64{"x": 1, "y": 10}))
	require.NoError(t, err)
	assert.Equal(t, 9.0, v.Item())
}

func TestGraph_NodeAccessors(t *testing.T) {
	g := autodiff.NewGraph()
	x := g.Symbol("x")
	c := g.Constant(2.5)
	f := x.Exp()

	assert.Equal(t, autodiff.KindSymbol, x.Kind())
	assert.Equal(t, "x", x.Name())
	assert.Equal(t, autodiff.KindConstant, c.Kind())
	assert.Equal(t, 2.5, c.Value())
	assert.Equal(t, autodiff.KindOperation, f.Kind())
	assert.Equal(t, ops.Exp, f.Op())
	assert.Equal(t, "operation", f.Kind().String())
	assert.True(t, f.IsValid())
	assert.False(t, autodiff.Node{}.IsValid())
	assert.Equal(t, g, f.Graph())
	assert.Equal(t, 3, g.NumNodes())
}

func TestGraph_InvalidOperands(t *testing.T) {
	g := autodiff.NewGraph()
	x := g.Symbol("x")
	other := autodiff.NewGraph().Symbol("x")

	err := recoverError(func() { x.Add(other) })
	require.ErrorIs(t, err, autodiff.ErrInvalidOperand)
	assert.Contains(t, err.Error(), "another graph")

	err = recoverError(func() { x.Mul("two") })
	require.ErrorIs(t, err, autodiff.ErrInvalidOperand)
	assert.Contains(t, err.Error(), "string")

	err = recoverError(func() { g.Add(x, autodiff.Node{}) })
	require.ErrorIs(t, err, autodiff.ErrInvalidOperand)

	err = recoverError(func() { g.Apply(ops.Exp, x, x) })
	require.ErrorIs(t, err, autodiff.ErrInvalidOperand)

	_, err = g.Lift(struct{}{})
	require.ErrorIs(t, err, autodiff.ErrInvalidOperand)

	n, err := g.Lift(3)
	require.NoError(t, err)
	assert.Equal(t, 3.0, n.Value())

	_, err = g.Value(other, nil)
	require.ErrorIs(t, err, autodiff.ErrInvalidOperand)
}

func TestGraph_Sum(t *testing.T) {
	g := autodiff.NewGraph()
	x, y := g.Symbol("x"), g.Symbol("y")

	assert.Equal(t, x, g.Sum(x))
	assert.Equal(t, autodiff.KindConstant, g.Sum().Kind())

	f := g.Sum(x, y, x.Mul(y))
	grads, values, err := g.NumericGradient(f, scalarInputs(map[string]float64{"x": 2, "y": 3}))
	require.NoError(t, err)
	assert.Equal(t, 11.0, values[f].Item())
	assert.Equal(t, 4.0, grads[x].Item())
	assert.Equal(t, 3.0, grads[y].Item())
}

func TestGraph_DeepChain(t *testing.T) {
	g := autodiff.NewGraph()
	x := g.Symbol("x")
	f := x
	const depth = 50000
	for i := 0; i < depth; i++ {
		f = f.Add(1)
	}

	grads, values, err := g.NumericGradient(f, scalarInputs(map[string]float64{"x": 0}))
	require.NoError(t, err)
	assert.Equal(t, float64(depth), values[f].Item())
	assert.Equal(t, 1.0, grads[x].Item())
}

func TestGraph_Logging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	g := autodiff.NewGraph(autodiff.WithLogger(logger))
	x := g.Symbol("x")

	_, _, err := g.NumericGradient(x.Mul(x), scalarInputs(map[string]float64{"x": 1}))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "numeric gradient")
	assert.Contains(t, buf.String(), g.ID().String())
}

func TestErrors_Messages(t *testing.T) {
	err := &autodiff.MissingInputError{Name: "x"}
	assert.Equal(t, `missing input for symbol "x"`, err.Error())
	assert.True(t, errors.Is(err, autodiff.ErrMissingInput))

	oe := &autodiff.OperandError{Op: "add", Details: "zero node"}
	assert.Equal(t, "invalid operand for add: zero node", oe.Error())
	assert.Equal(t, "invalid operand: zero node", (&autodiff.OperandError{Details: "zero node"}).Error())
}
