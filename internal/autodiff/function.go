package autodiff

import (
	"fmt"

	"github.com/born-ml/cgraph/internal/tensor"
)

// Function wraps an expression so it can be called with positional
// arguments, one per symbol.
//
// Example:
//
//	fn, _ := autodiff.NewFunction(f, x, y)
//	v, _ := fn.Call(tensor.Scalar(2), tensor.Scalar(3))
//	v, grad, _ := fn.CallWithGradient(tensor.Vector(2, 3), tensor.Vector(3, 4))
//	// grad[i] = [df/dx, df/dy] at sample i
type Function struct {
	g       *Graph
	f       Node
	symbols []Node
}

// NewFunction binds f to the ordered symbols. Every symbol must be a symbol
// node of the graph of f.
func NewFunction(f Node, symbols ...Node) (*Function, error) {
	if f.g == nil {
		return nil, &OperandError{Details: "zero node"}
	}
	for i, s := range symbols {
		if err := f.g.owns(s); err != nil {
			return nil, &OperandError{Details: fmt.Sprintf("symbol %d: %v", i, err)}
		}
		if s.Kind() != KindSymbol {
			return nil, &OperandError{Details: fmt.Sprintf("argument %d is a %s, not a symbol", i, s.Kind())}
		}
	}
	syms := make([]Node, len(symbols))
	copy(syms, symbols)
	return &Function{g: f.g, f: f, symbols: syms}, nil
}

// Arity returns the number of positional arguments.
func (fn *Function) Arity() int {
	return len(fn.symbols)
}

// Call evaluates the function.
func (fn *Function) Call(values ...tensor.Value) (tensor.Value, error) {
	inputs, err := fn.inputs(values)
	if err != nil {
		return tensor.Value{}, err
	}
	return fn.g.Value(fn.f, inputs)
}

// CallWithGradient evaluates the function and its gradient. The gradient
// is an N x k matrix: one row per sample, one column per symbol. N is the
// number of elements of the broadcast inputs and output. Symbols the
// function does not depend on have zero columns.
func (fn *Function) CallWithGradient(values ...tensor.Value) (tensor.Value, [][]float64, error) {
	inputs, err := fn.inputs(values)
	if err != nil {
		return tensor.Value{}, nil, err
	}
	grads, vals, err := fn.g.NumericGradient(fn.f, inputs)
	if err != nil {
		return tensor.Value{}, nil, err
	}

	value := vals[fn.f]
	columns := make([]tensor.Value, len(fn.symbols))
	all := []tensor.Value{value}
	for j, s := range fn.symbols {
		d, ok := grads[s]
		if !ok {
			d = tensor.Scalar(0)
		}
		columns[j] = d
		all = append(all, d, values[j])
	}
	shape, err := tensor.Compatible(all...)
	if err != nil {
		return tensor.Value{}, nil, err
	}

	n := shape.NumElements()
	matrix := make([][]float64, n)
	for i := range matrix {
		row := make([]float64, len(columns))
		for j, c := range columns {
			row[j] = c.At(i)
		}
		matrix[i] = row
	}
	return value, matrix, nil
}

func (fn *Function) inputs(values []tensor.Value) (Inputs, error) {
	if len(values) != len(fn.symbols) {
		return nil, fmt.Errorf("%w: want %d, got %d", ErrArgumentCount, len(fn.symbols), len(values))
	}
	inputs := make(Inputs, len(values))
	for i, s := range fn.symbols {
		inputs[s.Name()] = values[i]
	}
	return inputs, nil
}
