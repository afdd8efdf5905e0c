// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides reverse-mode differentiation over shared
// expression graphs.
//
// Expressions are built on a Graph from symbols, constants and operations.
// Sub-expressions can be reused freely; every query (evaluation, numeric or
// symbolic gradient, simplification) works on the ancestor sub-graph of the
// node it is asked about.
//
// Example:
//
//	import (
//	    "github.com/born-ml/cgraph/autodiff"
//	    "github.com/born-ml/cgraph/tensor"
//	)
//
//	func main() {
//	    g := autodiff.NewGraph()
//	    x, y := g.Symbol("x"), g.Symbol("y")
//	    xy := x.Mul(y)
//	    f := xy.Add(1).Mul(xy)
//
//	    in := autodiff.Inputs{"x": tensor.Scalar(2), "y": tensor.Scalar(3)}
//	    grads, _, _ := g.NumericGradient(f, in)
//	    fmt.Println(grads[x], grads[y]) // 39 26
//
//	    sym, _ := g.SymbolicGradient(f)
//	    dx, _ := g.Simplify(sym[x])
//	    fmt.Println(dx)
//	}
package autodiff

import (
	"log/slog"

	"github.com/born-ml/cgraph/internal/autodiff"
	"github.com/born-ml/cgraph/internal/autodiff/ops"
)

// Graph is an expression graph session. It is not safe for concurrent use.
type Graph = autodiff.Graph

// Node is a handle to a node of a Graph.
type Node = autodiff.Node

// Kind tells symbols, constants and operations apart.
type Kind = autodiff.Kind

// Node kinds.
const (
	KindSymbol    Kind = autodiff.KindSymbol
	KindConstant  Kind = autodiff.KindConstant
	KindOperation Kind = autodiff.KindOperation
)

// Inputs maps symbol names to values.
type Inputs = autodiff.Inputs

// Option configures a Graph.
type Option = autodiff.Option

// Function wraps an expression for positional calls.
type Function = autodiff.Function

// Operation is one of the fixed operation kinds, see OperationByName.
type Operation = ops.Operation

// MissingInputError reports a symbol without an input value.
type MissingInputError = autodiff.MissingInputError

// OperandError reports an operand that cannot be used to build a node.
type OperandError = autodiff.OperandError

// Errors.
var (
	ErrMissingInput   = autodiff.ErrMissingInput
	ErrInvalidOperand = autodiff.ErrInvalidOperand
	ErrArgumentCount  = autodiff.ErrArgumentCount
)

// NewGraph creates an empty graph session.
func NewGraph(opts ...Option) *Graph {
	return autodiff.NewGraph(opts...)
}

// WithLogger sets the logger used for debug summaries of each query.
func WithLogger(logger *slog.Logger) Option {
	return autodiff.WithLogger(logger)
}

// NewFunction binds f to the ordered symbols.
func NewFunction(f Node, symbols ...Node) (*Function, error) {
	return autodiff.NewFunction(f, symbols...)
}

// OperationByName returns the operation called name ("add", "pow", ...).
func OperationByName(name string) (Operation, bool) {
	return ops.ByName(name)
}
