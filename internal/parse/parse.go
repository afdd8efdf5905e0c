// Package parse turns textual expressions into expression graph nodes.
//
// The syntax is the HCL expression language restricted to arithmetic:
//
//	(x*y + 3) / (z - 2)
//	pow(x, 2) + sin(y) * exp(-z)
//	max(abs(x), 0.5)
//
// Identifiers become symbols, number literals become constants, the binary
// operators + - * / and unary - map to the matching operations, and the
// functions pow exp log sqrt abs sign step min max sin cos sum are available.
// Anything else (strings, attribute access, conditionals, ...) is rejected.
package parse

import (
	"errors"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"

	"github.com/born-ml/cgraph/internal/autodiff"
	"github.com/born-ml/cgraph/internal/autodiff/ops"
)

// ErrInvalidExpression is wrapped by every *Error.
var ErrInvalidExpression = errors.New("invalid expression")

// Filename is used as the source name in diagnostics.
const Filename = "<expr>"

// Error reports why an expression could not be parsed.
type Error struct {
	Diags hcl.Diagnostics
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Diags.Error()
}

// Unwrap returns ErrInvalidExpression.
func (e *Error) Unwrap() error {
	return ErrInvalidExpression
}

// functions maps call names to operations.
var functions = map[string]ops.Operation{
	"pow":  ops.Pow,
	"exp":  ops.Exp,
	"log":  ops.Log,
	"sqrt": ops.Sqrt,
	"abs":  ops.Abs,
	"sign": ops.Sign,
	"step": ops.Step,
	"min":  ops.Min,
	"max":  ops.Max,
	"sin":  ops.Sin,
	"cos":  ops.Cos,
	"sum":  ops.Sum,
}

var binaryOps = map[*hclsyntax.Operation]ops.Operation{
	hclsyntax.OpAdd:      ops.Add,
	hclsyntax.OpSubtract: ops.Sub,
	hclsyntax.OpMultiply: ops.Mul,
	hclsyntax.OpDivide:   ops.Div,
}

// Functions returns the names of the callable functions.
func Functions() []string {
	names := make([]string, 0, len(functions))
	for _, op := range ops.All() {
		for name, f := range functions {
			if f == op {
				names = append(names, name)
			}
		}
	}
	return names
}

// Parse parses src and builds the expression on g. It returns the root of
// the new expression. Symbols are shared with the rest of g by name.
//
// On failure no partial result is returned, but nodes created before the
// error was found stay on g.
func Parse(g *autodiff.Graph, src string) (autodiff.Node, error) {
	expr, diags := hclsyntax.ParseExpression([]byte(src), Filename, hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return autodiff.Node{}, &Error{Diags: diags}
	}

	b := &builder{g: g}
	n := b.build(expr)
	if b.diags.HasErrors() {
		return autodiff.Node{}, &Error{Diags: b.diags}
	}
	return n, nil
}

type builder struct {
	g     *autodiff.Graph
	diags hcl.Diagnostics
}

func (b *builder) fail(rng hcl.Range, summary, detail string) autodiff.Node {
	b.diags = append(b.diags, &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  summary,
		Detail:   detail,
		Subject:  rng.Ptr(),
	})
	return autodiff.Node{}
}

func (b *builder) build(expr hclsyntax.Expression) autodiff.Node {
	switch e := expr.(type) {
	case *hclsyntax.LiteralValueExpr:
		v, ok := b.number(e.Val, e.SrcRange)
		if !ok {
			return autodiff.Node{}
		}
		return b.g.Constant(v)

	case *hclsyntax.ScopeTraversalExpr:
		if len(e.Traversal) != 1 {
			return b.fail(e.SrcRange, "Unsupported reference",
				"Only plain identifiers can be used as symbols.")
		}
		return b.g.Symbol(e.Traversal.RootName())

	case *hclsyntax.ParenthesesExpr:
		return b.build(e.Expression)

	case *hclsyntax.UnaryOpExpr:
		if e.Op != hclsyntax.OpNegate {
			return b.fail(e.SrcRange, "Unsupported operator", "Only arithmetic negation is supported.")
		}
		if lit, ok := e.Val.(*hclsyntax.LiteralValueExpr); ok {
			v, ok := b.number(lit.Val, lit.SrcRange)
			if !ok {
				return autodiff.Node{}
			}
			return b.g.Constant(-v)
		}
		x := b.build(e.Val)
		if !x.IsValid() {
			return x
		}
		return b.g.Neg(x)

	case *hclsyntax.BinaryOpExpr:
		op, ok := binaryOps[e.Op]
		if !ok {
			return b.fail(e.SrcRange, "Unsupported operator",
				"Only the arithmetic operators + - * / are supported.")
		}
		lhs := b.build(e.LHS)
		rhs := b.build(e.RHS)
		if !lhs.IsValid() || !rhs.IsValid() {
			return autodiff.Node{}
		}
		return b.g.Apply(op, lhs, rhs)

	case *hclsyntax.FunctionCallExpr:
		return b.call(e)
	}

	return b.fail(expr.Range(), "Unsupported expression",
		fmt.Sprintf("Expressions of type %T cannot be differentiated.", expr))
}

func (b *builder) call(e *hclsyntax.FunctionCallExpr) autodiff.Node {
	op, ok := functions[e.Name]
	if !ok {
		return b.fail(e.NameRange, "Call to unknown function",
			fmt.Sprintf("There is no function named %q.", e.Name))
	}
	if e.ExpandFinal {
		return b.fail(e.Range(), "Unsupported argument expansion",
			"Arguments cannot be expanded with \"...\".")
	}
	if err := ops.CheckArity(op, len(e.Args)); err != nil {
		return b.fail(e.Range(), "Wrong number of arguments", err.Error()+".")
	}

	args := make([]autodiff.Node, len(e.Args))
	valid := true
	for i, arg := range e.Args {
		args[i] = b.build(arg)
		valid = valid && args[i].IsValid()
	}
	if !valid {
		return autodiff.Node{}
	}
	if op == ops.Sum {
		return b.g.Sum(args...)
	}
	return b.g.Apply(op, args...)
}

func (b *builder) number(v cty.Value, rng hcl.Range) (float64, bool) {
	if v.IsNull() || !v.IsKnown() || v.Type() != cty.Number {
		b.fail(rng, "Invalid literal", fmt.Sprintf("Expected a number, got %s.", v.Type().FriendlyName()))
		return 0, false
	}
	f, _ := v.AsBigFloat().Float64()
	return f, true
}
