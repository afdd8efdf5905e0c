package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/spf13/cobra"

	"github.com/born-ml/cgraph/internal/autodiff"
	"github.com/born-ml/cgraph/internal/config"
	"github.com/born-ml/cgraph/internal/parse"
)

// ErrNoExpression is returned when neither an argument nor the input file
// provides an expression.
var ErrNoExpression = errors.New("no expression given")

// session is the parsed state shared by the expression commands.
type session struct {
	g      *autodiff.Graph
	root   autodiff.Node
	expr   string
	inputs autodiff.Inputs
	format string
	logger *slog.Logger
}

// newSession resolves inputs, expression and format from the input file,
// the --set flags and the positional argument, in increasing precedence,
// and parses the expression onto a new graph.
func newSession(opts *RootOptions, args []string, cmd *cobra.Command) (*session, error) {
	logger := newLogger(opts.LogLevel, opts.LogFormat, cmd.ErrOrStderr())

	file := &config.File{}
	if opts.Inputs != "" {
		f, err := config.Load(opts.Inputs)
		if err != nil {
			return nil, err
		}
		file = f
		logger.Info("loaded input file", slog.String("path", opts.Inputs), slog.Int("inputs", len(f.Inputs)))
	}
	for _, s := range opts.Set {
		name, in, err := config.ParseAssignment(s)
		if err != nil {
			return nil, err
		}
		file.Set(name, in)
	}

	expr := file.Expression
	if len(args) > 0 {
		expr = args[0]
	}
	if expr == "" {
		return nil, ErrNoExpression
	}

	format := opts.Format
	if format == "" {
		format = file.Format
	}
	if format == "" {
		format = config.FormatText
	}

	g := autodiff.NewGraph(autodiff.WithLogger(logger))
	root, err := parse.Parse(g, expr)
	if err != nil {
		return nil, fmt.Errorf("parsing expression: %w", err)
	}
	logger.Info("parsed expression",
		slog.String("expression", expr),
		slog.Int("nodes", g.NumNodes()),
		slog.String("graph", g.ID().String()))

	return &session{
		g:      g,
		root:   root,
		expr:   expr,
		inputs: file.Values(),
		format: format,
		logger: logger,
	}, nil
}

// symbols returns the symbol keys of m sorted by name.
func symbols[V any](m map[autodiff.Node]V) []autodiff.Node {
	var out []autodiff.Node
	for n := range m {
		if n.Kind() == autodiff.KindSymbol {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}
