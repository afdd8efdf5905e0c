// Package cli implements the cgraph command tree.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/born-ml/cgraph/internal/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Format    string   // "text" | "json" | "yaml"
	Inputs    string   // path of a YAML input file
	Set       []string // name=v1,v2,... assignments
	LogLevel  string
	LogFormat string
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{config.FormatText, config.FormatJSON, config.FormatYAML}

// NewRootCommand creates the root command for the cgraph CLI.
func NewRootCommand(version string) *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "cgraph",
		Short: "Evaluate and differentiate expressions",
		Long: `cgraph builds an expression graph from a textual expression and
evaluates it, computes its gradient numerically, or derives and simplifies
its gradient symbolically.

Expressions use HCL arithmetic syntax, for example:

  cgraph grad '(x*y + 3) / (z - 2)' --set x=3 --set y=4 --set z=4`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.Format != "" {
				if err := config.ValidateFormat(opts.Format); err != nil {
					return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
				}
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.Format, "format", "", "output format (text|json|yaml), default text")
	cmd.PersistentFlags().StringVarP(&opts.Inputs, "inputs", "i", "", "YAML file with inputs, expression and format")
	cmd.PersistentFlags().StringArrayVarP(&opts.Set, "set", "s", nil, "input value as name=v1,v2,... (repeatable)")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "warn", "log level (debug|info|warn|error)")
	cmd.PersistentFlags().StringVar(&opts.LogFormat, "log-format", "text", "log format (text|json)")

	cmd.AddCommand(NewEvalCommand(opts))
	cmd.AddCommand(NewGradCommand(opts))
	cmd.AddCommand(NewSymbolicGradCommand(opts))
	cmd.AddCommand(NewSimplifyCommand(opts))
	cmd.AddCommand(NewVersionCommand(version))

	return cmd
}
