package cli

import (
	"github.com/spf13/cobra"
)

// NewEvalCommand creates the eval command.
func NewEvalCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "eval [expression]",
		Short: "Evaluate an expression",
		Long: `Evaluate an expression at the given inputs.

Every symbol of the expression needs a value, from --set or --inputs.
Inputs may be lists; all lists must have the same length and single
numbers are broadcast against them.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(rootOpts, args, cmd)
			if err != nil {
				return err
			}
			v, err := s.g.Value(s.root, s.inputs)
			if err != nil {
				return err
			}
			return writeResult(cmd.OutOrStdout(), s.format, &evalResult{
				Expression: s.root.String(),
				Value:      encodeValue(v),
				value:      v,
			})
		},
	}
}
