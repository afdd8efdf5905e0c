package cli

import (
	"github.com/spf13/cobra"
)

// NewSimplifyCommand creates the simplify command.
func NewSimplifyCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "simplify [expression]",
		Short: "Simplify an expression",
		Long: `Apply one pass of the rewrite rules x*1 = x, x+0 = x and constant
folding to an expression and print the result.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(rootOpts, args, cmd)
			if err != nil {
				return err
			}
			simplified, err := s.g.Simplify(s.root)
			if err != nil {
				return err
			}
			return writeResult(cmd.OutOrStdout(), s.format, &simplifyResult{
				Expression: s.root.String(),
				Simplified: simplified.String(),
			})
		},
	}
}
