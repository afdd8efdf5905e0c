package cli

import (
	"github.com/spf13/cobra"
)

// NewGradCommand creates the grad command.
func NewGradCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "grad [expression]",
		Short: "Compute the gradient of an expression numerically",
		Long: `Compute the value of an expression and its partial derivatives with
respect to every symbol, using reverse-mode differentiation.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(rootOpts, args, cmd)
			if err != nil {
				return err
			}
			grads, values, err := s.g.NumericGradient(s.root, s.inputs)
			if err != nil {
				return err
			}

			value := values[s.root]
			r := &gradResult{
				Expression: s.root.String(),
				Value:      encodeValue(value),
				Gradient:   make(map[string]any),
				value:      value,
			}
			for _, sym := range symbols(grads) {
				d := grads[sym]
				r.names = append(r.names, sym.Name())
				r.grads = append(r.grads, d)
				r.Gradient[sym.Name()] = encodeValue(d)
			}
			return writeResult(cmd.OutOrStdout(), s.format, r)
		},
	}
}

