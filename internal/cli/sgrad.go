package cli

import (
	"github.com/spf13/cobra"
)

// NewSymbolicGradCommand creates the sgrad command.
func NewSymbolicGradCommand(rootOpts *RootOptions) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "sgrad [expression]",
		Short: "Derive the gradient of an expression symbolically",
		Long: `Derive an expression for the partial derivative with respect to every
symbol and print it, simplified unless --raw is given.

If inputs are given the derivatives are also evaluated.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(rootOpts, args, cmd)
			if err != nil {
				return err
			}
			grads, err := s.g.SymbolicGradient(s.root)
			if err != nil {
				return err
			}

			r := &symbolicResult{
				Expression: s.root.String(),
				Gradient:   make(map[string]string),
			}
			evaluate := len(s.inputs) > 0
			if evaluate {
				r.Values = make(map[string]any)
			}
			for _, sym := range symbols(grads) {
				d := grads[sym]
				if !raw {
					if d, err = s.g.Simplify(d); err != nil {
						return err
					}
				}
				r.names = append(r.names, sym.Name())
				r.Gradient[sym.Name()] = d.String()

				if evaluate {
					v, err := s.g.Value(d, s.inputs)
					if err != nil {
						return err
					}
					r.values = append(r.values, v)
					r.Values[sym.Name()] = encodeValue(v)
				}
			}
			return writeResult(cmd.OutOrStdout(), s.format, r)
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "print derivatives without simplification")
	return cmd
}
