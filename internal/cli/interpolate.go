package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/cartesian/pkg/diff"
	errs "github.com/matzehuels/cartesian/pkg/errors"
	chartio "github.com/matzehuels/cartesian/pkg/io"
)

// interpolateCommand creates the interpolate command.
func (c *CLI) interpolateCommand() *cobra.Command {
	var (
		fraction float64
		output   string
	)
	cmd := &cobra.Command{
		Use:   "interpolate <old.json> <new.json>",
		Short: "Print the model between two models at a transition fraction",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if fraction < 0 || fraction > 1 {
				return errs.New(errs.ErrCodeInvalidConfig, "fraction must be in [0, 1], got %v", fraction)
			}
			old, err := loadModel(ctx, args[0])
			if err != nil {
				return err
			}
			next, err := loadModel(ctx, args[1])
			if err != nil {
				return err
			}
			m := diff.Interpolate(old, next, fraction)
			if output != "" {
				if err := chartio.ExportJSON(m, output); err != nil {
					return err
				}
				printFile(cmd.ErrOrStderr(), output)
				return nil
			}
			return chartio.WriteJSON(m, cmd.OutOrStdout())
		},
	}
	cmd.Flags().Float64Var(&fraction, "fraction", 0.5, "transition fraction in [0, 1]")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	return cmd
}
