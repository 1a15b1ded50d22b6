package cli

import (
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cartesian/pkg/api"
)

// ticksCommand creates the ticks command, which runs the vertical axis item
// placers on a bare range.
func (c *CLI) ticksCommand() *cobra.Command {
	var (
		req    api.TicksRequest
		step   float64
		count  int
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "ticks",
		Short: "Place vertical axis labels and guidelines for a range",
		Example: `  cartesian ticks --min -20 --max 80 --height 300 --label-height 12
  cartesian ticks --min 0 --max 1 --height 200 --label-height 12 --count 5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("step") {
				req.Step = &step
			}
			if cmd.Flags().Changed("count") {
				req.Count = &count
			}
			resp, err := api.PlaceTicks(req)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), resp)
			}
			labeled := lo.SliceToMap(resp.Labels, func(v float64) (float64, bool) { return v, true })
			rows := make([][]string, 0, len(resp.Lines))
			for i := len(resp.Lines) - 1; i >= 0; i-- {
				v := resp.Lines[i]
				kind := "line"
				if labeled[v] {
					kind = "label"
				}
				rows = append(rows, []string{formatNumber(v), kind})
			}
			printTable(cmd.OutOrStdout(), []string{"value", "item"}, rows)
			printInfo(cmd.OutOrStdout(), "%d labels: %s", len(resp.Labels),
				strings.Join(lo.Map(resp.Labels, func(v float64, _ int) string { return formatNumber(v) }), ", "))
			return nil
		},
	}
	cmd.Flags().Float64Var(&req.Min, "min", 0, "range minimum")
	cmd.Flags().Float64Var(&req.Max, "max", 100, "range maximum")
	cmd.Flags().Float64Var(&req.Height, "height", 300, "axis height in pixels")
	cmd.Flags().Float64Var(&req.LabelHeight, "label-height", 12, "tallest label height in pixels")
	cmd.Flags().Float64Var(&step, "step", 0, "label step (step placer; default picks from 1-2-5)")
	cmd.Flags().IntVar(&count, "count", 0, "maximum label count (selects the count placer)")
	cmd.Flags().BoolVar(&req.ShiftTopLines, "shift-top-lines", false, "add a guideline at the range maximum")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	cmd.MarkFlagsMutuallyExclusive("step", "count")
	return cmd
}
