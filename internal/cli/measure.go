package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cartesian/pkg/api"
)

// measureCommand creates the measure command.
func (c *CLI) measureCommand() *cobra.Command {
	var (
		flags  chartFlags
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "measure <model.json>",
		Short: "Measure a chart and print its content area and ranges",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := flags.load()
			if err != nil {
				return err
			}
			m, err := loadModel(ctx, args[0])
			if err != nil {
				return err
			}
			ch, err := cfg.Frame(ctx, m, loggerFromContext(ctx))
			if err != nil {
				return err
			}
			out := api.Measure(ch)
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), out)
			}
			printMeasurement(cmd.OutOrStdout(), out)
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func printMeasurement(w io.Writer, m api.Measurement) {
	if m.Empty {
		printInfo(w, "Nothing to draw")
		return
	}
	printKeyValue(w, "content", fmt.Sprintf("%s × %s at (%s, %s)",
		formatNumber(m.Content.Right-m.Content.Left), formatNumber(m.Content.Bottom-m.Content.Top),
		formatNumber(m.Content.Left), formatNumber(m.Content.Top)))
	printKeyValue(w, "margins", fmt.Sprintf("start %s  top %s  end %s  bottom %s",
		formatNumber(m.Margins.Start), formatNumber(m.Margins.Top),
		formatNumber(m.Margins.End), formatNumber(m.Margins.Bottom)))
	printKeyValue(w, "x", formatRange(m.Ranges.X)+StyleDim.Render(" step ")+formatNumber(m.Ranges.XStep))

	positions := lo.Keys(m.Ranges.Y)
	slices.Sort(positions)
	for _, p := range positions {
		printKeyValue(w, "y "+p.String(), formatRange(m.Ranges.Y[p]))
	}
	printKeyValue(w, "zoom", fmt.Sprintf("%s in [%s, %s]", formatNumber(m.Zoom), formatNumber(m.ZoomMin), formatNumber(m.ZoomMax)))
	printKeyValue(w, "scroll", fmt.Sprintf("%s of %s", formatNumber(m.Scroll), formatNumber(m.MaxScroll)))
}

func formatRange(r *api.Range) string {
	if r == nil {
		return StyleDim.Render("empty")
	}
	return fmt.Sprintf("[%s, %s]", formatNumber(r.Min), formatNumber(r.Max))
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
