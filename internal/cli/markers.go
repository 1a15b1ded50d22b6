package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cartesian/pkg/api"
	"github.com/matzehuels/cartesian/pkg/marker"
)

// markersCommand creates the markers command.
func (c *CLI) markersCommand() *cobra.Command {
	var (
		flags  chartFlags
		x      float64
		scroll float64
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "markers <model.json>",
		Short: "Resolve the entries a marker highlights at a canvas X",
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
			if scroll != 0 {
				snap := ch.Snapshot()
				snap.ScrollValue = scroll
				if err := snap.Validate(); err != nil {
					return err
				}
				ch.Restore(ctx, snap)
			}

			targets := ch.MarkerTargets(x)
			w := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(w, api.MarkersResponse{Targets: api.Targets(targets)})
			}
			if len(targets) == 0 {
				printInfo(w, "No entries at x=%s", formatNumber(x))
				return nil
			}
			var rows [][]string
			for _, t := range api.Targets(targets) {
				for _, p := range t.Points {
					rows = append(rows, []string{
						strconv.Itoa(t.Layer), t.Kind.String(), formatNumber(t.X),
						strconv.Itoa(p.Series), pointValue(p), formatNumber(p.CanvasY),
					})
				}
			}
			printTable(w, []string{"layer", "kind", "x", "series", "value", "canvas y"}, rows)
			printInfo(w, "%s", marker.New().Label(targets))
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().Float64Var(&x, "x", 0, "pointer X in canvas pixels")
	cmd.Flags().Float64Var(&scroll, "scroll", 0, "scroll value in pixels")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	_ = cmd.MarkFlagRequired("x")
	return cmd
}

func pointValue(p api.MarkerPoint) string {
	if p.Candle != nil {
		return fmt.Sprintf("o %s h %s l %s c %s",
			formatNumber(p.Candle.Open), formatNumber(p.Candle.High),
			formatNumber(p.Candle.Low), formatNumber(p.Candle.Close))
	}
	return formatNumber(p.Entry.Y)
}
