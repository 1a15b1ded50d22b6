package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cartesian/pkg/chart"
	"github.com/matzehuels/cartesian/pkg/render"
	"github.com/matzehuels/cartesian/pkg/render/svg"
)

// renderOpts holds the flags of the render command.
type renderOpts struct {
	chartFlags
	output     string  // output path; "-" writes SVG to stdout
	format     string  // svg, png or pdf; empty derives it from output
	scale      float64 // raster scale for png
	background string  // background fill, empty for transparent
	title      string  // SVG <title>
	scroll     float64 // scroll value in pixels
	markerX    float64 // canvas X of a marker to draw, negative for none
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{scale: 1, background: "#fff", markerX: -1}

	cmd := &cobra.Command{
		Use:   "render <model.json>",
		Short: "Render a chart to SVG, PNG or PDF",
		Long: `Render lays out the model at the configured size and draws it.

PNG and PDF output converts the SVG with rsvg-convert, which must be on PATH.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0], &opts)
		},
	}

	opts.chartFlags.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: <model>.<format>, - for stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: svg, png, pdf (default: from output extension)")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "raster scale for png")
	cmd.Flags().StringVar(&opts.background, "background", opts.background, "background color (empty for none)")
	cmd.Flags().StringVar(&opts.title, "title", "", "document title")
	cmd.Flags().Float64Var(&opts.scroll, "scroll", 0, "scroll value in pixels")
	cmd.Flags().Float64Var(&opts.markerX, "marker-x", opts.markerX, "draw the marker at this canvas X")

	return cmd
}

// outputFormat resolves the format from the flag or the output path.
func (o *renderOpts) outputFormat() (render.Format, error) {
	if o.format != "" {
		return render.ParseFormat(o.format)
	}
	if o.output == "" || o.output == "-" {
		return render.FormatSVG, nil
	}
	return render.FormatFor(o.output), nil
}

// outputPath returns where to write, deriving it from the input if unset.
func (o *renderOpts) outputPath(input string, f render.Format) string {
	if o.output != "" {
		return o.output
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + "." + string(f)
}

func runRender(ctx context.Context, stdout, stderr io.Writer, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	format, err := opts.outputFormat()
	if err != nil {
		return err
	}
	cfg, err := opts.load()
	if err != nil {
		return err
	}
	m, err := loadModel(ctx, input)
	if err != nil {
		return err
	}
	ch, err := cfg.Frame(ctx, m, logger)
	if err != nil {
		return err
	}
	if opts.scroll != 0 {
		snap := ch.Snapshot()
		snap.ScrollValue = opts.scroll
		if err := snap.Validate(); err != nil {
			return err
		}
		ch.Restore(ctx, snap)
	}

	data := renderSVG(ctx, ch, cfg.Width, cfg.Height, opts)
	logger.Debug("generated svg", "bytes", len(data))

	if format != render.FormatSVG {
		data, err = withSpinner(ctx, stderr, fmt.Sprintf("Converting to %s...", format), func() ([]byte, error) {
			return render.Convert(ctx, data, format, opts.scale)
		})
		if err != nil {
			return err
		}
	}

	if opts.output == "-" {
		_, err := stdout.Write(data)
		return err
	}
	path := opts.outputPath(input, format)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	prog.done("Rendered " + path)
	return nil
}

// renderSVG draws the measured chart onto a fresh SVG canvas.
func renderSVG(ctx context.Context, ch *chart.Chart, width, height float64, opts *renderOpts) []byte {
	var svgOpts []svg.Option
	if opts.background != "" {
		svgOpts = append(svgOpts, svg.WithBackground(opts.background))
	}
	if opts.title != "" {
		svgOpts = append(svgOpts, svg.WithTitle(opts.title))
	}
	canvas := svg.New(width, height, svgOpts...)
	ch.Draw(ctx, canvas)
	if opts.markerX >= 0 {
		ch.DrawMarker(canvas, ch.MarkerTargets(opts.markerX))
	}
	return canvas.Bytes()
}
