package chart

import (
	"github.com/charmbracelet/log"
	"github.com/samber/lo"

	"github.com/matzehuels/cartesian/pkg/animation"
	"github.com/matzehuels/cartesian/pkg/axis"
	errs "github.com/matzehuels/cartesian/pkg/errors"
	"github.com/matzehuels/cartesian/pkg/geom"
	"github.com/matzehuels/cartesian/pkg/layer"
	"github.com/matzehuels/cartesian/pkg/layout"
	"github.com/matzehuels/cartesian/pkg/legend"
	"github.com/matzehuels/cartesian/pkg/marker"
	"github.com/matzehuels/cartesian/pkg/model"
	"github.com/matzehuels/cartesian/pkg/ranges"
	"github.com/matzehuels/cartesian/pkg/scroll"
	"github.com/matzehuels/cartesian/pkg/text"
	"github.com/matzehuels/cartesian/pkg/zoom"
)

// Canvas is the drawing surface a chart paints on.
type Canvas = layout.Canvas

// Describer produces an accessibility description of the drawn frame.
type Describer interface {
	Describe(m *model.Model, res layout.Result) string
}

// Config assembles a chart.
type Config struct {
	// Layers are drawn in order. At most one layer per model kind.
	Layers []layer.Layer
	// Axes are drawn before the layers. At most one axis per position.
	Axes []*axis.Axis
	// Legend and Marker are optional.
	Legend *legend.Legend
	Marker *marker.Marker

	Measurer text.Measurer
	RTL      bool
	// Overrides pin range bounds per dataset kind.
	Overrides map[model.Kind]ranges.Override

	Scroll scroll.Options
	Zoom   zoom.Options
	// Animation is the model transition. A zero duration swaps models at
	// once.
	Animation animation.Spec

	Describer Describer
	Logger    *log.Logger
}

// DefaultConfig returns a chart with all three layers, a start and a bottom
// axis, a marker and no legend.
func DefaultConfig() Config {
	return Config{
		Layers:    []layer.Layer{layer.NewColumn(), layer.NewLine(), layer.NewCandlestick()},
		Axes:      []*axis.Axis{axis.New(geom.Start), axis.New(geom.Bottom)},
		Marker:    marker.New(),
		Measurer:  text.NewMonospace(0),
		Scroll:    scroll.DefaultOptions(),
		Zoom:      zoom.DefaultOptions(),
		Animation: animation.DefaultSpec,
	}
}

// Validate checks the configuration for construction-time mistakes.
func (c Config) Validate() error {
	kinds := lo.Map(c.Layers, func(l layer.Layer, _ int) model.Kind { return l.Kind() })
	if dup := lo.FindDuplicates(kinds); len(dup) > 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "more than one %s layer", dup[0])
	}
	positions := lo.Map(c.Axes, func(a *axis.Axis, _ int) geom.Position { return a.Position })
	if dup := lo.FindDuplicates(positions); len(dup) > 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "more than one %s axis", dup[0])
	}
	for kind, o := range c.Overrides {
		if err := o.Validate(); err != nil {
			return errs.Wrap(errs.ErrCodeInvalidConfig, err, "%s range override", kind)
		}
	}
	if err := errs.ValidateDuration("animation duration", c.Animation.Duration); err != nil {
		return err
	}
	return errs.ValidateDuration("scroll animation duration", c.Scroll.Animation.Duration)
}
