package config

import (
	"time"

	"github.com/samber/lo"

	"github.com/matzehuels/cartesian/pkg/animation"
	"github.com/matzehuels/cartesian/pkg/axis"
	"github.com/matzehuels/cartesian/pkg/chart"
	errs "github.com/matzehuels/cartesian/pkg/errors"
	"github.com/matzehuels/cartesian/pkg/geom"
	"github.com/matzehuels/cartesian/pkg/layer"
	"github.com/matzehuels/cartesian/pkg/legend"
	"github.com/matzehuels/cartesian/pkg/model"
	"github.com/matzehuels/cartesian/pkg/ranges"
	"github.com/matzehuels/cartesian/pkg/scroll"
	"github.com/matzehuels/cartesian/pkg/text"
	"github.com/matzehuels/cartesian/pkg/zoom"
)

// Bounds returns the canvas rectangle.
func (c *Config) Bounds() geom.Rect {
	return geom.RectOf(0, 0, c.Width, c.Height)
}

// Build turns the configuration into a chart configuration. A nil measurer
// selects the monospace measurer.
func (c *Config) Build(measurer text.Measurer) (chart.Config, error) {
	out := chart.DefaultConfig()
	out.RTL = c.RTL
	if measurer != nil {
		out.Measurer = measurer
	}

	if err := errs.ValidateNonNegative("width", c.Width); err != nil {
		return out, err
	}
	if err := errs.ValidateNonNegative("height", c.Height); err != nil {
		return out, err
	}

	if len(c.Layers) > 0 {
		out.Layers = out.Layers[:0]
		for i, lc := range c.Layers {
			l, err := lc.build()
			if err != nil {
				return out, errs.Wrap(errs.GetCode(err), err, "layer %d", i)
			}
			out.Layers = append(out.Layers, l)
		}
	}

	if len(c.Axes) > 0 {
		out.Axes = out.Axes[:0]
		for i, ac := range c.Axes {
			a, err := ac.build()
			if err != nil {
				return out, errs.Wrap(errs.GetCode(err), err, "axis %d", i)
			}
			out.Axes = append(out.Axes, a)
		}
	}

	if c.Legend != nil {
		lg, err := c.Legend.build(c.Layers)
		if err != nil {
			return out, err
		}
		out.Legend = lg
	}

	if c.Marker.Disabled {
		out.Marker = nil
	} else if c.Marker.Decimals != nil {
		out.Marker.Formatter = text.Decimal{Digits: *c.Marker.Decimals}
	}

	var err error
	if out.Scroll, err = c.Scroll.build(); err != nil {
		return out, err
	}
	if out.Zoom, err = c.Zoom.build(); err != nil {
		return out, err
	}
	if out.Animation, err = c.Animation.build(); err != nil {
		return out, err
	}

	if len(c.Ranges) > 0 {
		out.Overrides = make(map[model.Kind]ranges.Override, len(c.Ranges))
		for _, rc := range c.Ranges {
			kind, err := model.ParseKind(rc.Kind)
			if err != nil {
				return out, errs.Wrap(errs.ErrCodeInvalidConfig, err, "ranges")
			}
			out.Overrides[kind] = ranges.Override{MinX: rc.MinX, MaxX: rc.MaxX, MinY: rc.MinY, MaxY: rc.MaxY}
		}
	}

	return out, out.Validate()
}

func (lc LayerConfig) build() (layer.Layer, error) {
	kind, err := model.ParseKind(lc.Kind)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidConfig, err, "kind")
	}
	for name, v := range map[string]float64{
		"thickness": lc.Thickness, "spacing": lc.Spacing, "margin": lc.Margin,
		"point_size": lc.PointSize, "body_width": lc.BodyWidth, "wick_width": lc.WickWidth,
	} {
		if err := errs.ValidateNonNegative(name, v); err != nil {
			return nil, err
		}
	}

	switch kind {
	case model.Column:
		l := layer.NewColumn()
		l.Thickness = orDefault(lc.Thickness, l.Thickness)
		l.Spacing = orDefault(lc.Spacing, l.Spacing)
		l.Margin = orDefault(lc.Margin, l.Margin)
		l.Palette = lc.Palette
		return l, nil
	case model.Line:
		l := layer.NewLine()
		l.Thickness = orDefault(lc.Thickness, l.Thickness)
		l.Spacing = orDefault(lc.Spacing, l.Spacing)
		l.PointSize = lc.PointSize
		l.Palette = lc.Palette
		return l, nil
	}
	l := layer.NewCandlestick()
	l.BodyWidth = orDefault(lc.BodyWidth, l.BodyWidth)
	l.WickWidth = orDefault(lc.WickWidth, l.WickWidth)
	l.Margin = orDefault(lc.Margin, l.Margin)
	if lc.Bullish != "" {
		l.Bullish = lc.Bullish
	}
	if lc.Bearish != "" {
		l.Bearish = lc.Bearish
	}
	return l, nil
}

func (ac AxisConfig) build() (*axis.Axis, error) {
	pos, err := geom.ParsePosition(ac.Position)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidConfig, err, "position")
	}
	a := axis.New(pos)
	a.Title = ac.Title

	if pos.IsVertical() {
		switch ac.Placer {
		case "", "step":
			a.Placer, err = axis.NewStepPlacer(axis.StepOptions{
				Step: ac.Step, ShiftTopLines: ac.ShiftTopLines, TopLineThreshold: ac.TopLineThreshold,
			})
		case "count":
			a.Placer, err = axis.NewCountPlacer(axis.CountOptions{
				Count: ac.Count, ShiftTopLines: ac.ShiftTopLines, TopLineThreshold: ac.TopLineThreshold,
			})
		default:
			err = errs.New(errs.ErrCodeInvalidConfig, "unknown placer %q (want step or count)", ac.Placer)
		}
	} else {
		a.Aligned, err = axis.NewAlignedPlacer(ac.Spacing, ac.Offset, ac.ShiftExtremeLines)
	}
	if err != nil {
		return nil, err
	}

	if ac.TickLength != nil {
		a.TickLength = *ac.TickLength
	}
	if ac.LabelPadding != nil {
		a.LabelPadding = *ac.LabelPadding
	}
	if ac.Guidelines != nil {
		a.Guidelines = *ac.Guidelines
	}
	switch {
	case ac.Compact:
		a.Formatter = text.Compact{Digits: lo.FromPtrOr(ac.Decimals, 1)}
	case ac.Decimals != nil:
		a.Formatter = text.Decimal{Digits: *ac.Decimals}
	}
	return a, nil
}

func (lc *LegendConfig) build(layers []LayerConfig) (*legend.Legend, error) {
	pos := geom.Bottom
	if lc.Position != "" {
		p, err := geom.ParsePosition(lc.Position)
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidConfig, err, "legend position")
		}
		pos = p
	}
	if !pos.IsHorizontal() {
		return nil, errs.New(errs.ErrCodeInvalidConfig, "legend position must be top or bottom, got %s", pos)
	}
	lg := legend.New(pos)
	if l, ok := lo.Find(layers, func(l LayerConfig) bool { return len(l.Palette) > 0 }); ok {
		lg.Palette = l.Palette
	}
	return lg, nil
}

func (sc ScrollConfig) build() (scroll.Options, error) {
	opts := scroll.DefaultOptions()
	opts.Enabled = !sc.Disabled
	var err error
	if opts.Initial, err = scroll.ParseInitial(sc.Initial); err != nil {
		return opts, err
	}
	if opts.AutoScroll, err = scroll.ParseAutoScroll(sc.AutoScroll); err != nil {
		return opts, err
	}
	if sc.Duration != "" {
		d, err := parseDuration("scroll duration", sc.Duration)
		if err != nil {
			return opts, err
		}
		opts.Animation.Duration = d
	}
	return opts, nil
}

func (zc ZoomConfig) build() (zoom.Options, error) {
	opts := zoom.DefaultOptions()
	opts.Enabled = !zc.Disabled
	for _, f := range []struct {
		value string
		dst   *zoom.Spec
	}{
		{zc.Initial, &opts.Initial},
		{zc.Min, &opts.Min},
		{zc.Max, &opts.Max},
	} {
		if f.value == "" {
			continue
		}
		spec, err := zoom.Parse(f.value)
		if err != nil {
			return opts, err
		}
		*f.dst = spec
	}
	return opts, nil
}

func (ac AnimationConfig) build() (animation.Spec, error) {
	spec := animation.DefaultSpec
	if ac.Duration != "" {
		d, err := parseDuration("animation duration", ac.Duration)
		if err != nil {
			return spec, err
		}
		spec.Duration = d
	}
	easing, err := animation.ParseEasing(ac.Easing)
	if err != nil {
		return spec, err
	}
	spec.Easing = easing
	return spec, nil
}

func parseDuration(name, s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, errs.Wrap(errs.ErrCodeInvalidConfig, err, "%s", name)
	}
	return d, errs.ValidateDuration(name, d)
}

func orDefault(v, def float64) float64 {
	if v > 0 {
		return v
	}
	return def
}
