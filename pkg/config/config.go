// Package config loads chart configuration files.
//
// A configuration file describes everything about a chart except its data:
// canvas size, layers, axes, legend, marker, scroll, zoom and animation.
// TOML (.toml) and YAML (.yaml, .yml) are supported with the same keys:
//
//	width = 800
//	height = 400
//
//	[[layers]]
//	kind = "column"
//	thickness = 10
//
//	[[axes]]
//	position = "start"
//	placer = "count"
//	count = 5
//
//	[zoom]
//	initial = "max(fixed:1,content)"
//	max = "entries:5"
//
// [Config.Build] turns a file into a [chart.Config]. Every key is optional;
// zero values select the chart defaults.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	errs "github.com/matzehuels/cartesian/pkg/errors"
)

// Default canvas size in pixels.
const (
	DefaultWidth  = 800
	DefaultHeight = 400
)

// Config is a chart configuration file.
type Config struct {
	Width  float64 `toml:"width" yaml:"width"`
	Height float64 `toml:"height" yaml:"height"`
	RTL    bool    `toml:"rtl" yaml:"rtl"`

	Layers    []LayerConfig   `toml:"layers" yaml:"layers"`
	Axes      []AxisConfig    `toml:"axes" yaml:"axes"`
	Legend    *LegendConfig   `toml:"legend" yaml:"legend"`
	Marker    MarkerConfig    `toml:"marker" yaml:"marker"`
	Scroll    ScrollConfig    `toml:"scroll" yaml:"scroll"`
	Zoom      ZoomConfig      `toml:"zoom" yaml:"zoom"`
	Animation AnimationConfig `toml:"animation" yaml:"animation"`
	Ranges    []RangeConfig   `toml:"ranges" yaml:"ranges"`
}

// LayerConfig configures one layer. Geometry keys apply to the kinds noted.
type LayerConfig struct {
	Kind    string   `toml:"kind" yaml:"kind"`
	Palette []string `toml:"palette" yaml:"palette"`

	Thickness float64 `toml:"thickness" yaml:"thickness"` // column, line
	Spacing   float64 `toml:"spacing" yaml:"spacing"`     // column, line
	Margin    float64 `toml:"margin" yaml:"margin"`       // column, candlestick
	PointSize float64 `toml:"point_size" yaml:"point_size"`
	BodyWidth float64 `toml:"body_width" yaml:"body_width"`
	WickWidth float64 `toml:"wick_width" yaml:"wick_width"`
	Bullish   string  `toml:"bullish" yaml:"bullish"`
	Bearish   string  `toml:"bearish" yaml:"bearish"`
}

// AxisConfig configures one axis.
type AxisConfig struct {
	Position string `toml:"position" yaml:"position"`
	Title    string `toml:"title" yaml:"title"`

	// Placer is "step" (default) or "count", vertical axes only.
	Placer           string   `toml:"placer" yaml:"placer"`
	Step             *float64 `toml:"step" yaml:"step"`
	Count            *int     `toml:"count" yaml:"count"`
	ShiftTopLines    bool     `toml:"shift_top_lines" yaml:"shift_top_lines"`
	TopLineThreshold float64  `toml:"top_line_threshold" yaml:"top_line_threshold"`

	// Horizontal axes only.
	Spacing           int  `toml:"spacing" yaml:"spacing"`
	Offset            int  `toml:"offset" yaml:"offset"`
	ShiftExtremeLines bool `toml:"shift_extreme_lines" yaml:"shift_extreme_lines"`

	TickLength   *float64 `toml:"tick_length" yaml:"tick_length"`
	LabelPadding *float64 `toml:"label_padding" yaml:"label_padding"`
	Guidelines   *bool    `toml:"guidelines" yaml:"guidelines"`
	// Decimals fixes the label precision; Compact prints 1.2k style labels.
	Decimals *int `toml:"decimals" yaml:"decimals"`
	Compact  bool `toml:"compact" yaml:"compact"`
}

// LegendConfig enables the legend.
type LegendConfig struct {
	// Position is "bottom" (default) or "top".
	Position string `toml:"position" yaml:"position"`
}

// MarkerConfig configures the marker.
type MarkerConfig struct {
	Disabled bool `toml:"disabled" yaml:"disabled"`
	Decimals *int `toml:"decimals" yaml:"decimals"`
}

// ScrollConfig configures scrolling.
type ScrollConfig struct {
	Disabled bool `toml:"disabled" yaml:"disabled"`
	// Initial is "start" or "end".
	Initial string `toml:"initial" yaml:"initial"`
	// AutoScroll is "never" or "on-growth".
	AutoScroll string `toml:"auto_scroll" yaml:"auto_scroll"`
	// Duration of animated scrolls, e.g. "300ms".
	Duration string `toml:"duration" yaml:"duration"`
}

// ZoomConfig configures zooming. Values are zoom specs: "content",
// "fixed:2", "entries:10", "min(a,b)" or "max(a,b)".
type ZoomConfig struct {
	Disabled bool   `toml:"disabled" yaml:"disabled"`
	Initial  string `toml:"initial" yaml:"initial"`
	Min      string `toml:"min" yaml:"min"`
	Max      string `toml:"max" yaml:"max"`
}

// AnimationConfig configures model transitions.
type AnimationConfig struct {
	// Duration, e.g. "300ms". "0s" disables transitions.
	Duration string `toml:"duration" yaml:"duration"`
	// Easing is "linear", "ease-in", "ease-out" or "ease-in-out".
	Easing string `toml:"easing" yaml:"easing"`
}

// RangeConfig pins range bounds of one dataset kind.
type RangeConfig struct {
	Kind string   `toml:"kind" yaml:"kind"`
	MinX *float64 `toml:"min_x" yaml:"min_x"`
	MaxX *float64 `toml:"max_x" yaml:"max_x"`
	MinY *float64 `toml:"min_y" yaml:"min_y"`
	MaxY *float64 `toml:"max_y" yaml:"max_y"`
}

// Default returns an empty configuration with the default canvas size.
func Default() *Config {
	return &Config{Width: DefaultWidth, Height: DefaultHeight}
}

// Load reads a configuration file. The format follows the extension.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data, strings.TrimPrefix(filepath.Ext(path), "."))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes data in format "toml", "yaml" or "yml" and validates it.
func Parse(data []byte, format string) (*Config, error) {
	cfg := Default()
	switch strings.ToLower(format) {
	case "toml":
		md, err := toml.Decode(string(data), cfg)
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "parse TOML")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errs.New(errs.ErrCodeInvalidConfig, "unknown key %q", undecoded[0].String())
		}
	case "yaml", "yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "parse YAML")
		}
	default:
		return nil, errs.New(errs.ErrCodeUnsupported, "unsupported config format %q (want toml or yaml)", format)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration without building a chart.
func (c *Config) Validate() error {
	_, err := c.Build(nil)
	return err
}
