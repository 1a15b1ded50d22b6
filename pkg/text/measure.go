// Package text defines how the layout engine sizes and formats labels.
//
// Real text shaping is the host's job. The engine only needs a [Measurer]
// that returns the bounding box of a string; [Monospace] is an approximation
// good enough for SVG output and tests.
package text

import (
	"strings"
	"unicode/utf8"
)

// Size is the bounding box of a measured string in pixels.
type Size struct {
	Width, Height float64
}

// Measurer returns the bounding box of s. Multi-line strings are separated
// by '\n'.
type Measurer interface {
	Measure(s string) Size
}

// MeasurerFunc adapts a function to Measurer.
type MeasurerFunc func(s string) Size

func (f MeasurerFunc) Measure(s string) Size { return f(s) }

const (
	charWidthRatio  = 0.55
	lineHeightRatio = 1.2
	defaultFontSize = 12.0
)

// Monospace approximates text metrics from the font size, assuming every
// glyph has the same advance.
type Monospace struct {
	FontSize float64
	// Padding is added on each side of the measured box.
	Padding float64
}

// NewMonospace returns a monospace measurer for the given font size. A
// non-positive size selects the 12px default.
func NewMonospace(fontSize float64) Monospace {
	if fontSize <= 0 {
		fontSize = defaultFontSize
	}
	return Monospace{FontSize: fontSize}
}

func (m Monospace) Measure(s string) Size {
	size := m.FontSize
	if size <= 0 {
		size = defaultFontSize
	}
	lines := strings.Split(s, "\n")
	widest := 0
	for _, l := range lines {
		widest = max(widest, utf8.RuneCountInString(l))
	}
	return Size{
		Width:  float64(widest)*size*charWidthRatio + 2*m.Padding,
		Height: float64(len(lines))*size*lineHeightRatio + 2*m.Padding,
	}
}

// LineHeight returns the height of a single line of text.
func (m Monospace) LineHeight() float64 { return m.Measure("").Height }

// MaxWidth returns the widest of the measured strings.
func MaxWidth(m Measurer, labels []string) float64 {
	w := 0.0
	for _, l := range labels {
		w = max(w, m.Measure(l).Width)
	}
	return w
}

// MaxHeight returns the tallest of the measured strings.
func MaxHeight(m Measurer, labels []string) float64 {
	h := 0.0
	for _, l := range labels {
		h = max(h, m.Measure(l).Height)
	}
	return h
}
