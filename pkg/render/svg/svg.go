// Package svg implements a chart canvas that records drawing calls as an
// SVG document.
//
//	cv := svg.New(800, 400, svg.WithBackground("#fff"))
//	c.Draw(ctx, cv)
//	os.WriteFile("chart.svg", cv.Bytes(), 0644)
package svg

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/cartesian/pkg/geom"
	"github.com/matzehuels/cartesian/pkg/layout"
)

// DefaultFont is the font family of text elements.
const DefaultFont = "ui-monospace, SFMono-Regular, Menlo, monospace"

type Option func(*Canvas)

func WithBackground(color string) Option { return func(c *Canvas) { c.background = color } }
func WithFont(family string) Option      { return func(c *Canvas) { c.font = family } }

// WithTitle adds a <title> element, which screen readers announce.
func WithTitle(title string) Option { return func(c *Canvas) { c.title = title } }

// Canvas is an SVG drawing surface. The zero value is not usable; call New.
type Canvas struct {
	width, height float64
	background    string
	font          string
	title         string
	body          bytes.Buffer
}

// New returns an empty canvas of the given size in pixels.
func New(width, height float64, opts ...Option) *Canvas {
	c := &Canvas{width: width, height: height, font: DefaultFont}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Canvas) Rect(r geom.Rect, s layout.Style) {
	fmt.Fprintf(&c.body, `  <rect x="%s" y="%s" width="%s" height="%s"%s/>`+"\n",
		num(r.Left), num(r.Top), num(r.Width()), num(r.Height()), attrs(s))
}

func (c *Canvas) Line(a, b geom.Point, s layout.Style) {
	fmt.Fprintf(&c.body, `  <line x1="%s" y1="%s" x2="%s" y2="%s"%s/>`+"\n",
		num(a.X), num(a.Y), num(b.X), num(b.Y), attrs(s))
}

func (c *Canvas) Polyline(points []geom.Point, s layout.Style) {
	if len(points) == 0 {
		return
	}
	coords := make([]string, len(points))
	for i, p := range points {
		coords[i] = num(p.X) + "," + num(p.Y)
	}
	fmt.Fprintf(&c.body, `  <polyline points="%s"%s/>`+"\n", strings.Join(coords, " "), attrs(s))
}

func (c *Canvas) Text(at geom.Point, label string, anchor layout.Anchor, s layout.Style) {
	if label == "" {
		return
	}
	if s.Fill == "" {
		s.Fill = "#000"
	}
	fmt.Fprintf(&c.body, `  <text x="%s" y="%s" text-anchor="%s" dominant-baseline="middle"%s>%s</text>`+"\n",
		num(at.X), num(at.Y), anchorName(anchor), attrs(s), escape(label))
}

// Bytes returns the complete SVG document.
func (c *Canvas) Bytes() []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%.0f" height="%.0f" font-family="%s">`+"\n",
		num(c.width), num(c.height), c.width, c.height, escape(c.font))
	if c.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", escape(c.title))
	}
	if c.background != "" {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", escape(c.background))
	}
	buf.Write(c.body.Bytes())
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// WriteTo writes the document to w.
func (c *Canvas) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(c.Bytes())
	return int64(n), err
}

var _ layout.Canvas = (*Canvas)(nil)

func attrs(s layout.Style) string {
	var b strings.Builder
	if s.Fill != "" {
		fmt.Fprintf(&b, ` fill="%s"`, escape(s.Fill))
	} else {
		b.WriteString(` fill="none"`)
	}
	if s.Stroke != "" {
		fmt.Fprintf(&b, ` stroke="%s"`, escape(s.Stroke))
		if s.StrokeWidth > 0 {
			fmt.Fprintf(&b, ` stroke-width="%s"`, num(s.StrokeWidth))
		}
		if s.Dashed {
			b.WriteString(` stroke-dasharray="4 3"`)
		}
	}
	if s.Opacity > 0 && s.Opacity < 1 {
		fmt.Fprintf(&b, ` opacity="%s"`, num(s.Opacity))
	}
	if s.FontSize > 0 {
		fmt.Fprintf(&b, ` font-size="%s"`, num(s.FontSize))
	}
	return b.String()
}

func anchorName(a layout.Anchor) string {
	switch a {
	case layout.AnchorMiddle:
		return "middle"
	case layout.AnchorEnd:
		return "end"
	}
	return "start"
}

// num prints v with at most two fraction digits and no trailing zeros.
func num(v float64) string {
	r := math.Round(v*100) / 100
	if r == 0 {
		r = 0
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

func escape(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
