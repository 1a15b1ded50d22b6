package svg

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/cartesian/pkg/geom"
	"github.com/matzehuels/cartesian/pkg/layout"
)

func TestCanvasElements(t *testing.T) {
	c := New(200, 100, WithBackground("#fff"), WithTitle("Sales & costs"))
	c.Rect(geom.RectOf(10, 20, 30, 40), layout.Style{Fill: "#4e79a7"})
	c.Line(geom.Point{X: 0, Y: 0.333}, geom.Point{X: 5, Y: 5}, layout.Style{Stroke: "#555", StrokeWidth: 1, Dashed: true})
	c.Polyline([]geom.Point{{X: 1, Y: 2}, {X: 3, Y: 4}}, layout.Style{Stroke: "red", StrokeWidth: 2})
	c.Polyline(nil, layout.Style{})
	c.Text(geom.Point{X: 50, Y: 60}, "a < b", layout.AnchorEnd, layout.Style{FontSize: 11})
	c.Text(geom.Point{}, "", layout.AnchorStart, layout.Style{})

	out := string(c.Bytes())
	for _, want := range []string{
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 200 100" width="200" height="100"`,
		`<title>Sales &amp; costs</title>`,
		`<rect width="100%" height="100%" fill="#fff"/>`,
		`<rect x="10" y="20" width="30" height="40" fill="#4e79a7"/>`,
		`<line x1="0" y1="0.33" x2="5" y2="5" fill="none" stroke="#555" stroke-width="1" stroke-dasharray="4 3"/>`,
		`<polyline points="1,2 3,4" fill="none" stroke="red" stroke-width="2"/>`,
		`<text x="50" y="60" text-anchor="end" dominant-baseline="middle" fill="#000" font-size="11">a &lt; b</text>`,
		"</svg>\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %s in\n%s", want, out)
		}
	}
	if n := strings.Count(out, "<polyline"); n != 1 {
		t.Errorf("empty polyline should be skipped, got %d", n)
	}
	if n := strings.Count(out, "<text"); n != 1 {
		t.Errorf("empty text should be skipped, got %d", n)
	}
}

func TestNum(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{-0.001, "0"},
		{1.005, "1"},
		{2.5, "2.5"},
		{-3.456, "-3.46"},
		{100, "100"},
	}
	for _, tt := range tests {
		if got := num(tt.in); got != tt.want {
			t.Errorf("num(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWriteTo(t *testing.T) {
	c := New(10, 10)
	var buf bytes.Buffer
	n, err := c.WriteTo(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if n != int64(buf.Len()) || !bytes.Equal(buf.Bytes(), c.Bytes()) {
		t.Error("WriteTo should write the document")
	}
}
