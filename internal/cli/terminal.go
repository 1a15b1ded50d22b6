package cli

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/cartesian/pkg/geom"
	"github.com/matzehuels/cartesian/pkg/layout"
	"github.com/matzehuels/cartesian/pkg/text"
)

// Terminal cells in canvas pixels. They match text.NewMonospace(termFontSize),
// so measured labels cover whole cells.
const (
	termFontSize = 12
	cellWidth    = termFontSize * 0.55
	cellHeight   = termFontSize * 1.2
)

// termMeasurer sizes labels for the terminal canvas.
var termMeasurer = text.NewMonospace(termFontSize)

type cell struct {
	r     rune
	color string
}

// cellCanvas rasterizes chart drawing calls onto a grid of terminal cells.
type cellCanvas struct {
	cols, rows int
	cells      []cell
}

func newCellCanvas(cols, rows int) *cellCanvas {
	cols, rows = max(cols, 0), max(rows, 0)
	cells := make([]cell, cols*rows)
	for i := range cells {
		cells[i].r = ' '
	}
	return &cellCanvas{cols: cols, rows: rows, cells: cells}
}

// bounds returns the canvas rectangle in pixels.
func (c *cellCanvas) bounds() geom.Rect {
	return geom.RectOf(0, 0, float64(c.cols)*cellWidth, float64(c.rows)*cellHeight)
}

func (c *cellCanvas) cellAt(p geom.Point) (col, row int) {
	return int(math.Floor(p.X / cellWidth)), int(math.Floor(p.Y / cellHeight))
}

func (c *cellCanvas) set(col, row int, r rune, color string) {
	if col < 0 || row < 0 || col >= c.cols || row >= c.rows {
		return
	}
	c.cells[row*c.cols+col] = cell{r: r, color: color}
}

// Rect fills every cell whose center lies inside r. A rect thinner than a
// cell still fills the cell under its center. Unfilled rects are skipped.
func (c *cellCanvas) Rect(r geom.Rect, s layout.Style) {
	if s.Fill == "" {
		return
	}
	c0, c1 := coverage(r.Left, r.Right, cellWidth)
	r0, r1 := coverage(r.Top, r.Bottom, cellHeight)
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			c.set(col, row, '█', s.Fill)
		}
	}
}

// coverage returns the cells whose centers lie in [lo, hi], or the cell at
// the midpoint when there is none.
func coverage(lo, hi, size float64) (first, last int) {
	first = int(math.Ceil(lo/size - 0.5))
	last = int(math.Floor(hi/size - 0.5))
	if last < first {
		first = int(math.Floor((lo + hi) / 2 / size))
		last = first
	}
	return first, last
}

// Line draws box-drawing runs for axis-aligned lines and dots otherwise.
func (c *cellCanvas) Line(a, b geom.Point, s layout.Style) {
	ca, ra := c.cellAt(a)
	cb, rb := c.cellAt(b)
	switch {
	case ra == rb:
		r := '─'
		if s.Dashed {
			r = '┄'
		}
		for col := min(ca, cb); col <= max(ca, cb); col++ {
			c.set(col, ra, r, s.Stroke)
		}
	case ca == cb:
		r := '│'
		if s.Dashed {
			r = '┆'
		}
		for row := min(ra, rb); row <= max(ra, rb); row++ {
			c.set(ca, row, r, s.Stroke)
		}
	default:
		c.bresenham(ca, ra, cb, rb, '•', s.Stroke)
	}
}

func (c *cellCanvas) bresenham(x0, y0, x1, y1 int, r rune, color string) {
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := sign(x1-x0), sign(y1-y0)
	e := dx + dy
	for {
		c.set(x0, y0, r, color)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func (c *cellCanvas) Polyline(points []geom.Point, s layout.Style) {
	for i := 1; i < len(points); i++ {
		a, b := points[i-1], points[i]
		ca, ra := c.cellAt(a)
		cb, rb := c.cellAt(b)
		c.bresenham(ca, ra, cb, rb, '•', s.Stroke)
	}
}

// Text writes label on the row of at, aligned by anchor.
func (c *cellCanvas) Text(at geom.Point, label string, anchor layout.Anchor, s layout.Style) {
	col, row := c.cellAt(at)
	n := utf8.RuneCountInString(label)
	switch anchor {
	case layout.AnchorMiddle:
		col -= n / 2
	case layout.AnchorEnd:
		col -= n
	}
	for i, r := range []rune(label) {
		c.set(col+i, row, r, s.Fill)
	}
}

// String renders the grid, coloring runs of cells that share a hex color.
func (c *cellCanvas) String() string {
	var b strings.Builder
	for row := 0; row < c.rows; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		line := c.cells[row*c.cols : (row+1)*c.cols]
		for i := 0; i < len(line); {
			j := i
			var run strings.Builder
			for j < len(line) && line[j].color == line[i].color {
				run.WriteRune(line[j].r)
				j++
			}
			b.WriteString(colorize(run.String(), line[i].color))
			i = j
		}
	}
	return b.String()
}

func colorize(s, color string) string {
	if !strings.HasPrefix(color, "#") {
		return s
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(s)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}

var _ layout.Canvas = (*cellCanvas)(nil)
