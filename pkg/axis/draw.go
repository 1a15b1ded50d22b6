package axis

import (
	"github.com/matzehuels/cartesian/pkg/geom"
	"github.com/matzehuels/cartesian/pkg/layout"
	"github.com/matzehuels/cartesian/pkg/text"
)

// Draw paints the axis line, ticks, labels and guidelines.
func (a *Axis) Draw(dc *layout.DrawContext) {
	if dc.Result.Empty {
		return
	}
	if a.Position.IsVertical() {
		a.drawVertical(dc)
		return
	}
	a.drawHorizontal(dc)
}

func (a *Axis) drawVertical(dc *layout.DrawContext) {
	content := dc.Result.Content
	rtl := dc.Result.RTL
	m := dc.Measurer
	if m == nil {
		m = text.NewMonospace(0)
	}

	r := dc.Transform.YRange(a.Position)
	lh := a.labelHeight(m, r)
	h := content.Height()
	x := a.baseline(content, rtl)
	dir := a.outward(rtl)

	dc.Canvas.Line(geom.Point{X: x, Y: content.Top}, geom.Point{X: x, Y: content.Bottom}, a.LineStyle)

	for _, v := range a.placer().LineValues(r, h, lh) {
		y := dc.Transform.CanvasY(a.Position, v)
		dc.Canvas.Line(geom.Point{X: x, Y: y}, geom.Point{X: x + dir*a.TickLength, Y: y}, a.LineStyle)
		if a.Guidelines {
			dc.Canvas.Line(geom.Point{X: content.Left, Y: y}, geom.Point{X: content.Right, Y: y}, a.GuidelineStyle)
		}
	}

	anchor := layout.AnchorStart
	if dir < 0 {
		anchor = layout.AnchorEnd
	}
	labelX := x + dir*(a.TickLength+a.LabelPadding)
	f := a.formatter()
	for _, v := range a.placer().LabelValues(r, h, lh) {
		y := dc.Transform.CanvasY(a.Position, v)
		dc.Canvas.Text(geom.Point{X: labelX, Y: y + lh/4}, f.Format(v), anchor, a.LabelStyle)
	}

	if a.Title != "" {
		tx := dc.Result.Bounds.Left + m.Measure(a.Title).Height/2
		if dir > 0 {
			tx = dc.Result.Bounds.Right - m.Measure(a.Title).Height/2
		}
		dc.Canvas.Text(geom.Point{X: tx, Y: content.CenterY()}, a.Title, layout.AnchorMiddle, a.LabelStyle)
	}
}

func (a *Axis) drawHorizontal(dc *layout.DrawContext) {
	content := dc.Result.Content
	m := dc.Measurer
	if m == nil {
		m = text.NewMonospace(0)
	}
	tr := dc.Transform
	y := a.baseline(content, dc.Result.RTL)
	dir := a.outward(dc.Result.RTL)

	dc.Canvas.Line(geom.Point{X: content.Left, Y: y}, geom.Point{X: content.Right, Y: y}, a.LineStyle)

	f := a.formatter()
	visible := tr.VisibleX()
	labelW := text.MaxWidth(m, a.format([]float64{tr.X.Min, tr.X.Max}))
	seg := tr.Dimensions.SegmentWidth()

	for _, v := range a.Aligned.LineValues(tr.X, tr.XStep, visible, seg, labelW) {
		x := tr.CanvasX(v)
		if !content.ContainsX(x) {
			continue
		}
		dc.Canvas.Line(geom.Point{X: x, Y: y}, geom.Point{X: x, Y: y + dir*a.TickLength}, a.LineStyle)
		if a.Guidelines {
			dc.Canvas.Line(geom.Point{X: x, Y: content.Top}, geom.Point{X: x, Y: content.Bottom}, a.GuidelineStyle)
		}
	}

	lh := m.Measure("0").Height
	labelY := y + dir*(a.TickLength+a.LabelPadding)
	if dir > 0 {
		labelY += lh * 0.75
	}
	for _, v := range a.Aligned.LabelValues(tr.X, tr.XStep, visible, seg, labelW) {
		x := tr.CanvasX(v)
		if !content.ContainsX(x) {
			continue
		}
		dc.Canvas.Text(geom.Point{X: x, Y: labelY}, f.Format(v), layout.AnchorMiddle, a.LabelStyle)
	}

	if a.Title != "" {
		ty := dc.Result.Bounds.Bottom - a.LabelPadding
		if dir < 0 {
			ty = dc.Result.Bounds.Top + m.Measure(a.Title).Height
		}
		dc.Canvas.Text(geom.Point{X: content.CenterX(), Y: ty}, a.Title, layout.AnchorMiddle, a.LabelStyle)
	}
}
