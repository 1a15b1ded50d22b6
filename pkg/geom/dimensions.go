package geom

import "math"

// Dimensions describe the horizontal geometry shared by every layer of a
// chart. EntryWidth is the width one entry occupies (a column group, a candle
// body, a line point) and Margin the gap to the next entry; together they form
// the segment width. Paddings are added before the first and after the last
// segment and do not scale with zoom.
type Dimensions struct {
	EntryWidth   float64
	Margin       float64
	StartPadding float64
	EndPadding   float64
}

// SegmentWidth returns the horizontal space allotted to one X step.
func (d Dimensions) SegmentWidth() float64 { return d.EntryWidth + d.Margin }

// Max returns the element-wise maximum of d and other.
func (d Dimensions) Max(other Dimensions) Dimensions {
	return Dimensions{
		EntryWidth:   max(d.EntryWidth, other.EntryWidth),
		Margin:       max(d.Margin, other.Margin),
		StartPadding: max(d.StartPadding, other.StartPadding),
		EndPadding:   max(d.EndPadding, other.EndPadding),
	}
}

// Scaled returns the dimensions with the scalable parts multiplied by zoom.
func (d Dimensions) Scaled(zoom float64) Dimensions {
	d.EntryWidth *= zoom
	d.Margin *= zoom
	return d
}

// SegmentCount returns how many X steps the range spans, counting both ends.
func SegmentCount(x Range, xStep float64) float64 {
	if x.IsEmpty() || xStep <= 0 {
		return 0
	}
	return math.Round(x.Length()/xStep) + 1
}

// ScalableWidth returns the width of all segments, excluding paddings.
func (d Dimensions) ScalableWidth(x Range, xStep float64) float64 {
	return SegmentCount(x, xStep) * d.SegmentWidth()
}

// ContentWidth returns the full plotted width, paddings included.
func (d Dimensions) ContentWidth(x Range, xStep float64) float64 {
	if SegmentCount(x, xStep) == 0 {
		return 0
	}
	return d.ScalableWidth(x, xStep) + d.StartPadding + d.EndPadding
}
