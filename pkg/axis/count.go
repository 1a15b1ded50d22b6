package axis

import (
	"math"

	"gonum.org/v1/gonum/floats"

	errs "github.com/matzehuels/cartesian/pkg/errors"
	"github.com/matzehuels/cartesian/pkg/geom"
)

// CountOptions configures a CountPlacer.
type CountOptions struct {
	// Count caps the number of labels. Nil fills the available height.
	Count *int

	ShiftTopLines    bool
	TopLineThreshold float64
}

// CountPlacer distributes labels evenly between the range extremes.
//
// When the range straddles zero, the label budget is split between the
// negative and positive halves by their share of the axis height, and zero
// is labeled once.
type CountPlacer struct {
	count         int
	shiftTopLines bool
	threshold     float64
}

// NewCountPlacer validates opts and returns a count placer.
func NewCountPlacer(opts CountOptions) (*CountPlacer, error) {
	p := &CountPlacer{count: -1, shiftTopLines: opts.ShiftTopLines}
	if opts.Count != nil {
		if err := errs.ValidateCount(*opts.Count); err != nil {
			return nil, err
		}
		p.count = *opts.Count
	}
	th, err := validateTopLine(opts.ShiftTopLines, opts.TopLineThreshold)
	if err != nil {
		return nil, err
	}
	p.threshold = th
	return p, nil
}

// FillCount returns a count placer that fills the available height.
func FillCount() *CountPlacer {
	p, _ := NewCountPlacer(CountOptions{})
	return p
}

func (p *CountPlacer) LabelValues(r geom.Range, height, maxLabelHeight float64) []float64 {
	r = r.Usable()
	if trivial(height, maxLabelHeight) {
		return []float64{anchor(r)}
	}

	intervals := p.Intervals(height, maxLabelHeight)
	if intervals == 0 {
		return []float64{anchor(r)}
	}
	if !r.StraddlesZero() {
		return floats.Span(make([]float64, intervals+1), r.Min, r.Max)
	}

	neg, pos := splitIntervals(r, intervals, height, maxLabelHeight)
	out := make([]float64, 0, neg+pos+1)
	if neg > 0 {
		out = append(out, floats.Span(make([]float64, neg+1), r.Min, 0)[:neg]...)
	}
	out = append(out, 0)
	if pos > 0 {
		out = append(out, floats.Span(make([]float64, pos+1), 0, r.Max)[1:]...)
	}
	return out
}

func (p *CountPlacer) LineValues(r geom.Range, height, maxLabelHeight float64) []float64 {
	labels := p.LabelValues(r, height, maxLabelHeight)
	if !p.shiftTopLines {
		return labels
	}
	return withTopLine(labels, r.Usable(), height, p.threshold)
}

func (p *CountPlacer) MeasurementValues(r geom.Range) []float64 { return measurementValues(r) }

// Intervals returns the number of gaps between labels: as many as fit at one
// label height each, capped by the requested count.
func (p *CountPlacer) Intervals(height, maxLabelHeight float64) int {
	n := int(math.Floor(height/maxLabelHeight + 1e-9))
	if p.count > 0 {
		n = min(n, p.count-1)
	}
	return max(n, 0)
}

// splitIntervals divides n intervals between the negative and positive
// halves of r in proportion to their pixel height. A leftover interval goes
// to the half whose labels would stay farthest apart with it, if any.
func splitIntervals(r geom.Range, n int, height, maxLabelHeight float64) (neg, pos int) {
	hNeg := height * -r.Min / r.Length()
	hPos := height * r.Max / r.Length()
	neg = int(math.Floor(float64(n) * -r.Min / r.Length()))
	pos = int(math.Floor(float64(n) * r.Max / r.Length()))
	if neg+pos >= n {
		return neg, pos
	}

	slackNeg := hNeg / float64(neg+1)
	slackPos := hPos / float64(pos+1)
	fitsNeg := slackNeg >= maxLabelHeight*(1-1e-9)
	fitsPos := slackPos >= maxLabelHeight*(1-1e-9)
	switch {
	case fitsNeg && fitsPos && slackNeg > slackPos:
		neg++
	case fitsPos:
		pos++
	case fitsNeg:
		neg++
	}
	return neg, pos
}
