// Package ranges folds a chart model into the numeric ranges every other
// layout step consumes: the global X range, the X step between entries, and
// one Y range per vertical axis position.
//
// An empty model aggregates to a result with Empty set. Callers skip drawing
// in that case; it is not an error.
package ranges

import (
	"math"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/floats"

	errs "github.com/matzehuels/cartesian/pkg/errors"
	"github.com/matzehuels/cartesian/pkg/geom"
	"github.com/matzehuels/cartesian/pkg/model"
)

// gcdTolerance bounds the remainder treated as zero when deriving the X step.
const gcdTolerance = 1e-9

// Ranges is the aggregated value space of a model.
type Ranges struct {
	X     geom.Range
	XStep float64
	Y     map[geom.Position]geom.Range
	Empty bool
}

// Override pins individual bounds of one dataset's ranges. Nil fields keep
// the aggregated value.
//
// A single pinned bound that lands beyond the opposite data bound wins: the
// opposite bound moves onto it and the range collapses to that value.
type Override struct {
	MinX, MaxX *float64
	MinY, MaxY *float64
}

// Validate rejects non-finite bounds and pairs pinned out of order.
func (o Override) Validate() error {
	for _, b := range []struct {
		name string
		v    *float64
	}{{"min x", o.MinX}, {"max x", o.MaxX}, {"min y", o.MinY}, {"max y", o.MaxY}} {
		if b.v == nil {
			continue
		}
		if err := errs.ValidateFinite("override "+b.name, *b.v); err != nil {
			return err
		}
	}
	if o.MinX != nil && o.MaxX != nil {
		if err := errs.ValidateRange(*o.MinX, *o.MaxX); err != nil {
			return errs.Wrap(errs.ErrCodeInvalidConfig, err, "override x")
		}
	}
	if o.MinY != nil && o.MaxY != nil {
		if err := errs.ValidateRange(*o.MinY, *o.MaxY); err != nil {
			return errs.Wrap(errs.ErrCodeInvalidConfig, err, "override y")
		}
	}
	return nil
}

func (o Override) apply(x, y geom.Range) (geom.Range, geom.Range) {
	return pin(x, o.MinX, o.MaxX), pin(y, o.MinY, o.MaxY)
}

func pin(r geom.Range, low, high *float64) geom.Range {
	if low != nil {
		r.Min = *low
		if high == nil && r.Max < r.Min {
			r.Max = r.Min
		}
	}
	if high != nil {
		r.Max = *high
		if low == nil && r.Min > r.Max {
			r.Min = r.Max
		}
	}
	return r
}

// Aggregate folds every entry of m into ranges.
func Aggregate(m *model.Model) Ranges {
	return AggregateWith(m, nil)
}

// AggregateWith is like Aggregate but applies per-kind overrides to each
// dataset's ranges before they are combined.
func AggregateWith(m *model.Model, overrides map[model.Kind]Override) Ranges {
	out := Ranges{X: geom.EmptyRange, Y: make(map[geom.Position]geom.Range)}
	if m.IsEmpty() {
		out.Empty = true
		out.XStep = 1
		return out
	}

	for _, d := range m.Datasets {
		if d.IsEmpty() {
			continue
		}
		x, y := datasetRanges(d)
		if o, ok := overrides[d.Kind]; ok {
			x, y = o.apply(x, y)
		}
		out.X = out.X.Union(x)
		prev, ok := out.Y[d.Axis]
		if !ok {
			prev = geom.EmptyRange
		}
		out.Y[d.Axis] = prev.Union(y)
	}
	out.XStep = XStep(m.Xs())
	return out
}

// YRange returns the Y range of the axis at p. A position without datasets
// shares the union of all Y ranges, so a secondary axis mirrors the primary.
func (r Ranges) YRange(p geom.Position) geom.Range {
	if y, ok := r.Y[p]; ok {
		return y
	}
	all := geom.EmptyRange
	for _, y := range r.Y {
		all = all.Union(y)
	}
	return all
}

// XStep returns the greatest common step between consecutive distinct xs,
// which must be sorted ascending. It returns 1 for fewer than two values.
func XStep(xs []float64) float64 {
	if len(xs) < 2 {
		return 1
	}
	step := 0.0
	for i := 1; i < len(xs); i++ {
		d := xs[i] - xs[i-1]
		if d <= gcdTolerance {
			continue
		}
		if step == 0 {
			step = d
			continue
		}
		step = gcd(step, d)
	}
	if step <= gcdTolerance {
		return 1
	}
	return step
}

func gcd(a, b float64) float64 {
	if a < b {
		a, b = b, a
	}
	for b > gcdTolerance {
		r := math.Mod(a, b)
		if b-r < gcdTolerance {
			r = 0
		}
		a, b = b, r
	}
	return a
}

func datasetRanges(d model.Dataset) (x, y geom.Range) {
	x = geom.EmptyRange
	y = geom.EmptyRange
	switch d.Kind {
	case model.Candlestick:
		for _, c := range d.Candles {
			x = x.Include(c.X)
			y = y.Include(c.Low).Include(c.High)
		}
		return x, y
	case model.Column:
		y = y.Include(0)
		if d.Merge == model.Stacked {
			return stackedRanges(d, x, y)
		}
	}
	for _, s := range d.Series {
		if len(s.Entries) == 0 {
			continue
		}
		xs := lo.Map(s.Entries, func(e model.Entry, _ int) float64 { return e.X })
		ys := lo.Map(s.Entries, func(e model.Entry, _ int) float64 { return e.Y })
		x = x.Union(geom.Range{Min: floats.Min(xs), Max: floats.Max(xs)})
		y = y.Union(geom.Range{Min: floats.Min(ys), Max: floats.Max(ys)})
	}
	return x, y
}

// stackedRanges sums positive and negative values per X separately; the
// stack extends from the most negative sum to the most positive one.
func stackedRanges(d model.Dataset, x, y geom.Range) (geom.Range, geom.Range) {
	pos := make(map[float64]float64)
	neg := make(map[float64]float64)
	for _, s := range d.Series {
		for _, e := range s.Entries {
			x = x.Include(e.X)
			if e.Y >= 0 {
				pos[e.X] += e.Y
			} else {
				neg[e.X] += e.Y
			}
		}
	}
	for _, v := range pos {
		y = y.Include(v)
	}
	for _, v := range neg {
		y = y.Include(v)
	}
	return x, y
}
