// Package diff animates the transition between two chart models.
//
// Datasets are matched by kind, series by index, and entries and candles by
// X value, so inserting or removing an entry never slides its neighbors.
// Entries that appear grow from zero; entries that disappear shrink to zero.
// A dataset whose identity changed is treated as new and grows from zero as
// a whole.
//
// [Interpolate] computes one frame. [Animator] runs a whole transition frame
// by frame and keeps the matched values of the running transition, so each
// frame costs only the arithmetic.
package diff

import (
	"math"

	"github.com/samber/lo"

	"github.com/matzehuels/cartesian/pkg/model"
)

// Interpolate returns the model at fraction f of the transition from old to
// next. f <= 0 yields old with zeros for entries it lacks; f >= 1 yields
// next itself. Either model may be nil.
func Interpolate(old, next *model.Model, f float64) *model.Model {
	if f >= 1 {
		return next
	}
	return newPlan(old, next).at(f)
}

type entryPlan struct {
	x, from, to float64
}

type seriesPlan struct {
	name    string
	entries []entryPlan
}

type candlePlan struct {
	x        float64
	from, to model.Candle
}

type datasetPlan struct {
	base    model.Dataset
	series  []seriesPlan
	candles []candlePlan
}

// plan holds the matched values of one transition.
type plan struct {
	next     *model.Model
	datasets []datasetPlan
}

func newPlan(old, next *model.Model) *plan {
	p := &plan{next: next}
	var nextSets []model.Dataset
	if next != nil {
		nextSets = next.Datasets
	}
	for _, nd := range nextSets {
		od, ok := old.Dataset(nd.Kind)
		if !ok || od.ID != nd.ID {
			od = model.Dataset{Kind: nd.Kind}
		}
		p.datasets = append(p.datasets, matchDataset(od, nd))
	}
	if old == nil {
		return p
	}
	for _, od := range old.Datasets {
		if _, ok := next.Dataset(od.Kind); ok {
			continue
		}
		// Removed datasets fade out against an empty dataset.
		removed := od
		removed.Series, removed.Candles = nil, nil
		p.datasets = append(p.datasets, matchDataset(od, removed))
	}
	return p
}

func matchDataset(od, nd model.Dataset) datasetPlan {
	base := nd
	base.Series, base.Candles = nil, nil
	dp := datasetPlan{base: base}

	n := max(len(od.Series), len(nd.Series))
	for i := range n {
		var was, now model.Series
		if i < len(od.Series) {
			was = od.Series[i]
		}
		if i < len(nd.Series) {
			now = nd.Series[i]
		}
		name := now.Name
		if i >= len(nd.Series) {
			name = was.Name
		}
		dp.series = append(dp.series, seriesPlan{name: name, entries: matchEntries(was.Entries, now.Entries)})
	}
	dp.candles = matchCandles(od.Candles, nd.Candles)
	return dp
}

// matchEntries merges two X-sorted entry lists, pairing equal X values.
func matchEntries(old, next []model.Entry) []entryPlan {
	out := make([]entryPlan, 0, max(len(old), len(next)))
	i, j := 0, 0
	for i < len(old) || j < len(next) {
		switch {
		case j == len(next) || i < len(old) && old[i].X < next[j].X:
			out = append(out, entryPlan{x: old[i].X, from: old[i].Y})
			i++
		case i == len(old) || next[j].X < old[i].X:
			out = append(out, entryPlan{x: next[j].X, to: next[j].Y})
			j++
		default:
			out = append(out, entryPlan{x: next[j].X, from: old[i].Y, to: next[j].Y})
			i++
			j++
		}
	}
	return out
}

func matchCandles(old, next []model.Candle) []candlePlan {
	out := make([]candlePlan, 0, max(len(old), len(next)))
	i, j := 0, 0
	for i < len(old) || j < len(next) {
		switch {
		case j == len(next) || i < len(old) && old[i].X < next[j].X:
			out = append(out, candlePlan{x: old[i].X, from: old[i], to: model.Candle{X: old[i].X}})
			i++
		case i == len(old) || next[j].X < old[i].X:
			out = append(out, candlePlan{x: next[j].X, from: model.Candle{X: next[j].X}, to: next[j]})
			j++
		default:
			out = append(out, candlePlan{x: next[j].X, from: old[i], to: next[j]})
			i++
			j++
		}
	}
	return out
}

// at returns the model at fraction f. NaN counts as 0.
func (p *plan) at(f float64) *model.Model {
	if f >= 1 {
		return p.next
	}
	if f < 0 || math.IsNaN(f) {
		f = 0
	}
	out := &model.Model{}
	if p.next != nil {
		out.ID, out.Extras = p.next.ID, p.next.Extras
	}
	out.Datasets = lo.Map(p.datasets, func(dp datasetPlan, _ int) model.Dataset {
		d := dp.base
		if len(dp.series) > 0 {
			d.Series = lo.Map(dp.series, func(sp seriesPlan, _ int) model.Series {
				return model.Series{Name: sp.name, Entries: lo.Map(sp.entries, func(e entryPlan, _ int) model.Entry {
					return model.Entry{X: e.x, Y: lerp(e.from, e.to, f)}
				})}
			})
		}
		if len(dp.candles) > 0 {
			d.Candles = lo.Map(dp.candles, func(c candlePlan, _ int) model.Candle {
				return model.Candle{
					X:     c.x,
					Open:  lerp(c.from.Open, c.to.Open, f),
					Close: lerp(c.from.Close, c.to.Close, f),
					Low:   lerp(c.from.Low, c.to.Low, f),
					High:  lerp(c.from.High, c.to.High, f),
				}
			})
		}
		return d
	})
	return out
}

func lerp(a, b, f float64) float64 { return a + (b-a)*f }
