package axis

import (
	"math"

	"github.com/aclements/go-moremath/scale"

	errs "github.com/matzehuels/cartesian/pkg/errors"
	"github.com/matzehuels/cartesian/pkg/geom"
)

// Auto steps are picked from a 1-2-5 ladder. Level ladderOrigin is step 1;
// each level up multiplies the step by 2, 2.5, 2 in turn.
const (
	ladderOrigin = 61
	ladderLevels = 2 * ladderOrigin
)

var ladderMantissas = [3]float64{1, 2, 5}

func ladderStep(level int) float64 {
	l := level - ladderOrigin
	exp := int(math.Floor(float64(l) / 3))
	return ladderMantissas[l-3*exp] * math.Pow10(exp)
}

// StepOptions configures a StepPlacer.
type StepOptions struct {
	// Step is the requested distance between labels. Nil selects a step from
	// the 1-2-5 ladder. The placer uses the smallest multiple of Step that
	// keeps labels at least one label height apart.
	Step *float64

	// ShiftTopLines adds an unlabeled guideline at the range maximum.
	ShiftTopLines bool

	// TopLineThreshold is the pixel gap above the topmost label beyond which
	// the maximum guideline is drawn. Zero selects DefaultTopLineThreshold.
	TopLineThreshold float64
}

// StepPlacer places labels a fixed numeric step apart.
//
// If the range does not straddle zero, labels sit at min + k*step. Otherwise
// both halves are placed from zero outwards and zero is labeled once.
type StepPlacer struct {
	step          float64
	auto          bool
	shiftTopLines bool
	threshold     float64
}

// NewStepPlacer validates opts and returns a step placer.
func NewStepPlacer(opts StepOptions) (*StepPlacer, error) {
	p := &StepPlacer{auto: opts.Step == nil, shiftTopLines: opts.ShiftTopLines}
	if opts.Step != nil {
		if err := errs.ValidateStep(*opts.Step); err != nil {
			return nil, err
		}
		p.step = *opts.Step
	}
	th, err := validateTopLine(opts.ShiftTopLines, opts.TopLineThreshold)
	if err != nil {
		return nil, err
	}
	p.threshold = th
	return p, nil
}

// AutoStep returns a step placer choosing its own step.
func AutoStep() *StepPlacer {
	p, _ := NewStepPlacer(StepOptions{})
	return p
}

func (p *StepPlacer) LabelValues(r geom.Range, height, maxLabelHeight float64) []float64 {
	r = r.Usable()
	if trivial(height, maxLabelHeight) {
		return []float64{anchor(r)}
	}
	return p.values(r, p.Step(r, height, maxLabelHeight))
}

func (p *StepPlacer) LineValues(r geom.Range, height, maxLabelHeight float64) []float64 {
	labels := p.LabelValues(r, height, maxLabelHeight)
	if !p.shiftTopLines {
		return labels
	}
	return withTopLine(labels, r.Usable(), height, p.threshold)
}

func (p *StepPlacer) MeasurementValues(r geom.Range) []float64 { return measurementValues(r) }

// Step returns the step used for r. r must have a positive length.
func (p *StepPlacer) Step(r geom.Range, height, maxLabelHeight float64) float64 {
	// minStep is the smallest step keeping labels one label height apart.
	minStep := maxLabelHeight * r.Length() / height * (1 - 1e-9)

	if !p.auto {
		k := math.Max(1, math.Ceil(minStep/p.step))
		for k*p.step < minStep {
			k++
		}
		return k * p.step
	}

	first := firstLadderLevel(minStep)
	if first > ladderLevels {
		return r.Length()
	}
	t := stepTicker{p: p, r: r, at: ladderStep}
	opts := scale.TickOptions{
		Max:      int(height/maxLabelHeight) + 1,
		MinLevel: first,
		MaxLevel: ladderLevels,
	}
	base, ok := opts.FindLevel(t, first)
	if !ok {
		return r.Length()
	}

	// Prefer a coarser step that lands exactly on the range extremes, as long
	// as it does not exceed the larger extreme.
	extent := math.Max(math.Abs(r.Min), math.Abs(r.Max))
	if !r.StraddlesZero() {
		extent = r.Length()
	}
	if reachesExtremes(t.values(base), r) {
		return ladderStep(base)
	}
	for level := base + 1; level <= ladderLevels && ladderStep(level) <= extent; level++ {
		if reachesExtremes(t.values(level), r) {
			return ladderStep(level)
		}
	}
	return ladderStep(base)
}

// firstLadderLevel returns the lowest ladder level whose step is at least
// minStep, or a level above ladderLevels when none is.
func firstLadderLevel(minStep float64) int {
	if minStep <= ladderStep(1) {
		return 1
	}
	level := ladderOrigin + int(math.Floor(3*math.Log10(minStep))) - 1
	level = min(max(level, 1), ladderLevels+1)
	for level > 1 && ladderStep(level-1) >= minStep {
		level--
	}
	for level <= ladderLevels && ladderStep(level) < minStep {
		level++
	}
	return level
}

// stepTicker exposes the labels of a step placer at each ladder level as a
// scale.Ticker. Counts shrink as the level grows.
type stepTicker struct {
	p  *StepPlacer
	r  geom.Range
	at func(level int) float64
}

func (t stepTicker) CountTicks(level int) int {
	step := t.at(level)
	if t.r.StraddlesZero() {
		return boundedCount(t.r.Max/step) + boundedCount(-t.r.Min/step) + 1
	}
	return boundedCount(t.r.Length()/step) + 1
}

func (t stepTicker) TicksAtLevel(level int) interface{} { return t.values(level) }

func (t stepTicker) values(level int) []float64 { return t.p.values(t.r, t.at(level)) }

var _ scale.Ticker = stepTicker{}

// values generates the labels for step. Each value is computed from its
// index, never accumulated, and snapped to the step's precision.
func (p *StepPlacer) values(r geom.Range, step float64) []float64 {
	eps := 1e-9 * math.Max(1, r.Length())
	if !r.StraddlesZero() {
		digits := digitsFor(step, r.Min)
		n := int(math.Floor(r.Length()/step + 1e-9))
		out := make([]float64, 0, n+1)
		for k := 0; k <= n; k++ {
			v := snap(r.Min+float64(k)*step, digits)
			if math.Abs(v-r.Max) < eps {
				v = r.Max
			}
			out = append(out, v)
		}
		return out
	}

	digits := digitsFor(step)
	neg := int(math.Floor(-r.Min/step + 1e-9))
	pos := int(math.Floor(r.Max/step + 1e-9))
	out := make([]float64, 0, neg+pos+1)
	for k := neg; k >= 1; k-- {
		out = append(out, snap(-float64(k)*step, digits))
	}
	out = append(out, 0)
	for k := 1; k <= pos; k++ {
		out = append(out, snap(float64(k)*step, digits))
	}
	return out
}

// boundedCount floors n, saturating so that tiny steps cannot overflow int.
func boundedCount(n float64) int {
	const limit = 1 << 40
	if n >= limit {
		return limit
	}
	return int(math.Floor(n + 1e-9))
}

func reachesExtremes(ts []float64, r geom.Range) bool {
	if len(ts) < 2 {
		return false
	}
	eps := 1e-9 * math.Max(1, r.Length())
	return math.Abs(ts[0]-r.Min) < eps && math.Abs(ts[len(ts)-1]-r.Max) < eps
}
