package axis

import (
	"math"

	errs "github.com/matzehuels/cartesian/pkg/errors"
	"github.com/matzehuels/cartesian/pkg/geom"
	"github.com/matzehuels/cartesian/pkg/text"
)

// DefaultTopLineThreshold is the gap, in pixels, between the topmost label
// and the range maximum above which an unlabeled guideline is added at the
// maximum when top lines are shifted.
const DefaultTopLineThreshold = 1.0

// ItemPlacer decides which Y values of a vertical axis get a label, a tick
// and a guideline. Implementations must be deterministic: identical inputs
// always yield identical slices.
type ItemPlacer interface {
	// LabelValues returns the labeled values, ascending.
	LabelValues(r geom.Range, height, maxLabelHeight float64) []float64

	// LineValues returns the values that get a tick and a guideline. It is
	// a superset of LabelValues.
	LineValues(r geom.Range, height, maxLabelHeight float64) []float64

	// MeasurementValues returns the values whose labels size the axis. They
	// depend on the range only, so the axis width is known before its
	// height.
	MeasurementValues(r geom.Range) []float64
}

// PlaceItems validates its input and returns the label values p places for
// r on an axis height pixels tall.
func PlaceItems(r geom.Range, height, maxLabelHeight float64, p ItemPlacer) ([]float64, error) {
	if err := errs.ValidateRange(r.Min, r.Max); err != nil {
		return nil, err
	}
	if err := errs.ValidateNonNegative("axis height", height); err != nil {
		return nil, err
	}
	if err := errs.ValidateNonNegative("max label height", maxLabelHeight); err != nil {
		return nil, err
	}
	if p == nil {
		return nil, errs.New(errs.ErrCodeInvalidConfig, "item placer is required")
	}
	return p.LabelValues(r, height, maxLabelHeight), nil
}

// trivial reports whether no spacing-based placement is possible. The axis
// then carries a single label at the anchor value.
func trivial(height, maxLabelHeight float64) bool {
	return height <= 0 || maxLabelHeight <= 0
}

// anchor is the single value labeled when nothing else fits.
func anchor(r geom.Range) float64 {
	if r.StraddlesZero() {
		return 0
	}
	return r.Min
}

func measurementValues(r geom.Range) []float64 {
	r = r.Usable()
	if r.StraddlesZero() {
		return []float64{r.Min, 0, r.Max}
	}
	return []float64{r.Min, r.Max}
}

// withTopLine appends an unlabeled line at r.Max when the gap above the last
// label exceeds threshold pixels.
func withTopLine(labels []float64, r geom.Range, height, threshold float64) []float64 {
	if len(labels) == 0 {
		return labels
	}
	top := labels[len(labels)-1]
	gap := (r.Max - top) / r.Length() * height
	if gap <= threshold {
		return labels
	}
	out := make([]float64, len(labels), len(labels)+1)
	copy(out, labels)
	return append(out, r.Max)
}

// snap rounds v to the given number of fraction digits.
func snap(v float64, digits int) float64 {
	p := math.Pow10(digits)
	s := math.Round(v*p) / p
	if s == 0 {
		return 0
	}
	return s
}

func digitsFor(vs ...float64) int {
	d := 0
	for _, v := range vs {
		d = max(d, text.DigitsFor(math.Abs(v)))
	}
	return d
}

func validateTopLine(shift bool, threshold float64) (float64, error) {
	if err := errs.ValidateNonNegative("top line threshold", threshold); err != nil {
		return 0, err
	}
	if shift && threshold == 0 {
		return DefaultTopLineThreshold, nil
	}
	return threshold, nil
}
