package geom

import (
	"fmt"
	"math"

	errs "github.com/matzehuels/cartesian/pkg/errors"
)

// Range is a closed numeric interval on one axis.
//
// EmptyRange (Min = +Inf, Max = -Inf) is the identity for Include and Union,
// so folds can start from it and test IsEmpty afterwards.
type Range struct {
	Min, Max float64
}

// EmptyRange is the sentinel returned when there is no data.
var EmptyRange = Range{Min: math.Inf(1), Max: math.Inf(-1)}

// NewRange validates and returns [min, max].
func NewRange(min, max float64) (Range, error) {
	if err := errs.ValidateRange(min, max); err != nil {
		return Range{}, err
	}
	return Range{Min: min, Max: max}, nil
}

// IsEmpty reports whether the range holds no value.
func (r Range) IsEmpty() bool { return r.Min > r.Max }

// Length returns Max - Min, or 0 for an empty range.
func (r Range) Length() float64 {
	if r.IsEmpty() {
		return 0
	}
	return r.Max - r.Min
}

// Contains reports whether v lies within the range, inclusive.
func (r Range) Contains(v float64) bool { return v >= r.Min && v <= r.Max }

// Clamp returns v limited to the range.
func (r Range) Clamp(v float64) float64 { return Clamp(v, r.Min, r.Max) }

// Include returns the smallest range containing r and v.
func (r Range) Include(v float64) Range {
	return Range{Min: math.Min(r.Min, v), Max: math.Max(r.Max, v)}
}

// Union returns the smallest range containing both r and other.
func (r Range) Union(other Range) Range {
	if other.IsEmpty() {
		return r
	}
	if r.IsEmpty() {
		return other
	}
	return Range{Min: math.Min(r.Min, other.Min), Max: math.Max(r.Max, other.Max)}
}

// StraddlesZero reports whether Min < 0 < Max.
func (r Range) StraddlesZero() bool { return r.Min < 0 && r.Max > 0 }

// Usable returns a range with a positive length that layout code can divide
// by. Degenerate ranges are widened around their single value; a range at
// zero becomes [0, 1]. Empty ranges become [0, 1] as well.
func (r Range) Usable() Range {
	switch {
	case r.IsEmpty():
		return Range{Min: 0, Max: 1}
	case r.Min < r.Max:
		return r
	case r.Min == 0:
		return Range{Min: 0, Max: 1}
	default:
		return Range{Min: r.Min - 1, Max: r.Max + 1}
	}
}

// Fraction returns the position of v within the range, 0 at Min and 1 at Max.
func (r Range) Fraction(v float64) float64 {
	u := r.Usable()
	return (v - u.Min) / (u.Max - u.Min)
}

// String formats the range as "[min, max]".
func (r Range) String() string {
	if r.IsEmpty() {
		return "[empty]"
	}
	return fmt.Sprintf("[%g, %g]", r.Min, r.Max)
}
