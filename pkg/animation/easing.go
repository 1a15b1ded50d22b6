package animation

import (
	"math"
	"strings"

	errs "github.com/matzehuels/cartesian/pkg/errors"
)

// Easing maps linear progress in [0, 1] to eased progress. Every curve
// returns 0 at 0 and 1 at 1.
type Easing func(t float64) float64

func Linear(t float64) float64 { return t }

func EaseIn(t float64) float64 { return t * t * t }

func EaseOut(t float64) float64 {
	u := 1 - t
	return 1 - u*u*u
}

func EaseInOut(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

var easings = map[string]Easing{
	"linear":      Linear,
	"ease-in":     EaseIn,
	"ease-out":    EaseOut,
	"ease-in-out": EaseInOut,
}

// ParseEasing returns the curve with the given name. An empty name selects
// EaseInOut.
func ParseEasing(name string) (Easing, error) {
	if name == "" {
		return EaseInOut, nil
	}
	e, ok := easings[strings.ToLower(name)]
	if !ok {
		return nil, errs.New(errs.ErrCodeInvalidConfig, "unknown easing %q", name)
	}
	return e, nil
}
