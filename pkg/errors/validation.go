package errors

import (
	"math"
	"time"
)

// ValidateFinite rejects NaN and infinite values for the named parameter.
func ValidateFinite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidConfig, "%s must be finite, got %v", name, v)
	}
	return nil
}

// ValidateRange checks that min and max are finite and ordered.
// A degenerate range (min == max) is valid.
func ValidateRange(min, max float64) error {
	if math.IsNaN(min) || math.IsNaN(max) {
		return New(ErrCodeInvalidRange, "range bounds cannot be NaN")
	}
	if math.IsInf(min, 0) || math.IsInf(max, 0) {
		return New(ErrCodeInvalidRange, "range bounds must be finite, got [%v, %v]", min, max)
	}
	if min > max {
		return New(ErrCodeInvalidRange, "range is out of order: min %v > max %v", min, max)
	}
	return nil
}

// ValidateStep checks that a tick step is finite and strictly positive.
func ValidateStep(step float64) error {
	if math.IsNaN(step) || math.IsInf(step, 0) {
		return New(ErrCodeInvalidStep, "step must be finite, got %v", step)
	}
	if step <= 0 {
		return New(ErrCodeInvalidStep, "step must be positive, got %v", step)
	}
	return nil
}

// ValidateCount checks that a requested label count is at least one.
func ValidateCount(count int) error {
	if count < 1 {
		return New(ErrCodeInvalidConfig, "label count must be at least 1, got %d", count)
	}
	return nil
}

// ValidateNonNegative checks that the named measurement is finite and >= 0.
func ValidateNonNegative(name string, v float64) error {
	if err := ValidateFinite(name, v); err != nil {
		return err
	}
	if v < 0 {
		return New(ErrCodeInvalidConfig, "%s cannot be negative, got %v", name, v)
	}
	return nil
}

// ValidateZoomRange checks that zoom bounds are positive and ordered.
func ValidateZoomRange(min, max float64) error {
	if math.IsNaN(min) || math.IsNaN(max) || math.IsInf(min, 0) || math.IsInf(max, 0) {
		return New(ErrCodeInvalidZoom, "zoom bounds must be finite, got [%v, %v]", min, max)
	}
	if min <= 0 {
		return New(ErrCodeInvalidZoom, "minimum zoom must be positive, got %v", min)
	}
	if min > max {
		return New(ErrCodeInvalidZoom, "zoom range is out of order: min %v > max %v", min, max)
	}
	return nil
}

// ValidateDuration rejects negative animation durations.
func ValidateDuration(name string, d time.Duration) error {
	if d < 0 {
		return New(ErrCodeInvalidConfig, "%s cannot be negative, got %s", name, d)
	}
	return nil
}

// ValidateFraction checks that f lies in [0, 1].
func ValidateFraction(name string, f float64) error {
	if math.IsNaN(f) || f < 0 || f > 1 {
		return New(ErrCodeInvalidConfig, "%s must be within [0, 1], got %v", name, f)
	}
	return nil
}
