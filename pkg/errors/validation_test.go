package errors

import (
	"math"
	"testing"
	"time"
)

func TestValidateRange(t *testing.T) {
	tests := []struct {
		name     string
		min, max float64
		wantErr  bool
	}{
		{"ordered", -5, 10, false},
		{"degenerate", 3, 3, false},
		{"zero", 0, 0, false},

		{"out of order", 10, -5, true},
		{"nan min", math.NaN(), 1, true},
		{"nan max", 1, math.NaN(), true},
		{"inf max", 0, math.Inf(1), true},
		{"-inf min", math.Inf(-1), 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRange(tt.min, tt.max)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRange(%v, %v) error = %v, wantErr %v", tt.min, tt.max, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidRange) {
				t.Errorf("error code = %v, want %v", GetCode(err), ErrCodeInvalidRange)
			}
		})
	}
}

func TestValidateStep(t *testing.T) {
	tests := []struct {
		name    string
		step    float64
		wantErr bool
	}{
		{"one", 1, false},
		{"fraction", 0.25, false},
		{"large", 1e9, false},

		{"zero", 0, true},
		{"negative", -2, true},
		{"nan", math.NaN(), true},
		{"inf", math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStep(tt.step)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateStep(%v) error = %v, wantErr %v", tt.step, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidStep) {
				t.Errorf("error code = %v, want %v", GetCode(err), ErrCodeInvalidStep)
			}
		})
	}
}

func TestValidateCount(t *testing.T) {
	for _, c := range []int{1, 2, 100} {
		if err := ValidateCount(c); err != nil {
			t.Errorf("ValidateCount(%d) = %v", c, err)
		}
	}
	for _, c := range []int{0, -1} {
		if err := ValidateCount(c); err == nil {
			t.Errorf("ValidateCount(%d) should fail", c)
		}
	}
}

func TestValidateZoomRange(t *testing.T) {
	tests := []struct {
		name     string
		min, max float64
		wantErr  bool
	}{
		{"ordered", 0.5, 10, false},
		{"equal", 1, 1, false},

		{"zero min", 0, 1, true},
		{"negative min", -1, 1, true},
		{"out of order", 4, 2, true},
		{"inf", 1, math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateZoomRange(tt.min, tt.max)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateZoomRange(%v, %v) error = %v, wantErr %v", tt.min, tt.max, err, tt.wantErr)
			}
		})
	}
}

func TestValidateNonNegative(t *testing.T) {
	if err := ValidateNonNegative("tick length", 0); err != nil {
		t.Errorf("zero should be valid: %v", err)
	}
	if err := ValidateNonNegative("tick length", -0.5); err == nil {
		t.Error("negative should be invalid")
	}
	if err := ValidateNonNegative("tick length", math.NaN()); err == nil {
		t.Error("NaN should be invalid")
	}
}

func TestValidateDuration(t *testing.T) {
	if err := ValidateDuration("scroll", 0); err != nil {
		t.Errorf("zero duration should be valid: %v", err)
	}
	if err := ValidateDuration("scroll", -time.Millisecond); err == nil {
		t.Error("negative duration should be invalid")
	}
}

func TestValidateFraction(t *testing.T) {
	for _, f := range []float64{0, 0.5, 1} {
		if err := ValidateFraction("fraction", f); err != nil {
			t.Errorf("ValidateFraction(%v) = %v", f, err)
		}
	}
	for _, f := range []float64{-0.1, 1.1, math.NaN()} {
		if err := ValidateFraction("fraction", f); err == nil {
			t.Errorf("ValidateFraction(%v) should fail", f)
		}
	}
}
