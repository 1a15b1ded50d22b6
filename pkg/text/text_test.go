package text

import (
	"fmt"
	"math"
	"testing"
)

func TestMonospaceMeasure(t *testing.T) {
	m := NewMonospace(10)
	got := m.Measure("1234")
	if !near(got.Width, 22) || !near(got.Height, 12) {
		t.Errorf("Measure(1234) = %+v, want {22 12}", got)
	}
	two := m.Measure("ab\nabcd")
	if two.Width != got.Width || !near(two.Height, 24) {
		t.Errorf("Measure(two lines) = %+v", two)
	}
	if NewMonospace(0).FontSize != defaultFontSize {
		t.Error("NewMonospace(0) should select the default size")
	}
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestMaxWidth(t *testing.T) {
	m := NewMonospace(10)
	if got := MaxWidth(m, []string{"1", "100", "10"}); got != m.Measure("100").Width {
		t.Errorf("MaxWidth() = %v", got)
	}
	if got := MaxWidth(m, nil); got != 0 {
		t.Errorf("MaxWidth(nil) = %v, want 0", got)
	}
}

func TestDecimal(t *testing.T) {
	tests := []struct {
		f    Decimal
		v    float64
		want string
	}{
		{Decimal{}, 5, "5"},
		{Decimal{Digits: 2}, 1.005, "1.00"},
		{Decimal{Digits: 1}, -0.04, "0.0"},
		{Decimal{}, -3, "-3"},
		{Decimal{Digits: 1, Prefix: "$"}, 2.5, "$2.5"},
	}
	for _, tt := range tests {
		if got := tt.f.Format(tt.v); got != tt.want {
			t.Errorf("%+v.Format(%v) = %q, want %q", tt.f, tt.v, got, tt.want)
		}
	}
}

func TestCompact(t *testing.T) {
	c := Compact{Digits: 1}
	for v, want := range map[float64]string{
		2000:     "2k",
		-3e6:     "-3m",
		1e9:      "1b",
		1500:     "1500.0",
		1234.5:   "1234.5",
		0:        "0.0",
		2500000:  "2500k",
		25000000: "25m",
	} {
		if got := c.Format(v); got != want {
			t.Errorf("Compact.Format(%v) = %q, want %q", v, got, want)
		}
	}
}

func TestDigitsFor(t *testing.T) {
	for step, want := range map[float64]int{1: 0, 5: 0, 0.5: 1, 0.25: 2, 0.1: 1, 0.001: 3} {
		if got := DigitsFor(step); got != want {
			t.Errorf("DigitsFor(%v) = %d, want %d", step, got, want)
		}
	}
}

func ExampleCompact() {
	f := Compact{}
	fmt.Println(f.Format(5000), f.Format(12e6), f.Format(7))
	// Output: 5k 12m 7
}
