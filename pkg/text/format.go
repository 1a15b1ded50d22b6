package text

import (
	"math"
	"strconv"
	"strings"
)

// Formatter turns an axis or marker value into a label.
type Formatter interface {
	Format(v float64) string
}

// FormatterFunc adapts a function to Formatter.
type FormatterFunc func(v float64) string

func (f FormatterFunc) Format(v float64) string { return f(v) }

// Decimal formats values with a fixed number of fraction digits. Negative
// zero is printed as zero.
type Decimal struct {
	Digits int
	Prefix string
	Suffix string
}

func (d Decimal) Format(v float64) string {
	s := strconv.FormatFloat(v, 'f', max(d.Digits, 0), 64)
	if strings.HasPrefix(s, "-") && strings.Trim(s[1:], "0.") == "" {
		s = s[1:]
	}
	return d.Prefix + s + d.Suffix
}

// Compact abbreviates thousands, millions and billions with k, m and b when
// the value is an exact multiple; other values print with Digits fraction
// digits.
type Compact struct {
	Digits int
}

func (c Compact) Format(v float64) string {
	abs := math.Abs(v)
	for _, u := range []struct {
		div    float64
		suffix string
	}{{1e9, "b"}, {1e6, "m"}, {1e3, "k"}} {
		if abs >= u.div && math.Mod(abs, u.div) == 0 {
			return strconv.FormatFloat(v/u.div, 'f', -1, 64) + u.suffix
		}
	}
	return Decimal{Digits: c.Digits}.Format(v)
}

// DigitsFor returns the number of fraction digits needed to print multiples
// of step without rounding, capped at 10.
func DigitsFor(step float64) int {
	for d := 0; d < 10; d++ {
		scaled := step * math.Pow10(d)
		if math.Abs(scaled-math.Round(scaled)) < 1e-9*math.Max(1, scaled) {
			return d
		}
	}
	return 10
}
