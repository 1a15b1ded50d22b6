package model

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"

	errs "github.com/matzehuels/cartesian/pkg/errors"
	"github.com/matzehuels/cartesian/pkg/geom"
)

// Kind is the layer kind a dataset is drawn by.
type Kind int

const (
	Column Kind = iota
	Line
	Candlestick
)

// Kinds lists every layer kind in drawing order.
var Kinds = []Kind{Column, Line, Candlestick}

var kindNames = map[Kind]string{
	Column:      "column",
	Line:        "line",
	Candlestick: "candlestick",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind converts "column", "line" or "candlestick" into a Kind.
func ParseKind(s string) (Kind, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for k, name := range kindNames {
		if name == key {
			return k, nil
		}
	}
	return Column, errs.New(errs.ErrCodeInvalidModel, "unknown layer kind %q (must be column, line or candlestick)", s)
}

func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *Kind) UnmarshalText(b []byte) error {
	v, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// MergeMode controls how multiple column series share one X.
type MergeMode int

const (
	// Grouped places the columns of one X side by side.
	Grouped MergeMode = iota
	// Stacked piles the columns of one X on top of each other; positive and
	// negative values stack separately from the zero baseline.
	Stacked
)

func (m MergeMode) String() string {
	if m == Stacked {
		return "stacked"
	}
	return "grouped"
}

func (m MergeMode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (m *MergeMode) UnmarshalText(b []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(b))) {
	case "", "grouped":
		*m = Grouped
	case "stacked":
		*m = Stacked
	default:
		return errs.New(errs.ErrCodeInvalidModel, "unknown merge mode %q", b)
	}
	return nil
}

// Entry is one (x, y) point of a series.
type Entry struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Candle is one candlestick entry.
type Candle struct {
	X     float64 `json:"x"`
	Open  float64 `json:"open"`
	Close float64 `json:"close"`
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
}

// Bullish reports whether the candle closed at or above its opening.
func (c Candle) Bullish() bool { return c.Close >= c.Open }

// Series is a named, X-sorted list of entries.
type Series struct {
	Name    string  `json:"name,omitempty"`
	Entries []Entry `json:"entries"`
}

// NewSeries copies entries and sorts them by X.
func NewSeries(name string, entries ...Entry) Series {
	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, func(a, b Entry) int {
		switch {
		case a.X < b.X:
			return -1
		case a.X > b.X:
			return 1
		}
		return 0
	})
	return Series{Name: name, Entries: sorted}
}

// SeriesOf builds an unnamed series from y values at x = 0, 1, 2, ...
func SeriesOf(ys ...float64) Series {
	return Series{Entries: lo.Map(ys, func(y float64, i int) Entry {
		return Entry{X: float64(i), Y: y}
	})}
}

// At returns the entry at x.
func (s Series) At(x float64) (Entry, bool) {
	i, ok := slices.BinarySearchFunc(s.Entries, x, func(e Entry, x float64) int {
		switch {
		case e.X < x:
			return -1
		case e.X > x:
			return 1
		}
		return 0
	})
	if !ok {
		return Entry{}, false
	}
	return s.Entries[i], true
}

// Dataset is the data of one layer.
type Dataset struct {
	ID      uuid.UUID     `json:"id"`
	Kind    Kind          `json:"kind"`
	Axis    geom.Position `json:"axis"`
	Merge   MergeMode     `json:"merge,omitempty"`
	Series  []Series      `json:"series,omitempty"`
	Candles []Candle      `json:"candles,omitempty"`
}

// NewColumns builds a column dataset with a fresh identity.
func NewColumns(axis geom.Position, merge MergeMode, series ...Series) Dataset {
	return Dataset{ID: uuid.New(), Kind: Column, Axis: axis, Merge: merge, Series: sortAll(series)}
}

// NewLines builds a line dataset with a fresh identity.
func NewLines(axis geom.Position, series ...Series) Dataset {
	return Dataset{ID: uuid.New(), Kind: Line, Axis: axis, Series: sortAll(series)}
}

// NewCandles builds a candlestick dataset with a fresh identity.
func NewCandles(axis geom.Position, candles ...Candle) Dataset {
	return Dataset{ID: uuid.New(), Kind: Candlestick, Axis: axis, Candles: sortCandles(candles)}
}

// WithSeries returns the next version of d holding series. The identity is
// kept, so a transition from d animates value by value.
func (d Dataset) WithSeries(series ...Series) Dataset {
	d.Series = sortAll(series)
	return d
}

// WithCandles returns the next version of d holding candles.
func (d Dataset) WithCandles(candles ...Candle) Dataset {
	d.Candles = sortCandles(candles)
	return d
}

// IsEmpty reports whether the dataset holds no entries.
func (d Dataset) IsEmpty() bool {
	if d.Kind == Candlestick {
		return len(d.Candles) == 0
	}
	for _, s := range d.Series {
		if len(s.Entries) > 0 {
			return false
		}
	}
	return true
}

// Xs returns the distinct X values of the dataset, ascending.
func (d Dataset) Xs() []float64 {
	var xs []float64
	if d.Kind == Candlestick {
		xs = lo.Map(d.Candles, func(c Candle, _ int) float64 { return c.X })
	} else {
		for _, s := range d.Series {
			xs = append(xs, lo.Map(s.Entries, func(e Entry, _ int) float64 { return e.X })...)
		}
	}
	slices.Sort(xs)
	return slices.Compact(xs)
}

// CandleAt returns the candle at x.
func (d Dataset) CandleAt(x float64) (Candle, bool) {
	return lo.Find(d.Candles, func(c Candle) bool { return c.X == x })
}

// Validate checks that every value is finite, candles are well formed and
// the dataset is plotted against a vertical axis.
func (d Dataset) Validate() error {
	if !d.Axis.IsVertical() {
		return errs.New(errs.ErrCodeInvalidModel, "%s dataset: axis must be start or end, got %s", d.Kind, d.Axis)
	}
	if _, ok := kindNames[d.Kind]; !ok {
		return errs.New(errs.ErrCodeInvalidModel, "unknown layer kind %d", int(d.Kind))
	}
	for si, s := range d.Series {
		for _, e := range s.Entries {
			if !finite(e.X) || !finite(e.Y) {
				return errs.New(errs.ErrCodeInvalidModel, "%s series %d: entry (%g, %g) is not finite", d.Kind, si, e.X, e.Y)
			}
		}
	}
	for _, c := range d.Candles {
		if !finite(c.X) || !finite(c.Open) || !finite(c.Close) || !finite(c.Low) || !finite(c.High) {
			return errs.New(errs.ErrCodeInvalidModel, "candle at %g is not finite", c.X)
		}
		if c.Low > min(c.Open, c.Close) || c.High < max(c.Open, c.Close) {
			return errs.New(errs.ErrCodeInvalidModel, "candle at %g: low/high must enclose open and close", c.X)
		}
	}
	return nil
}

func (d Dataset) clone() Dataset {
	d.Series = lo.Map(d.Series, func(s Series, _ int) Series {
		return Series{Name: s.Name, Entries: slices.Clone(s.Entries)}
	})
	d.Candles = slices.Clone(d.Candles)
	return d
}

func sortAll(series []Series) []Series {
	return lo.Map(series, func(s Series, _ int) Series { return NewSeries(s.Name, s.Entries...) })
}

func sortCandles(candles []Candle) []Candle {
	sorted := slices.Clone(candles)
	slices.SortStableFunc(sorted, func(a, b Candle) int {
		switch {
		case a.X < b.X:
			return -1
		case a.X > b.X:
			return 1
		}
		return 0
	})
	return sorted
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
