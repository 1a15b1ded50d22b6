package zoom

import (
	"fmt"
	"strconv"
	"strings"

	errs "github.com/matzehuels/cartesian/pkg/errors"
	"github.com/matzehuels/cartesian/pkg/layout"
)

// Spec resolves to a zoom factor for a measuring result.
type Spec interface {
	Resolve(res layout.Result) float64
	String() string
}

type fixed float64

func (f fixed) Resolve(layout.Result) float64 { return float64(f) }
func (f fixed) String() string                { return "fixed:" + strconv.FormatFloat(float64(f), 'g', -1, 64) }

// Fixed is the constant factor v.
func Fixed(v float64) Spec { return fixed(v) }

type content struct{}

// Resolve returns the factor at which all entries fit the content width.
// Paddings do not scale, so they are taken off the available width first.
func (content) Resolve(res layout.Result) float64 {
	scalable := res.Dimensions.ScalableWidth(res.Ranges.X, res.Ranges.XStep)
	if scalable <= 0 {
		return 1
	}
	d := res.Dimensions
	avail := res.Content.Width() - d.StartPadding - d.EndPadding
	if avail <= 0 {
		return 1
	}
	return avail / scalable
}

func (content) String() string { return "content" }

// Content is the factor that fits every entry into the content area.
func Content() Spec { return content{} }

type entries float64

func (n entries) Resolve(res layout.Result) float64 {
	seg := res.Dimensions.SegmentWidth()
	d := res.Dimensions
	avail := res.Content.Width() - d.StartPadding - d.EndPadding
	if seg <= 0 || n <= 0 || avail <= 0 {
		return 1
	}
	return avail / (float64(n) * seg)
}

func (n entries) String() string { return "entries:" + strconv.FormatFloat(float64(n), 'g', -1, 64) }

// VisibleEntries is the factor at which n entries fill the content width.
func VisibleEntries(n float64) Spec { return entries(n) }

type combine struct {
	name string
	a, b Spec
	pick func(x, y float64) float64
}

func (c combine) Resolve(res layout.Result) float64 {
	return c.pick(c.a.Resolve(res), c.b.Resolve(res))
}

func (c combine) String() string { return fmt.Sprintf("%s(%s,%s)", c.name, c.a, c.b) }

// Min is the smaller of a and b.
func Min(a, b Spec) Spec {
	return combine{name: "min", a: a, b: b, pick: func(x, y float64) float64 { return min(x, y) }}
}

// Max is the larger of a and b.
func Max(a, b Spec) Spec {
	return combine{name: "max", a: a, b: b, pick: func(x, y float64) float64 { return max(x, y) }}
}

// Parse reads a spec written as "content", "fixed:2", "entries:10",
// "min(a,b)" or "max(a,b)", nesting allowed.
func Parse(s string) (Spec, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch {
	case s == "content":
		return Content(), nil
	case strings.HasPrefix(s, "fixed:"):
		v, err := parsePositive(s, strings.TrimPrefix(s, "fixed:"))
		if err != nil {
			return nil, err
		}
		return Fixed(v), nil
	case strings.HasPrefix(s, "entries:"):
		v, err := parsePositive(s, strings.TrimPrefix(s, "entries:"))
		if err != nil {
			return nil, err
		}
		return VisibleEntries(v), nil
	case strings.HasPrefix(s, "min(") || strings.HasPrefix(s, "max("):
		if !strings.HasSuffix(s, ")") {
			break
		}
		a, b, ok := splitArgs(s[4 : len(s)-1])
		if !ok {
			break
		}
		sa, err := Parse(a)
		if err != nil {
			return nil, err
		}
		sb, err := Parse(b)
		if err != nil {
			return nil, err
		}
		if s[:3] == "min" {
			return Min(sa, sb), nil
		}
		return Max(sa, sb), nil
	}
	return nil, errs.New(errs.ErrCodeInvalidZoom, "invalid zoom spec %q", s)
}

func parsePositive(spec, v string) (float64, error) {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		return 0, errs.New(errs.ErrCodeInvalidZoom, "invalid zoom spec %q: want a positive number", spec)
	}
	return f, nil
}

// splitArgs splits "a,b" at the top-level comma.
func splitArgs(s string) (string, string, bool) {
	depth := 0
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				return s[:i], s[i+1:], true
			}
		}
	}
	return "", "", false
}
