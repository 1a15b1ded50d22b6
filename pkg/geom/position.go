package geom

import (
	"fmt"
	"strings"
)

// Position names one edge of the content rectangle. Vertical axes live at
// Start or End, horizontal axes at Top or Bottom.
type Position int

// Edge positions. Start is the zero value so that datasets default to the
// start vertical axis.
const (
	Start Position = iota
	Top
	End
	Bottom
)

// Positions lists every position in drawing order.
var Positions = []Position{Start, Top, End, Bottom}

var positionNames = map[Position]string{
	Start:  "start",
	Top:    "top",
	End:    "end",
	Bottom: "bottom",
}

// String returns the lowercase name of the position.
func (p Position) String() string {
	if s, ok := positionNames[p]; ok {
		return s
	}
	return fmt.Sprintf("position(%d)", int(p))
}

// IsVertical reports whether p holds a vertical axis (Start or End).
func (p Position) IsVertical() bool { return p == Start || p == End }

// IsHorizontal reports whether p holds a horizontal axis (Top or Bottom).
func (p Position) IsHorizontal() bool { return p == Top || p == Bottom }

// IsLeft reports whether p resolves to the left edge for the direction.
func (p Position) IsLeft(rtl bool) bool {
	return (p == Start && !rtl) || (p == End && rtl)
}

// ParsePosition converts a name such as "start" or "Bottom" into a Position.
func ParsePosition(s string) (Position, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for p, name := range positionNames {
		if name == key {
			return p, nil
		}
	}
	return Start, fmt.Errorf("unknown position %q (must be start, top, end or bottom)", s)
}

// MarshalText implements encoding.TextMarshaler.
func (p Position) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Position) UnmarshalText(b []byte) error {
	v, err := ParsePosition(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}
