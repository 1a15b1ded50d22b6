package geom

// Insets are four independent edge measurements. Start and End are
// direction-aware: in a right-to-left layout Start is the right edge.
type Insets struct {
	Start, Top, End, Bottom float64
}

// Max returns the element-wise maximum of in and other.
func (in Insets) Max(other Insets) Insets {
	return Insets{
		Start:  max(in.Start, other.Start),
		Top:    max(in.Top, other.Top),
		End:    max(in.End, other.End),
		Bottom: max(in.Bottom, other.Bottom),
	}
}

// Horizontal returns the sum of the start and end insets.
func (in Insets) Horizontal() float64 { return in.Start + in.End }

// Vertical returns the sum of the top and bottom insets.
func (in Insets) Vertical() float64 { return in.Top + in.Bottom }

// Left resolves the inset applied to the left edge.
func (in Insets) Left(rtl bool) float64 {
	if rtl {
		return in.End
	}
	return in.Start
}

// Right resolves the inset applied to the right edge.
func (in Insets) Right(rtl bool) float64 {
	if rtl {
		return in.Start
	}
	return in.End
}

// Edge returns the inset stored for position p.
func (in Insets) Edge(p Position) float64 {
	switch p {
	case Top:
		return in.Top
	case End:
		return in.End
	case Bottom:
		return in.Bottom
	default:
		return in.Start
	}
}

// WithEdge returns a copy of in with the inset for position p set to v.
func (in Insets) WithEdge(p Position, v float64) Insets {
	switch p {
	case Top:
		in.Top = v
	case End:
		in.End = v
	case Bottom:
		in.Bottom = v
	default:
		in.Start = v
	}
	return in
}
