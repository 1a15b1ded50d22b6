package axis

import (
	"math"

	errs "github.com/matzehuels/cartesian/pkg/errors"
	"github.com/matzehuels/cartesian/pkg/geom"
)

// AlignedPlacer places horizontal-axis labels on entry X values.
type AlignedPlacer struct {
	// Spacing labels every Spacing-th entry. Zero picks the smallest spacing
	// that keeps labels from overlapping.
	Spacing int
	// Offset skips the first Offset entries.
	Offset int
	// ShiftExtremeLines moves the outermost lines to the content edges.
	ShiftExtremeLines bool
}

// NewAlignedPlacer validates and returns an aligned placer.
func NewAlignedPlacer(spacing, offset int, shiftExtremeLines bool) (AlignedPlacer, error) {
	if spacing < 0 {
		return AlignedPlacer{}, errs.New(errs.ErrCodeInvalidConfig, "label spacing cannot be negative, got %d", spacing)
	}
	if offset < 0 {
		return AlignedPlacer{}, errs.New(errs.ErrCodeInvalidConfig, "label offset cannot be negative, got %d", offset)
	}
	return AlignedPlacer{Spacing: spacing, Offset: offset, ShiftExtremeLines: shiftExtremeLines}, nil
}

// EffectiveSpacing returns the entry spacing between labels for the given
// segment and label widths.
func (p AlignedPlacer) EffectiveSpacing(segmentWidth, maxLabelWidth float64) int {
	if p.Spacing > 0 {
		return p.Spacing
	}
	if segmentWidth <= 0 || maxLabelWidth <= segmentWidth {
		return 1
	}
	return int(math.Ceil(maxLabelWidth / segmentWidth))
}

// LabelValues returns the labeled X values within visible.
func (p AlignedPlacer) LabelValues(x geom.Range, xStep float64, visible geom.Range, segmentWidth, maxLabelWidth float64) []float64 {
	if x.IsEmpty() || visible.IsEmpty() || xStep <= 0 {
		return nil
	}
	spacing := float64(p.EffectiveSpacing(segmentWidth, maxLabelWidth))
	first := x.Min + float64(p.Offset)*xStep
	every := spacing * xStep

	k := math.Max(0, math.Ceil((visible.Min-first)/every-1e-9))
	var out []float64
	for ; ; k++ {
		v := first + k*every
		if v > visible.Max+1e-9*xStep || v > x.Max+1e-9*xStep {
			break
		}
		out = append(out, v)
	}
	return out
}

// LineValues returns the X values that get a tick and a vertical guideline.
// Lines sit on the boundary before each labeled entry; with ShiftExtremeLines
// the boundary after the last entry is added as well.
func (p AlignedPlacer) LineValues(x geom.Range, xStep float64, visible geom.Range, segmentWidth, maxLabelWidth float64) []float64 {
	labels := p.LabelValues(x, xStep, visible, segmentWidth, maxLabelWidth)
	out := make([]float64, 0, len(labels)+1)
	for _, v := range labels {
		out = append(out, v-xStep/2)
	}
	if p.ShiftExtremeLines && !x.IsEmpty() && visible.Contains(x.Max) {
		out = append(out, x.Max+xStep/2)
	}
	return out
}
