// Package marker resolves which entries a pointer position highlights and
// draws the highlight.
//
// Layers report where they drew their entries as [LayerPoints] during the
// draw pass. [Resolve] turns a pointer X plus those positions into
// [Target] values, one per layer, all at the X nearest the pointer.
package marker

import (
	"math"

	"github.com/samber/lo"

	"github.com/matzehuels/cartesian/pkg/geom"
	"github.com/matzehuels/cartesian/pkg/model"
)

// Point is one highlighted value: a series entry or a candle, with the
// canvas Y it was drawn at.
type Point struct {
	Series  int
	Entry   model.Entry
	Candle  model.Candle
	CanvasY float64
}

// Column is every point a layer drew at one X.
type Column struct {
	X       float64
	CanvasX float64
	Points  []Point
}

// LayerPoints are the columns one layer drew in a frame, ordered by X.
type LayerPoints struct {
	Kind    model.Kind
	Columns []Column
}

// Target is the highlight for one layer.
type Target struct {
	Layer   int
	Kind    model.Kind
	X       float64
	CanvasX float64
	Points  []Point
}

// Resolve returns the targets for a pointer at canvas X pointerX.
//
// Only columns inside content are considered. The X whose column lies
// nearest to the pointer wins; on equal distance the column of the earlier
// layer wins. Every layer with a column at the winning X contributes one
// target, in layer order. The result is empty when no column lies inside
// content.
func Resolve(pointerX float64, content geom.Rect, layers []LayerPoints) []Target {
	bestX, bestDist := 0.0, math.Inf(1)
	found := false
	for _, lp := range layers {
		c, ok := nearest(lp.Columns, pointerX, content)
		if !ok {
			continue
		}
		if d := math.Abs(c.CanvasX - pointerX); d < bestDist {
			bestX, bestDist, found = c.X, d, true
		}
	}
	if !found {
		return nil
	}

	var out []Target
	for i, lp := range layers {
		c, ok := columnAt(lp.Columns, bestX, content)
		if !ok {
			continue
		}
		out = append(out, Target{
			Layer:   i,
			Kind:    lp.Kind,
			X:       c.X,
			CanvasX: c.CanvasX,
			Points:  c.Points,
		})
	}
	return out
}

// nearest returns the visible column closest to pointerX. Ties keep the
// first column.
func nearest(cols []Column, pointerX float64, content geom.Rect) (Column, bool) {
	var best Column
	bestDist := math.Inf(1)
	found := false
	for _, c := range cols {
		if !content.ContainsX(c.CanvasX) {
			continue
		}
		if d := math.Abs(c.CanvasX - pointerX); d < bestDist {
			best, bestDist, found = c, d, true
		}
	}
	return best, found
}

func columnAt(cols []Column, x float64, content geom.Rect) (Column, bool) {
	return lo.Find(cols, func(c Column) bool {
		return c.X == x && content.ContainsX(c.CanvasX)
	})
}
