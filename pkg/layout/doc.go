// Package layout negotiates where a chart's content area goes.
//
// Measuring runs in a fixed number of steps and never iterates to a fixed
// point:
//
//  1. Dimension pass: every layer reports its per-entry geometry
//     ([geom.Dimensions]); the element-wise maximum is shared by all layers
//     so entry columns line up.
//  2. Margin pass: every requester (axes, legend, marker, layer decorations)
//     reports the insets it needs given the shared dimensions. The running
//     maximum per side gives a candidate content rectangle.
//  3. Horizontal pass: requesters whose start/end inset depends on the
//     available height (vertical axes sizing their labels) report again with
//     the candidate content height. The final content rectangle follows.
//
// The outcome is a [Result] value the draw pass consumes. A result that
// cannot be drawn has Empty set; it is never an error.
//
// # Coordinates
//
// [Transform] maps data values to canvas pixels for one frame, taking zoom,
// scroll and layout direction into account. Layers, axes and the marker
// resolver all use the same transform so they agree on where an X value is.
package layout
