// Package render turns drawn charts into files.
//
// Charts draw onto the SVG canvas in [svg]; this package converts the
// resulting document to PNG or PDF with the external rsvg-convert tool (from
// librsvg) and picks the output format from a file name.
//
//	cv := svg.New(800, 400)
//	c.Draw(ctx, cv)
//	out, err := render.Convert(ctx, cv.Bytes(), render.FormatPNG, 2)
package render
