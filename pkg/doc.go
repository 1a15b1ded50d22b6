// Package pkg provides the libraries behind cartesian, a layout engine for
// scrollable, zoomable Cartesian charts.
//
// # Overview
//
// A chart host owns a canvas and a model. The engine decides where the
// content rectangle goes, how wide the scrollable content is, which axis
// labels fit and what lies under a pointer. The pkg directory is organized
// into these areas:
//
//  1. Data: [model] (datasets and entries), [ranges] (range aggregation),
//     [diff] (model interpolation) and [io] (JSON import and export)
//  2. Layout: [layout] (inset negotiation and transforms), [axis] (label
//     placement), [layer], [legend] and [marker]
//  3. Interaction: [scroll], [zoom] and [animation]
//  4. Assembly: [chart] ties the above into one view; [config] loads it
//     from TOML or YAML
//  5. Output and services: [render] (SVG, PNG, PDF), [state] (scroll and
//     zoom persistence), [cache] and [api] (HTTP)
//
// # Architecture
//
// One frame flows through the engine like this:
//
//	model.Model
//	     ↓
//	[ranges] aggregate X and Y ranges per axis position
//	     ↓
//	[layout] negotiate insets with axes, legend and marker
//	     ↓
//	[zoom] and [scroll] update their bounds from the result
//	     ↓
//	[chart] draws axes, layers and the marker onto a canvas
//
// # Quick Start
//
//	cfg, _ := config.Load("chart.toml")
//	c, _ := cfg.Frame(ctx, m, logger)
//	cv := svg.New(cfg.Width, cfg.Height)
//	c.Draw(ctx, cv)
//	os.WriteFile("chart.svg", cv.Bytes(), 0o644)
package pkg
