// Package io provides JSON import and export for chart models.
//
// # JSON Format
//
//	{
//	  "id": "2f1b0c9e-...",
//	  "legend": ["Revenue", "Costs"],
//	  "datasets": [
//	    {
//	      "kind": "column",
//	      "axis": "start",
//	      "merge": "stacked",
//	      "series": [
//	        {"name": "Revenue", "entries": [{"x": 0, "y": 4}, {"x": 1, "y": 6}]},
//	        {"name": "Costs", "ys": [2, 3]}
//	      ]
//	    },
//	    {
//	      "kind": "candlestick",
//	      "candles": [{"x": 0, "open": 2, "close": 4, "low": 1, "high": 5}]
//	    }
//	  ]
//	}
//
// # Dataset Fields
//
// Required:
//   - kind: "column", "line" or "candlestick"
//
// Optional:
//   - id: identity token (UUID). Datasets keep their identity across
//     re-imports of the same file: a missing id is derived from the dataset
//     kind, so reloading a file animates value by value instead of growing
//     from zero.
//   - axis: "start" (default) or "end"
//   - merge: "grouped" (default) or "stacked", columns only
//   - series: list of {name, entries} or {name, ys}; "ys" places values at
//     x = 0, 1, 2, ...
//   - candles: list of {x, open, close, low, high}
//
// The optional top-level "legend" array is stored in the model's extra store
// under the legend label key.
//
// # Import and Export
//
//	m, err := io.ImportJSON("model.json")
//	err = io.ExportJSON(m, "out.json")
//
// [ReadJSON] and [WriteJSON] do the same on any reader or writer.
package io
