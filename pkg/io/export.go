package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/samber/lo"

	"github.com/matzehuels/cartesian/pkg/legend"
	"github.com/matzehuels/cartesian/pkg/model"
)

// WriteJSON encodes m as indented JSON. Identities and legend labels are
// kept, so the output re-imports to an equivalent model with [ReadJSON].
func WriteJSON(m *model.Model, w io.Writer) error {
	doc := document{Datasets: []dataset{}}
	if m != nil {
		id := m.ID
		doc.ID = &id
		doc.Legend, _ = model.Get(m.Extras, legend.LabelsKey)
		doc.Datasets = lo.Map(m.Datasets, func(d model.Dataset, _ int) dataset {
			id := d.ID
			return dataset{
				ID:    &id,
				Kind:  d.Kind.String(),
				Axis:  d.Axis,
				Merge: d.Merge,
				Series: lo.Map(d.Series, func(s model.Series, _ int) series {
					return series{Name: s.Name, Entries: s.Entries}
				}),
				Candles: d.Candles,
			}
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes m to a JSON file at path.
func ExportJSON(m *model.Model, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(m, f)
}
