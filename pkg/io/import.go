package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/samber/lo"

	errs "github.com/matzehuels/cartesian/pkg/errors"
	"github.com/matzehuels/cartesian/pkg/geom"
	"github.com/matzehuels/cartesian/pkg/legend"
	"github.com/matzehuels/cartesian/pkg/model"
)

// identitySpace namespaces identities derived for datasets without an id.
var identitySpace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/matzehuels/cartesian/datasets"))

type document struct {
	ID       *uuid.UUID `json:"id,omitempty"`
	Legend   []string   `json:"legend,omitempty"`
	Datasets []dataset  `json:"datasets"`
}

type dataset struct {
	ID      *uuid.UUID      `json:"id,omitempty"`
	Kind    string          `json:"kind"`
	Axis    geom.Position   `json:"axis"`
	Merge   model.MergeMode `json:"merge,omitempty"`
	Series  []series        `json:"series,omitempty"`
	Candles []model.Candle  `json:"candles,omitempty"`
}

type series struct {
	Name    string        `json:"name,omitempty"`
	Entries []model.Entry `json:"entries,omitempty"`
	Ys      []float64     `json:"ys,omitempty"`
}

// ReadJSON decodes a chart model from r.
//
// ReadJSON returns an INVALID_FORMAT error if the JSON is malformed or a
// kind is unknown, and the model's own validation errors (duplicate kinds,
// non-finite values, malformed candles) otherwise. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*model.Model, error) {
	var doc document
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode model")
	}

	datasets := make([]model.Dataset, 0, len(doc.Datasets))
	for i, d := range doc.Datasets {
		ds, err := d.toModel()
		if err != nil {
			return nil, fmt.Errorf("dataset %d: %w", i, err)
		}
		datasets = append(datasets, ds)
	}

	m, err := model.New(datasets...)
	if err != nil {
		return nil, err
	}
	if doc.ID != nil {
		m.ID = *doc.ID
	}
	if len(doc.Legend) > 0 {
		m = m.WithExtras(model.Set(m.Extras, legend.LabelsKey, doc.Legend))
	}
	return m, nil
}

func (d dataset) toModel() (model.Dataset, error) {
	kind, err := model.ParseKind(d.Kind)
	if err != nil {
		return model.Dataset{}, errs.Wrap(errs.ErrCodeInvalidFormat, err, "kind")
	}
	if kind != model.Candlestick && len(d.Candles) > 0 {
		return model.Dataset{}, errs.New(errs.ErrCodeInvalidFormat, "%s dataset cannot hold candles", kind)
	}
	if kind == model.Candlestick && len(d.Series) > 0 {
		return model.Dataset{}, errs.New(errs.ErrCodeInvalidFormat, "candlestick dataset cannot hold series")
	}

	ss := lo.Map(d.Series, func(s series, _ int) model.Series {
		if len(s.Entries) == 0 && len(s.Ys) > 0 {
			out := model.SeriesOf(s.Ys...)
			out.Name = s.Name
			return out
		}
		return model.NewSeries(s.Name, s.Entries...)
	})

	var out model.Dataset
	switch kind {
	case model.Column:
		out = model.NewColumns(d.Axis, d.Merge, ss...)
	case model.Line:
		out = model.NewLines(d.Axis, ss...)
	default:
		out = model.NewCandles(d.Axis, d.Candles...)
	}
	out.ID = uuid.NewSHA1(identitySpace, []byte(kind.String()))
	if d.ID != nil {
		out.ID = *d.ID
	}
	return out, nil
}

// ImportJSON reads a JSON model file at path. Errors carry the path.
func ImportJSON(path string) (*model.Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	m, err := ReadJSON(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}
