// Package model defines the chart data handed to the layout engine.
//
// A [Model] is an ordered collection of [Dataset] values, at most one per
// [Kind], plus an [ExtraStore] side channel for data that travels with the
// model without being series data (legend labels, for instance).
//
// Models are immutable once published: constructors copy their inputs and
// no method mutates a model in place. This lets a producer goroutine build a
// model while the drawing goroutine keeps reading the previous one.
//
// # Identity
//
// Every dataset carries an opaque ID. Two datasets with the same ID are the
// same logical dataset at different points in time, and transitions between
// them animate value by value. A dataset with a fresh ID is treated as new and
// animates in from zero. Use [Dataset.WithSeries] or [Dataset.WithCandles] to
// produce the next version of a dataset while keeping its identity.
package model

import (
	"fmt"
	"slices"

	"github.com/google/uuid"

	errs "github.com/matzehuels/cartesian/pkg/errors"
)

// Model is one chart's data at one point in time.
type Model struct {
	ID       uuid.UUID
	Datasets []Dataset
	Extras   ExtraStore
}

// New builds a model from datasets, kept in the given order. It fails with
// INVALID_CONFIG if two datasets share a kind, or with INVALID_MODEL if a
// dataset holds invalid values.
func New(datasets ...Dataset) (*Model, error) {
	seen := make(map[Kind]bool, len(datasets))
	out := make([]Dataset, 0, len(datasets))
	for i, d := range datasets {
		if seen[d.Kind] {
			return nil, errs.New(errs.ErrCodeInvalidConfig, "dataset %d: a model holds at most one %s dataset", i, d.Kind)
		}
		seen[d.Kind] = true
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("dataset %d: %w", i, err)
		}
		out = append(out, d.clone())
	}
	return &Model{ID: uuid.New(), Datasets: out}, nil
}

// MustNew is like New but panics on error. Intended for tests and examples.
func MustNew(datasets ...Dataset) *Model {
	m, err := New(datasets...)
	if err != nil {
		panic(err)
	}
	return m
}

// Dataset returns the dataset of the given kind.
func (m *Model) Dataset(kind Kind) (Dataset, bool) {
	if m == nil {
		return Dataset{}, false
	}
	for _, d := range m.Datasets {
		if d.Kind == kind {
			return d, true
		}
	}
	return Dataset{}, false
}

// IsEmpty reports whether the model holds no entries at all.
func (m *Model) IsEmpty() bool {
	if m == nil {
		return true
	}
	for _, d := range m.Datasets {
		if !d.IsEmpty() {
			return false
		}
	}
	return true
}

// Xs returns the distinct X values of all datasets, ascending.
func (m *Model) Xs() []float64 {
	if m == nil {
		return nil
	}
	var xs []float64
	for _, d := range m.Datasets {
		xs = append(xs, d.Xs()...)
	}
	slices.Sort(xs)
	return slices.Compact(xs)
}

// WithExtras returns a shallow copy of m carrying the given extra store.
func (m *Model) WithExtras(extras ExtraStore) *Model {
	cp := *m
	cp.Extras = extras
	return &cp
}

// WithDataset returns a copy of m in which the dataset of d's kind is replaced
// by d, or d is appended if the model has no dataset of that kind.
func (m *Model) WithDataset(d Dataset) *Model {
	cp := &Model{ID: m.ID, Extras: m.Extras, Datasets: slices.Clone(m.Datasets)}
	for i := range cp.Datasets {
		if cp.Datasets[i].Kind == d.Kind {
			cp.Datasets[i] = d.clone()
			return cp
		}
	}
	cp.Datasets = append(cp.Datasets, d.clone())
	return cp
}
