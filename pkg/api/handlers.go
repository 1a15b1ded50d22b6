package api

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/matzehuels/cartesian/pkg/axis"
	"github.com/matzehuels/cartesian/pkg/buildinfo"
	"github.com/matzehuels/cartesian/pkg/cache"
	"github.com/matzehuels/cartesian/pkg/chart"
	"github.com/matzehuels/cartesian/pkg/diff"
	errs "github.com/matzehuels/cartesian/pkg/errors"
	"github.com/matzehuels/cartesian/pkg/geom"
	chartio "github.com/matzehuels/cartesian/pkg/io"
	"github.com/matzehuels/cartesian/pkg/model"
	"github.com/matzehuels/cartesian/pkg/state"
)

// FrameRequest selects a model and the view to measure it in.
type FrameRequest struct {
	Model  json.RawMessage `json:"model"`
	Width  *float64        `json:"width,omitempty"`
	Height *float64        `json:"height,omitempty"`

	// StateID restores a stored snapshot before Zoom and Scroll apply.
	StateID string   `json:"state_id,omitempty"`
	Zoom    *float64 `json:"zoom,omitempty"`
	Scroll  *float64 `json:"scroll,omitempty"`
}

// MarkersRequest resolves the marker at canvas X.
type MarkersRequest struct {
	FrameRequest
	X float64 `json:"x"`
}

// MarkersResponse lists the resolved targets, in layer order.
type MarkersResponse struct {
	Targets []MarkerTarget `json:"targets"`
}

// TicksRequest places labels on a vertical axis. Count selects the count
// placer; otherwise the step placer is used with an optional Step.
type TicksRequest struct {
	Min              float64  `json:"min"`
	Max              float64  `json:"max"`
	Height           float64  `json:"height"`
	LabelHeight      float64  `json:"label_height"`
	Step             *float64 `json:"step,omitempty"`
	Count            *int     `json:"count,omitempty"`
	ShiftTopLines    bool     `json:"shift_top_lines,omitempty"`
	TopLineThreshold float64  `json:"top_line_threshold,omitempty"`
}

// TicksResponse holds the labeled values and the values that get lines.
type TicksResponse struct {
	Labels []float64 `json:"labels"`
	Lines  []float64 `json:"lines"`
}

// InterpolateRequest interpolates from Old to New at Fraction in [0, 1].
type InterpolateRequest struct {
	Old      json.RawMessage `json:"old"`
	New      json.RawMessage `json:"new"`
	Fraction float64         `json:"fraction"`
}

// StateResponse is a stored snapshot and its ID.
type StateResponse struct {
	ID       string         `json:"id"`
	Snapshot state.Snapshot `json:"snapshot"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Get())
}

func (s *Server) handleMeasure(w http.ResponseWriter, r *http.Request) {
	var req FrameRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.respond(w, r, frameKey("measure", req, req), func() (any, error) {
		ch, err := s.frame(r, req)
		if err != nil {
			return nil, err
		}
		return Measure(ch), nil
	})
}

func (s *Server) handleMarkers(w http.ResponseWriter, r *http.Request) {
	var req MarkersRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.respond(w, r, frameKey("markers", req.FrameRequest, req), func() (any, error) {
		ch, err := s.frame(r, req.FrameRequest)
		if err != nil {
			return nil, err
		}
		return MarkersResponse{Targets: Targets(ch.MarkerTargets(req.X))}, nil
	})
}

func (s *Server) handleTicks(w http.ResponseWriter, r *http.Request) {
	var req TicksRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.respond(w, r, cache.Key("ticks", req), func() (any, error) {
		return PlaceTicks(req)
	})
}

// frameKey is the cache key of a frame request, or "" when the response
// depends on stored state.
func frameKey(prefix string, fr FrameRequest, req any) string {
	if fr.StateID != "" {
		return ""
	}
	return cache.Key(prefix, req)
}

// PlaceTicks runs the item placer req selects.
func PlaceTicks(req TicksRequest) (TicksResponse, error) {
	var (
		p   axis.ItemPlacer
		err error
	)
	if req.Count != nil {
		p, err = axis.NewCountPlacer(axis.CountOptions{
			Count:            req.Count,
			ShiftTopLines:    req.ShiftTopLines,
			TopLineThreshold: req.TopLineThreshold,
		})
	} else {
		p, err = axis.NewStepPlacer(axis.StepOptions{
			Step:             req.Step,
			ShiftTopLines:    req.ShiftTopLines,
			TopLineThreshold: req.TopLineThreshold,
		})
	}
	if err != nil {
		return TicksResponse{}, err
	}
	r := geom.Range{Min: req.Min, Max: req.Max}
	labels, err := axis.PlaceItems(r, req.Height, req.LabelHeight, p)
	if err != nil {
		return TicksResponse{}, err
	}
	return TicksResponse{
		Labels: labels,
		Lines:  p.LineValues(r, req.Height, req.LabelHeight),
	}, nil
}

func (s *Server) handleInterpolate(w http.ResponseWriter, r *http.Request) {
	var req InterpolateRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Fraction < 0 || req.Fraction > 1 {
		s.writeError(w, r, errs.New(errs.ErrCodeInvalidConfig, "fraction must be in [0, 1], got %v", req.Fraction))
		return
	}
	old, err := readModel("old", req.Old)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	next, err := readModel("new", req.New)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := chartio.WriteJSON(diff.Interpolate(old, next, req.Fraction), &buf); err != nil {
		s.writeError(w, r, errs.Wrap(errs.ErrCodeInternal, err, "encode model"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleCreateState(w http.ResponseWriter, r *http.Request) {
	var snap state.Snapshot
	if err := decode(w, r, &snap); err != nil {
		s.writeError(w, r, err)
		return
	}
	id := uuid.NewString()
	s.saveState(w, r, id, snap, http.StatusCreated)
}

func (s *Server) handlePutState(w http.ResponseWriter, r *http.Request) {
	var snap state.Snapshot
	if err := decode(w, r, &snap); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.saveState(w, r, chi.URLParam(r, "id"), snap, http.StatusOK)
}

func (s *Server) saveState(w http.ResponseWriter, r *http.Request, id string, snap state.Snapshot, status int) {
	if err := s.store.Save(r.Context(), id, snap); err != nil {
		s.writeError(w, r, err)
		return
	}
	// Stores stamp the update time; report what was kept.
	if saved, found, err := s.store.Load(r.Context(), id); err == nil && found {
		snap = saved
	}
	writeJSON(w, status, StateResponse{ID: id, Snapshot: snap})
}

func (s *Server) handleGetState(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	snap, err := s.loadState(r, id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, StateResponse{ID: id, Snapshot: snap})
}

func (s *Server) handleDeleteState(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) loadState(r *http.Request, id string) (state.Snapshot, error) {
	snap, found, err := s.store.Load(r.Context(), id)
	if err != nil {
		return snap, err
	}
	if !found {
		return snap, errs.New(errs.ErrCodeNotFound, "no state for chart %q", id)
	}
	return snap, nil
}

// frame builds and measures the chart req describes.
func (s *Server) frame(r *http.Request, req FrameRequest) (*chart.Chart, error) {
	m, err := readModel("model", req.Model)
	if err != nil {
		return nil, err
	}
	cfg := *s.cfg
	if req.Width != nil {
		cfg.Width = *req.Width
	}
	if req.Height != nil {
		cfg.Height = *req.Height
	}
	ch, err := cfg.Frame(r.Context(), m, s.logger)
	if err != nil {
		return nil, err
	}

	snap := ch.Snapshot()
	restore := false
	if req.StateID != "" {
		if snap, err = s.loadState(r, req.StateID); err != nil {
			return nil, err
		}
		restore = true
	}
	if req.Zoom != nil {
		snap.ZoomValue, snap.ZoomOverridden = *req.Zoom, true
		restore = true
	}
	if req.Scroll != nil {
		snap.ScrollValue = *req.Scroll
		restore = true
	}
	if restore {
		if err := snap.Validate(); err != nil {
			return nil, err
		}
		ch.Restore(r.Context(), snap)
	}
	return ch, nil
}

// readModel decodes a model document. A missing document is the empty
// model.
func readModel(field string, raw json.RawMessage) (*model.Model, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	m, err := chartio.ReadJSON(bytes.NewReader(raw))
	if err != nil {
		code := errs.GetCode(err)
		if code == "" {
			code = errs.ErrCodeInvalidFormat
		}
		return nil, errs.Wrap(code, err, "%s", field)
	}
	return m, nil
}
