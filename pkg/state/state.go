// Package state persists the scroll and zoom state of charts so a chart can
// be torn down and recreated without losing the user's position.
//
// Only three values are stored per chart: the scroll value, the zoom value
// and whether the user overrode the zoom. Backends:
//   - [NullStore]: stores nothing, for hosts that do not persist state
//   - [MemoryStore]: in-process map, for tests and single-instance servers
//   - [FileStore]: JSON files in a directory, for the CLI
//   - [RedisStore]: Redis keys, for multi-instance servers
//   - [MongoStore]: MongoDB documents, for servers that already run Mongo
//
// All stores are safe for concurrent use.
//
// # Usage
//
//	store, err := state.NewFileStore("")
//	if err != nil {
//	    return err
//	}
//	snap, found, err := store.Load(ctx, chartID)
//	if found {
//	    c.Restore(snap)
//	}
//	...
//	store.Save(ctx, chartID, c.Snapshot())
package state

import (
	"context"
	"math"
	"regexp"
	"time"

	errs "github.com/matzehuels/cartesian/pkg/errors"
	"github.com/matzehuels/cartesian/pkg/observability"
)

// Snapshot is the persisted state of one chart.
type Snapshot struct {
	ScrollValue    float64   `json:"scroll_value" bson:"scroll_value"`
	ZoomValue      float64   `json:"zoom_value" bson:"zoom_value"`
	ZoomOverridden bool      `json:"zoom_overridden" bson:"zoom_overridden"`
	UpdatedAt      time.Time `json:"updated_at" bson:"updated_at"`
}

// Validate checks that the values can be restored.
func (s Snapshot) Validate() error {
	if math.IsNaN(s.ScrollValue) || math.IsInf(s.ScrollValue, 0) || s.ScrollValue < 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "scroll value must be finite and non-negative, got %v", s.ScrollValue)
	}
	if math.IsNaN(s.ZoomValue) || math.IsInf(s.ZoomValue, 0) || s.ZoomValue <= 0 {
		return errs.New(errs.ErrCodeInvalidZoom, "zoom value must be finite and positive, got %v", s.ZoomValue)
	}
	return nil
}

// Store is the interface for state backends.
type Store interface {
	// Load returns the snapshot stored for id. found is false when there is
	// none.
	Load(ctx context.Context, id string) (snap Snapshot, found bool, err error)

	// Save stores snap for id, replacing any previous snapshot.
	Save(ctx context.Context, id string, snap Snapshot) error

	// Delete removes the snapshot for id. Deleting a missing id is not an
	// error.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close() error
}

// keyPrefix namespaces chart state in shared backends.
const keyPrefix = "cartesian:state:"

var validID = regexp.MustCompile(`^[A-Za-z0-9_.-]{1,128}$`)

// ValidateID checks that id is usable as a key in every backend: 1 to 128
// letters, digits, '_', '.' or '-'.
func ValidateID(id string) error {
	if !validID.MatchString(id) || id == "." || id == ".." {
		return errs.New(errs.ErrCodeInvalidConfig, "invalid chart id %q", id)
	}
	return nil
}

// observeLoad reports a load to the store hooks.
func observeLoad(ctx context.Context, backend string, start time.Time, found bool, err error) {
	observability.Store().OnStoreLoad(ctx, backend, found, time.Since(start), err)
}

// observeSave reports a save to the store hooks.
func observeSave(ctx context.Context, backend string, start time.Time, err error) {
	observability.Store().OnStoreSave(ctx, backend, time.Since(start), err)
}

// observeDelete reports a delete to the store hooks.
func observeDelete(ctx context.Context, backend string, start time.Time, err error) {
	observability.Store().OnStoreDelete(ctx, backend, time.Since(start), err)
}

// prepare validates id and snap and stamps the snapshot.
func prepare(id string, snap Snapshot) (Snapshot, error) {
	if err := ValidateID(id); err != nil {
		return snap, err
	}
	if err := snap.Validate(); err != nil {
		return snap, err
	}
	if snap.UpdatedAt.IsZero() {
		snap.UpdatedAt = time.Now().UTC()
	}
	return snap, nil
}
