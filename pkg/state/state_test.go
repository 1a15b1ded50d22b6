package state

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/matzehuels/cartesian/pkg/errors"
	"github.com/matzehuels/cartesian/pkg/observability"
)

// storeEvent is one store hook call.
type storeEvent struct {
	op      string
	backend string
	found   bool
	failed  bool
}

type recordingHooks struct {
	mu     sync.Mutex
	events []storeEvent
}

func (h *recordingHooks) record(e storeEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, e)
}

func (h *recordingHooks) OnStoreLoad(_ context.Context, backend string, found bool, _ time.Duration, err error) {
	h.record(storeEvent{op: "load", backend: backend, found: found, failed: err != nil})
}

func (h *recordingHooks) OnStoreSave(_ context.Context, backend string, _ time.Duration, err error) {
	h.record(storeEvent{op: "save", backend: backend, failed: err != nil})
}

func (h *recordingHooks) OnStoreDelete(_ context.Context, backend string, _ time.Duration, err error) {
	h.record(storeEvent{op: "delete", backend: backend, failed: err != nil})
}

// exerciseStore runs the shared contract against a backend.
func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	_, found, err := s.Load(ctx, "chart-1")
	require.NoError(t, err)
	assert.False(t, found)

	want := Snapshot{ScrollValue: 120, ZoomValue: 1.5, ZoomOverridden: true}
	require.NoError(t, s.Save(ctx, "chart-1", want))

	got, found, err := s.Load(ctx, "chart-1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, want.ScrollValue, got.ScrollValue)
	assert.Equal(t, want.ZoomValue, got.ZoomValue)
	assert.True(t, got.ZoomOverridden)
	assert.False(t, got.UpdatedAt.IsZero(), "save stamps the snapshot")

	require.NoError(t, s.Save(ctx, "chart-1", Snapshot{ScrollValue: 0, ZoomValue: 2}))
	got, _, err = s.Load(ctx, "chart-1")
	require.NoError(t, err)
	assert.Equal(t, 2.0, got.ZoomValue)
	assert.False(t, got.ZoomOverridden)

	require.NoError(t, s.Delete(ctx, "chart-1"))
	require.NoError(t, s.Delete(ctx, "chart-1"), "deleting twice is fine")
	_, found, err = s.Load(ctx, "chart-1")
	require.NoError(t, err)
	assert.False(t, found)

	assert.Error(t, s.Save(ctx, "../escape", want))
	assert.Error(t, s.Save(ctx, "chart-1", Snapshot{ZoomValue: 0}))
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()
	exerciseStore(t, s)
}

func TestFileStore(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)
	defer s.Close()
	assert.Equal(t, dir, s.Path())
	exerciseStore(t, s)
}

func TestFileStorePersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	a, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, a.Save(ctx, "c", Snapshot{ScrollValue: 7, ZoomValue: 3}))

	b, err := NewFileStore(dir)
	require.NoError(t, err)
	got, found, err := b.Load(ctx, "c")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 7.0, got.ScrollValue)
}

func TestFileStoreCorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{"), 0600))
	s, err := NewFileStore(dir)
	require.NoError(t, err)
	_, _, err = s.Load(context.Background(), "bad")
	assert.Error(t, err)
}

func TestNullStore(t *testing.T) {
	ctx := context.Background()
	s := NewNullStore()
	require.NoError(t, s.Save(ctx, "c", Snapshot{ZoomValue: 1}))
	_, found, err := s.Load(ctx, "c")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Error(t, s.Save(ctx, "c", Snapshot{ZoomValue: math.NaN()}))
}

func TestValidateID(t *testing.T) {
	tests := []struct {
		id string
		ok bool
	}{
		{"chart", true},
		{"a.b-c_d", true},
		{"", false},
		{".", false},
		{"..", false},
		{"a/b", false},
		{"with space", false},
		{string(make([]byte, 129)), false},
	}
	for _, tt := range tests {
		err := ValidateID(tt.id)
		if tt.ok {
			assert.NoError(t, err, tt.id)
			continue
		}
		assert.True(t, errs.Is(err, errs.ErrCodeInvalidConfig), "%q: %v", tt.id, err)
	}
}

func TestSnapshotValidate(t *testing.T) {
	tests := []struct {
		name string
		snap Snapshot
		code errs.Code
	}{
		{"ok", Snapshot{ScrollValue: 10, ZoomValue: 1}, ""},
		{"negative scroll", Snapshot{ScrollValue: -1, ZoomValue: 1}, errs.ErrCodeInvalidConfig},
		{"inf scroll", Snapshot{ScrollValue: math.Inf(1), ZoomValue: 1}, errs.ErrCodeInvalidConfig},
		{"zero zoom", Snapshot{}, errs.ErrCodeInvalidZoom},
		{"nan zoom", Snapshot{ZoomValue: math.NaN()}, errs.ErrCodeInvalidZoom},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.snap.Validate()
			if tt.code == "" {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errs.Is(err, tt.code), "got %v", err)
		})
	}
}

func TestStoreHooks(t *testing.T) {
	fileStore := func(t *testing.T) Store {
		s, err := NewFileStore(t.TempDir())
		require.NoError(t, err)
		return s
	}
	tests := []struct {
		backend string
		open    func(*testing.T) Store
	}{
		{"memory", func(*testing.T) Store { return NewMemoryStore() }},
		{"file", fileStore},
	}
	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			h := &recordingHooks{}
			observability.SetStoreHooks(h)
			defer observability.Reset()

			ctx := context.Background()
			s := tt.open(t)
			_, _, _ = s.Load(ctx, "c")
			_ = s.Save(ctx, "c", Snapshot{ZoomValue: 1})
			_, _, _ = s.Load(ctx, "c")
			_ = s.Delete(ctx, "c")
			_ = s.Delete(ctx, "../c")
			_, _, _ = s.Load(ctx, "../c")

			want := []storeEvent{
				{op: "load", backend: tt.backend},
				{op: "save", backend: tt.backend},
				{op: "load", backend: tt.backend, found: true},
				{op: "delete", backend: tt.backend},
				{op: "delete", backend: tt.backend, failed: true},
				{op: "load", backend: tt.backend, failed: true},
			}
			assert.Equal(t, want, h.events)
		})
	}
}

func TestFileStoreHooksSeeParseErrors(t *testing.T) {
	h := &recordingHooks{}
	observability.SetStoreHooks(h)
	defer observability.Reset()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{"), 0600))
	s, err := NewFileStore(dir)
	require.NoError(t, err)

	_, found, err := s.Load(context.Background(), "bad")
	require.Error(t, err)
	assert.False(t, found)
	assert.Equal(t, []storeEvent{{op: "load", backend: "file", failed: true}}, h.events)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, "")
	require.NoError(t, err)
	assert.IsType(t, &NullStore{}, s)

	s, err = Open(ctx, "memory")
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	dir := t.TempDir()
	s, err = Open(ctx, "file://"+dir)
	require.NoError(t, err)
	require.IsType(t, &FileStore{}, s)
	assert.Equal(t, dir, s.(*FileStore).Path())

	_, err = Open(ctx, "ftp://host")
	assert.True(t, errs.Is(err, errs.ErrCodeUnsupported))

	_, err = Open(ctx, "redis://localhost/notanumber")
	assert.True(t, errs.Is(err, errs.ErrCodeInvalidConfig))
}
