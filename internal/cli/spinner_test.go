package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func startTestSpinner(ctx context.Context, w *bytes.Buffer, msg string) *spinner {
	s := newSpinner(w, msg)
	s.interval = time.Millisecond
	s.start(ctx)
	return s
}

func TestSpinnerDrawsAndClears(t *testing.T) {
	var buf bytes.Buffer
	s := startTestSpinner(context.Background(), &buf, "Converting to png...")
	time.Sleep(20 * time.Millisecond)
	s.stop(nil)

	out := buf.String()
	if !strings.Contains(out, "Converting to png...") {
		t.Errorf("output %q lacks the message", out)
	}
	if !strings.HasSuffix(out, "\r") {
		t.Errorf("output %q does not end on a cleared line", out)
	}
	if strings.Contains(out, iconError) {
		t.Errorf("successful step left a failure line: %q", out)
	}
}

func TestSpinnerStopReportsFailure(t *testing.T) {
	var buf bytes.Buffer
	s := startTestSpinner(context.Background(), &buf, "Converting to pdf...")
	s.stop(errors.New("rsvg-convert missing"))
	s.stop(errors.New("again"))

	out := buf.String()
	if n := strings.Count(out, iconError); n != 1 {
		t.Fatalf("failure lines = %d, want 1 in %q", n, out)
	}
	if !strings.Contains(out, iconError+" Converting to pdf\n") {
		t.Errorf("failure line missing in %q", out)
	}
}

func TestSpinnerStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var buf bytes.Buffer
	s := startTestSpinner(ctx, &buf, "Converting to png...")
	cancel()

	select {
	case <-s.stopped:
	case <-time.After(time.Second):
		t.Fatal("spinner still running after cancel")
	}
	s.stop(nil)
}

func TestSpinnerStopWithoutStart(t *testing.T) {
	var buf bytes.Buffer
	newSpinner(&buf, "idle").stop(errors.New("boom"))
	if buf.Len() != 0 {
		t.Errorf("unstarted spinner wrote %q", buf.String())
	}
}

func TestWithSpinner(t *testing.T) {
	var buf bytes.Buffer
	got, err := withSpinner(context.Background(), &buf, "Converting to png...", func() ([]byte, error) {
		return []byte("png"), nil
	})
	if err != nil || string(got) != "png" {
		t.Fatalf("withSpinner() = %q, %v", got, err)
	}

	want := errors.New("convert failed")
	if _, err := withSpinner(context.Background(), &buf, "Converting to pdf...", func() ([]byte, error) {
		return nil, want
	}); !errors.Is(err, want) {
		t.Errorf("withSpinner() error = %v, want %v", err, want)
	}
	if !strings.Contains(buf.String(), iconError+" Converting to pdf") {
		t.Errorf("failed step not reported in %q", buf.String())
	}
}
