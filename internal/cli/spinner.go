package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 80 * time.Millisecond

// spinner animates a status line on w while a slow step runs, such as the
// rsvg-convert call behind PNG and PDF output. Cancelling the context it
// was started with stops it as well.
type spinner struct {
	w        io.Writer
	msg      string
	interval time.Duration

	cancel  context.CancelFunc
	stopped chan struct{}
	once    sync.Once
}

func newSpinner(w io.Writer, msg string) *spinner {
	return &spinner{w: w, msg: msg, interval: spinnerInterval}
}

// start begins the animation. It must be called at most once.
func (s *spinner) start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)
	s.stopped = make(chan struct{})
	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for i := 0; ; i++ {
			select {
			case <-ctx.Done():
				s.clear()
				return
			case <-ticker.C:
				frame := spinnerFrames[i%len(spinnerFrames)]
				fmt.Fprintf(s.w, "\r%s %s", styleIconSpinner.Render(frame), StyleDim.Render(s.msg))
			}
		}
	}()
}

// stop ends the animation and clears the line. A non-nil err leaves a
// failure line for the step behind. Later calls do nothing.
func (s *spinner) stop(err error) {
	s.once.Do(func() {
		if s.cancel == nil {
			return
		}
		s.cancel()
		<-s.stopped
		if err != nil {
			printError(s.w, "%s", strings.TrimSuffix(s.msg, "..."))
		}
	})
}

func (s *spinner) clear() {
	width := lipgloss.Width(spinnerFrames[0]) + 1 + lipgloss.Width(s.msg)
	fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", width))
}

// withSpinner runs fn while a spinner shows msg on w.
func withSpinner[T any](ctx context.Context, w io.Writer, msg string, fn func() (T, error)) (T, error) {
	s := newSpinner(w, msg)
	s.start(ctx)
	v, err := fn()
	s.stop(err)
	return v, err
}
