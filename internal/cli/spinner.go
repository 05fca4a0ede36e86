package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner shows a status line on stderr while a workbook is rendered. It
// counts finished steps out of a known total and stops on context
// cancellation.
type Spinner struct {
	out    io.Writer
	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	message string
	width   int // widest line drawn, for clearing
	total   int
	done    int

	started  atomic.Bool
	stopOnce sync.Once
	stopped  chan struct{}
}

// newSpinner creates a spinner that stops when ctx is cancelled. total is the
// number of steps reported through Advance; zero hides the counter.
func newSpinner(ctx context.Context, message string, total int) *Spinner {
	sctx, cancel := context.WithCancel(ctx)
	return &Spinner{
		out:     os.Stderr,
		ctx:     sctx,
		cancel:  cancel,
		message: message,
		total:   total,
		stopped: make(chan struct{}),
	}
}

// Start begins the animation.
func (s *Spinner) Start() {
	if !s.started.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		for i := 0; ; i++ {
			select {
			case <-s.ctx.Done():
				s.clearLine()
				return
			case <-ticker.C:
				s.draw(spinnerFrames[i%len(spinnerFrames)])
			}
		}
	}()
}

// SetMessage replaces the status text.
func (s *Spinner) SetMessage(message string) {
	s.mu.Lock()
	s.message = message
	s.mu.Unlock()
}

// Advance records one finished step. Safe for concurrent use.
func (s *Spinner) Advance() {
	s.mu.Lock()
	if s.done < s.total {
		s.done++
	}
	s.mu.Unlock()
}

// status is the text drawn after the frame.
func (s *Spinner) status() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.total == 0 {
		return s.message
	}
	return fmt.Sprintf("%s (%d/%d)", s.message, s.done, s.total)
}

func (s *Spinner) draw(frame string) {
	text := s.status()
	s.mu.Lock()
	defer s.mu.Unlock()
	if n := len(text) + 2; n > s.width {
		s.width = n
	}
	fmt.Fprintf(s.out, "\r%s %s", styleIconSpinner.Render(frame), StyleDim.Render(text))
}

func (s *Spinner) clearLine() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.width == 0 {
		return
	}
	fmt.Fprintf(s.out, "\r%s\r", strings.Repeat(" ", s.width))
	s.width = 0
}

// Stop halts the animation and clears the line. Repeated calls are no-ops.
func (s *Spinner) Stop() {
	s.stopOnce.Do(func() {
		s.cancel()
		if s.started.Load() {
			<-s.stopped
		}
		s.clearLine()
	})
}

// StopWithError stops the spinner and prints message as an error.
func (s *Spinner) StopWithError(message string) {
	s.Stop()
	printError("%s", message)
}
