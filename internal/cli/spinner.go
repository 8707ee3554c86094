package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// spinner animates a status line while a library is loaded. Nothing is
// drawn unless the output is a terminal.
type spinner struct {
	out     io.Writer
	message string
	stop    chan struct{}
	once    sync.Once
	wg      sync.WaitGroup
}

// startSpinner draws message on statusOut until Stop is called or ctx ends.
func startSpinner(ctx context.Context, message string) *spinner {
	return startSpinnerOn(ctx, statusOut, message)
}

func startSpinnerOn(ctx context.Context, out io.Writer, message string) *spinner {
	s := &spinner{out: out, message: message, stop: make(chan struct{})}
	if isTerminal(out) {
		s.wg.Add(1)
		go s.run(ctx)
	}
	return s
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (s *spinner) run(ctx context.Context) {
	defer s.wg.Done()
	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()

	for i := 0; ; i++ {
		select {
		case <-ctx.Done():
			s.clear()
			return
		case <-s.stop:
			s.clear()
			return
		case <-ticker.C:
			frame := spinnerFrames[i%len(spinnerFrames)]
			fmt.Fprintf(s.out, "\r%s %s", styleSpinner.Render(frame), StyleDim.Render(s.message))
		}
	}
}

func (s *spinner) clear() {
	fmt.Fprintf(s.out, "\r%s\r", strings.Repeat(" ", lipgloss.Width(s.message)+2))
}

// Stop ends the animation and waits for the line to be cleared. It may be
// called any number of times.
func (s *spinner) Stop() {
	s.once.Do(func() { close(s.stop) })
	s.wg.Wait()
}
