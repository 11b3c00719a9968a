package input

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
)

// Recorder is an Injector that records calls instead of touching the real
// mouse. It backs dry runs and tests.
type Recorder struct {
	mu     sync.Mutex
	calls  []string
	x, y   int
	held   map[Button]bool
	logger *slog.Logger
}

// NewRecorder creates a Recorder. A non-nil logger receives every call at debug level.
func NewRecorder(logger *slog.Logger) *Recorder {
	return &Recorder{held: make(map[Button]bool), logger: logger}
}

func (r *Recorder) record(call string) {
	r.calls = append(r.calls, call)
	if r.logger != nil {
		r.logger.Debug("injected", "call", call)
	}
}

func (r *Recorder) Move(x, y int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.x, r.y = x, y
	r.calls = append(r.calls, fmt.Sprintf("move %d %d", x, y))
}

func (r *Recorder) Click(b Button) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("click " + string(b))
}

func (r *Recorder) Toggle(b Button, down bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.held[b] = down
	if down {
		r.record("down " + string(b))
	} else {
		r.record("up " + string(b))
	}
}

func (r *Recorder) Scroll(amount int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record(fmt.Sprintf("scroll %d", amount))
}

// Calls returns every recorded call, moves included.
func (r *Recorder) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

// Actions returns recorded calls other than moves.
func (r *Recorder) Actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, c := range r.calls {
		if strings.HasPrefix(c, "move ") {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Position returns the last move target.
func (r *Recorder) Position() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.x, r.y
}

// Held reports whether b is currently toggled down.
func (r *Recorder) Held(b Button) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.held[b]
}

// Reset clears the recorded calls.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
}
