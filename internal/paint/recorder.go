package paint

import "sync"

// Recorder is a Sink that keeps every command it receives.
type Recorder struct {
	mu       sync.Mutex
	segments []Segment
	visible  bool
	clears   int
}

func (r *Recorder) Show() Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.visible = true
	return Delivered
}

func (r *Recorder) Hide() Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.visible = false
	return Delivered
}

func (r *Recorder) DrawSegment(s Segment) Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.segments = append(r.segments, s)
	return Delivered
}

func (r *Recorder) Clear() Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.segments = nil
	r.clears++
	return Delivered
}

// Segments returns the segments drawn since the last Clear.
func (r *Recorder) Segments() []Segment {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Segment(nil), r.segments...)
}

// Visible reports whether the last visibility command was Show.
func (r *Recorder) Visible() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.visible
}

// Clears returns how many times Clear was called.
func (r *Recorder) Clears() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.clears
}
