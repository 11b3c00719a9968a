// Package tracking keeps hand identities stable across frames.
//
// The detector reports hands in no guaranteed order, so per-hand state keyed
// by slice index would swap between hands. The Tracker associates each frame's
// hands with existing tracks by nearest wrist, the same greedy nearest-neighbour
// association used for blob tracking.
package tracking

import (
	"math"
	"sort"
	"time"

	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/hand"
	"github.com/google/uuid"
)

// Default association parameters.
const (
	DefaultMaxMatchDistance = 150.0
	DefaultMaxMissed        = 5
)

// Track is one hand followed over time.
type Track struct {
	ID        uuid.UUID
	Hand      hand.Hand
	FirstSeen time.Time
	LastSeen  time.Time
	// Missed counts consecutive frames without a match.
	Missed int
}

// Seen reports whether the track was matched on the latest frame.
func (t *Track) Seen() bool {
	return t.Missed == 0
}

// Frame is the result of one Update.
type Frame struct {
	// Seen are tracks matched this frame, oldest first.
	Seen []*Track
	// Added are tracks created this frame.
	Added []*Track
	// Removed are tracks dropped this frame after too many misses.
	Removed []*Track
}

// Primary returns the oldest track seen this frame, or nil.
func (f Frame) Primary() *Track {
	if len(f.Seen) == 0 {
		return nil
	}
	return f.Seen[0]
}

// Tracker associates hands with tracks frame to frame.
type Tracker struct {
	// MaxMatchDistance is the largest wrist displacement, in pixels, matched
	// in the first pass. Farther hands only continue a track nothing closer
	// claimed.
	MaxMatchDistance float64
	// MaxMissed is how many consecutive frames a track survives unmatched.
	MaxMissed int

	tracks []*Track
}

// New creates a Tracker.
func New(maxMatchDistance float64, maxMissed int) *Tracker {
	return &Tracker{MaxMatchDistance: maxMatchDistance, MaxMissed: maxMissed}
}

type pair struct {
	track, hand int
	dist        float64
}

// Update associates this frame's hands with tracks.
func (t *Tracker) Update(hands []hand.Hand, now time.Time) Frame {
	var pairs []pair
	for ti, tr := range t.tracks {
		for hi, h := range hands {
			if h.Empty() || !sameSide(tr.Hand.Handedness, h.Handedness) {
				continue
			}
			d := wristDistance(tr.Hand, h)
			if d <= t.MaxMatchDistance {
				pairs = append(pairs, pair{track: ti, hand: hi, dist: d})
			}
		}
	}

	trackUsed := make([]bool, len(t.tracks))
	handUsed := make([]bool, len(hands))
	t.assign(pairs, hands, trackUsed, handUsed, now)

	// A hand that moved past the gate continues a same-side track left
	// unmatched, nearest first, rather than starting over.
	var jumps []pair
	for ti, tr := range t.tracks {
		if trackUsed[ti] {
			continue
		}
		for hi, h := range hands {
			if handUsed[hi] || h.Empty() || !sameSide(tr.Hand.Handedness, h.Handedness) {
				continue
			}
			if d := wristDistance(tr.Hand, h); !math.IsInf(d, 1) {
				jumps = append(jumps, pair{track: ti, hand: hi, dist: d})
			}
		}
	}
	t.assign(jumps, hands, trackUsed, handUsed, now)

	var frame Frame
	kept := t.tracks[:0]
	for i, tr := range t.tracks {
		if !trackUsed[i] {
			tr.Missed++
			if tr.Missed > t.MaxMissed {
				frame.Removed = append(frame.Removed, tr)
				continue
			}
		}
		kept = append(kept, tr)
	}
	t.tracks = kept

	for i, h := range hands {
		if handUsed[i] || h.Empty() {
			continue
		}
		tr := &Track{ID: uuid.New(), Hand: h, FirstSeen: now, LastSeen: now}
		t.tracks = append(t.tracks, tr)
		frame.Added = append(frame.Added, tr)
	}

	for _, tr := range t.tracks {
		if tr.Seen() {
			frame.Seen = append(frame.Seen, tr)
		}
	}
	return frame
}

// assign matches pairs greedily by ascending distance.
func (t *Tracker) assign(pairs []pair, hands []hand.Hand, trackUsed, handUsed []bool, now time.Time) {
	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].dist < pairs[j].dist
	})
	for _, p := range pairs {
		if trackUsed[p.track] || handUsed[p.hand] {
			continue
		}
		trackUsed[p.track], handUsed[p.hand] = true, true

		tr := t.tracks[p.track]
		tr.Hand = hands[p.hand]
		tr.LastSeen = now
		tr.Missed = 0
	}
}

// Tracks returns every live track, oldest first.
func (t *Tracker) Tracks() []*Track {
	return append([]*Track(nil), t.tracks...)
}

// Reset drops every track and returns them.
func (t *Tracker) Reset() []*Track {
	removed := t.tracks
	t.tracks = nil
	return removed
}

// sameSide treats an unknown label as compatible with either side.
func sameSide(a, b hand.Handedness) bool {
	return a == "" || b == "" || a == b
}

func wristDistance(a, b hand.Hand) float64 {
	pa, okA := a.Point(detector.Wrist)
	pb, okB := b.Point(detector.Wrist)
	if !okA || !okB {
		return math.Inf(1)
	}
	return math.Hypot(float64(pa.X-pb.X), float64(pa.Y-pb.Y))
}
