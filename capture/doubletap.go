package capture

import "time"

// DefaultDoubleTapWindow is the maximum gap between two Control presses
// that counts as a double tap, and the delay after a key release before
// the detector disarms.
const DefaultDoubleTapWindow = 500 * time.Millisecond

// TapState is the state of a DoubleTap detector.
type TapState int

const (
	Idle TapState = iota
	Armed
)

func (s TapState) String() string {
	if s == Armed {
		return "armed"
	}
	return "idle"
}

// DoubleTap detects two Control presses in quick succession. Time is passed
// in by the caller so the detector never reads a clock.
//
// A release does not disarm immediately: it takes effect one window after
// the key-up, so releasing the key between the two taps keeps the detector
// armed. DoubleTap is not safe for concurrent use; feed it from one event
// loop.
type DoubleTap struct {
	window    time.Duration
	state     TapState
	lastPress time.Time
	releases  []time.Time
}

// NewDoubleTap returns a detector with the given window. A non-positive
// window uses DefaultDoubleTapWindow.
func NewDoubleTap(window time.Duration) *DoubleTap {
	if window <= 0 {
		window = DefaultDoubleTapWindow
	}
	return &DoubleTap{window: window}
}

// State returns the detector state as of now.
func (d *DoubleTap) State(now time.Time) TapState {
	d.applyReleases(now)
	return d.state
}

// KeyDown records a Control press and reports whether it completes a
// double tap. Firing returns the detector to Idle.
func (d *DoubleTap) KeyDown(now time.Time) bool {
	d.applyReleases(now)

	if d.state == Armed && now.Sub(d.lastPress) < d.window {
		d.state = Idle
		return true
	}

	d.state = Armed
	d.lastPress = now
	return false
}

// KeyUp records a Control release. The detector disarms one window later.
func (d *DoubleTap) KeyUp(now time.Time) {
	d.applyReleases(now)
	d.releases = append(d.releases, now.Add(d.window))
}

// applyReleases runs every pending release due at or before now. A release
// disarms the detector only if it was armed no later than the release.
func (d *DoubleTap) applyReleases(now time.Time) {
	pending := d.releases[:0]
	for _, at := range d.releases {
		if at.After(now) {
			pending = append(pending, at)
			continue
		}
		if d.state == Armed && !d.lastPress.After(at) {
			d.state = Idle
		}
	}
	d.releases = pending
}
