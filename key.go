package wordsaver

import (
	"context"
	"time"
)

// KeyEvent is a Control key transition observed on a live page.
type KeyEvent struct {
	Down bool
	Time time.Time
}

// KeySource streams Control key transitions from a live page.
type KeySource interface {
	// ControlKeys returns a channel of key events in the order the page saw
	// them. The channel is closed when ctx is done.
	ControlKeys(ctx context.Context) (<-chan KeyEvent, error)
}
