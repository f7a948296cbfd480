package capture

import (
	"context"

	"github.com/fwojciec/wordsaver"
)

// WatchKeys feeds Control key events through tap and runs a RangeSource
// capture on page for every double tap. Events are handled one at a time in
// arrival order. Each successful capture and each failure that is not a
// silent abort is passed to report.
//
// WatchKeys returns nil when keys is closed, or the context error when ctx
// is done first.
func (c *Capturer) WatchKeys(
	ctx context.Context,
	keys <-chan wordsaver.KeyEvent,
	page wordsaver.SelectionReader,
	tap *DoubleTap,
	report func(*wordsaver.SavedTextItem, error),
) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-keys:
			if !ok {
				return nil
			}
			if !ev.Down {
				tap.KeyUp(ev.Time)
				continue
			}
			if !tap.KeyDown(ev.Time) {
				continue
			}

			item, err := c.Capture(ctx, RangeSource{Page: page})
			if wordsaver.IsSilent(err) {
				continue
			}
			report(item, err)
		}
	}
}
