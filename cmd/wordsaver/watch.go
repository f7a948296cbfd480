package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/fwojciec/wordsaver"
	"github.com/fwojciec/wordsaver/capture"
)

// Run executes the watch command. It opens the page in a visible browser
// and saves the selection every time Control is pressed twice, until the
// context is canceled or the tab is closed.
func (c *WatchCmd) Run(deps *Dependencies) error {
	page, err := deps.OpenPage(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: opening %s: %v\n", c.URL, err)
		return err
	}
	defer page.Close()

	keys, err := page.ControlKeys(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wordsaver.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Watching %s. Select text and press Control twice to save it.\n", c.URL)

	report := func(item *wordsaver.SavedTextItem, err error) {
		_ = reportCapture(deps, item, err)
	}

	err = deps.Capturer.WatchKeys(deps.Ctx, keys, page, capture.NewDoubleTap(capture.DefaultDoubleTapWindow), report)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
