package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/wordsaver"
)

// Run executes the dispatch command. It reads a stream of message envelopes
// from stdin and handles them in order. Context-menu messages are resolved
// against the page at their own url, or --url when they carry none. A
// failed message is reported and the stream continues; the first failure
// is returned once the stream ends.
func (c *DispatchCmd) Run(deps *Dependencies) error {
	dec := json.NewDecoder(deps.Stdin)

	var handled int
	var firstErr error
	for dec.More() {
		if deps.Ctx.Err() != nil {
			break
		}

		var msg wordsaver.Message
		if err := dec.Decode(&msg); err != nil {
			err = wordsaver.Errorf(wordsaver.EINVALID, "invalid message: %v", err)
			fmt.Fprintf(deps.Stderr, "error: %s\n", wordsaver.ErrorMessage(err))
			if firstErr == nil {
				firstErr = err
			}
			// The decoder cannot resynchronise after a syntax error.
			break
		}
		handled++

		if err := c.dispatch(deps, &msg); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if handled == 0 && firstErr == nil {
		firstErr = wordsaver.Errorf(wordsaver.EINVALID, "no message on stdin")
		fmt.Fprintf(deps.Stderr, "error: %s\n", wordsaver.ErrorMessage(firstErr))
	}
	return firstErr
}

func (c *DispatchCmd) dispatch(deps *Dependencies, msg *wordsaver.Message) error {
	var page wordsaver.SelectionReader
	if msg.Action == wordsaver.ActionContextMenuSelection {
		url := msg.URL
		if url == "" {
			url = c.URL
		}
		if url == "" {
			err := wordsaver.Errorf(wordsaver.EINVALID, "%s message needs a url or --url", msg.Action)
			fmt.Fprintf(deps.Stderr, "error: %s\n", wordsaver.ErrorMessage(err))
			return err
		}
		p, err := fetchPage(deps, url)
		if err != nil {
			return err
		}
		page = p
	}

	item, err := deps.Capturer.Dispatch(deps.Ctx, msg, page)
	return reportCapture(deps, item, err)
}
