package main

import (
	"fmt"

	"github.com/fwojciec/wordsaver"
	"github.com/fwojciec/wordsaver/capture"
)

// Run executes the pick command.
func (c *PickCmd) Run(deps *Dependencies) error {
	doc, err := findDocument(deps, c.ID)
	if err != nil {
		return err
	}

	page, err := doc.Page(c.Page)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wordsaver.ErrorMessage(err))
		return err
	}

	item, err := deps.Capturer.Capture(deps.Ctx, capture.TextInputSource{
		PageText: page.Text,
		Start:    c.Start,
		End:      c.End,
	})
	return reportCapture(deps, item, err)
}
