package main

import (
	"fmt"

	"github.com/fwojciec/wordsaver"
	"github.com/fwojciec/wordsaver/capture"
	"github.com/fwojciec/wordsaver/goquery"
)

// Run executes the save command. With --occurrence the chosen match is
// selected on the page and captured as a range selection.
func (c *SaveCmd) Run(deps *Dependencies) error {
	page, err := fetchPage(deps, c.URL)
	if err != nil {
		return err
	}

	var src capture.Source = capture.MenuSource{Page: page, Text: c.Text}
	if c.Occurrence > 0 {
		if err := page.SelectText(c.Text, c.Occurrence-1); err != nil {
			return reportCapture(deps, nil, err)
		}
		src = capture.RangeSource{Page: page}
	}

	item, err := deps.Capturer.Capture(deps.Ctx, src)
	return reportCapture(deps, item, err)
}

// fetchPage downloads url and parses it for capture.
func fetchPage(deps *Dependencies, url string) (*goquery.Page, error) {
	html, err := deps.Fetcher.Fetch(deps.Ctx, url)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: fetching %s: %s\n", url, wordsaver.ErrorMessage(err))
		return nil, err
	}

	page, err := goquery.NewPageFromString(html)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wordsaver.ErrorMessage(err))
		return nil, err
	}
	return page, nil
}

// reportCapture prints the outcome of a capture. Silent aborts print a
// short notice and are not errors.
func reportCapture(deps *Dependencies, item *wordsaver.SavedTextItem, err error) error {
	if err != nil {
		if wordsaver.IsSilent(err) {
			fmt.Fprintln(deps.Stdout, "Nothing saved.")
			return nil
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", wordsaver.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Saved %q (%s)\n  %s\n", item.Content.Selected, item.ID, item.FullText)
	return nil
}
