package main

import (
	"fmt"

	"github.com/fwojciec/wordsaver"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	items, err := deps.Words.FindSavedWords(deps.Ctx, wordsaver.SavedWordFilter{
		Offset: c.Offset,
		Limit:  c.Limit,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wordsaver.ErrorMessage(err))
		return err
	}

	if len(items) == 0 {
		fmt.Fprintln(deps.Stdout, "No saved words. Use 'wordsaver save' or 'wordsaver watch' to capture some.")
		return nil
	}

	fmt.Fprintln(deps.Stdout, wordsaver.FormatSavedWords(items))
	return nil
}
