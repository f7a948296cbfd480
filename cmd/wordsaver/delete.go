package main

import (
	"fmt"

	"github.com/fwojciec/wordsaver"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if err := deps.Words.DeleteSavedWord(deps.Ctx, c.ID); err != nil {
		if wordsaver.ErrorCode(err) == wordsaver.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: saved word %q not found. Use 'wordsaver list' to see saved words.\n", c.ID)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", wordsaver.ErrorMessage(err))
		}
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted %s\n", c.ID)
	return nil
}
