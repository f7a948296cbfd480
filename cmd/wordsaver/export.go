package main

import (
	"fmt"
	"sync"

	"github.com/fwojciec/wordsaver"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	var mu sync.Mutex
	progress := func(completed, total int) {
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintf(deps.Stderr, "\r  translated %d/%d", completed, total)
	}

	result, err := deps.Exporter.Export(deps.Ctx, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "\nerror: %s\n", wordsaver.ErrorMessage(err))
		return err
	}

	if result.Items == 0 {
		fmt.Fprintln(deps.Stdout, "No saved words to export.")
		return nil
	}

	fmt.Fprintln(deps.Stderr)
	if c.Print {
		fmt.Fprintln(deps.Stdout, result.Text)
	}
	fmt.Fprintf(deps.Stdout, "Copied %d lines to the clipboard\n", result.Items)
	return nil
}
