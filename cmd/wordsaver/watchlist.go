package main

import (
	"fmt"

	"github.com/fwojciec/wordsaver"
)

// Run executes the watch-list command. It prints the collection once and
// again after every change until the context is canceled.
func (c *WatchListCmd) Run(deps *Dependencies) error {
	sub, err := deps.Watcher.Subscribe(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wordsaver.ErrorMessage(err))
		return err
	}
	defer sub.Close()

	items, err := deps.Words.FindSavedWords(deps.Ctx, wordsaver.SavedWordFilter{})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wordsaver.ErrorMessage(err))
		return err
	}
	printSnapshot(deps, items)

	for {
		select {
		case <-deps.Ctx.Done():
			return nil
		case items, ok := <-sub.C():
			if !ok {
				return nil
			}
			printSnapshot(deps, items)
		}
	}
}

func printSnapshot(deps *Dependencies, items []*wordsaver.SavedTextItem) {
	fmt.Fprintf(deps.Stdout, "== %d saved ==\n", len(items))
	if len(items) > 0 {
		fmt.Fprintln(deps.Stdout, wordsaver.FormatSavedWords(items))
	}
}
