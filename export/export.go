// Package export translates the saved-word collection and copies it to the
// clipboard as one line per item.
package export

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fwojciec/wordsaver"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// DefaultConcurrency is the number of items translated in parallel.
const DefaultConcurrency = 4

// Exporter builds export lines for every saved item.
type Exporter struct {
	Words      wordsaver.SavedWordService
	Translator wordsaver.Translator
	Clipboard  wordsaver.Clipboard

	// Limiter, if set, throttles translation calls.
	Limiter     *rate.Limiter
	Concurrency int
	RetryDelays []time.Duration
}

// Result holds the outcome of an export.
type Result struct {
	Items int
	Text  string
}

// ProgressFunc is called after each item is translated. It may be called
// from several goroutines at once.
type ProgressFunc func(completed, total int)

// Export translates the selection and full text of every saved item,
// formats one line per item in collection order, and writes the lines
// joined by newlines to the clipboard. The first failure cancels the
// remaining work and nothing is written.
func (e *Exporter) Export(ctx context.Context, progress ProgressFunc) (*Result, error) {
	items, err := e.Words.FindSavedWords(ctx, wordsaver.SavedWordFilter{})
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return &Result{}, nil
	}

	lines, err := e.Lines(ctx, items, progress)
	if err != nil {
		return nil, err
	}

	text := strings.Join(lines, "\n")
	if err := e.Clipboard.WriteText(ctx, text); err != nil {
		return nil, err
	}

	return &Result{Items: len(items), Text: text}, nil
}

// Lines returns the export line for each item, in the order given.
func (e *Exporter) Lines(ctx context.Context, items []*wordsaver.SavedTextItem, progress ProgressFunc) ([]string, error) {
	concurrency := e.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	delays := e.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}

	lines := make([]string, len(items))
	var completed atomic.Int64
	total := len(items)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, item := range items {
		g.Go(func() error {
			word, err := e.translate(gctx, item.Content.Selected, delays)
			if err != nil {
				return fmt.Errorf("translate selection of %s: %w", item.ID, err)
			}
			full, err := e.translate(gctx, item.FullText, delays)
			if err != nil {
				return fmt.Errorf("translate full text of %s: %w", item.ID, err)
			}
			lines[i] = wordsaver.FormatExportLine(item, word, full)

			n := completed.Add(1)
			if progress != nil {
				progress(int(n), total)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return lines, nil
}

func (e *Exporter) translate(ctx context.Context, text string, delays []time.Duration) (string, error) {
	if e.Limiter != nil {
		if err := e.Limiter.Wait(ctx); err != nil {
			return "", err
		}
	}
	return translateWithRetry(ctx, e.Translator, text, delays)
}
