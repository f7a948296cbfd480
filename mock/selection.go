package mock

import (
	"context"

	"github.com/fwojciec/wordsaver"
)

var _ wordsaver.SelectionReader = (*SelectionReader)(nil)

// SelectionReader is a mock implementation of wordsaver.SelectionReader.
type SelectionReader struct {
	ActiveSelectionFn   func(ctx context.Context) (*wordsaver.LiveSelection, error)
	FindTextContainerFn func(ctx context.Context, target string) (string, error)
}

func (r *SelectionReader) ActiveSelection(ctx context.Context) (*wordsaver.LiveSelection, error) {
	return r.ActiveSelectionFn(ctx)
}

func (r *SelectionReader) FindTextContainer(ctx context.Context, target string) (string, error) {
	return r.FindTextContainerFn(ctx, target)
}
