package mock

import (
	"context"

	"github.com/fwojciec/wordsaver"
)

var _ wordsaver.Clipboard = (*Clipboard)(nil)

// Clipboard is a mock implementation of wordsaver.Clipboard.
type Clipboard struct {
	ReadTextFn  func(ctx context.Context) (string, error)
	WriteTextFn func(ctx context.Context, text string) error
}

func (c *Clipboard) ReadText(ctx context.Context) (string, error) {
	return c.ReadTextFn(ctx)
}

func (c *Clipboard) WriteText(ctx context.Context, text string) error {
	return c.WriteTextFn(ctx, text)
}
