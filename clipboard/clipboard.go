// Package clipboard implements wordsaver.Clipboard on the system clipboard
// via atotto/clipboard.
package clipboard

import (
	"context"

	"github.com/atotto/clipboard"
	"github.com/fwojciec/wordsaver"
)

// Compile-time interface verification.
var _ wordsaver.Clipboard = (*Clipboard)(nil)

// Clipboard is the system clipboard.
type Clipboard struct {
	read  func() (string, error)
	write func(string) error
}

// New returns the system clipboard.
func New() *Clipboard {
	return &Clipboard{read: clipboard.ReadAll, write: clipboard.WriteAll}
}

// Available reports whether a clipboard utility was found on this system.
func Available() bool {
	return !clipboard.Unsupported
}

// ReadText returns the clipboard text.
// Returns EUNAVAILABLE when the clipboard cannot be accessed.
func (c *Clipboard) ReadText(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !Available() {
		return "", wordsaver.Errorf(wordsaver.EUNAVAILABLE, "no clipboard utility available")
	}
	text, err := c.read()
	if err != nil {
		return "", wordsaver.Errorf(wordsaver.EUNAVAILABLE, "failed to read clipboard: %v", err)
	}
	return text, nil
}

// WriteText replaces the clipboard contents.
// Returns EUNAVAILABLE when the clipboard cannot be accessed.
func (c *Clipboard) WriteText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !Available() {
		return wordsaver.Errorf(wordsaver.EUNAVAILABLE, "no clipboard utility available")
	}
	if err := c.write(text); err != nil {
		return wordsaver.Errorf(wordsaver.EUNAVAILABLE, "failed to write clipboard: %v", err)
	}
	return nil
}
