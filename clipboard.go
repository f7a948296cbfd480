package wordsaver

import "context"

// Clipboard reads and writes the system clipboard.
type Clipboard interface {
	// ReadText returns the clipboard text. Returns EUNAVAILABLE when the
	// clipboard cannot be accessed.
	ReadText(ctx context.Context) (string, error)

	WriteText(ctx context.Context, text string) error
}
