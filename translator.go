package wordsaver

import "context"

// Translator translates text between the languages it was configured with.
type Translator interface {
	Translate(ctx context.Context, text string) (string, error)
}
