package mock

import (
	"context"

	"github.com/fwojciec/wordsaver"
)

var _ wordsaver.Translator = (*Translator)(nil)

// Translator is a mock implementation of wordsaver.Translator.
type Translator struct {
	TranslateFn func(ctx context.Context, text string) (string, error)
}

func (t *Translator) Translate(ctx context.Context, text string) (string, error) {
	return t.TranslateFn(ctx, text)
}
