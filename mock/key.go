package mock

import (
	"context"

	"github.com/fwojciec/wordsaver"
)

var _ wordsaver.KeySource = (*KeySource)(nil)

// KeySource is a mock implementation of wordsaver.KeySource.
type KeySource struct {
	ControlKeysFn func(ctx context.Context) (<-chan wordsaver.KeyEvent, error)
}

func (k *KeySource) ControlKeys(ctx context.Context) (<-chan wordsaver.KeyEvent, error) {
	return k.ControlKeysFn(ctx)
}
