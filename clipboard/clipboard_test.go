package clipboard_test

import (
	"context"
	"testing"

	"github.com/fwojciec/wordsaver"
	"github.com/fwojciec/wordsaver/clipboard"
	"github.com/stretchr/testify/assert"
)

func TestClipboard_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cb := clipboard.New()

	_, err := cb.ReadText(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	err = cb.WriteText(ctx, "hello")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClipboard_Unsupported(t *testing.T) {
	t.Parallel()

	if clipboard.Available() {
		t.Skip("clipboard utility present")
	}

	cb := clipboard.New()

	_, err := cb.ReadText(context.Background())
	assert.Equal(t, wordsaver.EUNAVAILABLE, wordsaver.ErrorCode(err))

	err = cb.WriteText(context.Background(), "hello")
	assert.Equal(t, wordsaver.EUNAVAILABLE, wordsaver.ErrorCode(err))
}
