package export

import (
	"context"
	"time"

	"github.com/fwojciec/wordsaver"
)

// DefaultRetryDelays returns the backoff delays for translation retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// translateWithRetry calls tr once plus once per delay, waiting delays[i]
// before retry i. Invalid input and context errors are not retried.
func translateWithRetry(ctx context.Context, tr wordsaver.Translator, text string, delays []time.Duration) (string, error) {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		translated, err := tr.Translate(ctx, text)
		if err == nil {
			return translated, nil
		}
		lastErr = err

		if wordsaver.ErrorCode(err) == wordsaver.EINVALID || ctx.Err() != nil {
			break
		}
		if attempt >= maxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return "", lastErr
}
