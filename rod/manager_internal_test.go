package rod

import (
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageBudget(t *testing.T) {
	t.Parallel()

	t.Run("runs out at max", func(t *testing.T) {
		t.Parallel()

		b := &pageBudget{max: 3}
		b.spend()
		b.spend()
		assert.False(t, b.exhausted())

		b.spend()
		assert.True(t, b.exhausted())
	})

	t.Run("reset starts a new budget", func(t *testing.T) {
		t.Parallel()

		b := &pageBudget{max: 1}
		b.spend()
		b.reset()
		assert.False(t, b.exhausted())
		assert.Equal(t, int64(1), b.spend())
	})

	t.Run("non-positive max never runs out", func(t *testing.T) {
		t.Parallel()

		for _, limit := range []int64{0, -1} {
			b := &pageBudget{max: limit}
			for i := 0; i < 100; i++ {
				b.spend()
			}
			assert.False(t, b.exhausted())
		}
	})

	t.Run("counts concurrent spends", func(t *testing.T) {
		t.Parallel()

		b := &pageBudget{max: 50}
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				b.spend()
			}()
		}
		wg.Wait()
		assert.True(t, b.exhausted())
	})
}

func TestManagerOptions(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.DiscardHandler)
	bm := &BrowserManager{logger: logger}
	WithMaxPages(2)(bm)
	WithHeadless(false)(bm)
	WithManagerLogger(nil)(bm)

	assert.Equal(t, int64(2), bm.budget.max)
	assert.False(t, bm.headless)
	assert.Same(t, logger, bm.logger)
}
