package capture_test

import (
	"testing"
	"time"

	"github.com/fwojciec/wordsaver/capture"
	"github.com/stretchr/testify/assert"
)

var t0 = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

func at(ms int) time.Time {
	return t0.Add(time.Duration(ms) * time.Millisecond)
}

func TestDoubleTap_KeyDown(t *testing.T) {
	t.Parallel()

	t.Run("two presses within the window fire once", func(t *testing.T) {
		t.Parallel()

		d := capture.NewDoubleTap(0)

		assert.False(t, d.KeyDown(at(0)))
		assert.True(t, d.KeyDown(at(300)))
		assert.Equal(t, capture.Idle, d.State(at(300)))
	})

	t.Run("two presses further apart than the window never fire", func(t *testing.T) {
		t.Parallel()

		d := capture.NewDoubleTap(0)

		assert.False(t, d.KeyDown(at(0)))
		assert.False(t, d.KeyDown(at(600)))
		assert.Equal(t, capture.Armed, d.State(at(600)))
	})

	t.Run("gap of exactly the window does not fire", func(t *testing.T) {
		t.Parallel()

		d := capture.NewDoubleTap(0)

		d.KeyDown(at(0))
		assert.False(t, d.KeyDown(at(500)))
	})

	t.Run("third quick press starts a new double tap", func(t *testing.T) {
		t.Parallel()

		d := capture.NewDoubleTap(0)

		assert.False(t, d.KeyDown(at(0)))
		assert.True(t, d.KeyDown(at(100)))
		assert.False(t, d.KeyDown(at(200)))
		assert.True(t, d.KeyDown(at(300)))
	})

	t.Run("slow press re-arms from its own time", func(t *testing.T) {
		t.Parallel()

		d := capture.NewDoubleTap(0)

		d.KeyDown(at(0))
		assert.False(t, d.KeyDown(at(900)))
		assert.True(t, d.KeyDown(at(1200)))
	})

	t.Run("custom window", func(t *testing.T) {
		t.Parallel()

		d := capture.NewDoubleTap(200 * time.Millisecond)

		d.KeyDown(at(0))
		assert.False(t, d.KeyDown(at(300)))
		assert.True(t, d.KeyDown(at(450)))
	})
}

func TestDoubleTap_KeyUp(t *testing.T) {
	t.Parallel()

	t.Run("release between taps keeps the detector armed", func(t *testing.T) {
		t.Parallel()

		d := capture.NewDoubleTap(0)

		d.KeyDown(at(0))
		d.KeyUp(at(80))
		assert.True(t, d.KeyDown(at(350)))
	})

	t.Run("release disarms one window later", func(t *testing.T) {
		t.Parallel()

		d := capture.NewDoubleTap(0)

		d.KeyDown(at(0))
		d.KeyUp(at(50))
		assert.Equal(t, capture.Armed, d.State(at(549)))
		assert.Equal(t, capture.Idle, d.State(at(550)))
	})

	t.Run("late release from first tap disarms a later arm", func(t *testing.T) {
		t.Parallel()

		d := capture.NewDoubleTap(0)

		d.KeyDown(at(0))
		d.KeyUp(at(100)) // disarms at 600
		assert.False(t, d.KeyDown(at(550)))
		assert.False(t, d.KeyDown(at(700)), "arm at 550 was cleared by the release at 600")
	})

	t.Run("release does not disarm an arm that happens after it", func(t *testing.T) {
		t.Parallel()

		d := capture.NewDoubleTap(0)

		d.KeyDown(at(0))
		d.KeyUp(at(10)) // disarms at 510
		assert.False(t, d.KeyDown(at(800)))
		assert.True(t, d.KeyDown(at(900)))
	})
}

func TestTapState_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "idle", capture.Idle.String())
	assert.Equal(t, "armed", capture.Armed.String())
}
