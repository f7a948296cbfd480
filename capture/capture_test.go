package capture_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/fwojciec/wordsaver"
	"github.com/fwojciec/wordsaver/capture"
	"github.com/fwojciec/wordsaver/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const paragraph = "The cat sat. The dog ran fast. It was sunny."

// recordingWords returns a SavedWordService mock that appends to *saved.
func recordingWords(saved *[]*wordsaver.SavedTextItem) *mock.SavedWordService {
	return &mock.SavedWordService{
		CreateSavedWordFn: func(_ context.Context, item *wordsaver.SavedTextItem) error {
			*saved = append(*saved, item)
			return nil
		},
	}
}

func newTestCapturer(words wordsaver.SavedWordService, opts ...capture.Option) *capture.Capturer {
	fixed := time.Date(2025, 5, 1, 9, 30, 0, 0, time.UTC)
	opts = append([]capture.Option{
		capture.WithClock(func() time.Time { return fixed }),
		capture.WithIDGenerator(func() string { return "id-1" }),
	}, opts...)
	return capture.NewCapturer(words, opts...)
}

func selectionOf(sel *wordsaver.LiveSelection) *mock.SelectionReader {
	return &mock.SelectionReader{
		ActiveSelectionFn: func(context.Context) (*wordsaver.LiveSelection, error) {
			return sel, nil
		},
		FindTextContainerFn: func(context.Context, string) (string, error) {
			return "", wordsaver.Errorf(wordsaver.EUNRESOLVED, "no container")
		},
	}
}

func TestCapturer_Capture_RangeSource(t *testing.T) {
	t.Parallel()

	t.Run("builds and stores the record", func(t *testing.T) {
		t.Parallel()

		var saved []*wordsaver.SavedTextItem
		c := newTestCapturer(recordingWords(&saved))
		page := selectionOf(&wordsaver.LiveSelection{Text: " dog ran ", ContainerText: paragraph, Occurrence: 0})

		item, err := c.Capture(context.Background(), capture.RangeSource{Page: page})

		require.NoError(t, err)
		require.Len(t, saved, 1)
		assert.Equal(t, item, saved[0])
		assert.Equal(t, "id-1", item.ID)
		assert.Equal(t, time.Date(2025, 5, 1, 9, 30, 0, 0, time.UTC).UnixMilli(), item.Timestamp)
		assert.Equal(t, wordsaver.SavedTextContent{Before: "The", Selected: "dog ran", After: "fast."}, item.Content)
		assert.Equal(t, "...The **dog ran** fast....", item.FullText)
	})

	t.Run("no selection aborts silently", func(t *testing.T) {
		t.Parallel()

		var saved []*wordsaver.SavedTextItem
		c := newTestCapturer(recordingWords(&saved))

		_, err := c.Capture(context.Background(), capture.RangeSource{Page: selectionOf(nil)})

		require.Error(t, err)
		assert.True(t, wordsaver.IsSilent(err))
		assert.Empty(t, saved)
	})

	t.Run("selection missing from container aborts silently", func(t *testing.T) {
		t.Parallel()

		var saved []*wordsaver.SavedTextItem
		c := newTestCapturer(recordingWords(&saved))
		page := selectionOf(&wordsaver.LiveSelection{Text: "zebra", ContainerText: paragraph})

		_, err := c.Capture(context.Background(), capture.RangeSource{Page: page})

		assert.Equal(t, wordsaver.ENOTFOUND, wordsaver.ErrorCode(err))
		assert.Empty(t, saved)
	})

	t.Run("uses first occurrence by default", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		var saved []*wordsaver.SavedTextItem
		c := newTestCapturer(recordingWords(&saved), capture.WithLogger(logger))
		page := selectionOf(&wordsaver.LiveSelection{Text: "cat", ContainerText: "The cat ran. A cat slept.", Occurrence: 1})

		item, err := c.Capture(context.Background(), capture.RangeSource{Page: page})

		require.NoError(t, err)
		assert.Equal(t, "ran.", item.Content.After)
		assert.Contains(t, buf.String(), "selection is ambiguous")
		assert.Contains(t, buf.String(), "matches=2")
	})

	t.Run("uses range occurrence when enabled", func(t *testing.T) {
		t.Parallel()

		var saved []*wordsaver.SavedTextItem
		c := newTestCapturer(recordingWords(&saved), capture.WithRangeOccurrence())
		page := selectionOf(&wordsaver.LiveSelection{Text: "cat", ContainerText: "The cat ran. A cat slept.", Occurrence: 1})

		item, err := c.Capture(context.Background(), capture.RangeSource{Page: page})

		require.NoError(t, err)
		assert.Equal(t, "A", item.Content.Before)
		assert.Equal(t, "slept.", item.Content.After)
	})

	t.Run("propagates storage errors", func(t *testing.T) {
		t.Parallel()

		words := &mock.SavedWordService{
			CreateSavedWordFn: func(context.Context, *wordsaver.SavedTextItem) error {
				return errors.New("disk full")
			},
		}
		c := newTestCapturer(words)
		page := selectionOf(&wordsaver.LiveSelection{Text: "dog", ContainerText: paragraph})

		_, err := c.Capture(context.Background(), capture.RangeSource{Page: page})

		require.Error(t, err)
		assert.False(t, wordsaver.IsSilent(err))
		assert.Contains(t, err.Error(), "disk full")
	})

	t.Run("propagates selection read errors", func(t *testing.T) {
		t.Parallel()

		var saved []*wordsaver.SavedTextItem
		c := newTestCapturer(recordingWords(&saved))
		page := &mock.SelectionReader{
			ActiveSelectionFn: func(context.Context) (*wordsaver.LiveSelection, error) {
				return nil, errors.New("page closed")
			},
		}

		_, err := c.Capture(context.Background(), capture.RangeSource{Page: page})

		require.Error(t, err)
		assert.Empty(t, saved)
	})
}

func TestCapturer_Capture_MenuSource(t *testing.T) {
	t.Parallel()

	t.Run("uses live selection when its text matches", func(t *testing.T) {
		t.Parallel()

		var saved []*wordsaver.SavedTextItem
		c := newTestCapturer(recordingWords(&saved))
		page := &mock.SelectionReader{
			ActiveSelectionFn: func(context.Context) (*wordsaver.LiveSelection, error) {
				return &wordsaver.LiveSelection{Text: "dog ran\n", ContainerText: paragraph}, nil
			},
			FindTextContainerFn: func(context.Context, string) (string, error) {
				t.Fatal("text scan must not run when the live selection matches")
				return "", nil
			},
		}

		item, err := c.Capture(context.Background(), capture.MenuSource{Page: page, Text: "dog ran"})

		require.NoError(t, err)
		assert.Equal(t, "The", item.Content.Before)
	})

	t.Run("falls back to text node scan", func(t *testing.T) {
		t.Parallel()

		var saved []*wordsaver.SavedTextItem
		c := newTestCapturer(recordingWords(&saved))
		var scanned string
		page := &mock.SelectionReader{
			ActiveSelectionFn: func(context.Context) (*wordsaver.LiveSelection, error) {
				return &wordsaver.LiveSelection{Text: "something else", ContainerText: "x"}, nil
			},
			FindTextContainerFn: func(_ context.Context, target string) (string, error) {
				scanned = target
				return "Rain fell. Birds sang loudly today. Night came.", nil
			},
		}

		item, err := c.Capture(context.Background(), capture.MenuSource{Page: page, Text: " sang "})

		require.NoError(t, err)
		assert.Equal(t, "sang", scanned)
		assert.Equal(t, wordsaver.SavedTextContent{Before: "Birds", Selected: "sang", After: "loudly today."}, item.Content)
		require.Len(t, saved, 1)
	})

	t.Run("falls back to text node scan when selection read fails", func(t *testing.T) {
		t.Parallel()

		var saved []*wordsaver.SavedTextItem
		c := newTestCapturer(recordingWords(&saved))
		page := &mock.SelectionReader{
			ActiveSelectionFn: func(context.Context) (*wordsaver.LiveSelection, error) {
				return nil, errors.New("no range")
			},
			FindTextContainerFn: func(context.Context, string) (string, error) {
				return paragraph, nil
			},
		}

		_, err := c.Capture(context.Background(), capture.MenuSource{Page: page, Text: "sunny"})

		require.NoError(t, err)
		assert.Len(t, saved, 1)
	})

	t.Run("unresolved container aborts silently", func(t *testing.T) {
		t.Parallel()

		var saved []*wordsaver.SavedTextItem
		c := newTestCapturer(recordingWords(&saved))

		_, err := c.Capture(context.Background(), capture.MenuSource{Page: selectionOf(nil), Text: "missing"})

		assert.Equal(t, wordsaver.EUNRESOLVED, wordsaver.ErrorCode(err))
		assert.Empty(t, saved)
	})

	t.Run("empty menu text aborts silently", func(t *testing.T) {
		t.Parallel()

		var saved []*wordsaver.SavedTextItem
		c := newTestCapturer(recordingWords(&saved))

		_, err := c.Capture(context.Background(), capture.MenuSource{Page: selectionOf(nil), Text: "  "})

		assert.True(t, wordsaver.IsSilent(err))
	})
}

func TestCapturer_Capture_TextInputSource(t *testing.T) {
	t.Parallel()

	pageText := "First line. Second line has words. Third."

	t.Run("extracts from page text using rune offsets", func(t *testing.T) {
		t.Parallel()

		var saved []*wordsaver.SavedTextItem
		c := newTestCapturer(recordingWords(&saved))

		item, err := c.Capture(context.Background(), capture.TextInputSource{PageText: pageText, Start: 23, End: 28})

		require.NoError(t, err)
		assert.Equal(t, "has", item.Content.Selected)
		assert.Equal(t, "Second line", item.Content.Before)
		assert.Equal(t, "words.", item.Content.After)
	})

	t.Run("offsets count runes not bytes", func(t *testing.T) {
		t.Parallel()

		var saved []*wordsaver.SavedTextItem
		c := newTestCapturer(recordingWords(&saved))

		item, err := c.Capture(context.Background(), capture.TextInputSource{PageText: "Ça été très bien.", Start: 7, End: 11})

		require.NoError(t, err)
		assert.Equal(t, "très", item.Content.Selected)
	})

	t.Run("reversed and out of range offsets are normalised", func(t *testing.T) {
		t.Parallel()

		var saved []*wordsaver.SavedTextItem
		c := newTestCapturer(recordingWords(&saved))

		item, err := c.Capture(context.Background(), capture.TextInputSource{PageText: pageText, Start: 1000, End: 35})

		require.NoError(t, err)
		assert.Equal(t, "Third.", item.Content.Selected)
	})

	t.Run("empty selection aborts silently", func(t *testing.T) {
		t.Parallel()

		var saved []*wordsaver.SavedTextItem
		c := newTestCapturer(recordingWords(&saved))

		_, err := c.Capture(context.Background(), capture.TextInputSource{PageText: pageText, Start: 5, End: 5})

		assert.Equal(t, wordsaver.ENOTFOUND, wordsaver.ErrorCode(err))
		assert.Empty(t, saved)
	})

	t.Run("prefers clipboard text containing the selection", func(t *testing.T) {
		t.Parallel()

		var saved []*wordsaver.SavedTextItem
		cb := &mock.Clipboard{
			ReadTextFn: func(context.Context) (string, error) {
				return "Clean copy. Second line has words here!", nil
			},
		}
		c := newTestCapturer(recordingWords(&saved), capture.WithClipboard(cb))

		item, err := c.Capture(context.Background(), capture.TextInputSource{PageText: pageText, Start: 24, End: 27})

		require.NoError(t, err)
		assert.Equal(t, "words here!", item.Content.After)
	})

	t.Run("ignores clipboard text without the selection", func(t *testing.T) {
		t.Parallel()

		var saved []*wordsaver.SavedTextItem
		cb := &mock.Clipboard{
			ReadTextFn: func(context.Context) (string, error) {
				return "unrelated", nil
			},
		}
		c := newTestCapturer(recordingWords(&saved), capture.WithClipboard(cb))

		item, err := c.Capture(context.Background(), capture.TextInputSource{PageText: pageText, Start: 24, End: 27})

		require.NoError(t, err)
		assert.Equal(t, "words.", item.Content.After)
	})

	t.Run("swallows clipboard errors and logs them", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		var saved []*wordsaver.SavedTextItem
		cb := &mock.Clipboard{
			ReadTextFn: func(context.Context) (string, error) {
				return "", wordsaver.Errorf(wordsaver.EUNAVAILABLE, "permission denied")
			},
		}
		c := newTestCapturer(recordingWords(&saved), capture.WithClipboard(cb), capture.WithLogger(logger))

		item, err := c.Capture(context.Background(), capture.TextInputSource{PageText: pageText, Start: 24, End: 27})

		require.NoError(t, err)
		assert.Equal(t, "words.", item.Content.After)
		assert.Contains(t, buf.String(), "clipboard unavailable")
	})
}

func TestCapturer_Capture_DefaultID(t *testing.T) {
	t.Parallel()

	var saved []*wordsaver.SavedTextItem
	c := capture.NewCapturer(recordingWords(&saved))
	page := selectionOf(&wordsaver.LiveSelection{Text: "dog", ContainerText: paragraph})

	a, err := c.Capture(context.Background(), capture.RangeSource{Page: page})
	require.NoError(t, err)
	b, err := c.Capture(context.Background(), capture.RangeSource{Page: page})
	require.NoError(t, err)

	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.LessOrEqual(t, a.ID, b.ID, "UUIDv7 ids sort by creation time")
	assert.Equal(t, []*wordsaver.SavedTextItem{a, b}, saved)
}

func TestCapturer_Dispatch(t *testing.T) {
	t.Parallel()

	t.Run("saveWord appends the carried item", func(t *testing.T) {
		t.Parallel()

		var saved []*wordsaver.SavedTextItem
		c := newTestCapturer(recordingWords(&saved))
		item := wordsaver.NewSavedTextItem("abc", wordsaver.SavedTextContent{Selected: "word"}, time.UnixMilli(1700000000000))
		msg, err := wordsaver.NewSaveWordMessage(item)
		require.NoError(t, err)

		got, err := c.Dispatch(context.Background(), msg, nil)

		require.NoError(t, err)
		assert.Equal(t, item, got)
		require.Len(t, saved, 1)
		assert.Equal(t, "abc", saved[0].ID)
	})

	t.Run("saveWord rejects invalid payload", func(t *testing.T) {
		t.Parallel()

		c := newTestCapturer(recordingWords(new([]*wordsaver.SavedTextItem)))
		msg := &wordsaver.Message{Action: wordsaver.ActionSaveWord, Data: json.RawMessage(`{"id":""}`)}

		_, err := c.Dispatch(context.Background(), msg, nil)

		assert.Equal(t, wordsaver.EINVALID, wordsaver.ErrorCode(err))
	})

	t.Run("contextMenuSelection runs a menu capture", func(t *testing.T) {
		t.Parallel()

		var saved []*wordsaver.SavedTextItem
		c := newTestCapturer(recordingWords(&saved))
		page := &mock.SelectionReader{
			ActiveSelectionFn: func(context.Context) (*wordsaver.LiveSelection, error) {
				return nil, nil
			},
			FindTextContainerFn: func(context.Context, string) (string, error) {
				return paragraph, nil
			},
		}
		msg := &wordsaver.Message{Action: wordsaver.ActionContextMenuSelection, Text: "sunny"}

		item, err := c.Dispatch(context.Background(), msg, page)

		require.NoError(t, err)
		assert.Equal(t, "It was", item.Content.Before)
		assert.Equal(t, ".", item.Content.After)
	})

	t.Run("rejects unknown action", func(t *testing.T) {
		t.Parallel()

		c := newTestCapturer(recordingWords(new([]*wordsaver.SavedTextItem)))

		_, err := c.Dispatch(context.Background(), &wordsaver.Message{Action: "bogus"}, nil)

		assert.Equal(t, wordsaver.EINVALID, wordsaver.ErrorCode(err))
	})
}
