// Package capture turns user selections into saved words. It resolves each
// kind of trigger to a container text, runs context extraction and appends
// the resulting record to the saved-word collection.
package capture

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/fwojciec/wordsaver"
	"github.com/google/uuid"
)

// Capturer builds saved words from capture sources.
type Capturer struct {
	words     wordsaver.SavedWordService
	clipboard wordsaver.Clipboard
	logger    *slog.Logger
	now       func() time.Time
	newID     func() string

	rangeOccurrence bool
}

// Option configures a Capturer.
type Option func(*Capturer)

// WithClipboard sets the clipboard consulted by TextInputSource captures.
func WithClipboard(cb wordsaver.Clipboard) Option {
	return func(c *Capturer) {
		c.clipboard = cb
	}
}

// WithLogger sets the logger for capture diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Capturer) {
		c.logger = logger
	}
}

// WithClock sets the time source used for record timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Capturer) {
		c.now = now
	}
}

// WithIDGenerator sets the record ID generator. Defaults to UUIDv7.
func WithIDGenerator(newID func() string) Option {
	return func(c *Capturer) {
		c.newID = newID
	}
}

// WithRangeOccurrence makes captures with a live range use the occurrence
// the user actually selected instead of the first match in the container.
func WithRangeOccurrence() Option {
	return func(c *Capturer) {
		c.rangeOccurrence = true
	}
}

// NewCapturer creates a Capturer that appends records to words.
func NewCapturer(words wordsaver.SavedWordService, opts ...Option) *Capturer {
	c := &Capturer{
		words:  words,
		logger: slog.New(slog.DiscardHandler),
		now:    time.Now,
		newID:  newUUIDv7,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func newUUIDv7() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Capture resolves src, extracts the sentence around the selection and
// appends the record to the saved-word collection.
//
// ENOTFOUND and EUNRESOLVED mean nothing was captured; callers should not
// report them to the user (see wordsaver.IsSilent). Storage errors are
// returned as-is.
func (c *Capturer) Capture(ctx context.Context, src Source) (*wordsaver.SavedTextItem, error) {
	res, err := src.resolve(ctx, c)
	if err != nil {
		c.logger.Debug("capture aborted", "stage", "resolve", "err", err)
		return nil, err
	}

	content, err := c.extract(res)
	if err != nil {
		c.logger.Debug("capture aborted", "stage", "extract", "selected", res.selected, "err", err)
		return nil, err
	}

	item := wordsaver.NewSavedTextItem(c.newID(), *content, c.now())
	if err := c.words.CreateSavedWord(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (c *Capturer) extract(res *resolution) (*wordsaver.SavedTextContent, error) {
	if c.rangeOccurrence && res.occurrence > 0 {
		content, err := wordsaver.ExtractContextAt(res.container, res.selected, res.occurrence)
		if err == nil {
			return content, nil
		}
		c.logger.Debug("range occurrence not in container, using first match",
			"occurrence", res.occurrence, "err", err)
	}
	if n := wordsaver.CountOccurrences(res.container, res.selected); n > 1 {
		c.logger.Debug("selection is ambiguous, using first match", "selected", res.selected, "matches", n)
	}
	return wordsaver.ExtractContext(res.container, res.selected)
}

// Dispatch handles a message envelope. A saveWord message appends the
// carried item unchanged; a contextMenuSelection message runs a MenuSource
// capture against page.
func (c *Capturer) Dispatch(ctx context.Context, msg *wordsaver.Message, page wordsaver.SelectionReader) (*wordsaver.SavedTextItem, error) {
	switch msg.Action {
	case wordsaver.ActionSaveWord:
		var item wordsaver.SavedTextItem
		if err := json.Unmarshal(msg.Data, &item); err != nil {
			return nil, wordsaver.Errorf(wordsaver.EINVALID, "invalid saveWord payload: %v", err)
		}
		if err := item.Validate(); err != nil {
			return nil, err
		}
		if err := c.words.CreateSavedWord(ctx, &item); err != nil {
			return nil, err
		}
		return &item, nil
	case wordsaver.ActionContextMenuSelection:
		return c.Capture(ctx, MenuSource{Page: page, Text: msg.Text})
	default:
		return nil, wordsaver.Errorf(wordsaver.EINVALID, "unknown action %q", msg.Action)
	}
}
