package wordsaver

import (
	"context"
	"time"
)

// SavedTextContent is a selection split into the sentence around it.
type SavedTextContent struct {
	Before   string `json:"before"`
	Selected string `json:"selected"`
	After    string `json:"after"`
}

// SavedTextItem is one capture in the saved-word collection.
type SavedTextItem struct {
	ID      string           `json:"id"`
	Content SavedTextContent `json:"content"`

	// Timestamp is the capture time in Unix milliseconds.
	Timestamp int64 `json:"timestamp"`

	// FullText is the sentence formatted for display with the selection marked.
	FullText string `json:"fullText"`
}

// Validate returns an error if the item contains invalid fields.
func (i *SavedTextItem) Validate() error {
	if i.ID == "" {
		return Errorf(EINVALID, "saved word ID required")
	}
	if i.Content.Selected == "" {
		return Errorf(EINVALID, "saved word selection required")
	}
	if i.Timestamp <= 0 {
		return Errorf(EINVALID, "saved word timestamp required")
	}
	return nil
}

// CapturedAt returns the capture time.
func (i *SavedTextItem) CapturedAt() time.Time {
	return time.UnixMilli(i.Timestamp)
}

// NewSavedTextItem builds a record for content captured at now.
func NewSavedTextItem(id string, content SavedTextContent, now time.Time) *SavedTextItem {
	return &SavedTextItem{
		ID:        id,
		Content:   content,
		Timestamp: now.UnixMilli(),
		FullText:  FormatFullText(content),
	}
}

// SavedWordService represents the saved-word collection. Items are kept in
// insertion order and are unique by ID.
type SavedWordService interface {
	// CreateSavedWord appends an item to the end of the collection.
	// Returns ECONFLICT if an item with the same ID exists.
	CreateSavedWord(ctx context.Context, item *SavedTextItem) error

	// FindSavedWordByID retrieves an item by ID.
	// Returns ENOTFOUND if the item does not exist.
	FindSavedWordByID(ctx context.Context, id string) (*SavedTextItem, error)

	// FindSavedWords retrieves items in insertion order.
	FindSavedWords(ctx context.Context, filter SavedWordFilter) ([]*SavedTextItem, error)

	// DeleteSavedWord permanently removes an item.
	// Returns ENOTFOUND if the item does not exist.
	DeleteSavedWord(ctx context.Context, id string) error
}

// SavedWordFilter represents a filter for FindSavedWords.
type SavedWordFilter struct {
	Selected *string `json:"selected"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// SavedWordWatcher pushes the whole collection each time it changes,
// whichever process made the change.
type SavedWordWatcher interface {
	Subscribe(ctx context.Context) (Subscription, error)
}

// Subscription is a handle on a stream of collection snapshots.
// Close must be called to release it; C is closed afterwards.
type Subscription interface {
	C() <-chan []*SavedTextItem
	Close() error
}
