package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"sync"
	"time"

	"github.com/fwojciec/wordsaver"
)

// DefaultPollInterval is how often subscriptions check for commits made by
// other processes.
const DefaultPollInterval = time.Second

// Compile-time interface verification.
var (
	_ wordsaver.SavedWordService = (*SavedWordService)(nil)
	_ wordsaver.SavedWordWatcher = (*SavedWordService)(nil)
)

// SavedWordService implements wordsaver.SavedWordService and
// wordsaver.SavedWordWatcher using SQLite.
type SavedWordService struct {
	db           *DB
	pollInterval time.Duration

	mu   sync.Mutex
	subs map[*subscription]struct{}
}

// SavedWordOption configures a SavedWordService.
type SavedWordOption func(*SavedWordService)

// WithPollInterval sets how often subscriptions poll for external commits.
// Non-positive durations are ignored.
func WithPollInterval(d time.Duration) SavedWordOption {
	return func(s *SavedWordService) {
		if d > 0 {
			s.pollInterval = d
		}
	}
}

// NewSavedWordService creates a new SavedWordService.
func NewSavedWordService(db *DB, opts ...SavedWordOption) *SavedWordService {
	s := &SavedWordService{
		db:           db,
		pollInterval: DefaultPollInterval,
		subs:         make(map[*subscription]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateSavedWord appends an item to the collection.
// Returns ECONFLICT if an item with the same ID exists, including one
// committed concurrently by another process.
func (s *SavedWordService) CreateSavedWord(ctx context.Context, item *wordsaver.SavedTextItem) error {
	if err := item.Validate(); err != nil {
		return err
	}

	c := item.Content
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO saved_words (id, before_text, selected, after_text, full_text, timestamp)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, item.ID, c.Before, c.Selected, c.After, item.FullText, item.Timestamp)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return wordsaver.Errorf(wordsaver.ECONFLICT, "saved word %q already exists", item.ID)
	}

	s.notify(ctx)
	return nil
}

// FindSavedWordByID retrieves an item by ID.
func (s *SavedWordService) FindSavedWordByID(ctx context.Context, id string) (*wordsaver.SavedTextItem, error) {
	var item wordsaver.SavedTextItem

	err := s.db.QueryRowContext(ctx, `
		SELECT id, before_text, selected, after_text, full_text, timestamp
		FROM saved_words
		WHERE id = ?
	`, id).Scan(&item.ID, &item.Content.Before, &item.Content.Selected, &item.Content.After,
		&item.FullText, &item.Timestamp)

	if err == sql.ErrNoRows {
		return nil, wordsaver.Errorf(wordsaver.ENOTFOUND, "saved word not found")
	}
	if err != nil {
		return nil, err
	}

	return &item, nil
}

// FindSavedWords retrieves items in insertion order.
func (s *SavedWordService) FindSavedWords(ctx context.Context, filter wordsaver.SavedWordFilter) ([]*wordsaver.SavedTextItem, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, before_text, selected, after_text, full_text, timestamp FROM saved_words WHERE 1=1")

	if filter.Selected != nil {
		query.WriteString(" AND selected = ?")
		args = append(args, *filter.Selected)
	}

	query.WriteString(" ORDER BY seq ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []*wordsaver.SavedTextItem{}
	for rows.Next() {
		var item wordsaver.SavedTextItem
		if err := rows.Scan(&item.ID, &item.Content.Before, &item.Content.Selected, &item.Content.After,
			&item.FullText, &item.Timestamp); err != nil {
			return nil, err
		}
		items = append(items, &item)
	}

	return items, rows.Err()
}

// DeleteSavedWord permanently removes an item.
func (s *SavedWordService) DeleteSavedWord(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM saved_words WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return wordsaver.Errorf(wordsaver.ENOTFOUND, "saved word not found")
	}

	s.notify(ctx)
	return nil
}
