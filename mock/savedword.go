package mock

import (
	"context"

	"github.com/fwojciec/wordsaver"
)

var _ wordsaver.SavedWordService = (*SavedWordService)(nil)

// SavedWordService is a mock implementation of wordsaver.SavedWordService.
type SavedWordService struct {
	CreateSavedWordFn   func(ctx context.Context, item *wordsaver.SavedTextItem) error
	FindSavedWordByIDFn func(ctx context.Context, id string) (*wordsaver.SavedTextItem, error)
	FindSavedWordsFn    func(ctx context.Context, filter wordsaver.SavedWordFilter) ([]*wordsaver.SavedTextItem, error)
	DeleteSavedWordFn   func(ctx context.Context, id string) error
}

func (s *SavedWordService) CreateSavedWord(ctx context.Context, item *wordsaver.SavedTextItem) error {
	return s.CreateSavedWordFn(ctx, item)
}

func (s *SavedWordService) FindSavedWordByID(ctx context.Context, id string) (*wordsaver.SavedTextItem, error) {
	return s.FindSavedWordByIDFn(ctx, id)
}

func (s *SavedWordService) FindSavedWords(ctx context.Context, filter wordsaver.SavedWordFilter) ([]*wordsaver.SavedTextItem, error) {
	return s.FindSavedWordsFn(ctx, filter)
}

func (s *SavedWordService) DeleteSavedWord(ctx context.Context, id string) error {
	return s.DeleteSavedWordFn(ctx, id)
}

var _ wordsaver.SavedWordWatcher = (*SavedWordWatcher)(nil)

// SavedWordWatcher is a mock implementation of wordsaver.SavedWordWatcher.
type SavedWordWatcher struct {
	SubscribeFn func(ctx context.Context) (wordsaver.Subscription, error)
}

func (w *SavedWordWatcher) Subscribe(ctx context.Context) (wordsaver.Subscription, error) {
	return w.SubscribeFn(ctx)
}

var _ wordsaver.Subscription = (*Subscription)(nil)

// Subscription is a mock implementation of wordsaver.Subscription.
type Subscription struct {
	CFn     func() <-chan []*wordsaver.SavedTextItem
	CloseFn func() error
}

func (s *Subscription) C() <-chan []*wordsaver.SavedTextItem {
	return s.CFn()
}

func (s *Subscription) Close() error {
	return s.CloseFn()
}
