package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/wordsaver"
)

// Ensure LoggingSavedWordService implements wordsaver.SavedWordService.
var _ wordsaver.SavedWordService = (*LoggingSavedWordService)(nil)

// LoggingSavedWordService wraps a SavedWordService with logging.
type LoggingSavedWordService struct {
	next   wordsaver.SavedWordService
	logger *slog.Logger
}

// NewLoggingSavedWordService creates a new LoggingSavedWordService.
func NewLoggingSavedWordService(next wordsaver.SavedWordService, logger *slog.Logger) *LoggingSavedWordService {
	return &LoggingSavedWordService{next: next, logger: logger}
}

func (s *LoggingSavedWordService) CreateSavedWord(ctx context.Context, item *wordsaver.SavedTextItem) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("create saved word",
			"id", item.ID,
			"selected", item.Content.Selected,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateSavedWord(ctx, item)
}

func (s *LoggingSavedWordService) FindSavedWordByID(ctx context.Context, id string) (item *wordsaver.SavedTextItem, err error) {
	defer func(begin time.Time) {
		s.logger.Info("find saved word",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindSavedWordByID(ctx, id)
}

func (s *LoggingSavedWordService) FindSavedWords(ctx context.Context, filter wordsaver.SavedWordFilter) (items []*wordsaver.SavedTextItem, err error) {
	defer func(begin time.Time) {
		s.logger.Info("find saved words",
			"count", len(items),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindSavedWords(ctx, filter)
}

func (s *LoggingSavedWordService) DeleteSavedWord(ctx context.Context, id string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("delete saved word",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeleteSavedWord(ctx, id)
}
