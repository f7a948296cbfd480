package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/wordsaver"
)

// Ensure LoggingDocumentService implements wordsaver.DocumentService.
var _ wordsaver.DocumentService = (*LoggingDocumentService)(nil)

// LoggingDocumentService wraps a DocumentService with logging.
type LoggingDocumentService struct {
	next   wordsaver.DocumentService
	logger *slog.Logger
}

// NewLoggingDocumentService creates a new LoggingDocumentService.
func NewLoggingDocumentService(next wordsaver.DocumentService, logger *slog.Logger) *LoggingDocumentService {
	return &LoggingDocumentService{next: next, logger: logger}
}

func (s *LoggingDocumentService) SaveDocument(ctx context.Context, doc *wordsaver.Document) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("save document",
			"id", doc.ID,
			"filename", doc.Filename,
			"pages", len(doc.Pages),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SaveDocument(ctx, doc)
}

func (s *LoggingDocumentService) FindDocumentByID(ctx context.Context, id string) (doc *wordsaver.Document, err error) {
	defer func(begin time.Time) {
		s.logger.Info("find document",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindDocumentByID(ctx, id)
}

func (s *LoggingDocumentService) FindDocumentByContent(ctx context.Context, doc *wordsaver.Document) (found *wordsaver.Document, err error) {
	defer func(begin time.Time) {
		var id string
		if found != nil {
			id = found.ID
		}
		s.logger.Info("find document by content",
			"filename", doc.Filename,
			"match", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindDocumentByContent(ctx, doc)
}

func (s *LoggingDocumentService) FindDocuments(ctx context.Context) (docs []*wordsaver.Document, err error) {
	defer func(begin time.Time) {
		s.logger.Info("find documents",
			"count", len(docs),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindDocuments(ctx)
}

func (s *LoggingDocumentService) DeleteDocument(ctx context.Context, id string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("delete document",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeleteDocument(ctx, id)
}
