package slog

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/wordsaver"
)

// Ensure LoggingPageExtractor implements wordsaver.PageExtractor.
var _ wordsaver.PageExtractor = (*LoggingPageExtractor)(nil)

// LoggingPageExtractor wraps a PageExtractor with logging.
type LoggingPageExtractor struct {
	next   wordsaver.PageExtractor
	logger *slog.Logger
}

// NewLoggingPageExtractor creates a new LoggingPageExtractor.
func NewLoggingPageExtractor(next wordsaver.PageExtractor, logger *slog.Logger) *LoggingPageExtractor {
	return &LoggingPageExtractor{next: next, logger: logger}
}

// ExtractPages delegates to the wrapped extractor and logs page counts.
// Skipped pages are logged at Warn.
func (e *LoggingPageExtractor) ExtractPages(ctx context.Context, r io.ReadSeeker) (result *wordsaver.ExtractResult, err error) {
	defer func(begin time.Time) {
		var pages, skipped int
		if result != nil {
			pages, skipped = len(result.Pages), len(result.Skipped)
			for _, n := range result.Skipped {
				e.logger.Warn("page skipped", "page", n)
			}
		}
		e.logger.Info("extract pages",
			"pages", pages,
			"skipped", skipped,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.ExtractPages(ctx, r)
}
