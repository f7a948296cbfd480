// Package readability extracts the readable text of HTML documents so they
// can be imported and captured from like PDF pages.
package readability

import (
	"context"
	"io"
	"strings"

	"github.com/fwojciec/wordsaver"
	"github.com/go-shiori/go-readability"
)

// Ensure PageExtractor implements wordsaver.PageExtractor at compile time.
var _ wordsaver.PageExtractor = (*PageExtractor)(nil)

// PageExtractor wraps go-readability to turn an HTML document into a single
// page holding its main content as plain text.
type PageExtractor struct{}

// NewPageExtractor creates a new PageExtractor.
func NewPageExtractor() *PageExtractor {
	return &PageExtractor{}
}

// ExtractPages strips navigation, footers and sidebars and returns the main
// content as page 1. Returns EINVALID for empty input or a document without
// readable text.
func (e *PageExtractor) ExtractPages(ctx context.Context, r io.ReadSeeker) (*wordsaver.ExtractResult, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(string(raw)) == "" {
		return nil, wordsaver.Errorf(wordsaver.EINVALID, "empty HTML input")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	article, err := readability.FromReader(strings.NewReader(string(raw)), nil)
	if err != nil {
		return nil, wordsaver.Errorf(wordsaver.EINVALID, "parse HTML: %v", err)
	}

	text := strings.Join(strings.Fields(article.TextContent), " ")
	if text == "" {
		return nil, wordsaver.Errorf(wordsaver.EINVALID, "no readable text in HTML")
	}

	return &wordsaver.ExtractResult{
		Pages: []wordsaver.PageRecord{{Page: 1, Text: text}},
	}, nil
}
