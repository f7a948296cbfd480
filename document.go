package wordsaver

import (
	"context"
	"io"
	"strings"
	"time"
)

// PageRecord is the extracted text of one document page.
type PageRecord struct {
	Page int    `json:"page"` // 1-based
	Text string `json:"text"`
}

// Document represents an imported document split into pages.
type Document struct {
	ID          string       `json:"id"`
	Filename    string       `json:"filename"`
	Pages       []PageRecord `json:"pages"`
	ContentHash string       `json:"contentHash"`
	Timestamp   time.Time    `json:"timestamp"`
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if d.Filename == "" {
		return Errorf(EINVALID, "document filename required")
	}
	seen := make(map[int]bool, len(d.Pages))
	for _, p := range d.Pages {
		if p.Page < 1 {
			return Errorf(EINVALID, "document page number must be positive, got %d", p.Page)
		}
		if seen[p.Page] {
			return Errorf(EINVALID, "duplicate document page %d", p.Page)
		}
		seen[p.Page] = true
	}
	return nil
}

// Page returns the record for the 1-based page number.
// Returns ENOTFOUND if the page was not extracted.
func (d *Document) Page(n int) (*PageRecord, error) {
	for i := range d.Pages {
		if d.Pages[i].Page == n {
			return &d.Pages[i], nil
		}
	}
	return nil, Errorf(ENOTFOUND, "page %d not found in %q", n, d.Filename)
}

// Text returns all page texts joined by newlines.
func (d *Document) Text() string {
	texts := make([]string, len(d.Pages))
	for i, p := range d.Pages {
		texts[i] = p.Text
	}
	return strings.Join(texts, "\n")
}

// DocumentService represents the store of imported documents, keyed by ID.
type DocumentService interface {
	// SaveDocument inserts or replaces a document. An empty ID is generated.
	SaveDocument(ctx context.Context, doc *Document) error

	// FindDocumentByID retrieves a document with its pages.
	// Returns ENOTFOUND if document does not exist.
	FindDocumentByID(ctx context.Context, id string) (*Document, error)

	// FindDocumentByContent returns a stored document whose page text
	// equals doc's, matched through the content hash.
	// Returns ENOTFOUND if no stored document matches.
	FindDocumentByContent(ctx context.Context, doc *Document) (*Document, error)

	// FindDocuments retrieves all documents, newest first.
	FindDocuments(ctx context.Context) ([]*Document, error)

	// DeleteDocument permanently removes a document and its pages.
	// Returns ENOTFOUND if document does not exist.
	DeleteDocument(ctx context.Context, id string) error
}

// ExtractResult holds the pages extracted from a binary document.
type ExtractResult struct {
	Pages []PageRecord

	// Skipped lists the 1-based page numbers that failed to extract.
	Skipped []int
}

// PageExtractor turns a binary document into per-page text.
type PageExtractor interface {
	// ExtractPages reads the document and returns its pages in order.
	// A page that fails to extract is omitted and listed in Skipped;
	// only a document that cannot be read at all is an error.
	ExtractPages(ctx context.Context, r io.ReadSeeker) (*ExtractResult, error)
}
