package mock

import (
	"context"
	"io"

	"github.com/fwojciec/wordsaver"
)

var _ wordsaver.DocumentService = (*DocumentService)(nil)

// DocumentService is a mock implementation of wordsaver.DocumentService.
type DocumentService struct {
	SaveDocumentFn          func(ctx context.Context, doc *wordsaver.Document) error
	FindDocumentByIDFn      func(ctx context.Context, id string) (*wordsaver.Document, error)
	FindDocumentByContentFn func(ctx context.Context, doc *wordsaver.Document) (*wordsaver.Document, error)
	FindDocumentsFn         func(ctx context.Context) ([]*wordsaver.Document, error)
	DeleteDocumentFn        func(ctx context.Context, id string) error
}

func (s *DocumentService) SaveDocument(ctx context.Context, doc *wordsaver.Document) error {
	return s.SaveDocumentFn(ctx, doc)
}

func (s *DocumentService) FindDocumentByID(ctx context.Context, id string) (*wordsaver.Document, error) {
	return s.FindDocumentByIDFn(ctx, id)
}

func (s *DocumentService) FindDocumentByContent(ctx context.Context, doc *wordsaver.Document) (*wordsaver.Document, error) {
	return s.FindDocumentByContentFn(ctx, doc)
}

func (s *DocumentService) FindDocuments(ctx context.Context) ([]*wordsaver.Document, error) {
	return s.FindDocumentsFn(ctx)
}

func (s *DocumentService) DeleteDocument(ctx context.Context, id string) error {
	return s.DeleteDocumentFn(ctx, id)
}

var _ wordsaver.PageExtractor = (*PageExtractor)(nil)

// PageExtractor is a mock implementation of wordsaver.PageExtractor.
type PageExtractor struct {
	ExtractPagesFn func(ctx context.Context, r io.ReadSeeker) (*wordsaver.ExtractResult, error)
}

func (e *PageExtractor) ExtractPages(ctx context.Context, r io.ReadSeeker) (*wordsaver.ExtractResult, error) {
	return e.ExtractPagesFn(ctx, r)
}
