package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/fwojciec/wordsaver"
	"github.com/fwojciec/wordsaver/mock"
	wsslog "github.com/fwojciec/wordsaver/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingDocumentService(t *testing.T) {
	t.Parallel()

	t.Run("logs save with filename and page count", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.DocumentService{
			SaveDocumentFn: func(_ context.Context, doc *wordsaver.Document) error {
				doc.ID = "doc-1"
				return nil
			},
		}

		svc := wsslog.NewLoggingDocumentService(inner, logger)
		doc := &wordsaver.Document{
			Filename: "notes.pdf",
			Pages:    []wordsaver.PageRecord{{Page: 1, Text: "a"}, {Page: 2, Text: "b"}},
		}
		require.NoError(t, svc.SaveDocument(context.Background(), doc))

		output := buf.String()
		assert.Contains(t, output, "save document")
		assert.Contains(t, output, "id=doc-1")
		assert.Contains(t, output, "filename=notes.pdf")
		assert.Contains(t, output, "pages=2")
	})

	t.Run("logs content match", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.DocumentService{
			FindDocumentByContentFn: func(context.Context, *wordsaver.Document) (*wordsaver.Document, error) {
				return &wordsaver.Document{ID: "doc-7", Filename: "old.pdf"}, nil
			},
		}

		svc := wsslog.NewLoggingDocumentService(inner, logger)
		found, err := svc.FindDocumentByContent(context.Background(), &wordsaver.Document{Filename: "new.pdf"})
		require.NoError(t, err)
		assert.Equal(t, "doc-7", found.ID)

		output := buf.String()
		assert.Contains(t, output, "find document by content")
		assert.Contains(t, output, "filename=new.pdf")
		assert.Contains(t, output, "match=doc-7")
	})

	t.Run("logs not found", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.DocumentService{
			FindDocumentByIDFn: func(context.Context, string) (*wordsaver.Document, error) {
				return nil, wordsaver.Errorf(wordsaver.ENOTFOUND, "document not found")
			},
		}

		svc := wsslog.NewLoggingDocumentService(inner, logger)
		_, err := svc.FindDocumentByID(context.Background(), "missing")
		assert.Equal(t, wordsaver.ENOTFOUND, wordsaver.ErrorCode(err))

		output := buf.String()
		assert.Contains(t, output, "find document")
		assert.Contains(t, output, "id=missing")
		assert.Contains(t, output, "document not found")
	})

	t.Run("logs list count and delete", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.DocumentService{
			FindDocumentsFn: func(context.Context) ([]*wordsaver.Document, error) {
				return []*wordsaver.Document{{ID: "doc-1"}}, nil
			},
			DeleteDocumentFn: func(context.Context, string) error { return nil },
		}

		svc := wsslog.NewLoggingDocumentService(inner, logger)
		docs, err := svc.FindDocuments(context.Background())
		require.NoError(t, err)
		assert.Len(t, docs, 1)
		require.NoError(t, svc.DeleteDocument(context.Background(), "doc-1"))

		output := buf.String()
		assert.Contains(t, output, "find documents")
		assert.Contains(t, output, "count=1")
		assert.Contains(t, output, "delete document")
	})
}
