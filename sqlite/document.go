package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/hex"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/wordsaver"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ wordsaver.DocumentService = (*DocumentService)(nil)

// DocumentService implements wordsaver.DocumentService using SQLite.
type DocumentService struct {
	db *DB
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(db *DB) *DocumentService {
	return &DocumentService{db: db}
}

// hashContent returns the big-endian hex xxHash of content.
func hashContent(content string) string {
	return hex.EncodeToString(binary.BigEndian.AppendUint64(nil, xxhash.Sum64String(content)))
}

// SaveDocument inserts or replaces a document and its pages.
func (s *DocumentService) SaveDocument(ctx context.Context, doc *wordsaver.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	if doc.ID == "" {
		doc.ID = uuid.New().String()
	}
	if doc.Timestamp.IsZero() {
		doc.Timestamp = time.Now().UTC()
	}
	doc.ContentHash = hashContent(doc.Text())

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO documents (id, filename, content_hash, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			filename = excluded.filename,
			content_hash = excluded.content_hash,
			created_at = excluded.created_at
	`, doc.ID, doc.Filename, doc.ContentHash, doc.Timestamp.UTC().Format(time.RFC3339)); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM document_pages WHERE document_id = ?", doc.ID); err != nil {
		return err
	}

	for _, p := range doc.Pages {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO document_pages (document_id, page, text)
			VALUES (?, ?, ?)
		`, doc.ID, p.Page, p.Text); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// FindDocumentByID retrieves a document with its pages.
func (s *DocumentService) FindDocumentByID(ctx context.Context, id string) (*wordsaver.Document, error) {
	var doc wordsaver.Document
	var createdAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, filename, content_hash, created_at
		FROM documents
		WHERE id = ?
	`, id).Scan(&doc.ID, &doc.Filename, &doc.ContentHash, &createdAt)

	if err == sql.ErrNoRows {
		return nil, wordsaver.Errorf(wordsaver.ENOTFOUND, "document not found")
	}
	if err != nil {
		return nil, err
	}

	if doc.Timestamp, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}

	pages, err := s.findPages(ctx, "WHERE document_id = ?", id)
	if err != nil {
		return nil, err
	}
	doc.Pages = pages[doc.ID]

	return &doc, nil
}

// FindDocumentByContent returns the oldest stored document whose page text
// equals doc's. Candidates are found by content hash and then compared in
// full, so a hash collision never reports a false match.
func (s *DocumentService) FindDocumentByContent(ctx context.Context, doc *wordsaver.Document) (*wordsaver.Document, error) {
	text := doc.Text()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id
		FROM documents
		WHERE content_hash = ?
		ORDER BY created_at ASC, id ASC
	`, hashContent(text))
	if err != nil {
		return nil, err
	}
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	for _, id := range ids {
		found, err := s.FindDocumentByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if found.Text() == text {
			return found, nil
		}
	}
	return nil, wordsaver.Errorf(wordsaver.ENOTFOUND, "no document with the same content")
}

// FindDocuments retrieves all documents with their pages, newest first.
func (s *DocumentService) FindDocuments(ctx context.Context) ([]*wordsaver.Document, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, filename, content_hash, created_at
		FROM documents
		ORDER BY created_at DESC, id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := []*wordsaver.Document{}
	for rows.Next() {
		var doc wordsaver.Document
		var createdAt string
		if err := rows.Scan(&doc.ID, &doc.Filename, &doc.ContentHash, &createdAt); err != nil {
			return nil, err
		}
		if doc.Timestamp, err = parseRFC3339(createdAt, "created_at"); err != nil {
			return nil, err
		}
		docs = append(docs, &doc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	pages, err := s.findPages(ctx, "")
	if err != nil {
		return nil, err
	}
	for _, doc := range docs {
		doc.Pages = pages[doc.ID]
	}

	return docs, nil
}

// findPages loads page records grouped by document ID, in page order.
func (s *DocumentService) findPages(ctx context.Context, where string, args ...any) (map[string][]wordsaver.PageRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT document_id, page, text FROM document_pages "+where+" ORDER BY document_id, page ASC", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pages := make(map[string][]wordsaver.PageRecord)
	for rows.Next() {
		var docID string
		var p wordsaver.PageRecord
		if err := rows.Scan(&docID, &p.Page, &p.Text); err != nil {
			return nil, err
		}
		pages[docID] = append(pages[docID], p)
	}

	return pages, rows.Err()
}

// DeleteDocument permanently removes a document and its pages.
func (s *DocumentService) DeleteDocument(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return wordsaver.Errorf(wordsaver.ENOTFOUND, "document not found")
	}

	return nil
}
