package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fwojciec/wordsaver"
)

// pdfMagic starts every PDF file.
var pdfMagic = []byte("%PDF")

// Run executes the import command. PDF files are split into pages; any
// other file is read as HTML and stored as a single page. Content that was
// imported before is skipped, or with --replace stored over the earlier
// record.
func (c *ImportCmd) Run(deps *Dependencies) error {
	f, err := os.Open(c.Path)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}
	defer f.Close()

	extractor, err := extractorFor(deps, f)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	result, err := extractor.ExtractPages(deps.Ctx, f)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wordsaver.ErrorMessage(err))
		return err
	}
	for _, n := range result.Skipped {
		fmt.Fprintf(deps.Stderr, "  skip page %d: no extractable text\n", n)
	}

	doc := &wordsaver.Document{
		Filename: filepath.Base(c.Path),
		Pages:    result.Pages,
	}

	existing, err := deps.Documents.FindDocumentByContent(deps.Ctx, doc)
	switch {
	case err == nil && !c.Replace:
		fmt.Fprintf(deps.Stdout, "%q already imported as %s (%s)\n", doc.Filename, existing.ID, existing.Filename)
		return nil
	case err == nil:
		doc.ID = existing.ID
	case wordsaver.ErrorCode(err) != wordsaver.ENOTFOUND:
		fmt.Fprintf(deps.Stderr, "error: %s\n", wordsaver.ErrorMessage(err))
		return err
	}

	if err := deps.Documents.SaveDocument(deps.Ctx, doc); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wordsaver.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Imported %q (%s): %d pages\n", doc.Filename, doc.ID, len(doc.Pages))
	return nil
}

// extractorFor sniffs the file header and rewinds r.
func extractorFor(deps *Dependencies, r io.ReadSeeker) (wordsaver.PageExtractor, error) {
	head := make([]byte, len(pdfMagic))
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, err
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	if bytes.Equal(head[:n], pdfMagic) {
		return deps.PDF, nil
	}
	return deps.HTML, nil
}

// Run executes the docs command.
func (c *DocsCmd) Run(deps *Dependencies) error {
	docs, err := deps.Documents.FindDocuments(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wordsaver.ErrorMessage(err))
		return err
	}

	if len(docs) == 0 {
		fmt.Fprintln(deps.Stdout, "No documents. Use 'wordsaver import' to add one.")
		return nil
	}

	for _, doc := range docs {
		fmt.Fprintf(deps.Stdout, "%s  %s  %d pages  %s  %s\n",
			doc.ID, doc.Filename, len(doc.Pages), doc.ContentHash, doc.Timestamp.Format("2006-01-02"))
	}
	return nil
}

// Run executes the pages command.
func (c *PagesCmd) Run(deps *Dependencies) error {
	doc, err := findDocument(deps, c.ID)
	if err != nil {
		return err
	}

	pages := doc.Pages
	if c.Page > 0 {
		p, err := doc.Page(c.Page)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", wordsaver.ErrorMessage(err))
			return err
		}
		pages = []wordsaver.PageRecord{*p}
	}

	for _, p := range pages {
		fmt.Fprintf(deps.Stdout, "--- page %d ---\n%s\n", p.Page, p.Text)
	}
	return nil
}

// Run executes the doc-delete command.
func (c *DocDeleteCmd) Run(deps *Dependencies) error {
	if err := deps.Documents.DeleteDocument(deps.Ctx, c.ID); err != nil {
		if wordsaver.ErrorCode(err) == wordsaver.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: document %q not found. Use 'wordsaver docs' to see documents.\n", c.ID)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", wordsaver.ErrorMessage(err))
		}
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted document %s\n", c.ID)
	return nil
}

func findDocument(deps *Dependencies, id string) (*wordsaver.Document, error) {
	doc, err := deps.Documents.FindDocumentByID(deps.Ctx, id)
	if err != nil {
		if wordsaver.ErrorCode(err) == wordsaver.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: document %q not found. Use 'wordsaver docs' to see documents.\n", id)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", wordsaver.ErrorMessage(err))
		}
		return nil, err
	}
	return doc, nil
}
