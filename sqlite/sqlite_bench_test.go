package sqlite_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/wordsaver"
	"github.com/fwojciec/wordsaver/sqlite"
	"github.com/stretchr/testify/require"
)

// BenchmarkCreateSavedWord measures single-item appends against a file database,
// the workload of a capture session.
func BenchmarkCreateSavedWord(b *testing.B) {
	dbPath := filepath.Join(b.TempDir(), "bench.db")

	db := sqlite.NewDB(dbPath)
	require.NoError(b, db.Open())
	defer func() {
		db.Close()
		os.Remove(dbPath + "-wal")
		os.Remove(dbPath + "-shm")
	}()

	ctx := context.Background()
	svc := sqlite.NewSavedWordService(db)
	now := time.Now()

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		item := wordsaver.NewSavedTextItem(fmt.Sprintf("id-%d", i), wordsaver.SavedTextContent{
			Before:   "Lorem ipsum dolor sit amet,",
			Selected: fmt.Sprintf("word%d", i),
			After:    "consectetur adipiscing elit.",
		}, now)
		if err := svc.CreateSavedWord(ctx, item); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkSaveDocument measures importing a document with many pages.
func BenchmarkSaveDocument(b *testing.B) {
	const pagesPerDocument = 100

	dbPath := filepath.Join(b.TempDir(), "bench.db")

	db := sqlite.NewDB(dbPath)
	require.NoError(b, db.Open())
	defer db.Close()

	ctx := context.Background()
	svc := sqlite.NewDocumentService(db)

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		doc := &wordsaver.Document{Filename: fmt.Sprintf("book%d.pdf", i)}
		for j := 1; j <= pagesPerDocument; j++ {
			doc.Pages = append(doc.Pages, wordsaver.PageRecord{
				Page: j,
				Text: fmt.Sprintf("Page %d of book %d. Lorem ipsum dolor sit amet.", j, i),
			})
		}
		if err := svc.SaveDocument(ctx, doc); err != nil {
			b.Fatal(err)
		}
	}
}
