//go:build integration

package rod_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fwojciec/wordsaver/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pagesServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprintf(w, "<html><body><p>Page %s</p></body></html>", r.URL.Path)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetcher_RestartsBrowserWhenBudgetIsSpent(t *testing.T) {
	t.Parallel()

	srv := pagesServer(t)

	fetcher, err := rod.NewFetcher(rod.WithMaxPages(2))
	require.NoError(t, err)
	defer fetcher.Close()

	firstPID := fetcher.LauncherPID()

	for i := 0; i < 3; i++ {
		html, err := fetcher.Fetch(context.Background(), fmt.Sprintf("%s/%d", srv.URL, i))
		require.NoError(t, err)
		assert.Contains(t, html, fmt.Sprintf("Page /%d", i))
	}

	assert.Equal(t, 1, fetcher.Recycles())
	assert.NotEqual(t, firstPID, fetcher.LauncherPID())
}

func TestFetcher_KeepsBrowserWithinBudget(t *testing.T) {
	t.Parallel()

	srv := pagesServer(t)

	fetcher, err := rod.NewFetcher(rod.WithMaxPages(5))
	require.NoError(t, err)
	defer fetcher.Close()

	firstPID := fetcher.LauncherPID()

	for i := 0; i < 3; i++ {
		_, err := fetcher.Fetch(context.Background(), srv.URL)
		require.NoError(t, err)
	}

	assert.Zero(t, fetcher.Recycles())
	assert.Equal(t, firstPID, fetcher.LauncherPID())
}

func TestBrowserManager_OpenPageIsNotCounted(t *testing.T) {
	t.Parallel()

	srv := pagesServer(t)

	manager, err := rod.NewBrowserManager(rod.WithMaxPages(1))
	require.NoError(t, err)
	defer manager.Close()

	for i := 0; i < 2; i++ {
		page, err := manager.OpenPage(context.Background(), srv.URL)
		require.NoError(t, err)
		require.NoError(t, page.Close())
	}

	first := manager.Browser()
	assert.Same(t, first, manager.Browser())
	assert.Zero(t, manager.Recycles())
}
