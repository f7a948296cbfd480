package wordsaver

import "context"

// Fetcher retrieves the HTML of a page so captures can run against it
// outside a browser.
type Fetcher interface {
	// Fetch returns the page HTML.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}
