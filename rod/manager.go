package rod

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultMaxPages is the number of fetched pages after which the browser is
// restarted.
const DefaultMaxPages = 75

// BrowserManager owns one Chrome process. Pages fetched through Browser are
// counted, and once the count reaches the page budget the process is
// replaced with a fresh one, since Chrome's memory baseline only grows over
// a long dispatch stream. Pages opened with OpenPage are not counted.
//
// BrowserManager is safe for concurrent use.
type BrowserManager struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	headless bool
	budget   pageBudget
	recycles int
	logger   *slog.Logger
	mu       sync.Mutex
	closed   atomic.Bool
}

// pageBudget counts the pages served by the current browser process.
// A non-positive max never runs out.
type pageBudget struct {
	max  int64
	used atomic.Int64
}

func (b *pageBudget) spend() int64 {
	return b.used.Add(1)
}

func (b *pageBudget) exhausted() bool {
	return b.max > 0 && b.used.Load() >= b.max
}

func (b *pageBudget) reset() {
	b.used.Store(0)
}

// ManagerOption configures a BrowserManager.
type ManagerOption func(*BrowserManager)

// WithMaxPages sets how many fetched pages the browser serves before it is
// restarted. Zero or less disables restarts.
func WithMaxPages(n int64) ManagerOption {
	return func(bm *BrowserManager) {
		bm.budget.max = n
	}
}

// WithHeadless controls whether the browser window is hidden. Capturing
// with the keyboard needs a visible window. Defaults to true.
func WithHeadless(headless bool) ManagerOption {
	return func(bm *BrowserManager) {
		bm.headless = headless
	}
}

// WithManagerLogger sets the logger for browser restarts.
func WithManagerLogger(logger *slog.Logger) ManagerOption {
	return func(bm *BrowserManager) {
		if logger != nil {
			bm.logger = logger
		}
	}
}

// NewBrowserManager creates a new BrowserManager and launches Chrome.
// Close must be called when the BrowserManager is no longer needed.
func NewBrowserManager(opts ...ManagerOption) (*BrowserManager, error) {
	bm := &BrowserManager{
		headless: true,
		logger:   slog.New(slog.DiscardHandler),
	}
	bm.budget.max = DefaultMaxPages
	for _, opt := range opts {
		opt(bm)
	}

	if err := bm.launchBrowser(); err != nil {
		return nil, err
	}

	return bm, nil
}

// Browser returns the browser to fetch the next page with, restarting it
// first when the page budget is spent. Call PageServed once the page is
// done.
func (bm *BrowserManager) Browser() *rod.Browser {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if bm.budget.exhausted() {
		bm.recycle()
	}

	return bm.browser
}

// PageServed counts one fetched page against the current browser.
func (bm *BrowserManager) PageServed() {
	bm.budget.spend()
}

// Recycles reports how many times the browser has been restarted.
func (bm *BrowserManager) Recycles() int {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	return bm.recycles
}

// OpenPage opens url in a new tab and waits for it to load. The page is
// not counted toward recycling; it lives until the caller closes it.
func (bm *BrowserManager) OpenPage(ctx context.Context, url string, opts ...PageOption) (*Page, error) {
	bm.mu.Lock()
	browser := bm.browser
	bm.mu.Unlock()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("creating page: %w", err)
	}

	if err := page.Context(ctx).Navigate(url); err != nil {
		page.Close()
		return nil, fmt.Errorf("navigating to %s: %w", url, err)
	}
	if err := page.Context(ctx).WaitLoad(); err != nil {
		page.Close()
		return nil, fmt.Errorf("waiting for %s: %w", url, err)
	}

	return NewPage(page, opts...), nil
}

// Close releases browser resources. Close is safe to call multiple times.
func (bm *BrowserManager) Close() error {
	if !bm.closed.CompareAndSwap(false, true) {
		return nil
	}

	bm.mu.Lock()
	defer bm.mu.Unlock()

	return bm.closeBrowser()
}

// launchBrowser starts a new browser instance with stability flags.
func (bm *BrowserManager) launchBrowser() error {
	lnchr := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("disable-hang-monitor").
		Leakless(true).
		Headless(bm.headless)

	u, err := lnchr.Launch()
	if err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		lnchr.Kill()
		return fmt.Errorf("connecting to browser: %w", err)
	}

	bm.browser = browser
	bm.launcher = lnchr
	return nil
}

// closeBrowser shuts down the current browser and launcher.
// Must be called with mu held.
func (bm *BrowserManager) closeBrowser() error {
	var err error
	if bm.browser != nil {
		err = bm.browser.Close()
		bm.browser = nil
	}
	if bm.launcher != nil {
		bm.launcher.Kill()
		bm.launcher = nil
	}
	return err
}

// recycle replaces the browser process. If the new one fails to launch the
// old one is kept and the next call tries again.
// Must be called with mu held.
func (bm *BrowserManager) recycle() {
	oldBrowser, oldLauncher := bm.browser, bm.launcher
	served := bm.budget.used.Load()

	if err := bm.launchBrowser(); err != nil {
		bm.logger.Warn("browser restart failed", "pages", served, "err", err)
		return
	}

	if oldBrowser != nil {
		_ = oldBrowser.Close()
	}
	if oldLauncher != nil {
		oldLauncher.Kill()
	}
	bm.budget.reset()
	bm.recycles++
	bm.logger.Info("browser restarted", "pages", served, "restarts", bm.recycles)
}

// LauncherPID returns the process ID of the browser launcher.
// This method exists for testing purposes to verify proper cleanup.
func (bm *BrowserManager) LauncherPID() int {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	if bm.launcher == nil {
		return 0
	}
	return bm.launcher.PID()
}
