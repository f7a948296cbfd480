package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/wordsaver"
	"github.com/fwojciec/wordsaver/capture"
	"github.com/fwojciec/wordsaver/clipboard"
	"github.com/fwojciec/wordsaver/export"
	"github.com/fwojciec/wordsaver/gemini"
	"github.com/fwojciec/wordsaver/gocache"
	wshttp "github.com/fwojciec/wordsaver/http"
	"github.com/fwojciec/wordsaver/pdfcpu"
	"github.com/fwojciec/wordsaver/readability"
	"github.com/fwojciec/wordsaver/rod"
	wsslog "github.com/fwojciec/wordsaver/slog"
	"github.com/fwojciec/wordsaver/sqlite"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// Stdin is read by the dispatch command.
	Stdin io.Reader

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	SavedWordService *sqlite.SavedWordService
	DocumentService  *sqlite.DocumentService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
		Stdin:  os.Stdin,
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Stdin:  m.Stdin,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("wordsaver"),
		kong.Description("Save words with the sentence they were read in."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'wordsaver --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	deps.Logger = newLogger(stderr, cli.Verbose)

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set WORDSAVER_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	// Wire core services into dependencies
	m.SavedWordService = sqlite.NewSavedWordService(m.DB)
	m.DocumentService = sqlite.NewDocumentService(m.DB)
	deps.Words = wsslog.NewLoggingSavedWordService(m.SavedWordService, deps.Logger)
	deps.Watcher = m.SavedWordService
	deps.Documents = wsslog.NewLoggingDocumentService(m.DocumentService, deps.Logger)
	captureOpts := []capture.Option{
		capture.WithClipboard(clipboard.New()),
		capture.WithLogger(deps.Logger),
	}
	if cmd == "save" && cli.Save.Occurrence > 0 {
		captureOpts = append(captureOpts, capture.WithRangeOccurrence())
	}
	deps.Capturer = capture.NewCapturer(deps.Words, captureOpts...)
	deps.PDF = wsslog.NewLoggingPageExtractor(pdfcpu.NewPageExtractor(), deps.Logger)
	deps.HTML = wsslog.NewLoggingPageExtractor(readability.NewPageExtractor(), deps.Logger)

	// Wire command-specific dependencies based on command
	if cmd == "save" || cmd == "dispatch" {
		fetcher, err := newFetcher(cli.Fetch, cli.BrowserPages, deps.Logger)
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed for --fetch=browser")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		defer fetcher.Close()
		deps.Fetcher = wsslog.NewLoggingFetcher(fetcher, deps.Logger)
	}

	if cmd == "watch" {
		bm, err := rod.NewBrowserManager(rod.WithHeadless(false))
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		defer bm.Close()

		logger := deps.Logger
		deps.OpenPage = func(ctx context.Context, url string) (LivePage, error) {
			page, err := bm.OpenPage(ctx, url, rod.WithPageLogger(logger))
			if err != nil {
				return nil, err
			}
			return page, nil
		}
	}

	if cmd == "export" {
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
			return fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
		}

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return fmt.Errorf("failed to connect to Gemini API: %w", err)
		}

		var translator wordsaver.Translator = gemini.NewTranslator(client, cli.SourceLang, cli.TargetLang)
		translator = wsslog.NewLoggingTranslator(translator, deps.Logger)

		deps.Exporter = &export.Exporter{
			Words:       deps.Words,
			Translator:  gocache.NewTranslator(translator),
			Clipboard:   clipboard.New(),
			Limiter:     rate.NewLimiter(rate.Limit(translationsPerSecond), 1),
			Concurrency: cli.Concurrency,
		}
	}

	return kongCtx.Run(deps)
}

// translationsPerSecond keeps export under the free-tier request quota.
const translationsPerSecond = 5

func newFetcher(kind string, browserPages int64, logger *slog.Logger) (wordsaver.Fetcher, error) {
	if kind == "browser" {
		return rod.NewFetcher(rod.WithMaxPages(browserPages), rod.WithManagerLogger(logger))
	}
	return wshttp.NewFetcher(), nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func defaultDBPath() string {
	if path := os.Getenv("WORDSAVER_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "wordsaver.db"
	}
	dir := filepath.Join(home, ".wordsaver")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "wordsaver.db")
}
