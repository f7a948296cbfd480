package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/wordsaver"
	"github.com/fwojciec/wordsaver/capture"
	"github.com/fwojciec/wordsaver/export"
)

// LivePage is a browser tab a user selects text in.
type LivePage interface {
	wordsaver.SelectionReader
	wordsaver.KeySource
	Close() error
}

// PageOpener opens url in a visible browser tab.
type PageOpener func(ctx context.Context, url string) (LivePage, error)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader
	Logger *slog.Logger

	Words     wordsaver.SavedWordService
	Watcher   wordsaver.SavedWordWatcher
	Documents wordsaver.DocumentService
	Capturer  *capture.Capturer
	Fetcher   wordsaver.Fetcher
	Exporter  *export.Exporter
	OpenPage  PageOpener

	// Extractors for imported files.
	PDF  wordsaver.PageExtractor
	HTML wordsaver.PageExtractor
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose      bool   `short:"v" help:"Log service calls to stderr"`
	SourceLang   string `name:"source-lang" default:"en" help:"Language of saved text"`
	TargetLang   string `name:"target-lang" default:"pt-BR" help:"Language to translate into on export"`
	Concurrency  int    `short:"c" default:"4" help:"Concurrent translations on export"`
	Fetch        string `enum:"http,browser" default:"http" help:"How pages are fetched for save and dispatch (http or browser)"`
	BrowserPages int64  `name:"browser-pages" default:"75" help:"Pages fetched before the browser is restarted (--fetch=browser)"`

	Save      SaveCmd      `cmd:"" help:"Save the sentence around text found on a web page"`
	List      ListCmd      `cmd:"" help:"List saved words"`
	Delete    DeleteCmd    `cmd:"" help:"Delete a saved word"`
	WatchList WatchListCmd `cmd:"" name:"watch-list" help:"Print saved words every time they change"`
	Export    ExportCmd    `cmd:"" help:"Translate saved words and copy them to the clipboard"`
	Import    ImportCmd    `cmd:"" help:"Import a PDF or HTML document"`
	Docs      DocsCmd      `cmd:"" help:"List imported documents"`
	Pages     PagesCmd     `cmd:"" help:"Print the pages of an imported document"`
	DocDelete DocDeleteCmd `cmd:"" name:"doc-delete" help:"Delete an imported document"`
	Pick      PickCmd      `cmd:"" help:"Save the sentence around a range of a document page"`
	Watch     WatchCmd     `cmd:"" help:"Open a page in a browser and save selections on double Control"`
	Dispatch  DispatchCmd  `cmd:"" help:"Handle JSON message envelopes read from stdin"`
}

// SaveCmd is the "save" subcommand.
type SaveCmd struct {
	URL        string `arg:"" help:"Page URL"`
	Text       string `arg:"" help:"Text to save, as picked from a context menu"`
	Occurrence int    `short:"n" help:"Select the Nth match of text on the page (1-based) instead of the first"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Offset int `help:"Skip this many words"`
	Limit  int `help:"Show at most this many words"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID string `arg:"" help:"Saved word ID"`
}

// WatchListCmd is the "watch-list" subcommand.
type WatchListCmd struct{}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Print bool `short:"p" help:"Also print the exported lines"`
}

// ImportCmd is the "import" subcommand.
type ImportCmd struct {
	Path    string `arg:"" type:"existingfile" help:"PDF or HTML file"`
	Replace bool   `help:"Replace an earlier import of the same content instead of skipping"`
}

// DocsCmd is the "docs" subcommand.
type DocsCmd struct{}

// PagesCmd is the "pages" subcommand.
type PagesCmd struct {
	ID   string `arg:"" help:"Document ID"`
	Page int    `help:"Print only this page"`
}

// DocDeleteCmd is the "doc-delete" subcommand.
type DocDeleteCmd struct {
	ID string `arg:"" help:"Document ID"`
}

// PickCmd is the "pick" subcommand.
type PickCmd struct {
	ID    string `arg:"" help:"Document ID"`
	Page  int    `arg:"" help:"1-based page number"`
	Start int    `arg:"" help:"Selection start, in characters"`
	End   int    `arg:"" help:"Selection end, in characters"`
}

// WatchCmd is the "watch" subcommand.
type WatchCmd struct {
	URL string `arg:"" help:"Page URL"`
}

// DispatchCmd is the "dispatch" subcommand.
type DispatchCmd struct {
	URL string `help:"Page to resolve context-menu selections without a url against"`
}
