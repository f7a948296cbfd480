package rod

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/fwojciec/wordsaver"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// Compile-time interface verification.
var (
	_ wordsaver.SelectionReader = (*Page)(nil)
	_ wordsaver.KeySource       = (*Page)(nil)
)

// keyBinding is the name of the JS to Go binding for key events.
const keyBinding = "__wordsaver_key"

// keyListenerJS reports Control key transitions to the binding. Listeners
// run in the capture phase so page handlers cannot swallow the events.
const keyListenerJS = `() => {
	if (window.__wordsaverKeys) return;
	window.__wordsaverKeys = true;
	const send = (down) => window.__wordsaver_key(JSON.stringify({down: down, time: Date.now()}));
	document.addEventListener('keydown', (e) => { if (e.key === 'Control') send(true); }, true);
	document.addEventListener('keyup', (e) => { if (e.key === 'Control') send(false); }, true);
}`

// selectionJS reads the first range of the selection, walks up from its
// common ancestor to an element and reports which match of the trimmed
// selection in that element's text the range starts at.
const selectionJS = `() => {
	const sel = window.getSelection();
	if (!sel || !sel.rangeCount) return '';
	const range = sel.getRangeAt(0);
	const text = sel.toString();
	let container = range.commonAncestorContainer;
	while (container && container.nodeType !== Node.ELEMENT_NODE) container = container.parentNode;
	if (!container) return '';
	const full = container.textContent || '';
	const prefix = document.createRange();
	prefix.selectNodeContents(container);
	prefix.setEnd(range.startContainer, range.startOffset);
	const start = prefix.toString().length + (text.length - text.trimStart().length);
	const trimmed = text.trim();
	let occurrence = -1;
	if (trimmed) {
		occurrence = 0;
		for (let i = full.indexOf(trimmed); i !== -1 && i + trimmed.length <= start; i = full.indexOf(trimmed, i + trimmed.length)) {
			occurrence++;
		}
	}
	return JSON.stringify({text: text, container: full, occurrence: occurrence});
}`

// textContainerJS returns the text of the parent element of the first body
// text node containing target.
const textContainerJS = `(target) => {
	const walker = document.createTreeWalker(document.body, NodeFilter.SHOW_TEXT);
	for (let node = walker.nextNode(); node; node = walker.nextNode()) {
		if (node.textContent && node.textContent.includes(target)) {
			const parent = node.parentElement;
			return parent ? JSON.stringify({found: true, text: parent.textContent || ''}) : '';
		}
	}
	return '';
}`

// keyBufferSize bounds key events waiting for the capture loop.
const keyBufferSize = 64

// Page is a live browser tab the user reads and selects text in.
type Page struct {
	page   *rod.Page
	logger *slog.Logger
}

// PageOption configures a Page.
type PageOption func(*Page)

// WithPageLogger sets the logger for key-event diagnostics.
func WithPageLogger(logger *slog.Logger) PageOption {
	return func(p *Page) {
		p.logger = logger
	}
}

// NewPage wraps an open rod page.
func NewPage(page *rod.Page, opts ...PageOption) *Page {
	p := &Page{
		page:   page,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ActiveSelection returns the page's current selection, or nil when
// nothing is selected.
func (p *Page) ActiveSelection(ctx context.Context) (*wordsaver.LiveSelection, error) {
	res, err := p.page.Context(ctx).Eval(selectionJS)
	if err != nil {
		return nil, wordsaver.Errorf(wordsaver.EUNAVAILABLE, "read selection: %v", err)
	}

	raw := res.Value.Str()
	if raw == "" {
		return nil, nil
	}

	var sel struct {
		Text       string `json:"text"`
		Container  string `json:"container"`
		Occurrence int    `json:"occurrence"`
	}
	if err := json.Unmarshal([]byte(raw), &sel); err != nil {
		return nil, fmt.Errorf("decoding selection: %w", err)
	}

	return &wordsaver.LiveSelection{
		Text:          sel.Text,
		ContainerText: sel.Container,
		Occurrence:    sel.Occurrence,
	}, nil
}

// FindTextContainer returns the text of the parent element of the first
// body text node that contains target.
func (p *Page) FindTextContainer(ctx context.Context, target string) (string, error) {
	res, err := p.page.Context(ctx).Eval(textContainerJS, target)
	if err != nil {
		return "", wordsaver.Errorf(wordsaver.EUNAVAILABLE, "scan text nodes: %v", err)
	}

	raw := res.Value.Str()
	if raw == "" {
		return "", wordsaver.Errorf(wordsaver.EUNRESOLVED, "no text node contains %q", target)
	}

	var found struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal([]byte(raw), &found); err != nil {
		return "", fmt.Errorf("decoding text container: %w", err)
	}
	return found.Text, nil
}

// ControlKeys installs Control key listeners in the page, including pages
// it navigates to later, and streams the events until ctx is done.
func (p *Page) ControlKeys(ctx context.Context) (<-chan wordsaver.KeyEvent, error) {
	if err := (proto.RuntimeAddBinding{Name: keyBinding}).Call(p.page); err != nil {
		return nil, fmt.Errorf("adding key binding: %w", err)
	}

	remove, err := p.page.EvalOnNewDocument("(" + keyListenerJS + ")()")
	if err != nil {
		return nil, fmt.Errorf("installing key listener: %w", err)
	}

	events := make(chan wordsaver.KeyEvent, keyBufferSize)

	// Subscribe before the listener can fire on the current document.
	wait := p.page.Context(ctx).EachEvent(func(e *proto.RuntimeBindingCalled) {
		if e.Name != keyBinding {
			return
		}
		ev, err := parseKeyEvent(e.Payload)
		if err != nil {
			p.logger.Warn("rod: bad key event", "payload", e.Payload, "error", err)
			return
		}
		select {
		case events <- ev:
		case <-ctx.Done():
		}
	})

	if _, err := p.page.Context(ctx).Eval(keyListenerJS); err != nil {
		_ = remove()
		return nil, fmt.Errorf("installing key listener: %w", err)
	}

	go func() {
		wait()
		_ = remove()
		close(events)
	}()

	return events, nil
}

// Close closes the browser tab.
func (p *Page) Close() error {
	return p.page.Close()
}

// parseKeyEvent decodes a binding payload of the form
// {"down": bool, "time": unix-millis}.
func parseKeyEvent(payload string) (wordsaver.KeyEvent, error) {
	var raw struct {
		Down *bool `json:"down"`
		Time int64 `json:"time"`
	}
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return wordsaver.KeyEvent{}, err
	}
	if raw.Down == nil || raw.Time <= 0 {
		return wordsaver.KeyEvent{}, fmt.Errorf("incomplete key event")
	}
	return wordsaver.KeyEvent{Down: *raw.Down, Time: time.UnixMilli(raw.Time)}, nil
}
