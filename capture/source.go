package capture

import (
	"context"
	"strings"

	"github.com/fwojciec/wordsaver"
)

// Source is where a capture gets its selection from. Each variant resolves
// to a container text and a selected substring before extraction, so the
// extraction itself never knows which trigger fired.
type Source interface {
	resolve(ctx context.Context, c *Capturer) (*resolution, error)
}

// resolution is the uniform result of resolving a Source.
type resolution struct {
	container string
	selected  string

	// occurrence is the selected match within container, or -1 if unknown.
	occurrence int
}

// RangeSource captures the live selection of a page, as after a double
// Control tap.
type RangeSource struct {
	Page wordsaver.SelectionReader
}

func (s RangeSource) resolve(ctx context.Context, c *Capturer) (*resolution, error) {
	sel, err := s.Page.ActiveSelection(ctx)
	if err != nil {
		return nil, err
	}
	if sel == nil || strings.TrimSpace(sel.Text) == "" {
		return nil, wordsaver.Errorf(wordsaver.ENOTFOUND, "no active selection")
	}
	return &resolution{
		container:  sel.ContainerText,
		selected:   strings.TrimSpace(sel.Text),
		occurrence: sel.Occurrence,
	}, nil
}

// MenuSource captures text handed over by a context-menu click. Only the
// string is known, so the container is taken from the live selection when
// it matches, or else from the first text node that contains the string.
type MenuSource struct {
	Page wordsaver.SelectionReader
	Text string
}

func (s MenuSource) resolve(ctx context.Context, c *Capturer) (*resolution, error) {
	target := strings.TrimSpace(s.Text)
	if target == "" {
		return nil, wordsaver.Errorf(wordsaver.ENOTFOUND, "empty menu selection")
	}

	sel, err := s.Page.ActiveSelection(ctx)
	if err != nil {
		c.logger.Debug("read live selection", "err", err)
	} else if sel != nil && strings.TrimSpace(sel.Text) == target {
		return &resolution{
			container:  sel.ContainerText,
			selected:   target,
			occurrence: sel.Occurrence,
		}, nil
	}

	container, err := s.Page.FindTextContainer(ctx, target)
	if err != nil {
		if wordsaver.IsSilent(err) {
			return nil, wordsaver.Errorf(wordsaver.EUNRESOLVED, "no text container holds %q", target)
		}
		return nil, err
	}
	return &resolution{container: container, selected: target, occurrence: -1}, nil
}

// TextInputSource captures a selection made in the extracted text of an
// imported document page. Start and End are rune offsets into PageText.
//
// The clipboard is consulted first: when it holds non-empty text that
// contains the selection, that text replaces PageText as the container.
type TextInputSource struct {
	PageText   string
	Start, End int
}

func (s TextInputSource) resolve(ctx context.Context, c *Capturer) (*resolution, error) {
	runes := []rune(s.PageText)
	start, end := clamp(s.Start, len(runes)), clamp(s.End, len(runes))
	if start > end {
		start, end = end, start
	}

	selected := strings.TrimSpace(string(runes[start:end]))
	if selected == "" {
		return nil, wordsaver.Errorf(wordsaver.ENOTFOUND, "empty text selection")
	}

	container := s.PageText
	if c.clipboard != nil {
		text, err := c.clipboard.ReadText(ctx)
		switch {
		case err != nil:
			c.logger.Debug("clipboard unavailable, using page text", "err", err)
		case strings.TrimSpace(text) != "" && strings.Contains(text, selected):
			container = text
		}
	}

	return &resolution{container: container, selected: selected, occurrence: -1}, nil
}

func clamp(n, max int) int {
	if n < 0 {
		return 0
	}
	if n > max {
		return max
	}
	return n
}
