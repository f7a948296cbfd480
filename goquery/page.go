// Package goquery implements wordsaver.SelectionReader over a parsed HTML
// document, for pages fetched without a browser.
package goquery

import (
	"context"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/wordsaver"
	"golang.org/x/net/html"
)

// Compile-time interface verification.
var _ wordsaver.SelectionReader = (*Page)(nil)

// point is a position inside a text node. Offset is a byte offset into the
// node's data.
type point struct {
	Node   *html.Node
	Offset int
}

// textRange is a selection between two points in document order.
type textRange struct {
	Start point
	End   point
}

// Page is a static HTML document with an optional selection.
type Page struct {
	doc *goquery.Document
	sel *textRange
}

// NewPage parses HTML from r.
func NewPage(r io.Reader) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, wordsaver.Errorf(wordsaver.EINVALID, "failed to parse HTML: %v", err)
	}
	return &Page{doc: doc}, nil
}

// NewPageFromString parses an HTML string.
func NewPageFromString(s string) (*Page, error) {
	return NewPage(strings.NewReader(s))
}

// setSelection replaces the current selection. Both endpoints must be text
// nodes of this page; reversed endpoints are swapped.
func (p *Page) setSelection(r textRange) error {
	nodes := textNodes(p.doc.Get(0))
	si, ei := indexOf(nodes, r.Start.Node), indexOf(nodes, r.End.Node)
	if si == -1 || ei == -1 {
		return wordsaver.Errorf(wordsaver.EINVALID, "selection endpoints must be text nodes of the page")
	}
	if r.Start.Offset < 0 || r.Start.Offset > len(r.Start.Node.Data) ||
		r.End.Offset < 0 || r.End.Offset > len(r.End.Node.Data) {
		return wordsaver.Errorf(wordsaver.EINVALID, "selection offset out of range")
	}
	if si > ei || (si == ei && r.Start.Offset > r.End.Offset) {
		r.Start, r.End = r.End, r.Start
	}
	p.sel = &r
	return nil
}

// SelectText selects the zero-based occurrence-th match of target in the
// body text. The match may span several text nodes.
// Returns ENOTFOUND if there is no such match. A failed call leaves the
// page without a selection.
func (p *Page) SelectText(target string, occurrence int) error {
	p.sel = nil
	if target == "" || occurrence < 0 {
		return wordsaver.Errorf(wordsaver.EINVALID, "target and a non-negative occurrence required")
	}

	nodes := textNodes(body(p.doc))
	var text strings.Builder
	for _, n := range nodes {
		text.WriteString(n.Data)
	}

	start := indexNth(text.String(), target, occurrence)
	if start == -1 {
		return wordsaver.Errorf(wordsaver.ENOTFOUND, "occurrence %d of %q not found", occurrence, target)
	}
	end := start + len(target)

	var r textRange
	pos := 0
	for _, n := range nodes {
		next := pos + len(n.Data)
		if r.Start.Node == nil && start < next {
			r.Start = point{Node: n, Offset: start - pos}
		}
		if end <= next {
			r.End = point{Node: n, Offset: end - pos}
			break
		}
		pos = next
	}

	return p.setSelection(r)
}

// ActiveSelection returns the selected text and the text of the nearest
// element enclosing the selection's common ancestor.
func (p *Page) ActiveSelection(_ context.Context) (*wordsaver.LiveSelection, error) {
	if p.sel == nil {
		return nil, nil
	}

	container := elementAncestor(commonAncestor(p.sel.Start.Node, p.sel.End.Node))
	if container == nil {
		return nil, wordsaver.Errorf(wordsaver.EUNRESOLVED, "selection has no element ancestor")
	}

	nodes := textNodes(container)
	var text strings.Builder
	var selected strings.Builder
	startOffset := -1
	inside := false
	for _, n := range nodes {
		if n == p.sel.Start.Node {
			startOffset = text.Len() + p.sel.Start.Offset
			inside = true
		}
		if inside {
			from, to := 0, len(n.Data)
			if n == p.sel.Start.Node {
				from = p.sel.Start.Offset
			}
			if n == p.sel.End.Node {
				to = p.sel.End.Offset
				inside = false
			}
			selected.WriteString(n.Data[from:to])
		}
		text.WriteString(n.Data)
	}

	containerText := text.String()
	sel := selected.String()

	return &wordsaver.LiveSelection{
		Text:          sel,
		ContainerText: containerText,
		Occurrence:    occurrenceAt(containerText, sel, startOffset),
	}, nil
}

// FindTextContainer scans body text nodes in document order and returns
// the text of the parent element of the first node containing target.
func (p *Page) FindTextContainer(_ context.Context, target string) (string, error) {
	if target == "" {
		return "", wordsaver.Errorf(wordsaver.EUNRESOLVED, "empty target")
	}
	for _, n := range textNodes(body(p.doc)) {
		if !strings.Contains(n.Data, target) {
			continue
		}
		if n.Parent == nil || n.Parent.Type != html.ElementNode {
			break
		}
		return goquery.NewDocumentFromNode(n.Parent).Text(), nil
	}
	return "", wordsaver.Errorf(wordsaver.EUNRESOLVED, "no text node contains %q", target)
}

// occurrenceAt returns the index of the trimmed selection's match that
// begins at the selection start, counted among non-overlapping matches.
func occurrenceAt(container, selected string, start int) int {
	trimmed := strings.TrimSpace(selected)
	if trimmed == "" || start < 0 {
		return -1
	}
	start += len(selected) - len(strings.TrimLeft(selected, " \t\n\r\v\f"))
	if start > len(container) {
		return -1
	}
	return wordsaver.CountOccurrences(container[:start], trimmed)
}

// body returns the body element, or the document root if there is none.
func body(doc *goquery.Document) *html.Node {
	if b := doc.Find("body"); b.Length() > 0 {
		return b.Get(0)
	}
	return doc.Get(0)
}

// textNodes returns the text nodes under root in document order.
func textNodes(root *html.Node) []*html.Node {
	var nodes []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			nodes = append(nodes, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	if root != nil {
		walk(root)
	}
	return nodes
}

func indexOf(nodes []*html.Node, n *html.Node) int {
	for i, node := range nodes {
		if node == n {
			return i
		}
	}
	return -1
}

// commonAncestor returns the deepest node containing both a and b.
func commonAncestor(a, b *html.Node) *html.Node {
	seen := make(map[*html.Node]bool)
	for n := a; n != nil; n = n.Parent {
		seen[n] = true
	}
	for n := b; n != nil; n = n.Parent {
		if seen[n] {
			return n
		}
	}
	return nil
}

// elementAncestor walks up from n to the nearest element node, n included.
func elementAncestor(n *html.Node) *html.Node {
	for n != nil && n.Type != html.ElementNode {
		n = n.Parent
	}
	return n
}

func indexNth(s, substr string, n int) int {
	offset := 0
	for i := 0; ; i++ {
		idx := strings.Index(s[offset:], substr)
		if idx == -1 {
			return -1
		}
		if i == n {
			return offset + idx
		}
		offset += idx + len(substr)
	}
}
