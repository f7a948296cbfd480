package wordsaver

import "context"

// LiveSelection is the user's active selection on a page.
type LiveSelection struct {
	// Text is the selected text as the page reports it.
	Text string

	// ContainerText is the full text content of the nearest element
	// enclosing the selection's common ancestor.
	ContainerText string

	// Occurrence is the zero-based index of the selected occurrence of Text
	// within ContainerText, or -1 when the page cannot tell.
	Occurrence int
}

// SelectionReader gives access to the text of a page the user is viewing.
type SelectionReader interface {
	// ActiveSelection returns the current selection, or nil when nothing
	// is selected.
	ActiveSelection(ctx context.Context) (*LiveSelection, error)

	// FindTextContainer scans text nodes in document order and returns the
	// text of the parent element of the first node containing target.
	// Returns EUNRESOLVED if no text node contains target.
	FindTextContainer(ctx context.Context, target string) (string, error)
}
