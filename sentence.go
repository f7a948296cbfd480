package wordsaver

import "strings"

// sentenceTerminators are the characters that end a sentence. Abbreviations
// such as "Mr." are not recognised; every period is a boundary.
const sentenceTerminators = ".!?"

// ExtractContext locates the first occurrence of selectedText in fullText
// and splits the sentence around it into before, selected and after parts.
// Returns ENOTFOUND if the trimmed selection is empty or absent from fullText.
func ExtractContext(fullText, selectedText string) (*SavedTextContent, error) {
	return ExtractContextAt(fullText, selectedText, 0)
}

// ExtractContextAt is like ExtractContext but uses the zero-based
// occurrence-th non-overlapping match of selectedText. Callers holding a
// live range use it to point at the occurrence the user actually selected.
func ExtractContextAt(fullText, selectedText string, occurrence int) (*SavedTextContent, error) {
	selected := strings.TrimSpace(selectedText)
	if selected == "" {
		return nil, Errorf(ENOTFOUND, "empty selection")
	}
	if occurrence < 0 {
		return nil, Errorf(EINVALID, "negative occurrence %d", occurrence)
	}

	start := indexOccurrence(fullText, selected, occurrence)
	if start == -1 {
		return nil, Errorf(ENOTFOUND, "selection %q not found in container text", selected)
	}
	end := start + len(selected)

	sentenceStart := 0
	if p := strings.LastIndexAny(fullText[:start], sentenceTerminators); p != -1 {
		sentenceStart = p + 1
	}

	sentenceEnd := len(fullText)
	if q := strings.IndexAny(fullText[end:], sentenceTerminators); q != -1 {
		sentenceEnd = end + q + 1
	}

	return &SavedTextContent{
		Before:   strings.TrimSpace(fullText[sentenceStart:start]),
		Selected: selected,
		After:    strings.TrimSpace(fullText[end:sentenceEnd]),
	}, nil
}

// indexOccurrence returns the byte index of the n-th non-overlapping match
// of substr in s, or -1.
func indexOccurrence(s, substr string, n int) int {
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

// CountOccurrences returns the number of non-overlapping matches of the
// trimmed selection in fullText.
func CountOccurrences(fullText, selectedText string) int {
	selected := strings.TrimSpace(selectedText)
	if selected == "" {
		return 0
	}
	return strings.Count(fullText, selected)
}
