package wordsaver

import (
	"fmt"
	"strings"
)

// FormatFullText formats content for display with the selection marked.
func FormatFullText(c SavedTextContent) string {
	return "..." + c.Before + " **" + c.Selected + "** " + c.After + "..."
}

// FormatExportLine formats one exported item. The fields are separated by
// "; ": the translated selection, the sentence with the translation
// highlighted, the sentence with the original selection highlighted, and
// the translated full text.
func FormatExportLine(item *SavedTextItem, translatedWord, translatedFull string) string {
	c := item.Content
	return fmt.Sprintf("%s; %s <b>%s</b> %s; %s <b>%s</b> %s; %s",
		translatedWord,
		c.Before, translatedWord, c.After,
		c.Before, c.Selected, c.After,
		translatedFull,
	)
}

// FormatSavedWords formats the collection for display.
// Items are separated by blank lines.
func FormatSavedWords(items []*SavedTextItem) string {
	if len(items) == 0 {
		return ""
	}

	parts := make([]string, 0, len(items))
	for _, item := range items {
		c := item.Content
		context := strings.TrimSpace(c.Before + " [" + c.Selected + "] " + c.After)
		parts = append(parts, fmt.Sprintf("%s  (%s)\n  %s\n  %s",
			c.Selected, item.ID, context, item.CapturedAt().Format("2006-01-02")))
	}

	return strings.Join(parts, "\n\n")
}
