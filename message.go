package wordsaver

import "encoding/json"

// Message actions exchanged between page logic and storage logic.
const (
	ActionSaveWord             = "saveWord"
	ActionContextMenuSelection = "contextMenuSelection"
)

// Message is the envelope carried between capture and storage. A saveWord
// message carries a SavedTextItem in Data; a contextMenuSelection message
// carries the menu text in Text and, optionally, the URL of the page it was
// picked on.
type Message struct {
	Action string          `json:"action"`
	Data   json.RawMessage `json:"data,omitempty"`
	Text   string          `json:"text,omitempty"`
	URL    string          `json:"url,omitempty"`
}

// NewSaveWordMessage wraps an item in a saveWord envelope.
func NewSaveWordMessage(item *SavedTextItem) (*Message, error) {
	data, err := json.Marshal(item)
	if err != nil {
		return nil, err
	}
	return &Message{Action: ActionSaveWord, Data: data}, nil
}
