// Package gemini implements wordsaver.Translator using Google Gemini.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/wordsaver"
	"google.golang.org/genai"
)

const model = "gemini-2.5-flash"

// Default languages of the translator the browser extension shipped with.
const (
	DefaultSourceLanguage = "en"
	DefaultTargetLanguage = "pt-BR"
)

// Ensure Translator implements wordsaver.Translator at compile time.
var _ wordsaver.Translator = (*Translator)(nil)

// Translator implements wordsaver.Translator using Google Gemini.
type Translator struct {
	client *genai.Client
	source string
	target string
}

// NewTranslator creates a Translator from source to target language.
// Empty languages use the defaults.
func NewTranslator(client *genai.Client, source, target string) *Translator {
	if source == "" {
		source = DefaultSourceLanguage
	}
	if target == "" {
		target = DefaultTargetLanguage
	}
	return &Translator{client: client, source: source, target: target}
}

// Translate returns the translation of text.
func (t *Translator) Translate(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", wordsaver.Errorf(wordsaver.EINVALID, "text required")
	}

	result, err := t.client.Models.GenerateContent(ctx, model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: BuildUserPrompt(text)}},
		}},
		BuildConfig(t.source, t.target),
	)
	if err != nil {
		return "", wordsaver.Errorf(wordsaver.EUNAVAILABLE, "gemini: %v", err)
	}
	if result == nil {
		return "", wordsaver.Errorf(wordsaver.EINTERNAL, "gemini returned nil result")
	}

	translated := strings.TrimSpace(result.Text())
	if translated == "" {
		return "", wordsaver.Errorf(wordsaver.EINTERNAL, "gemini returned empty translation")
	}
	return translated, nil
}

// BuildConfig returns the GenerateContentConfig for translation calls.
func BuildConfig(source, target string) *genai.GenerateContentConfig {
	temp := float32(0.2)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: fmt.Sprintf("You are a translator. Translate the text inside <text> from %s to %s. "+
					"Reply with the translation only. Keep ** markers, ellipses and punctuation where they are.",
					source, target),
			}},
		},
		Temperature: &temp,
	}
}

// BuildUserPrompt wraps the text to translate.
func BuildUserPrompt(text string) string {
	return "<text>" + text + "</text>"
}
