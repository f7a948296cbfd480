// Package gocache caches translations in memory with patrickmn/go-cache.
package gocache

import (
	"context"
	"time"

	"github.com/fwojciec/wordsaver"
	"github.com/patrickmn/go-cache"
)

// Compile-time interface verification.
var _ wordsaver.Translator = (*Translator)(nil)

// Default expiry settings for cached translations.
const (
	DefaultExpiration      = 24 * time.Hour
	DefaultCleanupInterval = time.Hour
)

// Translator wraps a wordsaver.Translator and remembers successful results.
// Errors are not cached.
type Translator struct {
	next  wordsaver.Translator
	cache *cache.Cache
}

// Option configures a Translator.
type Option func(*Translator)

// WithExpiration sets how long a translation stays cached.
func WithExpiration(expiration, cleanupInterval time.Duration) Option {
	return func(t *Translator) {
		t.cache = cache.New(expiration, cleanupInterval)
	}
}

// NewTranslator returns a caching decorator around next.
func NewTranslator(next wordsaver.Translator, opts ...Option) *Translator {
	t := &Translator{
		next:  next,
		cache: cache.New(DefaultExpiration, DefaultCleanupInterval),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Translate returns the cached translation of text, calling the wrapped
// translator on a miss.
func (t *Translator) Translate(ctx context.Context, text string) (string, error) {
	if v, found := t.cache.Get(text); found {
		if s, ok := v.(string); ok {
			return s, nil
		}
	}

	translated, err := t.next.Translate(ctx, text)
	if err != nil {
		return "", err
	}
	t.cache.SetDefault(text, translated)
	return translated, nil
}

// Len returns the number of cached translations.
func (t *Translator) Len() int {
	return t.cache.ItemCount()
}
