// Package wordsaver captures words and phrases selected in web pages or
// imported documents together with the sentence they appear in, persists
// them for later review, and exports them with translations.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, gemini/).
package wordsaver
