// Package pdfcpu extracts per-page text from PDF documents using pdfcpu.
package pdfcpu

import (
	"bytes"
	"context"
	"io"
	"regexp"
	"strings"
	"unicode"

	"github.com/fwojciec/wordsaver"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Compile-time interface verification.
var _ wordsaver.PageExtractor = (*PageExtractor)(nil)

// PageExtractor implements wordsaver.PageExtractor for PDF files.
type PageExtractor struct {
	conf *model.Configuration
}

// NewPageExtractor creates a PageExtractor with pdfcpu's default configuration.
func NewPageExtractor() *PageExtractor {
	return &PageExtractor{conf: model.NewDefaultConfiguration()}
}

// ExtractPages reads a PDF and returns the text of each page. Pages whose
// content stream cannot be read are listed in Skipped. Returns EINVALID if
// the file is not a readable PDF or no page could be extracted.
func (e *PageExtractor) ExtractPages(ctx context.Context, r io.ReadSeeker) (*wordsaver.ExtractResult, error) {
	pdf, err := api.ReadValidateAndOptimize(r, e.conf)
	if err != nil {
		return nil, wordsaver.Errorf(wordsaver.EINVALID, "read PDF: %v", err)
	}

	result := &wordsaver.ExtractResult{}
	for pageNr := 1; pageNr <= pdf.PageCount; pageNr++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		text, err := pageText(pdf, pageNr)
		if err != nil {
			result.Skipped = append(result.Skipped, pageNr)
			continue
		}
		result.Pages = append(result.Pages, wordsaver.PageRecord{Page: pageNr, Text: text})
	}

	if len(result.Pages) == 0 {
		return nil, wordsaver.Errorf(wordsaver.EINVALID, "no page of %d could be extracted", pdf.PageCount)
	}

	return result, nil
}

// pageText extracts the text shown by a page's content stream.
func pageText(pdf *model.Context, pageNr int) (string, error) {
	r, err := pdfcpu.ExtractPageContent(pdf, pageNr)
	if err != nil {
		return "", err
	}
	if r == nil {
		return "", nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return streamText(data), nil
}

// stringLiteral matches PDF string literals: (text here).
var stringLiteral = regexp.MustCompile(`\((?:[^)\\]|\\.)*\)`)

// streamText collects the strings shown by text operators. Positioning
// operators become whitespace so words on separate lines stay apart.
func streamText(data []byte) string {
	var sb strings.Builder

	for _, line := range bytes.Split(data, []byte{'\n'}) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}

		switch {
		case bytes.HasSuffix(line, []byte("Tj")), bytes.HasSuffix(line, []byte("TJ")):
			writeLiterals(&sb, line)
		case bytes.HasSuffix(line, []byte("'")), bytes.HasSuffix(line, []byte(`"`)):
			sb.WriteByte('\n')
			writeLiterals(&sb, line)
		case bytes.HasSuffix(line, []byte("Td")), bytes.HasSuffix(line, []byte("TD")):
			sb.WriteByte(' ')
		case bytes.Equal(line, []byte("T*")):
			sb.WriteByte('\n')
		}
	}

	return normalizeSpace(sb.String())
}

func writeLiterals(sb *strings.Builder, line []byte) {
	for _, m := range stringLiteral.FindAll(line, -1) {
		sb.WriteString(unescape(m[1 : len(m)-1]))
	}
}

// unescape decodes the backslash escapes of a PDF string literal.
func unescape(raw []byte) string {
	var sb strings.Builder
	for i := 0; i < len(raw); i++ {
		if raw[i] != '\\' || i+1 == len(raw) {
			sb.WriteByte(raw[i])
			continue
		}
		i++
		switch c := raw[i]; c {
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case 'b', 'f':
			// Backspace and form feed carry no text.
		case '0', '1', '2', '3', '4', '5', '6', '7':
			val := int(c - '0')
			for n := 0; n < 2 && i+1 < len(raw) && raw[i+1] >= '0' && raw[i+1] <= '7'; n++ {
				i++
				val = val*8 + int(raw[i]-'0')
			}
			sb.WriteByte(byte(val))
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

// normalizeSpace collapses whitespace runs to one space and drops
// non-printable runes.
func normalizeSpace(text string) string {
	var sb strings.Builder
	prevSpace := false
	for _, r := range text {
		switch {
		case unicode.IsSpace(r):
			if !prevSpace && sb.Len() > 0 {
				sb.WriteByte(' ')
				prevSpace = true
			}
		case unicode.IsPrint(r):
			sb.WriteRune(r)
			prevSpace = false
		}
	}
	return strings.TrimSpace(sb.String())
}
