// Package pdftext extracts plain text from PDF files.
package pdftext

import (
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"pdfchat/internal/contextutil"
	"pdfchat/internal/domain"
)

// Extractor reads the text layer of PDF files page by page.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the plain text of the PDF at path as valid UTF-8, one line
// break after each page. Pages whose text cannot
// be read are skipped. A document without a text layer (a scan) yields ""
// and no error. Unreadable files return an error wrapping domain.ErrDecode.
func (e *Extractor) Extract(ctx context.Context, path string) (text string, err error) {
	logger := contextutil.LoggerFromContext(ctx)

	// The parser panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("%w: %s: %v", domain.ErrDecode, path, r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: could not read PDF %s: %v", domain.ErrDecode, path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	var sb strings.Builder
	numPages := r.NumPage()
	skipped := 0

	for i := 1; i <= numPages; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			skipped++
			continue
		}
		sb.WriteString(pageText)
		sb.WriteString("\n")
	}

	if skipped > 0 {
		logger.DebugContext(ctx, "skipped unreadable pages", "path", path, "pages", numPages, "skipped", skipped)
	}

	return cleanText(sb.String()), nil
}

// cleanText drops invalid UTF-8 sequences and trims surrounding whitespace,
// so downstream rune offsets map back onto the returned text exactly.
func cleanText(s string) string {
	return strings.TrimSpace(strings.ToValidUTF8(s, ""))
}
