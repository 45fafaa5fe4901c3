package out

import (
	"context"
	"fmt"
	"strings"

	"rsc.io/pdf"

	bookout "readtrack/internal/modules/book/port/out"
	apperrors "readtrack/internal/platform/errors"
)

type PDFFetcher struct{}

func NewPDFFetcher() bookout.TextFetcher {
	return &PDFFetcher{}
}

// Fetch flattens the document to text: runs on the same baseline join into
// one line and every page ends with a blank line, so each page becomes a
// block for the header+blocks policy.
func (f *PDFFetcher) Fetch(ctx context.Context, location string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &apperrors.FetchError{Location: location, Err: fmt.Errorf("malformed pdf: %v", r)}
		}
	}()
	doc, err := pdf.Open(location)
	if err != nil {
		return "", &apperrors.FetchError{Location: location, Err: fmt.Errorf("open pdf: %w", err)}
	}
	pages := make([]string, 0, doc.NumPage())
	for i := 1; i <= doc.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", &apperrors.FetchError{Location: location, Err: err}
		}
		p := doc.Page(i)
		if p.V.IsNull() {
			continue
		}
		if lines := pageLines(p.Content().Text); len(lines) > 0 {
			pages = append(pages, strings.Join(lines, "\n"))
		}
	}
	return strings.Join(pages, "\n\n"), nil
}

func pageLines(runs []pdf.Text) []string {
	var lines []string
	var current strings.Builder
	lastY := 0.0
	for i, run := range runs {
		if i > 0 && run.Y != lastY {
			if s := strings.TrimSpace(current.String()); s != "" {
				lines = append(lines, s)
			}
			current.Reset()
		}
		current.WriteString(run.S)
		lastY = run.Y
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		lines = append(lines, s)
	}
	return lines
}
