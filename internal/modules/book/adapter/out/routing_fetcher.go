package out

import (
	"context"
	"path/filepath"
	"strings"

	"readtrack/internal/modules/book/domain"
	bookout "readtrack/internal/modules/book/port/out"
)

// RoutingFetcher picks a backend from the shape of the location.
type RoutingFetcher struct {
	file bookout.TextFetcher
	pdf  bookout.TextFetcher
	http bookout.TextFetcher
}

func NewRoutingFetcher(file, pdf, http bookout.TextFetcher) bookout.TextFetcher {
	return &RoutingFetcher{file: file, pdf: pdf, http: http}
}

func (f *RoutingFetcher) Fetch(ctx context.Context, location string) (string, error) {
	switch {
	case domain.IsRemote(location):
		return f.http.Fetch(ctx, location)
	case strings.EqualFold(filepath.Ext(location), ".pdf"):
		return f.pdf.Fetch(ctx, location)
	default:
		return f.file.Fetch(ctx, location)
	}
}
