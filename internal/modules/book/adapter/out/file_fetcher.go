package out

import (
	"context"
	"fmt"
	"os"

	bookout "readtrack/internal/modules/book/port/out"
	apperrors "readtrack/internal/platform/errors"
)

type FileFetcher struct{}

func NewFileFetcher() bookout.TextFetcher {
	return &FileFetcher{}
}

func (f *FileFetcher) Fetch(_ context.Context, location string) (string, error) {
	b, err := os.ReadFile(location)
	if err != nil {
		return "", &apperrors.FetchError{Location: location, Err: fmt.Errorf("read file: %w", err)}
	}
	return string(b), nil
}
