package out

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	bookout "readtrack/internal/modules/book/port/out"
	apperrors "readtrack/internal/platform/errors"
)

const maxBookBytes = 32 << 20

type HTTPFetcher struct {
	client *http.Client
	limit  int64
}

func NewHTTPFetcher(timeout time.Duration) bookout.TextFetcher {
	return &HTTPFetcher{client: &http.Client{Timeout: timeout}, limit: maxBookBytes}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, location string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return "", &apperrors.FetchError{Location: location, Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Accept", "text/plain")
	resp, err := f.client.Do(req)
	if err != nil {
		return "", &apperrors.FetchError{Location: location, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &apperrors.FetchError{Location: location, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, f.limit+1))
	if err != nil {
		return "", &apperrors.FetchError{Location: location, Err: fmt.Errorf("read body: %w", err)}
	}
	if int64(len(body)) > f.limit {
		return "", &apperrors.FetchError{Location: location, Err: fmt.Errorf("book too large: exceeds %d bytes", f.limit)}
	}
	return string(body), nil
}
