package out

import (
	"net/http"
	"time"
)

func NewHTTPFetcherWithLimit(timeout time.Duration, limit int64) *HTTPFetcher {
	return &HTTPFetcher{client: &http.Client{Timeout: timeout}, limit: limit}
}
