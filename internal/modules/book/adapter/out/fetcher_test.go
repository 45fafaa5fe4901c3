package out_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookoutadapter "readtrack/internal/modules/book/adapter/out"
	apperrors "readtrack/internal/platform/errors"
)

func TestFileFetcher(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "book.txt")
	require.NoError(t, os.WriteFile(path, []byte("T\nD\nA"), 0o644))

	text, err := bookoutadapter.NewFileFetcher().Fetch(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "T\nD\nA", text)

	_, err = bookoutadapter.NewFileFetcher().Fetch(context.Background(), filepath.Join(t.TempDir(), "missing.txt"))
	var fetchErr *apperrors.FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestHTTPFetcher(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing.txt" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("Title\nDesc\nAuthor"))
	}))
	defer srv.Close()

	f := bookoutadapter.NewHTTPFetcher(5 * time.Second)
	text, err := f.Fetch(context.Background(), srv.URL+"/book.txt")
	require.NoError(t, err)
	assert.Equal(t, "Title\nDesc\nAuthor", text)

	_, err = f.Fetch(context.Background(), srv.URL+"/missing.txt")
	var fetchErr *apperrors.FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Contains(t, err.Error(), "404")
}

func TestHTTPFetcherRejectsOversizedBook(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("x", 17)))
	}))
	defer srv.Close()

	text, err := bookoutadapter.NewHTTPFetcherWithLimit(5*time.Second, 17).Fetch(context.Background(), srv.URL+"/exact.txt")
	require.NoError(t, err)
	assert.Len(t, text, 17)

	text, err = bookoutadapter.NewHTTPFetcherWithLimit(5*time.Second, 16).Fetch(context.Background(), srv.URL+"/big.txt")
	var fetchErr *apperrors.FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Contains(t, err.Error(), "too large")
	assert.Empty(t, text)
}

type recordingFetcher struct {
	name  string
	calls *[]string
}

func (f recordingFetcher) Fetch(_ context.Context, location string) (string, error) {
	*f.calls = append(*f.calls, f.name+":"+location)
	return f.name, nil
}

func TestRoutingFetcher(t *testing.T) {
	t.Parallel()
	var calls []string
	f := bookoutadapter.NewRoutingFetcher(
		recordingFetcher{name: "file", calls: &calls},
		recordingFetcher{name: "pdf", calls: &calls},
		recordingFetcher{name: "http", calls: &calls},
	)
	for _, loc := range []string{"books/a.txt", "books/b.PDF", "https://example.com/c.txt"} {
		_, err := f.Fetch(context.Background(), loc)
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"file:books/a.txt", "pdf:books/b.PDF", "http:https://example.com/c.txt"}, calls)
}

func TestPDFFetcherRejectsNonPDF(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "fake.pdf")
	require.NoError(t, os.WriteFile(path, []byte("not a pdf"), 0o644))
	_, err := bookoutadapter.NewPDFFetcher().Fetch(context.Background(), path)
	var fetchErr *apperrors.FetchError
	require.True(t, errors.As(err, &fetchErr))
}
