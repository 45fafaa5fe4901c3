package out_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookoutadapter "readtrack/internal/modules/book/adapter/out"
	bookservice "readtrack/internal/modules/book/service"
	bookusecase "readtrack/internal/modules/book/usecase"
	progressoutadapter "readtrack/internal/modules/progress/adapter/out"
	progressout "readtrack/internal/modules/progress/port/out"
	progressservice "readtrack/internal/modules/progress/service"
	progressusecase "readtrack/internal/modules/progress/usecase"
	readeroutadapter "readtrack/internal/modules/reader/adapter/out"
	"readtrack/internal/modules/reader/dto"
	readerin "readtrack/internal/modules/reader/port/in"
	readerservice "readtrack/internal/modules/reader/service"
	readerusecase "readtrack/internal/modules/reader/usecase"
	"readtrack/internal/platform/clock"
	"readtrack/internal/platform/logging"
)

const sampleBook = "The Art of War\nAncient treatise\nSun Tzu\nhttps://www.youtube.com/watch?v=abc123\n\n" +
	"Laying Plans chapter one\n1. Sun Tzu said\n2. The art of war\n\n" +
	"Waging War now\n1. In the operations\n"

func TestConfigCatalog(t *testing.T) {
	t.Parallel()
	c := readeroutadapter.NewConfigCatalog(map[string]string{
		"meditations": "books/meditations.txt",
		"ArtOfWar":    "books/art-of-war.txt",
		"":            "ignored.txt",
	})
	entries := c.List()
	require.Len(t, entries, 2)
	assert.Equal(t, "ArtOfWar", entries[0].Name)
	assert.Equal(t, "meditations", entries[1].Name)

	assert.Equal(t, "books/art-of-war.txt", c.Resolve("artofwar").Location)
	raw := c.Resolve("https://example.com/book.txt")
	assert.Empty(t, raw.Name)
	assert.Equal(t, "https://example.com/book.txt", raw.Location)
}

func TestFileNoteSink(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	sink := readeroutadapter.NewFileNoteSink(dir)

	path, err := sink.Write(context.Background(), "", "book-notes.txt", []byte("one\n"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "book-notes.txt"), path)

	path, err = sink.Write(context.Background(), "", "book-notes.txt", []byte("two\n"))
	require.NoError(t, err)
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "two\n", string(b))

	nested := filepath.Join(dir, "exports", "today")
	path, err = sink.Write(context.Background(), nested, "book-notes.md", []byte("x"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(nested, "book-notes.md"), path)

	_, err = sink.Write(context.Background(), "", "../escape.txt", []byte("x"))
	assert.Error(t, err)
}

func newReader(t *testing.T, kv progressout.KVStore) readerin.Usecase {
	t.Helper()
	logger := logging.NewNop()
	books := bookusecase.NewInteractor(bookservice.NewBookService(
		bookoutadapter.NewRoutingFetcher(bookoutadapter.NewFileFetcher(), bookoutadapter.NewPDFFetcher(), bookoutadapter.NewHTTPFetcher(time.Second)),
		nil,
		logger,
	))
	progress := progressusecase.NewInteractor(progressservice.NewProgressService(kv, logger))
	svc := readerservice.NewReaderService(
		readeroutadapter.NewBookLoaderAdapter(books),
		readeroutadapter.NewProgressAdapter(progress),
		readeroutadapter.NewConfigCatalog(nil),
		readeroutadapter.NewFileNoteSink(t.TempDir()),
		nil,
		clock.SystemClock{},
		"header-blocks",
		logger,
	)
	return readerusecase.NewInteractor(svc)
}

func TestReaderOverRealModules(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "art-of-war.txt")
	require.NoError(t, os.WriteFile(path, []byte(sampleBook), 0o644))
	kv := progressoutadapter.NewMemoryKVStore()

	reader := newReader(t, kv)
	session, err := reader.Select(ctx, dto.SelectInput{Book: path})
	require.NoError(t, err)
	assert.Equal(t, "art-of-war", session.BookID)
	assert.Equal(t, "abc123", session.VideoID)
	require.Len(t, session.Chapters, 2)
	assert.Equal(t, "Laying Plans chapter", session.Chapters[0].Title)

	_, err = reader.ToggleAll(ctx, dto.ChapterInput{Chapter: "Laying Plans chapter"})
	require.NoError(t, err)
	_, err = reader.SetNote(ctx, dto.NoteInput{Chapter: "Laying Plans chapter", Line: 1, Text: "calculate"})
	require.NoError(t, err)

	raw, ok, err := kv.Get(ctx, "art-of-war:Laying Plans chapter-read")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `[true,true,true]`, raw)
	raw, ok, err = kv.Get(ctx, "art-of-war-lastReadId")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `"Laying Plans chapter-2"`, raw)

	// A fresh process over the same store sees the same progress.
	again := newReader(t, kv)
	session, err = again.Select(ctx, dto.SelectInput{Book: path})
	require.NoError(t, err)
	assert.True(t, session.Chapters[0].FullyRead)
	assert.Equal(t, "Laying Plans chapter-2", session.LastRead)

	summary, err := again.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 50, summary.PercentRead)

	doc, err := again.NotesDocument(ctx, dto.NotesInput{Format: "text"})
	require.NoError(t, err)
	assert.Equal(t, "Laying Plans chapter\n\ncalculate\n\nWaging War now\n", doc)
}
