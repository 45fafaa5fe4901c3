package out

import (
	"context"

	"readtrack/internal/modules/reader/domain"
)

type BookLoader interface {
	Load(ctx context.Context, location, policy string) (domain.BookView, error)
	// Watch signals when the book's source changes. A nil channel means the
	// source cannot be watched.
	Watch(ctx context.Context, location string) (<-chan struct{}, error)
}

// ProgressStore never reports storage failures: loads answer "absent" and
// saves are best effort.
type ProgressStore interface {
	LoadRead(ctx context.Context, bookID, title string) ([]bool, bool)
	SaveRead(ctx context.Context, bookID, title string, read []bool)
	LoadNotes(ctx context.Context, bookID, title string) ([]string, bool)
	SaveNotes(ctx context.Context, bookID, title string, notes []string)
	LoadLastRead(ctx context.Context, bookID string) (string, bool)
	SaveLastRead(ctx context.Context, bookID, id string)
	AggregateProgress(ctx context.Context, bookID string, titles []string) int
}

type Catalog interface {
	List() []domain.CatalogEntry
	// Resolve maps a catalog name to its entry. Anything else is taken as a
	// raw location and returned with an empty Name.
	Resolve(ref string) domain.CatalogEntry
}

type NoteSink interface {
	// Write stores content under name in dir, or in the sink's default
	// directory when dir is empty, and returns the written path.
	Write(ctx context.Context, dir, name string, content []byte) (string, error)
}

type ExternalLauncher interface {
	Open(ctx context.Context, target string) error
}
