package out

import "context"

type TextFetcher interface {
	Fetch(ctx context.Context, location string) (string, error)
}

// ChangeWatcher signals on the returned channel whenever the file at path
// is rewritten. The channel is closed when ctx ends.
type ChangeWatcher interface {
	Watch(ctx context.Context, path string) (<-chan struct{}, error)
}
