package out_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	bookoutadapter "readtrack/internal/modules/book/adapter/out"
	"readtrack/internal/platform/logging"
)

func TestFSNotifyWatcherSignalsOnWrite(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "book.txt")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	changes, err := bookoutadapter.NewFSNotifyWatcher(20*time.Millisecond, logging.NewNop()).Watch(ctx, path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(path, []byte("v2"), 0o644))

	select {
	case <-changes:
	case <-time.After(5 * time.Second):
		t.Fatalf("expected change notification")
	}

	cancel()
	select {
	case _, ok := <-changes:
		for ok {
			_, ok = <-changes
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("channel should close after cancel")
	}
}
