package out

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"

	progressout "readtrack/internal/modules/progress/port/out"
)

const lockRetry = 20 * time.Millisecond

var errCorruptFile = errors.New("progress file is not a JSON object")

// JSONFileKVStore keeps every key in one JSON object on disk, the way a
// browser keeps localStorage. A sidecar lock file serialises the TUI and
// concurrent CLI invocations.
type JSONFileKVStore struct {
	mu   sync.Mutex
	path string
	lock *flock.Flock
}

func NewJSONFileKVStore(path string) (progressout.KVStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create progress dir: %w", err)
	}
	return &JSONFileKVStore{path: path, lock: flock.New(path + ".lock")}, nil
}

func (s *JSONFileKVStore) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.lock.TryRLockContext(ctx, lockRetry); err != nil {
		return "", false, fmt.Errorf("lock progress file: %w", err)
	}
	defer s.lock.Unlock()
	values, err := s.read()
	if errors.Is(err, errCorruptFile) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	v, ok := values[key]
	return v, ok, nil
}

func (s *JSONFileKVStore) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.lock.TryLockContext(ctx, lockRetry); err != nil {
		return fmt.Errorf("lock progress file: %w", err)
	}
	defer s.lock.Unlock()
	values, err := s.read()
	if errors.Is(err, errCorruptFile) {
		values, err = map[string]string{}, s.quarantine()
	}
	if err != nil {
		return err
	}
	values[key] = value
	payload, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal progress: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return fmt.Errorf("write progress: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace progress: %w", err)
	}
	return nil
}

func (s *JSONFileKVStore) read() (map[string]string, error) {
	values := map[string]string{}
	payload, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return values, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read progress: %w", err)
	}
	if len(payload) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(payload, &values); err != nil {
		return nil, fmt.Errorf("%w: %v", errCorruptFile, err)
	}
	return values, nil
}

// quarantine moves an undecodable file aside; the next write starts a
// fresh object.
func (s *JSONFileKVStore) quarantine() error {
	aside := s.path + ".corrupt-" + time.Now().UTC().Format("20060102T150405.000000000")
	if err := os.Rename(s.path, aside); err != nil {
		return fmt.Errorf("move corrupt progress file: %w", err)
	}
	return nil
}
