package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"math"

	"readtrack/internal/modules/progress/domain"
	progressout "readtrack/internal/modules/progress/port/out"
	"readtrack/internal/platform/logging"
)

// ProgressService is the JSON layer over a KVStore. The store is treated as
// user-editable: anything that fails to decode counts as absent.
type ProgressService struct {
	kv     progressout.KVStore
	logger *slog.Logger
}

func NewProgressService(kv progressout.KVStore, logger *slog.Logger) *ProgressService {
	return &ProgressService{kv: kv, logger: logging.Component(logger, "progress")}
}

func (s *ProgressService) LoadRead(ctx context.Context, bookID, title string) ([]bool, bool) {
	return load[[]bool](ctx, s, domain.KeySpace{BookID: bookID}.ReadKey(title))
}

func (s *ProgressService) SaveRead(ctx context.Context, bookID, title string, read []bool) {
	save(ctx, s, domain.KeySpace{BookID: bookID}.ReadKey(title), read)
}

func (s *ProgressService) LoadNotes(ctx context.Context, bookID, title string) ([]string, bool) {
	return load[[]string](ctx, s, domain.KeySpace{BookID: bookID}.NotesKey(title))
}

func (s *ProgressService) SaveNotes(ctx context.Context, bookID, title string, notes []string) {
	save(ctx, s, domain.KeySpace{BookID: bookID}.NotesKey(title), notes)
}

func (s *ProgressService) LoadLastRead(ctx context.Context, bookID string) (string, bool) {
	return load[string](ctx, s, domain.KeySpace{BookID: bookID}.LastReadKey())
}

func (s *ProgressService) SaveLastRead(ctx context.Context, bookID, id string) {
	save(ctx, s, domain.KeySpace{BookID: bookID}.LastReadKey(), id)
}

// AggregateProgress re-reads every chapter's persisted read flags and
// returns the rounded share of fully read chapters. The store is the
// source of truth, not any in-memory view state.
func (s *ProgressService) AggregateProgress(ctx context.Context, bookID string, titles []string) int {
	if len(titles) == 0 {
		return 0
	}
	done := 0
	for _, title := range titles {
		if read, ok := s.LoadRead(ctx, bookID, title); ok && domain.FullyRead(read) {
			done++
		}
	}
	return int(math.Round(float64(done) / float64(len(titles)) * 100))
}

func load[T any](ctx context.Context, s *ProgressService, key string) (T, bool) {
	var zero T
	raw, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		s.logger.Warn("load progress failed", "key", key, "error", err)
		return zero, false
	}
	if !ok || raw == "" {
		return zero, false
	}
	var value T
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		s.logger.Warn("discarding undecodable progress", "key", key, "error", err)
		return zero, false
	}
	return value, true
}

func save(ctx context.Context, s *ProgressService, key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		s.logger.Error("encode progress failed", "key", key, "error", err)
		return
	}
	if err := s.kv.Set(ctx, key, string(raw)); err != nil {
		s.logger.Error("save progress failed", "key", key, "error", err)
		return
	}
	s.logger.Debug("progress saved", "key", key)
}
