package in

import (
	"context"

	"readtrack/internal/modules/progress/dto"
)

// Usecase loads fail soft and saves fire-and-forget: callers never see
// storage errors.
type Usecase interface {
	LoadRead(ctx context.Context, key dto.ChapterKey) ([]bool, bool)
	SaveRead(ctx context.Context, key dto.ChapterKey, read []bool)
	LoadNotes(ctx context.Context, key dto.ChapterKey) ([]string, bool)
	SaveNotes(ctx context.Context, key dto.ChapterKey, notes []string)
	LoadLastRead(ctx context.Context, bookID string) (string, bool)
	SaveLastRead(ctx context.Context, bookID, id string)
	AggregateProgress(ctx context.Context, input dto.AggregateInput) int
}
