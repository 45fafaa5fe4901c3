package out

import (
	"context"

	"readtrack/internal/modules/progress/dto"
	progressin "readtrack/internal/modules/progress/port/in"
	readerout "readtrack/internal/modules/reader/port/out"
)

type ProgressAdapter struct {
	progress progressin.Usecase
}

func NewProgressAdapter(progress progressin.Usecase) readerout.ProgressStore {
	return &ProgressAdapter{progress: progress}
}

func (a *ProgressAdapter) LoadRead(ctx context.Context, bookID, title string) ([]bool, bool) {
	return a.progress.LoadRead(ctx, dto.ChapterKey{BookID: bookID, Title: title})
}

func (a *ProgressAdapter) SaveRead(ctx context.Context, bookID, title string, read []bool) {
	a.progress.SaveRead(ctx, dto.ChapterKey{BookID: bookID, Title: title}, read)
}

func (a *ProgressAdapter) LoadNotes(ctx context.Context, bookID, title string) ([]string, bool) {
	return a.progress.LoadNotes(ctx, dto.ChapterKey{BookID: bookID, Title: title})
}

func (a *ProgressAdapter) SaveNotes(ctx context.Context, bookID, title string, notes []string) {
	a.progress.SaveNotes(ctx, dto.ChapterKey{BookID: bookID, Title: title}, notes)
}

func (a *ProgressAdapter) LoadLastRead(ctx context.Context, bookID string) (string, bool) {
	return a.progress.LoadLastRead(ctx, bookID)
}

func (a *ProgressAdapter) SaveLastRead(ctx context.Context, bookID, id string) {
	a.progress.SaveLastRead(ctx, bookID, id)
}

func (a *ProgressAdapter) AggregateProgress(ctx context.Context, bookID string, titles []string) int {
	return a.progress.AggregateProgress(ctx, dto.AggregateInput{BookID: bookID, Titles: titles})
}
