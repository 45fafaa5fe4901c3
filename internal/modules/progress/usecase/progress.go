package usecase

import (
	"context"

	"readtrack/internal/modules/progress/dto"
	progressin "readtrack/internal/modules/progress/port/in"
	"readtrack/internal/modules/progress/service"
)

type Interactor struct {
	svc *service.ProgressService
}

func NewInteractor(svc *service.ProgressService) progressin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) LoadRead(ctx context.Context, key dto.ChapterKey) ([]bool, bool) {
	return i.svc.LoadRead(ctx, key.BookID, key.Title)
}

func (i *Interactor) SaveRead(ctx context.Context, key dto.ChapterKey, read []bool) {
	i.svc.SaveRead(ctx, key.BookID, key.Title, read)
}

func (i *Interactor) LoadNotes(ctx context.Context, key dto.ChapterKey) ([]string, bool) {
	return i.svc.LoadNotes(ctx, key.BookID, key.Title)
}

func (i *Interactor) SaveNotes(ctx context.Context, key dto.ChapterKey, notes []string) {
	i.svc.SaveNotes(ctx, key.BookID, key.Title, notes)
}

func (i *Interactor) LoadLastRead(ctx context.Context, bookID string) (string, bool) {
	return i.svc.LoadLastRead(ctx, bookID)
}

func (i *Interactor) SaveLastRead(ctx context.Context, bookID, id string) {
	i.svc.SaveLastRead(ctx, bookID, id)
}

func (i *Interactor) AggregateProgress(ctx context.Context, input dto.AggregateInput) int {
	return i.svc.AggregateProgress(ctx, input.BookID, input.Titles)
}
