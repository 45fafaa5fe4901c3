package usecase

import (
	"context"

	"readtrack/internal/modules/book/domain"
	"readtrack/internal/modules/book/dto"
	bookin "readtrack/internal/modules/book/port/in"
	"readtrack/internal/modules/book/service"
)

type Interactor struct {
	svc *service.BookService
}

func NewInteractor(svc *service.BookService) bookin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Load(ctx context.Context, input dto.LoadInput) (dto.BookOutput, error) {
	book, err := i.svc.Load(ctx, input.Location, domain.Policy(input.Policy))
	if err != nil {
		return dto.BookOutput{}, err
	}
	stats := domain.ComputeStats(book.Chapters)
	chapters := make([]dto.ChapterOutput, 0, book.Chapters.Len())
	for _, ch := range book.Chapters.List() {
		chapters = append(chapters, dto.ChapterOutput{Title: ch.Title, Lines: ch.Lines})
	}
	return dto.BookOutput{
		ID:            book.ID,
		Location:      book.Location,
		Title:         book.Meta.Title,
		Description:   book.Meta.Description,
		Author:        book.Meta.Author,
		VideoID:       book.Meta.VideoID,
		EmbedURL:      domain.EmbedURL(book.Meta.VideoID),
		Chapters:      chapters,
		TotalChapters: stats.TotalChapters,
		AverageLines:  stats.AverageLines,
	}, nil
}

func (i *Interactor) Watch(ctx context.Context, input dto.WatchInput) (<-chan struct{}, error) {
	return i.svc.Watch(ctx, input.Location)
}
