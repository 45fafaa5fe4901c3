package out

import (
	"context"

	"readtrack/internal/modules/book/dto"
	bookin "readtrack/internal/modules/book/port/in"
	"readtrack/internal/modules/reader/domain"
	readerout "readtrack/internal/modules/reader/port/out"
)

type BookLoaderAdapter struct {
	books bookin.Usecase
}

func NewBookLoaderAdapter(books bookin.Usecase) readerout.BookLoader {
	return &BookLoaderAdapter{books: books}
}

func (a *BookLoaderAdapter) Load(ctx context.Context, location, policy string) (domain.BookView, error) {
	out, err := a.books.Load(ctx, dto.LoadInput{Location: location, Policy: policy})
	if err != nil {
		return domain.BookView{}, err
	}
	view := domain.BookView{
		ID:            out.ID,
		Location:      out.Location,
		Title:         out.Title,
		Description:   out.Description,
		Author:        out.Author,
		VideoID:       out.VideoID,
		EmbedURL:      out.EmbedURL,
		TotalChapters: out.TotalChapters,
		AverageLines:  out.AverageLines,
		Chapters:      make([]domain.ChapterText, 0, len(out.Chapters)),
	}
	for _, ch := range out.Chapters {
		view.Chapters = append(view.Chapters, domain.ChapterText{Title: ch.Title, Lines: ch.Lines})
	}
	return view, nil
}

func (a *BookLoaderAdapter) Watch(ctx context.Context, location string) (<-chan struct{}, error) {
	return a.books.Watch(ctx, dto.WatchInput{Location: location})
}
