package usecase

import (
	"context"
	"io"

	"readtrack/internal/modules/reader/domain"
	"readtrack/internal/modules/reader/dto"
	readerin "readtrack/internal/modules/reader/port/in"
	"readtrack/internal/modules/reader/service"
)

type Interactor struct {
	svc *service.ReaderService
}

func NewInteractor(svc *service.ReaderService) readerin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Catalog(context.Context) []dto.CatalogEntryOutput {
	entries := i.svc.Catalog()
	out := make([]dto.CatalogEntryOutput, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.CatalogEntryOutput{Name: e.Name, Location: e.Location})
	}
	return out
}

func (i *Interactor) Select(ctx context.Context, input dto.SelectInput) (dto.SessionOutput, error) {
	view, err := i.svc.Select(ctx, input.Book)
	if err != nil {
		return dto.SessionOutput{}, err
	}
	return toSessionOutput(view), nil
}

func (i *Interactor) Reload(ctx context.Context) (dto.SessionOutput, error) {
	view, err := i.svc.Reload(ctx)
	if err != nil {
		return dto.SessionOutput{}, err
	}
	return toSessionOutput(view), nil
}

func (i *Interactor) Current(context.Context) (dto.SessionOutput, error) {
	view, err := i.svc.Current()
	if err != nil {
		return dto.SessionOutput{}, err
	}
	return toSessionOutput(view), nil
}

func (i *Interactor) Summary(ctx context.Context) (dto.SummaryOutput, error) {
	s, err := i.svc.Summary(ctx)
	if err != nil {
		return dto.SummaryOutput{}, err
	}
	return dto.SummaryOutput{
		BookID:        s.BookID,
		Location:      s.Location,
		Title:         s.Title,
		Description:   s.Description,
		Author:        s.Author,
		VideoID:       s.VideoID,
		EmbedURL:      s.EmbedURL,
		TotalChapters: s.TotalChapters,
		AverageLines:  s.AverageLines,
		PercentRead:   s.PercentRead,
		LastRead:      s.LastRead,
		LastReadAt:    s.LastReadAt,
	}, nil
}

func (i *Interactor) ToggleExpanded(_ context.Context, input dto.ChapterInput) (dto.ChapterOutput, error) {
	snap, err := i.svc.ToggleExpanded(input.Chapter)
	return toChapterOutput(snap), err
}

func (i *Interactor) ToggleLine(_ context.Context, input dto.LineInput) (dto.ChapterOutput, error) {
	snap, err := i.svc.ToggleLine(input.Chapter, input.Line)
	return toChapterOutput(snap), err
}

func (i *Interactor) SetNote(_ context.Context, input dto.NoteInput) (dto.ChapterOutput, error) {
	snap, err := i.svc.SetNote(input.Chapter, input.Line, input.Text)
	return toChapterOutput(snap), err
}

func (i *Interactor) ToggleAll(_ context.Context, input dto.ChapterInput) (dto.ChapterOutput, error) {
	snap, err := i.svc.ToggleAll(input.Chapter)
	return toChapterOutput(snap), err
}

func (i *Interactor) GoToLastRead(context.Context) (dto.ScrollOutput, error) {
	target, found, err := i.svc.ResolveLastRead()
	if err != nil || !found {
		return dto.ScrollOutput{Line: -1}, err
	}
	return dto.ScrollOutput{
		Found:        true,
		Chapter:      target.Chapter,
		Line:         target.Line,
		AutoExpanded: target.AutoExpanded,
	}, nil
}

func (i *Interactor) ExportNotes(ctx context.Context, w io.Writer) error {
	return i.svc.ExportNotes(ctx, w)
}

func (i *Interactor) NotesDocument(ctx context.Context, input dto.NotesInput) (string, error) {
	return i.svc.NotesDocument(ctx, domain.NoteFormat(input.Format))
}

func (i *Interactor) ExportNotesFile(ctx context.Context, input dto.ExportInput) (dto.ExportOutput, error) {
	path, err := i.svc.ExportNotesFile(ctx, input.Dir, domain.NoteFormat(input.Format))
	if err != nil {
		return dto.ExportOutput{}, err
	}
	return dto.ExportOutput{Path: path}, nil
}

func (i *Interactor) OpenVideo(ctx context.Context) (dto.VideoOutput, error) {
	url, err := i.svc.OpenVideo(ctx)
	return dto.VideoOutput{URL: url}, err
}

func (i *Interactor) Watch(ctx context.Context) (<-chan struct{}, error) {
	return i.svc.Watch(ctx)
}

func toSessionOutput(view domain.SessionView) dto.SessionOutput {
	out := dto.SessionOutput{
		BookID:        view.Book.ID,
		Location:      view.Book.Location,
		Title:         view.Book.Title,
		Description:   view.Book.Description,
		Author:        view.Book.Author,
		VideoID:       view.Book.VideoID,
		EmbedURL:      view.Book.EmbedURL,
		TotalChapters: view.Book.TotalChapters,
		AverageLines:  view.Book.AverageLines,
		Chapters:      make([]dto.ChapterOutput, 0, len(view.Chapters)),
		LastRead:      view.LastRead.ID(),
	}
	for _, ch := range view.Chapters {
		out.Chapters = append(out.Chapters, toChapterOutput(ch))
	}
	return out
}

func toChapterOutput(snap domain.ChapterSnapshot) dto.ChapterOutput {
	return dto.ChapterOutput{
		Title:     snap.Title,
		Lines:     snap.Lines,
		Read:      snap.Read,
		Notes:     snap.Notes,
		Expanded:  snap.State == domain.Expanded,
		FullyRead: snap.FullyRead,
		ReadCount: snap.ReadCount,
		NoteCount: snap.NoteCount,
		Percent:   snap.Percent,
	}
}
