package in

import (
	"context"
	"io"

	"readtrack/internal/modules/reader/dto"
	readerin "readtrack/internal/modules/reader/port/in"
)

// CLIHandler runs one command against one book. Every call selects the
// book first since the process holds no session between commands.
type CLIHandler struct {
	usecase readerin.Usecase
}

func NewCLIHandler(usecase readerin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Books(ctx context.Context) []dto.CatalogEntryOutput {
	return h.usecase.Catalog(ctx)
}

func (h CLIHandler) Show(ctx context.Context, book string) (dto.SummaryOutput, error) {
	if _, err := h.usecase.Select(ctx, dto.SelectInput{Book: book}); err != nil {
		return dto.SummaryOutput{}, err
	}
	return h.usecase.Summary(ctx)
}

func (h CLIHandler) Chapters(ctx context.Context, book string) (dto.SessionOutput, error) {
	return h.usecase.Select(ctx, dto.SelectInput{Book: book})
}

func (h CLIHandler) ToggleLine(ctx context.Context, book, chapter string, line int) (dto.ChapterOutput, error) {
	if _, err := h.usecase.Select(ctx, dto.SelectInput{Book: book}); err != nil {
		return dto.ChapterOutput{}, err
	}
	return h.usecase.ToggleLine(ctx, dto.LineInput{Chapter: chapter, Line: line})
}

func (h CLIHandler) ToggleAll(ctx context.Context, book, chapter string) (dto.ChapterOutput, error) {
	if _, err := h.usecase.Select(ctx, dto.SelectInput{Book: book}); err != nil {
		return dto.ChapterOutput{}, err
	}
	return h.usecase.ToggleAll(ctx, dto.ChapterInput{Chapter: chapter})
}

func (h CLIHandler) SetNote(ctx context.Context, book, chapter string, line int, text string) (dto.ChapterOutput, error) {
	if _, err := h.usecase.Select(ctx, dto.SelectInput{Book: book}); err != nil {
		return dto.ChapterOutput{}, err
	}
	return h.usecase.SetNote(ctx, dto.NoteInput{Chapter: chapter, Line: line, Text: text})
}

func (h CLIHandler) LastRead(ctx context.Context, book string) (string, error) {
	session, err := h.usecase.Select(ctx, dto.SelectInput{Book: book})
	if err != nil {
		return "", err
	}
	return session.LastRead, nil
}

func (h CLIHandler) Export(ctx context.Context, book, dir, format string) (dto.ExportOutput, error) {
	if _, err := h.usecase.Select(ctx, dto.SelectInput{Book: book}); err != nil {
		return dto.ExportOutput{}, err
	}
	return h.usecase.ExportNotesFile(ctx, dto.ExportInput{Dir: dir, Format: format})
}

// ExportTo writes the plain notes export to w.
func (h CLIHandler) ExportTo(ctx context.Context, book string, w io.Writer) error {
	if _, err := h.usecase.Select(ctx, dto.SelectInput{Book: book}); err != nil {
		return err
	}
	return h.usecase.ExportNotes(ctx, w)
}

func (h CLIHandler) OpenVideo(ctx context.Context, book string) (dto.VideoOutput, error) {
	if _, err := h.usecase.Select(ctx, dto.SelectInput{Book: book}); err != nil {
		return dto.VideoOutput{}, err
	}
	return h.usecase.OpenVideo(ctx)
}
