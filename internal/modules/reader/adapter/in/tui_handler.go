package in

import (
	"context"

	"readtrack/internal/modules/reader/dto"
	readerin "readtrack/internal/modules/reader/port/in"
)

type TUIHandler struct {
	usecase readerin.Usecase
}

func NewTUIHandler(usecase readerin.Usecase) TUIHandler {
	return TUIHandler{usecase: usecase}
}

func (h TUIHandler) Catalog(ctx context.Context) []dto.CatalogEntryOutput {
	return h.usecase.Catalog(ctx)
}

func (h TUIHandler) Select(ctx context.Context, book string) (dto.SessionOutput, error) {
	return h.usecase.Select(ctx, dto.SelectInput{Book: book})
}

func (h TUIHandler) Reload(ctx context.Context) (dto.SessionOutput, error) {
	return h.usecase.Reload(ctx)
}

func (h TUIHandler) Summary(ctx context.Context) (dto.SummaryOutput, error) {
	return h.usecase.Summary(ctx)
}

func (h TUIHandler) ToggleExpanded(ctx context.Context, chapter string) (dto.ChapterOutput, error) {
	return h.usecase.ToggleExpanded(ctx, dto.ChapterInput{Chapter: chapter})
}

func (h TUIHandler) ToggleLine(ctx context.Context, chapter string, line int) (dto.ChapterOutput, error) {
	return h.usecase.ToggleLine(ctx, dto.LineInput{Chapter: chapter, Line: line})
}

func (h TUIHandler) SetNote(ctx context.Context, chapter string, line int, text string) (dto.ChapterOutput, error) {
	return h.usecase.SetNote(ctx, dto.NoteInput{Chapter: chapter, Line: line, Text: text})
}

func (h TUIHandler) ToggleAll(ctx context.Context, chapter string) (dto.ChapterOutput, error) {
	return h.usecase.ToggleAll(ctx, dto.ChapterInput{Chapter: chapter})
}

func (h TUIHandler) GoToLastRead(ctx context.Context) (dto.ScrollOutput, error) {
	return h.usecase.GoToLastRead(ctx)
}

func (h TUIHandler) Watch(ctx context.Context) (<-chan struct{}, error) {
	return h.usecase.Watch(ctx)
}

func (h TUIHandler) NotesDocument(ctx context.Context, format string) (string, error) {
	return h.usecase.NotesDocument(ctx, dto.NotesInput{Format: format})
}

func (h TUIHandler) ExportNotes(ctx context.Context, format string) (dto.ExportOutput, error) {
	return h.usecase.ExportNotesFile(ctx, dto.ExportInput{Format: format})
}

func (h TUIHandler) OpenVideo(ctx context.Context) (dto.VideoOutput, error) {
	return h.usecase.OpenVideo(ctx)
}
