package in

import (
	"context"
	"io"

	"readtrack/internal/modules/reader/dto"
)

type Usecase interface {
	Catalog(ctx context.Context) []dto.CatalogEntryOutput
	Select(ctx context.Context, input dto.SelectInput) (dto.SessionOutput, error)
	Reload(ctx context.Context) (dto.SessionOutput, error)
	Current(ctx context.Context) (dto.SessionOutput, error)
	Summary(ctx context.Context) (dto.SummaryOutput, error)
	ToggleExpanded(ctx context.Context, input dto.ChapterInput) (dto.ChapterOutput, error)
	ToggleLine(ctx context.Context, input dto.LineInput) (dto.ChapterOutput, error)
	SetNote(ctx context.Context, input dto.NoteInput) (dto.ChapterOutput, error)
	ToggleAll(ctx context.Context, input dto.ChapterInput) (dto.ChapterOutput, error)
	GoToLastRead(ctx context.Context) (dto.ScrollOutput, error)
	ExportNotes(ctx context.Context, w io.Writer) error
	NotesDocument(ctx context.Context, input dto.NotesInput) (string, error)
	ExportNotesFile(ctx context.Context, input dto.ExportInput) (dto.ExportOutput, error)
	OpenVideo(ctx context.Context) (dto.VideoOutput, error)
	Watch(ctx context.Context) (<-chan struct{}, error)
}
