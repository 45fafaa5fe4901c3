package service

import (
	"context"
	"fmt"

	"readtrack/internal/modules/reader/domain"
	readerout "readtrack/internal/modules/reader/port/out"
	apperrors "readtrack/internal/platform/errors"
)

// ChapterTracker owns the read flags, notes and expansion state of one
// chapter. Read and note state persist through change hooks on their
// containers. It is not safe for concurrent use; ReaderService serializes
// access.
type ChapterTracker struct {
	bookID string
	title  string
	lines  []string
	state  domain.ExpandState

	read  *domain.Observed[[]bool]
	notes *domain.Observed[[]string]

	readCount  int
	fullyRead  bool
	onLastRead func(domain.LastRead)
}

// NewChapterTracker loads persisted state for the chapter. Absent state
// starts unread with empty notes and is not written back until the first
// mutation.
func NewChapterTracker(
	ctx context.Context,
	store readerout.ProgressStore,
	bookID string,
	chapter domain.ChapterText,
	onLastRead func(domain.LastRead),
) *ChapterTracker {
	n := len(chapter.Lines)
	read, _ := store.LoadRead(ctx, bookID, chapter.Title)
	notes, _ := store.LoadNotes(ctx, bookID, chapter.Title)

	t := &ChapterTracker{
		bookID:     bookID,
		title:      chapter.Title,
		lines:      append([]string(nil), chapter.Lines...),
		state:      domain.Collapsed,
		read:       domain.NewObserved(domain.ResizeRead(read, n)),
		notes:      domain.NewObserved(domain.ResizeNotes(notes, n)),
		onLastRead: onLastRead,
	}
	t.recount(t.read.Get())

	// Saves outlive the selection request that created the tracker.
	persistCtx := context.WithoutCancel(ctx)
	t.read.OnChange(t.recount)
	t.read.OnChange(func(read []bool) {
		store.SaveRead(persistCtx, bookID, chapter.Title, read)
	})
	t.notes.OnChange(func(notes []string) {
		store.SaveNotes(persistCtx, bookID, chapter.Title, notes)
	})
	return t
}

func (t *ChapterTracker) Title() string { return t.title }

func (t *ChapterTracker) Len() int { return len(t.lines) }

func (t *ChapterTracker) Expanded() bool { return t.state == domain.Expanded }

func (t *ChapterTracker) ToggleExpanded() {
	if t.state == domain.Expanded {
		t.state = domain.Collapsed
		return
	}
	t.state = domain.Expanded
}

func (t *ChapterTracker) Expand() {
	t.state = domain.Expanded
}

// ToggleLine flips line i and moves the last-read pointer to it.
func (t *ChapterTracker) ToggleLine(i int) error {
	if err := t.checkLine(i); err != nil {
		return err
	}
	t.recordLastRead(i)
	next := append([]bool(nil), t.read.Get()...)
	next[i] = !next[i]
	t.read.Set(next)
	return nil
}

// SetNote replaces the note of line i. Only read lines accept notes.
func (t *ChapterTracker) SetNote(i int, text string) error {
	if err := t.checkLine(i); err != nil {
		return err
	}
	if !t.read.Get()[i] {
		return fmt.Errorf("%s line %d: %w", t.title, i, apperrors.ErrNoteRequiresRead)
	}
	next := append([]string(nil), t.notes.Get()...)
	next[i] = text
	t.notes.Set(next)
	return nil
}

// ToggleAll marks every line read, or unread when the chapter is already
// fully read, points last-read at the final line and expands the chapter.
func (t *ChapterTracker) ToggleAll() {
	mark := !t.fullyRead
	next := make([]bool, len(t.lines))
	for i := range next {
		next[i] = mark
	}
	t.recordLastRead(len(t.lines) - 1)
	t.read.Set(next)
	t.Expand()
}

func (t *ChapterTracker) FullyRead() bool { return t.fullyRead }

func (t *ChapterTracker) ReadCount() int { return t.readCount }

func (t *ChapterTracker) NoteCount() int { return domain.CountNotes(t.notes.Get()) }

func (t *ChapterTracker) Percent() int { return domain.Percent(t.readCount, len(t.lines)) }

func (t *ChapterTracker) Snapshot() domain.ChapterSnapshot {
	return domain.ChapterSnapshot{
		Title:     t.title,
		Lines:     append([]string(nil), t.lines...),
		Read:      append([]bool(nil), t.read.Get()...),
		Notes:     append([]string(nil), t.notes.Get()...),
		State:     t.state,
		FullyRead: t.fullyRead,
		ReadCount: t.readCount,
		NoteCount: t.NoteCount(),
		Percent:   t.Percent(),
	}
}

// OnReadChange registers a hook that runs after the read flags change and
// have been persisted.
func (t *ChapterTracker) OnReadChange(hook func([]bool)) {
	t.read.OnChange(hook)
}

func (t *ChapterTracker) OnNotesChange(hook func([]string)) {
	t.notes.OnChange(hook)
}

func (t *ChapterTracker) recount(read []bool) {
	t.readCount = domain.CountRead(read)
	t.fullyRead = domain.AllRead(read)
}

func (t *ChapterTracker) recordLastRead(line int) {
	if t.onLastRead != nil {
		t.onLastRead(domain.LastRead{Chapter: t.title, Line: line})
	}
}

func (t *ChapterTracker) checkLine(i int) error {
	if i < 0 || i >= len(t.lines) {
		return fmt.Errorf("%s line %d of %d: %w", t.title, i, len(t.lines), apperrors.ErrLineOutOfRange)
	}
	return nil
}
