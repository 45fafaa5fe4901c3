package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"readtrack/internal/modules/reader/domain"
	readerout "readtrack/internal/modules/reader/port/out"
	"readtrack/internal/platform/clock"
	apperrors "readtrack/internal/platform/errors"
	"readtrack/internal/platform/logging"
	"readtrack/internal/platform/markdown"
)

type ReaderService struct {
	books    readerout.BookLoader
	progress readerout.ProgressStore
	catalog  readerout.Catalog
	sink     readerout.NoteSink
	launcher readerout.ExternalLauncher
	clock    clock.Clock
	policy   string
	logger   *slog.Logger

	mu         sync.Mutex
	generation uint64
	requested  string
	session    *session
}

type session struct {
	book     domain.BookView
	trackers []*ChapterTracker
	byTitle  map[string]*ChapterTracker
	lastRead *domain.Observed[domain.LastRead]
}

func NewReaderService(
	books readerout.BookLoader,
	progress readerout.ProgressStore,
	catalog readerout.Catalog,
	sink readerout.NoteSink,
	launcher readerout.ExternalLauncher,
	clk clock.Clock,
	policy string,
	logger *slog.Logger,
) *ReaderService {
	if clk == nil {
		clk = clock.SystemClock{}
	}
	return &ReaderService{
		books:    books,
		progress: progress,
		catalog:  catalog,
		sink:     sink,
		launcher: launcher,
		clock:    clk,
		policy:   policy,
		logger:   logging.Component(logger, "reader"),
	}
}

func (s *ReaderService) Catalog() []domain.CatalogEntry {
	if s.catalog == nil {
		return nil
	}
	return s.catalog.List()
}

// Select loads a book by catalog name or location and replaces the current
// session. When a newer Select starts before this one finishes, this
// result is dropped and ErrStaleSelection returned.
func (s *ReaderService) Select(ctx context.Context, ref string) (domain.SessionView, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return domain.SessionView{}, fmt.Errorf("%w: book is required", apperrors.ErrInvalidInput)
	}
	location := ref
	if s.catalog != nil {
		location = s.catalog.Resolve(ref).Location
	}

	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.requested = location
	s.mu.Unlock()

	book, err := s.books.Load(ctx, location, s.policy)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		s.logger.Debug("discarding superseded book load", "location", location)
		return domain.SessionView{}, apperrors.ErrStaleSelection
	}
	if err != nil {
		s.session = nil
		return domain.SessionView{}, fmt.Errorf("select %s: %w", ref, err)
	}
	s.session = s.newSession(ctx, book)
	s.logger.Info("book selected", "book", book.ID, "chapters", len(book.Chapters))
	return s.session.view(), nil
}

// Reload repeats the most recent selection, whether or not it succeeded.
func (s *ReaderService) Reload(ctx context.Context) (domain.SessionView, error) {
	s.mu.Lock()
	location := s.requested
	s.mu.Unlock()
	if location == "" {
		return domain.SessionView{}, apperrors.ErrNoBookSelected
	}
	return s.Select(ctx, location)
}

func (s *ReaderService) Current() (domain.SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return domain.SessionView{}, apperrors.ErrNoBookSelected
	}
	return s.session.view(), nil
}

// Summary reports book metadata and completion. Completion is read back
// from the store and stays 0 until something has been marked read.
func (s *ReaderService) Summary(ctx context.Context) (domain.Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return domain.Summary{}, apperrors.ErrNoBookSelected
	}
	book := s.session.book
	last := s.session.lastRead.Get()
	percent := 0
	if !last.IsZero() {
		percent = s.progress.AggregateProgress(ctx, book.ID, s.session.titles())
	}
	return domain.Summary{
		BookID:        book.ID,
		Location:      book.Location,
		Title:         book.Title,
		Description:   book.Description,
		Author:        book.Author,
		VideoID:       book.VideoID,
		EmbedURL:      book.EmbedURL,
		TotalChapters: book.TotalChapters,
		AverageLines:  book.AverageLines,
		PercentRead:   percent,
		LastRead:      last.ID(),
		LastReadAt:    last.At,
	}, nil
}

func (s *ReaderService) ToggleExpanded(title string) (domain.ChapterSnapshot, error) {
	return s.withTracker(title, func(t *ChapterTracker) error {
		t.ToggleExpanded()
		return nil
	})
}

func (s *ReaderService) ToggleLine(title string, line int) (domain.ChapterSnapshot, error) {
	return s.withTracker(title, func(t *ChapterTracker) error {
		return t.ToggleLine(line)
	})
}

func (s *ReaderService) SetNote(title string, line int, text string) (domain.ChapterSnapshot, error) {
	return s.withTracker(title, func(t *ChapterTracker) error {
		return t.SetNote(line, text)
	})
}

func (s *ReaderService) ToggleAll(title string) (domain.ChapterSnapshot, error) {
	return s.withTracker(title, func(t *ChapterTracker) error {
		t.ToggleAll()
		return nil
	})
}

// ResolveLastRead finds where the view should scroll. A line inside a
// collapsed chapter expands that chapter and targets its heading. The
// boolean is false when there is nothing to scroll to.
func (s *ReaderService) ResolveLastRead() (domain.ScrollTarget, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return domain.ScrollTarget{}, false, apperrors.ErrNoBookSelected
	}
	last := s.session.lastRead.Get()
	if last.IsZero() {
		return domain.ScrollTarget{}, false, nil
	}
	t, ok := s.session.byTitle[last.Chapter]
	if !ok {
		s.logger.Debug("last read points at unknown chapter", "id", last.ID())
		return domain.ScrollTarget{}, false, nil
	}
	if last.Line < 0 || last.Line >= t.Len() {
		return domain.ScrollTarget{Chapter: t.Title(), Line: -1}, true, nil
	}
	if t.Expanded() {
		return domain.ScrollTarget{Chapter: t.Title(), Line: last.Line}, true, nil
	}
	t.Expand()
	return domain.ScrollTarget{Chapter: t.Title(), Line: -1, AutoExpanded: true}, true, nil
}

// ExportNotes writes every chapter title in book order, each followed by
// its stored notes one per line. Chapters without stored notes contribute
// only their title.
func (s *ReaderService) ExportNotes(ctx context.Context, w io.Writer) error {
	_, chapters, err := s.collectNotes(ctx)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, renderNotesText(chapters))
	return err
}

// NotesDocument renders the notes export in the given format without
// writing it anywhere.
func (s *ReaderService) NotesDocument(ctx context.Context, format domain.NoteFormat) (string, error) {
	if format == "" {
		format = domain.NoteFormatText
	}
	if err := format.Validate(); err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	book, chapters, err := s.collectNotes(ctx)
	if err != nil {
		return "", err
	}
	if format == domain.NoteFormatText {
		return renderNotesText(chapters), nil
	}
	meta := domain.ExportMeta{
		Title:      book.Title,
		Author:     book.Author,
		Book:       book.ID,
		ExportedAt: s.clock.Now().UTC().Format(time.RFC3339),
	}
	return markdown.RenderFrontmatter(meta, renderNotesMarkdown(book, chapters))
}

// ExportNotesFile writes the notes export through the sink and returns the
// written path.
func (s *ReaderService) ExportNotesFile(ctx context.Context, dir string, format domain.NoteFormat) (string, error) {
	if s.sink == nil {
		return "", fmt.Errorf("notes sink is not configured")
	}
	if format == "" {
		format = domain.NoteFormatText
	}
	doc, err := s.NotesDocument(ctx, format)
	if err != nil {
		return "", err
	}
	bookID, err := s.currentBookID()
	if err != nil {
		return "", err
	}
	path, err := s.sink.Write(ctx, dir, domain.ExportFileName(bookID, format), []byte(doc))
	if err != nil {
		return "", fmt.Errorf("export notes: %w", err)
	}
	s.logger.Info("notes exported", "book", bookID, "path", path, "format", string(format))
	return path, nil
}

// OpenVideo launches the companion video and returns its URL.
func (s *ReaderService) OpenVideo(ctx context.Context) (string, error) {
	s.mu.Lock()
	if s.session == nil {
		s.mu.Unlock()
		return "", apperrors.ErrNoBookSelected
	}
	target := s.session.book.EmbedURL
	s.mu.Unlock()

	if target == "" {
		return "", fmt.Errorf("%w: book has no video", apperrors.ErrNotFound)
	}
	if s.launcher == nil {
		return target, fmt.Errorf("external launcher is not configured")
	}
	if err := s.launcher.Open(ctx, target); err != nil {
		return target, err
	}
	return target, nil
}

// Watch reports changes to the selected book's source. The channel is nil
// when the source cannot be watched.
func (s *ReaderService) Watch(ctx context.Context) (<-chan struct{}, error) {
	s.mu.Lock()
	location := s.requested
	s.mu.Unlock()
	if location == "" {
		return nil, apperrors.ErrNoBookSelected
	}
	return s.books.Watch(ctx, location)
}

func (s *ReaderService) newSession(ctx context.Context, book domain.BookView) *session {
	sess := &session{
		book:    book,
		byTitle: make(map[string]*ChapterTracker, len(book.Chapters)),
	}
	known := func(title string) bool {
		for _, ch := range book.Chapters {
			if ch.Title == title {
				return true
			}
		}
		return false
	}
	stored, _ := s.progress.LoadLastRead(ctx, book.ID)
	sess.lastRead = domain.NewObserved(domain.ParseLastRead(stored, known))

	persistCtx := context.WithoutCancel(ctx)
	sess.lastRead.OnChange(func(last domain.LastRead) {
		s.progress.SaveLastRead(persistCtx, book.ID, last.ID())
	})
	onLastRead := func(last domain.LastRead) {
		last.At = s.clock.Now()
		sess.lastRead.Set(last)
	}

	for _, ch := range book.Chapters {
		t := NewChapterTracker(ctx, s.progress, book.ID, ch, onLastRead)
		sess.trackers = append(sess.trackers, t)
		sess.byTitle[ch.Title] = t
	}
	return sess
}

func (s *ReaderService) withTracker(title string, fn func(*ChapterTracker) error) (domain.ChapterSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return domain.ChapterSnapshot{}, apperrors.ErrNoBookSelected
	}
	t, ok := s.session.byTitle[title]
	if !ok {
		return domain.ChapterSnapshot{}, fmt.Errorf("chapter %q: %w", title, apperrors.ErrNotFound)
	}
	if err := fn(t); err != nil {
		return t.Snapshot(), err
	}
	return t.Snapshot(), nil
}

func (s *ReaderService) currentBookID() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return "", apperrors.ErrNoBookSelected
	}
	return s.session.book.ID, nil
}

// collectNotes reads notes back from the store, not from the trackers, so
// the export matches what persisted.
func (s *ReaderService) collectNotes(ctx context.Context) (domain.BookView, []domain.ChapterNotes, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return domain.BookView{}, nil, apperrors.ErrNoBookSelected
	}
	book := s.session.book
	out := make([]domain.ChapterNotes, 0, len(book.Chapters))
	for _, ch := range book.Chapters {
		notes, found := s.progress.LoadNotes(ctx, book.ID, ch.Title)
		out = append(out, domain.ChapterNotes{Title: ch.Title, Lines: ch.Lines, Notes: notes, Found: found})
	}
	return book, out, nil
}

func (sess *session) titles() []string {
	out := make([]string, 0, len(sess.trackers))
	for _, t := range sess.trackers {
		out = append(out, t.Title())
	}
	return out
}

func (sess *session) view() domain.SessionView {
	view := domain.SessionView{
		Book:     sess.book,
		Chapters: make([]domain.ChapterSnapshot, 0, len(sess.trackers)),
		LastRead: sess.lastRead.Get(),
	}
	for _, t := range sess.trackers {
		view.Chapters = append(view.Chapters, t.Snapshot())
	}
	return view
}

func renderNotesText(chapters []domain.ChapterNotes) string {
	var b strings.Builder
	for _, ch := range chapters {
		b.WriteString(ch.Title)
		b.WriteString("\n")
		for _, note := range ch.Notes {
			b.WriteString(note)
			b.WriteString("\n")
		}
	}
	return b.String()
}

func renderNotesMarkdown(book domain.BookView, chapters []domain.ChapterNotes) string {
	var b strings.Builder
	title := book.Title
	if title == "" {
		title = book.ID
	}
	fmt.Fprintf(&b, "# %s\n", title)
	written := 0
	for _, ch := range chapters {
		if domain.CountNotes(ch.Notes) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n## %s\n\n", ch.Title)
		for i, note := range ch.Notes {
			if note == "" {
				continue
			}
			if i < len(ch.Lines) {
				fmt.Fprintf(&b, "> %s\n\n", ch.Lines[i])
			}
			fmt.Fprintf(&b, "- %s\n\n", note)
			written++
		}
	}
	if written == 0 {
		b.WriteString("\n_No notes yet._\n")
	}
	return b.String()
}
