package chapters

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	readerdto "readtrack/internal/modules/reader/dto"
	apperrors "readtrack/internal/platform/errors"
	"readtrack/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	Select(ctx context.Context, book string) (readerdto.SessionOutput, error)
	Reload(ctx context.Context) (readerdto.SessionOutput, error)
	Summary(ctx context.Context) (readerdto.SummaryOutput, error)
	ToggleExpanded(ctx context.Context, chapter string) (readerdto.ChapterOutput, error)
	ToggleLine(ctx context.Context, chapter string, line int) (readerdto.ChapterOutput, error)
	SetNote(ctx context.Context, chapter string, line int, text string) (readerdto.ChapterOutput, error)
	ToggleAll(ctx context.Context, chapter string) (readerdto.ChapterOutput, error)
	GoToLastRead(ctx context.Context) (readerdto.ScrollOutput, error)
	Watch(ctx context.Context) (<-chan struct{}, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type LoadedMsg struct {
	Session readerdto.SessionOutput
	Summary readerdto.SummaryOutput
	Err     error
}

type ChapterMsg struct {
	Chapter readerdto.ChapterOutput
	Summary readerdto.SummaryOutput
	Err     error
}

type ScrollMsg struct {
	Target readerdto.ScrollOutput
	Err    error
}

// SourceChangedMsg is sent when the watched book file changes on disk.
type SourceChangedMsg struct{}

// StatusMsg carries a line for the app status bar.
type StatusMsg struct{ Text string }

// ProgressChangedMsg tells listeners that read state or notes changed.
type ProgressChangedMsg struct{}

type watchStartedMsg struct {
	changes <-chan struct{}
	err     error
}

// ─── model ───────────────────────────────────────────────────────────────────

// row is one selectable entry: a chapter heading (line -1) or a line of an
// expanded chapter.
type row struct {
	chapter int
	line    int
}

type Model struct {
	port  Port
	watch bool

	session readerdto.SessionOutput
	summary readerdto.SummaryOutput
	rows    []row
	cursor  int
	offsets []int

	viewport viewport.Model
	spinner  spinner.Model
	note     textinput.Model
	editing  bool
	loading  bool
	err      error
	caser    cases.Caser

	watching    string
	watchCancel context.CancelFunc
	changes     <-chan struct{}

	width  int
	height int
}

// New creates a chapters view. With watch set, local book files are
// reloaded when they change.
func New(port Port, watch bool) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	ti := textinput.New()
	ti.Placeholder = "Notes"
	ti.CharLimit = 1024
	ti.Prompt = "✎ "

	return Model{
		port:     port,
		watch:    watch,
		viewport: viewport.New(0, 0),
		spinner:  sp,
		note:     ti,
		caser:    cases.Title(language.Und, cases.NoLower),
	}
}

func (m Model) Init() tea.Cmd { return nil }

// Select starts loading a book by catalog name or location.
func (m *Model) Select(book string) tea.Cmd {
	m.loading = true
	return tea.Batch(m.selectCmd(book), m.spinner.Tick)
}

// Reload re-fetches the current book.
func (m *Model) Reload() tea.Cmd {
	m.loading = true
	return tea.Batch(m.reloadCmd(), m.spinner.Tick)
}

// GoToLastRead scrolls to the last toggled line.
func (m Model) GoToLastRead() tea.Cmd {
	return m.scrollCmd()
}

// Editing reports whether the note input has focus. The app yields every
// key to the view while it does.
func (m Model) Editing() bool { return m.editing }

// Loaded reports whether a book is displayed.
func (m Model) Loaded() bool { return m.session.BookID != "" }

func (m Model) Summary() readerdto.SummaryOutput { return m.summary }

func (m Model) Err() error { return m.err }

// Stop cancels the file watcher.
func (m *Model) Stop() {
	if m.watchCancel != nil {
		m.watchCancel()
		m.watchCancel = nil
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.note.Width = max(m.width-16, 10)
		m.render()

	case LoadedMsg:
		if errors.Is(msg.Err, apperrors.ErrStaleSelection) {
			return m, nil
		}
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			m.session = readerdto.SessionOutput{}
			m.summary = readerdto.SummaryOutput{}
			m.rows = nil
			m.render()
			return m, status("load failed: " + msg.Err.Error())
		}
		if m.session.BookID != msg.Session.BookID {
			m.rows = nil
			m.cursor = 0
		}
		m.err = nil
		m.session = msg.Session
		m.summary = msg.Summary
		m.rebuildRows()
		m.render()
		cmds = append(cmds, status(fmt.Sprintf("loaded %s (%d chapters)", m.displayTitle(), len(m.session.Chapters))), progressChanged)
		if m.watch && m.watching != msg.Session.Location {
			cmds = append(cmds, m.startWatch(msg.Session.Location))
		}

	case ChapterMsg:
		if msg.Chapter.Title != "" {
			m.replaceChapter(msg.Chapter)
		}
		if msg.Summary.BookID != "" && msg.Summary.BookID == m.session.BookID {
			m.summary = msg.Summary
		}
		m.rebuildRows()
		m.render()
		if msg.Err != nil {
			return m, status(msg.Err.Error())
		}
		cmds = append(cmds, progressChanged)

	case ScrollMsg:
		if msg.Err != nil {
			return m, status(msg.Err.Error())
		}
		if !msg.Target.Found {
			return m, status("nothing read yet")
		}
		idx := m.chapterIndex(msg.Target.Chapter)
		if idx < 0 {
			return m, nil
		}
		if msg.Target.AutoExpanded {
			m.session.Chapters[idx].Expanded = true
			m.rebuildRows()
		}
		m.moveTo(idx, msg.Target.Line)
		m.render()

	case watchStartedMsg:
		if msg.err != nil {
			return m, status("watch: " + msg.err.Error())
		}
		m.changes = msg.changes
		if m.changes != nil {
			cmds = append(cmds, waitForChange(m.changes))
		}

	case SourceChangedMsg:
		cmds = append(cmds, m.reloadCmd(), status("book changed on disk, reloading"))
		if m.changes != nil {
			cmds = append(cmds, waitForChange(m.changes))
		}

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.KeyMsg:
		if m.editing {
			return m.updateEditing(msg)
		}
		cmds = append(cmds, m.handleKey(msg))
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	header := m.renderHeader()
	if m.loading && !m.Loaded() {
		h := max(m.height-lipgloss.Height(header), 1)
		return lipgloss.JoinVertical(lipgloss.Left, header,
			lipgloss.Place(m.width, h, lipgloss.Center, lipgloss.Center, m.spinner.View()+" Loading book…"))
	}
	vp := m.viewport
	vp.Height = max(m.height-lipgloss.Height(header), 1)
	return lipgloss.JoinVertical(lipgloss.Left, header, vp.View())
}

// ─── keys ────────────────────────────────────────────────────────────────────

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "r":
		if m.err != nil {
			return m.Reload()
		}
		return nil
	case "g":
		if m.Loaded() {
			return m.scrollCmd()
		}
		return nil
	}
	if len(m.rows) == 0 {
		return nil
	}

	cur := m.rows[m.cursor]
	title := m.session.Chapters[cur.chapter].Title
	switch msg.String() {
	case "up", "k":
		m.setCursor(m.cursor - 1)
	case "down", "j":
		m.setCursor(m.cursor + 1)
	case "pgup":
		m.setCursor(m.cursor - max(m.viewport.Height/2, 1))
	case "pgdown":
		m.setCursor(m.cursor + max(m.viewport.Height/2, 1))
	case "home":
		m.setCursor(0)
	case "end":
		m.setCursor(len(m.rows) - 1)
	case "enter", " ":
		if cur.line < 0 {
			return m.chapterCmd(func(ctx context.Context) (readerdto.ChapterOutput, error) {
				return m.port.ToggleExpanded(ctx, title)
			})
		}
		return m.toggleLineCmd(title, cur.line)
	case "x":
		if cur.line < 0 {
			return status("select a line to mark it read")
		}
		return m.toggleLineCmd(title, cur.line)
	case "a":
		return m.chapterCmd(func(ctx context.Context) (readerdto.ChapterOutput, error) {
			return m.port.ToggleAll(ctx, title)
		})
	case "n":
		if cur.line < 0 {
			return status("select a line to add a note")
		}
		ch := m.session.Chapters[cur.chapter]
		if !ch.Read[cur.line] {
			return status("mark the line read before adding a note")
		}
		m.editing = true
		m.note.SetValue(ch.Notes[cur.line])
		m.note.CursorEnd()
		m.render()
		return m.note.Focus()
	}
	m.render()
	return nil
}

func (m Model) updateEditing(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.editing = false
		m.note.Blur()
		m.render()
		return m, nil
	case "enter":
		m.editing = false
		m.note.Blur()
		cur := m.rows[m.cursor]
		title := m.session.Chapters[cur.chapter].Title
		text := m.note.Value()
		m.render()
		return m, m.chapterCmd(func(ctx context.Context) (readerdto.ChapterOutput, error) {
			return m.port.SetNote(ctx, title, cur.line, text)
		})
	}
	var cmd tea.Cmd
	m.note, cmd = m.note.Update(msg)
	m.render()
	return m, cmd
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) rebuildRows() {
	prev := row{line: -1}
	if m.cursor < len(m.rows) {
		prev = m.rows[m.cursor]
	}
	m.rows = m.rows[:0]
	for i, ch := range m.session.Chapters {
		m.rows = append(m.rows, row{chapter: i, line: -1})
		if !ch.Expanded {
			continue
		}
		for j := range ch.Lines {
			m.rows = append(m.rows, row{chapter: i, line: j})
		}
	}
	m.cursor = 0
	for i, r := range m.rows {
		if r.chapter == prev.chapter && (r.line == prev.line || r.line == -1) {
			m.cursor = i
			if r.line == prev.line {
				break
			}
		}
	}
}

func (m *Model) replaceChapter(ch readerdto.ChapterOutput) {
	if i := m.chapterIndex(ch.Title); i >= 0 {
		m.session.Chapters[i] = ch
	}
}

func (m Model) chapterIndex(title string) int {
	for i, ch := range m.session.Chapters {
		if ch.Title == title {
			return i
		}
	}
	return -1
}

func (m *Model) moveTo(chapter, line int) {
	for i, r := range m.rows {
		if r.chapter == chapter && r.line == line {
			m.cursor = i
			return
		}
	}
}

func (m *Model) setCursor(i int) {
	m.cursor = min(max(i, 0), max(len(m.rows)-1, 0))
}

func (m Model) displayTitle() string {
	if m.session.Title != "" {
		return m.session.Title
	}
	return m.session.BookID
}

func (m *Model) render() {
	m.viewport.Width = m.width
	m.viewport.Height = max(m.height-lipgloss.Height(m.renderHeader()), 1)
	if m.err != nil {
		m.viewport.SetContent("")
		return
	}

	var lines []string
	m.offsets = m.offsets[:0]
	wrap := max(m.width-10, 20)
	for i, r := range m.rows {
		m.offsets = append(m.offsets, len(lines))
		pointer := "  "
		if i == m.cursor {
			pointer = theme.Hot.Render("› ")
		}
		ch := m.session.Chapters[r.chapter]
		if r.line < 0 {
			lines = append(lines, pointer+m.renderHeading(ch))
			continue
		}
		lines = append(lines, m.renderLine(ch, r.line, pointer, wrap)...)
		if i == m.cursor && m.editing {
			lines = append(lines, "        "+m.note.View())
		} else if ch.Read[r.line] && ch.Notes[r.line] != "" {
			lines = append(lines, "        "+theme.Note.Render("✎ "+ch.Notes[r.line]))
		}
	}
	m.viewport.SetContent(strings.Join(lines, "\n"))
	m.scrollToCursor(len(lines))
}

func (m Model) renderHeading(ch readerdto.ChapterOutput) string {
	marker := "🔴"
	if ch.FullyRead {
		marker = "✅"
	}
	arrow := "▼"
	if ch.Expanded {
		arrow = "▲"
	}
	title := m.caser.String(ch.Title) + " " + arrow
	counts := fmt.Sprintf("  %d notes  %d / %d read (%d%%)", ch.NoteCount, ch.ReadCount, len(ch.Lines), ch.Percent)
	if ch.FullyRead {
		return theme.Dim.Render(marker + " " + title + counts)
	}
	return marker + " " + theme.Title.Render(title) + theme.Muted.Render(counts)
}

func (m Model) renderLine(ch readerdto.ChapterOutput, i int, pointer string, wrap int) []string {
	box := "[ ] "
	style := lipgloss.NewStyle().Foreground(theme.Text)
	if ch.Read[i] {
		box = "[x] "
		style = theme.Dim
	}
	wrapped := strings.Split(wordwrap.String(ch.Lines[i], wrap), "\n")
	out := make([]string, 0, len(wrapped))
	for j, part := range wrapped {
		if j == 0 {
			out = append(out, pointer+"  "+box+style.Render(part))
			continue
		}
		out = append(out, "        "+style.Render(part))
	}
	return out
}

func (m *Model) scrollToCursor(total int) {
	if m.cursor >= len(m.offsets) {
		return
	}
	top := m.offsets[m.cursor]
	bottom := total
	if m.cursor+1 < len(m.offsets) {
		bottom = m.offsets[m.cursor+1]
	}
	if top < m.viewport.YOffset {
		m.viewport.SetYOffset(top)
	} else if bottom > m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(bottom - m.viewport.Height)
	}
}

func (m Model) renderHeader() string {
	if m.err != nil {
		return theme.Error.Render("Could not load book: "+m.err.Error()) + "\n" +
			theme.Muted.Render("press r to retry") + "\n"
	}
	if !m.Loaded() {
		return theme.Title.Render("readtrack") +
			theme.Muted.Render("  select a book with :book:select <name|location>") + "\n"
	}
	s := m.summary
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(m.displayTitle()) + "\n")
	if s.Author != "" {
		sb.WriteString(theme.Author.Render(s.Author) + "\n")
	}
	if s.Description != "" {
		sb.WriteString(theme.Muted.Render(wordwrap.String(s.Description, max(m.width-2, 20))) + "\n")
	}
	sb.WriteString(theme.Stats.Render(fmt.Sprintf("%d chapters, average of %d lines per chapter", s.TotalChapters, s.AverageLines)))
	sb.WriteString("  " + theme.Done.Render(fmt.Sprintf("%d%% read", s.PercentRead)))
	if s.EmbedURL != "" {
		sb.WriteString(theme.Muted.Render("  ▶ v: video"))
	}
	if m.loading {
		sb.WriteString("  " + m.spinner.View())
	}
	return sb.String() + "\n"
}

func status(text string) tea.Cmd {
	return func() tea.Msg { return StatusMsg{Text: text} }
}

func progressChanged() tea.Msg { return ProgressChangedMsg{} }

func (m Model) selectCmd(book string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		session, err := m.port.Select(ctx, book)
		if err != nil {
			return LoadedMsg{Err: err}
		}
		return m.withSummary(ctx, session)
	}
}

func (m Model) reloadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		session, err := m.port.Reload(ctx)
		if err != nil {
			return LoadedMsg{Err: err}
		}
		return m.withSummary(ctx, session)
	}
}

// withSummary pairs a session with the current summary. A summary for
// another book means a newer selection landed in between; the result is
// reported stale and the newer load wins.
func (m Model) withSummary(ctx context.Context, session readerdto.SessionOutput) LoadedMsg {
	summary, err := m.port.Summary(ctx)
	if err != nil {
		return LoadedMsg{Session: session, Err: err}
	}
	if summary.BookID != session.BookID {
		return LoadedMsg{Err: apperrors.ErrStaleSelection}
	}
	return LoadedMsg{Session: session, Summary: summary}
}

func (m Model) chapterCmd(fn func(ctx context.Context) (readerdto.ChapterOutput, error)) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		ch, err := fn(ctx)
		summary, _ := m.port.Summary(ctx)
		return ChapterMsg{Chapter: ch, Summary: summary, Err: err}
	}
}

func (m Model) toggleLineCmd(title string, line int) tea.Cmd {
	return m.chapterCmd(func(ctx context.Context) (readerdto.ChapterOutput, error) {
		return m.port.ToggleLine(ctx, title, line)
	})
}

func (m Model) scrollCmd() tea.Cmd {
	return func() tea.Msg {
		target, err := m.port.GoToLastRead(context.Background())
		return ScrollMsg{Target: target, Err: err}
	}
}

func (m *Model) startWatch(location string) tea.Cmd {
	m.Stop()
	ctx, cancel := context.WithCancel(context.Background())
	m.watchCancel = cancel
	m.watching = location
	m.changes = nil
	port := m.port
	return func() tea.Msg {
		changes, err := port.Watch(ctx)
		return watchStartedMsg{changes: changes, err: err}
	}
}

func waitForChange(changes <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return SourceChangedMsg{}
	}
}
