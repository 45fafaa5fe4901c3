package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	readerdto "readtrack/internal/modules/reader/dto"
	apperrors "readtrack/internal/platform/errors"
	"readtrack/internal/ui/components"
	"readtrack/internal/ui/theme"
	chaptersview "readtrack/internal/ui/views/chapters"
	notesview "readtrack/internal/ui/views/notes"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type readerPort interface {
	Catalog(ctx context.Context) []readerdto.CatalogEntryOutput
	Select(ctx context.Context, book string) (readerdto.SessionOutput, error)
	Reload(ctx context.Context) (readerdto.SessionOutput, error)
	Summary(ctx context.Context) (readerdto.SummaryOutput, error)
	ToggleExpanded(ctx context.Context, chapter string) (readerdto.ChapterOutput, error)
	ToggleLine(ctx context.Context, chapter string, line int) (readerdto.ChapterOutput, error)
	SetNote(ctx context.Context, chapter string, line int, text string) (readerdto.ChapterOutput, error)
	ToggleAll(ctx context.Context, chapter string) (readerdto.ChapterOutput, error)
	GoToLastRead(ctx context.Context) (readerdto.ScrollOutput, error)
	Watch(ctx context.Context) (<-chan struct{}, error)
	NotesDocument(ctx context.Context, format string) (string, error)
	ExportNotes(ctx context.Context, format string) (readerdto.ExportOutput, error)
	OpenVideo(ctx context.Context) (readerdto.VideoOutput, error)
}

var clipboardWrite = clipboard.WriteAll

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabChapters tabID = iota
	tabNotes
	tabCount
)

var tabLabels = [tabCount]string{"Chapters", "Notes"}

// ─── async messages ───────────────────────────────────────────────────────────

type exportedMsg struct {
	out readerdto.ExportOutput
	err error
}

type videoMsg struct {
	out readerdto.VideoOutput
	err error
}

type copiedMsg struct {
	err error
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
	Move    key.Binding
	Expand  key.Binding
	Toggle  key.Binding
	All     key.Binding
	Note    key.Binding
	Last    key.Binding
	Export  key.Binding
	Video   key.Binding
	Retry   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Move:    key.NewBinding(key.WithKeys("up", "down", "k", "j"), key.WithHelp("↑/↓", "move")),
		Expand:  key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "expand / toggle line")),
		Toggle:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "toggle line read")),
		All:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "mark chapter read/unread")),
		Note:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "edit note")),
		Last:    key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "go to last read")),
		Export:  key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export notes")),
		Video:   key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "open video")),
		Retry:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "retry load")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Move, k.Expand, k.Toggle, k.All, k.Note},
		{k.Last, k.Export, k.Video, k.Retry},
		{k.Tab, k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, the global help
// overlay, the command palette and the status bar. Book state lives behind
// the reader port; rendering is delegated to sub-views.
type Model struct {
	reader readerPort

	chapters chaptersview.Model
	notes    notesview.Model
	initCmd  tea.Cmd

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	status    string
	width     int
	height    int
}

// NewModel builds the root model. A non-empty book is loaded on start.
func NewModel(reader readerPort, book string, watch bool) Model {
	h := help.New()
	h.ShowAll = true
	m := Model{
		reader:    reader,
		chapters:  chaptersview.New(reader, watch),
		notes:     notesview.New(reader),
		activeTab: tabChapters,
		keys:      defaultKeys(),
		help:      h,
		palette:   components.NewPalette(),
		status:    "ready",
	}
	var names []string
	for _, e := range reader.Catalog(context.Background()) {
		names = append(names, e.Name)
	}
	m.palette.SetBooks(names)
	if book != "" {
		m.initCmd = m.chapters.Select(book)
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return m.initCmd
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The palette intercepts all input while open.
	if m.palette.Visible() {
		if _, ok := msg.(tea.KeyMsg); ok {
			var cmd tea.Cmd
			m.palette, cmd = m.palette.Update(msg)
			return m, cmd
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil

	case chaptersview.StatusMsg:
		m.status = msg.Text
		return m, nil

	case chaptersview.ProgressChangedMsg:
		m.notes.Invalidate()
		if m.activeTab == tabNotes {
			return m, m.notes.Refresh()
		}
		return m, nil

	case exportedMsg:
		if msg.err != nil {
			m.status = "export failed: " + msg.err.Error()
		} else {
			m.status = "notes exported to " + msg.out.Path
		}
		return m, nil

	case videoMsg:
		switch {
		case errors.Is(msg.err, apperrors.ErrNotFound):
			m.status = "this book has no video"
		case msg.err != nil:
			m.status = "open video: " + msg.err.Error()
		default:
			m.status = "opened " + msg.out.URL
		}
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.status = "copy failed: " + msg.err.Error()
		} else {
			m.status = "notes copied to clipboard"
		}
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		// Yield to the note editor.
		if m.chapters.Editing() {
			var cmd tea.Cmd
			m.chapters, cmd = m.chapters.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "ctrl+c", "q":
			m.chapters.Stop()
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, m.onTabChange()
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			return m, m.onTabChange()
		case "?":
			m.showHelp = !m.showHelp
			return m, nil
		case ":":
			return m, m.palette.Open()
		case "e":
			return m, m.exportCmd("text")
		case "v":
			return m, m.videoCmd()
		}

		// Keys go to the active tab only.
		var cmd tea.Cmd
		switch m.activeTab {
		case tabChapters:
			m.chapters, cmd = m.chapters.Update(msg)
		case tabNotes:
			m.notes, cmd = m.notes.Update(msg)
		}
		return m, cmd
	}

	// Async results go to both views; each ignores what is not its own.
	var cmd tea.Cmd
	m.chapters, cmd = m.chapters.Update(msg)
	cmds = append(cmds, cmd)
	m.notes, cmd = m.notes.Update(msg)
	cmds = append(cmds, cmd)
	if m.palette.Visible() {
		m.palette, cmd = m.palette.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	contentH := max(m.height-lipgloss.Height(tabBar)-lipgloss.Height(statusBar), 1)

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabChapters:
		return m.chapters.View()
	case tabNotes:
		return m.notes.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "readtrack  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if s := m.chapters.Summary(); s.BookID != "" {
		left = theme.Hot.Render(fmt.Sprintf("● %s %d%%", s.BookID, s.PercentRead)) + "  " + left
	}
	right := theme.Muted.Render("?:help  tab:switch  :::palette  q:quit")
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	parts := strings.Fields(input)
	arg := strings.TrimSpace(strings.TrimPrefix(input, parts[0]))

	switch parts[0] {
	case "book:select":
		if arg == "" {
			m.status = "usage: book:select <name|location>"
			return m, nil
		}
		m.activeTab = tabChapters
		m.status = "loading " + arg
		return m, m.chapters.Select(arg)

	case "book:reload":
		m.activeTab = tabChapters
		return m, m.chapters.Reload()

	case "books":
		entries := m.reader.Catalog(context.Background())
		if len(entries) == 0 {
			m.status = "no books configured"
			return m, nil
		}
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name)
		}
		m.status = "books: " + strings.Join(names, ", ")

	case "notes:export":
		return m, m.exportCmd(formatArg(arg))

	case "notes:copy":
		return m, m.copyCmd(formatArg(arg))

	case "video:open":
		return m, m.videoCmd()

	case "last-read":
		m.activeTab = tabChapters
		return m, m.chapters.GoToLastRead()

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

func formatArg(arg string) string {
	if arg == "" {
		return "text"
	}
	return arg
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m *Model) onTabChange() tea.Cmd {
	if m.activeTab == tabNotes {
		return m.notes.Refresh()
	}
	return nil
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.chapters, _ = m.chapters.Update(sz)
	m.notes, _ = m.notes.Update(sz)
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) exportCmd(format string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.reader.ExportNotes(context.Background(), format)
		return exportedMsg{out: out, err: err}
	}
}

func (m Model) copyCmd(format string) tea.Cmd {
	return func() tea.Msg {
		doc, err := m.reader.NotesDocument(context.Background(), format)
		if err != nil {
			return copiedMsg{err: err}
		}
		return copiedMsg{err: clipboardWrite(doc)}
	}
}

func (m Model) videoCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.reader.OpenVideo(context.Background())
		return videoMsg{out: out, err: err}
	}
}
