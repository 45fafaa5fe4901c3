package notes

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"readtrack/internal/platform/markdown"
	"readtrack/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

// Port is the minimal interface this view needs from the reader use-case.
type Port interface {
	NotesDocument(ctx context.Context, format string) (string, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type RenderedMsg struct {
	Document string
	Err      error
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model previews the markdown notes export.
type Model struct {
	port     Port
	viewport viewport.Model
	spinner  spinner.Model
	renderer *glamour.TermRenderer
	document string
	err      error
	loading  bool
	stale    bool
	width    int
	height   int
}

func New(port Port) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	r, _ := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(0),
	)

	return Model{
		port:     port,
		viewport: viewport.New(0, 0),
		spinner:  sp,
		renderer: r,
		stale:    true,
	}
}

func (m Model) Init() tea.Cmd { return nil }

// Invalidate marks the preview out of date. It is rebuilt on the next
// Refresh.
func (m *Model) Invalidate() { m.stale = true }

// Refresh rebuilds the preview when it is out of date.
func (m *Model) Refresh() tea.Cmd {
	if !m.stale || m.port == nil {
		return nil
	}
	m.stale = false
	m.loading = true
	return tea.Batch(m.renderCmd(), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		if m.document != "" {
			m.viewport.SetContent(m.renderContent())
		}

	case RenderedMsg:
		m.loading = false
		m.err = msg.Err
		if msg.Err != nil {
			m.viewport.SetContent(theme.Error.Render("Error: " + msg.Err.Error()))
			return m, nil
		}
		m.document = msg.Document
		m.viewport.SetContent(m.renderContent())

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	var vCmd tea.Cmd
	m.viewport, vCmd = m.viewport.Update(msg)
	cmds = append(cmds, vCmd)

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	header := theme.Title.Render("Notes") + theme.Muted.Render("  ↑/↓: scroll  e: export  :notes:copy") + "\n"
	vpHeight := max(m.height-lipgloss.Height(header)-1, 1)
	if m.loading && m.document == "" {
		return lipgloss.JoinVertical(lipgloss.Left, header,
			lipgloss.Place(m.width, vpHeight, lipgloss.Center, lipgloss.Center, m.spinner.View()+" Rendering notes…"))
	}
	vp := m.viewport
	vp.Height = vpHeight
	footer := theme.Muted.Render(fmt.Sprintf("%.0f%%", m.viewport.ScrollPercent()*100))
	return lipgloss.JoinVertical(lipgloss.Left, header, vp.View(), footer)
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) resize() {
	m.viewport.Width = m.width
	m.viewport.Height = max(m.height-3, 1)
	if r, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(m.width),
	); err == nil {
		m.renderer = r
	}
}

// renderContent drops the export frontmatter; the preview only shows the
// body.
func (m Model) renderContent() string {
	var meta map[string]any
	body, err := markdown.DecodeFrontmatter(m.document, &meta)
	if err != nil {
		body = m.document
	}
	if m.renderer != nil {
		if rendered, err := m.renderer.Render(body); err == nil {
			return rendered
		}
	}
	return body
}

func (m Model) renderCmd() tea.Cmd {
	return func() tea.Msg {
		doc, err := m.port.NotesDocument(context.Background(), "markdown")
		return RenderedMsg{Document: doc, Err: err}
	}
}
