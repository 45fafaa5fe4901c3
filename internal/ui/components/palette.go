package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"readtrack/internal/ui/theme"
)

// PaletteSubmitMsg is emitted when the user confirms a command.
type PaletteSubmitMsg struct{ Input string }

// PaletteCancelMsg is emitted when the user presses esc.
type PaletteCancelMsg struct{}

var (
	paletteStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Peach).
			Background(theme.Mantle).
			Foreground(theme.Text).
			Padding(0, 1)

	hintStyle = lipgloss.NewStyle().Foreground(theme.Subtext0)
)

const (
	selectPrefix   = "book:select "
	maxSuggestions = 5
)

// hints must stay in sync with the switch in app/model.go executePalette.
var paletteHints = []string{
	"book:select <name|location>",
	"book:reload",
	"books",
	"notes:export [text|markdown]",
	"notes:copy [text|markdown]",
	"video:open",
	"last-read",
}

// Hints returns the known commands starting with prefix, at most limit.
func Hints(prefix string, limit int) []string {
	prefix = strings.ToLower(prefix)
	var out []string
	for _, h := range paletteHints {
		if prefix == "" || strings.HasPrefix(h, prefix) {
			out = append(out, h)
			if len(out) == limit {
				break
			}
		}
	}
	return out
}

// Palette is a command-palette overlay backed by bubbles/textinput.
type Palette struct {
	input   textinput.Model
	visible bool
	width   int
	books   []string
}

// NewPalette creates an inactive Palette ready to be opened.
func NewPalette() Palette {
	ti := textinput.New()
	ti.Placeholder = "type a command…"
	ti.CharLimit = 256
	return Palette{input: ti}
}

// Visible reports whether the palette is currently shown.
func (p Palette) Visible() bool { return p.visible }

// Open shows the palette, clears the input, and returns the focus command.
func (p *Palette) Open() tea.Cmd {
	p.visible = true
	p.input.SetValue("")
	return p.input.Focus()
}

// SetWidth sets the render width for the overlay.
func (p *Palette) SetWidth(w int) { p.width = w }

// SetBooks sets the catalog names offered after "book:select ".
func (p *Palette) SetBooks(names []string) { p.books = names }

// Suggestions lists completions for the current input: catalog names while
// typing a book:select argument, known commands otherwise.
func (p Palette) Suggestions() []string {
	value := p.input.Value()
	if arg, ok := strings.CutPrefix(value, selectPrefix); ok {
		arg = strings.ToLower(strings.TrimSpace(arg))
		var out []string
		for _, name := range p.books {
			if strings.HasPrefix(strings.ToLower(name), arg) {
				out = append(out, selectPrefix+name)
				if len(out) == maxSuggestions {
					break
				}
			}
		}
		return out
	}
	return Hints(value, maxSuggestions)
}

// complete replaces the input with the first suggestion, dropping argument
// placeholders such as <name> and [text|markdown].
func (p *Palette) complete() {
	suggestions := p.Suggestions()
	if len(suggestions) == 0 {
		return
	}
	fields := strings.Fields(suggestions[0])
	kept := fields[:0]
	for _, f := range fields {
		if strings.HasPrefix(f, "<") || strings.HasPrefix(f, "[") {
			break
		}
		kept = append(kept, f)
	}
	value := strings.Join(kept, " ")
	if len(kept) < len(fields) {
		value += " "
	}
	p.input.SetValue(value)
	p.input.CursorEnd()
}

func (p Palette) Update(msg tea.Msg) (Palette, tea.Cmd) {
	if !p.visible {
		return p, nil
	}
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			p.visible = false
			p.input.Blur()
			return p, func() tea.Msg { return PaletteCancelMsg{} }
		case "tab":
			p.complete()
			return p, nil
		case "enter":
			val := strings.TrimSpace(p.input.Value())
			p.visible = false
			p.input.Blur()
			return p, func() tea.Msg { return PaletteSubmitMsg{Input: val} }
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

func (p Palette) View() string {
	if !p.visible {
		return ""
	}
	matching := p.Suggestions()

	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Command Palette") + "\n")
	sb.WriteString(": " + p.input.View() + "\n")
	if len(matching) > 0 {
		sb.WriteString("\n")
		for _, h := range matching {
			sb.WriteString(hintStyle.Render("  "+h) + "\n")
		}
	}

	w := p.width
	if w < 20 {
		w = 64
	}
	return paletteStyle.Width(w - 2).Render(sb.String())
}
