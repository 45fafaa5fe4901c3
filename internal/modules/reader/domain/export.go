package domain

import "fmt"

type NoteFormat string

const (
	NoteFormatText     NoteFormat = "text"
	NoteFormatMarkdown NoteFormat = "markdown"
)

func (f NoteFormat) Validate() error {
	switch f {
	case NoteFormatText, NoteFormatMarkdown:
		return nil
	default:
		return fmt.Errorf("unsupported notes format %q", string(f))
	}
}

func (f NoteFormat) Ext() string {
	if f == NoteFormatMarkdown {
		return ".md"
	}
	return ".txt"
}

// ExportFileName is the file a book's notes are written to.
func ExportFileName(bookID string, format NoteFormat) string {
	if bookID == "" {
		bookID = "book"
	}
	return bookID + "-notes" + format.Ext()
}

// ChapterNotes is the stored notes of one chapter, in book order.
type ChapterNotes struct {
	Title string
	Lines []string
	Notes []string
	Found bool
}

// ExportMeta is the frontmatter of a markdown notes export.
type ExportMeta struct {
	Title      string `yaml:"title"`
	Author     string `yaml:"author,omitempty"`
	Book       string `yaml:"book"`
	ExportedAt string `yaml:"exported_at"`
}
