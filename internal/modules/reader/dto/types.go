package dto

import "time"

type SelectInput struct {
	Book string
}

type ChapterInput struct {
	Chapter string
}

type LineInput struct {
	Chapter string
	Line    int
}

type NoteInput struct {
	Chapter string
	Line    int
	Text    string
}

type ExportInput struct {
	Dir    string
	Format string
}

type ExportOutput struct {
	Path string
}

type NotesInput struct {
	Format string
}

type ChapterOutput struct {
	Title     string
	Lines     []string
	Read      []bool
	Notes     []string
	Expanded  bool
	FullyRead bool
	ReadCount int
	NoteCount int
	Percent   int
}

type SessionOutput struct {
	BookID        string
	Location      string
	Title         string
	Description   string
	Author        string
	VideoID       string
	EmbedURL      string
	TotalChapters int
	AverageLines  int
	Chapters      []ChapterOutput
	LastRead      string
}

type SummaryOutput struct {
	BookID        string
	Location      string
	Title         string
	Description   string
	Author        string
	VideoID       string
	EmbedURL      string
	TotalChapters int
	AverageLines  int
	PercentRead   int
	LastRead      string
	LastReadAt    time.Time
}

// ScrollOutput is the last-read scroll target. Line is -1 for a chapter
// heading; Found is false when there is nowhere to go.
type ScrollOutput struct {
	Found        bool
	Chapter      string
	Line         int
	AutoExpanded bool
}

type CatalogEntryOutput struct {
	Name     string
	Location string
}

type VideoOutput struct {
	URL string
}
