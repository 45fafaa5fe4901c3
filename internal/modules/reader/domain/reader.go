package domain

import "time"

// ChapterText is one parsed chapter as the reader sees it.
type ChapterText struct {
	Title string
	Lines []string
}

// BookView is a loaded book reduced to what the reader needs.
type BookView struct {
	ID            string
	Location      string
	Title         string
	Description   string
	Author        string
	VideoID       string
	EmbedURL      string
	Chapters      []ChapterText
	TotalChapters int
	AverageLines  int
}

type CatalogEntry struct {
	Name     string
	Location string
}

type Summary struct {
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

type ExpandState int

const (
	Collapsed ExpandState = iota
	Expanded
)

func (s ExpandState) String() string {
	if s == Expanded {
		return "expanded"
	}
	return "collapsed"
}

// ChapterSnapshot is a copy of a chapter's state safe to hand to callers.
type ChapterSnapshot struct {
	Title     string
	Lines     []string
	Read      []bool
	Notes     []string
	State     ExpandState
	FullyRead bool
	ReadCount int
	NoteCount int
	Percent   int
}

// ScrollTarget says where the view should move. Line is -1 when the
// target is the chapter heading.
type ScrollTarget struct {
	Chapter      string
	Line         int
	AutoExpanded bool
}

// SessionView is the selected book with every chapter's current state.
type SessionView struct {
	Book     BookView
	Chapters []ChapterSnapshot
	LastRead LastRead
}
