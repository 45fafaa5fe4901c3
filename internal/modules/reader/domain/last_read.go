package domain

import (
	"strconv"
	"strings"
	"time"
)

// LastRead points at the most recently toggled line. Line is -1 when the
// pointer names a whole chapter.
type LastRead struct {
	Chapter string
	Line    int
	At      time.Time
}

func (l LastRead) IsZero() bool {
	return l.Chapter == ""
}

// ID renders the pointer as "<chapter>-<line>", or the bare chapter title
// for a whole-chapter pointer.
func (l LastRead) ID() string {
	if l.Chapter == "" {
		return ""
	}
	if l.Line < 0 {
		return l.Chapter
	}
	return l.Chapter + "-" + strconv.Itoa(l.Line)
}

// ParseLastRead decodes an identifier. Titles may themselves end in
// "-<digits>", so an identifier matching a known title is a whole-chapter
// pointer; otherwise the suffix after the last "-" is the line index.
func ParseLastRead(id string, known func(title string) bool) LastRead {
	if id == "" {
		return LastRead{}
	}
	if known != nil && known(id) {
		return LastRead{Chapter: id, Line: -1}
	}
	if idx := strings.LastIndex(id, "-"); idx > 0 {
		if n, err := strconv.Atoi(id[idx+1:]); err == nil && n >= 0 {
			return LastRead{Chapter: id[:idx], Line: n}
		}
	}
	return LastRead{Chapter: id, Line: -1}
}
