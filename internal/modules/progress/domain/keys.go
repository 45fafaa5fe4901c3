package domain

const (
	readSuffix     = "-read"
	notesSuffix    = "-notes"
	lastReadSuffix = "-lastReadId"
	bookSeparator  = ":"
)

// KeySpace derives storage keys for one book. Chapter titles are used
// verbatim, so two chapters sharing a title share a slot.
type KeySpace struct {
	BookID string
}

func (k KeySpace) chapter(title string) string {
	if k.BookID == "" {
		return title
	}
	return k.BookID + bookSeparator + title
}

func (k KeySpace) ReadKey(title string) string {
	return k.chapter(title) + readSuffix
}

func (k KeySpace) NotesKey(title string) string {
	return k.chapter(title) + notesSuffix
}

func (k KeySpace) LastReadKey() string {
	return k.BookID + lastReadSuffix
}

// FullyRead is true for a non-empty slice with every flag set.
func FullyRead(flags []bool) bool {
	if len(flags) == 0 {
		return false
	}
	for _, f := range flags {
		if !f {
			return false
		}
	}
	return true
}
