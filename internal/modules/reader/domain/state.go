package domain

import "math"

// ResizeRead fits a persisted read slice to n lines. Missing entries are
// unread.
func ResizeRead(read []bool, n int) []bool {
	out := make([]bool, n)
	copy(out, read)
	return out
}

// ResizeNotes fits a persisted notes slice to n lines. Missing entries are
// empty.
func ResizeNotes(notes []string, n int) []string {
	out := make([]string, n)
	copy(out, notes)
	return out
}

func CountRead(read []bool) int {
	n := 0
	for _, r := range read {
		if r {
			n++
		}
	}
	return n
}

// CountNotes counts non-empty notes.
func CountNotes(notes []string) int {
	n := 0
	for _, note := range notes {
		if note != "" {
			n++
		}
	}
	return n
}

// AllRead reports whether every line is read. A chapter with no lines is
// never fully read.
func AllRead(read []bool) bool {
	return len(read) > 0 && CountRead(read) == len(read)
}

func Percent(part, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}
