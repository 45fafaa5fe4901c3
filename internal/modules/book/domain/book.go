package domain

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var ErrContentBeforeTitle = errors.New("content line before any chapter title")

type Policy string

const (
	PolicyHeaderBlocks Policy = "header-blocks"
	PolicyNumbered     Policy = "numbered"
)

func (p Policy) Validate() error {
	switch p {
	case PolicyHeaderBlocks, PolicyNumbered:
		return nil
	default:
		return fmt.Errorf("unsupported parse policy %q", string(p))
	}
}

type Meta struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Author      string `yaml:"author"`
	VideoID     string `yaml:"video"`
}

type Chapter struct {
	Title string
	Lines []string
}

// Chapters is an insertion-ordered title -> lines mapping. Adding a title
// that already exists replaces its lines in place.
type Chapters struct {
	order []string
	lines map[string][]string
}

func NewChapters() *Chapters {
	return &Chapters{lines: map[string][]string{}}
}

func (c *Chapters) Set(title string, lines []string) {
	if _, ok := c.lines[title]; !ok {
		c.order = append(c.order, title)
	}
	c.lines[title] = lines
}

func (c *Chapters) Append(title, line string) {
	if _, ok := c.lines[title]; !ok {
		c.order = append(c.order, title)
	}
	c.lines[title] = append(c.lines[title], line)
}

func (c *Chapters) Get(title string) ([]string, bool) {
	lines, ok := c.lines[title]
	return lines, ok
}

func (c *Chapters) Len() int {
	if c == nil {
		return 0
	}
	return len(c.order)
}

func (c *Chapters) Titles() []string {
	if c == nil {
		return nil
	}
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

func (c *Chapters) List() []Chapter {
	if c == nil {
		return nil
	}
	out := make([]Chapter, 0, len(c.order))
	for _, title := range c.order {
		out = append(out, Chapter{Title: title, Lines: c.lines[title]})
	}
	return out
}

type Book struct {
	ID       string
	Location string
	Meta     Meta
	Chapters *Chapters
}

type Stats struct {
	TotalChapters int
	AverageLines  int
}

// ComputeStats rounds the mean line count half away from zero.
func ComputeStats(chapters *Chapters) Stats {
	total := chapters.Len()
	if total == 0 {
		return Stats{}
	}
	lines := 0
	for _, ch := range chapters.List() {
		lines += len(ch.Lines)
	}
	return Stats{
		TotalChapters: total,
		AverageLines:  int(math.Round(float64(lines) / float64(total))),
	}
}

type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func IsRemote(location string) bool {
	lower := strings.ToLower(strings.TrimSpace(location))
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
