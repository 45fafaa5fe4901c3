package domain

import (
	"regexp"
	"strings"

	"readtrack/internal/platform/markdown"
)

const (
	blockSeparator = "\n\n"
	titleWords     = 3
	embedBase      = "https://www.youtube-nocookie.com/embed/"
)

var videoPattern = regexp.MustCompile(`watch\?v=(.+)`)

// Parse splits raw book text into metadata and chapters. Empty text is a
// valid book with no chapters. A well-formed YAML frontmatter block
// supplies metadata and the remaining body is parsed as chapters only; a
// block that does not decode is treated as ordinary text.
func Parse(text string, policy Policy) (Meta, *Chapters, error) {
	if err := policy.Validate(); err != nil {
		return Meta{}, nil, err
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")

	if markdown.HasFrontmatter(text) {
		var meta Meta
		if body, err := markdown.DecodeFrontmatter(text, &meta); err == nil {
			return parseFrontmatterBody(meta, body, policy)
		}
	}

	if policy == PolicyNumbered {
		chapters, err := parseNumbered(text)
		if err != nil {
			return Meta{}, nil, err
		}
		return Meta{}, chapters, nil
	}
	meta, rest := parseHeader(text)
	return meta, parseBlocks(rest), nil
}

func parseFrontmatterBody(meta Meta, body string, policy Policy) (Meta, *Chapters, error) {
	meta.VideoID = videoIDField(meta.VideoID)
	body = strings.TrimLeft(body, "\n")
	if policy == PolicyNumbered {
		chapters, err := parseNumbered(body)
		if err != nil {
			return Meta{}, nil, err
		}
		return meta, chapters, nil
	}
	return meta, parseBlocks(body), nil
}

// parseHeader consumes the first blank-line-delimited block: title,
// description, author and an optional video URL.
func parseHeader(text string) (Meta, string) {
	header, rest, _ := strings.Cut(text, blockSeparator)
	fields := strings.SplitN(header, "\n", 4)
	at := func(i int) string {
		if i < len(fields) {
			return fields[i]
		}
		return ""
	}
	return Meta{
		Title:       at(0),
		Description: at(1),
		Author:      at(2),
		VideoID:     ExtractVideoID(at(3)),
	}, rest
}

func parseBlocks(text string) *Chapters {
	chapters := NewChapters()
	if text == "" {
		return chapters
	}
	for _, block := range strings.Split(text, blockSeparator) {
		block = strings.Trim(block, "\n")
		if block == "" {
			continue
		}
		lines := strings.Split(block, "\n")
		chapters.Set(TruncateTitle(lines[0]), lines)
	}
	return chapters
}

func parseNumbered(text string) (*Chapters, error) {
	chapters := NewChapters()
	current := ""
	seen := false
	for i, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if isContentLine(line) {
			if !seen {
				return nil, &ParseError{Line: i + 1, Err: ErrContentBeforeTitle}
			}
			chapters.Append(current, line)
			continue
		}
		current = line
		seen = true
		if _, ok := chapters.Get(current); !ok {
			chapters.Set(current, []string{})
		}
	}
	return chapters, nil
}

func isContentLine(line string) bool {
	return line != "" && line[0] >= '0' && line[0] <= '9'
}

// TruncateTitle keeps the first three single-space-separated words.
func TruncateTitle(line string) string {
	parts := strings.SplitN(line, " ", titleWords+1)
	if len(parts) > titleWords {
		parts = parts[:titleWords]
	}
	return strings.Join(parts, " ")
}

// ExtractVideoID returns the identifier following "watch?v=", or "" when
// the reference does not match.
func ExtractVideoID(ref string) string {
	if m := videoPattern.FindStringSubmatch(strings.TrimSpace(ref)); m != nil {
		return m[1]
	}
	return ""
}

// videoIDField also accepts a bare identifier, as written in frontmatter.
func videoIDField(ref string) string {
	ref = strings.TrimSpace(ref)
	if id := ExtractVideoID(ref); id != "" {
		return id
	}
	if strings.ContainsAny(ref, "/:?= ") {
		return ""
	}
	return ref
}

func EmbedURL(videoID string) string {
	if videoID == "" {
		return ""
	}
	return embedBase + videoID
}
