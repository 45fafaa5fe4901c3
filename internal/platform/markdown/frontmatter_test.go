package markdown_test

import (
	"strings"
	"testing"

	"readtrack/internal/platform/markdown"
)

type header struct {
	Title  string `yaml:"title"`
	Author string `yaml:"author"`
}

func TestRenderThenDecode(t *testing.T) {
	t.Parallel()
	rendered, err := markdown.RenderFrontmatter(header{Title: "Meditations", Author: "Marcus Aurelius"}, "Book One\nline\n")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.HasPrefix(rendered, "---\n") {
		t.Fatalf("expected frontmatter prefix, got %q", rendered)
	}
	var got header
	body, err := markdown.DecodeFrontmatter(rendered, &got)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Title != "Meditations" || got.Author != "Marcus Aurelius" {
		t.Fatalf("unexpected header %+v", got)
	}
	if body != "\nBook One\nline\n" {
		t.Fatalf("unexpected body %q", body)
	}
}

func TestDecodeWithoutFrontmatter(t *testing.T) {
	t.Parallel()
	var got header
	body, err := markdown.DecodeFrontmatter("plain text", &got)
	if err != nil || body != "plain text" || got.Title != "" {
		t.Fatalf("plain text should pass through: body=%q err=%v", body, err)
	}
}

func TestDecodeUnterminated(t *testing.T) {
	t.Parallel()
	var got header
	if _, err := markdown.DecodeFrontmatter("---\ntitle: x\n", &got); err == nil {
		t.Fatalf("expected error for missing closing separator")
	}
}
