package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleBook = "The Art of War\nAncient treatise\nSun Tzu\n\n" +
	"Laying Plans chapter one\n1. Sun Tzu said\n2. The art of war\n\n" +
	"Waging War now\n1. In the operations\n"

func setup(t *testing.T) (configPath, exportDir string) {
	t.Helper()
	dir := t.TempDir()
	bookPath := filepath.Join(dir, "art-of-war.txt")
	if err := os.WriteFile(bookPath, []byte(sampleBook), 0o644); err != nil {
		t.Fatalf("write book: %v", err)
	}
	exportDir = filepath.Join(dir, "out")
	cfg := "data_dir: " + filepath.Join(dir, "data") + "\n" +
		"store: json\n" +
		"export_dir: " + exportDir + "\n" +
		"books:\n  war: " + bookPath + "\n"
	configPath = filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(cfg), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return configPath, exportDir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := run(t, args...)
	if err != nil {
		t.Fatalf("readtrack %s: %v", strings.Join(args, " "), err)
	}
	return out
}

func TestCommandsPersistAcrossInvocations(t *testing.T) {
	t.Parallel()
	configPath, exportDir := setup(t)
	cfg := "--config=" + configPath

	if out := mustRun(t, cfg, "books"); !strings.Contains(out, "war") {
		t.Fatalf("books output = %q", out)
	}

	out := mustRun(t, cfg, "read", "--book", "war", "--chapter", "Laying Plans chapter", "--line", "0")
	if !strings.Contains(out, "1 / 3 read (33%)") {
		t.Fatalf("read output = %q", out)
	}

	if out := mustRun(t, cfg, "last", "--book", "war"); strings.TrimSpace(out) != "Laying Plans chapter-0" {
		t.Fatalf("last output = %q", out)
	}

	if _, err := run(t, cfg, "note", "--book", "war", "--chapter", "Laying Plans chapter", "--line", "1", "--text", "x"); err == nil {
		t.Fatalf("expected note on unread line to fail")
	}

	out = mustRun(t, cfg, "note", "--book", "war", "--chapter", "Laying Plans chapter", "--line", "0", "--text", "know yourself")
	if !strings.Contains(out, "1 notes") {
		t.Fatalf("note output = %q", out)
	}

	want := "Laying Plans chapter\nknow yourself\n\n\nWaging War now\n"
	if out := mustRun(t, cfg, "export", "--book", "war", "--stdout"); out != want {
		t.Fatalf("export output = %q", out)
	}

	out = mustRun(t, cfg, "export", "--book", "war", "--format", "markdown")
	if !strings.Contains(out, exportDir) {
		t.Fatalf("export path output = %q", out)
	}
	matches, err := filepath.Glob(filepath.Join(exportDir, "*-notes.md"))
	if err != nil || len(matches) != 1 {
		t.Fatalf("expected one markdown export, got %v (%v)", matches, err)
	}

	out = mustRun(t, cfg, "read", "--book", "war", "--chapter", "Waging War now", "--all")
	if !strings.Contains(out, "2 / 2 read (100%)") {
		t.Fatalf("read --all output = %q", out)
	}

	if out := mustRun(t, cfg, "show", "--book", "war"); !strings.Contains(out, "50%") {
		t.Fatalf("show output = %q", out)
	}
}

func TestReadRequiresLineOrAll(t *testing.T) {
	t.Parallel()
	configPath, _ := setup(t)
	_, err := run(t, "--config="+configPath, "read", "--book", "war", "--chapter", "Laying Plans chapter")
	if err == nil || !strings.Contains(err.Error(), "--line or --all") {
		t.Fatalf("err = %v", err)
	}
}

func TestParsePrintsChapters(t *testing.T) {
	t.Parallel()
	configPath, _ := setup(t)
	book := filepath.Join(filepath.Dir(configPath), "art-of-war.txt")
	out := mustRun(t, "--config="+configPath, "parse", book)
	for _, want := range []string{"title: The Art of War", "chapters: 2", "Waging War"} {
		if !strings.Contains(out, want) {
			t.Fatalf("parse output missing %q: %q", want, out)
		}
	}
}
