package domain_test

import (
	"testing"

	"readtrack/internal/modules/progress/domain"
)

func TestKeySpace(t *testing.T) {
	t.Parallel()
	plain := domain.KeySpace{}
	if plain.ReadKey("Laying Plans") != "Laying Plans-read" || plain.NotesKey("Laying Plans") != "Laying Plans-notes" {
		t.Fatalf("un-namespaced keys should match the browser layout")
	}
	book := domain.KeySpace{BookID: "artofwar"}
	if got := book.ReadKey("Laying Plans"); got != "artofwar:Laying Plans-read" {
		t.Fatalf("unexpected read key %q", got)
	}
	if got := book.NotesKey("Laying Plans"); got != "artofwar:Laying Plans-notes" {
		t.Fatalf("unexpected notes key %q", got)
	}
	if got := book.LastReadKey(); got != "artofwar-lastReadId" {
		t.Fatalf("unexpected last read key %q", got)
	}
}

func TestFullyRead(t *testing.T) {
	t.Parallel()
	if domain.FullyRead(nil) {
		t.Fatalf("empty state is not fully read")
	}
	if domain.FullyRead([]bool{true, false}) {
		t.Fatalf("partial state is not fully read")
	}
	if !domain.FullyRead([]bool{true, true}) {
		t.Fatalf("all true should be fully read")
	}
}
