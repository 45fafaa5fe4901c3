package usecase_test

import (
	"context"
	"fmt"
	"reflect"
	"testing"

	progressoutadapter "readtrack/internal/modules/progress/adapter/out"
	"readtrack/internal/modules/progress/dto"
	progressin "readtrack/internal/modules/progress/port/in"
	progressout "readtrack/internal/modules/progress/port/out"
	"readtrack/internal/modules/progress/service"
	"readtrack/internal/modules/progress/usecase"
	"readtrack/internal/platform/logging"
)

type brokenKV struct{}

func (brokenKV) Get(context.Context, string) (string, bool, error) {
	return "", false, fmt.Errorf("disk gone")
}

func (brokenKV) Set(context.Context, string, string) error { return fmt.Errorf("disk gone") }

func newUsecase(kv progressout.KVStore) progressin.Usecase {
	return usecase.NewInteractor(service.NewProgressService(kv, logging.NewNop()))
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc := newUsecase(progressoutadapter.NewMemoryKVStore())
	key := dto.ChapterKey{BookID: "artofwar", Title: "Laying Plans"}

	uc.SaveRead(ctx, key, []bool{true, false, true})
	read, ok := uc.LoadRead(ctx, key)
	if !ok || !reflect.DeepEqual(read, []bool{true, false, true}) {
		t.Fatalf("read round trip failed: %v %v", read, ok)
	}

	uc.SaveNotes(ctx, key, []string{"", "deception", ""})
	notes, ok := uc.LoadNotes(ctx, key)
	if !ok || !reflect.DeepEqual(notes, []string{"", "deception", ""}) {
		t.Fatalf("notes round trip failed: %v %v", notes, ok)
	}

	uc.SaveLastRead(ctx, "artofwar", "Laying Plans-2")
	last, ok := uc.LoadLastRead(ctx, "artofwar")
	if !ok || last != "Laying Plans-2" {
		t.Fatalf("last read round trip failed: %q %v", last, ok)
	}
}

func TestLoadNeverWrittenIsAbsent(t *testing.T) {
	t.Parallel()
	uc := newUsecase(progressoutadapter.NewMemoryKVStore())
	if _, ok := uc.LoadRead(context.Background(), dto.ChapterKey{Title: "nope"}); ok {
		t.Fatalf("never written key should be absent")
	}
	if _, ok := uc.LoadLastRead(context.Background(), "nope"); ok {
		t.Fatalf("never written last read should be absent")
	}
}

func TestLoadCorruptValueIsAbsent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	kv := progressoutadapter.NewMemoryKVStore()
	_ = kv.Set(ctx, "Chapter-read", "{oops")
	_ = kv.Set(ctx, "Chapter-notes", `[1,2]`)
	uc := newUsecase(kv)
	if _, ok := uc.LoadRead(ctx, dto.ChapterKey{Title: "Chapter"}); ok {
		t.Fatalf("corrupt read state should be absent")
	}
	if _, ok := uc.LoadNotes(ctx, dto.ChapterKey{Title: "Chapter"}); ok {
		t.Fatalf("mistyped notes should be absent")
	}
}

func TestBackendErrorsAreSwallowed(t *testing.T) {
	t.Parallel()
	uc := newUsecase(brokenKV{})
	uc.SaveRead(context.Background(), dto.ChapterKey{Title: "x"}, []bool{true})
	if _, ok := uc.LoadRead(context.Background(), dto.ChapterKey{Title: "x"}); ok {
		t.Fatalf("backend failure should read as absent")
	}
	if got := uc.AggregateProgress(context.Background(), dto.AggregateInput{Titles: []string{"x"}}); got != 0 {
		t.Fatalf("expected 0 percent, got %d", got)
	}
}

func TestAggregateProgressRereadsStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc := newUsecase(progressoutadapter.NewMemoryKVStore())
	titles := []string{"One", "Two", "Three"}

	if got := uc.AggregateProgress(ctx, dto.AggregateInput{BookID: "b", Titles: nil}); got != 0 {
		t.Fatalf("no chapters should be 0, got %d", got)
	}
	uc.SaveRead(ctx, dto.ChapterKey{BookID: "b", Title: "One"}, []bool{true, true})
	uc.SaveRead(ctx, dto.ChapterKey{BookID: "b", Title: "Two"}, []bool{true, false})
	uc.SaveRead(ctx, dto.ChapterKey{BookID: "other", Title: "Three"}, []bool{true})
	if got := uc.AggregateProgress(ctx, dto.AggregateInput{BookID: "b", Titles: titles}); got != 33 {
		t.Fatalf("expected 33 percent, got %d", got)
	}
	uc.SaveRead(ctx, dto.ChapterKey{BookID: "b", Title: "Two"}, []bool{true, true})
	if got := uc.AggregateProgress(ctx, dto.AggregateInput{BookID: "b", Titles: titles}); got != 67 {
		t.Fatalf("expected 67 percent, got %d", got)
	}
}
