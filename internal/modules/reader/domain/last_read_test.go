package domain

import "testing"

func TestLastReadID(t *testing.T) {
	t.Parallel()
	if got := (LastRead{Chapter: "Laying Plans", Line: 3}).ID(); got != "Laying Plans-3" {
		t.Fatalf("line id = %q", got)
	}
	if got := (LastRead{Chapter: "Laying Plans", Line: -1}).ID(); got != "Laying Plans" {
		t.Fatalf("chapter id = %q", got)
	}
	if got := (LastRead{}).ID(); got != "" {
		t.Fatalf("zero id = %q", got)
	}
}

func TestParseLastRead(t *testing.T) {
	t.Parallel()
	titles := map[string]bool{"Laying Plans": true, "Part-2": true, "Self-Help Is": true}
	known := func(title string) bool { return titles[title] }

	cases := []struct {
		id   string
		want LastRead
	}{
		{"", LastRead{}},
		{"Laying Plans-0", LastRead{Chapter: "Laying Plans", Line: 0}},
		{"Laying Plans-12", LastRead{Chapter: "Laying Plans", Line: 12}},
		{"Laying Plans", LastRead{Chapter: "Laying Plans", Line: -1}},
		{"Part-2", LastRead{Chapter: "Part-2", Line: -1}},
		{"Part-2-4", LastRead{Chapter: "Part-2", Line: 4}},
		{"Self-Help Is-1", LastRead{Chapter: "Self-Help Is", Line: 1}},
		{"Unknown-7", LastRead{Chapter: "Unknown", Line: 7}},
		{"no line-x", LastRead{Chapter: "no line-x", Line: -1}},
	}
	for _, tc := range cases {
		got := ParseLastRead(tc.id, known)
		if got.Chapter != tc.want.Chapter || got.Line != tc.want.Line {
			t.Fatalf("ParseLastRead(%q) = %+v, want %+v", tc.id, got, tc.want)
		}
		if tc.id != "" && got.ID() != tc.id {
			t.Fatalf("round trip %q -> %q", tc.id, got.ID())
		}
	}
}
