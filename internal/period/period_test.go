package period

import (
	"errors"
	"testing"
	"time"

	"github.com/starford/brackets/internal/apperr"
	"github.com/starford/brackets/internal/storage"
)

func TestFilename(t *testing.T) {
	cases := []struct {
		kind Kind
		id   Identity
		want string
	}{
		{Weekly, Identity{2026, 1, 5}, "[2026][01]Week05.md"},
		{MonthlyTopics, Identity{2026, 1, 0}, "[2026][01]MonthTopics.md"},
		{YearTopics, Identity{Year: 2026}, "[2026][00]YearTopics.md"},
		{MonthConsolidated, Identity{2026, 1, 0}, "[2026][01].md"},
		{YearConsolidated, Identity{Year: 2026}, "[2026].md"},
	}
	for _, tc := range cases {
		if got := tc.id.Filename(tc.kind); got != tc.want {
			t.Errorf("%s: got %q, want %q", tc.kind, got, tc.want)
		}
	}
}

func TestParse_RoundTrip(t *testing.T) {
	for _, id := range []Identity{
		{2024, 12, 52},
		{2026, 1, 5},
		{2026, 9, 38},
	} {
		name := id.Filename(Weekly)
		kind, got, err := Parse(name)
		if err != nil {
			t.Fatalf("Parse(%q): %v", name, err)
		}
		if kind != Weekly || got != id {
			t.Errorf("Parse(%q) = %v %v, want Weekly %v", name, kind, got, id)
		}
	}
}

func TestParse_Kinds(t *testing.T) {
	cases := []struct {
		name string
		kind Kind
		id   Identity
	}{
		{"[2026][01]MonthTopics.md", MonthlyTopics, Identity{2026, 1, 0}},
		{"[2026][00]YearTopics.md", YearTopics, Identity{Year: 2026}},
		{"[2026][01].md", MonthConsolidated, Identity{2026, 1, 0}},
		{"[2026].md", YearConsolidated, Identity{Year: 2026}},
	}
	for _, tc := range cases {
		kind, id, err := Parse(tc.name)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tc.name, err)
		}
		if kind != tc.kind || id != tc.id {
			t.Errorf("Parse(%q) = %v %v, want %v %v", tc.name, kind, id, tc.kind, tc.id)
		}
	}
}

func TestParse_NotAPeriodFile(t *testing.T) {
	for _, name := range []string{
		"notes.md",
		"[2026]Week05.md",
		"[2026][1]Week05.md",
		"[2026][01]Week05.txt",
		"prefix[2026][01]Week05.md",
	} {
		_, _, err := Parse(name)
		if !errors.Is(err, apperr.ErrNotAPeriodFile) {
			t.Errorf("Parse(%q) err = %v, want ErrNotAPeriodFile", name, err)
		}
	}
}

func TestNextIdentity_Increment(t *testing.T) {
	id := NextIdentity(5, time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC))
	want := Identity{2026, 2, 6}
	if id != want {
		t.Errorf("got %v, want %v", id, want)
	}
}

func TestNextIdentity_WrapsAfter52(t *testing.T) {
	id := NextIdentity(52, time.Date(2027, 1, 4, 0, 0, 0, 0, time.UTC))
	want := Identity{2027, 1, 1}
	if id != want {
		t.Errorf("got %v, want %v", id, want)
	}
}

func seedVault(t *testing.T, names ...string) storage.Provider {
	t.Helper()
	fs, err := storage.NewFS(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, n := range names {
		if err := fs.Write(n, []byte("# x\n")); err != nil {
			t.Fatal(err)
		}
	}
	return fs
}

func TestFinder_MostRecentIsCalendarLatest(t *testing.T) {
	store := seedVault(t,
		"[2026][01]Week05.md",
		"[2025][12]Week52.md",
		"[2026][01]Week03.md",
		"[2026][01]MonthTopics.md",
		"notes.md",
	)
	f := NewFinder(store)

	got, err := f.MostRecent(Weekly)
	if err != nil {
		t.Fatal(err)
	}
	if got != "[2026][01]Week05.md" {
		t.Errorf("MostRecent = %q", got)
	}
}

func TestFinder_ListAscending(t *testing.T) {
	store := seedVault(t,
		"[2026][02]Week06.md",
		"[2025][12]Week52.md",
		"[2026][01]Week05.md",
	)
	f := NewFinder(store)

	entries, err := f.List(Weekly)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 {
		t.Fatalf("len = %d", len(entries))
	}
	want := []string{"[2025][12]Week52.md", "[2026][01]Week05.md", "[2026][02]Week06.md"}
	for i, e := range entries {
		if e.Path != want[i] {
			t.Errorf("entries[%d] = %q, want %q", i, e.Path, want[i])
		}
	}
}

func TestFinder_MostRecentEmpty(t *testing.T) {
	f := NewFinder(seedVault(t))
	got, err := f.MostRecent(Weekly)
	if err != nil {
		t.Fatal(err)
	}
	if got != "" {
		t.Errorf("got %q, want empty", got)
	}
}
