package logbuffer

import (
	"errors"
	"fmt"
	"math/rand"
	"regexp"
	"sort"
	"testing"

	"github.com/uplog-tools/uplogview/internal/gateway"
)

func rec(id int, category, message string) gateway.LogRecord {
	return gateway.LogRecord{
		ID: id,
		Record: gateway.RecordBody{
			Level:    gateway.LevelInfo,
			Category: category,
			Message:  message,
		},
	}
}

func ids(records []gateway.LogRecord) []int {
	out := make([]int, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func equalIDs(a []int, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestAppendKeepsHistorySorted(t *testing.T) {
	b := New()
	b.Replace([]gateway.LogRecord{rec(5, "net", "start")})

	batches := [][]gateway.LogRecord{
		{rec(9, "db", "q1"), rec(7, "db", "q2")},
		{rec(6, "net", "ack"), rec(12, "io", "flush")},
		{rec(10, "io", "read")},
	}
	for _, batch := range batches {
		b.Append(batch)
		got := ids(b.View())
		if !sort.IntsAreSorted(got) {
			t.Fatalf("view not sorted after append: %v", got)
		}
	}
	want := []int{5, 6, 7, 9, 10, 12}
	if got := ids(b.View()); !equalIDs(got, want) {
		t.Fatalf("view ids = %v, want %v", got, want)
	}
}

func TestAppendDeduplicatesByID(t *testing.T) {
	b := New()
	b.Replace([]gateway.LogRecord{rec(1, "net", "first"), rec(2, "net", "second")})

	// Overlapping page repeats id 2; the first-fetched copy wins.
	b.Append([]gateway.LogRecord{rec(2, "net", "duplicate"), rec(3, "net", "third")})

	view := b.View()
	if got := ids(view); !equalIDs(got, []int{1, 2, 3}) {
		t.Fatalf("view ids = %v, want [1 2 3]", got)
	}
	if view[1].Record.Message != "second" {
		t.Fatalf("duplicate replaced original: %q", view[1].Record.Message)
	}
}

func TestEmptyAppendIsNoOp(t *testing.T) {
	b := New()
	b.Replace([]gateway.LogRecord{rec(1, "net", "start")})
	b.Append(nil)
	b.Append([]gateway.LogRecord{})

	if got := ids(b.View()); !equalIDs(got, []int{1}) {
		t.Fatalf("view ids = %v, want [1]", got)
	}
	if id, err := b.HighestID(); err != nil || id != 1 {
		t.Fatalf("HighestID = %d, %v, want 1, nil", id, err)
	}
}

func TestReplaceDiscardsHistory(t *testing.T) {
	b := New()
	b.Replace([]gateway.LogRecord{rec(1, "net", "old"), rec(2, "net", "old")})
	b.Replace([]gateway.LogRecord{rec(10, "db", "new")})

	if got := ids(b.View()); !equalIDs(got, []int{10}) {
		t.Fatalf("view ids = %v, want [10]", got)
	}
	if id, _ := b.HighestID(); id != 10 {
		t.Fatalf("HighestID = %d, want 10", id)
	}
}

func TestRetentionBoundsView(t *testing.T) {
	b := newBuffer(100)
	var batch []gateway.LogRecord
	for i := 1; i <= 250; i++ {
		batch = append(batch, rec(i, "cat", fmt.Sprintf("msg %d", i)))
	}
	b.Replace(batch[:120])
	b.Append(batch[120:])

	view := b.View()
	if len(view) != 100 {
		t.Fatalf("view length = %d, want 100", len(view))
	}
	// Trailing window of the full history.
	if view[0].ID != 151 || view[len(view)-1].ID != 250 {
		t.Fatalf("view window = [%d..%d], want [151..250]", view[0].ID, view[len(view)-1].ID)
	}
	if b.Len() != 250 {
		t.Fatalf("history length = %d, want 250", b.Len())
	}
}

func TestFilterBeforeTruncation(t *testing.T) {
	b := newBuffer(10)
	var batch []gateway.LogRecord
	for i := 1; i <= 100; i++ {
		category := "noise"
		if i <= 5 {
			category = "rare"
		}
		batch = append(batch, rec(i, category, "msg"))
	}
	b.Replace(batch)

	// Unfiltered: trailing 10, all noise.
	if got := ids(b.View()); got[0] != 91 {
		t.Fatalf("unfiltered window starts at %d, want 91", got[0])
	}

	// A narrow filter surfaces records older than the unfiltered tail.
	b.SetFilter(regexp.MustCompile(`^rare$`))
	if got := ids(b.View()); !equalIDs(got, []int{1, 2, 3, 4, 5}) {
		t.Fatalf("filtered view ids = %v, want [1 2 3 4 5]", got)
	}

	b.SetFilter(nil)
	if got := b.View(); len(got) != 10 {
		t.Fatalf("view length after clearing filter = %d, want 10", len(got))
	}
}

func TestFilterMatchesCategoryOrMessage(t *testing.T) {
	b := New()
	b.Replace([]gateway.LogRecord{
		rec(1, "net", "start"),
		rec(2, "db", "query"),
		rec(3, "io", "network flush"),
	})
	b.SetFilter(regexp.MustCompile(`net`))

	// id 1 matches on category, id 3 on message, id 2 on neither.
	if got := ids(b.View()); !equalIDs(got, []int{1, 3}) {
		t.Fatalf("filtered view ids = %v, want [1 3]", got)
	}
}

func TestFilterScenario(t *testing.T) {
	b := New()
	b.Replace([]gateway.LogRecord{rec(1, "net", "start")})
	b.SetFilter(regexp.MustCompile(`net`))
	if got := ids(b.View()); !equalIDs(got, []int{1}) {
		t.Fatalf("view after filter = %v, want [1]", got)
	}

	b.Append([]gateway.LogRecord{rec(2, "db", "query")})
	if got := ids(b.View()); !equalIDs(got, []int{1}) {
		t.Fatalf("view after append = %v, want [1] (record 2 filtered out)", got)
	}

	b.SetFilter(nil)
	if got := ids(b.View()); !equalIDs(got, []int{1, 2}) {
		t.Fatalf("view after clearing filter = %v, want [1 2]", got)
	}
}

func TestHighestID(t *testing.T) {
	b := New()
	if _, err := b.HighestID(); !errors.Is(err, ErrEmpty) {
		t.Fatalf("HighestID on fresh buffer = %v, want ErrEmpty", err)
	}

	b.Replace([]gateway.LogRecord{rec(5, "net", "start")})
	b.Append([]gateway.LogRecord{rec(9, "db", "a"), rec(7, "db", "b")})

	id, err := b.HighestID()
	if err != nil {
		t.Fatalf("HighestID returned error: %v", err)
	}
	if id != 9 {
		t.Fatalf("HighestID = %d, want 9", id)
	}

	b.Replace(nil)
	if _, err := b.HighestID(); !errors.Is(err, ErrEmpty) {
		t.Fatalf("HighestID after Replace(nil) = %v, want ErrEmpty", err)
	}
}

func TestViewDoesNotAliasHistory(t *testing.T) {
	b := New()
	b.Replace([]gateway.LogRecord{rec(1, "net", "start"), rec(2, "db", "query")})

	view := b.View()
	view[0].Record.Message = "mutated"
	view[0].ID = 999

	b.SetFilter(nil) // force a recompute from the history
	fresh := b.View()
	if fresh[0].ID != 1 || fresh[0].Record.Message != "start" {
		t.Fatalf("history corrupted through returned view: %#v", fresh[0])
	}
}

func TestRandomAppendSequencesKeepInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	b := newBuffer(50)
	seen := 0
	for batch := 0; batch < 40; batch++ {
		n := rng.Intn(20)
		records := make([]gateway.LogRecord, 0, n)
		for i := 0; i < n; i++ {
			seen++
			records = append(records, rec(seen, "cat", "msg"))
		}
		// Shuffle within the page; the server orders pages but the buffer
		// must not depend on it.
		rng.Shuffle(len(records), func(i, j int) {
			records[i], records[j] = records[j], records[i]
		})
		b.Append(records)

		got := ids(b.View())
		if !sort.IntsAreSorted(got) {
			t.Fatalf("view unsorted after batch %d: %v", batch, got)
		}
		if len(got) > 50 {
			t.Fatalf("view exceeds retention after batch %d: %d", batch, len(got))
		}
		for i := 1; i < len(got); i++ {
			if got[i] == got[i-1] {
				t.Fatalf("duplicate id %d in view after batch %d", got[i], batch)
			}
		}
	}
}
