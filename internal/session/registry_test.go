package session

import (
	"strings"
	"sync"
	"testing"
	"time"
)

func newRegistrySession(id string, created time.Time) *Session {
	return &Session{
		ID:          id,
		CreatedAt:   created,
		Requirement: "build something",
		Status:      StatusInProgress,
	}
}

// --- Put / Get ---

func TestRegistry_PutAndGet(t *testing.T) {
	r := NewRegistry()
	s := newRegistrySession("abc", time.Now())
	r.Put(s)

	got, ok := r.Get("abc")
	if !ok {
		t.Fatal("Get(abc) not found after Put")
	}
	if got != s {
		t.Error("Get returned a different session pointer")
	}
}

func TestRegistry_GetUnknownID(t *testing.T) {
	r := NewRegistry()
	if _, ok := r.Get("missing"); ok {
		t.Error("Get(missing) = ok, want not found")
	}
}

// --- List ---

func TestRegistry_List_OldestFirst(t *testing.T) {
	r := NewRegistry()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	r.Put(newRegistrySession("second", base.Add(time.Hour)))
	r.Put(newRegistrySession("first", base))
	r.Put(newRegistrySession("third", base.Add(2*time.Hour)))

	got := r.List()
	if len(got) != 3 {
		t.Fatalf("List returned %d summaries, want 3", len(got))
	}
	order := []string{got[0].ID, got[1].ID, got[2].ID}
	want := []string{"first", "second", "third"}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("List order = %v, want %v", order, want)
			break
		}
	}
}

func TestRegistry_List_TruncatesLongRequirement(t *testing.T) {
	r := NewRegistry()
	s := newRegistrySession("long", time.Now())
	s.Requirement = strings.Repeat("x", 150)
	r.Put(s)

	got := r.List()[0].Requirement
	if len(got) != maxSummaryRequirement+len("...") {
		t.Errorf("truncated requirement length = %d, want %d", len(got), maxSummaryRequirement+3)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("truncated requirement missing ellipsis: %q", got)
	}
}

func TestRegistry_List_ShortRequirementUntouched(t *testing.T) {
	r := NewRegistry()
	s := newRegistrySession("short", time.Now())
	s.Requirement = "a todo app"
	r.Put(s)

	if got := r.List()[0].Requirement; got != "a todo app" {
		t.Errorf("Requirement = %q, want unmodified original", got)
	}
}

// --- Stats ---

func TestRegistry_Stats_CountsByStatus(t *testing.T) {
	r := NewRegistry()

	active := newRegistrySession("a", time.Now())
	ready := newRegistrySession("b", time.Now())
	ready.Status = StatusReadyToGenerate
	done := newRegistrySession("c", time.Now())
	done.Status = StatusComplete

	r.Put(active)
	r.Put(ready)
	r.Put(done)

	got := r.Stats()
	if got.Total != 3 {
		t.Errorf("Total = %d, want 3", got.Total)
	}
	if got.Active != 1 {
		t.Errorf("Active = %d, want 1 (ready_to_generate is not active)", got.Active)
	}
	if got.Completed != 1 {
		t.Errorf("Completed = %d, want 1", got.Completed)
	}
}

// --- Concurrency ---

func TestRegistry_ConcurrentAccess(t *testing.T) {
	r := NewRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := string(rune('a' + n))
			r.Put(newRegistrySession(id, time.Now()))
			r.Get(id)
			r.List()
			r.Stats()
		}(i)
	}
	wg.Wait()

	if got := r.Stats().Total; got != 20 {
		t.Errorf("Total after concurrent puts = %d, want 20", got)
	}
}
