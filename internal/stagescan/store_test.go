package stagescan

import (
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStore_UpsertAndList(t *testing.T) {
	store := newTestStore(t)

	p := Project{
		Slug:        "order-tracker",
		DisplayName: "Order Tracker",
		Status:      "active",
		Phase:       PhaseRefine,
		Stage:       "spec",
		Files:       map[string]bool{"spec.md": true, "draft.md": true},
	}
	if err := store.Upsert(p); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	records, err := store.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}
	got := records[0]
	if got.Slug != "order-tracker" || got.Phase != PhaseRefine || got.Stage != "spec" {
		t.Errorf("record = %+v", got)
	}
	if !got.Files["spec.md"] {
		t.Errorf("Files = %v, want spec.md present", got.Files)
	}
	if got.CreatedAt == "" || got.UpdatedAt == "" {
		t.Error("timestamps should be set by the database")
	}
}

func TestStore_UpsertAdvancesStage(t *testing.T) {
	store := newTestStore(t)

	p := Project{Slug: "app", DisplayName: "App", Status: "active", Phase: PhaseIdeate, Stage: "pre-check"}
	if err := store.Upsert(p); err != nil {
		t.Fatalf("first Upsert: %v", err)
	}

	p.Phase = PhaseMake
	p.Stage = "build"
	if err := store.Upsert(p); err != nil {
		t.Fatalf("second Upsert: %v", err)
	}

	records, err := store.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1 (upsert, not insert)", len(records))
	}
	if records[0].Phase != PhaseMake || records[0].Stage != "build" {
		t.Errorf("record = %+v, want advanced to make/build", records[0])
	}
}

func TestStore_ProjectsSurviveMissingFromScan(t *testing.T) {
	store := newTestStore(t)

	if err := store.Upsert(Project{Slug: "old", DisplayName: "Old", Status: "active", Phase: PhaseShip, Stage: "published"}); err != nil {
		t.Fatalf("Upsert old: %v", err)
	}
	if err := store.Upsert(Project{Slug: "new", DisplayName: "New", Status: "active", Phase: PhaseIdeate, Stage: "discovered"}); err != nil {
		t.Fatalf("Upsert new: %v", err)
	}

	// A later scan that only sees "new" must not drop "old".
	if err := store.Upsert(Project{Slug: "new", DisplayName: "New", Status: "active", Phase: PhaseRefine, Stage: "draft"}); err != nil {
		t.Fatalf("Upsert rescan: %v", err)
	}

	sum, err := store.Summarize()
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if sum.TotalProjects != 2 {
		t.Errorf("TotalProjects = %d, want 2", sum.TotalProjects)
	}
	if sum.ByPhase[PhaseShip] != 1 || sum.ByPhase[PhaseRefine] != 1 {
		t.Errorf("ByPhase = %v", sum.ByPhase)
	}
}
