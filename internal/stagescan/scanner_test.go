package stagescan

import (
	"os"
	"path/filepath"
	"testing"
)

func writeArtifacts(t *testing.T, dir string, files []string, dirs []string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	for _, f := range files {
		if err := os.WriteFile(filepath.Join(dir, f), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			t.Fatal(err)
		}
	}
}

// --- inferStage ---

func TestInferStage_Progression(t *testing.T) {
	tests := []struct {
		name      string
		files     []string
		dirs      []string
		wantPhase Phase
		wantStage string
	}{
		{"empty folder", nil, nil, PhaseIdeate, "discovered"},
		{"pre-check only", []string{"pre-check.md"}, nil, PhaseIdeate, "pre-check"},
		{"draft", []string{"pre-check.md", "draft.md"}, nil, PhaseRefine, "draft"},
		{"draft under critique", []string{"draft.md", "critique.md"}, nil, PhaseRefine, "critique-draft"},
		{"spec", []string{"draft.md", "spec.md"}, nil, PhaseRefine, "spec"},
		{"spec under critique", []string{"spec.md", "critique.md"}, nil, PhaseRefine, "critique-spec"},
		{"walkthrough", []string{"spec.md", "walkthrough.md"}, nil, PhaseRefine, "walkthrough"},
		{"build started", []string{"spec.md"}, []string{"build"}, PhaseMake, "build"},
		{"qa done", []string{"spec.md", "qa-report.json"}, []string{"build"}, PhaseMake, "qa"},
		{"packaged", []string{"qa-report.json"}, []string{"build", "package"}, PhaseMake, "package"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeArtifacts(t, dir, tt.files, tt.dirs)

			phase, stage := inferStage(checkFiles(dir))
			if phase != tt.wantPhase || stage != tt.wantStage {
				t.Errorf("inferStage = (%s, %s), want (%s, %s)", phase, stage, tt.wantPhase, tt.wantStage)
			}
		})
	}
}

// --- Scan ---

func TestScan_SkipsSystemAndHiddenFolders(t *testing.T) {
	outputs := t.TempDir()
	writeArtifacts(t, filepath.Join(outputs, "order-tracker"), []string{"spec.md"}, nil)
	writeArtifacts(t, filepath.Join(outputs, "build"), []string{"spec.md"}, nil)
	writeArtifacts(t, filepath.Join(outputs, ".cache"), nil, nil)

	projects, err := Scan(outputs)
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}
	if len(projects) != 1 {
		t.Fatalf("projects = %d, want 1", len(projects))
	}
	if projects[0].Slug != "order-tracker" {
		t.Errorf("Slug = %q", projects[0].Slug)
	}
	if projects[0].Phase != PhaseRefine || projects[0].Stage != "spec" {
		t.Errorf("stage = (%s, %s), want (refine, spec)", projects[0].Phase, projects[0].Stage)
	}
}

func TestScan_IgnoresLooseFiles(t *testing.T) {
	outputs := t.TempDir()
	if err := os.WriteFile(filepath.Join(outputs, "notes.md"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	projects, err := Scan(outputs)
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}
	if len(projects) != 0 {
		t.Errorf("projects = %d, want 0", len(projects))
	}
}

func TestScan_MissingOutputsDir(t *testing.T) {
	projects, err := Scan(filepath.Join(t.TempDir(), "does-not-exist"))
	if err != nil {
		t.Fatalf("missing outputs dir should not error: %v", err)
	}
	if len(projects) != 0 {
		t.Errorf("projects = %d, want 0", len(projects))
	}
}

// --- DisplayName ---

func TestDisplayName(t *testing.T) {
	tests := []struct {
		slug string
		want string
	}{
		{"order-tracker", "Order Tracker"},
		{"mcp-weather-server", "MCP Weather Server"},
		{"single", "Single"},
	}
	for _, tt := range tests {
		if got := DisplayName(tt.slug); got != tt.want {
			t.Errorf("DisplayName(%q) = %q, want %q", tt.slug, got, tt.want)
		}
	}
}

// --- summarize ---

func TestSummarize_CountsByStatusAndPhase(t *testing.T) {
	records := []Record{
		{Slug: "a", Status: "active", Phase: PhaseIdeate},
		{Slug: "b", Status: "active", Phase: PhaseRefine},
		{Slug: "c", Status: "completed", Phase: PhaseMake},
		{Slug: "d", Status: "archived", Phase: Phase("unknown")},
	}

	sum := summarize(records)
	if sum.TotalProjects != 4 {
		t.Errorf("TotalProjects = %d, want 4", sum.TotalProjects)
	}
	if sum.ByStatus["active"] != 2 || sum.ByStatus["completed"] != 1 {
		t.Errorf("ByStatus = %v", sum.ByStatus)
	}
	if sum.ByPhase[PhaseIdeate] != 1 || sum.ByPhase[PhaseRefine] != 1 || sum.ByPhase[PhaseMake] != 1 {
		t.Errorf("ByPhase = %v", sum.ByPhase)
	}
}
