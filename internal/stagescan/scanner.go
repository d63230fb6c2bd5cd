// Package stagescan tracks long-lived specification projects on disk.
//
// It scans an outputs/ directory for project folders, infers each
// project's pipeline stage from which artifact files exist, and
// persists the result in a SQLite database so progress survives
// restarts.
package stagescan

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Phase is the coarse pipeline position a project can be in.
type Phase string

const (
	PhaseIdeate Phase = "ideate"
	PhaseRefine Phase = "refine"
	PhaseMake   Phase = "make"
	PhaseShip   Phase = "ship"
)

// Phases lists all phases in pipeline order.
var Phases = []Phase{PhaseIdeate, PhaseRefine, PhaseMake, PhaseShip}

// Project is the scanned state of one project folder.
type Project struct {
	Slug        string          `json:"slug"`
	DisplayName string          `json:"display_name"`
	Status      string          `json:"status"`
	Phase       Phase           `json:"phase"`
	Stage       string          `json:"stage"`
	Files       map[string]bool `json:"files"`
}

// systemFolders are pipeline working directories, not projects.
var systemFolders = map[string]bool{
	"discover": true, "analyze": true, "validate": true, "spec": true,
	"build": true, "qa": true, "package": true, "publish": true,
}

// artifactFiles are the files whose presence is checked per project.
var artifactFiles = []string{
	"pre-check.md",
	"draft.md",
	"spec.md",
	"critique.md",
	"walkthrough.md",
	"decisions.json",
	"qa-report.json",
}

// artifactDirs are checked as directories, keyed with a trailing slash.
var artifactDirs = []string{"build/", "package/"}

// stageRule maps a set of required artifacts to a phase and stage.
type stageRule struct {
	required []string
	phase    Phase
	stage    string
}

// stageRules is ordered most-advanced-first: the first rule whose
// artifacts are all present wins.
var stageRules = []stageRule{
	{[]string{"package/"}, PhaseMake, "package"},
	{[]string{"qa-report.json"}, PhaseMake, "qa"},
	{[]string{"build/"}, PhaseMake, "build"},
	{[]string{"walkthrough.md"}, PhaseRefine, "walkthrough"},
	{[]string{"spec.md", "critique.md"}, PhaseRefine, "critique-spec"},
	{[]string{"spec.md"}, PhaseRefine, "spec"},
	{[]string{"draft.md", "critique.md"}, PhaseRefine, "critique-draft"},
	{[]string{"draft.md"}, PhaseRefine, "draft"},
	{[]string{"pre-check.md"}, PhaseIdeate, "pre-check"},
}

// Scan walks outputsDir and returns the inferred state of every
// project folder, sorted by directory listing order. A missing
// outputs directory yields an empty result, not an error.
func Scan(outputsDir string) ([]Project, error) {
	entries, err := os.ReadDir(outputsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("stagescan: read outputs dir: %w", err)
	}

	var projects []Project
	for _, e := range entries {
		if !e.IsDir() || systemFolders[e.Name()] || strings.HasPrefix(e.Name(), ".") {
			continue
		}

		files := checkFiles(filepath.Join(outputsDir, e.Name()))
		phase, stage := inferStage(files)

		projects = append(projects, Project{
			Slug:        e.Name(),
			DisplayName: DisplayName(e.Name()),
			Status:      "active",
			Phase:       phase,
			Stage:       stage,
			Files:       files,
		})
	}
	return projects, nil
}

// checkFiles reports which standard artifacts exist in a project dir.
func checkFiles(projectDir string) map[string]bool {
	files := make(map[string]bool, len(artifactFiles)+len(artifactDirs))
	for _, f := range artifactFiles {
		_, err := os.Stat(filepath.Join(projectDir, f))
		files[f] = err == nil
	}
	for _, d := range artifactDirs {
		info, err := os.Stat(filepath.Join(projectDir, strings.TrimSuffix(d, "/")))
		files[d] = err == nil && info.IsDir()
	}
	return files
}

// inferStage returns the most advanced stage whose artifacts are all
// present. A folder with no recognized artifacts is newly discovered.
func inferStage(files map[string]bool) (Phase, string) {
	for _, rule := range stageRules {
		present := true
		for _, f := range rule.required {
			if !files[f] {
				present = false
				break
			}
		}
		if present {
			return rule.phase, rule.stage
		}
	}
	return PhaseIdeate, "discovered"
}

// DisplayName converts a project slug into a human-readable title.
func DisplayName(slug string) string {
	words := strings.Split(slug, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		if strings.EqualFold(w, "mcp") {
			words[i] = "MCP"
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
