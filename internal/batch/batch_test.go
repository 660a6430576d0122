package batch

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nexustech101/particlebox/internal/storage"
)

const scenarioYAML = `name: smoke
description: two tiny runs
steps:
  - preset: sparse
    count: 4
    frames: 12
    seed: 7
    save_as: first
  - width: 300
    height: 200
    count: 3
    frames: 8
    seed: 9
    save_as: second
`

func writeScenario(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadScenario(t *testing.T) {
	sc, err := LoadScenario(writeScenario(t, scenarioYAML))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if sc.Name != "smoke" {
		t.Errorf("expected name smoke, got %q", sc.Name)
	}
	if len(sc.Steps) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(sc.Steps))
	}
	if sc.Steps[0].Preset != "sparse" || sc.Steps[0].SaveAs != "first" {
		t.Errorf("step 0 parsed wrong: %+v", sc.Steps[0])
	}
}

func TestLoadScenario_Empty(t *testing.T) {
	if _, err := LoadScenario(writeScenario(t, "name: hollow\n")); err == nil {
		t.Error("expected error for scenario without steps")
	}
}

func TestLoadScenario_Missing(t *testing.T) {
	if _, err := LoadScenario(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestStepConfig_Overrides(t *testing.T) {
	step := Step{Preset: "sparse", Count: 5, Seed: 11, SaveAs: "mine"}
	cfg := step.Config()

	if cfg.Count != 5 {
		t.Errorf("override lost: count %d", cfg.Count)
	}
	if cfg.Width != 1000 {
		t.Errorf("preset base lost: width %g", cfg.Width)
	}
	if cfg.Name != "mine" || cfg.Seed != 11 {
		t.Errorf("save_as/seed lost: %+v", cfg)
	}
}

func TestStepConfig_DefaultsWithoutPreset(t *testing.T) {
	cfg := Step{Count: 2}.Config()
	if cfg.Width <= 0 || cfg.Height <= 0 {
		t.Errorf("expected default arena, got %gx%g", cfg.Width, cfg.Height)
	}
	if cfg.Count != 2 {
		t.Errorf("expected count override 2, got %d", cfg.Count)
	}
}

func TestRunScenario(t *testing.T) {
	sc, err := LoadScenario(writeScenario(t, scenarioYAML))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	store := storage.New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	results, err := RunScenario(context.Background(), sc, store, &out)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Name != "first" || results[1].Name != "second" {
		t.Errorf("step names wrong: %+v", results)
	}
	if results[0].RunID == results[1].RunID {
		t.Error("steps shared a run id")
	}
	if results[0].Frames != 12 || results[1].Frames != 8 {
		t.Errorf("frame counts wrong: %+v", results)
	}

	runs, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Errorf("expected 2 stored runs, got %d", len(runs))
	}
	if !strings.Contains(out.String(), "step 1/2") {
		t.Errorf("missing progress output: %q", out.String())
	}
}

func TestRunScenario_StepErrorNamesStep(t *testing.T) {
	sc := &Scenario{
		Name: "broken",
		Steps: []Step{
			{Count: 2, Frames: 5, Width: 200, Height: 200},
			{Count: 500, Radius: 50, Width: 100, Height: 100, Frames: 5}, // cannot be placed
		},
	}

	store := storage.New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}

	results, err := RunScenario(context.Background(), sc, store, &bytes.Buffer{})
	if err == nil {
		t.Fatal("expected placement failure")
	}
	if !strings.Contains(err.Error(), "step 2") {
		t.Errorf("error should name the failing step: %v", err)
	}
	if len(results) != 1 {
		t.Errorf("expected the first step's result to survive, got %d", len(results))
	}
}

func TestRunScenario_Canceled(t *testing.T) {
	sc := &Scenario{Name: "c", Steps: []Step{{Count: 2, Frames: 100000, Width: 200, Height: 200}}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := storage.New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}

	if _, err := RunScenario(ctx, sc, store, &bytes.Buffer{}); err == nil {
		t.Error("expected context error")
	}
}
