// ABOUTME: Integration tests for the ndl CLI.
// ABOUTME: Builds the binary and drives a full logging and analytics workflow.
package test

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// idFromOutput pulls the 8-char prefix from an "  ID: abcd1234" line.
func idFromOutput(t *testing.T, output string) string {
	t.Helper()
	for _, line := range strings.Split(output, "\n") {
		if id, ok := strings.CutPrefix(strings.TrimSpace(line), "ID: "); ok {
			return id
		}
	}
	t.Fatalf("no ID in output: %s", output)
	return ""
}

func TestFullWorkflow(t *testing.T) {
	// Build the binary
	projectRoot, _ := filepath.Abs("..")
	ndlBinary := filepath.Join(projectRoot, "ndl")

	buildCmd := exec.Command("go", "build", "-o", ndlBinary, "./cmd/ndl")
	buildCmd.Dir = projectRoot
	if output, err := buildCmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build: %v\n%s", err, output)
	}
	defer os.Remove(ndlBinary)

	// Use temp data and config dirs
	tmpDir := t.TempDir()
	dataDir := filepath.Join(tmpDir, "data")
	configPath := filepath.Join(tmpDir, "config.json")

	run := func(args ...string) (string, error) {
		fullArgs := append([]string{"--data-dir", dataDir, "--config", configPath, "--user", "alice", "--log-level", "error"}, args...)
		cmd := exec.Command(ndlBinary, fullArgs...)
		output, err := cmd.CombinedOutput()
		return string(output), err
	}

	// Catalog
	output, err := run("bodypart", "add", "Chest")
	if err != nil {
		t.Fatalf("Failed to add body part: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Added body part Chest") {
		t.Errorf("Expected 'Added body part Chest' in output, got: %s", output)
	}

	output, err = run("exercise", "add", "Bench Press", "--category", "strength", "--body-part", "Chest")
	if err != nil {
		t.Fatalf("Failed to add exercise: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Added strength exercise Bench Press") {
		t.Errorf("Expected 'Added strength exercise Bench Press' in output, got: %s", output)
	}

	// Two sessions a week apart, the second one a PR
	var sessions []string
	for _, day := range []string{"2024-03-04", "2024-03-11"} {
		output, err = run("session", "add", "--date", day, "--duration", "45")
		if err != nil {
			t.Fatalf("Failed to add session: %v\n%s", err, output)
		}
		if !strings.Contains(output, "Added session for alice on "+day) {
			t.Errorf("Expected session confirmation for %s, got: %s", day, output)
		}
		sessions = append(sessions, idFromOutput(t, output))
	}

	for i, weight := range []string{"100", "105"} {
		output, err = run("set", "add", sessions[i], "Bench Press", "--weight", weight, "--reps", "5")
		if err != nil {
			t.Fatalf("Failed to add set: %v\n%s", err, output)
		}
	}
	if !strings.Contains(output, "1RM 122.5") {
		t.Errorf("Expected estimated 1RM in set output, got: %s", output)
	}

	// Progress as JSON
	output, err = run("stats", "progress", "Bench Press", "--json")
	if err != nil {
		t.Fatalf("Failed to get progress: %v\n%s", err, output)
	}
	var progress struct {
		BestOneRepMax   float64 `json:"best_one_rep_max"`
		ProgressPercent float64 `json:"progress_percent"`
	}
	if err := json.Unmarshal([]byte(output), &progress); err != nil {
		t.Fatalf("Failed to parse progress JSON: %v\n%s", err, output)
	}
	if progress.BestOneRepMax != 122.5 || progress.ProgressPercent != 5 {
		t.Errorf("Expected best 122.5 and 5%% progress, got %+v", progress)
	}

	// Calendar for the month
	output, err = run("stats", "calendar", "--month", "2024-03")
	if err != nil {
		t.Fatalf("Failed to render calendar: %v\n%s", err, output)
	}
	if !strings.Contains(output, "March 2024") {
		t.Errorf("Expected 'March 2024' in calendar, got: %s", output)
	}

	// Body weight, last write of the day wins
	for _, w := range []string{"80", "81"} {
		if output, err = run("weight", "add", w, "--date", "2024-03-04"); err != nil {
			t.Fatalf("Failed to add weight: %v\n%s", err, output)
		}
	}
	output, err = run("stats", "weight", "--json")
	if err != nil {
		t.Fatalf("Failed to get weight trend: %v\n%s", err, output)
	}
	if !strings.Contains(output, "81") || strings.Contains(output, "\"weight\": 80") {
		t.Errorf("Expected deduplicated weight 81, got: %s", output)
	}

	// Move everything to the kv backend and read it back
	output, err = run("migrate", "--to", "kv")
	if err != nil {
		t.Fatalf("Failed to migrate: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Sessions:     2") {
		t.Errorf("Expected 2 migrated sessions, got: %s", output)
	}

	output, err = run("--backend", "kv", "session", "list")
	if err != nil {
		t.Fatalf("Failed to list kv sessions: %v\n%s", err, output)
	}
	if !strings.Contains(output, "2024-03-11") {
		t.Errorf("Expected '2024-03-11' in kv session list, got: %s", output)
	}
}
