// ABOUTME: Tests for CLI helper functions and command execution.
// ABOUTME: Runs commands end to end against temp-dir sqlite and kv stores.
package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/agranty/no-days-lost-sub000/internal/models"
	"github.com/agranty/no-days-lost-sub000/internal/storage"
)

// resetFlags restores every package-level flag to its default between runs.
func resetFlags() {
	cfgFile, flagUser, flagBackend, flagDataDir, flagLogLevel = "", "", "", "", ""
	exerciseCategory, exerciseBodyPart, exerciseListCat = string(models.CategoryStrength), "", ""
	sessionDate, sessionDuration, sessionEffort, sessionNotes = "", 0, 0, ""
	sessionFrom, sessionTo, sessionLimit = "", "", 20
	setWeight, setReps, setUnit, setDistance, setTime, setPace = 0, 0, string(models.UnitKg), 0, 0, 0
	weightUnit, weightDate, weightNotes, weightFrom, weightTo = string(models.UnitKg), "", "", "", ""
	statsJSON, calendarMonth = false, ""
	exportOutput, exportSince = "", ""
	migrateTo, migrateDryRun, migrateForce = storage.BackendKV, false, false
	serveAddr = ""
}

type cliEnv struct {
	t       *testing.T
	dataDir string
	config  string
}

// setupTestCLI points the CLI at a temp data dir and a missing config file.
func setupTestCLI(t *testing.T) *cliEnv {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Cleanup(func() {
		resetFlags()
		_ = closeResources()
	})

	return &cliEnv{
		t:       t,
		dataDir: filepath.Join(dir, "data"),
		config:  filepath.Join(dir, "config", "ndl", "config.json"),
	}
}

func (e *cliEnv) run(args ...string) error {
	e.t.Helper()

	resetFlags()
	rootCmd.SetArgs(append([]string{"--data-dir", e.dataDir, "--config", e.config}, args...))
	err := rootCmd.Execute()
	if cerr := closeResources(); err == nil {
		err = cerr
	}
	return err
}

func (e *cliEnv) mustRun(args ...string) {
	e.t.Helper()
	if err := e.run(args...); err != nil {
		e.t.Fatalf("ndl %s failed: %v", strings.Join(args, " "), err)
	}
}

// openDB opens the sqlite store the CLI wrote to. Commands close it on exit.
func (e *cliEnv) openDB() *storage.DB {
	e.t.Helper()
	db, err := storage.Open(filepath.Join(e.dataDir, "ndl.db"))
	if err != nil {
		e.t.Fatalf("Failed to open database: %v", err)
	}
	e.t.Cleanup(func() { db.Close() })
	return db
}

// seedCatalog adds Chest, Bench Press, and Run through the CLI.
func (e *cliEnv) seedCatalog() {
	e.t.Helper()
	e.mustRun("bodypart", "add", "Chest")
	e.mustRun("exercise", "add", "Bench Press", "--category", "strength", "--body-part", "chest")
	e.mustRun("exercise", "add", "Run", "--category", "cardio")
}

// addSession logs a session for alice and returns its 8-char prefix.
func (e *cliEnv) addSession(date string) string {
	e.t.Helper()
	e.mustRun("--user", "alice", "session", "add", "--date", date, "--duration", "45", "--effort", "7")

	db := e.openDB()
	sessions, err := db.ListSessions(context.Background(), "alice", models.DateRange{})
	if err != nil {
		e.t.Fatalf("ListSessions failed: %v", err)
	}
	for _, s := range sessions {
		if s.Date.Format(models.DateLayout) == date {
			id := s.ID.String()[:8]
			db.Close()
			return id
		}
	}
	e.t.Fatalf("session on %s not found", date)
	return ""
}

func TestRootCmdFlags(t *testing.T) {
	for _, name := range []string{"config", "user", "backend", "data-dir", "log-level"} {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("Expected persistent --%s flag", name)
		}
	}
}

func TestCommandsRegistered(t *testing.T) {
	paths := [][]string{
		{"bodypart", "add"}, {"bodypart", "list"},
		{"exercise", "add"}, {"exercise", "list"},
		{"session", "add"}, {"session", "list"}, {"session", "show"}, {"session", "delete"},
		{"set", "add"}, {"set", "delete"},
		{"weight", "add"}, {"weight", "list"}, {"weight", "delete"},
		{"stats", "streaks"}, {"stats", "progress"}, {"stats", "volume"}, {"stats", "calendar"}, {"stats", "weight"},
		{"export"}, {"import"}, {"migrate"}, {"mcp"}, {"serve"},
	}
	for _, path := range paths {
		cmd, _, err := rootCmd.Find(path)
		if err != nil || cmd.Name() != path[len(path)-1] {
			t.Errorf("command %q not registered", strings.Join(path, " "))
		}
	}
}

func TestSessionDeleteAliases(t *testing.T) {
	expected := map[string]bool{"del": false, "rm": false}
	for _, alias := range sessionDeleteCmd.Aliases {
		if _, ok := expected[alias]; ok {
			expected[alias] = true
		}
	}
	for alias, found := range expected {
		if !found {
			t.Errorf("Expected alias %q for sessionDeleteCmd", alias)
		}
	}
}

func TestExportCmdValidArgs(t *testing.T) {
	expected := map[string]bool{"json": false, "yaml": false, "markdown": false}
	for _, arg := range exportCmd.ValidArgs {
		if _, ok := expected[arg]; ok {
			expected[arg] = true
		}
	}
	for arg, found := range expected {
		if !found {
			t.Errorf("Expected valid arg %q for exportCmd", arg)
		}
	}
}

func TestFormatPace(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{300, "5:00/km"},
		{259.6, "4:20/km"},
		{372.5, "6:13/km"},
		{0, "-"},
	}
	for _, tt := range tests {
		if got := formatPace(tt.in); got != tt.want {
			t.Errorf("formatPace(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		input  string
		maxLen int
		want   string
	}{
		{"hello", 10, "hello"},
		{"hello", 5, "hello"},
		{"hello world this is long", 10, "hello w..."},
	}
	for _, tt := range tests {
		if got := truncate(tt.input, tt.maxLen); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
		}
	}
}

func TestPadding(t *testing.T) {
	if got := padRight("ab", 4); got != "ab  " {
		t.Errorf("padRight = %q", got)
	}
	if got := padLeft("ab", 4); got != "  ab" {
		t.Errorf("padLeft = %q", got)
	}
	if got := padLeft("abcdef", 4); got != "abcdef" {
		t.Errorf("padLeft should not truncate, got %q", got)
	}
}

func TestDateRange(t *testing.T) {
	r, err := dateRange("2024-03-01", "2024-03-31")
	if err != nil {
		t.Fatalf("dateRange failed: %v", err)
	}
	if r.From == nil || r.To == nil || r.To.Day() != 31 {
		t.Errorf("unexpected range %+v", r)
	}

	r, err = dateRange("", "")
	if err != nil || r.From != nil || r.To != nil {
		t.Errorf("empty flags should give an open range")
	}

	if _, err := dateRange("03/01/2024", ""); err == nil {
		t.Error("expected error for bad --from")
	}
}

func TestCatalogCommands(t *testing.T) {
	env := setupTestCLI(t)
	env.seedCatalog()
	env.mustRun("exercise", "list")
	env.mustRun("bodypart", "list")

	db := env.openDB()
	bench, err := db.GetExercise("bench press")
	if err != nil {
		t.Fatalf("GetExercise failed: %v", err)
	}
	if bench.Category != models.CategoryStrength || bench.PrimaryBodyPartID == nil {
		t.Errorf("bench press stored as %+v", bench)
	}
}

func TestExerciseAddErrors(t *testing.T) {
	env := setupTestCLI(t)

	if err := env.run("exercise", "add", "Yoga Flow", "--category", "zen"); err == nil {
		t.Error("expected error for unknown category")
	}
	if err := env.run("exercise", "add", "Fly", "--body-part", "Wings"); err == nil {
		t.Error("expected error for unknown body part")
	}
}

func TestSessionAddRequiresUser(t *testing.T) {
	env := setupTestCLI(t)

	err := env.run("session", "add")
	if err == nil || !strings.Contains(err.Error(), "no user") {
		t.Errorf("expected no user error, got %v", err)
	}
}

func TestSessionAddInvalidEffort(t *testing.T) {
	env := setupTestCLI(t)

	if err := env.run("--user", "alice", "session", "add", "--effort", "11"); err == nil {
		t.Error("expected error for effort 11")
	}
	if err := env.run("--user", "alice", "session", "add", "--date", "yesterday"); err == nil {
		t.Error("expected error for bad date")
	}
}

func TestSessionWorkflow(t *testing.T) {
	env := setupTestCLI(t)
	env.seedCatalog()

	first := env.addSession("2024-03-04")
	second := env.addSession("2024-03-11")

	env.mustRun("set", "add", first, "Bench Press", "--weight", "100", "--reps", "5")
	env.mustRun("set", "add", second, "bench press", "--weight", "105", "--reps", "5")
	env.mustRun("set", "add", second, "Run", "--distance", "5000", "--time", "1500")

	db := env.openDB()
	full, err := db.GetSessionWithSets(first)
	if err != nil {
		t.Fatalf("GetSessionWithSets failed: %v", err)
	}
	if len(full.Sets) != 1 || full.Sets[0].EstimatedOneRepMax == nil || *full.Sets[0].EstimatedOneRepMax != 116.7 {
		t.Errorf("expected annotated 1RM 116.7 on first session")
	}
	full, err = db.GetSessionWithSets(second)
	if err != nil {
		t.Fatalf("GetSessionWithSets failed: %v", err)
	}
	if len(full.Sets) != 2 {
		t.Fatalf("expected 2 sets on second session, got %d", len(full.Sets))
	}
	for _, set := range full.Sets {
		if set.DistanceMeters == nil {
			continue
		}
		if p := set.PaceSecondsPerKm; p == nil || *p != 300 {
			t.Errorf("expected derived pace 300, got %v", p)
		}
	}
	db.Close()

	env.mustRun("--user", "alice", "session", "list")
	env.mustRun("--user", "alice", "session", "list", "--from", "2024-03-05", "--limit", "1")
	env.mustRun("session", "show", second)
	env.mustRun("--user", "alice", "stats", "streaks")
	env.mustRun("--user", "alice", "stats", "progress", "Bench Press")
	env.mustRun("--user", "alice", "stats", "progress", "Run", "--json")
	env.mustRun("--user", "alice", "stats", "volume")
	env.mustRun("--user", "alice", "stats", "calendar", "--month", "2024-03")

	if err := env.run("--user", "alice", "stats", "calendar", "--month", "March"); err == nil {
		t.Error("expected error for bad month")
	}
	if err := env.run("--user", "alice", "stats", "progress", "Deadlift"); err == nil {
		t.Error("expected error for unknown exercise")
	}

	env.mustRun("session", "delete", second)

	db = env.openDB()
	if _, err := db.GetSession(second); err == nil {
		t.Error("session should be deleted")
	}
	details, err := db.ListSetDetails(context.Background(), "alice", models.SetFilter{})
	if err != nil {
		t.Fatalf("ListSetDetails failed: %v", err)
	}
	if len(details) != 1 {
		t.Errorf("expected cascade to leave 1 set, got %d", len(details))
	}
}

func TestSetAddErrors(t *testing.T) {
	env := setupTestCLI(t)
	env.seedCatalog()
	id := env.addSession("2024-03-04")

	tests := []struct {
		name string
		args []string
	}{
		{"no measurements", []string{"set", "add", id, "Bench Press"}},
		{"mixed strength and cardio", []string{"set", "add", id, "Run", "--reps", "5", "--distance", "1000"}},
		{"zero reps", []string{"set", "add", id, "Bench Press", "--weight", "100"}},
		{"bad unit", []string{"set", "add", id, "Bench Press", "--weight", "100", "--reps", "5", "--unit", "stone"}},
		{"unknown session", []string{"set", "add", "ffffffff", "Bench Press", "--weight", "100", "--reps", "5"}},
		{"unknown exercise", []string{"set", "add", id, "Curl", "--weight", "20", "--reps", "10"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := env.run(tt.args...); err == nil {
				t.Errorf("expected error for %s", tt.name)
			}
		})
	}
}

func TestWeightCommands(t *testing.T) {
	env := setupTestCLI(t)

	env.mustRun("--user", "alice", "weight", "add", "80", "--date", "2024-03-04")
	env.mustRun("--user", "alice", "weight", "add", "81", "--date", "2024-03-04", "--notes", "after dinner")
	env.mustRun("--user", "alice", "weight", "add", "178", "--unit", "lb", "--date", "2024-03-05")
	env.mustRun("--user", "alice", "weight", "list")
	env.mustRun("--user", "alice", "stats", "weight")

	if err := env.run("--user", "alice", "weight", "add", "heavy"); err == nil {
		t.Error("expected error for non-numeric weight")
	}
	if err := env.run("--user", "alice", "weight", "add", "-3"); err == nil {
		t.Error("expected error for negative weight")
	}

	db := env.openDB()
	logs, err := db.ListBodyWeights(context.Background(), "alice", models.DateRange{})
	if err != nil {
		t.Fatalf("ListBodyWeights failed: %v", err)
	}
	if len(logs) != 3 {
		t.Fatalf("expected 3 raw entries, got %d", len(logs))
	}
	id := logs[0].ID.String()[:8]
	db.Close()

	env.mustRun("weight", "delete", id)

	db = env.openDB()
	logs, err = db.ListBodyWeights(context.Background(), "alice", models.DateRange{})
	if err != nil {
		t.Fatalf("ListBodyWeights failed: %v", err)
	}
	if len(logs) != 2 {
		t.Errorf("expected 2 entries after delete, got %d", len(logs))
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	env := setupTestCLI(t)
	env.seedCatalog()
	id := env.addSession("2024-03-04")
	env.mustRun("set", "add", id, "Bench Press", "--weight", "100", "--reps", "5")

	out := filepath.Join(t.TempDir(), "backup.json")
	env.mustRun("export", "json", "-o", out)
	env.mustRun("export", "yaml", "-o", filepath.Join(t.TempDir(), "backup.yaml"))
	env.mustRun("--user", "alice", "export", "markdown", "--since", "2024-03-01", "-o", filepath.Join(t.TempDir(), "log.md"))

	if err := env.run("export", "csv"); err == nil {
		t.Error("expected error for unknown format")
	}

	other := setupTestCLI(t)
	other.mustRun("--backend", "kv", "import", out)

	kv, err := storage.OpenKV(storage.KVDir(other.dataDir), nil)
	if err != nil {
		t.Fatalf("OpenKV failed: %v", err)
	}
	defer kv.Close()

	s, err := kv.GetSessionWithSets(id)
	if err != nil {
		t.Fatalf("GetSessionWithSets failed: %v", err)
	}
	if len(s.Sets) != 1 {
		t.Errorf("expected 1 imported set, got %d", len(s.Sets))
	}
}

func TestImportMissingFile(t *testing.T) {
	env := setupTestCLI(t)
	if err := env.run("import", filepath.Join(env.dataDir, "nope.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestMigrateCmd(t *testing.T) {
	env := setupTestCLI(t)
	env.seedCatalog()
	id := env.addSession("2024-03-04")
	env.mustRun("set", "add", id, "Bench Press", "--weight", "100", "--reps", "5")
	env.mustRun("--user", "alice", "weight", "add", "80", "--date", "2024-03-04")

	env.mustRun("migrate", "--to", "kv", "--dry-run")
	if _, err := os.Stat(storage.KVDir(env.dataDir)); !os.IsNotExist(err) {
		t.Fatal("dry run should not create the kv store")
	}

	env.mustRun("migrate", "--to", "kv")
	if err := env.run("migrate", "--to", "kv"); err == nil || !strings.Contains(err.Error(), "already has data") {
		t.Errorf("expected second migration to refuse, got %v", err)
	}

	// the kv backend now serves the same data
	env.mustRun("--backend", "kv", "--user", "alice", "stats", "progress", "Bench Press")

	kv, err := storage.OpenKV(storage.KVDir(env.dataDir), nil)
	if err != nil {
		t.Fatalf("OpenKV failed: %v", err)
	}
	defer kv.Close()

	s, err := kv.GetSessionWithSets(id)
	if err != nil {
		t.Fatalf("GetSessionWithSets failed: %v", err)
	}
	if len(s.Sets) != 1 {
		t.Errorf("expected migrated set, got %d", len(s.Sets))
	}
}

func TestMigrateCmdSameBackend(t *testing.T) {
	env := setupTestCLI(t)
	if err := env.run("migrate", "--to", "sqlite"); err == nil {
		t.Error("expected error migrating to the current backend")
	}
	if err := env.run("migrate", "--to", "postgres"); err == nil {
		t.Error("expected error for unknown backend")
	}
}

func TestConfigFileUser(t *testing.T) {
	env := setupTestCLI(t)
	if err := os.MkdirAll(filepath.Dir(env.config), 0750); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	if err := os.WriteFile(env.config, []byte(`{"user": "bob"}`), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	env.mustRun("session", "add", "--date", "2024-03-04")

	db := env.openDB()
	sessions, err := db.ListSessions(context.Background(), "bob", models.DateRange{})
	if err != nil {
		t.Fatalf("ListSessions failed: %v", err)
	}
	if len(sessions) != 1 {
		t.Errorf("expected session for configured user bob, got %d", len(sessions))
	}
}

func TestInvalidBackendFlag(t *testing.T) {
	env := setupTestCLI(t)
	if err := env.run("--backend", "csv", "exercise", "list"); err == nil {
		t.Error("expected error for unknown backend")
	}
}
