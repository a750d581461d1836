package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/skillboard/internal/config"
)

func testConfig(t *testing.T, seed bool) loadConfigFunc {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Config{
		Database: config.DatabaseConfig{Path: filepath.Join(dir, "data", "sb.db"), SeedDefaults: seed},
		UI:       config.UIConfig{DateFormat: "2006-01-02", RequestTimeout: time.Second},
	}
	return func() (config.Config, error) { return cfg, nil }
}

func execute(t *testing.T, load loadConfigFunc, args ...string) (string, error) {
	t.Helper()
	return executeWith(t, load, func(config.Config) error {
		t.Fatal("unexpected config save")
		return nil
	}, args...)
}

func executeWith(t *testing.T, load loadConfigFunc, save saveConfigFunc, args ...string) (string, error) {
	t.Helper()
	root := newRootCmdWith(load, save)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestCompetenciesAddAndList(t *testing.T) {
	load := testConfig(t, false)

	out, err := execute(t, load, "competencies", "list")
	require.NoError(t, err)
	require.Contains(t, out, "No competencies yet.")

	out, err = execute(t, load, "competencies", "add", "Teamwork", "-d", "Works well with others")
	require.NoError(t, err)
	require.Contains(t, out, "Teamwork")
	require.Contains(t, out, "Works well with others")

	_, err = execute(t, load, "competencies", "add", "")
	require.Error(t, err)

	out, err = execute(t, load, "c", "list")
	require.NoError(t, err)
	require.Equal(t, 1, strings.Count(out, "Teamwork"))
}

func TestProfileUsesSeededAssessments(t *testing.T) {
	load := testConfig(t, true)

	out, err := execute(t, load, "profile")
	require.NoError(t, err)
	require.Contains(t, out, "Ada Lovelace")
	require.Contains(t, out, "/assessments/grace")

	out, err = execute(t, load, "profile", "--identity", "nobody")
	require.NoError(t, err)
	require.Contains(t, out, "No assessments available.")
}

func TestExportImportRoundTrip(t *testing.T) {
	src := testConfig(t, true)
	file := filepath.Join(t.TempDir(), "export.json")

	out, err := execute(t, src, "export", file)
	require.NoError(t, err)
	require.Contains(t, out, "exported 3 competencies")

	dst := testConfig(t, false)
	out, err = execute(t, dst, "import", file)
	require.NoError(t, err)
	require.Contains(t, out, "imported 3 competencies")

	out, err = execute(t, dst, "competencies", "list")
	require.NoError(t, err)
	require.Contains(t, out, "Leadership")
	require.Contains(t, out, "  - Coaching")
}

func TestResetRequiresConfirmation(t *testing.T) {
	load := testConfig(t, false)

	_, err := execute(t, load, "competencies", "add", "Leadership")
	require.NoError(t, err)

	_, err = execute(t, load, "reset")
	require.Error(t, err)

	out, err := execute(t, load, "reset", "--yes")
	require.NoError(t, err)
	require.Contains(t, out, "database reset")

	out, err = execute(t, load, "competencies", "list")
	require.NoError(t, err)
	require.Contains(t, out, "No competencies yet.")
}

func TestDBFlagOverridesConfig(t *testing.T) {
	load := testConfig(t, false)
	other := filepath.Join(t.TempDir(), "other.db")

	_, err := execute(t, load, "--db", other, "competencies", "add", "Coaching")
	require.NoError(t, err)

	out, err := execute(t, load, "competencies", "list")
	require.NoError(t, err)
	require.NotContains(t, out, "Coaching")

	out, err = execute(t, load, "--db", other, "competencies", "list")
	require.NoError(t, err)
	require.Contains(t, out, "Coaching")
}

func TestCompetenciesRemove(t *testing.T) {
	load := testConfig(t, true)

	out, err := execute(t, load, "competencies", "rm", "Leadership")
	require.NoError(t, err)
	require.Contains(t, out, `removed "Leadership"`)
	require.NotContains(t, out, "Delegation", "subcompetencies go with their parent")
	require.Contains(t, out, "Communication")

	_, err = execute(t, load, "competencies", "rm", "Leadership")
	require.Error(t, err)

	out, err = execute(t, load, "competencies", "add", "Teamwork")
	require.NoError(t, err)
	require.Equal(t, 2, strings.Count(out, "Teamwork"))

	_, err = execute(t, load, "competencies", "rm", "Teamwork")
	require.ErrorContains(t, err, "ambiguous")

	out, err = execute(t, load, "competencies", "rm", "Presenting")
	require.NoError(t, err)
	require.Contains(t, out, "  - Written communication")
	require.NotContains(t, out, "  - Presenting")
}

func TestProfileSaveStoresIdentity(t *testing.T) {
	load := testConfig(t, true)
	var saved []config.Config
	save := func(cfg config.Config) error {
		saved = append(saved, cfg)
		return nil
	}

	_, err := executeWith(t, load, save, "profile", "--save")
	require.Error(t, err)
	require.Empty(t, saved)

	other := filepath.Join(t.TempDir(), "other.db")
	out, err := executeWith(t, load, save, "--db", other, "profile", "--identity", "ada", "--save")
	require.NoError(t, err)
	require.Contains(t, out, `saved identity "ada"`)
	require.Len(t, saved, 1)
	require.Equal(t, "ada", saved[0].Profile.Identity)
	require.NotEqual(t, other, saved[0].Database.Path, "flag overrides are not persisted")
}

func TestStartupFailureIsLogged(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))
	logPath := filepath.Join(dir, "sb.log")
	cfg := config.Config{
		Database: config.DatabaseConfig{Path: filepath.Join(blocker, "sb.db")},
		Log:      config.LogConfig{Path: logPath, Level: "info"},
	}

	_, err := execute(t, func() (config.Config, error) { return cfg, nil }, "competencies", "list")
	require.Error(t, err)

	logged, err := os.ReadFile(logPath)
	require.NoError(t, err)
	require.Contains(t, string(logged), "startup failed")
	require.Contains(t, string(logged), "mkdir db dir")
}
