package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"deckwright/internal/history"
	"deckwright/internal/layout"
	"deckwright/internal/theme"
)

func TestThemesListsEveryTheme(t *testing.T) {
	env := setupCLITestEnv(t)
	out, _, err := runCLI(t, env, "themes")
	if err != nil {
		t.Fatalf("themes: %v", err)
	}
	requireContains(t, out, theme.IDs()...)
	requireContains(t, out, "Light Professional (default)", "#")
}

func TestLayoutsListsEveryLayout(t *testing.T) {
	env := setupCLITestEnv(t)
	out, _, err := runCLI(t, env, "layouts")
	if err != nil {
		t.Fatalf("layouts: %v", err)
	}
	for _, name := range layout.All {
		requireContains(t, out, string(name))
	}
	requireContains(t, out, "full-bleed image", "title, subtitle")
}

func TestLayoutAreas(t *testing.T) {
	got := layoutAreas(layout.Template{Title: &layout.Box{}, Image: &layout.Box{}})
	if got != "title, image" {
		t.Fatalf("layoutAreas = %q", got)
	}
	if got := layoutStyle(layout.Template{}); got != "-" {
		t.Fatalf("layoutStyle = %q, want -", got)
	}
}

func TestConfigInitWritesSampleAndRefusesOverwrite(t *testing.T) {
	env := setupCLITestEnv(t)
	target := filepath.Join(env.baseDir, "nested", "config.toml")

	out, _, err := runCLI(t, env, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration to "+target, "OPENAI_API_KEY")
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	requireContains(t, string(data), "[generation]", "[images]")

	if _, _, err := runCLI(t, env, "config", "init", "--path", target); err == nil || !strings.Contains(err.Error(), "--overwrite") {
		t.Fatalf("expected overwrite error, got %v", err)
	}
	if _, _, err := runCLI(t, env, "config", "init", "--path", target, "--overwrite"); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}
}

func TestConfigValidateReportsSettings(t *testing.T) {
	env := setupCLITestEnv(t)
	out, _, err := runCLI(t, env, "config", "validate")
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out,
		"Config path: "+env.configPath,
		"Provider: openai (default)",
		"Images: no",
		"Output directory: "+env.outputDir,
		"Notifications: no",
		"Configuration valid",
	)
}

func TestConfigValidateFailsWithoutAPIKey(t *testing.T) {
	env := setupCLITestEnv(t)
	if err := os.WriteFile(env.configPath, []byte("[generation]\nprovider = \"openai\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	_, _, err := runCLI(t, env, "config", "validate")
	if err == nil || !strings.Contains(err.Error(), "api_key is required") {
		t.Fatalf("expected api key error, got %v", err)
	}
}

func TestEnvFileIsLoadedBeforeConfig(t *testing.T) {
	env := setupCLITestEnv(t)
	os.Unsetenv("DECKWRIGHT_NTFY_TOPIC")
	envFile := filepath.Join(env.baseDir, "test.env")
	if err := os.WriteFile(envFile, []byte("DECKWRIGHT_NTFY_TOPIC=deckwright-test\n"), 0o644); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	ctx := &commandContext{logWriter: io.Discard}
	cmd := newRootCommandWith(ctx)
	var stdout strings.Builder
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"config", "validate", "--config", env.configPath, "--env-file", envFile})
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, stdout.String(), "Notifications: yes")
}

func TestLoadEnvFileIgnoresMissingFile(t *testing.T) {
	if err := loadEnvFile(filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Fatalf("loadEnvFile: %v", err)
	}
	if err := loadEnvFile(""); err != nil {
		t.Fatalf("loadEnvFile blank: %v", err)
	}
}

func TestHistoryListEmpty(t *testing.T) {
	env := setupCLITestEnv(t)
	out, _, err := runCLI(t, env, "history", "list")
	if err != nil {
		t.Fatalf("history list: %v", err)
	}
	requireContains(t, out, "No runs recorded")

	jsonOut, _, err := runCLI(t, env, "history", "list", "--json")
	if err != nil {
		t.Fatalf("history list --json: %v", err)
	}
	if strings.TrimSpace(jsonOut) != "[]" {
		t.Fatalf("expected empty JSON array, got %q", jsonOut)
	}
}

func TestHistoryListRejectsUnknownStatus(t *testing.T) {
	env := setupCLITestEnv(t)
	_, _, err := runCLI(t, env, "history", "list", "--status", "paused")
	if err == nil || !strings.Contains(err.Error(), `unknown status "paused"`) {
		t.Fatalf("expected status error, got %v", err)
	}
}

func TestHistoryShowAndRemove(t *testing.T) {
	env := setupCLITestEnv(t)
	ctx := &commandContext{configPath: env.configPath}
	store, err := ctx.openStore()
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	run := &history.Run{ID: "0f3c9a2e-1111-4d2b-9c1e-7d8f00000001", Topic: "Tidal Energy", DurationMinutes: 5, Audience: "Engineers", Language: "English", Theme: "DARK_TECH"}
	if err := store.Create(context.Background(), run); err != nil {
		t.Fatalf("create run: %v", err)
	}
	if err := store.Fail(context.Background(), run.ID, history.StatusFailed, "outline: upstream 503"); err != nil {
		t.Fatalf("fail run: %v", err)
	}
	store.Close()

	out, _, err := runCLI(t, env, "history", "show", "0f3c9a2e")
	if err != nil {
		t.Fatalf("history show: %v", err)
	}
	requireContains(t, out, "Tidal Energy", "Status:    failed", "Error:     outline: upstream 503")
	if strings.Contains(out, "Review:") {
		t.Fatalf("failed run should not show a review score:\n%s", out)
	}

	out, _, err = runCLI(t, env, "history", "rm", "0f3c")
	if err != nil {
		t.Fatalf("history rm: %v", err)
	}
	requireContains(t, out, "Removed run 0f3c9a2e")

	if _, _, err := runCLI(t, env, "history", "show", "0f3c9a2e"); err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDoctorOffline(t *testing.T) {
	env := setupCLITestEnv(t)
	out, _, err := runCLI(t, env, "doctor", "--offline")
	if err != nil {
		t.Fatalf("doctor: %v\n%s", err, out)
	}
	requireContains(t, out, "== Preflight ==", "4/4 checks passed", "State directory:", "Output free space:")
}

func TestDoctorNotifyWithoutTopicWarns(t *testing.T) {
	env := setupCLITestEnv(t)
	out, _, err := runCLI(t, env, "doctor", "--offline", "--notify")
	if err != nil {
		t.Fatalf("doctor: %v", err)
	}
	requireContains(t, out, "[WARN] ntfy topic not configured")
}

func TestRenderStatusLineNoColor(t *testing.T) {
	got := renderStatusLine("Output directory", statusError, "missing", false)
	want := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, "Output directory:", "[FAIL] missing")
	if got != want {
		t.Fatalf("renderStatusLine mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestRenderStatusLineWithColor(t *testing.T) {
	got := renderStatusLine("Summary", statusOK, "all good", true)
	if !strings.HasPrefix(got, ansiGreen) || !strings.HasSuffix(got, ansiReset) {
		t.Fatalf("expected green line, got %q", got)
	}
}

func TestShouldColorizeNonFile(t *testing.T) {
	if shouldColorize(io.Discard) {
		t.Fatalf("expected non-file writer to disable color")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("Coral", 10); got != "Coral" {
		t.Fatalf("truncate short = %q", got)
	}
	if got := truncate("Renewable energy", 6); got != "Renew…" {
		t.Fatalf("truncate long = %q", got)
	}
}
