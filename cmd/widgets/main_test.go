package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/evanschultz/widgets/internal/config"
	"github.com/evanschultz/widgets/internal/domain"
	"github.com/evanschultz/widgets/internal/tui"
)

// TestMain sets deterministic environment defaults for CLI tests.
func TestMain(m *testing.M) {
	_ = os.Setenv("WIDGETS_DEV_MODE", "false")
	_ = os.Unsetenv("WIDGETS_CONFIG")
	_ = os.Unsetenv("WIDGETS_CATALOG_URL")
	os.Exit(m.Run())
}

// fakeProgram represents fake program data used by this package.
type fakeProgram struct {
	runErr error
}

// Run runs the requested command flow.
func (f fakeProgram) Run() (tea.Model, error) {
	return nil, f.runErr
}

func useFakeProgram(t *testing.T, p program) *[]tea.Model {
	t.Helper()
	origFactory := programFactory
	t.Cleanup(func() { programFactory = origFactory })
	var started []tea.Model
	programFactory = func(m tea.Model) program {
		started = append(started, m)
		return p
	}
	return &started
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func newCatalogServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func configLogging(level string) config.LoggingConfig {
	return config.LoggingConfig{Level: level}
}

func TestRunVersion(t *testing.T) {
	var out strings.Builder
	err := run(context.Background(), []string{"--version"}, &out, io.Discard)
	if err != nil {
		t.Fatalf("run(version) error = %v", err)
	}
	if !strings.Contains(out.String(), "widgets") || !strings.Contains(out.String(), version) {
		t.Fatalf("expected version output, got %q", out.String())
	}
}

func TestRunPathsCommand(t *testing.T) {
	var out strings.Builder
	err := run(context.Background(), []string{"--app", "widgetsx", "--dev", "paths"}, &out, io.Discard)
	if err != nil {
		t.Fatalf("run(paths) error = %v", err)
	}
	output := out.String()
	for _, want := range []string{"app: widgetsx", "dev_mode: true", "config: ", "data_dir: "} {
		if !strings.Contains(output, want) {
			t.Fatalf("expected %q in paths output, got %q", want, output)
		}
	}
}

func TestRunPathsUsesAppNameFromEnv(t *testing.T) {
	t.Setenv("WIDGETS_APP_NAME", "gadgets")
	var out strings.Builder
	if err := run(context.Background(), []string{"paths"}, &out, io.Discard); err != nil {
		t.Fatalf("run(paths) error = %v", err)
	}
	if !strings.Contains(out.String(), "app: gadgets") || !strings.Contains(out.String(), "dev_mode: false") {
		t.Fatalf("unexpected paths output %q", out.String())
	}
}

func TestRunStartsProgram(t *testing.T) {
	started := useFakeProgram(t, fakeProgram{})

	cfgPath := filepath.Join(t.TempDir(), "missing.toml")
	if err := run(context.Background(), []string{"--config", cfgPath}, io.Discard, io.Discard); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if len(*started) != 1 {
		t.Fatalf("expected one program start, got %d", len(*started))
	}
	if _, ok := (*started)[0].(tui.Model); !ok {
		t.Fatalf("expected tui.Model, got %T", (*started)[0])
	}
}

func TestRunStartsProgramWithSQLiteBackend(t *testing.T) {
	started := useFakeProgram(t, fakeProgram{})

	cfgPath := writeConfig(t, `
[storage]
backend = "sqlite"

[[todo.tasks]]
title = "Water plants"

[ui]
start_screen = "search"
`)
	if err := run(context.Background(), []string{"--config", cfgPath, "--screen", "Toggle"}, io.Discard, io.Discard); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if len(*started) != 1 {
		t.Fatalf("expected one program start, got %d", len(*started))
	}
}

func TestRunWrapsProgramError(t *testing.T) {
	useFakeProgram(t, fakeProgram{runErr: errors.New("tty gone")})

	cfgPath := filepath.Join(t.TempDir(), "missing.toml")
	err := run(context.Background(), []string{"--config", cfgPath}, io.Discard, io.Discard)
	if err == nil || !strings.Contains(err.Error(), "run tui program") || !strings.Contains(err.Error(), "tty gone") {
		t.Fatalf("expected wrapped program error, got %v", err)
	}
}

func TestRunRejectsInvalidLoggingLevelFromConfig(t *testing.T) {
	useFakeProgram(t, fakeProgram{})

	cfgPath := writeConfig(t, "[logging]\nlevel = \"loud\"\n")
	err := run(context.Background(), []string{"--config", cfgPath}, io.Discard, io.Discard)
	if err == nil || !strings.Contains(err.Error(), "logging.level") {
		t.Fatalf("expected logging level error, got %v", err)
	}
}

func TestRunRejectsUnknownScreen(t *testing.T) {
	started := useFakeProgram(t, fakeProgram{})

	cfgPath := filepath.Join(t.TempDir(), "missing.toml")
	err := run(context.Background(), []string{"--config", cfgPath, "--screen", "settings"}, io.Discard, io.Discard)
	if err == nil || !strings.Contains(err.Error(), "ui.start_screen") {
		t.Fatalf("expected start screen error, got %v", err)
	}
	if len(*started) != 0 {
		t.Fatal("expected program not started")
	}
}

func TestRunRejectsUnknownCommand(t *testing.T) {
	useFakeProgram(t, fakeProgram{})
	if err := run(context.Background(), []string{"bogus"}, io.Discard, io.Discard); err == nil {
		t.Fatal("expected unknown command error")
	}
}

func TestRunConfigInitWritesLoadableDefaults(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "nested", "config.toml")

	var out strings.Builder
	if err := run(context.Background(), []string{"--config", cfgPath, "config", "init"}, &out, io.Discard); err != nil {
		t.Fatalf("run(config init) error = %v", err)
	}
	if !strings.Contains(out.String(), cfgPath) {
		t.Fatalf("expected written path in output, got %q", out.String())
	}
	loaded, err := config.Load(cfgPath, config.Default())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Catalog.URL != config.DefaultCatalogURL || len(loaded.Todo.Tasks) != 2 {
		t.Fatalf("unexpected written config %#v", loaded)
	}

	err = run(context.Background(), []string{"--config", cfgPath, "config", "init"}, io.Discard, io.Discard)
	if !errors.Is(err, config.ErrConfigExists) {
		t.Fatalf("expected ErrConfigExists, got %v", err)
	}
	if err := run(context.Background(), []string{"--config", cfgPath, "config", "init", "--force"}, io.Discard, io.Discard); err != nil {
		t.Fatalf("run(config init --force) error = %v", err)
	}
}

func TestRunCatalogCommandPrintsItems(t *testing.T) {
	srv := newCatalogServer(t, http.StatusOK, `[
		{"id": 1, "title": "Backpack", "price": 109.95, "description": "Fits laptops", "category": "bags"},
		{"id": "sku-2", "title": "Jacket", "description": "Warm"}
	]`)
	cfgPath := filepath.Join(t.TempDir(), "missing.toml")

	var out strings.Builder
	err := run(context.Background(), []string{"--config", cfgPath, "--catalog-url", srv.URL, "catalog"}, &out, io.Discard)
	if err != nil {
		t.Fatalf("run(catalog) error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus two rows, got %q", out.String())
	}
	if !strings.HasPrefix(lines[0], "ID") || !strings.Contains(lines[0], "PRICE") {
		t.Fatalf("unexpected header %q", lines[0])
	}
	if !strings.Contains(lines[1], "Backpack") || !strings.Contains(lines[1], "109.95") {
		t.Fatalf("unexpected first row %q", lines[1])
	}
	if !strings.Contains(lines[2], "sku-2") || !strings.HasSuffix(strings.TrimSpace(lines[2]), "-") {
		t.Fatalf("unexpected second row %q", lines[2])
	}
}

func TestRunCatalogCommandReadsURLFromEnv(t *testing.T) {
	srv := newCatalogServer(t, http.StatusOK, `[{"id": 7, "title": "Lamp"}]`)
	t.Setenv("WIDGETS_CATALOG_URL", srv.URL)
	cfgPath := filepath.Join(t.TempDir(), "missing.toml")

	var out strings.Builder
	if err := run(context.Background(), []string{"--config", cfgPath, "catalog"}, &out, io.Discard); err != nil {
		t.Fatalf("run(catalog) error = %v", err)
	}
	if !strings.Contains(out.String(), "Lamp") {
		t.Fatalf("expected item from env URL, got %q", out.String())
	}
}

func TestRunCatalogCommandPrintsFallback(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
	}{
		{name: "server error", status: http.StatusInternalServerError, body: "oops"},
		{name: "malformed body", status: http.StatusOK, body: `{"products": []}`},
		{name: "empty list", status: http.StatusOK, body: `[]`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := newCatalogServer(t, tc.status, tc.body)
			cfgPath := filepath.Join(t.TempDir(), "missing.toml")

			var out strings.Builder
			err := run(context.Background(), []string{"--config", cfgPath, "--catalog-url", srv.URL, "catalog"}, &out, io.Discard)
			if !errors.Is(err, errCatalogUnavailable) {
				t.Fatalf("expected errCatalogUnavailable, got %v", err)
			}
			if strings.TrimSpace(out.String()) != tui.CatalogFallbackText {
				t.Fatalf("expected fallback text, got %q", out.String())
			}
		})
	}
}

func TestRunDevModeCreatesWorkspaceLogFile(t *testing.T) {
	useFakeProgram(t, fakeProgram{})

	workspace := t.TempDir()
	if err := os.WriteFile(filepath.Join(workspace, "go.mod"), []byte("module example.com/test\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	t.Chdir(workspace)

	cfgPath := filepath.Join(workspace, "config.toml")
	var stderr bytes.Buffer
	if err := run(context.Background(), []string{"--dev", "--config", cfgPath}, io.Discard, &stderr); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if got := strings.TrimSpace(stderr.String()); got != "" {
		t.Fatalf("expected no runtime stderr output in TUI mode, got %q", got)
	}

	logDir := filepath.Join(workspace, ".widgets", "log")
	entries, err := os.ReadDir(logDir)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	var logPath string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".log") {
			logPath = filepath.Join(logDir, entry.Name())
			break
		}
	}
	if logPath == "" {
		t.Fatalf("expected a .log file in %s, got %v", logDir, entries)
	}
	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(content), "starting tui program loop") {
		t.Fatalf("expected runtime log file to include TUI lifecycle entries, got %q", content)
	}
}

func TestRuntimeLoggerConsoleToggle(t *testing.T) {
	var buf bytes.Buffer
	logger, err := newRuntimeLogger(&buf, "widgets", false, configLogging("debug"), nil)
	if err != nil {
		t.Fatalf("newRuntimeLogger() error = %v", err)
	}
	logger.Info("visible event")
	logger.SetConsoleEnabled(false)
	logger.Warn("hidden event")
	if !strings.Contains(buf.String(), "visible event") || strings.Contains(buf.String(), "hidden event") {
		t.Fatalf("unexpected console output %q", buf.String())
	}
	if logger.DevLogPath() != "" {
		t.Fatalf("expected no dev log outside dev mode, got %q", logger.DevLogPath())
	}
	if err := logger.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	if _, err := newRuntimeLogger(io.Discard, "widgets", false, configLogging("chatty"), nil); err == nil {
		t.Fatal("expected invalid level error")
	}
}

func TestWorkspaceRootFromUsesNearestMarker(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "go.mod"), []byte("module example.com/test\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	nested := filepath.Join(root, "cmd", "widgets")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	got := workspaceRootFrom(nested)
	if filepath.Clean(got) != filepath.Clean(root) {
		t.Fatalf("expected workspace root %q, got %q", root, got)
	}
}

func TestDevLogFilePathResolvesAgainstWorkspaceRoot(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "go.mod"), []byte("module example.com/test\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	nested := filepath.Join(root, "cmd", "widgets")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	t.Chdir(nested)

	got, err := devLogFilePath(".widgets/log", "my app", time.Date(2026, 2, 22, 12, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("devLogFilePath() error = %v", err)
	}
	normalize := func(p string) string {
		return strings.TrimPrefix(filepath.Clean(p), "/private")
	}
	want := filepath.Join(root, ".widgets", "log", "my-app-20260222.log")
	if normalize(got) != normalize(want) {
		t.Fatalf("expected log path %q, got %q", want, got)
	}
}

func TestSanitizeLogFileStem(t *testing.T) {
	cases := map[string]string{
		"widgets":      "widgets",
		" a/b:c ":      "a-b-c",
		"  ":           "widgets",
		"--":           "widgets",
		`team\widgets`: "team-widgets",
	}
	for in, want := range cases {
		if got := sanitizeLogFileStem(in); got != want {
			t.Fatalf("sanitizeLogFileStem(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseBoolEnv(t *testing.T) {
	t.Setenv("WIDGETS_BOOL_TEST", "true")
	if v, ok := parseBoolEnv("WIDGETS_BOOL_TEST"); !ok || !v {
		t.Fatalf("expected true, got %t %t", v, ok)
	}
	t.Setenv("WIDGETS_BOOL_TEST", "nope")
	if _, ok := parseBoolEnv("WIDGETS_BOOL_TEST"); ok {
		t.Fatal("expected invalid bool to be ignored")
	}
	t.Setenv("WIDGETS_BOOL_TEST", "")
	if _, ok := parseBoolEnv("WIDGETS_BOOL_TEST"); ok {
		t.Fatal("expected empty value to be ignored")
	}
}

func TestWriteCatalogTable(t *testing.T) {
	price := 3.5
	var out strings.Builder
	err := writeCatalogTable(&out, []domain.RemoteItem{
		{ID: "1", Title: "Mug", Price: &price},
		{ID: "2", Title: "Spoon"},
	})
	if err != nil {
		t.Fatalf("writeCatalogTable() error = %v", err)
	}
	want := "ID  TITLE  PRICE\n1   Mug    3.50\n2   Spoon  -\n"
	if out.String() != want {
		t.Fatalf("writeCatalogTable() = %q, want %q", out.String(), want)
	}
}
