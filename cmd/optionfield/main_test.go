package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"optionfield/internal/config"
	appErrors "optionfield/internal/errors"
	"optionfield/internal/ui"
)

func TestFlagOverridesOnlyVisited(t *testing.T) {
	fields := "/tmp/fields.yaml"
	hist := "/tmp/history.db"
	noHistory := true
	themeName := "nord"
	debugOn := false
	flags := runtimeFlags{
		fields:    &fields,
		history:   &hist,
		noHistory: &noHistory,
		theme:     &themeName,
		debug:     &debugOn,
	}

	got := flagOverrides(flags, map[string]struct{}{"fields": {}, "no-history": {}})
	if len(got) != 2 {
		t.Fatalf("expected two overrides, got %v", got)
	}
	if got[config.KeyFieldsPath] != fields {
		t.Fatalf("unexpected fields override %v", got[config.KeyFieldsPath])
	}
	if got[config.KeyHistoryEnabled] != false {
		t.Fatalf("expected history disabled, got %v", got[config.KeyHistoryEnabled])
	}

	if got := flagOverrides(flags, map[string]struct{}{}); len(got) != 0 {
		t.Fatalf("expected no overrides, got %v", got)
	}
}

func TestComputeRuntimeOptionsFollowsConfig(t *testing.T) {
	cleanup := config.ResetForTesting(t)
	defer cleanup()

	if err := config.ApplyOverrides(map[string]any{
		config.KeyFieldsPath:         " /x/fields.yaml ",
		config.KeyHistoryEnabled:     false,
		config.KeyDropdownMaxVisible: 0,
	}); err != nil {
		t.Fatalf("ApplyOverrides: %v", err)
	}

	opts := computeRuntimeOptions()
	if opts.fieldsPath != "/x/fields.yaml" {
		t.Fatalf("expected trimmed fields path, got %q", opts.fieldsPath)
	}
	if opts.historyEnabled {
		t.Fatal("expected history disabled")
	}
	if opts.maxVisible != config.DefaultDropdownMaxVisible {
		t.Fatalf("expected default max visible, got %d", opts.maxVisible)
	}
	if opts.width != config.DefaultDropdownWidth {
		t.Fatalf("expected default width, got %d", opts.width)
	}

	store, err := openHistory(opts)
	if err != nil || store != nil {
		t.Fatalf("expected no store when disabled, got %v %v", store, err)
	}
}

func TestOpenHistoryAtConfiguredPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "h.db")
	store, err := openHistory(runtimeOptions{historyEnabled: true, historyPath: path})
	if err != nil {
		t.Fatalf("openHistory: %v", err)
	}
	defer store.Close()
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected database file: %v", err)
	}
}

func TestLoadFields(t *testing.T) {
	t.Run("embedded sample", func(t *testing.T) {
		fields, err := loadFields("")
		if err != nil {
			t.Fatalf("loadFields: %v", err)
		}
		if len(fields) == 0 || fields[0].Name != "database_name" {
			t.Fatalf("unexpected sample fields %+v", fields)
		}
		cfg := dropdownConfig(fields[0], 50, 5)
		if cfg.Layout != ui.LayoutDetailed || cfg.CreateDialog == nil {
			t.Fatal("expected the database field to use the detailed layout")
		}
		if _, err := ui.NewDropdown(cfg, dropdownProps(fields[0]), ui.DefaultCapabilities()); err != nil {
			t.Fatalf("sample field should build: %v", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := loadFields(filepath.Join(t.TempDir(), "nope.yaml"))
		if !appErrors.IsCode(err, appErrors.CodeNotFound) {
			t.Fatalf("expected not found, got %v", err)
		}
	})
}

func TestDropdownConversion(t *testing.T) {
	fields, err := loadFields("")
	if err != nil {
		t.Fatalf("loadFields: %v", err)
	}
	model := fields[1]
	cfg := dropdownConfig(model, 40, 4)
	if !cfg.FreeText || cfg.Layout != ui.LayoutPlain || cfg.CreateDialog != nil {
		t.Fatalf("unexpected config %+v", cfg)
	}

	props := dropdownProps(fields[0])
	if len(props.Metadata) != 3 {
		t.Fatalf("expected three metadata entries, got %d", len(props.Metadata))
	}
	if props.Metadata[0].Icon != "Database" {
		t.Fatalf("expected Database icon, got %q", props.Metadata[0].Icon)
	}
	if got := props.Metadata[0].Summary(); got != "12 collections • 1200 records" {
		t.Fatalf("unexpected summary %q", got)
	}
	if got := props.Metadata[2].Summary(); got != "1 collections" {
		t.Fatalf("expected null attribute to be skipped, got %q", got)
	}

	// Props are copies; mutating them must not touch the definition.
	props.Options[0] = "changed"
	if fields[0].Options[0] != "prod" {
		t.Fatal("expected options to be copied")
	}
}

type fakeRunner struct {
	err error
	ran bool
}

func (f *fakeRunner) Run() (tea.Model, error) {
	f.ran = true
	return nil, f.err
}

func TestRunProgram(t *testing.T) {
	fields, _ := loadFields("")
	cfg := appConfig{Fields: fields, Width: 44, MaxVisible: 6, InfoStyle: "plain"}

	runner := &fakeRunner{}
	if err := runProgram(cfg, newApp, func(*app) programRunner { return runner }); err != nil {
		t.Fatalf("runProgram: %v", err)
	}
	if !runner.ran {
		t.Fatal("expected program to run")
	}

	failing := &fakeRunner{err: errors.New("boom")}
	err := runProgram(cfg, newApp, func(*app) programRunner { return failing })
	if err == nil || !strings.Contains(err.Error(), "run UI: boom") {
		t.Fatalf("expected wrapped run error, got %v", err)
	}

	if err := runProgram(appConfig{}, newApp, nil); err == nil || !strings.Contains(err.Error(), "initialize UI") {
		t.Fatalf("expected builder error, got %v", err)
	}
	if err := runProgram(cfg, newApp, nil); err == nil {
		t.Fatal("expected error for nil factory")
	}
}

func TestPrintVersion(t *testing.T) {
	var buf bytes.Buffer
	printVersion(&buf)
	out := buf.String()
	if !strings.HasPrefix(out, "optionfield version "+Version) {
		t.Fatalf("unexpected version output %q", out)
	}
	if !strings.Contains(out, "Go version:") {
		t.Fatalf("expected Go version line, got %q", out)
	}
}

func TestRunVersionFlag(t *testing.T) {
	cleanup := config.ResetForTesting(t)
	defer cleanup()

	var stdout, stderr bytes.Buffer
	if code := run([]string{"-version"}, &stdout, &stderr); code != 0 {
		t.Fatalf("expected exit 0, got %d (%s)", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "optionfield version") {
		t.Fatalf("unexpected output %q", stdout.String())
	}
	if code := run([]string{"-unknown"}, &stdout, &stderr); code != 2 {
		t.Fatalf("expected exit 2 for bad flag, got %d", code)
	}
}
