package main

import (
	"context"
	_ "embed"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"optionfield/internal/config"
	"optionfield/internal/debug"
	"optionfield/internal/fieldspec"
	"optionfield/internal/history"
	"optionfield/internal/ui/theme"
)

//go:embed sample_fields.yaml
var sampleFields []byte

const openHistoryTimeout = 5 * time.Second

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	console := debug.Console(slog.LevelInfo)

	if err := config.Initialize(); err != nil {
		fmt.Fprintf(stderr, "Error initializing config: %v\n", err)
		return 1
	}

	fs := flag.NewFlagSet("optionfield", flag.ContinueOnError)
	fs.SetOutput(stderr)
	flags := runtimeFlags{
		version:   fs.Bool("version", false, "Print version information and exit"),
		fields:    fs.String("fields", config.GetString(config.KeyFieldsPath), "Path to a field definition file (YAML)"),
		history:   fs.String("history", config.GetString(config.KeyHistoryPath), "Path to the selection history database"),
		noHistory: fs.Bool("no-history", false, "Do not record selections"),
		theme:     fs.String("theme", config.GetString(config.KeyTheme), "Color theme"),
		debug:     fs.Bool("debug", config.GetBool(config.KeyDebug), "Write a debug log to ~/.optionfield/debug.log"),
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if *flags.version {
		printVersion(stdout)
		return 0
	}

	visited := map[string]struct{}{}
	fs.Visit(func(f *flag.Flag) {
		visited[f.Name] = struct{}{}
	})
	if err := config.ApplyOverrides(flagOverrides(flags, visited)); err != nil {
		fmt.Fprintf(stderr, "Error applying flags: %v\n", err)
		return 1
	}
	opts := computeRuntimeOptions()

	if err := debug.Init(opts.debug); err != nil {
		console.Warn("debug logging unavailable", "err", err)
	}
	defer debug.Close()

	if !theme.SetTheme(opts.theme) {
		console.Warn("unknown theme, using default", "theme", opts.theme, "available", strings.Join(theme.Available(), ", "))
	}

	fields, err := loadFields(opts.fieldsPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	for _, f := range fields {
		for _, w := range f.Warnings {
			console.Warn("field definition", "field", f.Name, "warning", w)
		}
	}

	store, err := openHistory(opts)
	if err != nil {
		console.Warn("selection history disabled", "err", err)
	}
	var recorder selectionRecorder
	if store != nil {
		recorder = store
		defer store.Close()
	}

	infoStyle := "light"
	if lipgloss.HasDarkBackground() {
		infoStyle = "dark"
	}
	cfg := appConfig{
		Fields:     fields,
		Width:      opts.width,
		MaxVisible: opts.maxVisible,
		InfoStyle:  infoStyle,
		History:    recorder,
		SaveTheme:  config.SaveTheme,
	}
	if err := runProgram(cfg, newApp, func(m *app) programRunner {
		return tea.NewProgram(m, tea.WithAltScreen())
	}); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

type programRunner interface {
	Run() (tea.Model, error)
}

type programFactory func(*app) programRunner

func runProgram(cfg appConfig, builder func(appConfig) (*app, error), factory programFactory) error {
	m, err := builder(cfg)
	if err != nil {
		return fmt.Errorf("initialize UI: %w", err)
	}
	if factory == nil {
		return fmt.Errorf("program factory is nil")
	}
	prog := factory(m)
	if prog == nil {
		return fmt.Errorf("program is nil")
	}
	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("run UI: %w", err)
	}
	return nil
}

type runtimeFlags struct {
	version   *bool
	fields    *string
	history   *string
	noHistory *bool
	theme     *string
	debug     *bool
}

type runtimeOptions struct {
	fieldsPath     string
	historyPath    string
	historyEnabled bool
	theme          string
	debug          bool
	width          int
	maxVisible     int
}

// flagOverrides returns config overrides for the flags set on the command line.
func flagOverrides(flags runtimeFlags, visited map[string]struct{}) map[string]any {
	overrides := map[string]any{}
	if _, ok := visited["fields"]; ok {
		overrides[config.KeyFieldsPath] = strings.TrimSpace(*flags.fields)
	}
	if _, ok := visited["history"]; ok {
		overrides[config.KeyHistoryPath] = strings.TrimSpace(*flags.history)
	}
	if _, ok := visited["no-history"]; ok && *flags.noHistory {
		overrides[config.KeyHistoryEnabled] = false
	}
	if _, ok := visited["theme"]; ok {
		overrides[config.KeyTheme] = strings.TrimSpace(*flags.theme)
	}
	if _, ok := visited["debug"]; ok {
		overrides[config.KeyDebug] = *flags.debug
	}
	return overrides
}

func computeRuntimeOptions() runtimeOptions {
	opts := runtimeOptions{
		fieldsPath:     strings.TrimSpace(config.GetString(config.KeyFieldsPath)),
		historyPath:    strings.TrimSpace(config.GetString(config.KeyHistoryPath)),
		historyEnabled: config.GetBool(config.KeyHistoryEnabled),
		theme:          strings.TrimSpace(config.GetString(config.KeyTheme)),
		debug:          config.GetBool(config.KeyDebug),
		width:          config.GetInt(config.KeyDropdownWidth),
		maxVisible:     config.GetInt(config.KeyDropdownMaxVisible),
	}
	if opts.width <= 0 {
		opts.width = config.DefaultDropdownWidth
	}
	if opts.maxVisible <= 0 {
		opts.maxVisible = config.DefaultDropdownMaxVisible
	}
	return opts
}

// loadFields reads the definition file, or the embedded sample when no path
// is configured.
func loadFields(path string) ([]fieldspec.Field, error) {
	if path == "" {
		return fieldspec.Parse(sampleFields)
	}
	return fieldspec.Load(path)
}

// openHistory returns nil without error when history is disabled.
func openHistory(opts runtimeOptions) (*history.Store, error) {
	if !opts.historyEnabled {
		return nil, nil
	}
	path := opts.historyPath
	if path == "" {
		p, err := config.DefaultHistoryPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	ctx, cancel := context.WithTimeout(context.Background(), openHistoryTimeout)
	defer cancel()
	return history.Open(ctx, path)
}
