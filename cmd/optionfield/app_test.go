package main

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"

	"optionfield/internal/history"
	"optionfield/internal/ui"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func newTestApp(t *testing.T, store selectionRecorder) *app {
	t.Helper()
	fields, err := loadFields("")
	if err != nil {
		t.Fatalf("loadFields: %v", err)
	}
	m, err := newApp(appConfig{
		Fields:     fields,
		Width:      60,
		MaxVisible: 6,
		InfoStyle:  "plain",
		History:    store,
	})
	if err != nil {
		t.Fatalf("newApp: %v", err)
	}
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 60})
	return m
}

func newMemoryStore(t *testing.T) *history.Store {
	t.Helper()
	s, err := history.Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("open history: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// drain runs cmd and feeds every resulting message back into the app until
// nothing is left. Only commands known not to block may reach it.
func drain(t *testing.T, m *app, cmd tea.Cmd) {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 50 {
			t.Fatal("message loop did not settle")
		}
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		msg := c()
		if batch, ok := msg.(tea.BatchMsg); ok {
			queue = append(queue, batch...)
			continue
		}
		_, next := m.Update(msg)
		queue = append(queue, next)
	}
}

func press(m *app, msg tea.KeyMsg) tea.Cmd {
	_, cmd := m.Update(msg)
	return cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewAppRequiresFields(t *testing.T) {
	if _, err := newApp(appConfig{}); err == nil {
		t.Fatal("expected error for empty field list")
	}
}

func TestFocusCycling(t *testing.T) {
	m := newTestApp(t, nil)
	n := len(m.fields)

	press(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.focus != 1 {
		t.Fatalf("expected focus 1 after tab, got %d", m.focus)
	}
	if m.fields[0].dropdown.Focused() || !m.fields[1].dropdown.Focused() {
		t.Fatal("expected focus to move between dropdowns")
	}

	press(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	press(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.focus != n-1 {
		t.Fatalf("expected shift+tab to wrap to %d, got %d", n-1, m.focus)
	}
}

func TestSelectionUpdatesValueAndHistory(t *testing.T) {
	store := newMemoryStore(t)
	m := newTestApp(t, store)

	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.fields[0].dropdown.IsOpen() {
		t.Fatal("expected enter to open the focused dropdown")
	}
	press(m, tea.KeyMsg{Type: tea.KeyDown})
	drain(t, m, press(m, tea.KeyMsg{Type: tea.KeyEnter}))

	if got := m.fields[0].props.Value; got != "staging" {
		t.Fatalf("expected host value staging, got %q", got)
	}
	if got := m.fields[0].dropdown.TriggerText(); got != "staging" {
		t.Fatalf("expected trigger to show staging, got %q", got)
	}
	if len(m.fields[0].recent) != 1 || m.fields[0].recent[0] != "staging" {
		t.Fatalf("expected recent [staging], got %v", m.fields[0].recent)
	}
	if !strings.Contains(ansi.Strip(m.View()), "Recent: staging") {
		t.Fatal("expected recent selections in the view")
	}
}

func TestDisableToggleRecordsSilentClear(t *testing.T) {
	store := newMemoryStore(t)
	m := newTestApp(t, store)

	drain(t, m, press(m, tea.KeyMsg{Type: tea.KeyCtrlD}))

	f := m.fields[0]
	if !f.props.Disabled {
		t.Fatal("expected field to be disabled")
	}
	if f.props.Value != "" {
		t.Fatalf("expected silent clear to empty the value, got %q", f.props.Value)
	}

	ctx := context.Background()
	all, err := store.Count(ctx, "database_name", true)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	user, err := store.Count(ctx, "database_name", false)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if all != 1 || user != 0 {
		t.Fatalf("expected one silent event only, got all=%d user=%d", all, user)
	}
	if !strings.Contains(ansi.Strip(m.View()), "Database (disabled)") {
		t.Fatal("expected disabled label in view")
	}
}

func TestCreateDialogAppendsOption(t *testing.T) {
	m := newTestApp(t, nil)

	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	press(m, tea.KeyMsg{Type: tea.KeyEnd})
	press(m, tea.KeyMsg{Type: tea.KeyUp})
	// The dialog's init command starts a cursor blink; it is not run.
	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.fields[0].dropdown.DialogOpen() {
		t.Fatal("expected the create dialog to open")
	}
	if !strings.Contains(ansi.Strip(m.View()), "Create New Database") {
		t.Fatal("expected the dialog to be composited into the view")
	}

	for _, r := range "my-db" {
		press(m, runes(string(r)))
	}
	drain(t, m, press(m, tea.KeyMsg{Type: tea.KeyCtrlS}))

	props := m.fields[0].props
	if last := props.Options[len(props.Options)-1]; last != "my-db" {
		t.Fatalf("expected my-db appended, got %v", props.Options)
	}
	if len(props.Metadata) != len(props.Options) {
		t.Fatalf("expected metadata to stay aligned, got %d for %d", len(props.Metadata), len(props.Options))
	}
	meta := props.Metadata[len(props.Metadata)-1]
	if meta.Summary() != "us-east1 region" {
		t.Fatalf("unexpected metadata summary %q", meta.Summary())
	}
	if m.fields[0].dropdown.DialogOpen() {
		t.Fatal("expected dialog to close after submit")
	}
}

func TestRefreshAndCopyMessagesSetStatus(t *testing.T) {
	m := newTestApp(t, nil)

	m.Update(ui.DropdownRefreshRequestedMsg{ID: "database_name"})
	if m.status != "Refresh requested for Database" {
		t.Fatalf("unexpected status %q", m.status)
	}
	m.Update(ui.DropdownCopiedMsg{ID: "database_name", Value: "prod"})
	if m.status != `Copied "prod"` {
		t.Fatalf("unexpected status %q", m.status)
	}
	m.Update(ui.DropdownCopiedMsg{ID: "database_name", Err: errors.New("no clipboard")})
	if !strings.Contains(m.status, "no clipboard") {
		t.Fatalf("unexpected status %q", m.status)
	}
}

func TestHistoryErrorsSurfaceInStatus(t *testing.T) {
	m := newTestApp(t, failingRecorder{})
	drain(t, m, m.applySelection(ui.DropdownSelectedMsg{ID: "operation", Value: "Add"}))
	if !strings.Contains(m.status, "disk full") {
		t.Fatalf("expected history error in status, got %q", m.status)
	}
}

func TestViewPlacesOverlayBelowTrigger(t *testing.T) {
	m := newTestApp(t, nil)
	press(m, tea.KeyMsg{Type: tea.KeyEnter})

	lines := strings.Split(ansi.Strip(m.View()), "\n")
	trigger, search := -1, -1
	for i, line := range lines {
		if trigger < 0 && strings.Contains(line, "prod") {
			trigger = i
		}
		if strings.Contains(line, "⌕") {
			search = i
		}
	}
	if trigger < 0 || search < 0 {
		t.Fatalf("expected trigger and search rows in view:\n%s", strings.Join(lines, "\n"))
	}
	if search <= trigger {
		t.Fatalf("expected overlay below trigger (trigger %d, search %d)", trigger, search)
	}
}

func TestThemeCycleUsesSaver(t *testing.T) {
	m := newTestApp(t, nil)
	var saved string
	m.saveTheme = func(name string) error {
		saved = name
		return nil
	}
	drain(t, m, press(m, tea.KeyMsg{Type: tea.KeyCtrlT}))
	if saved == "" {
		t.Fatal("expected theme to be saved")
	}
	if m.status != "Theme "+saved {
		t.Fatalf("unexpected status %q", m.status)
	}
}

func TestCreatedOption(t *testing.T) {
	name, attrs := createdOption(nil, map[string]string{"name": " x "})
	if name != "x" || attrs != nil {
		t.Fatalf("unexpected result %q %v", name, attrs)
	}
}

type failingRecorder struct{}

func (failingRecorder) Record(context.Context, history.Event) (history.Event, error) {
	return history.Event{}, errors.New("disk full")
}

func (failingRecorder) Recent(context.Context, string, int) ([]history.Event, error) {
	return nil, nil
}
