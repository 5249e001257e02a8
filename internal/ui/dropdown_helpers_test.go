package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func newTestDropdown(t *testing.T, cfg DropdownConfig, props DropdownProps) Dropdown {
	t.Helper()
	if cfg.ID == "" {
		cfg.ID = "field"
	}
	d, err := NewDropdown(cfg, props, DefaultCapabilities())
	if err != nil {
		t.Fatalf("NewDropdown returned error: %v", err)
	}
	d.Focus()
	return d
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(d Dropdown, s string) Dropdown {
	for _, r := range s {
		d, _ = d.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return d
}

func pressDown(d Dropdown, n int) Dropdown {
	for i := 0; i < n; i++ {
		d, _ = d.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	return d
}

// runCmd executes a command that is known to emit a single message
// synchronously. Cursor blink commands must never be passed here.
func runCmd(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command, got nil")
	}
	return cmd()
}

func selectedMsg(t *testing.T, cmd tea.Cmd) DropdownSelectedMsg {
	t.Helper()
	msg, ok := runCmd(t, cmd).(DropdownSelectedMsg)
	if !ok {
		t.Fatalf("expected DropdownSelectedMsg, got %T", msg)
	}
	return msg
}

func plain(s string) string {
	return ansi.Strip(s)
}
