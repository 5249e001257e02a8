package ui

import tea "github.com/charmbracelet/bubbletea"

// DropdownSelectedMsg requests that the owner of the dropdown's value change
// it. Silent marks the clear issued when the field becomes disabled, so
// owners that only react to user choices can skip it.
type DropdownSelectedMsg struct {
	ID          string
	Value       string
	Metadata    OptionMetadata
	HasMetadata bool
	Silent      bool
}

// DropdownCreateRequestedMsg carries the values submitted in the creation
// dialog. Creating the option is up to the owner.
type DropdownCreateRequestedMsg struct {
	ID     string
	Values map[string]string
}

// DropdownRefreshRequestedMsg is emitted by the "Refresh list" action.
// The dropdown applies no effect of its own.
type DropdownRefreshRequestedMsg struct {
	ID string
}

// DropdownCopiedMsg reports a ctrl+y copy of the current value.
type DropdownCopiedMsg struct {
	ID    string
	Value string
	Err   error
}

// dialogResultMsg tags a DialogClosedMsg with the dropdown that opened the
// dialog, so hosts can broadcast messages to every field.
type dialogResultMsg struct {
	id     string
	closed DialogClosedMsg
}

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

// tagDialogCmd rewrites DialogClosedMsg results of cmd into dialogResultMsg
// for the dropdown id. Batches are tagged recursively.
func tagDialogCmd(id string, cmd tea.Cmd) tea.Cmd {
	if cmd == nil {
		return nil
	}
	return func() tea.Msg {
		switch msg := cmd().(type) {
		case DialogClosedMsg:
			return dialogResultMsg{id: id, closed: msg}
		case tea.BatchMsg:
			tagged := make(tea.BatchMsg, len(msg))
			for i, c := range msg {
				tagged[i] = tagDialogCmd(id, c)
			}
			return tagged
		default:
			return msg
		}
	}
}
