package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/teskalabs/asab-console/internal/backend"
	"github.com/teskalabs/asab-console/internal/library"
)

// Harness drives the UI model programmatically for integration tests.
type Harness struct {
	model *Model
}

// NewHarness creates a harness for the provided model.
func NewHarness(model *Model) *Harness {
	return &Harness{model: model}
}

// Send routes a message through the model and executes any returned commands.
func (h *Harness) Send(msg tea.Msg) {
	if h.model == nil {
		return
	}
	mdl, cmd := h.model.Update(msg)
	if updated, ok := mdl.(*Model); ok {
		h.model = updated
	}
	h.processCmd(cmd)
}

// SendListing feeds a library listing to the model as if the backend
// watcher had delivered it.
func (h *Harness) SendListing(records []library.Record) {
	h.Send(backendEventMsg{event: backend.Event{Records: records}})
}

// Type sends each string as a key press. Multi-rune strings that are
// not named keys (like "enter" or "ctrl+e") are sent rune by rune.
func (h *Harness) Type(keys ...string) {
	for _, key := range keys {
		for _, msg := range keyMessages(key) {
			h.Send(msg)
		}
	}
}

func keyMessages(key string) []tea.Msg {
	switch key {
	case "enter":
		return []tea.Msg{tea.KeyMsg{Type: tea.KeyEnter}}
	case "esc":
		return []tea.Msg{tea.KeyMsg{Type: tea.KeyEsc}}
	case "up":
		return []tea.Msg{tea.KeyMsg{Type: tea.KeyUp}}
	case "down":
		return []tea.Msg{tea.KeyMsg{Type: tea.KeyDown}}
	case "backspace":
		return []tea.Msg{tea.KeyMsg{Type: tea.KeyBackspace}}
	case "space":
		return []tea.Msg{tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}}
	case "ctrl+e":
		return []tea.Msg{tea.KeyMsg{Type: tea.KeyCtrlE}}
	case "ctrl+s":
		return []tea.Msg{tea.KeyMsg{Type: tea.KeyCtrlS}}
	case "ctrl+d":
		return []tea.Msg{tea.KeyMsg{Type: tea.KeyCtrlD}}
	case "ctrl+r":
		return []tea.Msg{tea.KeyMsg{Type: tea.KeyCtrlR}}
	case "ctrl+u":
		return []tea.Msg{tea.KeyMsg{Type: tea.KeyCtrlU}}
	case "ctrl+g":
		return []tea.Msg{tea.KeyMsg{Type: tea.KeyCtrlG}}
	case "ctrl+w":
		return []tea.Msg{tea.KeyMsg{Type: tea.KeyCtrlW}}
	case "f1":
		return []tea.Msg{tea.KeyMsg{Type: tea.KeyF1}}
	}
	msgs := make([]tea.Msg, 0, len(key))
	for _, r := range key {
		msgs = append(msgs, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return msgs
}

func (h *Harness) processCmd(cmd tea.Cmd) {
	for cmd != nil {
		msg := cmd()
		if msg == nil {
			return
		}
		if batch, ok := msg.(tea.BatchMsg); ok {
			for _, sub := range batch {
				h.processCmd(sub)
			}
			return
		}
		mdl, next := h.model.Update(msg)
		if updated, ok := mdl.(*Model); ok {
			h.model = updated
		}
		cmd = next
	}
}

// View returns the current view string.
func (h *Harness) View() string {
	if h.model == nil {
		return ""
	}
	return h.model.View()
}

// Model exposes the underlying model.
func (h *Harness) Model() *Model {
	return h.model
}
