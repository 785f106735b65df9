package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/teskalabs/asab-console/internal/api"
	"github.com/teskalabs/asab-console/internal/logging"
	"github.com/teskalabs/asab-console/internal/logging/events"
	"github.com/teskalabs/asab-console/internal/ui/command"
	tea "github.com/charmbracelet/bubbletea"
)

const requestTimeout = 15 * time.Second

type itemLoadedMsg struct {
	gen  uint64
	path string
	item api.Item
	err  error
}

type itemSavedMsg struct {
	gen     uint64
	path    string
	content string
	err     error
}

type itemDisabledMsg struct {
	gen      uint64
	path     string
	disabled bool
	err      error
}

type helpLoadedMsg struct {
	topic   string
	content string
	err     error
}

func (m *Model) loadItemCmd(gen uint64, path string) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		item, err := svc.Item(ctx, path)
		if err != nil {
			logging.Error(err)
		}
		return itemLoadedMsg{gen: gen, path: path, item: item, err: err}
	}
}

func (m *Model) saveItemCmd(gen uint64, path, content string) tea.Cmd {
	svc := m.svc
	return m.bus.Execute(command.Request{
		ID:    "item:save",
		Label: path,
		Run: func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
			defer cancel()
			err := svc.SaveItem(ctx, path, content)
			if err != nil {
				logging.Error(err)
			}
			return itemSavedMsg{gen: gen, path: path, content: content, err: err}
		},
	})
}

func (m *Model) toggleDisabledCmd(gen uint64, path string, disabled bool) tea.Cmd {
	svc := m.svc
	return m.bus.Execute(command.Request{
		ID:    "item:disable",
		Label: fmt.Sprintf("%s disabled=%t", path, disabled),
		Run: func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
			defer cancel()
			err := svc.SetItemDisabled(ctx, path, disabled)
			if err != nil {
				logging.Error(err)
			}
			return itemDisabledMsg{gen: gen, path: path, disabled: disabled, err: err}
		},
	})
}

func (m *Model) loadHelpCmd(topic string) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		content, err := svc.Help(ctx, topic)
		return helpLoadedMsg{topic: topic, content: content, err: err}
	}
}

func (m *Model) handleItemLoadedMsg(msg tea.Msg) tea.Cmd {
	loaded, ok := msg.(itemLoadedMsg)
	if !ok {
		return nil
	}
	if loaded.err != nil {
		if m.buffer.FetchFailed(loaded.gen) {
			m.errMsg = loaded.err.Error()
		}
		return nil
	}
	if !m.buffer.CommitFetch(loaded.gen, loaded.item) {
		events.Editor.StaleDrop(loaded.path, loaded.gen)
		return nil
	}
	m.errMsg = ""
	return nil
}

func (m *Model) handleItemSavedMsg(msg tea.Msg) tea.Cmd {
	saved, ok := msg.(itemSavedMsg)
	if !ok {
		return nil
	}
	m.loading = false
	m.pendingOp = ""
	if saved.err != nil {
		m.errMsg = saved.err.Error()
		m.forceClearInfo()
		// The textarea was blurred when the save was dispatched; give
		// focus back so the user can keep editing and retry.
		if m.mode == ModeEdit {
			return m.textarea.Focus()
		}
		return nil
	}
	if !m.buffer.CommitSave(saved.gen, saved.content) {
		events.Editor.StaleDrop(saved.path, saved.gen)
		return nil
	}
	events.Editor.Saved(saved.path)
	m.mode = ModeBrowse
	m.errMsg = ""
	if m.verbose {
		m.setInfo(fmt.Sprintf("Saved %s", saved.path))
	}
	if m.backend != nil {
		m.backend.Refresh()
	}
	return nil
}

func (m *Model) handleItemDisabledMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(itemDisabledMsg)
	if !ok {
		return nil
	}
	m.loading = false
	m.pendingOp = ""
	if result.err != nil {
		m.errMsg = result.err.Error()
		m.forceClearInfo()
		return nil
	}
	state := api.ItemEnabled
	if result.disabled {
		state = api.ItemDisabled
	}
	if !m.buffer.CommitDisabled(result.gen, state) {
		events.Editor.StaleDrop(result.path, result.gen)
		return nil
	}
	events.Editor.DisabledToggled(result.path, result.disabled)
	m.errMsg = ""
	if m.verbose {
		verb := "Enabled"
		if result.disabled {
			verb = "Disabled"
		}
		m.setInfo(fmt.Sprintf("%s %s", verb, result.path))
	}
	if m.backend != nil {
		m.backend.Refresh()
	}
	return nil
}

func (m *Model) handleHelpLoadedMsg(msg tea.Msg) tea.Cmd {
	loaded, ok := msg.(helpLoadedMsg)
	if !ok {
		return nil
	}
	if loaded.topic != m.helpTopic {
		return nil
	}
	m.helpLoading = false
	if loaded.err != nil {
		m.helpText = ""
		return nil
	}
	m.helpText = loaded.content
	return nil
}
