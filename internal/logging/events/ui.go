package events

import "github.com/teskalabs/asab-console/internal/logging"

type UITracer struct{}

type FilterTracer struct{}

type EditorTracer struct{}

type CommandTracer struct{}

var (
	UI      = UITracer{}
	Filter  = FilterTracer{}
	Editor  = EditorTracer{}
	Command = CommandTracer{}
)

func (UITracer) TreeSelect(key, kind string) {
	logging.Trace("tree.select", map[string]interface{}{"key": key, "type": kind})
}

func (UITracer) TreeToggle(key string, open bool) {
	logging.Trace("tree.toggle", map[string]interface{}{"key": key, "open": open})
}

func (UITracer) TreeCursor(key string, cursor int) {
	logging.Trace("tree.cursor", map[string]interface{}{"key": key, "cursor": cursor})
}

func (UITracer) TreeRebuilt(records int, kept int) {
	logging.Trace("tree.rebuilt", map[string]interface{}{"records": records, "openKept": kept})
}

func (UITracer) MenuEnter(name, url string) {
	logging.Trace("menu.enter", map[string]interface{}{"name": name, "url": url})
}

func (FilterTracer) Cleared() {
	logging.Trace("filter.clear", nil)
}

func (FilterTracer) Append(filter string) {
	logging.Trace("filter.append", map[string]interface{}{"filter": filter})
}

func (FilterTracer) Backspace(filter string) {
	logging.Trace("filter.backspace", map[string]interface{}{"filter": filter})
}

func (FilterTracer) WordBackspace(filter string) {
	logging.Trace("filter.word-backspace", map[string]interface{}{"filter": filter})
}

func (FilterTracer) Cursor(pos int) {
	logging.Trace("filter.cursor", map[string]interface{}{"cursor": pos})
}

func (EditorTracer) Open(path string, gen uint64) {
	logging.Trace("editor.open", map[string]interface{}{"path": path, "gen": gen})
}

func (EditorTracer) StaleDrop(path string, gen uint64) {
	logging.Trace("editor.stale-drop", map[string]interface{}{"path": path, "gen": gen})
}

func (EditorTracer) Saved(path string) {
	logging.Trace("editor.saved", map[string]interface{}{"path": path})
}

func (EditorTracer) Cancelled(path string) {
	logging.Trace("editor.cancelled", map[string]interface{}{"path": path})
}

func (EditorTracer) DisabledToggled(path string, disabled bool) {
	logging.Trace("editor.disabled-toggled", map[string]interface{}{"path": path, "disabled": disabled})
}

func (CommandTracer) Queue(id, label string) {
	logging.Trace("command.queue", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Skip(id, label string) {
	logging.Trace("command.skip", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Result(id, label, msgType string) {
	logging.Trace("command.result", map[string]interface{}{"id": id, "label": label, "msg": msgType})
}
