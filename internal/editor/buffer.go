// Package editor holds the item edit buffer: the pristine and working
// copies of the item being viewed, the dirty/read-only state machine,
// and the generation counter that drops stale async responses.
package editor

import (
	"fmt"

	"github.com/teskalabs/asab-console/internal/api"
	"github.com/teskalabs/asab-console/internal/library"
)

// Buffer is the single edit buffer of the console. Opening a new item
// bumps the generation counter; results from fetches or saves started
// under an earlier generation are discarded on arrival.
type Buffer struct {
	path     string
	language string
	pristine string
	working  string
	disabled api.DisabledState
	loading  bool
	readOnly bool
	gen      uint64
}

// New returns an empty, read-only buffer.
func New() *Buffer {
	return &Buffer{readOnly: true}
}

// Open resets the buffer for a new item and returns the generation
// that async completions must present to be accepted.
func (b *Buffer) Open(path string) uint64 {
	b.gen++
	b.path = path
	b.language = library.LanguageForPath(path)
	b.pristine = ""
	b.working = ""
	b.disabled = api.DisabledUnknown
	b.loading = true
	b.readOnly = true
	return b.gen
}

// CommitFetch installs fetched content. It reports whether the result
// was accepted; a stale generation leaves the buffer untouched.
func (b *Buffer) CommitFetch(gen uint64, item api.Item) bool {
	if gen != b.gen {
		return false
	}
	b.pristine = item.Content
	b.working = item.Content
	b.disabled = item.Disabled
	b.loading = false
	return true
}

// FetchFailed clears the loading flag for a failed fetch. Stale
// failures are ignored the same way stale successes are.
func (b *Buffer) FetchFailed(gen uint64) bool {
	if gen != b.gen {
		return false
	}
	b.loading = false
	return true
}

// BeginEdit switches the buffer to writable. It refuses while a fetch
// is still in flight or nothing is open.
func (b *Buffer) BeginEdit() error {
	if b.path == "" {
		return fmt.Errorf("no item open")
	}
	if b.loading {
		return fmt.Errorf("item %s is still loading", b.path)
	}
	b.readOnly = false
	return nil
}

// Edit replaces the working copy. The pristine copy is never touched
// by edits; only a committed save moves it.
func (b *Buffer) Edit(text string) error {
	if b.readOnly {
		return fmt.Errorf("buffer is read-only")
	}
	b.working = text
	return nil
}

// Dirty reports whether the working copy differs from the pristine
// copy. A save is a no-op while this is false.
func (b *Buffer) Dirty() bool {
	return b.working != b.pristine
}

// CommitSave installs the saved content as the new pristine copy and
// returns the buffer to read-only. Stale saves are discarded.
func (b *Buffer) CommitSave(gen uint64, saved string) bool {
	if gen != b.gen {
		return false
	}
	b.pristine = saved
	b.working = saved
	b.readOnly = true
	return true
}

// Cancel discards local edits and returns to read-only.
func (b *Buffer) Cancel() {
	b.working = b.pristine
	b.readOnly = true
}

// CommitDisabled records the disabled state reported by the server
// after a toggle. Stale toggles are discarded.
func (b *Buffer) CommitDisabled(gen uint64, state api.DisabledState) bool {
	if gen != b.gen {
		return false
	}
	b.disabled = state
	return true
}

// Generation returns the token async completions must carry.
func (b *Buffer) Generation() uint64 { return b.gen }

func (b *Buffer) Path() string                { return b.path }
func (b *Buffer) Language() string            { return b.language }
func (b *Buffer) Pristine() string            { return b.pristine }
func (b *Buffer) Working() string             { return b.working }
func (b *Buffer) Disabled() api.DisabledState { return b.disabled }
func (b *Buffer) Loading() bool               { return b.loading }
func (b *Buffer) ReadOnly() bool              { return b.readOnly }
