// Package ui contains the Bubble Tea program that powers the admin console.
// The package is structured so the Model type focuses on message orchestration,
// while dedicated helpers own navigation, input, rendering, and state updates.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages.
//   - In edit mode, key presses go to handleEditKey so the textarea owns all
//     text entry. Every other message is routed through a typed handler
//     registry so each tea.Msg is handled by a focused function (for example,
//     navigation for key presses or backend updates).
//   - Navigation helpers (internal/ui/navigation.go) manage the current route,
//     cursor movement, and the edit/confirm workflows. Filter/input helpers
//     (internal/ui/input.go) keep all search entry concerns isolated from the
//     Bubble Tea event loop.
//
// State ownership:
//   - Tree state lives in internal/ui/state.Sidebar, which tracks the flattened
//     rows, open folders, filtering, selection, and viewport calculations. The
//     library and config screens each own one Sidebar fed from the same tree.
//   - The item being viewed or edited lives in internal/editor.Buffer, which
//     guards against stale fetch and save results with a generation counter.
//   - Screen registration and breadcrumb resolution are provided by
//     internal/navigation; the Model consults the route table on every
//     navigate call.
//   - Write operations run through the internal/ui/command package, letting
//     saves and disable toggles run asynchronously via the central command bus.
//
// Backend interactions:
//   - A backend.Watcher polls the library service; Update waits for those
//     events and hands them to applyBackendEvent, which rebuilds the tree and
//     refreshes both sidebars. A malformed listing keeps the previous tree on
//     screen and surfaces a warning instead.
//   - Item fetches, saves, and disable toggles run via tea.Cmd values returned
//     by helper functions (e.g., loadItemCmd). When one completes, the typed
//     handler for its message commits the result into the editor buffer unless
//     the buffer has moved on to a newer item.
//
// This separation keeps Model.Update compact and makes it easier to test
// independent concerns (navigation, filtering, backend sync) without needing to
// reason about the entire TUI at once.
package ui
