package command

import (
	"fmt"

	"github.com/teskalabs/asab-console/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

// Request encapsulates an asynchronous console operation, typically a
// library mutation.
type Request struct {
	ID    string
	Label string
	Run   func() tea.Msg
}

// Bus coordinates the execution of console operations.
type Bus struct{}

// New initialises a command bus instance.
func New() *Bus {
	return &Bus{}
}

// Execute wraps an operation into a Bubble Tea command while emitting
// trace logs around it.
func (b *Bus) Execute(req Request) tea.Cmd {
	events.Command.Queue(req.ID, req.Label)
	return func() tea.Msg {
		if req.Run == nil {
			events.Command.Skip(req.ID, req.Label)
			return nil
		}
		msg := req.Run()
		events.Command.Result(req.ID, req.Label, fmt.Sprintf("%T", msg))
		return msg
	}
}
