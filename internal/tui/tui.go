// Package tui is an interactive terminal browser for a session's trees:
// the two display trees with their visibility checkboxes, and the grouping
// tree with keyboard drag and drop.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/papapumpkin/wellplan/internal/session"
)

// Program is an alias for tea.Program, exposed so callers don't need
// to import bubbletea directly.
type Program = tea.Program

// NewProgram creates a BubbleTea program browsing sess. The program uses
// the alternate screen buffer.
func NewProgram(sess *session.Session, opts ...tea.ProgramOption) *Program {
	allOpts := []tea.ProgramOption{tea.WithAltScreen()}
	allOpts = append(allOpts, opts...)
	return tea.NewProgram(NewModel(sess), allOpts...)
}
