package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/balkashynov/onboard/internal/api"
	"github.com/balkashynov/onboard/internal/query"
	"github.com/balkashynov/onboard/internal/session"
)

// Run starts the interactive dashboard. The view shown first depends
// on the restored session and its role.
func Run(client *api.Client, store *session.Store, cache *query.Cache) error {
	model := NewAppModel(client, store, cache)

	p := tea.NewProgram(model, tea.WithAltScreen())

	// A 401 can surface inside any fetch goroutine; route it into the
	// event loop so the swap to the login view happens there.
	client.OnUnauthorized(func() {
		p.Send(unauthorizedMsg{})
	})

	_, err := p.Run()
	return err
}
