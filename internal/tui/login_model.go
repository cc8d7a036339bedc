package tui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/onboard/internal/api"
	"github.com/balkashynov/onboard/internal/models"
)

type loginDoneMsg struct {
	session models.Session
	err     error
}

// loginModel is the credential form shown while unauthenticated.
type loginModel struct {
	client *api.Client

	inputs  []textinput.Model
	focused int
	busy    bool
	notice  string
}

func newLoginModel(client *api.Client) loginModel {
	inputs := make([]textinput.Model, 2)

	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 120
	email.Focus()
	inputs[0] = email

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 120
	password.EchoMode = textinput.EchoPassword
	inputs[1] = password

	return loginModel{client: client, inputs: inputs}
}

func (m loginModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m loginModel) submit() tea.Cmd {
	email := strings.TrimSpace(m.inputs[0].Value())
	password := m.inputs[1].Value()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()
		sess, err := m.client.Auth.Login(ctx, email, password)
		return loginDoneMsg{session: sess, err: err}
	}
}

func (m loginModel) Update(msg tea.Msg) (loginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case loginDoneMsg:
		m.busy = false
		if msg.err != nil {
			if errors.Is(msg.err, api.ErrInvalidCredentials) {
				m.notice = "Invalid email or password."
			} else {
				m.notice = "Login failed: " + msg.err.Error()
			}
			return m, nil
		}
		return m, nil

	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		switch msg.String() {
		case "tab", "shift+tab", "up", "down":
			m.focused = (m.focused + 1) % len(m.inputs)
			for i := range m.inputs {
				if i == m.focused {
					m.inputs[i].Focus()
				} else {
					m.inputs[i].Blur()
				}
			}
			return m, textinput.Blink

		case "enter":
			if strings.TrimSpace(m.inputs[0].Value()) == "" || m.inputs[1].Value() == "" {
				m.notice = "Enter both email and password."
				return m, nil
			}
			m.busy = true
			m.notice = ""
			return m, m.submit()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	return m, cmd
}

func (m loginModel) View() string {
	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentMain)).
		Bold(true).
		Render("onboard")

	label := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))

	var b strings.Builder
	b.WriteString(title + "\n\n")
	b.WriteString(label.Render("Email") + "\n")
	b.WriteString(m.inputs[0].View() + "\n")
	b.WriteString(label.Render("Password") + "\n")
	b.WriteString(m.inputs[1].View() + "\n\n")

	if m.busy {
		b.WriteString(label.Render("Signing in...") + "\n")
	}
	if m.notice != "" {
		b.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorError)).
			Render(m.notice) + "\n")
	}

	b.WriteString("\n" + lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Render("enter: sign in • tab: switch field • ctrl+c: quit"))

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}
