package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/balkashynov/onboard/internal/api"
	"github.com/balkashynov/onboard/internal/models"
	"github.com/balkashynov/onboard/internal/query"
	"github.com/balkashynov/onboard/internal/session"
)

// view identifies which sub-model is active.
type view int

const (
	viewLogin view = iota
	viewEmployee
	viewManagement
)

// unauthorizedMsg arrives when any operation got a 401; the session
// is already cleared by then.
type unauthorizedMsg struct{}

// AppModel routes between the login view and the role-gated
// dashboards. Only the active sub-model receives messages.
type AppModel struct {
	client *api.Client
	store  *session.Store
	cache  *query.Cache

	active view
	login  loginModel
	emp    employeeModel
	mgmt   managementModel

	// cancels in-flight fetches when the authenticated views go away
	ctx    context.Context
	cancel context.CancelFunc

	width  int
	height int
}

// NewAppModel picks the initial view from the restored session: no
// session means login, otherwise the dashboard for the session role.
func NewAppModel(client *api.Client, store *session.Store, cache *query.Cache) AppModel {
	m := AppModel{
		client: client,
		store:  store,
		cache:  cache,
		active: viewLogin,
		login:  newLoginModel(client),
	}

	if sess, ok := store.Current(); ok {
		m.enterDashboard(sess)
	}
	return m
}

// RouteForRole maps a session role to the post-login view.
func RouteForRole(role string) view {
	if models.IsManagement(role) {
		return viewManagement
	}
	return viewEmployee
}

func (m *AppModel) enterDashboard(sess models.Session) {
	m.ctx, m.cancel = context.WithCancel(context.Background())
	m.active = RouteForRole(sess.Role)
	if m.active == viewManagement {
		m.mgmt = newManagementModel(m.ctx, m.client, m.cache, sess)
	} else {
		m.emp = newEmployeeModel(m.ctx, m.client, m.cache, sess)
	}
}

// enterLogin tears the authenticated views down: cancel outstanding
// fetches and drop cached data so the next account starts cold.
func (m *AppModel) enterLogin() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.cache.Clear()
	m.active = viewLogin
	m.login = newLoginModel(m.client)
}

func (m AppModel) Init() tea.Cmd {
	switch m.active {
	case viewEmployee:
		return m.emp.Init()
	case viewManagement:
		return m.mgmt.Init()
	default:
		return m.login.Init()
	}
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// fall through to the active view so it can re-layout

	case unauthorizedMsg:
		if m.active != viewLogin {
			m.enterLogin()
			m.login.notice = "Session expired. Please log in again."
			return m, m.login.Init()
		}
		return m, nil

	case loginDoneMsg:
		if msg.err == nil && m.active == viewLogin {
			if err := m.store.Set(msg.session); err != nil {
				m.login.notice = "Could not persist session: " + err.Error()
				return m, nil
			}
			m.enterDashboard(msg.session)
			if m.active == viewManagement {
				return m, m.mgmt.Init()
			}
			return m, m.emp.Init()
		}

	case logoutMsg:
		m.store.Clear()
		m.enterLogin()
		return m, m.login.Init()

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			if m.cancel != nil {
				m.cancel()
			}
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	switch m.active {
	case viewEmployee:
		m.emp, cmd = m.emp.Update(msg)
	case viewManagement:
		m.mgmt, cmd = m.mgmt.Update(msg)
	default:
		m.login, cmd = m.login.Update(msg)
	}
	return m, cmd
}

func (m AppModel) View() string {
	switch m.active {
	case viewEmployee:
		return m.emp.View()
	case viewManagement:
		return m.mgmt.View()
	default:
		return m.login.View()
	}
}

// logoutMsg is emitted by any view when the user presses the logout
// key.
type logoutMsg struct{}
