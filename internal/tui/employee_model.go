package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/onboard/internal/api"
	"github.com/balkashynov/onboard/internal/models"
	"github.com/balkashynov/onboard/internal/query"
)

type empTasksMsg struct {
	tasks []models.Task
	err   error
}

type empNotificationsMsg struct {
	notifications []models.Notification
	err           error
}

type empTickMsg struct{}

type taskCompletedMsg struct {
	err error
}

type notificationReadMsg struct {
	err error
}

// employeeModel is the self-service dashboard: the onboarding
// checklist plus the notification feed.
type employeeModel struct {
	ctx    context.Context
	client *api.Client
	cache  *query.Cache
	sess   models.Session

	tasks         []models.Task
	notifications []models.Notification
	selected      int
	showNotifs    bool
	loading       bool
	notice        string

	width  int
	height int
}

func newEmployeeModel(ctx context.Context, client *api.Client, cache *query.Cache, sess models.Session) employeeModel {
	return employeeModel{
		ctx:     ctx,
		client:  client,
		cache:   cache,
		sess:    sess,
		loading: true,
	}
}

func (m employeeModel) Init() tea.Cmd {
	return tea.Batch(m.fetchTasks(false), m.fetchNotifications(false), m.tick())
}

func (m employeeModel) tick() tea.Cmd {
	return tea.Tick(query.DefaultRefetchInterval, func(time.Time) tea.Msg {
		return empTickMsg{}
	})
}

func (m employeeModel) fetchTasks(refresh bool) tea.Cmd {
	ctx, client, cache, id := m.ctx, m.client, m.cache, m.sess.ID
	return func() tea.Msg {
		fetch := func(ctx context.Context) ([]models.Task, error) {
			return client.Employees.Tasks(ctx, id)
		}
		var tasks []models.Task
		var err error
		if refresh {
			tasks, err = query.Refresh(ctx, cache, keyTasks(id), fetch)
		} else {
			tasks, err = query.Get(ctx, cache, keyTasks(id), 0, fetch)
		}
		return empTasksMsg{tasks: tasks, err: err}
	}
}

func (m employeeModel) fetchNotifications(refresh bool) tea.Cmd {
	ctx, client, cache, id := m.ctx, m.client, m.cache, m.sess.ID
	return func() tea.Msg {
		fetch := func(ctx context.Context) ([]models.Notification, error) {
			return client.Notifications.List(ctx, id)
		}
		var notifications []models.Notification
		var err error
		if refresh {
			notifications, err = query.Refresh(ctx, cache, keyNotifications(id), fetch)
		} else {
			notifications, err = query.Get(ctx, cache, keyNotifications(id), 0, fetch)
		}
		return empNotificationsMsg{notifications: notifications, err: err}
	}
}

// completeTask runs the mutation and invalidates the task list plus
// the risk aggregates that may shift server-side as a consequence.
func (m employeeModel) completeTask(taskID uint) tea.Cmd {
	ctx, client, cache, id := m.ctx, m.client, m.cache, m.sess.ID
	return func() tea.Msg {
		err := cache.Mutate(ctx, func(ctx context.Context) error {
			_, err := client.Tasks.Complete(ctx, taskID)
			return err
		}, keyTasks(id), keyRisks, keyRiskStats, keyDashboardSummary)
		return taskCompletedMsg{err: err}
	}
}

func (m employeeModel) markRead(notifID uint) tea.Cmd {
	ctx, client, cache, id := m.ctx, m.client, m.cache, m.sess.ID
	return func() tea.Msg {
		err := cache.Mutate(ctx, func(ctx context.Context) error {
			return client.Notifications.MarkRead(ctx, notifID)
		}, keyNotifications(id))
		return notificationReadMsg{err: err}
	}
}

func (m employeeModel) Update(msg tea.Msg) (employeeModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case empTickMsg:
		// Background refresh; on failure the handlers below keep the
		// old data on screen.
		return m, tea.Batch(m.fetchTasks(true), m.fetchNotifications(true), m.tick())

	case empTasksMsg:
		m.loading = false
		if msg.err != nil {
			m.notice = noticeFor(msg.err)
			return m, nil
		}
		m.tasks = msg.tasks
		if m.selected >= len(m.tasks) {
			m.selected = max(0, len(m.tasks)-1)
		}
		return m, nil

	case empNotificationsMsg:
		if msg.err == nil {
			m.notifications = msg.notifications
		}
		return m, nil

	case taskCompletedMsg:
		if msg.err != nil {
			m.notice = noticeFor(msg.err)
			return m, nil
		}
		m.notice = "Task completed."
		return m, tea.Batch(m.fetchTasks(false), m.fetchNotifications(false))

	case notificationReadMsg:
		if msg.err != nil {
			m.notice = noticeFor(msg.err)
			return m, nil
		}
		return m, m.fetchNotifications(false)

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc":
			return m, func() tea.Msg { return logoutMsg{} }
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
		case "down", "j":
			if m.selected < len(m.tasks)-1 {
				m.selected++
			}
		case "n":
			m.showNotifs = !m.showNotifs
		case "r":
			m.notice = ""
			return m, tea.Batch(m.fetchTasks(true), m.fetchNotifications(true))
		case "enter", " ":
			if m.showNotifs {
				if len(m.notifications) > 0 {
					return m, m.markRead(m.notifications[0].ID)
				}
				return m, nil
			}
			if m.selected < len(m.tasks) {
				task := m.tasks[m.selected]
				switch {
				case task.Done():
					m.notice = "Already completed."
				case task.Overdue(time.Now()):
					m.notice = "This task is overdue. Contact HR to get it rescheduled."
				default:
					return m, m.completeTask(task.ID)
				}
			}
		}
	}
	return m, nil
}

// noticeFor renders an operation failure as a non-fatal, one-line
// notice. Unauthorized never reaches here; the app model swaps to the
// login view first.
func noticeFor(err error) string {
	switch {
	case errors.Is(err, api.ErrForbidden):
		return "You don't have permission for that."
	case errors.Is(err, api.ErrNotFound):
		return "Not found, it may have been removed."
	case errors.Is(err, api.ErrTimeout):
		return "Request timed out. Showing last known data."
	case errors.Is(err, api.ErrNetwork):
		return "Network problem. Showing last known data."
	default:
		return "Something went wrong: " + err.Error()
	}
}

func (m employeeModel) View() string {
	header := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentMain)).
		Bold(true).
		Render(fmt.Sprintf("Welcome, %s", m.sess.Name))

	var b strings.Builder
	b.WriteString(header + "\n")

	done := 0
	for _, t := range m.tasks {
		if t.Done() {
			done++
		}
	}
	progress := 0
	if len(m.tasks) > 0 {
		progress = done * 100 / len(m.tasks)
	}
	b.WriteString(lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorSecondaryText)).
		Render(fmt.Sprintf("Onboarding progress: %d%% (%d/%d tasks)", progress, done, len(m.tasks))))
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString("Loading your checklist...\n")
	} else if len(m.tasks) == 0 {
		b.WriteString("No tasks assigned yet.\n")
	}

	now := time.Now()
	for i, t := range m.tasks {
		b.WriteString(m.renderTask(t, i == m.selected, now) + "\n")
	}

	if m.showNotifs {
		b.WriteString("\n" + m.renderNotifications())
	}

	if m.notice != "" {
		b.WriteString("\n" + lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorWarning)).
			Render(m.notice) + "\n")
	}

	b.WriteString("\n" + lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Render("enter: complete task • n: notifications • r: refresh • q: logout"))

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func (m employeeModel) renderTask(t models.Task, selected bool, now time.Time) string {
	marker := "[ ]"
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))

	switch {
	case t.Done():
		marker = "[x]"
		style = style.Foreground(lipgloss.Color(ColorSuccess))
	case t.Overdue(now):
		marker = "[!]"
		style = style.Foreground(lipgloss.Color(ColorWarning))
	case t.Status == models.StatusInProgress:
		marker = "[~]"
	}

	due := ""
	if t.DueDate != nil {
		due = "  due " + t.DueDate.Format("Jan 2")
	}
	action := ""
	if t.Overdue(now) {
		action = "  → contact HR"
	}

	line := fmt.Sprintf("%s %s (%s)%s%s", marker, t.Title, t.Type, due, action)
	if selected {
		return style.Foreground(lipgloss.Color(ColorAccentBright)).Render("> " + line)
	}
	return style.Render("  " + line)
}

func (m employeeModel) renderNotifications() string {
	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorPrimaryText)).
		Bold(true).
		Render("Notifications")

	var b strings.Builder
	b.WriteString(title + "\n")
	if len(m.notifications) == 0 {
		b.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorDisabledText)).
			Render("Nothing here.") + "\n")
		return b.String()
	}

	for _, n := range m.notifications {
		prefix := "•"
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))
		if !n.IsRead {
			prefix = "●"
			style = style.Foreground(lipgloss.Color(ColorPrimaryText))
		}
		b.WriteString(style.Render(fmt.Sprintf("%s %s", prefix, n.Message)) + "\n")
	}
	b.WriteString(lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Render("enter: mark newest read") + "\n")
	return b.String()
}
