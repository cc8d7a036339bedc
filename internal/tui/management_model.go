package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/onboard/internal/api"
	"github.com/balkashynov/onboard/internal/models"
	"github.com/balkashynov/onboard/internal/query"
)

type mgmtTab int

const (
	tabOverview mgmtTab = iota
	tabRisks
	tabEmployees
	tabAlerts
)

var tabNames = []string{"Overview", "Risks", "Employees", "Alerts"}

type mgmtTickMsg struct{}

type mgmtSummaryMsg struct {
	summary models.DashboardSummary
	err     error
}

type mgmtRisksMsg struct {
	risks []models.RiskEntry
	err   error
}

type mgmtStatsMsg struct {
	stats models.RiskStats
	err   error
}

type mgmtEmployeesMsg struct {
	employees []models.Employee
	err       error
}

type mgmtAlertsMsg struct {
	alerts []models.Alert
	err    error
}

type mgmtFocusMsg struct {
	focus []models.CriticalFocus
	err   error
}

type mgmtImprovedMsg struct {
	improved []models.ImprovedEmployee
	err      error
}

type mgmtHeatmapMsg struct {
	cells []models.HeatmapCell
	err   error
}

// managementModel is the HR/admin dashboard: KPI overview, risk
// board, employee roster and the alert feed.
type managementModel struct {
	ctx    context.Context
	client *api.Client
	cache  *query.Cache
	sess   models.Session

	tab      mgmtTab
	selected int

	summary   models.DashboardSummary
	stats     models.RiskStats
	risks     []models.RiskEntry
	employees []models.Employee
	alerts    []models.Alert
	focus     []models.CriticalFocus
	improved  []models.ImprovedEmployee
	heatmap   []models.HeatmapCell

	loading bool
	notice  string

	width  int
	height int
}

func newManagementModel(ctx context.Context, client *api.Client, cache *query.Cache, sess models.Session) managementModel {
	return managementModel{
		ctx:     ctx,
		client:  client,
		cache:   cache,
		sess:    sess,
		loading: true,
	}
}

func (m managementModel) Init() tea.Cmd {
	return tea.Batch(append(m.fetchAll(false), m.tick())...)
}

func (m managementModel) tick() tea.Cmd {
	return tea.Tick(query.DefaultRefetchInterval, func(time.Time) tea.Msg {
		return mgmtTickMsg{}
	})
}

// fetchAll issues every dashboard query through the cache: within the
// stale window these are served locally, and concurrent callers for
// the same key share one request.
func (m managementModel) fetchAll(refresh bool) []tea.Cmd {
	ctx, client, cache := m.ctx, m.client, m.cache

	get := func(key string, fetch func(context.Context) (any, error), wrap func(any, error) tea.Msg) tea.Cmd {
		return func() tea.Msg {
			var data any
			var err error
			if refresh {
				data, err = cache.Refresh(ctx, key, fetch)
			} else {
				data, err = cache.Get(ctx, key, 0, fetch)
			}
			return wrap(data, err)
		}
	}

	return []tea.Cmd{
		get(keyDashboardSummary,
			func(ctx context.Context) (any, error) { return client.Dashboard.Summary(ctx) },
			func(data any, err error) tea.Msg {
				summary, _ := data.(models.DashboardSummary)
				return mgmtSummaryMsg{summary: summary, err: err}
			}),
		get(keyRiskStats,
			func(ctx context.Context) (any, error) { return client.Risks.Stats(ctx) },
			func(data any, err error) tea.Msg {
				stats, _ := data.(models.RiskStats)
				return mgmtStatsMsg{stats: stats, err: err}
			}),
		get(keyRisks,
			func(ctx context.Context) (any, error) { return client.Risks.List(ctx) },
			func(data any, err error) tea.Msg {
				risks, _ := data.([]models.RiskEntry)
				return mgmtRisksMsg{risks: risks, err: err}
			}),
		get(keyEmployees,
			func(ctx context.Context) (any, error) { return client.Employees.List(ctx) },
			func(data any, err error) tea.Msg {
				employees, _ := data.([]models.Employee)
				return mgmtEmployeesMsg{employees: employees, err: err}
			}),
		get(keyAlerts,
			func(ctx context.Context) (any, error) { return client.Alerts.List(ctx) },
			func(data any, err error) tea.Msg {
				alerts, _ := data.([]models.Alert)
				return mgmtAlertsMsg{alerts: alerts, err: err}
			}),
		get(keyCriticalFocus,
			func(ctx context.Context) (any, error) { return client.Dashboard.CriticalFocus(ctx) },
			func(data any, err error) tea.Msg {
				focus, _ := data.([]models.CriticalFocus)
				return mgmtFocusMsg{focus: focus, err: err}
			}),
		get(keyTopImproved,
			func(ctx context.Context) (any, error) { return client.Dashboard.TopImproved(ctx) },
			func(data any, err error) tea.Msg {
				improved, _ := data.([]models.ImprovedEmployee)
				return mgmtImprovedMsg{improved: improved, err: err}
			}),
		get(keyRiskHeatmap,
			func(ctx context.Context) (any, error) { return client.Dashboard.RiskHeatmap(ctx) },
			func(data any, err error) tea.Msg {
				cells, _ := data.([]models.HeatmapCell)
				return mgmtHeatmapMsg{cells: cells, err: err}
			}),
	}
}

func (m managementModel) Update(msg tea.Msg) (managementModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case mgmtTickMsg:
		return m, tea.Batch(append(m.fetchAll(true), m.tick())...)

	case mgmtSummaryMsg:
		m.loading = false
		if msg.err != nil {
			m.notice = noticeFor(msg.err)
			return m, nil
		}
		m.summary = msg.summary
		return m, nil

	case mgmtStatsMsg:
		if msg.err == nil {
			m.stats = msg.stats
		}
		return m, nil

	case mgmtRisksMsg:
		if msg.err == nil {
			m.risks = msg.risks
		}
		return m, nil

	case mgmtEmployeesMsg:
		if msg.err == nil {
			m.employees = msg.employees
		}
		return m, nil

	case mgmtAlertsMsg:
		if msg.err == nil {
			m.alerts = msg.alerts
		}
		return m, nil

	case mgmtFocusMsg:
		if msg.err == nil {
			m.focus = msg.focus
		}
		return m, nil

	case mgmtImprovedMsg:
		if msg.err == nil {
			m.improved = msg.improved
		}
		return m, nil

	case mgmtHeatmapMsg:
		if msg.err == nil {
			m.heatmap = msg.cells
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc":
			return m, func() tea.Msg { return logoutMsg{} }
		case "tab", "right", "l":
			m.tab = (m.tab + 1) % mgmtTab(len(tabNames))
			m.selected = 0
		case "shift+tab", "left", "h":
			m.tab = (m.tab + mgmtTab(len(tabNames)) - 1) % mgmtTab(len(tabNames))
			m.selected = 0
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
		case "down", "j":
			if m.selected < len(m.risks)-1 {
				m.selected++
			}
		case "r":
			m.notice = ""
			return m, tea.Batch(m.fetchAll(true)...)
		}
	}
	return m, nil
}

func (m managementModel) View() string {
	var b strings.Builder

	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentMain)).
		Bold(true).
		Render("onboard · management")
	b.WriteString(title + "  ")
	b.WriteString(lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorSecondaryText)).
		Render(fmt.Sprintf("%s (%s)", m.sess.Name, m.sess.Role)))
	b.WriteString("\n\n")

	for i, name := range tabNames {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDisabledText))
		if mgmtTab(i) == m.tab {
			style = style.Foreground(lipgloss.Color(ColorAccentBright)).Bold(true)
		}
		b.WriteString(style.Render(name))
		if i < len(tabNames)-1 {
			b.WriteString("  ")
		}
	}
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString("Analyzing workforce data...\n")
	} else {
		switch m.tab {
		case tabOverview:
			b.WriteString(m.renderOverview())
		case tabRisks:
			b.WriteString(m.renderRisks())
		case tabEmployees:
			b.WriteString(m.renderEmployees())
		case tabAlerts:
			b.WriteString(m.renderAlerts())
		}
	}

	if m.notice != "" {
		b.WriteString("\n" + lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorWarning)).
			Render(m.notice) + "\n")
	}

	b.WriteString("\n" + lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Render("tab: switch panel • r: refresh • q: logout"))

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func (m managementModel) renderOverview() string {
	var b strings.Builder

	highRisk := m.stats.Warning + m.stats.Critical
	pct := 0
	if m.stats.TotalUsers > 0 {
		pct = highRisk * 100 / m.stats.TotalUsers
	}

	kpi := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
	b.WriteString(kpi.Render(fmt.Sprintf("Monitored: %d    High risk: %d (%d%%)    Avg completion: %.1f%%",
		m.summary.TotalUsers, highRisk, pct, m.summary.AvgCompletion)) + "\n")
	b.WriteString(kpi.Render(fmt.Sprintf("Tasks: %d/%d completed",
		m.summary.CompletedTasks, m.summary.TotalTasks)) + "\n\n")

	if len(m.focus) > 0 {
		b.WriteString(lipgloss.NewStyle().Bold(true).Render("Critical focus") + "\n")
		for _, f := range m.focus {
			b.WriteString(lipgloss.NewStyle().
				Foreground(lipgloss.Color(ColorError)).
				Render(fmt.Sprintf("  %s (%s): %d open tasks. %s",
					f.Name, f.Department, f.OpenTasks, f.RiskMessage)) + "\n")
		}
		b.WriteString("\n")
	}

	if len(m.improved) > 0 {
		b.WriteString(lipgloss.NewStyle().Bold(true).Render("Top improved") + "\n")
		for _, imp := range m.improved {
			b.WriteString(lipgloss.NewStyle().
				Foreground(lipgloss.Color(ColorSuccess)).
				Render(fmt.Sprintf("  %s %+.1f → %.1f%%", imp.Name, imp.Delta, imp.Score)) + "\n")
		}
		b.WriteString("\n")
	}

	if len(m.heatmap) > 0 {
		b.WriteString(lipgloss.NewStyle().Bold(true).Render("Departments") + "\n")
		for _, cell := range m.heatmap {
			b.WriteString(lipgloss.NewStyle().
				Foreground(lipgloss.Color(RiskColor(cell.Risk))).
				Render(fmt.Sprintf("  %-16s %2d employees  %.1f%%  %s",
					cell.Department, cell.Employees, cell.AvgScore, cell.Risk)) + "\n")
		}
	}

	return b.String()
}

func (m managementModel) renderRisks() string {
	if len(m.risks) == 0 {
		return "No risk data.\n"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%-20s %-15s %-10s %s\n", "NAME", "DEPARTMENT", "RISK", "SCORE"))
	b.WriteString(strings.Repeat("-", 56) + "\n")
	for i, e := range m.risks {
		line := fmt.Sprintf("%-20s %-15s %-10s %.1f%%", clip(e.Name, 20), clip(e.Department, 15), e.Risk, e.Score)
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(RiskColor(e.Risk)))
		if i == m.selected {
			style = style.Bold(true)
		}
		b.WriteString(style.Render(line) + "\n")
	}
	return b.String()
}

func (m managementModel) renderEmployees() string {
	if len(m.employees) == 0 {
		return "No employees.\n"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%-4s %-20s %-15s %-10s %s\n", "ID", "NAME", "DEPARTMENT", "ROLE", "RISK"))
	b.WriteString(strings.Repeat("-", 62) + "\n")
	for _, e := range m.employees {
		risk := "-"
		if e.Risk != nil {
			risk = *e.Risk
		}
		b.WriteString(fmt.Sprintf("%-4d %-20s %-15s %-10s %s\n",
			e.ID, clip(e.Name, 20), clip(e.Department, 15), e.Role, risk))
	}
	return b.String()
}

func (m managementModel) renderAlerts() string {
	if len(m.alerts) == 0 {
		return "No alerts.\n"
	}

	var b strings.Builder
	for _, a := range m.alerts {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))
		switch a.Type {
		case models.AlertCritical:
			style = style.Foreground(lipgloss.Color(ColorError))
		case models.AlertWarning:
			style = style.Foreground(lipgloss.Color(ColorWarning))
		}
		b.WriteString(style.Render(fmt.Sprintf("[%s] %s", a.Type, a.Message)) + "\n")
		b.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorDisabledText)).
			Render("      "+a.CreatedAt.Format("2006-01-02 15:04")+" · "+a.Sender) + "\n")
	}
	return b.String()
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
