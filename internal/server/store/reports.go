package store

import (
	"sort"
	"time"

	"github.com/balkashynov/onboard/internal/models"
)

// The aggregate queries below compose the wire shapes directly; they
// are read-only and serve both the dashboard and reports surfaces.

func riskOf(u User) string {
	if u.Risk == nil || *u.Risk == "" {
		return models.RiskNeutral
	}
	return *u.Risk
}

// RiskBoard lists every onboarding employee with completion score and
// the stored risk assessment.
func (s *Store) RiskBoard() ([]models.RiskEntry, error) {
	users, err := s.Employees()
	if err != nil {
		return nil, err
	}

	entries := make([]models.RiskEntry, 0, len(users))
	for _, u := range users {
		tasks, err := s.TasksForUser(u.ID)
		if err != nil {
			return nil, err
		}
		entries = append(entries, models.RiskEntry{
			UserID:     u.ID,
			Name:       u.Name,
			Department: u.Department,
			Risk:       riskOf(u),
			Score:      completionPercent(tasks),
		})
	}
	return entries, nil
}

func (s *Store) RiskStats() (models.RiskStats, error) {
	users, err := s.Employees()
	if err != nil {
		return models.RiskStats{}, err
	}

	stats := models.RiskStats{TotalUsers: len(users)}
	for _, u := range users {
		switch riskOf(u) {
		case models.RiskGood:
			stats.Good++
		case models.RiskWarning:
			stats.Warning++
		case models.RiskCritical:
			stats.Critical++
		default:
			stats.Neutral++
		}
	}
	return stats, nil
}

func (s *Store) DashboardSummary() (models.DashboardSummary, error) {
	stats, err := s.RiskStats()
	if err != nil {
		return models.DashboardSummary{}, err
	}

	var totalTasks, completedTasks int64
	if err := s.db.Model(&Task{}).Count(&totalTasks).Error; err != nil {
		return models.DashboardSummary{}, err
	}
	if err := s.db.Model(&Task{}).
		Where("status = ?", models.StatusCompleted).
		Count(&completedTasks).Error; err != nil {
		return models.DashboardSummary{}, err
	}

	avg := 0.0
	if totalTasks > 0 {
		avg = float64(completedTasks) / float64(totalTasks) * 100
	}
	return models.DashboardSummary{
		TotalUsers:     stats.TotalUsers,
		TotalTasks:     int(totalTasks),
		CompletedTasks: int(completedTasks),
		AvgCompletion:  avg,
		AtRisk:         stats.Warning,
		Critical:       stats.Critical,
	}, nil
}

// RiskTrend buckets the last `days` days: completions per day, items
// that came due that day and are still open, and the subset of those
// owned by critical-risk employees.
func (s *Store) RiskTrend(days int, now time.Time) ([]models.RiskTrendPoint, error) {
	var tasks []Task
	if err := s.db.Find(&tasks).Error; err != nil {
		return nil, err
	}
	users, err := s.Employees()
	if err != nil {
		return nil, err
	}
	criticalOwner := make(map[uint]bool, len(users))
	for _, u := range users {
		criticalOwner[u.ID] = riskOf(u) == models.RiskCritical
	}

	points := make([]models.RiskTrendPoint, 0, days)
	for i := days - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		point := models.RiskTrendPoint{Date: day.Format("2006-01-02")}
		for _, t := range tasks {
			if t.CompletedAt != nil && sameDay(*t.CompletedAt, day) {
				point.Good++
			}
			if t.Status != models.StatusCompleted && t.DueDate != nil && sameDay(*t.DueDate, day) {
				point.Warning++
				if criticalOwner[t.AssignedTo] {
					point.Critical++
				}
			}
		}
		points = append(points, point)
	}
	return points, nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// Heatmap groups employees by department with average completion.
// The cell's risk bucket is derived from the average here on the
// server; clients render it verbatim.
func (s *Store) Heatmap() ([]models.HeatmapCell, error) {
	users, err := s.Employees()
	if err != nil {
		return nil, err
	}

	type acc struct {
		count int
		total float64
	}
	byDept := make(map[string]*acc)
	for _, u := range users {
		dept := u.Department
		if dept == "" {
			dept = "Unassigned"
		}
		tasks, err := s.TasksForUser(u.ID)
		if err != nil {
			return nil, err
		}
		a, ok := byDept[dept]
		if !ok {
			a = &acc{}
			byDept[dept] = a
		}
		a.count++
		a.total += completionPercent(tasks)
	}

	cells := make([]models.HeatmapCell, 0, len(byDept))
	for dept, a := range byDept {
		avg := a.total / float64(a.count)
		risk := models.RiskGood
		switch {
		case avg < 40:
			risk = models.RiskCritical
		case avg < 60:
			risk = models.RiskWarning
		case avg < 80:
			risk = models.RiskNeutral
		}
		cells = append(cells, models.HeatmapCell{
			Department: dept,
			Employees:  a.count,
			AvgScore:   avg,
			Risk:       risk,
		})
	}
	sort.Slice(cells, func(i, j int) bool { return cells[i].Department < cells[j].Department })
	return cells, nil
}

// TopImproved ranks employees by completion gained since their stored
// assessment snapshot.
func (s *Store) TopImproved(limit int) ([]models.ImprovedEmployee, error) {
	users, err := s.Employees()
	if err != nil {
		return nil, err
	}

	improved := make([]models.ImprovedEmployee, 0, len(users))
	for _, u := range users {
		tasks, err := s.TasksForUser(u.ID)
		if err != nil {
			return nil, err
		}
		score := completionPercent(tasks)
		baseline := 0.0
		if u.Score != nil {
			baseline = float64(*u.Score)
		}
		improved = append(improved, models.ImprovedEmployee{
			UserID: u.ID,
			Name:   u.Name,
			Delta:  score - baseline,
			Score:  score,
		})
	}
	sort.Slice(improved, func(i, j int) bool { return improved[i].Delta > improved[j].Delta })
	if len(improved) > limit {
		improved = improved[:limit]
	}
	return improved, nil
}

// CriticalFocusList surfaces critical-risk employees and their open
// task counts.
func (s *Store) CriticalFocusList() ([]models.CriticalFocus, error) {
	users, err := s.Employees()
	if err != nil {
		return nil, err
	}

	var focus []models.CriticalFocus
	for _, u := range users {
		if riskOf(u) != models.RiskCritical {
			continue
		}
		var open int64
		if err := s.db.Model(&Task{}).
			Where("assigned_to = ? AND status != ?", u.ID, models.StatusCompleted).
			Count(&open).Error; err != nil {
			return nil, err
		}
		message := ""
		if u.RiskMessage != nil {
			message = *u.RiskMessage
		}
		focus = append(focus, models.CriticalFocus{
			UserID:      u.ID,
			Name:        u.Name,
			Department:  u.Department,
			Risk:        riskOf(u),
			RiskMessage: message,
			OpenTasks:   int(open),
		})
	}
	return focus, nil
}

// ReportSummary composes the reports page aggregate.
func (s *Store) ReportSummary() (models.ReportSummary, error) {
	board, err := s.RiskBoard()
	if err != nil {
		return models.ReportSummary{}, err
	}
	stats, err := s.RiskStats()
	if err != nil {
		return models.ReportSummary{}, err
	}

	total := 0.0
	for _, e := range board {
		total += e.Score
	}
	avg := 0.0
	if len(board) > 0 {
		avg = total / float64(len(board))
	}

	// Worst risk first for the top-risks list.
	order := map[string]int{
		models.RiskCritical: 0,
		models.RiskWarning:  1,
		models.RiskNeutral:  2,
		models.RiskGood:     3,
	}
	sorted := make([]models.RiskEntry, len(board))
	copy(sorted, board)
	sort.SliceStable(sorted, func(i, j int) bool {
		return order[sorted[i].Risk] < order[sorted[j].Risk]
	})
	topRisks := sorted
	if len(topRisks) > 5 {
		topRisks = topRisks[:5]
	}

	counts := make(map[string]int)
	for _, e := range board {
		dept := e.Department
		if dept == "" {
			dept = "Unassigned"
		}
		counts[dept]++
	}
	breakdown := make([]models.DepartmentCount, 0, len(counts))
	for dept, count := range counts {
		breakdown = append(breakdown, models.DepartmentCount{Department: dept, Count: count})
	}
	sort.Slice(breakdown, func(i, j int) bool { return breakdown[i].Department < breakdown[j].Department })

	return models.ReportSummary{
		TotalEmployees:      stats.TotalUsers,
		AvgCompletion:       avg,
		RiskSummary:         stats,
		TopRisks:            topRisks,
		DepartmentBreakdown: breakdown,
	}, nil
}
