package models

// RiskEntry is one row of the risk board.
type RiskEntry struct {
	UserID     uint    `json:"user_id"`
	Name       string  `json:"name"`
	Department string  `json:"department"`
	Risk       string  `json:"risk"`
	Score      float64 `json:"score"`
}

// RiskStats is the aggregate risk breakdown.
type RiskStats struct {
	TotalUsers int `json:"total_users"`
	Good       int `json:"good"`
	Neutral    int `json:"neutral"`
	Warning    int `json:"warning"`
	Critical   int `json:"critical"`
}

// DashboardSummary backs the management dashboard KPI cards.
type DashboardSummary struct {
	TotalUsers     int     `json:"total_users"`
	TotalTasks     int     `json:"total_tasks"`
	CompletedTasks int     `json:"completed_tasks"`
	AvgCompletion  float64 `json:"avg_completion"`
	AtRisk         int     `json:"at_risk"`
	Critical       int     `json:"critical"`
}

// RiskTrendPoint is one day of the risk trend chart.
type RiskTrendPoint struct {
	Date     string `json:"date"`
	Good     int    `json:"good"`
	Warning  int    `json:"warning"`
	Critical int    `json:"critical"`
}

// HeatmapCell is one department's standing on the risk heatmap.
type HeatmapCell struct {
	Department string  `json:"department"`
	Employees  int     `json:"employees"`
	AvgScore   float64 `json:"avg_score"`
	Risk       string  `json:"risk"`
}

// ImprovedEmployee is a top-improved leaderboard row.
type ImprovedEmployee struct {
	UserID uint    `json:"user_id"`
	Name   string  `json:"name"`
	Delta  float64 `json:"delta"`
	Score  float64 `json:"score"`
}

// CriticalFocus is an entry of the critical-attention panel.
type CriticalFocus struct {
	UserID      uint   `json:"user_id"`
	Name        string `json:"name"`
	Department  string `json:"department"`
	Risk        string `json:"risk"`
	RiskMessage string `json:"risk_message"`
	OpenTasks   int    `json:"open_tasks"`
}

// DepartmentCount is one slice of the department breakdown.
type DepartmentCount struct {
	Department string `json:"department"`
	Count      int    `json:"count"`
}

// ReportSummary is the reports page aggregate.
type ReportSummary struct {
	TotalEmployees      int               `json:"total_employees"`
	AvgCompletion       float64           `json:"avg_completion"`
	RiskSummary         RiskStats         `json:"risk_summary"`
	TopRisks            []RiskEntry       `json:"top_risks"`
	DepartmentBreakdown []DepartmentCount `json:"department_breakdown"`
}

// ActivityEntry is one row of an employee's activity feed.
type ActivityEntry struct {
	ID        uint   `json:"id"`
	UserID    uint   `json:"user_id"`
	Action    string `json:"action"`
	Detail    string `json:"detail,omitempty"`
	CreatedAt string `json:"created_at"`
}
