package tui

import "fmt"

// Cache keys. Every view reads through these so the same resource is
// never polled twice under different names.
const (
	keyEmployees        = "employees"
	keyRisks            = "risks"
	keyRiskStats        = "riskStats"
	keyAlerts           = "alerts"
	keyDashboardSummary = "dashboardSummary"
	keyRiskTrend        = "riskTrend"
	keyRiskHeatmap      = "riskHeatmap"
	keyTopImproved      = "topImproved"
	keyCriticalFocus    = "criticalFocus"
)

func keyTasks(userID uint) string {
	return fmt.Sprintf("tasks:%d", userID)
}

func keyNotifications(userID uint) string {
	return fmt.Sprintf("notifications:%d", userID)
}
