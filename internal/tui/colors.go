package tui

// Color constants for the dashboard theme.
const (
	// Base Colors
	ColorAppBackground  = "" // Use terminal default background
	ColorCardBackground = "#10192E" // Dark navy
	ColorBorder         = "#2F3B55" // Grey-blue

	// Text Colors
	ColorPrimaryText   = "#E6EAF2" // Field labels, user input, titles
	ColorSecondaryText = "#9DA8BD" // Secondary text
	ColorDisabledText  = "#5F6B80" // Disabled/muted text
	ColorHelpText      = "240"     // Dark grey for help text

	// Accent Colors (Blue theme)
	ColorAccentMain   = "#2563EB" // Logo, accent elements, active borders
	ColorAccentBright = "#60A5FA" // Hover, highlights, selected rows

	// State Colors
	ColorError   = "#EF4444" // Failures, critical risk
	ColorSuccess = "#22C55E" // Completed tasks, good standing
	ColorWarning = "#F59E0B" // Warnings, overdue items
)

// RiskColor maps a backend risk level onto the palette. Unknown
// levels render neutral.
func RiskColor(risk string) string {
	switch risk {
	case "Good":
		return ColorSuccess
	case "Warning":
		return ColorWarning
	case "Critical":
		return ColorError
	}
	return ColorSecondaryText
}
