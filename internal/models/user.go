package models

import "strings"

// Roles known to the backend. Interns go through the same onboarding
// flow as employees.
const (
	RoleEmployee = "employee"
	RoleHR       = "hr"
	RoleAdmin    = "admin"
	RoleIntern   = "intern"
)

// Risk levels as served by the backend. These are advisory display
// values owned by the risk service; the client never recomputes them.
const (
	RiskGood     = "Good"
	RiskNeutral  = "Neutral"
	RiskWarning  = "Warning"
	RiskCritical = "Critical"
)

// Session is the authenticated identity returned by auth/login.
type Session struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Email  string `json:"email"`
	Avatar string `json:"avatar"`
	Token  string `json:"token"`
}

// Employee is a user record as consumed by list and detail views.
// Score and risk fields are omitted by the backend on views the
// caller's role may not see, hence the pointers.
type Employee struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Role        string  `json:"role"`
	Department  string  `json:"department"`
	JoinedDate  string  `json:"joined_date,omitempty"`
	Avatar      string  `json:"avatar,omitempty"`
	Score       *int    `json:"score"`
	Risk        *string `json:"risk"`
	RiskMessage *string `json:"risk_message"`
}

// IsManagement reports whether the role gets the HR/admin dashboard
// rather than the self-service one.
func IsManagement(role string) bool {
	switch strings.ToLower(role) {
	case RoleHR, RoleAdmin:
		return true
	}
	return false
}

// Initials derives an avatar fallback from a display name, e.g.
// "Ada Lovelace" -> "AL".
func Initials(name string) string {
	var b strings.Builder
	for _, part := range strings.Fields(name) {
		r := []rune(part)
		b.WriteString(strings.ToUpper(string(r[0])))
	}
	if b.Len() == 0 {
		return "U"
	}
	return b.String()
}
