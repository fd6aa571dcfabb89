package classify

import "strings"

type ticketRule struct {
	category string
	keywords []string
}

// Ordered; first match wins.
var ticketRules = []ticketRule{
	{"Network & Connectivity", []string{"vpn", "network", "internet", "wifi", "connection", "connectivity"}},
	{"Password & Authentication", []string{"password", "login", "authentication", "locked", "expired"}},
	{"Software & Applications", []string{"software", "install", "license", "application", "program", "update"}},
	{"Hardware Issues", []string{"printer", "scanner", "keyboard", "mouse", "monitor", "laptop", "computer", "hardware"}},
	{"Email & Communication", []string{"email", "outlook", "calendar", "meeting", "teams", "zoom"}},
	{"Data & File Issues", []string{"file", "data", "backup", "storage", "drive", "folder", "document"}},
	{"Security & Permissions", []string{"security", "permission", "firewall", "antivirus", "malware"}},
	{"Account & Access Management", []string{"account", "user", "profile", "access", "role"}},
}

const categoryGeneral = "General IT Issue"

// TicketCategory classifies an IT ticket description by keyword.
func TicketCategory(description string) string {
	lower := strings.ToLower(description)
	for _, rule := range ticketRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.category
			}
		}
	}
	return categoryGeneral
}
