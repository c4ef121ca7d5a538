// Package routepath stores canonical HTTP paths for the festival site.
package routepath

import (
	"net/url"
	"strings"
)

const (
	Root             = "/"
	About            = "/about"
	Lineup           = "/lineup"
	Schedule         = "/schedule"
	EventInfo        = "/info"
	Venue            = "/venue"
	FAQ              = "/faq"
	Register         = "/register"
	Tickets          = "/tickets"
	Donate           = "/donate"
	Privacy          = "/privacy"
	Health           = "/healthz"
	Metrics          = "/metrics"
	StaticPrefix     = "/static/"
	UnitsPrefix      = "/_units/"
	UnitPattern      = UnitsPrefix + "{name}"
	AdminUnits       = "/admin/_units/"
	AdminUnitPattern = AdminUnits + "{name}"
	AdminPrefix      = "/admin/"
	Admin            = "/admin"
	AdminLogin       = "/admin/login"
	AdminLogout      = "/admin/logout"
	AdminCheckIn     = "/admin/check-in"
	AdminTickets     = "/admin/tickets"
	AdminRegistrants = "/admin/registrations"
	AdminDonations   = "/admin/donations"
	AdminAnalytics   = "/admin/analytics"
	AdminAudit       = "/admin/audit"
	TicketCodeKey    = "code"
	NextQueryKey     = "next"
)

// Unit returns the fragment route that renders one unit on its own.
func Unit(name string) string {
	return UnitsPrefix + escapeSegment(name)
}

// AdminUnit returns the session-protected fragment route for an admin unit.
func AdminUnit(name string) string {
	return AdminUnits + escapeSegment(name)
}

// TicketsWithCode returns the tickets page showing a just-purchased code.
func TicketsWithCode(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return Tickets
	}
	return Tickets + "?" + TicketCodeKey + "=" + url.QueryEscape(code)
}

// IsAdmin reports whether path belongs to the admin portal.
func IsAdmin(path string) bool {
	return path == Admin || strings.HasPrefix(path, AdminPrefix)
}

func escapeSegment(raw string) string {
	return url.PathEscape(strings.TrimSpace(raw))
}
