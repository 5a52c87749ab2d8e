package constants

import "time"

// Session / context keys
const (
	SessionCookieName = "silverstage_session"
	ContextKeyUserID  = "user_id"
	ContextKeyRole    = "role"
	ContextKeyName    = "name"
)

// LegacySessionCookieNames lists every cookie name a session may live under,
// including names used by earlier deployments. GET /api/clear-session expires
// all of them.
var LegacySessionCookieNames = []string{
	SessionCookieName,
	"session",
	"auth_token",
}

// Validation limits
const (
	MinPasswordLength = 8
	MinHoursPerEntry  = 0.0
	MaxHoursPerEntry  = 24.0
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// NotificationPageSize is the fixed snapshot size returned by the
// notification list endpoint and the SSE stream.
const NotificationPageSize = 50

// InvitationTTL is how long an invitation token stays redeemable.
const InvitationTTL = 7 * 24 * time.Hour

// Rate limiting defaults
const (
	LoginRateLimit   = 10
	LoginRateWindow  = time.Minute
	AcceptRateLimit  = 5
	AcceptRateWindow = time.Minute
)

// ReminderHorizon is how far ahead the reminder job looks for upcoming events.
const ReminderHorizon = 24 * time.Hour
