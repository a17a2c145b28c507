package constants

// Session and context keys
const (
	SessionCookieName = "shiftflow_session"
	ContextKeyUserID  = "user_id"
	ContextKeyUser    = "current_user"
	SessionKeyLedger  = "ledger_id"
)

// Pagination defaults
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Field limits
const (
	MaxPositionNameLength = 25
	MaxTemplateNameLength = 120
	MinPasswordLength     = 8
)

// UpcomingShiftsLimit caps the employee "next shifts" sidebar list.
const UpcomingShiftsLimit = 5
