package constants

const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	HeaderXRequestID = "X-Request-ID"
	HeaderRetryAfter = "Retry-After"

	ContextKeyRequestID = "request_id"

	// DefaultCurrency applies to quotes created without one.
	DefaultCurrency = "MXN"
)

// Table names
const (
	TableOrganizations = "organizations"
	TableBranches      = "branches"
	TableRequesters    = "requesters"
	TableEquipment     = "equipment"
	TableQuotes        = "quotes"
	TableVisits        = "visits"
	TableTickets       = "tickets"
	TableSyncRuns      = "sync_runs"
	TableSyncCursors   = "sync_cursors"
)
