package metrics

// Common metric attribute keys to keep telemetry consistent/searchable.
const (
	AttrMethod  = "method"
	AttrPath    = "path"
	AttrStatus  = "status"
	AttrTheme   = "theme"
	AttrOutcome = "outcome"
)

// Generation outcomes recorded under AttrOutcome.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)
