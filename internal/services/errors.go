package services

import "fmt"

// Machine-readable failure codes surfaced to API clients.
const (
	CodeMissingBody         = "MISSING_BODY"
	CodeMissingField        = "MISSING_FIELD"
	CodeInvalidType         = "INVALID_TYPE"
	CodeInvalidRange        = "INVALID_RANGE"
	CodeInvalidFormat       = "INVALID_FORMAT"
	CodeInsufficientDrivers = "INSUFFICIENT_DRIVERS"
	CodeNoRoutes            = "NO_ROUTES"
	CodeNoOrders            = "NO_ORDERS"
)

// ValidationError reports a malformed simulation request. It is
// produced before any data fetch; resubmitting corrected input is
// always possible.
type ValidationError struct {
	Code    string
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// SimulationError reports a run that could not proceed against the
// current fleet data. Terminal for the whole run; no partial KPIs
// exist.
type SimulationError struct {
	Code             string
	Message          string
	Details          string
	AvailableDrivers int
	RequestedDrivers int
}

func (e *SimulationError) Error() string { return e.Message }
