package services

import (
	"math"
	"regexp"

	"fleet-sim-service/internal/domain"
)

// RawSimulationRequest is the wire shape of a simulation request
// before validation. Pointer fields distinguish an absent field from
// a zero value.
type RawSimulationRequest struct {
	NumberOfDrivers   *float64 `json:"numberOfDrivers"`
	RouteStartTime    *string  `json:"routeStartTime"`
	MaxHoursPerDriver *float64 `json:"maxHoursPerDriver"`
}

// 24-hour HH:MM, single-digit hour allowed.
var startTimePattern = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):[0-5][0-9]$`)

// ValidateRequest checks a raw request field by field, stopping at
// the first failure. It has no side effects.
func ValidateRequest(raw *RawSimulationRequest) (domain.SimulationRequest, *ValidationError) {
	var req domain.SimulationRequest

	if raw == nil {
		return req, &ValidationError{
			Code:    CodeMissingBody,
			Field:   "body",
			Message: "request body is required and must be an object",
		}
	}

	if raw.NumberOfDrivers == nil {
		return req, &ValidationError{
			Code:    CodeMissingField,
			Field:   "numberOfDrivers",
			Message: "number of drivers is required",
		}
	}
	drivers := *raw.NumberOfDrivers
	if drivers != math.Trunc(drivers) {
		return req, &ValidationError{
			Code:    CodeInvalidType,
			Field:   "numberOfDrivers",
			Message: "number of drivers must be an integer",
		}
	}
	if drivers <= 0 {
		return req, &ValidationError{
			Code:    CodeInvalidRange,
			Field:   "numberOfDrivers",
			Message: "number of drivers must be greater than 0",
		}
	}
	if drivers > 100 {
		return req, &ValidationError{
			Code:    CodeInvalidRange,
			Field:   "numberOfDrivers",
			Message: "number of drivers cannot exceed 100",
		}
	}

	if raw.RouteStartTime == nil {
		return req, &ValidationError{
			Code:    CodeMissingField,
			Field:   "routeStartTime",
			Message: "route start time is required",
		}
	}
	if !startTimePattern.MatchString(*raw.RouteStartTime) {
		return req, &ValidationError{
			Code:    CodeInvalidFormat,
			Field:   "routeStartTime",
			Message: "route start time must be in HH:MM format (24-hour)",
		}
	}

	if raw.MaxHoursPerDriver == nil {
		return req, &ValidationError{
			Code:    CodeMissingField,
			Field:   "maxHoursPerDriver",
			Message: "max hours per driver is required",
		}
	}
	maxHours := *raw.MaxHoursPerDriver
	if maxHours <= 0 {
		return req, &ValidationError{
			Code:    CodeInvalidRange,
			Field:   "maxHoursPerDriver",
			Message: "max hours per driver must be greater than 0",
		}
	}
	if maxHours > 24 {
		return req, &ValidationError{
			Code:    CodeInvalidRange,
			Field:   "maxHoursPerDriver",
			Message: "max hours per driver cannot exceed 24 hours",
		}
	}

	req.NumberOfDrivers = int(drivers)
	req.RouteStartTime = *raw.RouteStartTime
	req.MaxHoursPerDriver = maxHours
	return req, nil
}
