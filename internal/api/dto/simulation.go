package dto

import (
	"fleet-sim-service/internal/domain"
)

// Metadata echoed with every successful simulation. ordersSkipped
// counts eligible orders that produced no delivery outcome.
type SimulationMetadata struct {
	SimulationTimestamp   string `json:"simulationTimestamp"`
	TotalDriversAvailable int    `json:"totalDriversAvailable"`
	TotalRoutesProcessed  int    `json:"totalRoutesProcessed"`
	TotalOrdersProcessed  int    `json:"totalOrdersProcessed"`
	OrdersSkipped         int    `json:"ordersSkipped"`
}

type SimulationResponse struct {
	Success  bool               `json:"success"`
	Data     domain.KPIResult   `json:"data"`
	Metadata SimulationMetadata `json:"metadata"`
}

type ListSimulationsResponse struct {
	Simulations []*domain.SimulationResult `json:"simulations"`
}

// ErrorResponse is the uniform failure envelope. The driver counts
// are present only for INSUFFICIENT_DRIVERS.
type ErrorResponse struct {
	Error            string `json:"error"`
	Code             string `json:"code,omitempty"`
	Field            string `json:"field,omitempty"`
	Details          string `json:"details,omitempty"`
	AvailableDrivers *int   `json:"availableDrivers,omitempty"`
	RequestedDrivers *int   `json:"requestedDrivers,omitempty"`
}
