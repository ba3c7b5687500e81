package domain

import "time"

// A validated fleet-sizing request. Immutable for the run; the start
// time is echoed back as metadata and not otherwise used in KPI math.
type SimulationRequest struct {
	NumberOfDrivers   int     `json:"numberOfDrivers"`
	RouteStartTime    string  `json:"routeStartTime"`
	MaxHoursPerDriver float64 `json:"maxHoursPerDriver"`
}

// Outcome of one simulated delivery. Immutable once produced; orders
// skipped for budget or assignment reasons produce no outcome.
type DeliveryOutcome struct {
	OrderID            string
	ActualDeliveryTime float64 // minutes
	IsOnTime           bool
	Penalty            float64
	Bonus              float64
	FuelCost           float64
}

// KPIResult aggregates one run's delivery outcomes and driver hours.
// Monetary and percentage fields carry two decimal places; the
// average delivery time is a whole number of minutes.
type KPIResult struct {
	TotalDeliveries     int     `json:"totalDeliveries"`
	TotalRevenue        float64 `json:"totalRevenue"`
	AverageDeliveryTime float64 `json:"averageDeliveryTime"`
	DriverUtilization   float64 `json:"driverUtilization"`
	OnTimeDeliveryRate  float64 `json:"onTimeDeliveryRate"`
	FuelCost            float64 `json:"fuelCost"`
	CostPerDelivery     float64 `json:"costPerDelivery"`
	TotalPenalties      float64 `json:"totalPenalties"`
	TotalBonuses        float64 `json:"totalBonuses"`
	OverallProfit       float64 `json:"overallProfit"`
	EfficiencyScore     float64 `json:"efficiencyScore"`
}

// A persisted simulation run: the parameters that produced it plus
// the resulting KPIs, as listed on the history screen.
type SimulationResult struct {
	ID         string            `json:"id"`
	Parameters SimulationRequest `json:"simulation_parameters"`
	Results    KPIResult         `json:"results"`
	CreatedAt  time.Time         `json:"created_at"`
}
