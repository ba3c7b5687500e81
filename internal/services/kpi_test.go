package services

import (
	"testing"

	"fleet-sim-service/internal/domain"
)

func TestAggregateKPIsEmptyRun(t *testing.T) {
	req := domain.SimulationRequest{NumberOfDrivers: 3, RouteStartTime: "09:00", MaxHoursPerDriver: 8}

	kpis := AggregateKPIs(nil, nil, req, nil)
	if kpis.TotalDeliveries != 0 {
		t.Errorf("TotalDeliveries = %d, want 0", kpis.TotalDeliveries)
	}
	if kpis.AverageDeliveryTime != 0 {
		t.Errorf("AverageDeliveryTime = %v, want 0", kpis.AverageDeliveryTime)
	}
	if kpis.OnTimeDeliveryRate != 0 {
		t.Errorf("OnTimeDeliveryRate = %v, want 0", kpis.OnTimeDeliveryRate)
	}
	if kpis.CostPerDelivery != 0 {
		t.Errorf("CostPerDelivery = %v, want 0", kpis.CostPerDelivery)
	}
	if kpis.DriverUtilization != 0 {
		t.Errorf("DriverUtilization = %v, want 0", kpis.DriverUtilization)
	}
	if kpis.OverallProfit != 0 {
		t.Errorf("OverallProfit = %v, want 0", kpis.OverallProfit)
	}
}

func TestAggregateKPIsWorkedExample(t *testing.T) {
	req := domain.SimulationRequest{NumberOfDrivers: 3, RouteStartTime: "09:00", MaxHoursPerDriver: 8}

	outcomes := []domain.DeliveryOutcome{
		{OrderID: "o1", ActualDeliveryTime: 30, IsOnTime: true, Penalty: 0, Bonus: 150, FuelCost: 50},
	}
	states := []*domain.DriverState{
		{ID: "d1", HoursWorked: 0.5, Deliveries: 1},
		{ID: "d2"},
		{ID: "d3"},
	}
	orders := []*domain.Order{
		{ID: "o1", ValueRs: 1500, AssignedRoute: "r1", Status: domain.OrderPending},
	}

	kpis := AggregateKPIs(outcomes, states, req, orders)

	if kpis.TotalDeliveries != 1 {
		t.Errorf("TotalDeliveries = %d, want 1", kpis.TotalDeliveries)
	}
	if kpis.TotalRevenue != 1500 {
		t.Errorf("TotalRevenue = %v, want 1500", kpis.TotalRevenue)
	}
	if kpis.AverageDeliveryTime != 30 {
		t.Errorf("AverageDeliveryTime = %v, want 30", kpis.AverageDeliveryTime)
	}
	if kpis.TotalBonuses != 150 {
		t.Errorf("TotalBonuses = %v, want 150", kpis.TotalBonuses)
	}
	if kpis.TotalPenalties != 0 {
		t.Errorf("TotalPenalties = %v, want 0", kpis.TotalPenalties)
	}
	if kpis.FuelCost != 50 {
		t.Errorf("FuelCost = %v, want 50", kpis.FuelCost)
	}
	if kpis.CostPerDelivery != 50 {
		t.Errorf("CostPerDelivery = %v, want 50", kpis.CostPerDelivery)
	}
	if kpis.OverallProfit != 1600 {
		t.Errorf("OverallProfit = %v, want 1600", kpis.OverallProfit)
	}
	if kpis.OnTimeDeliveryRate != 100 {
		t.Errorf("OnTimeDeliveryRate = %v, want 100", kpis.OnTimeDeliveryRate)
	}
	if kpis.EfficiencyScore != 100 {
		t.Errorf("EfficiencyScore = %v, want 100", kpis.EfficiencyScore)
	}
	// 0.5h worked out of 3 drivers * 8h.
	if kpis.DriverUtilization != 2.08 {
		t.Errorf("DriverUtilization = %v, want 2.08", kpis.DriverUtilization)
	}
}

func TestAggregateKPIsIdempotent(t *testing.T) {
	req := domain.SimulationRequest{NumberOfDrivers: 2, RouteStartTime: "09:00", MaxHoursPerDriver: 8}
	outcomes := []domain.DeliveryOutcome{
		{OrderID: "o1", ActualDeliveryTime: 33.3, IsOnTime: true, Bonus: 120.5, FuelCost: 42.7},
		{OrderID: "o2", ActualDeliveryTime: 61.2, IsOnTime: false, Penalty: 50, FuelCost: 18.1},
	}
	states := []*domain.DriverState{{ID: "d1", HoursWorked: 1.575}, {ID: "d2"}}
	orders := []*domain.Order{{ID: "o1", ValueRs: 1205}, {ID: "o2", ValueRs: 300}}

	first := AggregateKPIs(outcomes, states, req, orders)
	second := AggregateKPIs(outcomes, states, req, orders)
	if first != second {
		t.Errorf("aggregation is not idempotent:\nfirst  = %+v\nsecond = %+v", first, second)
	}
}

// Adding an on-time high-value delivery raises bonuses by exactly 10%
// of the order value and strictly raises profit.
func TestAggregateKPIsBonusMonotonicity(t *testing.T) {
	req := domain.SimulationRequest{NumberOfDrivers: 1, RouteStartTime: "09:00", MaxHoursPerDriver: 8}
	states := []*domain.DriverState{{ID: "d1", HoursWorked: 1}}

	base := []domain.DeliveryOutcome{
		{OrderID: "o1", ActualDeliveryTime: 30, IsOnTime: true, FuelCost: 50},
	}
	orders := []*domain.Order{
		{ID: "o1", ValueRs: 400},
		{ID: "o2", ValueRs: 2000},
	}

	before := AggregateKPIs(base, states, req, orders)

	extended := append(base, domain.DeliveryOutcome{
		OrderID: "o2", ActualDeliveryTime: 25, IsOnTime: true, Bonus: 200, FuelCost: 40,
	})
	after := AggregateKPIs(extended, states, req, orders)

	if diff := after.TotalBonuses - before.TotalBonuses; diff != 200 {
		t.Errorf("bonus delta = %v, want 200", diff)
	}
	if after.OverallProfit <= before.OverallProfit {
		t.Errorf("profit did not increase: before=%v after=%v", before.OverallProfit, after.OverallProfit)
	}
}

func TestAggregateKPIsRevenueCountsOnlyDelivered(t *testing.T) {
	req := domain.SimulationRequest{NumberOfDrivers: 1, RouteStartTime: "09:00", MaxHoursPerDriver: 8}
	states := []*domain.DriverState{{ID: "d1", HoursWorked: 0.5}}

	outcomes := []domain.DeliveryOutcome{
		{OrderID: "o1", ActualDeliveryTime: 30, IsOnTime: true, FuelCost: 25},
	}
	// o2 was eligible but never delivered; it contributes nothing.
	orders := []*domain.Order{
		{ID: "o1", ValueRs: 700},
		{ID: "o2", ValueRs: 9999},
	}

	kpis := AggregateKPIs(outcomes, states, req, orders)
	if kpis.TotalRevenue != 700 {
		t.Errorf("TotalRevenue = %v, want 700", kpis.TotalRevenue)
	}
}
