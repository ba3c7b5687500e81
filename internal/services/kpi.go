package services

import (
	"math"

	"fleet-sim-service/internal/domain"
)

// Reporting convention: monetary and percentage KPIs carry two
// decimal places.
func round2(x float64) float64 { return math.Round(x*100) / 100 }

// AggregateKPIs reduces one run's delivery outcomes, final driver
// states and the original order collection into the KPI report. It is
// total over empty collections; every division by zero is defined as
// zero.
func AggregateKPIs(
	outcomes []domain.DeliveryOutcome,
	states []*domain.DriverState,
	req domain.SimulationRequest,
	orders []*domain.Order,
) domain.KPIResult {
	totalDeliveries := len(outcomes)

	valueByOrder := make(map[string]float64, len(orders))
	for _, o := range orders {
		valueByOrder[o.ID] = o.ValueRs
	}

	var totalRevenue, totalTime, totalPenalties, totalBonuses, totalFuel float64
	onTime := 0
	for _, out := range outcomes {
		totalRevenue += valueByOrder[out.OrderID]
		totalTime += out.ActualDeliveryTime
		totalPenalties += out.Penalty
		totalBonuses += out.Bonus
		totalFuel += out.FuelCost
		if out.IsOnTime {
			onTime++
		}
	}

	var avgTime, onTimeRate, costPerDelivery float64
	if totalDeliveries > 0 {
		avgTime = totalTime / float64(totalDeliveries)
		onTimeRate = float64(onTime) / float64(totalDeliveries) * 100
		costPerDelivery = totalFuel / float64(totalDeliveries)
	}

	var totalHours float64
	for _, s := range states {
		totalHours += s.HoursWorked
	}
	var utilization float64
	if maxHours := float64(len(states)) * req.MaxHoursPerDriver; maxHours > 0 {
		utilization = totalHours / maxHours * 100
	}

	profit := totalRevenue + totalBonuses - totalPenalties - totalFuel

	return domain.KPIResult{
		TotalDeliveries:     totalDeliveries,
		TotalRevenue:        round2(totalRevenue),
		AverageDeliveryTime: math.Round(avgTime),
		DriverUtilization:   round2(utilization),
		OnTimeDeliveryRate:  round2(onTimeRate),
		FuelCost:            round2(totalFuel),
		CostPerDelivery:     round2(costPerDelivery),
		TotalPenalties:      round2(totalPenalties),
		TotalBonuses:        round2(totalBonuses),
		OverallProfit:       round2(profit),
		// The efficiency score is defined as the on-time rate in the
		// current rule set.
		EfficiencyScore: round2(onTimeRate),
	}
}
