package services

import (
	"fleet-sim-service/internal/config"
	"fleet-sim-service/internal/domain"
)

// trafficMultiplier maps a route's traffic level to its delivery-time
// multiplier. Unrecognised levels are treated as free-flowing.
func trafficMultiplier(rules *config.Rules, level string) float64 {
	switch level {
	case domain.TrafficLow:
		return rules.TrafficMultiplierLow
	case domain.TrafficMedium:
		return rules.TrafficMultiplierMedium
	case domain.TrafficHigh:
		return rules.TrafficMultiplierHigh
	default:
		return 1.0
	}
}

// EvaluateDelivery applies the company rules to a single order on a
// single route, given the driver's state at the moment of dispatch.
// It is a pure function; the caller owns all state mutation.
func EvaluateDelivery(
	order *domain.Order,
	route *domain.Route,
	driver *domain.DriverState,
	rules *config.Rules,
) domain.DeliveryOutcome {
	minutes := route.BaseTimeMinutes * trafficMultiplier(rules, route.TrafficLevel)
	if driver.IsFatigued {
		minutes *= rules.FatigueSlowdown
	}

	fuel := route.DistanceKM * rules.FuelCostPerKm
	if route.TrafficLevel == domain.TrafficHigh {
		fuel += route.DistanceKM * rules.HighTrafficSurchargePerKm
	}

	// The grace window is measured against the base route time, not
	// the traffic/fatigue-adjusted time.
	allowed := route.BaseTimeMinutes + rules.GraceMinutes
	onTime := minutes <= allowed

	var penalty float64
	if !onTime {
		penalty = rules.LatePenaltyRs
	}

	var bonus float64
	if onTime && order.ValueRs > rules.HighValueThresholdRs {
		bonus = order.ValueRs * rules.HighValueBonusRate
	}

	return domain.DeliveryOutcome{
		OrderID:            order.ID,
		ActualDeliveryTime: minutes,
		IsOnTime:           onTime,
		Penalty:            penalty,
		Bonus:              bonus,
		FuelCost:           fuel,
	}
}
