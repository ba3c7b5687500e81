package domain

// Traffic congestion levels recognised by the delivery rules.
// Anything else is treated as free-flowing traffic.
const (
	TrafficLow    = "Low"
	TrafficMedium = "Medium"
	TrafficHigh   = "High"
)

// A known delivery route. Routes are read-only inputs to a simulation
// run; orders reference them through AssignedRoute.
type Route struct {
	ID              string  `json:"route_id"`
	Name            string  `json:"name"`
	DistanceKM      float64 `json:"distance_km"`
	TrafficLevel    string  `json:"traffic_level"`
	BaseTimeMinutes float64 `json:"base_time_minutes"`
}
