package domain

// Order lifecycle states. Only pending and in-transit orders take
// part in a simulation run.
const (
	OrderPending   = "pending"
	OrderInTransit = "in-transit"
	OrderDelivered = "delivered"
	OrderDelayed   = "delayed"
	OrderCancelled = "cancelled"
)

// A customer order awaiting delivery on its assigned route.
type Order struct {
	ID            string  `json:"id"`
	ValueRs       float64 `json:"value_rs"`
	AssignedRoute string  `json:"assigned_route"`
	Status        string  `json:"status"`
}
