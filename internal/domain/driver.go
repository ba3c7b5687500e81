package domain

// Driver roster states. Only active drivers are eligible for selection.
const (
	DriverActive   = "active"
	DriverInactive = "inactive"
)

// A delivery driver as recorded in the fleet roster.
type Driver struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	PastSevenDayHours float64 `json:"past_seven_day_hours"`
	Status            string  `json:"status"`
}

// DriverState wraps a selected driver with the accumulators mutated
// during a single simulation run. It is created at selection time and
// discarded when the run ends; it is never persisted.
type DriverState struct {
	ID          string
	Name        string
	HoursWorked float64
	IsFatigued  bool
	Deliveries  int
}

// RecordDelivery charges the driver with one completed delivery.
// A driver who crosses the fatigue trigger stays fatigued for the
// remainder of the run.
func (d *DriverState) RecordDelivery(minutes, fatigueAfterHours float64) {
	d.HoursWorked += minutes / 60
	d.Deliveries++
	if d.HoursWorked > fatigueAfterHours {
		d.IsFatigued = true
	}
}
