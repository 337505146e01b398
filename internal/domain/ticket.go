package domain

import "time"

type TicketState string

const (
	TicketStateActive TicketState = "ACTIVE"
	TicketStateClosed TicketState = "CLOSED"
	TicketStateVoided TicketState = "VOIDED"
)

// Ticket records one parking session from issuance to closure or void.
// Person, vehicle and zone fields are snapshots taken at issuance; they are
// never refreshed from the upstream services even if those records change.
type Ticket struct {
	ID               string
	Code             string
	PersonNationalID string
	PersonName       string
	VehiclePlate     string
	VehicleMake      string
	VehicleModel     string
	ZoneName         string
	SpaceCode        string
	EnteredAt        time.Time
	// ExitedAt and ParkedMinutes stay nil while the ticket is active.
	// ParkedMinutes stays nil on voided tickets; a void is not a billable stay.
	ExitedAt      *time.Time
	ParkedMinutes *int
	State         TicketState
}
