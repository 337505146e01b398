package domain

// Zone is a named grouping of spaces, owned by the inventory service.
type Zone struct {
	ID          string
	Name        string
	Description string
	Capacity    int
	Active      bool
}

type SpaceStatus string

const (
	SpaceStatusAvailable   SpaceStatus = "AVAILABLE"
	SpaceStatusOccupied    SpaceStatus = "OCCUPIED"
	SpaceStatusMaintenance SpaceStatus = "MAINTENANCE"
)

// Space is a single parking slot tracked by the inventory service. Status is
// the only field this service ever writes. Priority ranks spaces when no zone
// preference is given; lower value wins.
type Space struct {
	ID       string
	Code     string
	Status   SpaceStatus
	Reserved bool
	ZoneID   string
	ZoneName string
	Priority int
}
