package domain

import "errors"

var (
	ErrPersonNotFound        = errors.New("person not found")
	ErrVehicleNotFound       = errors.New("vehicle not found")
	ErrTicketNotFound        = errors.New("ticket not found")
	ErrZoneNotFound          = errors.New("zone not found")
	ErrSpaceNotFound         = errors.New("space not found")
	ErrPersonInactive        = errors.New("person is not active")
	ErrVehicleInactive       = errors.New("vehicle is not active")
	ErrVehicleNotOwned       = errors.New("vehicle does not belong to person")
	ErrNoSpaceInZone         = errors.New("no space available in requested zone")
	ErrNoSpaceAvailable      = errors.New("no space available in any zone")
	ErrInventoryUpdateFailed = errors.New("inventory space update failed")
	ErrTicketNotActive       = errors.New("ticket is already closed or voided")
	ErrTicketCodeConflict    = errors.New("ticket code already exists")
	ErrInvalidID             = errors.New("invalid id")
	ErrUpstreamUnavailable   = errors.New("upstream service unavailable")
)
