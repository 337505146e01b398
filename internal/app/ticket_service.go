package app

import (
	"context"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Javi3103/ms-tickets/internal/clock"
	"github.com/Javi3103/ms-tickets/internal/domain"
)

// Registry reads person and vehicle records from the identity service.
type Registry interface {
	PersonByNationalID(ctx context.Context, nationalID string) (domain.Person, error)
	VehicleByPlate(ctx context.Context, plate string) (domain.Vehicle, error)
	VehicleIDsByOwner(ctx context.Context, personID string) ([]string, error)
}

// Inventory reads zones and spaces from the zone service and updates space status.
type Inventory interface {
	ZoneByID(ctx context.Context, zoneID string) (domain.Zone, error)
	AvailableSpaces(ctx context.Context) ([]domain.Space, error)
	AvailableSpacesByZone(ctx context.Context, zoneID string) ([]domain.Space, error)
	SpaceByCode(ctx context.Context, code string) (domain.Space, error)
	UpdateSpaceStatus(ctx context.Context, spaceID string, status domain.SpaceStatus) (domain.Space, error)
}

// TicketFilter narrows ticket listings. Zero-value fields are ignored.
type TicketFilter struct {
	PersonNationalID string
	VehiclePlate     string
	State            domain.TicketState
}

type TicketRepository interface {
	CreateTicket(ctx context.Context, ticket domain.Ticket) error
	GetTicketByID(ctx context.Context, id string) (domain.Ticket, error)
	GetTicketByCode(ctx context.Context, code string) (domain.Ticket, error)
	ListTickets(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error)
	UpdateTicket(ctx context.Context, ticket domain.Ticket) error
}

// TicketService orchestrates the ticket lifecycle across the registry, the
// inventory and the local ticket store. It holds no mutable state of its own;
// every operation is an independent request-scoped unit of work. Concurrent
// issues can race for the same space between the availability read and the
// occupy write; serializing that is the inventory service's job, not ours.
type TicketService struct {
	registry  Registry
	inventory Inventory
	repo      TicketRepository
	clock     clock.Clock
	log       logrus.FieldLogger
}

func NewTicketService(registry Registry, inventory Inventory, repo TicketRepository, clk clock.Clock, log logrus.FieldLogger) *TicketService {
	return &TicketService{
		registry:  registry,
		inventory: inventory,
		repo:      repo,
		clock:     clk,
		log:       log,
	}
}

type IssueTicketInput struct {
	PersonNationalID string
	VehiclePlate     string
	// ZoneID optionally pins the ticket to one zone. Empty means any zone,
	// picking the available space with the lowest priority value.
	ZoneID string
}

// IssueTicket validates the person, the vehicle and its ownership against the
// registry, selects a space, marks it occupied and persists a new ACTIVE
// ticket. Validations run in strict order and short-circuit; they are
// read-only, so a failure needs no rollback. Once the space is occupied a
// store failure leaves it orphaned; that gets logged for manual
// reconciliation rather than rolled back.
func (s *TicketService) IssueTicket(ctx context.Context, in IssueTicketInput) (domain.Ticket, error) {
	person, err := s.registry.PersonByNationalID(ctx, in.PersonNationalID)
	if err != nil {
		return domain.Ticket{}, err
	}
	if !person.Active {
		return domain.Ticket{}, domain.ErrPersonInactive
	}

	vehicle, err := s.registry.VehicleByPlate(ctx, in.VehiclePlate)
	if err != nil {
		return domain.Ticket{}, err
	}
	if !vehicle.Active {
		return domain.Ticket{}, domain.ErrVehicleInactive
	}

	ownedIDs, err := s.registry.VehicleIDsByOwner(ctx, person.ID)
	if err != nil {
		return domain.Ticket{}, err
	}
	if !containsID(ownedIDs, vehicle.ID) {
		return domain.Ticket{}, domain.ErrVehicleNotOwned
	}

	space, err := s.selectSpace(ctx, in.ZoneID)
	if err != nil {
		return domain.Ticket{}, err
	}

	zone, err := s.inventory.ZoneByID(ctx, space.ZoneID)
	if err != nil {
		return domain.Ticket{}, err
	}

	if _, err := s.inventory.UpdateSpaceStatus(ctx, space.ID, domain.SpaceStatusOccupied); err != nil {
		s.log.WithFields(logrus.Fields{
			"space_id":   space.ID,
			"space_code": space.Code,
		}).WithError(err).Error("failed to mark space occupied")
		return domain.Ticket{}, domain.ErrInventoryUpdateFailed
	}

	ticket := domain.Ticket{
		ID:               newTicketID(),
		Code:             newTicketCode(s.clock.Now()),
		PersonNationalID: person.NationalID,
		PersonName:       person.Name,
		VehiclePlate:     vehicle.Plate,
		VehicleMake:      vehicle.Make,
		VehicleModel:     vehicle.Model,
		ZoneName:         zone.Name,
		SpaceCode:        space.Code,
		EnteredAt:        s.clock.Now(),
		State:            domain.TicketStateActive,
	}

	if err := s.repo.CreateTicket(ctx, ticket); err != nil {
		// The space is already occupied with no ticket referencing it.
		// There is no automatic rollback; leave a trail for reconciliation.
		s.log.WithFields(logrus.Fields{
			"space_id":    space.ID,
			"space_code":  space.Code,
			"ticket_code": ticket.Code,
		}).WithError(err).Error("ticket persist failed after space was occupied")
		return domain.Ticket{}, err
	}

	return ticket, nil
}

// CloseTicket registers the exit of an active ticket: stamps the exit time,
// computes the parked duration in whole minutes and releases the space.
// Space release is best-effort; the driver is leaving either way.
func (s *TicketService) CloseTicket(ctx context.Context, ticketID string) (domain.Ticket, error) {
	ticket, err := s.repo.GetTicketByID(ctx, ticketID)
	if err != nil {
		return domain.Ticket{}, err
	}
	if ticket.State != domain.TicketStateActive {
		return domain.Ticket{}, domain.ErrTicketNotActive
	}

	exitedAt := s.clock.Now()
	minutes := int(exitedAt.Sub(ticket.EnteredAt) / time.Minute)

	s.releaseSpace(ctx, ticket.SpaceCode)

	ticket.ExitedAt = &exitedAt
	ticket.ParkedMinutes = &minutes
	ticket.State = domain.TicketStateClosed

	if err := s.repo.UpdateTicket(ctx, ticket); err != nil {
		return domain.Ticket{}, err
	}
	return ticket, nil
}

// VoidTicket cancels an active ticket without billing a stay: the space is
// released best-effort and the exit time recorded, but no duration is set.
func (s *TicketService) VoidTicket(ctx context.Context, ticketID string) (domain.Ticket, error) {
	ticket, err := s.repo.GetTicketByID(ctx, ticketID)
	if err != nil {
		return domain.Ticket{}, err
	}
	if ticket.State != domain.TicketStateActive {
		return domain.Ticket{}, domain.ErrTicketNotActive
	}

	exitedAt := s.clock.Now()

	s.releaseSpace(ctx, ticket.SpaceCode)

	ticket.ExitedAt = &exitedAt
	ticket.State = domain.TicketStateVoided

	if err := s.repo.UpdateTicket(ctx, ticket); err != nil {
		return domain.Ticket{}, err
	}
	return ticket, nil
}

func (s *TicketService) ListTickets(ctx context.Context) ([]domain.Ticket, error) {
	return s.repo.ListTickets(ctx, TicketFilter{})
}

func (s *TicketService) GetTicketByCode(ctx context.Context, code string) (domain.Ticket, error) {
	return s.repo.GetTicketByCode(ctx, code)
}

func (s *TicketService) ListTicketsByPerson(ctx context.Context, nationalID string) ([]domain.Ticket, error) {
	return s.repo.ListTickets(ctx, TicketFilter{PersonNationalID: nationalID})
}

func (s *TicketService) ListTicketsByVehicle(ctx context.Context, plate string) ([]domain.Ticket, error) {
	return s.repo.ListTickets(ctx, TicketFilter{VehiclePlate: plate})
}

func (s *TicketService) ListActiveTickets(ctx context.Context) ([]domain.Ticket, error) {
	return s.repo.ListTickets(ctx, TicketFilter{State: domain.TicketStateActive})
}

// selectSpace picks the space a new ticket will occupy. With a zone the first
// available, non-reserved space in that zone wins. Without one the whole lot
// is considered and the lowest priority value wins, ties keeping the
// inventory's listing order.
func (s *TicketService) selectSpace(ctx context.Context, zoneID string) (domain.Space, error) {
	if zoneID != "" {
		spaces, err := s.inventory.AvailableSpacesByZone(ctx, zoneID)
		if err != nil {
			return domain.Space{}, err
		}
		for _, sp := range spaces {
			if sp.Status == domain.SpaceStatusAvailable && !sp.Reserved {
				return sp, nil
			}
		}
		return domain.Space{}, domain.ErrNoSpaceInZone
	}

	spaces, err := s.inventory.AvailableSpaces(ctx)
	if err != nil {
		return domain.Space{}, err
	}
	if len(spaces) == 0 {
		return domain.Space{}, domain.ErrNoSpaceAvailable
	}

	sort.SliceStable(spaces, func(i, j int) bool {
		return spaces[i].Priority < spaces[j].Priority
	})
	return spaces[0], nil
}

// releaseSpace implements the best-effort release policy: resolve the space
// by the code frozen in the ticket and mark it AVAILABLE. Any failure is
// logged and swallowed so a ticket-holder is never blocked from leaving
// because the inventory happened to be unreachable. The possible leftover
// (a space still marked occupied with no active ticket) is reconciled
// manually, not here.
func (s *TicketService) releaseSpace(ctx context.Context, spaceCode string) {
	space, err := s.inventory.SpaceByCode(ctx, spaceCode)
	if err != nil {
		s.log.WithField("space_code", spaceCode).WithError(err).Warn("could not resolve space for release")
		return
	}
	if _, err := s.inventory.UpdateSpaceStatus(ctx, space.ID, domain.SpaceStatusAvailable); err != nil {
		s.log.WithField("space_code", spaceCode).WithError(err).Warn("could not release space")
	}
}

func containsID(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
