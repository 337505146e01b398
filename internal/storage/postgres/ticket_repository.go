package postgres

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Javi3103/ms-tickets/internal/app"
	"github.com/Javi3103/ms-tickets/internal/domain"
)

const ticketColumns = `id, code, person_national_id, person_name, vehicle_plate, vehicle_make, vehicle_model, zone_name, space_code, entered_at, exited_at, parked_minutes, state`

type TicketRepository struct {
	pool *pgxpool.Pool
}

func NewTicketRepository(pool *pgxpool.Pool) *TicketRepository {
	return &TicketRepository{pool: pool}
}

func (r *TicketRepository) CreateTicket(ctx context.Context, ticket domain.Ticket) error {
	const stmt = `
INSERT INTO tickets (id, code, person_national_id, person_name, vehicle_plate, vehicle_make, vehicle_model, zone_name, space_code, entered_at, state)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.pool.Exec(ctx, stmt,
		ticket.ID,
		ticket.Code,
		ticket.PersonNationalID,
		ticket.PersonName,
		ticket.VehiclePlate,
		ticket.VehicleMake,
		ticket.VehicleModel,
		ticket.ZoneName,
		ticket.SpaceCode,
		ticket.EnteredAt,
		ticket.State,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrTicketCodeConflict
		}
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create ticket: %w", err)
	}
	return nil
}

func (r *TicketRepository) GetTicketByID(ctx context.Context, id string) (domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE id = $1`
	return r.scanOne(r.pool.QueryRow(ctx, query, id), "get ticket by id")
}

func (r *TicketRepository) GetTicketByCode(ctx context.Context, code string) (domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE code = $1`
	return r.scanOne(r.pool.QueryRow(ctx, query, code), "get ticket by code")
}

// ListTickets returns tickets matching the filter, newest entry first.
func (r *TicketRepository) ListTickets(ctx context.Context, filter app.TicketFilter) ([]domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets`

	var conditions []string
	var args []any
	if filter.PersonNationalID != "" {
		args = append(args, filter.PersonNationalID)
		conditions = append(conditions, "person_national_id = $"+strconv.Itoa(len(args)))
	}
	if filter.VehiclePlate != "" {
		args = append(args, filter.VehiclePlate)
		conditions = append(conditions, "vehicle_plate = $"+strconv.Itoa(len(args)))
	}
	if filter.State != "" {
		args = append(args, filter.State)
		conditions = append(conditions, "state = $"+strconv.Itoa(len(args)))
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY entered_at DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	defer rows.Close()

	tickets := make([]domain.Ticket, 0)
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, fmt.Errorf("list tickets: %w", err)
		}
		tickets = append(tickets, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	return tickets, nil
}

// UpdateTicket persists the lifecycle fields of a ticket. The code and the
// issuance snapshot are immutable and deliberately absent from the statement.
func (r *TicketRepository) UpdateTicket(ctx context.Context, ticket domain.Ticket) error {
	const stmt = `
UPDATE tickets
SET exited_at = $2, parked_minutes = $3, state = $4
WHERE id = $1`

	tag, err := r.pool.Exec(ctx, stmt, ticket.ID, ticket.ExitedAt, ticket.ParkedMinutes, ticket.State)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("update ticket: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTicketNotFound
	}
	return nil
}

func (r *TicketRepository) scanOne(row pgx.Row, op string) (domain.Ticket, error) {
	t, err := scanTicket(row)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Ticket{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Ticket{}, domain.ErrTicketNotFound
		}
		return domain.Ticket{}, fmt.Errorf("%s: %w", op, err)
	}
	return t, nil
}

func scanTicket(row pgx.Row) (domain.Ticket, error) {
	var t domain.Ticket
	err := row.Scan(
		&t.ID,
		&t.Code,
		&t.PersonNationalID,
		&t.PersonName,
		&t.VehiclePlate,
		&t.VehicleMake,
		&t.VehicleModel,
		&t.ZoneName,
		&t.SpaceCode,
		&t.EnteredAt,
		&t.ExitedAt,
		&t.ParkedMinutes,
		&t.State,
	)
	return t, err
}
