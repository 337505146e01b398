package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/Javi3103/ms-tickets/internal/domain"
)

// TicketLifecycle is the minimal interface needed to close or void a ticket.
type TicketLifecycle interface {
	CloseTicket(ctx context.Context, ticketID string) (domain.Ticket, error)
	VoidTicket(ctx context.Context, ticketID string) (domain.Ticket, error)
}

// HandleTicketRoutes serves everything under /tickets/:
//
//	GET  /tickets/active
//	GET  /tickets/code/{code}
//	GET  /tickets/person/{nationalID}
//	GET  /tickets/vehicle/{plate}
//	POST /tickets/{id}/close
//	POST /tickets/{id}/void
func HandleTicketRoutes(lifecycle TicketLifecycle, reader TicketReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
		if len(parts) < 2 || parts[0] != "tickets" {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		if len(parts) == 2 && parts[1] == "active" {
			requireGet(w, r, func() {
				tickets, err := reader.ListActiveTickets(r.Context())
				if err != nil {
					writeDomainError(w, err)
					return
				}
				writeTicketList(w, tickets)
			})
			return
		}

		if len(parts) != 3 || parts[1] == "" || parts[2] == "" {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		switch parts[1] {
		case "code":
			requireGet(w, r, func() {
				ticket, err := reader.GetTicketByCode(r.Context(), parts[2])
				if err != nil {
					writeDomainError(w, err)
					return
				}
				writeTicket(w, ticket)
			})
		case "person":
			requireGet(w, r, func() {
				tickets, err := reader.ListTicketsByPerson(r.Context(), parts[2])
				if err != nil {
					writeDomainError(w, err)
					return
				}
				writeTicketList(w, tickets)
			})
		case "vehicle":
			requireGet(w, r, func() {
				tickets, err := reader.ListTicketsByVehicle(r.Context(), parts[2])
				if err != nil {
					writeDomainError(w, err)
					return
				}
				writeTicketList(w, tickets)
			})
		default:
			// /tickets/{id}/close and /tickets/{id}/void
			if r.Method != http.MethodPost {
				writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
				return
			}
			var (
				ticket domain.Ticket
				err    error
			)
			switch parts[2] {
			case "close":
				ticket, err = lifecycle.CloseTicket(r.Context(), parts[1])
			case "void":
				ticket, err = lifecycle.VoidTicket(r.Context(), parts[1])
			default:
				writeError(w, http.StatusNotFound, codeNotFound, "not found")
				return
			}
			if err != nil {
				writeDomainError(w, err)
				return
			}
			writeTicket(w, ticket)
		}
	}
}

func requireGet(w http.ResponseWriter, r *http.Request, serve func()) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		return
	}
	serve()
}
