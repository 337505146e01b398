package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/Javi3103/ms-tickets/internal/app"
	"github.com/Javi3103/ms-tickets/internal/domain"
)

// TicketIssuer is the minimal interface needed to issue tickets.
type TicketIssuer interface {
	IssueTicket(ctx context.Context, in app.IssueTicketInput) (domain.Ticket, error)
}

// TicketReader is the minimal interface behind the read endpoints.
type TicketReader interface {
	ListTickets(ctx context.Context) ([]domain.Ticket, error)
	GetTicketByCode(ctx context.Context, code string) (domain.Ticket, error)
	ListTicketsByPerson(ctx context.Context, nationalID string) ([]domain.Ticket, error)
	ListTicketsByVehicle(ctx context.Context, plate string) ([]domain.Ticket, error)
	ListActiveTickets(ctx context.Context) ([]domain.Ticket, error)
}

// HandleTickets serves the /tickets collection: POST issues a ticket, GET
// lists every ticket newest first.
func HandleTickets(issuer TicketIssuer, reader TicketReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			tickets, err := reader.ListTickets(r.Context())
			if err != nil {
				writeDomainError(w, err)
				return
			}
			writeTicketList(w, tickets)
		case http.MethodPost:
			var req issueTicketRequest
			dec := json.NewDecoder(r.Body)
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
				return
			}
			if req.PersonNationalID == "" || req.VehiclePlate == "" {
				writeError(w, http.StatusBadRequest, codeMissingRequiredField, "person_national_id and vehicle_plate are required")
				return
			}

			ticket, err := issuer.IssueTicket(r.Context(), app.IssueTicketInput{
				PersonNationalID: req.PersonNationalID,
				VehiclePlate:     req.VehiclePlate,
				ZoneID:           req.ZoneID,
			})
			if err != nil {
				writeDomainError(w, err)
				return
			}

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(toTicketResponse(ticket))
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}

type issueTicketRequest struct {
	PersonNationalID string `json:"person_national_id"`
	VehiclePlate     string `json:"vehicle_plate"`
	ZoneID           string `json:"zone_id"`
}

type ticketResponse struct {
	ID               string     `json:"id"`
	Code             string     `json:"code"`
	PersonNationalID string     `json:"person_national_id"`
	PersonName       string     `json:"person_name"`
	VehiclePlate     string     `json:"vehicle_plate"`
	VehicleMake      string     `json:"vehicle_make"`
	VehicleModel     string     `json:"vehicle_model"`
	ZoneName         string     `json:"zone_name"`
	SpaceCode        string     `json:"space_code"`
	EnteredAt        time.Time  `json:"entered_at"`
	ExitedAt         *time.Time `json:"exited_at,omitempty"`
	ParkedMinutes    *int       `json:"parked_minutes,omitempty"`
	State            string     `json:"state"`
}

func toTicketResponse(t domain.Ticket) ticketResponse {
	return ticketResponse{
		ID:               t.ID,
		Code:             t.Code,
		PersonNationalID: t.PersonNationalID,
		PersonName:       t.PersonName,
		VehiclePlate:     t.VehiclePlate,
		VehicleMake:      t.VehicleMake,
		VehicleModel:     t.VehicleModel,
		ZoneName:         t.ZoneName,
		SpaceCode:        t.SpaceCode,
		EnteredAt:        t.EnteredAt,
		ExitedAt:         t.ExitedAt,
		ParkedMinutes:    t.ParkedMinutes,
		State:            string(t.State),
	}
}

func writeTicketList(w http.ResponseWriter, tickets []domain.Ticket) {
	resp := make([]ticketResponse, 0, len(tickets))
	for _, t := range tickets {
		resp = append(resp, toTicketResponse(t))
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func writeTicket(w http.ResponseWriter, ticket domain.Ticket) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(toTicketResponse(ticket))
}
