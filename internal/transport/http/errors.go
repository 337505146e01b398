package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Javi3103/ms-tickets/internal/domain"
)

const (
	codeMethodNotAllowed      = "method_not_allowed"
	codeNotFound              = "not_found"
	codeInvalidRequestBody    = "invalid_request_body"
	codeMissingRequiredField  = "missing_required_field"
	codePersonNotFound        = "person_not_found"
	codeVehicleNotFound       = "vehicle_not_found"
	codeTicketNotFound        = "ticket_not_found"
	codeZoneNotFound          = "zone_not_found"
	codeSpaceNotFound         = "space_not_found"
	codePersonInactive        = "person_inactive"
	codeVehicleInactive       = "vehicle_inactive"
	codeVehicleNotOwned       = "vehicle_not_owned"
	codeNoSpaceInZone         = "no_space_in_zone"
	codeNoSpaceAvailable      = "no_space_available"
	codeInventoryUpdateFailed = "inventory_update_failed"
	codeTicketNotActive       = "ticket_not_active"
	codeTicketCodeConflict    = "ticket_code_conflict"
	codeInvalidID             = "invalid_id"
	codeUpstreamUnavailable   = "upstream_unavailable"
	codeForbidden             = "forbidden"
	codeInternalError         = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(errorResponse{
		Error: msg,
		Code:  code,
	})
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}

// writeDomainError maps the service's sentinel errors onto HTTP statuses and
// machine-readable codes. Anything unrecognized is a 500 with no detail
// leaked to the caller.
func writeDomainError(w http.ResponseWriter, err error) {
	for _, m := range domainErrorMap {
		if errors.Is(err, m.err) {
			writeError(w, m.status, m.code, m.err.Error())
			return
		}
	}
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}

var domainErrorMap = []struct {
	err    error
	status int
	code   string
}{
	{domain.ErrPersonNotFound, http.StatusNotFound, codePersonNotFound},
	{domain.ErrVehicleNotFound, http.StatusNotFound, codeVehicleNotFound},
	{domain.ErrTicketNotFound, http.StatusNotFound, codeTicketNotFound},
	{domain.ErrZoneNotFound, http.StatusNotFound, codeZoneNotFound},
	{domain.ErrSpaceNotFound, http.StatusNotFound, codeSpaceNotFound},
	{domain.ErrPersonInactive, http.StatusConflict, codePersonInactive},
	{domain.ErrVehicleInactive, http.StatusConflict, codeVehicleInactive},
	{domain.ErrVehicleNotOwned, http.StatusConflict, codeVehicleNotOwned},
	{domain.ErrNoSpaceInZone, http.StatusConflict, codeNoSpaceInZone},
	{domain.ErrNoSpaceAvailable, http.StatusConflict, codeNoSpaceAvailable},
	{domain.ErrTicketNotActive, http.StatusConflict, codeTicketNotActive},
	{domain.ErrTicketCodeConflict, http.StatusConflict, codeTicketCodeConflict},
	{domain.ErrInvalidID, http.StatusBadRequest, codeInvalidID},
	{domain.ErrInventoryUpdateFailed, http.StatusBadGateway, codeInventoryUpdateFailed},
	{domain.ErrUpstreamUnavailable, http.StatusBadGateway, codeUpstreamUnavailable},
}
