// Package registry is a read-only HTTP client for the identity/vehicle
// registry (ms-clientes). The upstream payloads use the registry's own field
// names; they are mapped into the domain types here and nowhere else.
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Javi3103/ms-tickets/internal/domain"
)

const defaultTimeout = 10 * time.Second

type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a registry client for the given base URL (including any
// /api prefix the deployment uses). A nil httpClient gets a default with a
// request timeout; the service itself sets no deadlines beyond that.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

type personResponse struct {
	ID             string `json:"id"`
	Identificacion string `json:"identificacion"`
	Nombre         string `json:"nombre"`
	Email          string `json:"email"`
	Telefono       string `json:"telefono"`
	Activo         bool   `json:"activo"`
}

type vehicleResponse struct {
	ID              string `json:"id"`
	Placa           string `json:"placa"`
	Marca           string `json:"marca"`
	Modelo          string `json:"modelo"`
	Color           string `json:"color"`
	AnioFabricacion int    `json:"anioFabricacion"`
	PropietarioID   string `json:"propietarioId"`
	Activo          bool   `json:"activo"`
}

func (c *Client) PersonByNationalID(ctx context.Context, nationalID string) (domain.Person, error) {
	var resp personResponse
	err := c.getJSON(ctx, "/personas/identificacion/"+url.PathEscape(nationalID), &resp, domain.ErrPersonNotFound)
	if err != nil {
		return domain.Person{}, err
	}
	return domain.Person{
		ID:         resp.ID,
		NationalID: resp.Identificacion,
		Name:       resp.Nombre,
		Email:      resp.Email,
		Phone:      resp.Telefono,
		Active:     resp.Activo,
	}, nil
}

func (c *Client) VehicleByPlate(ctx context.Context, plate string) (domain.Vehicle, error) {
	var resp vehicleResponse
	err := c.getJSON(ctx, "/vehiculos/placa/"+url.PathEscape(plate), &resp, domain.ErrVehicleNotFound)
	if err != nil {
		return domain.Vehicle{}, err
	}
	return vehicleToDomain(resp), nil
}

// VehicleIDsByOwner lists the ids of all vehicles registered to a person.
// The orchestrator uses it as the ownership check at issuance.
func (c *Client) VehicleIDsByOwner(ctx context.Context, personID string) ([]string, error) {
	var resp []vehicleResponse
	err := c.getJSON(ctx, "/vehiculos/propietario/"+url.PathEscape(personID), &resp, domain.ErrPersonNotFound)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(resp))
	for _, v := range resp {
		ids = append(ids, v.ID)
	}
	return ids, nil
}

func vehicleToDomain(resp vehicleResponse) domain.Vehicle {
	return domain.Vehicle{
		ID:      resp.ID,
		Plate:   resp.Placa,
		Make:    resp.Marca,
		Model:   resp.Modelo,
		Color:   resp.Color,
		Year:    resp.AnioFabricacion,
		OwnerID: resp.PropietarioID,
		Active:  resp.Activo,
	}
}

func (c *Client) getJSON(ctx context.Context, path string, out any, notFound error) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build registry request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return notFound
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return fmt.Errorf("%w: registry returned status %d", domain.ErrUpstreamUnavailable, res.StatusCode)
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode registry response: %w", err)
	}
	return nil
}
