// Package inventory is the HTTP client for the zone/space service
// (zone_core). Zones and spaces are owned by that service; the only write
// this client performs is the space status update.
package inventory

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

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

type zoneResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Capacity    int    `json:"capacity"`
	IsActive    bool   `json:"isActive"`
}

type spaceResponse struct {
	ID         string `json:"id"`
	Code       string `json:"code"`
	Status     string `json:"status"`
	IsReserved bool   `json:"isReserved"`
	ZoneID     string `json:"zoneId"`
	ZoneName   string `json:"zoneName"`
	Priority   int    `json:"priority"`
}

func (c *Client) Zones(ctx context.Context) ([]domain.Zone, error) {
	var resp []zoneResponse
	if err := c.do(ctx, http.MethodGet, "/zones", &resp, domain.ErrZoneNotFound); err != nil {
		return nil, err
	}
	zones := make([]domain.Zone, 0, len(resp))
	for _, z := range resp {
		zones = append(zones, zoneToDomain(z))
	}
	return zones, nil
}

func (c *Client) ZoneByID(ctx context.Context, zoneID string) (domain.Zone, error) {
	var resp zoneResponse
	if err := c.do(ctx, http.MethodGet, "/zones/"+url.PathEscape(zoneID), &resp, domain.ErrZoneNotFound); err != nil {
		return domain.Zone{}, err
	}
	return zoneToDomain(resp), nil
}

func (c *Client) AvailableSpaces(ctx context.Context) ([]domain.Space, error) {
	return c.listSpaces(ctx, "/spaces/availables")
}

func (c *Client) AvailableSpacesByZone(ctx context.Context, zoneID string) ([]domain.Space, error) {
	return c.listSpaces(ctx, "/spaces/availablesbyzone/"+url.PathEscape(zoneID))
}

func (c *Client) AllSpaces(ctx context.Context) ([]domain.Space, error) {
	return c.listSpaces(ctx, "/spaces")
}

// SpaceByCode resolves a space by its human code. The inventory service has
// no by-code endpoint, so the full listing is scanned client-side.
func (c *Client) SpaceByCode(ctx context.Context, code string) (domain.Space, error) {
	spaces, err := c.AllSpaces(ctx)
	if err != nil {
		return domain.Space{}, err
	}
	for _, sp := range spaces {
		if sp.Code == code {
			return sp, nil
		}
	}
	return domain.Space{}, domain.ErrSpaceNotFound
}

// UpdateSpaceStatus patches the status of one space and returns the updated
// record as the inventory sees it.
func (c *Client) UpdateSpaceStatus(ctx context.Context, spaceID string, status domain.SpaceStatus) (domain.Space, error) {
	path := "/spaces/" + url.PathEscape(spaceID) + "/status?status=" + url.QueryEscape(string(status))
	var resp spaceResponse
	if err := c.do(ctx, http.MethodPatch, path, &resp, domain.ErrSpaceNotFound); err != nil {
		return domain.Space{}, err
	}
	return spaceToDomain(resp), nil
}

func (c *Client) listSpaces(ctx context.Context, path string) ([]domain.Space, error) {
	var resp []spaceResponse
	if err := c.do(ctx, http.MethodGet, path, &resp, domain.ErrZoneNotFound); err != nil {
		return nil, err
	}
	spaces := make([]domain.Space, 0, len(resp))
	for _, sp := range resp {
		spaces = append(spaces, spaceToDomain(sp))
	}
	return spaces, nil
}

func zoneToDomain(resp zoneResponse) domain.Zone {
	return domain.Zone{
		ID:          resp.ID,
		Name:        resp.Name,
		Description: resp.Description,
		Capacity:    resp.Capacity,
		Active:      resp.IsActive,
	}
}

func spaceToDomain(resp spaceResponse) domain.Space {
	return domain.Space{
		ID:       resp.ID,
		Code:     resp.Code,
		Status:   domain.SpaceStatus(resp.Status),
		Reserved: resp.IsReserved,
		ZoneID:   resp.ZoneID,
		ZoneName: resp.ZoneName,
		Priority: resp.Priority,
	}
}

func (c *Client) do(ctx context.Context, method, path string, out any, notFound error) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build inventory request: %w", err)
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
		return fmt.Errorf("%w: inventory returned status %d", domain.ErrUpstreamUnavailable, res.StatusCode)
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode inventory response: %w", err)
	}
	return nil
}
