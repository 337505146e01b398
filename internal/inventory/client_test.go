package inventory

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Javi3103/ms-tickets/internal/domain"
)

const spacesJSON = `[
	{"id": "sp-1", "code": "S1", "status": "AVAILABLE", "isReserved": false, "zoneId": "z-1", "zoneName": "Zona Norte", "priority": 5},
	{"id": "sp-2", "code": "S2", "status": "OCCUPIED", "isReserved": false, "zoneId": "z-1", "zoneName": "Zona Norte", "priority": 2}
]`

func newInventoryServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/zones", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id": "z-1", "name": "Zona Norte", "capacity": 40, "isActive": true}]`))
	})
	mux.HandleFunc("/zones/z-1", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "z-1", "name": "Zona Norte", "description": "norte", "capacity": 40, "type": "REGULAR", "isActive": true}`))
	})
	mux.HandleFunc("/spaces/availables", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(spacesJSON))
	})
	mux.HandleFunc("/spaces/availablesbyzone/z-1", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(spacesJSON))
	})
	mux.HandleFunc("/spaces", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(spacesJSON))
	})
	mux.HandleFunc("/spaces/sp-1/status", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		status := r.URL.Query().Get("status")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "sp-1", "code": "S1", "status": "` + status + `", "isReserved": false, "zoneId": "z-1", "priority": 5}`))
	})
	return httptest.NewServer(mux)
}

func TestClient_ZoneByID(t *testing.T) {
	t.Parallel()

	srv := newInventoryServer(t)
	defer srv.Close()

	client := NewClient(srv.URL, srv.Client())

	zone, err := client.ZoneByID(context.Background(), "z-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if zone.Name != "Zona Norte" || zone.Capacity != 40 || !zone.Active {
		t.Fatalf("unexpected zone %+v", zone)
	}

	if _, err := client.ZoneByID(context.Background(), "z-9"); err != domain.ErrZoneNotFound {
		t.Fatalf("expected ErrZoneNotFound, got %v", err)
	}

	zones, err := client.Zones(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(zones) != 1 || zones[0].ID != "z-1" {
		t.Fatalf("unexpected zones %+v", zones)
	}
}

func TestClient_AvailableSpaces(t *testing.T) {
	t.Parallel()

	srv := newInventoryServer(t)
	defer srv.Close()

	client := NewClient(srv.URL, srv.Client())

	spaces, err := client.AvailableSpaces(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(spaces) != 2 {
		t.Fatalf("expected 2 spaces, got %d", len(spaces))
	}
	if spaces[0].Code != "S1" || spaces[0].Status != domain.SpaceStatusAvailable || spaces[0].Priority != 5 {
		t.Fatalf("unexpected space %+v", spaces[0])
	}

	byZone, err := client.AvailableSpacesByZone(context.Background(), "z-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(byZone) != 2 {
		t.Fatalf("expected 2 spaces, got %d", len(byZone))
	}
}

func TestClient_SpaceByCode(t *testing.T) {
	t.Parallel()

	srv := newInventoryServer(t)
	defer srv.Close()

	client := NewClient(srv.URL, srv.Client())

	space, err := client.SpaceByCode(context.Background(), "S2")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if space.ID != "sp-2" || space.Status != domain.SpaceStatusOccupied {
		t.Fatalf("unexpected space %+v", space)
	}

	if _, err := client.SpaceByCode(context.Background(), "S9"); err != domain.ErrSpaceNotFound {
		t.Fatalf("expected ErrSpaceNotFound, got %v", err)
	}
}

func TestClient_UpdateSpaceStatus(t *testing.T) {
	t.Parallel()

	srv := newInventoryServer(t)
	defer srv.Close()

	client := NewClient(srv.URL, srv.Client())

	space, err := client.UpdateSpaceStatus(context.Background(), "sp-1", domain.SpaceStatusOccupied)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if space.Status != domain.SpaceStatusOccupied {
		t.Fatalf("expected OCCUPIED, got %s", space.Status)
	}
}

func TestClient_UpstreamUnavailable(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	client := NewClient(srv.URL, srv.Client())

	if _, err := client.AvailableSpaces(context.Background()); !errors.Is(err, domain.ErrUpstreamUnavailable) {
		t.Fatalf("expected ErrUpstreamUnavailable on 502, got %v", err)
	}

	srv.Close()
	if _, err := client.AvailableSpaces(context.Background()); !errors.Is(err, domain.ErrUpstreamUnavailable) {
		t.Fatalf("expected ErrUpstreamUnavailable on transport failure, got %v", err)
	}
}
