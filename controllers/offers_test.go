package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"project/models"
	"project/services"

	"github.com/gorilla/mux"
)

// memStores is a map-backed services.Stores good enough to drive the status
// endpoint without a database.
type memStores struct {
	offers      map[uint]*models.Offer
	startups    map[uint]*models.Startup
	investments []*models.Investment
}

func newMemStores() *memStores {
	return &memStores{
		offers:   make(map[uint]*models.Offer),
		startups: make(map[uint]*models.Startup),
	}
}

func (m *memStores) Offers() services.OfferStore           { return memOffers{m} }
func (m *memStores) Startups() services.StartupStore       { return memStartups{m} }
func (m *memStores) Investments() services.InvestmentStore { return memInvestments{m} }

func (m *memStores) Transaction(ctx context.Context, fn func(services.Stores) error) error {
	return fn(m)
}

type memOffers struct{ m *memStores }

func (s memOffers) FindByID(ctx context.Context, id uint) (*models.Offer, error) {
	o, found := s.m.offers[id]
	if !found {
		return nil, services.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (s memOffers) Save(ctx context.Context, offer *models.Offer) error {
	cp := *offer
	s.m.offers[offer.ID] = &cp
	return nil
}

func (s memOffers) ExistsByID(ctx context.Context, id uint) (bool, error) {
	_, found := s.m.offers[id]
	return found, nil
}

type memStartups struct{ m *memStores }

func (s memStartups) FindByID(ctx context.Context, id uint) (*models.Startup, error) {
	st, found := s.m.startups[id]
	if !found {
		return nil, services.ErrNotFound
	}
	cp := *st
	return &cp, nil
}

func (s memStartups) Save(ctx context.Context, startup *models.Startup) error {
	cp := *startup
	s.m.startups[startup.ID] = &cp
	return nil
}

type memInvestments struct{ m *memStores }

func (s memInvestments) Save(ctx context.Context, inv *models.Investment) error {
	cp := *inv
	s.m.investments = append(s.m.investments, &cp)
	return nil
}

func statusRouter(t *testing.T, m *memStores) *mux.Router {
	t.Helper()
	orig := offerService
	offerService = func() *services.OfferService { return services.NewOfferService(m) }
	t.Cleanup(func() { offerService = orig })

	r := mux.NewRouter()
	r.HandleFunc("/api/offers/{id}/status", OfferStatusHandler).Methods(http.MethodPatch)
	return r
}

func patchStatus(t *testing.T, r *mux.Router, id string, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPatch, "/api/offers/"+id+"/status", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestOfferStatusAccept(t *testing.T) {
	m := newMemStores()
	m.offers[12] = &models.Offer{ID: 12, StartupID: 4, InvestorID: 9, Amount: 50000, EquityPercent: 8, Status: services.StatusSent}
	m.startups[4] = &models.Startup{ID: 4, Name: "Acme", Slug: "acme"}
	r := statusRouter(t, m)

	rec := patchStatus(t, r, "12", `{"status":"accepted"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Status string `json:"status"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if !resp.Success || resp.Data.Status != "accepted" {
		t.Fatalf("unexpected response: %s", rec.Body.String())
	}
	if len(m.investments) != 1 {
		t.Fatalf("expected one investment, got %d", len(m.investments))
	}
}

func TestOfferStatusNotFound(t *testing.T) {
	r := statusRouter(t, newMemStores())
	rec := patchStatus(t, r, "99", `{"status":"accepted"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestOfferStatusUnknownValue(t *testing.T) {
	m := newMemStores()
	m.offers[12] = &models.Offer{ID: 12, StartupID: 4, InvestorID: 9, Status: services.StatusSent}
	r := statusRouter(t, m)

	rec := patchStatus(t, r, "12", `{"status":"pending"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestOfferStatusIllegalTransition(t *testing.T) {
	m := newMemStores()
	m.offers[12] = &models.Offer{ID: 12, StartupID: 4, InvestorID: 9, Status: services.StatusRejected}
	r := statusRouter(t, m)

	rec := patchStatus(t, r, "12", `{"status":"accepted"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
}

func TestOfferStatusBadBody(t *testing.T) {
	m := newMemStores()
	m.offers[12] = &models.Offer{ID: 12, Status: services.StatusSent}
	r := statusRouter(t, m)

	rec := patchStatus(t, r, "12", `{"status":`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestOfferStatusBadID(t *testing.T) {
	r := statusRouter(t, newMemStores())
	req := httptest.NewRequest(http.MethodPatch, "/api/offers/abc/status", strings.NewReader(`{"status":"accepted"}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
