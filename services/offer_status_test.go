package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"project/models"
)

func strPtr(s string) *string { return &s }

func newTestService(f *fakeStores) *OfferService {
	svc := NewOfferService(f)
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	return svc
}

func seedOffer(f *fakeStores, status string) *models.Offer {
	o := &models.Offer{
		ID:            7,
		StartupID:     3,
		InvestorID:    5,
		Title:         "Seed round",
		Amount:        50000,
		EquityPercent: 10,
		Type:          "offer",
		Visibility:    "private",
		Status:        status,
	}
	f.offers[o.ID] = o
	return o
}

func TestCanTransition(t *testing.T) {
	allowed := [][2]string{
		{StatusSent, StatusAccepted},
		{StatusSent, StatusRejected},
		{StatusSent, StatusCountered},
		{StatusCountered, StatusAccepted},
		{StatusCountered, StatusRejected},
		{StatusCountered, StatusSent},
		{StatusAccepted, StatusAccepted},
		{StatusRejected, StatusRejected},
	}
	for _, pair := range allowed {
		if !CanTransition(pair[0], pair[1]) {
			t.Fatalf("expected %s -> %s to be allowed", pair[0], pair[1])
		}
	}
	denied := [][2]string{
		{StatusAccepted, StatusRejected},
		{StatusAccepted, StatusSent},
		{StatusRejected, StatusAccepted},
		{StatusRejected, StatusCountered},
	}
	for _, pair := range denied {
		if CanTransition(pair[0], pair[1]) {
			t.Fatalf("expected %s -> %s to be denied", pair[0], pair[1])
		}
	}
}

func TestUpdateStatusOfferNotFound(t *testing.T) {
	f := newFakeStores()
	svc := newTestService(f)
	_, err := svc.UpdateStatus(context.Background(), 99, StatusUpdate{Status: strPtr("accepted")})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateStatusUnknownStatus(t *testing.T) {
	f := newFakeStores()
	seedOffer(f, StatusSent)
	svc := newTestService(f)
	_, err := svc.UpdateStatus(context.Background(), 7, StatusUpdate{Status: strPtr("negotiating")})
	if !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
	if f.offers[7].Status != StatusSent {
		t.Fatalf("offer status changed on invalid input: %s", f.offers[7].Status)
	}
}

func TestUpdateStatusDeniedTransition(t *testing.T) {
	f := newFakeStores()
	seedOffer(f, StatusAccepted)
	svc := newTestService(f)
	_, err := svc.UpdateStatus(context.Background(), 7, StatusUpdate{Status: strPtr("rejected")})
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestAcceptCreatesSingleInvestment(t *testing.T) {
	f := newFakeStores()
	seedOffer(f, StatusSent)
	svc := newTestService(f)

	offer, err := svc.UpdateStatus(context.Background(), 7, StatusUpdate{Status: strPtr("accepted")})
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if offer.Status != StatusAccepted {
		t.Fatalf("offer status = %s, want accepted", offer.Status)
	}
	if len(f.investments) != 1 {
		t.Fatalf("expected exactly one investment, got %d", len(f.investments))
	}
	inv := f.investments[0]
	if inv.Amount != 50000 || inv.EquityPercent != 10 || inv.Status != "active" {
		t.Fatalf("investment fields not copied from offer: %+v", inv)
	}
	if inv.OfferID == nil || *inv.OfferID != 7 || inv.StartupID != 3 || inv.InvestorID != 5 {
		t.Fatalf("investment references wrong entities: %+v", inv)
	}
}

func TestAcceptIsCaseInsensitive(t *testing.T) {
	f := newFakeStores()
	seedOffer(f, StatusSent)
	svc := newTestService(f)
	offer, err := svc.UpdateStatus(context.Background(), 7, StatusUpdate{Status: strPtr("  Accepted ")})
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if offer.Status != StatusAccepted {
		t.Fatalf("offer status = %s, want accepted", offer.Status)
	}
	if len(f.investments) != 1 {
		t.Fatalf("expected one investment, got %d", len(f.investments))
	}
}

func TestReacceptDoesNotDuplicateInvestment(t *testing.T) {
	f := newFakeStores()
	seedOffer(f, StatusSent)
	svc := newTestService(f)

	if _, err := svc.UpdateStatus(context.Background(), 7, StatusUpdate{Status: strPtr("accepted")}); err != nil {
		t.Fatalf("first accept: %v", err)
	}
	// Resubmitting "accepted" is a no-op, not a second materialization.
	if _, err := svc.UpdateStatus(context.Background(), 7, StatusUpdate{Status: strPtr("accepted")}); err != nil {
		t.Fatalf("second accept: %v", err)
	}
	if len(f.investments) != 1 {
		t.Fatalf("expected one investment after re-accept, got %d", len(f.investments))
	}
}

func TestNoteOnlyUpdateDoesNotMaterialize(t *testing.T) {
	f := newFakeStores()
	seedOffer(f, StatusAccepted)
	svc := newTestService(f)

	offer, err := svc.UpdateStatus(context.Background(), 7, StatusUpdate{Note: strPtr("see signed term sheet")})
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if offer.Note != "see signed term sheet" {
		t.Fatalf("note not applied: %q", offer.Note)
	}
	if offer.Status != StatusAccepted {
		t.Fatalf("status changed by note-only update: %s", offer.Status)
	}
	if len(f.investments) != 0 {
		t.Fatalf("note-only update created %d investments", len(f.investments))
	}
}

func TestCounteredOfferCanBeAccepted(t *testing.T) {
	f := newFakeStores()
	seedOffer(f, StatusCountered)
	svc := newTestService(f)
	offer, err := svc.UpdateStatus(context.Background(), 7, StatusUpdate{Status: strPtr("accepted"), Note: strPtr("terms agreed")})
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if offer.Status != StatusAccepted || offer.Note != "terms agreed" {
		t.Fatalf("unexpected offer after accept: %+v", offer)
	}
	if len(f.investments) != 1 {
		t.Fatalf("expected one investment, got %d", len(f.investments))
	}
}

func TestAcceptRollsBackWhenInvestmentWriteFails(t *testing.T) {
	f := newFakeStores()
	seedOffer(f, StatusSent)
	f.failInvestmentSave = true
	svc := newTestService(f)

	if _, err := svc.UpdateStatus(context.Background(), 7, StatusUpdate{Status: strPtr("accepted")}); err == nil {
		t.Fatal("expected error when investment write fails")
	}
	if f.offers[7].Status != StatusSent {
		t.Fatalf("offer write survived rollback: %s", f.offers[7].Status)
	}
	if len(f.investments) != 0 {
		t.Fatalf("investment persisted despite failure: %d", len(f.investments))
	}
}
