package services

import (
	"context"
	"testing"

	"project/models"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func seedStartup(f *fakeStores, snap *models.MetricsSnapshot) *models.Startup {
	s := &models.Startup{
		ID:              3,
		Name:            "Acme Analytics",
		Slug:            "acme-analytics",
		FounderID:       11,
		Stage:           "seed",
		MetricsSnapshot: snap,
	}
	f.startups[s.ID] = s
	return s
}

func accept(t *testing.T, svc *OfferService, id uint) {
	t.Helper()
	if _, err := svc.UpdateStatus(context.Background(), id, StatusUpdate{Status: strPtr("accepted")}); err != nil {
		t.Fatalf("accept offer %d: %v", id, err)
	}
}

func TestAcceptCreatesSnapshotWhenMissing(t *testing.T) {
	f := newFakeStores()
	o := seedOffer(f, StatusSent)
	o.Amount = 20000
	seedStartup(f, nil)
	svc := newTestService(f)

	accept(t, svc, 7)

	snap := f.startups[3].MetricsSnapshot
	if snap == nil {
		t.Fatal("snapshot not created")
	}
	if snap.ValuationPreMoney == nil || *snap.ValuationPreMoney != 0.0 {
		t.Fatalf("pre-money = %v, want 0.0", snap.ValuationPreMoney)
	}
	if snap.ValuationPostMoney == nil || *snap.ValuationPostMoney != 20000.0 {
		t.Fatalf("post-money = %v, want 20000.0", snap.ValuationPostMoney)
	}
}

func TestAcceptUpdatesOnlyPostMoneyOnExistingSnapshot(t *testing.T) {
	f := newFakeStores()
	seedOffer(f, StatusSent) // amount 50000
	seedStartup(f, &models.MetricsSnapshot{
		Mrr:               floatPtr(12000),
		Users:             intPtr(340),
		ValuationPreMoney: floatPtr(200000.0),
	})
	svc := newTestService(f)

	accept(t, svc, 7)

	snap := f.startups[3].MetricsSnapshot
	if *snap.ValuationPostMoney != 250000.0 {
		t.Fatalf("post-money = %v, want 250000.0", *snap.ValuationPostMoney)
	}
	if *snap.ValuationPreMoney != 200000.0 {
		t.Fatalf("pre-money changed: %v", *snap.ValuationPreMoney)
	}
	if *snap.Mrr != 12000 || *snap.Users != 340 {
		t.Fatalf("unrelated snapshot fields clobbered: %+v", snap)
	}
}

func TestAcceptWithMissingStartup(t *testing.T) {
	f := newFakeStores()
	o := seedOffer(f, StatusSent)
	o.Amount = 75000
	svc := newTestService(f)

	accept(t, svc, 7)

	if len(f.investments) != 1 {
		t.Fatalf("expected one investment, got %d", len(f.investments))
	}
	inv := f.investments[0]
	if inv.ValuationPostMoney == nil || *inv.ValuationPostMoney != 75000.0 {
		t.Fatalf("post-money = %v, want 75000.0", inv.ValuationPostMoney)
	}
	if f.startupSaves != 0 {
		t.Fatalf("startup write attempted for missing startup: %d", f.startupSaves)
	}
}

func TestInvestmentDoesNotInheritCurrencyOrNote(t *testing.T) {
	f := newFakeStores()
	o := seedOffer(f, StatusSent)
	o.Note = "wired via escrow"
	seedStartup(f, nil)
	svc := newTestService(f)

	accept(t, svc, 7)

	inv := f.investments[0]
	if inv.Currency != "" || inv.Note != "" {
		t.Fatalf("currency/note should start unset, got %q / %q", inv.Currency, inv.Note)
	}
	if inv.CreatedAt.IsZero() || !inv.CreatedAt.Equal(inv.UpdatedAt) {
		t.Fatalf("timestamps not stamped: %v / %v", inv.CreatedAt, inv.UpdatedAt)
	}
}

func TestInvestmentValuationMatchesSnapshot(t *testing.T) {
	f := newFakeStores()
	seedOffer(f, StatusSent) // amount 50000
	seedStartup(f, &models.MetricsSnapshot{ValuationPreMoney: floatPtr(200000.0)})
	svc := newTestService(f)

	accept(t, svc, 7)

	inv := f.investments[0]
	snap := f.startups[3].MetricsSnapshot
	if *inv.ValuationPostMoney != *snap.ValuationPostMoney {
		t.Fatalf("investment and startup disagree on valuation: %v vs %v",
			*inv.ValuationPostMoney, *snap.ValuationPostMoney)
	}
}
