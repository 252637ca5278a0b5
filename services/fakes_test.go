package services

import (
	"context"
	"errors"

	"project/models"
)

// fakeStores is an in-memory Stores implementation. Transaction works
// copy-on-write: fn runs against a clone and the clone is committed back
// only when fn succeeds, mirroring database rollback semantics.
type fakeStores struct {
	offers      map[uint]*models.Offer
	startups    map[uint]*models.Startup
	investments []*models.Investment

	nextInvestmentID  uint
	startupSaves      int
	failInvestmentSave bool
}

func newFakeStores() *fakeStores {
	return &fakeStores{
		offers:           map[uint]*models.Offer{},
		startups:         map[uint]*models.Startup{},
		nextInvestmentID: 1,
	}
}

func (f *fakeStores) clone() *fakeStores {
	c := &fakeStores{
		offers:             map[uint]*models.Offer{},
		startups:           map[uint]*models.Startup{},
		nextInvestmentID:   f.nextInvestmentID,
		startupSaves:       f.startupSaves,
		failInvestmentSave: f.failInvestmentSave,
	}
	for id, o := range f.offers {
		c.offers[id] = copyOffer(o)
	}
	for id, s := range f.startups {
		c.startups[id] = copyStartup(s)
	}
	for _, inv := range f.investments {
		cp := *inv
		c.investments = append(c.investments, &cp)
	}
	return c
}

func (f *fakeStores) Offers() OfferStore           { return fakeOfferStore{f} }
func (f *fakeStores) Startups() StartupStore       { return fakeStartupStore{f} }
func (f *fakeStores) Investments() InvestmentStore { return fakeInvestmentStore{f} }

func (f *fakeStores) Transaction(_ context.Context, fn func(Stores) error) error {
	c := f.clone()
	if err := fn(c); err != nil {
		return err
	}
	f.offers = c.offers
	f.startups = c.startups
	f.investments = c.investments
	f.nextInvestmentID = c.nextInvestmentID
	f.startupSaves = c.startupSaves
	return nil
}

func copyOffer(o *models.Offer) *models.Offer {
	cp := *o
	cp.Attachments = append([]models.OfferAttachment(nil), o.Attachments...)
	return &cp
}

func copyStartup(s *models.Startup) *models.Startup {
	cp := *s
	if s.MetricsSnapshot != nil {
		snap := *s.MetricsSnapshot
		cp.MetricsSnapshot = &snap
	}
	return &cp
}

type fakeOfferStore struct{ f *fakeStores }

func (s fakeOfferStore) FindByID(_ context.Context, id uint) (*models.Offer, error) {
	o, ok := s.f.offers[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyOffer(o), nil
}

func (s fakeOfferStore) Save(_ context.Context, o *models.Offer) error {
	s.f.offers[o.ID] = copyOffer(o)
	return nil
}

func (s fakeOfferStore) ExistsByID(_ context.Context, id uint) (bool, error) {
	_, ok := s.f.offers[id]
	return ok, nil
}

type fakeStartupStore struct{ f *fakeStores }

func (s fakeStartupStore) FindByID(_ context.Context, id uint) (*models.Startup, error) {
	st, ok := s.f.startups[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyStartup(st), nil
}

func (s fakeStartupStore) Save(_ context.Context, st *models.Startup) error {
	s.f.startupSaves++
	s.f.startups[st.ID] = copyStartup(st)
	return nil
}

type fakeInvestmentStore struct{ f *fakeStores }

func (s fakeInvestmentStore) Save(_ context.Context, inv *models.Investment) error {
	if s.f.failInvestmentSave {
		return errors.New("investment write failed")
	}
	if inv.ID == 0 {
		inv.ID = s.f.nextInvestmentID
		s.f.nextInvestmentID++
	}
	cp := *inv
	s.f.investments = append(s.f.investments, &cp)
	return nil
}
