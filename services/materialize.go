package services

import (
	"context"
	"errors"

	"project/models"
)

// materialize derives the Investment for a just-accepted offer and refreshes
// the startup's cached valuation. A missing startup is a soft condition, not
// an error: the valuation degrades to the contribution amount alone and no
// startup row is written.
func (s *OfferService) materialize(ctx context.Context, tx Stores, offer *models.Offer) (*models.Investment, error) {
	now := s.now()
	var post float64

	startup, err := tx.Startups().FindByID(ctx, offer.StartupID)
	switch {
	case err == nil:
		snap := startup.MetricsSnapshot
		var pre *float64
		if snap != nil {
			pre = snap.ValuationPreMoney
		}
		post = PostMoneyValuation(pre, offer.Amount)
		if snap == nil {
			preVal := 0.0
			postVal := post
			startup.MetricsSnapshot = &models.MetricsSnapshot{
				ValuationPreMoney:  &preVal,
				ValuationPostMoney: &postVal,
			}
		} else {
			postVal := post
			snap.ValuationPostMoney = &postVal
		}
		startup.UpdatedAt = now
		if err := tx.Startups().Save(ctx, startup); err != nil {
			return nil, err
		}
	case errors.Is(err, ErrNotFound):
		post = float64(offer.Amount)
	default:
		return nil, err
	}

	// Currency and note stay unset here; the generic investment update
	// endpoint can fill them in later.
	offerID := offer.ID
	inv := &models.Investment{
		OfferID:            &offerID,
		StartupID:          offer.StartupID,
		InvestorID:         offer.InvestorID,
		Amount:             offer.Amount,
		EquityPercent:      offer.EquityPercent,
		ValuationPostMoney: &post,
		Status:             "active",
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := tx.Investments().Save(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}
