package services

import (
	"context"
	"strings"
	"time"

	"project/models"
)

// Offer lifecycle states.
const (
	StatusSent      = "sent"
	StatusAccepted  = "accepted"
	StatusRejected  = "rejected"
	StatusCountered = "countered"
)

// allowedTransitions is the closed offer lifecycle graph. Accepted and
// rejected are terminal. Resubmitting the current status is always a no-op
// and never re-materializes an investment.
var allowedTransitions = map[string][]string{
	StatusSent:      {StatusAccepted, StatusRejected, StatusCountered},
	StatusCountered: {StatusAccepted, StatusRejected, StatusSent},
	StatusAccepted:  {},
	StatusRejected:  {},
}

// ValidStatus reports whether s is one of the known offer states.
func ValidStatus(s string) bool {
	_, ok := allowedTransitions[s]
	return ok
}

// CanTransition reports whether the lifecycle allows moving from one state
// to another. Same-state moves are allowed as no-ops.
func CanTransition(from, to string) bool {
	if from == to {
		return true
	}
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// OfferService owns offer lifecycle transitions and, on acceptance, the
// materialization of the resulting investment.
type OfferService struct {
	stores Stores
	now    func() time.Time
}

func NewOfferService(stores Stores) *OfferService {
	return &OfferService{stores: stores, now: time.Now}
}

// StatusUpdate carries a partial status change: either field may be absent.
type StatusUpdate struct {
	Status *string `json:"status"`
	Note   *string `json:"note"`
}

// UpdateStatus applies a status and/or note change to an offer. When the
// change crosses into "accepted" the investment is created and the startup's
// valuation snapshot refreshed, all inside one store transaction, so a
// failure anywhere leaves no partial state behind.
func (s *OfferService) UpdateStatus(ctx context.Context, offerID uint, upd StatusUpdate) (*models.Offer, error) {
	var newStatus string
	if upd.Status != nil {
		newStatus = strings.ToLower(strings.TrimSpace(*upd.Status))
		if !ValidStatus(newStatus) {
			return nil, ErrInvalidStatus
		}
	}

	var out *models.Offer
	err := s.stores.Transaction(ctx, func(tx Stores) error {
		offer, err := tx.Offers().FindByID(ctx, offerID)
		if err != nil {
			return err
		}

		accepting := false
		if upd.Status != nil {
			if !CanTransition(offer.Status, newStatus) {
				return ErrInvalidTransition
			}
			accepting = offer.Status != StatusAccepted && newStatus == StatusAccepted
			offer.Status = newStatus
		}
		if upd.Note != nil {
			offer.Note = *upd.Note
		}
		offer.UpdatedAt = s.now()

		if err := tx.Offers().Save(ctx, offer); err != nil {
			return err
		}
		if accepting {
			if _, err := s.materialize(ctx, tx, offer); err != nil {
				return err
			}
		}
		out = offer
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
