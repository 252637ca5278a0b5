package services

import (
	"context"
	"errors"

	"project/models"
)

var (
	// ErrNotFound is returned by stores when the requested row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidStatus is returned when a status outside the known set is submitted.
	ErrInvalidStatus = errors.New("unknown offer status")
	// ErrInvalidTransition is returned when the offer lifecycle does not allow the requested edge.
	ErrInvalidTransition = errors.New("offer status transition not allowed")
	// ErrVersionConflict is returned when a startup write lost an optimistic concurrency check.
	ErrVersionConflict = errors.New("startup was modified concurrently, retry")
)

type OfferStore interface {
	FindByID(ctx context.Context, id uint) (*models.Offer, error)
	Save(ctx context.Context, offer *models.Offer) error
	ExistsByID(ctx context.Context, id uint) (bool, error)
}

type StartupStore interface {
	FindByID(ctx context.Context, id uint) (*models.Startup, error)
	Save(ctx context.Context, startup *models.Startup) error
}

type InvestmentStore interface {
	Save(ctx context.Context, inv *models.Investment) error
}

// Stores bundles the entity stores behind a single transactional boundary.
type Stores interface {
	Offers() OfferStore
	Startups() StartupStore
	Investments() InvestmentStore
	// Transaction runs fn against stores bound to one transaction; an error
	// from fn rolls back every write made inside it.
	Transaction(ctx context.Context, fn func(Stores) error) error
}
