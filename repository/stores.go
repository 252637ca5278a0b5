package repository

import (
	"context"
	"errors"

	"project/models"
	"project/services"

	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Stores implements services.Stores on top of GORM. Lookups made inside a
// Transaction take SELECT ... FOR UPDATE row locks so concurrent acceptances
// against the same offer or startup serialize at the database.
type Stores struct {
	db   *gorm.DB
	inTx bool
}

func NewStores(db *gorm.DB) *Stores {
	return &Stores{db: db}
}

func (s *Stores) Offers() services.OfferStore           { return &offerStore{s} }
func (s *Stores) Startups() services.StartupStore       { return &startupStore{s} }
func (s *Stores) Investments() services.InvestmentStore { return &investmentStore{s} }

func (s *Stores) Transaction(ctx context.Context, fn func(services.Stores) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Stores{db: tx, inTx: true})
	})
}

func (s *Stores) reader(ctx context.Context) *gorm.DB {
	db := s.db.WithContext(ctx)
	if s.inTx {
		db = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return db
}

func mapErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return services.ErrNotFound
	}
	return err
}

// IsDuplicateKey reports whether err is a MySQL duplicate-entry error (1062),
// e.g. a unique index violation on startup slugs or investment offer ids.
func IsDuplicateKey(err error) bool {
	var me *mysqldriver.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}

type offerStore struct{ *Stores }

func (s *offerStore) FindByID(ctx context.Context, id uint) (*models.Offer, error) {
	var offer models.Offer
	if err := s.reader(ctx).Preload("Attachments").First(&offer, id).Error; err != nil {
		return nil, mapErr(err)
	}
	return &offer, nil
}

func (s *offerStore) Save(ctx context.Context, offer *models.Offer) error {
	return s.db.WithContext(ctx).Omit(clause.Associations).Save(offer).Error
}

func (s *offerStore) ExistsByID(ctx context.Context, id uint) (bool, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&models.Offer{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

type startupStore struct{ *Stores }

func (s *startupStore) FindByID(ctx context.Context, id uint) (*models.Startup, error) {
	var startup models.Startup
	if err := s.reader(ctx).First(&startup, id).Error; err != nil {
		return nil, mapErr(err)
	}
	return &startup, nil
}

// Save persists a startup with an optimistic version check: the write only
// lands when the row still carries the version the caller read.
func (s *startupStore) Save(ctx context.Context, startup *models.Startup) error {
	db := s.db.WithContext(ctx)
	if startup.ID == 0 {
		return db.Create(startup).Error
	}
	prev := startup.Version
	startup.Version = prev + 1
	res := db.Model(&models.Startup{}).
		Where("id = ? AND version = ?", startup.ID, prev).
		Select("*").Omit("id", "created_at").
		Updates(startup)
	if res.Error != nil {
		startup.Version = prev
		return res.Error
	}
	if res.RowsAffected == 0 {
		startup.Version = prev
		return services.ErrVersionConflict
	}
	return nil
}

type investmentStore struct{ *Stores }

func (s *investmentStore) Save(ctx context.Context, inv *models.Investment) error {
	db := s.db.WithContext(ctx)
	if inv.ID == 0 {
		return db.Create(inv).Error
	}
	return db.Save(inv).Error
}
