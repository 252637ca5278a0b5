package models

import "time"

// Investment is a realized capital commitment. Rows created by the offer
// acceptance workflow carry the originating OfferID as an idempotency key so
// one offer can never materialize twice; manually recorded investments leave
// it null.
type Investment struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	OfferID            *uint     `gorm:"uniqueIndex" json:"offer_id,omitempty"`
	StartupID          uint      `gorm:"index;not null" json:"startup_id"`
	InvestorID         uint      `gorm:"index;not null" json:"investor_id"`
	Amount             int64     `gorm:"not null;default:0" json:"amount"`
	Currency           string    `gorm:"size:10" json:"currency,omitempty"`
	EquityPercent      float64   `gorm:"type:decimal(5,2);default:0" json:"equity_percent"`
	ValuationPostMoney *float64  `json:"valuation_post_money,omitempty"`
	Status             string    `gorm:"size:50;default:'active'" json:"status"`
	Note               string    `gorm:"type:text" json:"note,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func (Investment) TableName() string {
	return "investments"
}
