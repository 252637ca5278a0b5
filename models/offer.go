package models

import "time"

type OfferAttachment struct {
	ID      uint   `gorm:"primaryKey" json:"-"`
	OfferID uint   `gorm:"index;not null" json:"-"`
	URL     string `gorm:"size:500;not null" json:"url"`
	Name    string `gorm:"size:255" json:"name"`
}

func (OfferAttachment) TableName() string {
	return "offer_attachments"
}

type Offer struct {
	ID            uint              `gorm:"primaryKey" json:"id"`
	StartupID     uint              `gorm:"index;not null" json:"startup_id"`
	InvestorID    uint              `gorm:"index;not null" json:"investor_id"`
	Title         string            `gorm:"size:255" json:"title"`
	Amount        int64             `gorm:"not null;default:0" json:"amount"`
	EquityPercent float64           `gorm:"type:decimal(5,2);default:0" json:"equity_percent"`
	Type          string            `gorm:"type:enum('offer','term-sheet');default:'offer'" json:"type"`
	Visibility    string            `gorm:"type:enum('private','public');default:'private'" json:"visibility"`
	Status        string            `gorm:"type:enum('sent','accepted','rejected','countered');default:'sent'" json:"status"`
	Attachments   []OfferAttachment `gorm:"foreignKey:OfferID;constraint:OnDelete:CASCADE" json:"attachments"`
	Note          string            `gorm:"type:text" json:"note,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

func (Offer) TableName() string {
	return "offers"
}
