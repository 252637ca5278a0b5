package models

import (
	"time"

	"gorm.io/datatypes"
)

// MetricsSnapshot is the cached financial summary embedded in a Startup
// document. A nil snapshot means no metrics have been recorded yet.
type MetricsSnapshot struct {
	Mrr                *float64 `json:"mrr,omitempty"`
	Users              *int     `json:"users,omitempty"`
	ValuationPreMoney  *float64 `json:"valuation_pre_money,omitempty"`
	ValuationPostMoney *float64 `json:"valuation_post_money,omitempty"`
}

type Startup struct {
	ID              uint             `gorm:"primaryKey" json:"id"`
	Name            string           `gorm:"size:255;not null" json:"name"`
	Slug            string           `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	FounderID       uint             `gorm:"index" json:"founder_id"`
	Stage           string           `gorm:"type:enum('idea','incubation','seed','growth');default:'idea'" json:"stage"`
	Industry        string           `gorm:"size:100" json:"industry,omitempty"`
	ShortPitch      string           `gorm:"size:500" json:"short_pitch,omitempty"`
	Description     string           `gorm:"type:text" json:"description,omitempty"`
	Website         string           `gorm:"size:255" json:"website,omitempty"`
	LogoURL         string           `gorm:"size:500" json:"logo_url,omitempty"`
	MetricsSnapshot *MetricsSnapshot `gorm:"serializer:json" json:"metrics_snapshot,omitempty"`
	Attachments     datatypes.JSON   `json:"attachments,omitempty"`
	Visibility      string           `gorm:"type:enum('public','private');default:'public'" json:"visibility"`
	Version         uint             `gorm:"not null;default:0" json:"-"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

func (Startup) TableName() string {
	return "startups"
}
