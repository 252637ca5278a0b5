package models

import (
	"time"

	"gorm.io/datatypes"
)

type Investor struct {
	ID                  uint           `gorm:"primaryKey" json:"id"`
	UserID              uint           `gorm:"index;not null" json:"user_id"`
	LegalName           string         `gorm:"size:255" json:"legal_name"`
	Type                string         `gorm:"type:enum('angel','vc','corporate');default:'angel'" json:"type"`
	MinCheck            int64          `gorm:"default:0" json:"min_check"`
	MaxCheck            int64          `gorm:"default:0" json:"max_check"`
	PreferredIndustries datatypes.JSON `json:"preferred_industries,omitempty"`
	PreferredStages     datatypes.JSON `json:"preferred_stages,omitempty"`
	Description         string         `gorm:"type:text" json:"description,omitempty"`
	Website             string         `gorm:"size:255" json:"website,omitempty"`
	IsVerified          bool           `gorm:"default:false" json:"is_verified"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
}

func (Investor) TableName() string {
	return "investors"
}
