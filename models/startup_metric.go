package models

import (
	"time"

	"gorm.io/datatypes"
)

// StartupMetric is one point in a startup's reported metrics series.
type StartupMetric struct {
	ID                 uint           `gorm:"primaryKey" json:"id"`
	StartupID          uint           `gorm:"not null;index:idx_startup_date,priority:1" json:"startup_id"`
	Date               time.Time      `gorm:"not null;index:idx_startup_date,priority:2,sort:desc" json:"date"`
	Mrr                *float64       `json:"mrr,omitempty"`
	ActiveUsers        *int           `json:"active_users,omitempty"`
	BurnRate           *float64       `json:"burn_rate,omitempty"`
	ValuationPreMoney  *float64       `json:"valuation_pre_money,omitempty"`
	ValuationPostMoney *float64       `json:"valuation_post_money,omitempty"`
	Other              datatypes.JSON `json:"other,omitempty"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
}

func (StartupMetric) TableName() string {
	return "startup_metrics"
}
