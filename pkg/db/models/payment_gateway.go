package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentGateway is a configured payment method. SortOrder defines the
// storefront's natural ordering; the first available gateway is preselected.
type PaymentGateway struct {
	ID          string           `gorm:"column:id;primaryKey"`
	Title       string           `gorm:"column:title;not null"`
	Description *string          `gorm:"column:description"`
	Enabled     bool             `gorm:"column:enabled;not null;default:false"`
	SortOrder   int              `gorm:"column:sort_order;not null;default:0"`
	Countries   []string         `gorm:"column:countries;type:jsonb;serializer:json"`
	MinTotal    *decimal.Decimal `gorm:"column:min_total;type:numeric(12,2)"`
	MaxTotal    *decimal.Decimal `gorm:"column:max_total;type:numeric(12,2)"`
	CreatedAt   time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
