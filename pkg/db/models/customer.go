package models

import (
	"time"

	"github.com/google/uuid"
)

// Customer holds the stored billing profile of a registered shopper. The ID
// matches the user id carried in access tokens.
type Customer struct {
	ID              uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	BillingCountry  *string   `gorm:"column:billing_country"`
	BillingState    *string   `gorm:"column:billing_state"`
	BillingPostcode *string   `gorm:"column:billing_postcode"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
