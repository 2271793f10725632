package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront-checkout/pkg/enums"
)

// Order is a storefront purchase record. OrderKey is the capability token
// embedded in pay and receipt links.
type Order struct {
	ID                 uint64            `gorm:"column:id;primaryKey;autoIncrement"`
	OrderKey           string            `gorm:"column:order_key;not null;uniqueIndex"`
	CustomerID         *uuid.UUID        `gorm:"column:customer_id;type:uuid"`
	Status             enums.OrderStatus `gorm:"column:status;type:text;not null;default:'pending'"`
	Currency           enums.Currency    `gorm:"column:currency;type:text;not null;default:'USD'"`
	Total              decimal.Decimal   `gorm:"column:total;type:numeric(12,2);not null"`
	PaymentMethodID    *string           `gorm:"column:payment_method_id"`
	PaymentMethodTitle *string           `gorm:"column:payment_method_title"`
	BillingCountry     *string           `gorm:"column:billing_country"`
	BillingState       *string           `gorm:"column:billing_state"`
	BillingPostcode    *string           `gorm:"column:billing_postcode"`
	CreatedAt          time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
