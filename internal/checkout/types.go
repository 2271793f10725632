package checkout

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront-checkout/pkg/enums"
	"github.com/angelmondragon/storefront-checkout/pkg/types"
)

// OrderRef identifies an order by id plus its capability key. The key is not
// derivable from the id.
type OrderRef struct {
	ID  uint64
	Key string
}

// BillingLocation is the subset of a billing address that drives gateway
// availability and tax lookups.
type BillingLocation struct {
	Country  string `json:"country,omitempty"`
	State    string `json:"state,omitempty"`
	Postcode string `json:"postcode,omitempty"`
}

// BillingUpdate overwrites a caller's stored billing location. A nil field
// clears the stored value.
type BillingUpdate struct {
	Country  *string `json:"country,omitempty"`
	State    *string `json:"state,omitempty"`
	Postcode *string `json:"postcode,omitempty"`
}

// OrderSnapshot is a read-only view of an order taken at decision time.
type OrderSnapshot struct {
	ID                 uint64
	Key                string
	Status             enums.OrderStatus
	PaymentMethodID    string
	PaymentMethodTitle string
	Billing            BillingLocation
	Total              types.Money
	CheckoutPaymentURL string
	CreatedAt          time.Time
	CustomerID         *uuid.UUID
}

// Ref returns the id/key pair of the order.
func (o *OrderSnapshot) Ref() OrderRef {
	return OrderRef{ID: o.ID, Key: o.Key}
}

// NeedsPayment is derived from the live status on every call.
func (o *OrderSnapshot) NeedsPayment() bool {
	return o.Status.NeedsPayment()
}

// Number is the shopper-facing order number.
func (o *OrderSnapshot) Number() string {
	return strconv.FormatUint(o.ID, 10)
}

// Matches reports whether the snapshot carries exactly the supplied id and key.
func (o *OrderSnapshot) Matches(id uint64, key string) bool {
	return o != nil && o.ID == id && o.Key == key
}

// CartItem is a line in the session cart.
type CartItem struct {
	ProductID string          `json:"product_id" validate:"required,max=64"`
	Name      string          `json:"name" validate:"required,max=200"`
	Quantity  int             `json:"quantity" validate:"gt=0,lte=9999"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Stock     *int            `json:"stock,omitempty" validate:"omitempty,gte=0"`
}

// CartTotals are the recalculated monetary totals of a cart.
type CartTotals struct {
	ItemCount int         `json:"item_count"`
	Subtotal  types.Money `json:"subtotal"`
	Total     types.Money `json:"total"`
}
