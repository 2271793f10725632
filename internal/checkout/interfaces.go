package checkout

import (
	"context"
	"errors"

	"github.com/angelmondragon/storefront-checkout/pkg/enums"
)

// ErrOrderNotFound is returned by an OrderStore when no order has the id.
var ErrOrderNotFound = errors.New("order not found")

// OrderStore resolves orders by id.
type OrderStore interface {
	Get(ctx context.Context, id uint64) (*OrderSnapshot, error)
}

// Caller answers identity and capability questions about the current shopper.
// CanPayForOrder is evaluated on every call and must not be cached.
type Caller interface {
	IsAuthenticated() bool
	CanPayForOrder(ctx context.Context, orderID uint64) (bool, error)
}

// Gateway is a payment method offered on the pay page.
type Gateway interface {
	ID() string
	Title() string
	Description() string
	SetAsCurrent()
	IsCurrent() bool
}

// GatewayRegistry lists the gateways that can take payment for an order, in
// the storefront's natural ordering.
type GatewayRegistry interface {
	AvailableGateways(ctx context.Context, order *OrderSnapshot) ([]Gateway, error)
}

// NoticeSink collects shopper-facing notices. The HTTP layer drains it.
type NoticeSink interface {
	Add(message string, severity enums.NoticeSeverity)
	Count(severity enums.NoticeSeverity) int
}

// BillingProfile is the caller's stored billing location.
type BillingProfile interface {
	SetBillingLocation(ctx context.Context, update BillingUpdate) error
}

// Session is the caller's browsing session.
type Session interface {
	ClearAwaitingPayment(ctx context.Context) error
}

// Cart is the caller's session cart.
type Cart interface {
	IsEmpty(ctx context.Context) (bool, error)
	Items(ctx context.Context) ([]CartItem, error)
	CalculateTotals(ctx context.Context) (CartTotals, error)
	Empty(ctx context.Context) error
}

// Scope bundles the request-scoped collaborators of a single shopper request.
// Nothing in this package keeps per-shopper state outside a Scope.
type Scope struct {
	Caller  Caller
	Billing BillingProfile
	Session Session
	Cart    Cart
	Notices NoticeSink
}
