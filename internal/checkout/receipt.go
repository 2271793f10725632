package checkout

import (
	"context"
	"errors"

	"go.uber.org/multierr"

	pkgerrors "github.com/angelmondragon/storefront-checkout/pkg/errors"
)

// Finalizer resolves the order shown on the thank-you page and resets the
// shopper's checkout state.
type Finalizer struct {
	orders OrderStore
	hooks  Hooks
}

// NewFinalizer builds the receipt finalizer.
func NewFinalizer(orders OrderStore, hooks Hooks) *Finalizer {
	if hooks == nil {
		hooks = NopHooks{}
	}
	return &Finalizer{orders: orders, hooks: hooks}
}

// Finalize returns the order matching id and key, or nil when there is none.
// The awaiting-payment marker and the cart are cleared in every case, so
// calling it again is safe.
func (f *Finalizer) Finalize(ctx context.Context, orderID uint64, key string, scope Scope) (*OrderSnapshot, error) {
	orderID = f.hooks.ReceiptOrderID(ctx, orderID)
	key = f.hooks.ReceiptOrderKey(ctx, key)

	var (
		order     *OrderSnapshot
		lookupErr error
	)
	if orderID > 0 {
		found, err := f.orders.Get(ctx, orderID)
		switch {
		case err == nil:
			if found.Matches(orderID, key) {
				order = found
			}
		case !errors.Is(err, ErrOrderNotFound):
			lookupErr = pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}
	}

	resetErr := multierr.Combine(
		scope.Session.ClearAwaitingPayment(ctx),
		scope.Cart.Empty(ctx),
	)
	if resetErr != nil {
		resetErr = pkgerrors.Wrap(pkgerrors.CodeDependency, resetErr, "reset checkout session")
	}
	if err := multierr.Append(lookupErr, resetErr); err != nil {
		return nil, err
	}
	return order, nil
}
