package checkout

import (
	"context"

	"github.com/angelmondragon/storefront-checkout/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-checkout/pkg/errors"
)

// GateKind tags the decision of the checkout gate.
type GateKind string

const (
	GateEmpty            GateKind = "empty"
	GateShowCartErrors   GateKind = "show_cart_errors"
	GateShowCheckoutForm GateKind = "show_checkout_form"
)

// GateOutcome is what the checkout page renders. Totals are set whenever the
// cart was not empty.
type GateOutcome struct {
	Kind               GateKind
	TotalsRecalculated bool
	Totals             *CartTotals
}

// Gate prepares a fresh checkout.
type Gate struct {
	hooks Hooks
}

// NewGate builds the checkout gate. A nil hooks value falls back to NopHooks.
func NewGate(hooks Hooks) *Gate {
	if hooks == nil {
		hooks = NopHooks{}
	}
	return &Gate{hooks: hooks}
}

// Prepare validates the cart and recalculates its totals ahead of rendering.
func (g *Gate) Prepare(ctx context.Context, req Request, scope Scope) (GateOutcome, error) {
	empty, err := scope.Cart.IsEmpty(ctx)
	if err != nil {
		return GateOutcome{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read cart")
	}
	if empty {
		return GateOutcome{Kind: GateEmpty}, nil
	}

	g.hooks.CheckCartItems(ctx, scope.Cart, scope.Notices)

	totals, err := scope.Cart.CalculateTotals(ctx)
	if err != nil {
		return GateOutcome{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "recalculate cart totals")
	}

	errorCount := scope.Notices.Count(enums.NoticeSeverityError)
	if !req.Submitted() && errorCount > 0 {
		return GateOutcome{Kind: GateShowCartErrors, TotalsRecalculated: true, Totals: &totals}, nil
	}
	if req.UpdateTotals() && errorCount == 0 {
		scope.Notices.Add(MessageTotalsUpdated, enums.NoticeSeverityNotice)
	}

	return GateOutcome{Kind: GateShowCheckoutForm, TotalsRecalculated: true, Totals: &totals}, nil
}
