package checkout

import (
	"context"
	"errors"
	"fmt"

	"github.com/angelmondragon/storefront-checkout/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-checkout/pkg/errors"
)

// Engine decides what the pay page shows for an order.
type Engine struct {
	orders     OrderStore
	gateways   GatewayRegistry
	hooks      Hooks
	buttonText string
}

// NewEngine builds the payment authorization engine. A nil hooks value falls
// back to NopHooks and an empty button text to DefaultPayButtonText.
func NewEngine(orders OrderStore, gateways GatewayRegistry, hooks Hooks, buttonText string) (*Engine, error) {
	if orders == nil {
		return nil, fmt.Errorf("order store required")
	}
	if gateways == nil {
		return nil, fmt.Errorf("gateway registry required")
	}
	if hooks == nil {
		hooks = NopHooks{}
	}
	if buttonText == "" {
		buttonText = DefaultPayButtonText
	}
	return &Engine{orders: orders, gateways: gateways, hooks: hooks, buttonText: buttonText}, nil
}

// Authorize runs the pay page flow for orderID. Expected refusals come back as
// rejected outcomes; the error is reserved for collaborator failures.
func (e *Engine) Authorize(ctx context.Context, req Request, orderID uint64, scope Scope) (AuthorizationOutcome, error) {
	e.hooks.BeforePay(ctx, orderID)

	var (
		outcome AuthorizationOutcome
		err     error
	)
	key, hasKey := req.Key()
	switch {
	case orderID == 0:
		outcome = reject(enums.RejectionReasonInvalidOrder, MessageMissingOrder)
	case req.PayForOrder() && hasKey:
		outcome, err = e.directPay(ctx, orderID, key, scope)
	default:
		outcome, err = e.continuation(ctx, orderID, CleanKey(key))
	}
	if err != nil {
		return AuthorizationOutcome{}, err
	}
	if outcome.Kind == OutcomeShowLoginPrompt {
		return outcome, nil
	}

	e.hooks.AfterPay(ctx, orderID)
	return outcome, nil
}

// directPay handles an explicit "pay for this order" link. The key is
// compared exactly as supplied.
func (e *Engine) directPay(ctx context.Context, orderID uint64, key string, scope Scope) (AuthorizationOutcome, error) {
	order, err := e.load(ctx, orderID)
	if err != nil {
		return AuthorizationOutcome{}, err
	}
	if !order.Matches(orderID, key) {
		return reject(enums.RejectionReasonInvalidOrder, MessageInvalidOrder), nil
	}

	allowed, err := scope.Caller.CanPayForOrder(ctx, orderID)
	if err != nil {
		return AuthorizationOutcome{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check order permission")
	}
	if !allowed {
		if !scope.Caller.IsAuthenticated() {
			return AuthorizationOutcome{
				Kind:        OutcomeShowLoginPrompt,
				LoginPrompt: &LoginPrompt{RedirectURL: order.CheckoutPaymentURL, Message: MessageLoginToPay},
			}, nil
		}
		return reject(enums.RejectionReasonNotAuthorized, MessageNotAuthorized), nil
	}

	if !order.NeedsPayment() {
		return rejectStatus(order.Status), nil
	}

	if err := scope.Billing.SetBillingLocation(ctx, billingFromOrder(order)); err != nil {
		return AuthorizationOutcome{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sync billing location")
	}

	gateways, err := e.gateways.AvailableGateways(ctx, order)
	if err != nil {
		return AuthorizationOutcome{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list payment gateways")
	}
	if len(gateways) > 0 {
		gateways[0].SetAsCurrent()
	}

	return AuthorizationOutcome{
		Kind: OutcomeShowPaymentForm,
		PaymentForm: &PaymentForm{
			Order:      order,
			Gateways:   gateways,
			ButtonText: e.hooks.PayButtonText(ctx, e.buttonText),
		},
	}, nil
}

// continuation handles the return from checkout for an order that still
// awaits payment.
func (e *Engine) continuation(ctx context.Context, orderID uint64, key string) (AuthorizationOutcome, error) {
	order, err := e.load(ctx, orderID)
	if err != nil {
		return AuthorizationOutcome{}, err
	}
	if !order.Matches(orderID, key) {
		return reject(enums.RejectionReasonInvalidOrder, MessageInvalidOrder), nil
	}
	if !order.NeedsPayment() {
		return rejectStatus(order.Status), nil
	}

	instructions := &PaymentInstructions{
		OrderID:            order.ID,
		OrderNumber:        order.Number(),
		CreatedAt:          order.CreatedAt,
		FormattedTotal:     order.Total.Format(),
		PaymentMethodID:    order.PaymentMethodID,
		PaymentMethodTitle: order.PaymentMethodTitle,
	}
	e.hooks.Receipt(ctx, order.PaymentMethodID, order.ID)

	return AuthorizationOutcome{Kind: OutcomeShowPaymentInstructions, Instructions: instructions}, nil
}

// load returns nil without error when the order does not exist.
func (e *Engine) load(ctx context.Context, orderID uint64) (*OrderSnapshot, error) {
	order, err := e.orders.Get(ctx, orderID)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return order, nil
}

// billingFromOrder copies the order's billing location. Fields the order
// leaves empty become nil and clear the caller's stored value.
func billingFromOrder(order *OrderSnapshot) BillingUpdate {
	return BillingUpdate{
		Country:  nonEmpty(order.Billing.Country),
		State:    nonEmpty(order.Billing.State),
		Postcode: nonEmpty(order.Billing.Postcode),
	}
}

func nonEmpty(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
