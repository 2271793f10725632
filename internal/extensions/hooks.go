package extensions

import (
	"context"

	"github.com/angelmondragon/storefront-checkout/internal/checkout"
	"github.com/angelmondragon/storefront-checkout/pkg/logger"
)

// CartChecker validates cart lines before checkout.
type CartChecker interface {
	Check(ctx context.Context, cart checkout.Cart, sink checkout.NoticeSink)
}

// ReceiptHandler contributes payment-method specific receipt content.
type ReceiptHandler func(ctx context.Context, orderID uint64)

// Hooks is the storefront's set of checkout extension points.
type Hooks struct {
	checkout.NopHooks

	logg     *logger.Logger
	cart     CartChecker
	receipts map[string]ReceiptHandler
}

// Option customises Hooks.
type Option func(*Hooks)

// WithCartChecker runs checker on every checkout page load.
func WithCartChecker(checker CartChecker) Option {
	return func(h *Hooks) { h.cart = checker }
}

// WithReceiptHandler registers the receipt handler of a payment method.
func WithReceiptHandler(paymentMethodID string, handler ReceiptHandler) Option {
	return func(h *Hooks) {
		if handler != nil {
			h.receipts[paymentMethodID] = handler
		}
	}
}

func New(logg *logger.Logger, opts ...Option) *Hooks {
	h := &Hooks{logg: logg, receipts: map[string]ReceiptHandler{}}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Hooks) BeforePay(ctx context.Context, orderID uint64) {
	h.debug(ctx, orderID, "checkout.pay.before")
}

func (h *Hooks) AfterPay(ctx context.Context, orderID uint64) {
	h.debug(ctx, orderID, "checkout.pay.after")
}

func (h *Hooks) CheckCartItems(ctx context.Context, cart checkout.Cart, sink checkout.NoticeSink) {
	if h.cart != nil {
		h.cart.Check(ctx, cart, sink)
	}
}

func (h *Hooks) Receipt(ctx context.Context, paymentMethodID string, orderID uint64) {
	handler, ok := h.receipts[paymentMethodID]
	if !ok {
		return
	}
	handler(ctx, orderID)
}

func (h *Hooks) debug(ctx context.Context, orderID uint64, msg string) {
	if h.logg == nil {
		return
	}
	h.logg.Debug(h.logg.WithOrderID(ctx, orderID), msg)
}
