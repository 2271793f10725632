package checkout

import "context"

// Hooks are the extension points fired by the checkout flows. The core never
// consumes a hook's side effects; filters return the value to use.
type Hooks interface {
	// BeforePay fires when the pay page starts handling a request.
	BeforePay(ctx context.Context, orderID uint64)
	// AfterPay fires once the pay page outcome is known. It does not fire when
	// the shopper is sent to log in.
	AfterPay(ctx context.Context, orderID uint64)
	// CheckCartItems validates the cart before checkout and may add error notices.
	CheckCartItems(ctx context.Context, cart Cart, notices NoticeSink)
	// Receipt injects payment-method specific content for a continued payment.
	Receipt(ctx context.Context, paymentMethodID string, orderID uint64)
	// ReceiptOrderID filters the order id on the thank-you page.
	ReceiptOrderID(ctx context.Context, orderID uint64) uint64
	// ReceiptOrderKey filters the order key on the thank-you page.
	ReceiptOrderKey(ctx context.Context, key string) string
	// PayButtonText filters the label of the pay button.
	PayButtonText(ctx context.Context, text string) string
}

// NopHooks does nothing and passes filtered values through unchanged. Embed it
// to override a subset of hooks.
type NopHooks struct{}

func (NopHooks) BeforePay(context.Context, uint64) {}

func (NopHooks) AfterPay(context.Context, uint64) {}

func (NopHooks) CheckCartItems(context.Context, Cart, NoticeSink) {}

func (NopHooks) Receipt(context.Context, string, uint64) {}

func (NopHooks) ReceiptOrderID(_ context.Context, orderID uint64) uint64 { return orderID }

func (NopHooks) ReceiptOrderKey(_ context.Context, key string) string { return key }

func (NopHooks) PayButtonText(_ context.Context, text string) string { return text }

// Recorder receives decision counters.
type Recorder interface {
	ObserveRoute(kind string, deprecated bool)
	ObserveOutcome(kind, reason string)
	ObserveGate(kind string)
}

type nopRecorder struct{}

func (nopRecorder) ObserveRoute(string, bool) {}

func (nopRecorder) ObserveOutcome(string, string) {}

func (nopRecorder) ObserveGate(string) {}
