package checkout

import (
	"bytes"
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront-checkout/pkg/enums"
	"github.com/angelmondragon/storefront-checkout/pkg/logger"
	"github.com/angelmondragon/storefront-checkout/pkg/types"
)

var errStoreDown = errors.New("store unavailable")

type stubOrders struct {
	orders map[uint64]*OrderSnapshot
	err    error
	calls  int
}

func newStubOrders(orders ...*OrderSnapshot) *stubOrders {
	s := &stubOrders{orders: map[uint64]*OrderSnapshot{}}
	for _, o := range orders {
		s.orders[o.ID] = o
	}
	return s
}

func (s *stubOrders) Get(_ context.Context, id uint64) (*OrderSnapshot, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	order, ok := s.orders[id]
	if !ok {
		return nil, ErrOrderNotFound
	}
	copied := *order
	return &copied, nil
}

type stubCaller struct {
	authenticated bool
	allowed       map[uint64]bool
	err           error
	calls         int
}

func (c *stubCaller) IsAuthenticated() bool { return c.authenticated }

func (c *stubCaller) CanPayForOrder(_ context.Context, id uint64) (bool, error) {
	c.calls++
	if c.err != nil {
		return false, c.err
	}
	return c.allowed[id], nil
}

type stubGateway struct {
	id      string
	current bool
}

func (g *stubGateway) ID() string          { return g.id }
func (g *stubGateway) Title() string       { return g.id }
func (g *stubGateway) Description() string { return "" }
func (g *stubGateway) SetAsCurrent()       { g.current = true }
func (g *stubGateway) IsCurrent() bool     { return g.current }

type stubRegistry struct {
	gateways []*stubGateway
	err      error
}

func (r *stubRegistry) AvailableGateways(context.Context, *OrderSnapshot) ([]Gateway, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := make([]Gateway, 0, len(r.gateways))
	for _, g := range r.gateways {
		out = append(out, g)
	}
	return out, nil
}

type noticeEntry struct {
	message  string
	severity enums.NoticeSeverity
}

type noticeBuffer struct {
	entries []noticeEntry
}

func (n *noticeBuffer) Add(message string, severity enums.NoticeSeverity) {
	n.entries = append(n.entries, noticeEntry{message: message, severity: severity})
}

func (n *noticeBuffer) Count(severity enums.NoticeSeverity) int {
	count := 0
	for _, e := range n.entries {
		if e.severity == severity {
			count++
		}
	}
	return count
}

type stubBilling struct {
	updates []BillingUpdate
	err     error
}

func (b *stubBilling) SetBillingLocation(_ context.Context, update BillingUpdate) error {
	if b.err != nil {
		return b.err
	}
	b.updates = append(b.updates, update)
	return nil
}

type stubSession struct {
	awaiting bool
	clears   int
	err      error
}

func (s *stubSession) ClearAwaitingPayment(context.Context) error {
	s.clears++
	if s.err != nil {
		return s.err
	}
	s.awaiting = false
	return nil
}

type stubCart struct {
	items    []CartItem
	calcs    int
	empties  int
	err      error
	onTotals func()
}

func (c *stubCart) IsEmpty(context.Context) (bool, error) {
	if c.err != nil {
		return false, c.err
	}
	return len(c.items) == 0, nil
}

func (c *stubCart) Items(context.Context) ([]CartItem, error) {
	return c.items, c.err
}

func (c *stubCart) CalculateTotals(context.Context) (CartTotals, error) {
	c.calcs++
	if c.onTotals != nil {
		c.onTotals()
	}
	total := decimal.Zero
	count := 0
	for _, item := range c.items {
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
		count += item.Quantity
	}
	money := types.NewMoney(total, enums.CurrencyUSD)
	return CartTotals{ItemCount: count, Subtotal: money, Total: money}, nil
}

func (c *stubCart) Empty(context.Context) error {
	c.empties++
	c.items = nil
	return nil
}

type recordingHooks struct {
	NopHooks
	events     []string
	buttonText string
	cartErrors []string
}

func (h *recordingHooks) BeforePay(context.Context, uint64) { h.events = append(h.events, "before") }

func (h *recordingHooks) AfterPay(context.Context, uint64) { h.events = append(h.events, "after") }

func (h *recordingHooks) Receipt(_ context.Context, method string, _ uint64) {
	h.events = append(h.events, "receipt:"+method)
}

func (h *recordingHooks) CheckCartItems(_ context.Context, _ Cart, notices NoticeSink) {
	h.events = append(h.events, "check_cart")
	for _, msg := range h.cartErrors {
		notices.Add(msg, enums.NoticeSeverityError)
	}
}

func (h *recordingHooks) PayButtonText(_ context.Context, text string) string {
	if h.buttonText != "" {
		return h.buttonText
	}
	return text
}

func (h *recordingHooks) fired(event string) bool {
	for _, e := range h.events {
		if e == event {
			return true
		}
	}
	return false
}

type scopeFixture struct {
	caller  *stubCaller
	billing *stubBilling
	session *stubSession
	cart    *stubCart
	notices *noticeBuffer
}

func newScope(caller *stubCaller) *scopeFixture {
	if caller == nil {
		caller = &stubCaller{}
	}
	return &scopeFixture{
		caller:  caller,
		billing: &stubBilling{},
		session: &stubSession{awaiting: true},
		cart:    &stubCart{},
		notices: &noticeBuffer{},
	}
}

func (f *scopeFixture) scope() Scope {
	return Scope{
		Caller:  f.caller,
		Billing: f.billing,
		Session: f.session,
		Cart:    f.cart,
		Notices: f.notices,
	}
}

func pendingOrder(id uint64, key string) *OrderSnapshot {
	owner := uuid.New()
	return &OrderSnapshot{
		ID:                 id,
		Key:                key,
		Status:             enums.OrderStatusPending,
		PaymentMethodID:    "bacs",
		PaymentMethodTitle: "Direct bank transfer",
		Billing:            BillingLocation{Country: "US", State: "CA", Postcode: "94107"},
		Total:              types.MoneyFromCents(123450, enums.CurrencyUSD),
		CheckoutPaymentURL: "https://shop.test/checkout/order-pay/42?pay_for_order=true&key=" + key,
		CreatedAt:          time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		CustomerID:         &owner,
	}
}

func payLink(key string) Request {
	return Request{Query: url.Values{ParamPayForOrder: {"true"}, ParamKey: {key}}}
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "checkout-test", Output: &bytes.Buffer{}})
}

func mustEngine(t *testing.T, orders OrderStore, registry GatewayRegistry, hooks Hooks) *Engine {
	t.Helper()
	engine, err := NewEngine(orders, registry, hooks, "")
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return engine
}
