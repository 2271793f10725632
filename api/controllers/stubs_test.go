package controllers

import (
	"context"
	"net/http"

	"github.com/angelmondragon/storefront-checkout/internal/checkout"
	"github.com/angelmondragon/storefront-checkout/internal/notices"
	"github.com/angelmondragon/storefront-checkout/pkg/enums"
	"github.com/angelmondragon/storefront-checkout/pkg/types"
	"github.com/shopspring/decimal"
)

type stubPageRouter struct {
	view    *checkout.View
	err     error
	gotReq  checkout.Request
	onRoute func(scope checkout.Scope)
}

func (s *stubPageRouter) Handle(ctx context.Context, req checkout.Request, scope checkout.Scope) (*checkout.View, error) {
	s.gotReq = req
	if s.onRoute != nil {
		s.onRoute(scope)
	}
	return s.view, s.err
}

type stubCarrier struct {
	carried [][]notices.Notice
	err     error
}

func (s *stubCarrier) QueueNotices(ctx context.Context, items []notices.Notice) error {
	s.carried = append(s.carried, items)
	return s.err
}

type stubCart struct {
	items   []checkout.CartItem
	replace error
}

func (c *stubCart) IsEmpty(context.Context) (bool, error) {
	return len(c.items) == 0, nil
}

func (c *stubCart) Items(context.Context) ([]checkout.CartItem, error) {
	return c.items, nil
}

func (c *stubCart) CalculateTotals(context.Context) (checkout.CartTotals, error) {
	total := decimal.Zero
	count := 0
	for _, item := range c.items {
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
		count += item.Quantity
	}
	money := types.NewMoney(total, enums.CurrencyUSD)
	return checkout.CartTotals{ItemCount: count, Subtotal: money, Total: money}, nil
}

func (c *stubCart) Empty(context.Context) error {
	c.items = nil
	return nil
}

func (c *stubCart) Replace(ctx context.Context, items []checkout.CartItem) error {
	if c.replace != nil {
		return c.replace
	}
	c.items = items
	return nil
}

type stubScopes struct {
	scope   *RequestScope
	err     error
	carrier *stubCarrier
	cart    *stubCart
}

func newStubScopes(carried ...notices.Notice) *stubScopes {
	carrier := &stubCarrier{}
	cart := &stubCart{}
	queue := notices.NewQueue(carried...)
	return &stubScopes{
		scope: &RequestScope{
			Scope:   checkout.Scope{Cart: cart, Notices: queue},
			Queue:   queue,
			Items:   cart,
			carrier: carrier,
		},
		carrier: carrier,
		cart:    cart,
	}
}

func (s *stubScopes) Build(*http.Request) (*RequestScope, error) {
	return s.scope, s.err
}
