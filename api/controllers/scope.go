package controllers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-checkout/api/middleware"
	"github.com/angelmondragon/storefront-checkout/internal/cart"
	"github.com/angelmondragon/storefront-checkout/internal/checkout"
	"github.com/angelmondragon/storefront-checkout/internal/customers"
	"github.com/angelmondragon/storefront-checkout/internal/notices"
	"github.com/angelmondragon/storefront-checkout/internal/permissions"
	"github.com/angelmondragon/storefront-checkout/internal/session"
	pkgerrors "github.com/angelmondragon/storefront-checkout/pkg/errors"
)

type noticeCarrier interface {
	QueueNotices(ctx context.Context, items []notices.Notice) error
}

type itemReplacer interface {
	Replace(ctx context.Context, items []checkout.CartItem) error
}

// RequestScope is the per-request shopper context handed to the checkout
// router, plus the notice queue the response drains.
type RequestScope struct {
	checkout.Scope
	Queue   *notices.Queue
	Items   itemReplacer
	carrier noticeCarrier
}

// Carry keeps notices for the next page the shopper sees.
func (rs *RequestScope) Carry(ctx context.Context, items []notices.Notice) error {
	if rs.carrier == nil {
		return nil
	}
	return rs.carrier.QueueNotices(ctx, items)
}

type scopeBuilder interface {
	Build(r *http.Request) (*RequestScope, error)
}

// ScopeFactory assembles a RequestScope from the session and identity the
// middleware resolved.
type ScopeFactory struct {
	owners    permissions.OwnerLookup
	sessions  *session.Store
	carts     *cart.Store
	customers *customers.Repository
}

func NewScopeFactory(owners permissions.OwnerLookup, sessions *session.Store, carts *cart.Store, customerRepo *customers.Repository) *ScopeFactory {
	return &ScopeFactory{owners: owners, sessions: sessions, carts: carts, customers: customerRepo}
}

func (f *ScopeFactory) Build(r *http.Request) (*RequestScope, error) {
	ctx := r.Context()

	sessionID := middleware.SessionIDFromContext(ctx)
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeMisconfigured, "session middleware not installed")
	}

	var userID *uuid.UUID
	if raw := middleware.UserIDFromContext(ctx); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid user id")
		}
		userID = &parsed
	}

	state, err := f.sessions.Open(ctx, sessionID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "open session")
	}
	carried, err := state.TakeNotices(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load notices")
	}

	var billing checkout.BillingProfile = state
	if userID != nil {
		billing = customers.NewProfile(f.customers, *userID)
	}

	queue := notices.NewQueue(carried...)
	sessionCart := f.carts.For(sessionID)
	return &RequestScope{
		Scope: checkout.Scope{
			Caller:  permissions.NewOracle(f.owners, userID),
			Billing: billing,
			Session: state,
			Cart:    sessionCart,
			Notices: queue,
		},
		Queue:   queue,
		Items:   sessionCart,
		carrier: state,
	}, nil
}
