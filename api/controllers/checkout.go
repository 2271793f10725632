package controllers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/storefront-checkout/api/responses"
	"github.com/angelmondragon/storefront-checkout/internal/checkout"
	"github.com/angelmondragon/storefront-checkout/internal/notices"
	pkgerrors "github.com/angelmondragon/storefront-checkout/pkg/errors"
	"github.com/angelmondragon/storefront-checkout/pkg/logger"
)

const maxFormBytes = 1 << 20

type pageRouter interface {
	Handle(ctx context.Context, req checkout.Request, scope checkout.Scope) (*checkout.View, error)
}

// VarsFunc extracts the checkout endpoint variables of a matched route.
type VarsFunc func(r *http.Request) checkout.RouteVars

// CheckoutVars is used for the bare checkout page.
func CheckoutVars(*http.Request) checkout.RouteVars {
	return checkout.RouteVars{}
}

// OrderPayVars reads the order-pay endpoint variable.
func OrderPayVars(r *http.Request) checkout.RouteVars {
	return checkout.RouteVars{OrderPay: chi.URLParam(r, "orderId")}
}

// OrderReceivedVars marks the order-received endpoint, with or without an id.
func OrderReceivedVars(r *http.Request) checkout.RouteVars {
	return checkout.RouteVars{
		OrderReceived:    chi.URLParam(r, "orderId"),
		HasOrderReceived: true,
	}
}

// CheckoutPage renders the checkout, pay-for-order and order-received views.
func CheckoutPage(router pageRouter, scopes scopeBuilder, vars VarsFunc, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if router == nil || scopes == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout unavailable"))
			return
		}

		req, err := checkoutRequest(w, r, vars)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rs, err := scopes.Build(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := router.Handle(r.Context(), req, rs.Scope)
		if err != nil {
			if carryErr := rs.Carry(r.Context(), rs.Queue.Drain()); carryErr != nil && logg != nil {
				logg.Error(r.Context(), "checkout.notices.carry_failed", carryErr)
			}
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if view.Route.Deprecated {
			w.Header().Set("Deprecation", "true")
		}

		items := rs.Queue.Drain()
		if view.Checkout != nil && view.Checkout.Kind == checkout.GateEmpty {
			// nothing renders for an empty cart; notices wait for the next page
			if err := rs.Carry(r.Context(), items); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "carry notices"))
				return
			}
			items = []notices.Notice{}
		}

		responses.WriteSuccess(w, newViewResponse(view, items))
	}
}

func checkoutRequest(w http.ResponseWriter, r *http.Request, vars VarsFunc) (checkout.Request, error) {
	req := checkout.Request{Query: r.URL.Query()}
	if vars != nil {
		req.Vars = vars(r)
	}
	if r.Method == http.MethodPost {
		r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
		if err := r.ParseForm(); err != nil {
			return checkout.Request{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid form submission")
		}
		req.Form = r.PostForm
	}
	return req, nil
}
