package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront-checkout/api/responses"
	"github.com/angelmondragon/storefront-checkout/api/validators"
	"github.com/angelmondragon/storefront-checkout/internal/checkout"
	"github.com/angelmondragon/storefront-checkout/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-checkout/pkg/errors"
	"github.com/angelmondragon/storefront-checkout/pkg/logger"
)

// MessageCartUpdated is queued for the next page after the cart changes.
const MessageCartUpdated = "Cart updated."

type replaceCartRequest struct {
	Items []cartItemRequest `json:"items" validate:"max=100,dive"`
}

type cartItemRequest struct {
	ProductID string          `json:"product_id" validate:"required,max=64"`
	Name      string          `json:"name" validate:"required,max=200"`
	Quantity  int             `json:"quantity" validate:"gt=0,lte=9999"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Stock     *int            `json:"stock,omitempty" validate:"omitempty,gte=0"`
}

func (req replaceCartRequest) toItems() ([]checkout.CartItem, error) {
	items := make([]checkout.CartItem, 0, len(req.Items))
	for i, item := range req.Items {
		if item.UnitPrice.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
				WithDetails(map[string]any{"field": "items", "index": i, "unit_price": "must not be negative"})
		}
		items = append(items, checkout.CartItem{
			ProductID: validators.SanitizeString(item.ProductID, 64),
			Name:      validators.SanitizeString(item.Name, 200),
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Stock:     item.Stock,
		})
	}
	return items, nil
}

type cartResponse struct {
	Items  []checkout.CartItem `json:"items"`
	Totals *totalsDTO          `json:"totals"`
}

// CartReplace swaps the session cart's contents for the submitted items.
func CartReplace(scopes scopeBuilder, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if scopes == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart unavailable"))
			return
		}

		var payload replaceCartRequest
		if err := validators.DecodeJSONBody(w, r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		items, err := payload.toItems()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rs, err := scopes.Build(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		if err := rs.Items.Replace(ctx, items); err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "replace cart"))
			return
		}
		totals, err := rs.Cart.CalculateTotals(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "calculate totals"))
			return
		}

		rs.Queue.Add(MessageCartUpdated, enums.NoticeSeveritySuccess)
		if err := rs.Carry(ctx, rs.Queue.Drain()); err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "carry notices"))
			return
		}

		responses.WriteSuccess(w, cartResponse{Items: items, Totals: newTotalsDTO(totals)})
	}
}
