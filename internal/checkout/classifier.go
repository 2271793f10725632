package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/angelmondragon/storefront-checkout/pkg/enums"
)

// RouteKind selects the flow handling a checkout request.
type RouteKind string

const (
	RoutePayForOrder   RouteKind = "pay_for_order"
	RouteOrderReceived RouteKind = "order_received"
	RouteCheckout      RouteKind = "checkout"
)

// RouteIntent is the single flow chosen for a request.
type RouteIntent struct {
	Kind    RouteKind
	OrderID uint64
	// Deprecated is set when the intent came from an old ?order=&key= link.
	Deprecated bool
}

// Classifier maps request input to a RouteIntent.
type Classifier struct {
	orders      OrderStore
	legacyLinks bool
}

// NewClassifier builds a classifier. orders is only read for legacy links.
func NewClassifier(orders OrderStore, legacyLinks bool) (*Classifier, error) {
	if legacyLinks && orders == nil {
		return nil, fmt.Errorf("order store required for legacy links")
	}
	return &Classifier{orders: orders, legacyLinks: legacyLinks}, nil
}

// Classify picks the flow for req. It never mutates anything; the only
// collaborator call is the order lookup behind legacy links.
func (c *Classifier) Classify(ctx context.Context, req Request) (RouteIntent, error) {
	if c.legacyLinks && req.Query.Has(ParamLegacyOrder) && req.Query.Has(ParamKey) {
		return c.classifyLegacy(ctx, req)
	}

	if strings.TrimSpace(req.Vars.OrderPay) != "" {
		return RouteIntent{Kind: RoutePayForOrder, OrderID: ParseOrderID(req.Vars.OrderPay)}, nil
	}

	if req.Vars.HasOrderReceived {
		return RouteIntent{Kind: RouteOrderReceived, OrderID: ParseOrderID(req.Vars.OrderReceived)}, nil
	}

	return RouteIntent{Kind: RouteCheckout}, nil
}

func (c *Classifier) classifyLegacy(ctx context.Context, req Request) (RouteIntent, error) {
	id := ParseOrderID(req.Query.Get(ParamLegacyOrder))
	intent := RouteIntent{Kind: RouteOrderReceived, OrderID: id, Deprecated: true}
	if id == 0 {
		return intent, nil
	}

	order, err := c.orders.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			return intent, nil
		}
		return RouteIntent{}, fmt.Errorf("classify legacy link: %w", err)
	}
	if order.Status == enums.OrderStatusPending {
		intent.Kind = RoutePayForOrder
	}
	return intent, nil
}
