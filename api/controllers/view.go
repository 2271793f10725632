package controllers

import (
	"time"

	"github.com/angelmondragon/storefront-checkout/internal/checkout"
	"github.com/angelmondragon/storefront-checkout/internal/notices"
	"github.com/angelmondragon/storefront-checkout/pkg/types"
)

type viewResponse struct {
	Route    routeResponse     `json:"route"`
	Payment  *paymentResponse  `json:"payment,omitempty"`
	Checkout *checkoutResponse `json:"checkout,omitempty"`
	Receipt  *receiptResponse  `json:"receipt,omitempty"`
	Notices  []notices.Notice  `json:"notices"`
}

type routeResponse struct {
	Kind       string `json:"kind"`
	OrderID    uint64 `json:"order_id,omitempty"`
	Deprecated bool   `json:"deprecated,omitempty"`
}

type paymentResponse struct {
	Kind         string                `json:"kind"`
	PaymentForm  *paymentFormResponse  `json:"payment_form,omitempty"`
	LoginPrompt  *loginPromptResponse  `json:"login_prompt,omitempty"`
	Instructions *instructionsResponse `json:"instructions,omitempty"`
	Rejection    *rejectionResponse    `json:"rejection,omitempty"`
}

type paymentFormResponse struct {
	Order      orderResponse     `json:"order"`
	Gateways   []gatewayResponse `json:"gateways"`
	ButtonText string            `json:"button_text"`
}

type gatewayResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Current     bool   `json:"current"`
}

type loginPromptResponse struct {
	RedirectURL string `json:"redirect_url"`
	Message     string `json:"message"`
}

type instructionsResponse struct {
	OrderID            uint64    `json:"order_id"`
	OrderNumber        string    `json:"order_number"`
	CreatedAt          time.Time `json:"created_at"`
	Total              string    `json:"total"`
	PaymentMethodID    string    `json:"payment_method_id,omitempty"`
	PaymentMethodTitle string    `json:"payment_method_title,omitempty"`
}

type rejectionResponse struct {
	Reason  string `json:"reason"`
	Status  string `json:"status,omitempty"`
	Message string `json:"message"`
}

type checkoutResponse struct {
	Kind               string     `json:"kind"`
	TotalsRecalculated bool       `json:"totals_recalculated"`
	Totals             *totalsDTO `json:"totals,omitempty"`
}

type totalsDTO struct {
	ItemCount      int         `json:"item_count"`
	Subtotal       types.Money `json:"subtotal"`
	Total          types.Money `json:"total"`
	FormattedTotal string      `json:"formatted_total"`
}

type receiptResponse struct {
	Order *orderResponse `json:"order"`
}

type orderResponse struct {
	ID                 uint64                   `json:"id"`
	Number             string                   `json:"number"`
	Status             string                   `json:"status"`
	StatusLabel        string                   `json:"status_label"`
	Total              types.Money              `json:"total"`
	FormattedTotal     string                   `json:"formatted_total"`
	PaymentMethodID    string                   `json:"payment_method_id,omitempty"`
	PaymentMethodTitle string                   `json:"payment_method_title,omitempty"`
	Billing            checkout.BillingLocation `json:"billing"`
	NeedsPayment       bool                     `json:"needs_payment"`
	PaymentURL         string                   `json:"payment_url,omitempty"`
	CreatedAt          time.Time                `json:"created_at"`
}

func newViewResponse(view *checkout.View, items []notices.Notice) viewResponse {
	if items == nil {
		items = []notices.Notice{}
	}
	resp := viewResponse{
		Route: routeResponse{
			Kind:       string(view.Route.Kind),
			OrderID:    view.Route.OrderID,
			Deprecated: view.Route.Deprecated,
		},
		Notices: items,
	}
	if view.Payment != nil {
		resp.Payment = newPaymentResponse(*view.Payment)
	}
	if view.Checkout != nil {
		resp.Checkout = newCheckoutResponse(*view.Checkout)
	}
	if view.Receipt != nil {
		resp.Receipt = &receiptResponse{Order: newOrderResponse(view.Receipt.Order)}
	}
	return resp
}

func newPaymentResponse(outcome checkout.AuthorizationOutcome) *paymentResponse {
	resp := &paymentResponse{Kind: string(outcome.Kind)}
	switch {
	case outcome.PaymentForm != nil:
		form := outcome.PaymentForm
		gateways := make([]gatewayResponse, 0, len(form.Gateways))
		for _, gw := range form.Gateways {
			gateways = append(gateways, gatewayResponse{
				ID:          gw.ID(),
				Title:       gw.Title(),
				Description: gw.Description(),
				Current:     gw.IsCurrent(),
			})
		}
		resp.PaymentForm = &paymentFormResponse{
			Order:      *newOrderResponse(form.Order),
			Gateways:   gateways,
			ButtonText: form.ButtonText,
		}
	case outcome.LoginPrompt != nil:
		resp.LoginPrompt = &loginPromptResponse{
			RedirectURL: outcome.LoginPrompt.RedirectURL,
			Message:     outcome.LoginPrompt.Message,
		}
	case outcome.Instructions != nil:
		in := outcome.Instructions
		resp.Instructions = &instructionsResponse{
			OrderID:            in.OrderID,
			OrderNumber:        in.OrderNumber,
			CreatedAt:          in.CreatedAt,
			Total:              in.FormattedTotal,
			PaymentMethodID:    in.PaymentMethodID,
			PaymentMethodTitle: in.PaymentMethodTitle,
		}
	case outcome.Rejection != nil:
		resp.Rejection = &rejectionResponse{
			Reason:  string(outcome.Rejection.Reason),
			Status:  string(outcome.Rejection.Status),
			Message: outcome.Rejection.Message,
		}
	}
	return resp
}

func newCheckoutResponse(outcome checkout.GateOutcome) *checkoutResponse {
	resp := &checkoutResponse{
		Kind:               string(outcome.Kind),
		TotalsRecalculated: outcome.TotalsRecalculated,
	}
	if outcome.Totals != nil {
		resp.Totals = newTotalsDTO(*outcome.Totals)
	}
	return resp
}

func newTotalsDTO(totals checkout.CartTotals) *totalsDTO {
	return &totalsDTO{
		ItemCount:      totals.ItemCount,
		Subtotal:       totals.Subtotal,
		Total:          totals.Total,
		FormattedTotal: totals.Total.Format(),
	}
}

func newOrderResponse(order *checkout.OrderSnapshot) *orderResponse {
	if order == nil {
		return nil
	}
	return &orderResponse{
		ID:                 order.ID,
		Number:             order.Number(),
		Status:             string(order.Status),
		StatusLabel:        order.Status.Label(),
		Total:              order.Total,
		FormattedTotal:     order.Total.Format(),
		PaymentMethodID:    order.PaymentMethodID,
		PaymentMethodTitle: order.PaymentMethodTitle,
		Billing:            order.Billing,
		NeedsPayment:       order.NeedsPayment(),
		PaymentURL:         order.CheckoutPaymentURL,
		CreatedAt:          order.CreatedAt,
	}
}
