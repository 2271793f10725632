package cart

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/angelmondragon/storefront-checkout/internal/checkout"
	"github.com/angelmondragon/storefront-checkout/pkg/enums"
)

const (
	messageCartUnavailable = "Your cart could not be loaded. Please refresh the page and try again."
	messageNotPurchasable  = `Sorry, "%s" cannot be purchased.`
	messageNotEnoughStock  = `Sorry, we do not have enough "%s" in stock to fulfill your order (%d available). We apologize for any inconvenience caused.`
)

// ItemValidator checks cart lines before checkout and reports problems as
// error notices.
type ItemValidator struct {
	validate *validator.Validate
}

func NewItemValidator() *ItemValidator {
	return &ItemValidator{validate: validator.New()}
}

// Check adds one error notice per invalid line.
func (v *ItemValidator) Check(ctx context.Context, cart checkout.Cart, sink checkout.NoticeSink) {
	items, err := cart.Items(ctx)
	if err != nil {
		sink.Add(messageCartUnavailable, enums.NoticeSeverityError)
		return
	}
	for _, item := range items {
		if msg := v.problem(item); msg != "" {
			sink.Add(msg, enums.NoticeSeverityError)
		}
	}
}

func (v *ItemValidator) problem(item checkout.CartItem) string {
	name := item.Name
	if name == "" {
		name = item.ProductID
	}
	if err := v.validate.Struct(item); err != nil || item.UnitPrice.IsNegative() {
		return fmt.Sprintf(messageNotPurchasable, name)
	}
	if item.Stock != nil && item.Quantity > *item.Stock {
		return fmt.Sprintf(messageNotEnoughStock, name, *item.Stock)
	}
	return ""
}
