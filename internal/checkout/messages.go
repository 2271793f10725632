package checkout

import (
	"fmt"

	"github.com/angelmondragon/storefront-checkout/pkg/enums"
)

const (
	DefaultPayButtonText = "Pay for order"

	MessageInvalidOrder        = "Sorry, this order is invalid and cannot be paid for."
	MessageMissingOrder        = "Invalid order."
	MessageNotAuthorized       = "This order cannot be paid for. Please contact us if you need assistance."
	MessageLoginToPay          = "Please login to your account below to continue to the payment form."
	MessageTotalsUpdated       = `The order totals have been updated. Please confirm your order by pressing the "Place order" button at the bottom of the page.`
	messageWrongStatusTemplate = `This order's status is "%s" and it cannot be paid for. Please contact us if you need assistance.`
)

// WrongStatusMessage names the order's current status for the shopper.
func WrongStatusMessage(status enums.OrderStatus) string {
	return fmt.Sprintf(messageWrongStatusTemplate, status.Label())
}
