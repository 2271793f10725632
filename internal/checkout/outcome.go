package checkout

import (
	"time"

	"github.com/angelmondragon/storefront-checkout/pkg/enums"
)

// OutcomeKind tags the active variant of an AuthorizationOutcome.
type OutcomeKind string

const (
	OutcomeShowPaymentForm         OutcomeKind = "show_payment_form"
	OutcomeShowLoginPrompt         OutcomeKind = "show_login_prompt"
	OutcomeShowPaymentInstructions OutcomeKind = "show_payment_instructions"
	OutcomeRejected                OutcomeKind = "rejected"
)

// AuthorizationOutcome is the decision of the pay page. Exactly one payload
// matching Kind is set.
type AuthorizationOutcome struct {
	Kind         OutcomeKind
	PaymentForm  *PaymentForm
	LoginPrompt  *LoginPrompt
	Instructions *PaymentInstructions
	Rejection    *Rejection
}

// PaymentForm is everything needed to render the pay-for-order form.
type PaymentForm struct {
	Order      *OrderSnapshot
	Gateways   []Gateway
	ButtonText string
}

// LoginPrompt defers the decision until the shopper logs in. RedirectURL
// brings them back to the pay link afterwards.
type LoginPrompt struct {
	RedirectURL string
	Message     string
}

// PaymentInstructions summarise an order awaiting payment after checkout.
type PaymentInstructions struct {
	OrderID            uint64
	OrderNumber        string
	CreatedAt          time.Time
	FormattedTotal     string
	PaymentMethodID    string
	PaymentMethodTitle string
}

// Rejection explains why payment cannot proceed. Status is only set for
// wrong-status rejections.
type Rejection struct {
	Reason  enums.RejectionReason
	Status  enums.OrderStatus
	Message string
}

func reject(reason enums.RejectionReason, message string) AuthorizationOutcome {
	return AuthorizationOutcome{
		Kind:      OutcomeRejected,
		Rejection: &Rejection{Reason: reason, Message: message},
	}
}

func rejectStatus(status enums.OrderStatus) AuthorizationOutcome {
	return AuthorizationOutcome{
		Kind: OutcomeRejected,
		Rejection: &Rejection{
			Reason:  enums.RejectionReasonWrongStatus,
			Status:  status,
			Message: WrongStatusMessage(status),
		},
	}
}

func (o AuthorizationOutcome) reason() string {
	if o.Rejection == nil {
		return ""
	}
	return string(o.Rejection.Reason)
}
