package enums

// RejectionReason explains why a payment page request was refused.
type RejectionReason string

const (
	RejectionReasonInvalidOrder  RejectionReason = "invalid_order"
	RejectionReasonNotAuthorized RejectionReason = "not_authorized"
	RejectionReasonWrongStatus   RejectionReason = "wrong_status"
)

// String implements fmt.Stringer.
func (r RejectionReason) String() string {
	return string(r)
}
