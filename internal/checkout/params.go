package checkout

import (
	"math"
	"net/url"
	"strconv"
	"strings"
	"unicode"
)

const (
	ParamLegacyOrder  = "order"
	ParamKey          = "key"
	ParamPayForOrder  = "pay_for_order"
	ParamUpdateTotals = "update_totals"
)

// RouteVars are endpoint variables resolved by the transport layer.
type RouteVars struct {
	OrderPay         string
	OrderReceived    string
	HasOrderReceived bool
}

// Request is the untrusted input of a checkout page request.
type Request struct {
	Vars  RouteVars
	Query url.Values
	Form  url.Values
}

// Submitted reports whether the request carried a form submission.
func (r Request) Submitted() bool {
	return len(r.Form) > 0
}

// UpdateTotals reports whether the non-script totals refresh button was used.
// An empty value or "0" counts as absent.
func (r Request) UpdateTotals() bool {
	v := r.Form.Get(ParamUpdateTotals)
	return v != "" && v != "0"
}

// Key returns the raw order key from the query string.
func (r Request) Key() (string, bool) {
	if !r.Query.Has(ParamKey) {
		return "", false
	}
	return r.Query.Get(ParamKey), true
}

// PayForOrder reports whether the explicit pay-for-order marker is present.
func (r Request) PayForOrder() bool {
	return r.Query.Has(ParamPayForOrder)
}

// ParseOrderID coerces untrusted input into a non-negative order id: the
// leading integer is taken, its sign dropped, and anything unparsable yields 0.
// Values beyond the int64 range saturate.
func ParseOrderID(raw string) uint64 {
	s := strings.TrimSpace(raw)
	if s != "" && (s[0] == '-' || s[0] == '+') {
		s = s[1:]
	}
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	v, err := strconv.ParseUint(s[:end], 10, 64)
	if err != nil || v > math.MaxInt64 {
		return math.MaxInt64
	}
	return v
}

// CleanKey sanitizes an order key taken from a link: markup and control
// characters are removed and surrounding whitespace trimmed.
func CleanKey(raw string) string {
	var b strings.Builder
	inTag := false
	for _, r := range raw {
		switch {
		case r == '<':
			inTag = true
		case r == '>' && inTag:
			inTag = false
		case inTag:
		case unicode.IsControl(r):
		default:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
