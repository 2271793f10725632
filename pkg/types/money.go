package types

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront-checkout/pkg/enums"
)

// Money pairs an amount in major units with its currency.
type Money struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency enums.Currency  `json:"currency"`
}

// NewMoney builds a Money value from an amount in major units.
func NewMoney(amount decimal.Decimal, currency enums.Currency) Money {
	return Money{Amount: amount, Currency: currency}
}

// MoneyFromCents builds a Money value from minor units.
func MoneyFromCents(cents int64, currency enums.Currency) Money {
	return Money{Amount: decimal.NewFromInt(cents).Shift(-2), Currency: currency}
}

// Add returns the sum of two amounts, keeping the receiver's currency.
func (m Money) Add(other Money) Money {
	return Money{Amount: m.Amount.Add(other.Amount), Currency: m.Currency}
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.Amount.IsZero()
}

// Format renders the amount for display, e.g. "$1,234.50".
func (m Money) Format() string {
	amount := m.Amount.Round(2)
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}
	fixed := amount.StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")
	return sign + m.Currency.Symbol() + groupThousands(whole) + "." + frac
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
