package types

import "github.com/shopspring/decimal"

// Money renders an integer cent amount as an exact decimal value for API
// responses. Storage stays in cents; only the presentation layer converts.
type Money struct {
	Cents int64 `json:"cents"`
}

// NewMoney wraps a cent amount.
func NewMoney(cents int) Money {
	return Money{Cents: int64(cents)}
}

// Amount returns the decimal representation, e.g. 2550 -> 25.50.
func (m Money) Amount() decimal.Decimal {
	return decimal.NewFromInt(m.Cents).Div(decimal.NewFromInt(100))
}

// String formats the amount with two fractional digits.
func (m Money) String() string {
	return m.Amount().StringFixed(2)
}

// MarshalJSON emits {"cents": 2550, "amount": "25.50"}.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`{"cents":` + decimal.NewFromInt(m.Cents).String() + `,"amount":"` + m.String() + `"}`), nil
}
