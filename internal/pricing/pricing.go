// Package pricing computes order totals and cash change. All arithmetic
// is integer cents; decimal conversion happens only at the response
// boundary via types.Money.
package pricing

import (
	"github.com/warunglabs/warungpos-backend/pkg/types"
)

// LineItem is the minimal shape the engine needs from a cart line.
type LineItem struct {
	UnitPriceCents int
	Quantity       int
}

// Totals is the result of a full recompute for the current register state.
type Totals struct {
	TotalCents  int
	PaidCents   int
	ChangeCents int
}

// Total sums unit price times quantity across all lines. An empty slice
// yields zero.
func Total(lines []LineItem) int {
	total := 0
	for _, line := range lines {
		total += line.UnitPriceCents * line.Quantity
	}
	return total
}

// Change resolves the paid and change amounts for a payment. Non-cash
// methods always settle exactly: paid is forced to the total and change
// is zero regardless of the submitted amount. Cash change is paid minus
// total and may be negative when the cashier records an underpayment.
func Change(paidCents, totalCents int, isCash bool) (paid, change int) {
	if !isCash {
		return totalCents, 0
	}
	return paidCents, paidCents - totalCents
}

// Recompute derives the full totals for the register after any mutating
// event. Callers invoke it explicitly; nothing recomputes behind their
// back.
func Recompute(lines []LineItem, paidCents int, isCash bool) Totals {
	total := Total(lines)
	paid, change := Change(paidCents, total, isCash)
	return Totals{
		TotalCents:  total,
		PaidCents:   paid,
		ChangeCents: change,
	}
}

// Render converts the totals into display money for API responses.
func (t Totals) Render() RenderedTotals {
	return RenderedTotals{
		Total:  types.NewMoney(t.TotalCents),
		Paid:   types.NewMoney(t.PaidCents),
		Change: types.NewMoney(t.ChangeCents),
	}
}

// RenderedTotals carries the decimal-rendered amounts.
type RenderedTotals struct {
	Total  types.Money `json:"total"`
	Paid   types.Money `json:"paid"`
	Change types.Money `json:"change"`
}
