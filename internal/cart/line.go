// Package cart manages the session-scoped register cart. Lines are
// snapshots taken at add time; the live catalog row is only consulted
// for stock admission.
package cart

import (
	"github.com/google/uuid"

	"github.com/warunglabs/warungpos-backend/internal/pricing"
	"github.com/warunglabs/warungpos-backend/pkg/db/models"
)

// Line is one cart entry. Name, price, and image are frozen from the
// product at the moment it is added.
type Line struct {
	ProductID      uuid.UUID `json:"product_id"`
	Name           string    `json:"name"`
	UnitPriceCents int       `json:"unit_price_cents"`
	ImageURL       *string   `json:"image_url,omitempty"`
	Quantity       int       `json:"quantity"`
}

// TotalCents is the extended amount for the line.
func (l Line) TotalCents() int {
	return l.UnitPriceCents * l.Quantity
}

// PricingLines projects cart lines into the shape the pricing engine
// consumes.
func PricingLines(lines []Line) []pricing.LineItem {
	items := make([]pricing.LineItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, pricing.LineItem{
			UnitPriceCents: line.UnitPriceCents,
			Quantity:       line.Quantity,
		})
	}
	return items
}

func newLine(product *models.Product) Line {
	return Line{
		ProductID:      product.ID,
		Name:           product.Name,
		UnitPriceCents: product.PriceCents,
		ImageURL:       product.ImageURL,
		Quantity:       1,
	}
}

func findLine(lines []Line, productID uuid.UUID) int {
	for i, line := range lines {
		if line.ProductID == productID {
			return i
		}
	}
	return -1
}
