// Package pricing turns a cart into priced order lines and totals.
// Everything here is pure: no I/O, no clock, no randomness.
package pricing

import (
	"math"

	"github.com/shopspring/decimal"

	cartdomain "github.com/ridloal/sorav-storefront/internal/cart/domain"
	catalogdomain "github.com/ridloal/sorav-storefront/internal/catalog/domain"
)

const (
	TaxRatePercent        = 18
	FreeShippingThreshold = 5000
	FlatShippingFee       = 99
)

// MaxAmount caps line totals and the subtotal so that tax and shipping on top still fit an int64.
// Registry prices and cart quantities are bounded far below it.
const MaxAmount int64 = math.MaxInt64 / 2

var (
	taxRate   = decimal.New(TaxRatePercent, -2)
	maxAmount = decimal.NewFromInt(MaxAmount)
)

// Resolver looks products up by id. The catalog registry satisfies it.
type Resolver interface {
	GetProduct(id int) (catalogdomain.Product, bool)
}

type LineItem struct {
	ProductID int    `json:"product_id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"price"`
	Quantity  int    `json:"qty"`
	LineTotal int64  `json:"total"`
}

type Totals struct {
	LineItems  []LineItem `json:"items"`
	Subtotal   int64      `json:"subtotal"`
	Tax        int64      `json:"tax"`
	Shipping   int64      `json:"shipping"`
	GrandTotal int64      `json:"grand"`
}

// ResolveOrSkip is the lookup-miss policy: an entry whose product is unknown is left out
// of pricing instead of failing the whole computation.
func ResolveOrSkip(r Resolver, e cartdomain.Entry) (catalogdomain.Product, bool) {
	if r == nil {
		return catalogdomain.Product{}, false
	}
	return r.GetProduct(e.ProductID)
}

// Tax is 18% of subtotal rounded half-up to a whole rupee.
func Tax(subtotal int64) int64 {
	return decimal.NewFromInt(subtotal).Mul(taxRate).Round(0).IntPart()
}

// Shipping is free strictly above the threshold; a subtotal of exactly 5000 still pays the fee.
func Shipping(subtotal int64) int64 {
	if subtotal > FreeShippingThreshold {
		return 0
	}
	return FlatShippingFee
}

// clampAmount keeps an amount within [0, MaxAmount].
func clampAmount(d decimal.Decimal) int64 {
	switch {
	case d.IsNegative():
		return 0
	case d.GreaterThan(maxAmount):
		return MaxAmount
	}
	return d.IntPart()
}

// ComputeTotals sums in decimal, so no amount can wrap around.
func ComputeTotals(cart cartdomain.Cart, r Resolver) Totals {
	entries := cart.Entries()
	t := Totals{LineItems: make([]LineItem, 0, len(entries))}
	subtotal := decimal.Zero

	for _, e := range entries {
		p, ok := ResolveOrSkip(r, e)
		if !ok {
			continue
		}
		lineTotal := clampAmount(decimal.NewFromInt(p.UnitPrice).Mul(decimal.NewFromInt(int64(e.Quantity))))
		t.LineItems = append(t.LineItems, LineItem{
			ProductID: p.ID,
			Name:      p.Name,
			UnitPrice: p.UnitPrice,
			Quantity:  e.Quantity,
			LineTotal: lineTotal,
		})
		subtotal = subtotal.Add(decimal.NewFromInt(lineTotal))
	}

	t.Subtotal = clampAmount(subtotal)
	t.Tax = Tax(t.Subtotal)
	t.Shipping = Shipping(t.Subtotal)
	t.GrandTotal = t.Subtotal + t.Tax + t.Shipping
	return t
}
