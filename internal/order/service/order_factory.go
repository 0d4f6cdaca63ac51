package service

import (
	"time"

	"github.com/oklog/ulid/v2"

	cartdomain "github.com/ridloal/sorav-storefront/internal/cart/domain"
	"github.com/ridloal/sorav-storefront/internal/order/domain"
	"github.com/ridloal/sorav-storefront/internal/pricing"
)

type OrderFactory interface {
	CreateOrder(cart cartdomain.Cart, r pricing.Resolver) domain.Order
	CreatePreview(cart cartdomain.Cart, r pricing.Resolver) domain.Order
}

type OrderFactoryDeps struct {
	Clock       func() time.Time
	IDGenerator func() string
}

type orderFactoryImpl struct {
	clock func() time.Time
	newID func() string
}

// NewOrderFactory defaults to the wall clock and monotonic ULIDs, which sort by creation time
// and stay unique within a process.
func NewOrderFactory(deps OrderFactoryDeps) OrderFactory {
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	idGen := deps.IDGenerator
	if idGen == nil {
		idGen = func() string {
			return ulid.Make().String()
		}
	}
	return &orderFactoryImpl{clock: clock, newID: idGen}
}

func (f *orderFactoryImpl) CreateOrder(cart cartdomain.Cart, r pricing.Resolver) domain.Order {
	return f.build(domain.KindFinal, domain.FinalIDPrefix, cart, r)
}

// CreatePreview prices the cart like CreateOrder but commits nothing.
func (f *orderFactoryImpl) CreatePreview(cart cartdomain.Cart, r pricing.Resolver) domain.Order {
	return f.build(domain.KindPreview, domain.PreviewIDPrefix, cart, r)
}

func (f *orderFactoryImpl) build(kind domain.Kind, prefix string, cart cartdomain.Cart, r pricing.Resolver) domain.Order {
	totals := pricing.ComputeTotals(cart, r)

	items := make([]domain.LineItem, len(totals.LineItems))
	for i, li := range totals.LineItems {
		items[i] = domain.LineItem{
			Name:      li.Name,
			UnitPrice: li.UnitPrice,
			Quantity:  li.Quantity,
			LineTotal: li.LineTotal,
		}
	}

	return domain.Order{
		ID:         prefix + f.newID(),
		Kind:       kind,
		CreatedAt:  f.clock(),
		LineItems:  items,
		Subtotal:   totals.Subtotal,
		Tax:        totals.Tax,
		Shipping:   totals.Shipping,
		GrandTotal: totals.GrandTotal,
	}
}
