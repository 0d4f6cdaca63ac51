package domain

import (
	"strings"
	"time"
)

type Kind string

const (
	KindFinal   Kind = "ORDER"
	KindPreview Kind = "PREVIEW"
)

// Id prefixes keep final orders and previews in separate namespaces.
const (
	FinalIDPrefix   = "ORD"
	PreviewIDPrefix = "PREVIEW"
)

type LineItem struct {
	Name      string `json:"name"`
	UnitPrice int64  `json:"price"`
	Quantity  int    `json:"qty"`
	LineTotal int64  `json:"total"`
}

// Order is created once per checkout or preview and never modified afterwards;
// callers receive it by value and LineItems is never shared between orders.
type Order struct {
	ID         string     `json:"id"`
	Kind       Kind       `json:"kind"`
	CreatedAt  time.Time  `json:"date"`
	LineItems  []LineItem `json:"items"`
	Subtotal   int64      `json:"subtotal"`
	Tax        int64      `json:"tax"`
	Shipping   int64      `json:"shipping"`
	GrandTotal int64      `json:"grand"`
}

func (o Order) IsPreview() bool {
	return o.Kind == KindPreview
}

func IsPreviewID(id string) bool {
	return strings.HasPrefix(id, PreviewIDPrefix)
}
