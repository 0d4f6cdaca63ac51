// Package invoice renders an order record as the printable invoice fragment shown in the storefront overlay.
package invoice

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	orderdomain "github.com/ridloal/sorav-storefront/internal/order/domain"
	"github.com/ridloal/sorav-storefront/internal/pricing"
)

const (
	DefaultStoreName    = "SoRav Electronic Store"
	DefaultStoreAddress = "Your address here"

	statusPlaced  = "Order placed successfully"
	statusPreview = "Preview - payment pending"
)

//go:embed templates/invoice.html.tmpl
var templateFS embed.FS

var invoiceTemplate = template.Must(
	template.New("invoice.html.tmpl").
		Funcs(template.FuncMap{"inr": FormatINR, "date": FormatDate}).
		ParseFS(templateFS, "templates/invoice.html.tmpl"),
)

type Presenter struct {
	storeName    string
	storeAddress string
}

func NewPresenter(storeName, storeAddress string) *Presenter {
	if storeName == "" {
		storeName = DefaultStoreName
	}
	if storeAddress == "" {
		storeAddress = DefaultStoreAddress
	}
	return &Presenter{storeName: storeName, storeAddress: storeAddress}
}

type view struct {
	StoreName      string
	StoreAddress   string
	Order          orderdomain.Order
	TaxRatePercent int
	Status         string
}

// Render produces the invoice HTML for every line item and all four totals.
func (p *Presenter) Render(order orderdomain.Order) (string, error) {
	status := statusPlaced
	if order.IsPreview() {
		status = statusPreview
	}

	var buf bytes.Buffer
	err := invoiceTemplate.Execute(&buf, view{
		StoreName:      p.storeName,
		StoreAddress:   p.storeAddress,
		Order:          order,
		TaxRatePercent: pricing.TaxRatePercent,
		Status:         status,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render invoice %s: %w", order.ID, err)
	}
	return buf.String(), nil
}
