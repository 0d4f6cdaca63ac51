package domain

// Product is a catalog entry discovered from storefront content. UnitPrice is in whole rupees.
type Product struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"price"`
	ImageRef  string `json:"img"`
}

// CardDescriptor is what the storefront page says about a product before it is registered.
type CardDescriptor struct {
	Name      string `json:"name" binding:"required"`
	PriceText string `json:"price_text"`
	ImageRef  string `json:"image"`
}

const (
	DefaultName      = "Unnamed"
	DefaultPriceText = "₹0"
)
