package service

import (
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"

	"github.com/ridloal/sorav-storefront/internal/catalog/domain"
)

const (
	cardSelector  = ".product-card"
	nameSelector  = "h3"
	priceSelector = ".price"
)

// namePolicy reduces a heading's inner HTML to its visible text; script and style bodies are dropped.
var namePolicy = bluemonday.StrictPolicy()

// ScanCards reads every product card of a storefront page in document order.
// Missing headings, prices or images fall back to "Unnamed", "₹0" and "".
// A heading that is present but empty yields an empty name, not "Unnamed".
func ScanCards(r io.Reader) ([]domain.CardDescriptor, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse storefront html: %w", err)
	}

	var cards []domain.CardDescriptor
	doc.Find(cardSelector).Each(func(_ int, card *goquery.Selection) {
		d := domain.CardDescriptor{
			Name:      domain.DefaultName,
			PriceText: domain.DefaultPriceText,
		}
		if h := card.Find(nameSelector).First(); h.Length() > 0 {
			d.Name = headingText(h)
		}
		if p := card.Find(priceSelector).First(); p.Length() > 0 {
			d.PriceText = strings.TrimSpace(p.Text())
		}
		if src, ok := card.Find("img").First().Attr("src"); ok {
			d.ImageRef = strings.TrimSpace(src)
		}
		cards = append(cards, d)
	})
	return cards, nil
}

func headingText(h *goquery.Selection) string {
	inner, err := h.Html()
	if err != nil {
		return strings.TrimSpace(h.Text())
	}
	return strings.TrimSpace(html.UnescapeString(namePolicy.Sanitize(inner)))
}

// RegisterCards ensures every card in order and returns the resulting ids, duplicates included.
func RegisterCards(reg ProductRegistry, cards []domain.CardDescriptor) []int {
	ids := make([]int, 0, len(cards))
	for _, c := range cards {
		ids = append(ids, reg.EnsureProduct(c.Name, c.PriceText, c.ImageRef))
	}
	return ids
}
