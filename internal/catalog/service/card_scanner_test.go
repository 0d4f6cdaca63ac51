package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ridloal/sorav-storefront/internal/catalog/domain"
)

const storefrontPage = `
<main class="grid">
  <article class="product-card">
    <img src="img/tv.jpg" alt="TV">
    <h3> Smart TV 43" </h3>
    <p class="price">₹29,999</p>
    <button class="add-to-cart">Add to Cart</button>
  </article>
  <article class="product-card">
    <h3>Earbuds</h3>
    <p class="price">₹1,499</p>
  </article>
  <article class="product-card">
    <img src="img/unknown.jpg">
  </article>
  <article class="product-card">
    <h3>Earbuds</h3>
    <p class="price">₹999</p>
  </article>
</main>`

func TestScanCards(t *testing.T) {
	cards, err := ScanCards(strings.NewReader(storefrontPage))
	require.NoError(t, err)
	require.Len(t, cards, 4)

	assert.Equal(t, domain.CardDescriptor{Name: `Smart TV 43"`, PriceText: "₹29,999", ImageRef: "img/tv.jpg"}, cards[0])
	assert.Equal(t, "", cards[1].ImageRef)
	assert.Equal(t, domain.CardDescriptor{Name: "Unnamed", PriceText: "₹0", ImageRef: "img/unknown.jpg"}, cards[2])
}

func TestRegisterCards_DeduplicatesByName(t *testing.T) {
	cards, err := ScanCards(strings.NewReader(storefrontPage))
	require.NoError(t, err)

	reg := NewProductRegistry()
	ids := RegisterCards(reg, cards)

	assert.Equal(t, []int{1, 2, 3, 2}, ids)
	earbuds, ok := reg.GetProductByName("Earbuds")
	require.True(t, ok)
	assert.Equal(t, int64(1499), earbuds.UnitPrice, "first observation wins")
}

func TestScanCards_HeadingText(t *testing.T) {
	page := `
<div class="product-card"><h3><b>Pro</b> Mouse<script>track("mouse")</script></h3></div>
<div class="product-card"><h3>&lt;Pro&gt; Mouse</h3></div>
<div class="product-card"><h3>A &amp; B</h3></div>
<div class="product-card"><h3>   </h3></div>`

	cards, err := ScanCards(strings.NewReader(page))
	require.NoError(t, err)
	require.Len(t, cards, 4)

	assert.Equal(t, "Pro Mouse", cards[0].Name)
	assert.Equal(t, "<Pro> Mouse", cards[1].Name)
	assert.Equal(t, "A & B", cards[2].Name)
	assert.Equal(t, "", cards[3].Name, "an empty heading is not a missing one")

	ids := RegisterCards(NewProductRegistry(), cards)
	assert.Equal(t, []int{1, 2, 3, 4}, ids)
}
