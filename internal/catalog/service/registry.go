package service

import (
	"strings"

	"go.uber.org/zap"

	"github.com/ridloal/sorav-storefront/internal/catalog/domain"
	"github.com/ridloal/sorav-storefront/internal/platform/logger"
)

// ProductRegistry is the in-memory catalog. It only grows: there is no delete.
// Implementations are not safe for concurrent use; the owning session serializes calls.
type ProductRegistry interface {
	EnsureProduct(name, rawPriceText, imageRef string) int
	GetProduct(id int) (domain.Product, bool)
	GetProductByName(name string) (domain.Product, bool)
	List() []domain.Product
}

type memoryRegistry struct {
	products []domain.Product
	byID     map[int]int
	byName   map[string]int
	nextID   int
}

func NewProductRegistry() ProductRegistry {
	return &memoryRegistry{
		byID:   make(map[int]int),
		byName: make(map[string]int),
		nextID: 1,
	}
}

// normalizeName only trims surrounding whitespace; any other difference makes a different product.
func normalizeName(name string) string {
	return strings.TrimSpace(name)
}

func (r *memoryRegistry) EnsureProduct(name, rawPriceText, imageRef string) int {
	name = normalizeName(name)
	if idx, ok := r.byName[name]; ok {
		return r.products[idx].ID
	}

	p := domain.Product{
		ID:        r.nextID,
		Name:      name,
		UnitPrice: ParsePriceOrZero(rawPriceText),
		ImageRef:  strings.TrimSpace(imageRef),
	}
	r.nextID++

	r.products = append(r.products, p)
	r.byID[p.ID] = len(r.products) - 1
	r.byName[p.Name] = len(r.products) - 1

	logger.Info("product registered",
		zap.Int("product_id", p.ID),
		zap.String("name", p.Name),
		zap.Int64("unit_price", p.UnitPrice))
	return p.ID
}

func (r *memoryRegistry) GetProduct(id int) (domain.Product, bool) {
	idx, ok := r.byID[id]
	if !ok {
		return domain.Product{}, false
	}
	return r.products[idx], true
}

func (r *memoryRegistry) GetProductByName(name string) (domain.Product, bool) {
	idx, ok := r.byName[normalizeName(name)]
	if !ok {
		return domain.Product{}, false
	}
	return r.products[idx], true
}

// List returns products in registration order.
func (r *memoryRegistry) List() []domain.Product {
	out := make([]domain.Product, len(r.products))
	copy(out, r.products)
	return out
}
