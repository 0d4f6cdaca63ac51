package api

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ridloal/sorav-storefront/internal/catalog/domain"
	"github.com/ridloal/sorav-storefront/internal/platform/logger"
)

// Catalog is the part of the cart session the product endpoints need.
type Catalog interface {
	EnsureProduct(card domain.CardDescriptor) domain.Product
	Product(id int) (domain.Product, bool)
	ProductByName(name string) (domain.Product, bool)
	Products() []domain.Product
	ScanCatalog(r io.Reader) ([]domain.Product, error)
}

type ProductHandler struct {
	catalog Catalog
}

func NewProductHandler(c Catalog) *ProductHandler {
	return &ProductHandler{catalog: c}
}

func (h *ProductHandler) RegisterRoutes(router *gin.RouterGroup) {
	productRoutes := router.Group("/products")
	{
		productRoutes.GET("", h.ListProducts)
		productRoutes.POST("", h.EnsureProduct)
		productRoutes.POST("/scan", h.ScanCatalog)
		productRoutes.GET("/:id", h.GetProduct)
	}
}

func (h *ProductHandler) ListProducts(c *gin.Context) {
	if name := c.Query("name"); name != "" {
		p, ok := h.catalog.ProductByName(name)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.JSON(http.StatusOK, p)
		return
	}
	c.JSON(http.StatusOK, h.catalog.Products())
}

func (h *ProductHandler) EnsureProduct(c *gin.Context) {
	var req domain.CardDescriptor
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.catalog.EnsureProduct(req))
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "product id must be an integer"})
		return
	}
	p, ok := h.catalog.Product(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	c.JSON(http.StatusOK, p)
}

// ScanCatalog registers every product card found in the posted storefront HTML.
func (h *ProductHandler) ScanCatalog(c *gin.Context) {
	products, err := h.catalog.ScanCatalog(c.Request.Body)
	if err != nil {
		logger.Error("ScanCatalog: parse failed", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, products)
}
