package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	checkoutservice "github.com/ridloal/sorav-storefront/internal/checkout/service"
	"github.com/ridloal/sorav-storefront/internal/order/domain"
	"github.com/ridloal/sorav-storefront/internal/platform/logger"
)

type Previewer interface {
	Preview() (domain.Order, string, error)
}

type PreviewResponse struct {
	Order       domain.Order `json:"order"`
	InvoiceHTML string       `json:"invoice_html"`
}

type OrderHandler struct {
	previewer Previewer
}

func NewOrderHandler(p Previewer) *OrderHandler {
	return &OrderHandler{previewer: p}
}

func (h *OrderHandler) RegisterRoutes(router *gin.RouterGroup) {
	orderRoutes := router.Group("/orders")
	{
		orderRoutes.GET("/preview", h.PreviewOrder)
	}
}

func (h *OrderHandler) PreviewOrder(c *gin.Context) {
	order, html, err := h.previewer.Preview()
	if err != nil {
		if errors.Is(err, checkoutservice.ErrEmptyCart) {
			c.JSON(http.StatusConflict, gin.H{"error": "Cart is empty"})
			return
		}
		logger.Error("PreviewOrder: render failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build preview"})
		return
	}
	c.JSON(http.StatusOK, PreviewResponse{Order: order, InvoiceHTML: html})
}
