package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ridloal/sorav-storefront/internal/cart/domain"
	"github.com/ridloal/sorav-storefront/internal/cart/service"
	checkoutservice "github.com/ridloal/sorav-storefront/internal/checkout/service"
	"github.com/ridloal/sorav-storefront/internal/platform/logger"
	"github.com/ridloal/sorav-storefront/internal/session"
)

// Cart is the part of the cart session the cart endpoints need.
type Cart interface {
	AddItem(ctx context.Context, productID, qty int) error
	ChangeQuantity(ctx context.Context, productID, delta int) error
	RemoveItem(ctx context.Context, productID int) error
	ClearCart(ctx context.Context) error
	View() session.CartView
}

type AddItemRequest struct {
	ProductID int  `json:"product_id" binding:"required"`
	Quantity  *int `json:"quantity"`
}

type ChangeQuantityRequest struct {
	Delta int `json:"delta"`
}

type CartHandler struct {
	cart Cart
}

func NewCartHandler(c Cart) *CartHandler {
	return &CartHandler{cart: c}
}

func (h *CartHandler) RegisterRoutes(router *gin.RouterGroup) {
	cartRoutes := router.Group("/cart")
	{
		cartRoutes.GET("", h.GetCart)
		cartRoutes.DELETE("", h.ClearCart)
		cartRoutes.POST("/items", h.AddItem)
		cartRoutes.PATCH("/items/:id", h.ChangeQuantity)
		cartRoutes.DELETE("/items/:id", h.RemoveItem)
	}
}

func (h *CartHandler) GetCart(c *gin.Context) {
	c.JSON(http.StatusOK, h.cart.View())
}

func (h *CartHandler) AddItem(c *gin.Context) {
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}
	qty := 1
	if req.Quantity != nil {
		qty = *req.Quantity
	}
	h.respond(c, "AddItem", h.cart.AddItem(c.Request.Context(), req.ProductID, qty))
}

func (h *CartHandler) ChangeQuantity(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}
	var req ChangeQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}
	h.respond(c, "ChangeQuantity", h.cart.ChangeQuantity(c.Request.Context(), id, req.Delta))
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}
	h.respond(c, "RemoveItem", h.cart.RemoveItem(c.Request.Context(), id))
}

func (h *CartHandler) ClearCart(c *gin.Context) {
	h.respond(c, "ClearCart", h.cart.ClearCart(c.Request.Context()))
}

// respond answers with the current cart view, or maps err to a status code.
func (h *CartHandler) respond(c *gin.Context, op string, err error) {
	if err != nil {
		switch {
		case errors.Is(err, session.ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrInvalidQuantity):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, checkoutservice.ErrCheckoutInProgress):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrPersistFailed):
			logger.Error(op+": persist failed", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Cart updated but could not be saved", "cart": h.cart.View()})
		default:
			logger.Error(op+": service error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
		}
		return
	}
	c.JSON(http.StatusOK, h.cart.View())
}

func productID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "product id must be an integer"})
		return 0, false
	}
	return id, true
}
