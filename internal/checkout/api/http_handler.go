package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ridloal/sorav-storefront/internal/checkout/domain"
	"github.com/ridloal/sorav-storefront/internal/checkout/service"
	"github.com/ridloal/sorav-storefront/internal/platform/logger"
)

type Checkout interface {
	BeginCheckout() (service.Status, error)
	SubmitPayment(details domain.PaymentDetails) (service.Status, error)
	AbandonCheckout() (service.Status, error)
	CheckoutStatus() service.Status
}

type CheckoutHandler struct {
	checkout Checkout
}

func NewCheckoutHandler(c Checkout) *CheckoutHandler {
	return &CheckoutHandler{checkout: c}
}

func (h *CheckoutHandler) RegisterRoutes(router *gin.RouterGroup) {
	checkoutRoutes := router.Group("/checkout")
	{
		checkoutRoutes.GET("", h.GetStatus)
		checkoutRoutes.POST("", h.BeginCheckout)
		checkoutRoutes.DELETE("", h.AbandonCheckout)
		checkoutRoutes.POST("/payment", h.SubmitPayment)
	}
}

func (h *CheckoutHandler) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.checkout.CheckoutStatus())
}

func (h *CheckoutHandler) BeginCheckout(c *gin.Context) {
	st, err := h.checkout.BeginCheckout()
	if err != nil {
		h.fail(c, "BeginCheckout", st, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

func (h *CheckoutHandler) SubmitPayment(c *gin.Context) {
	var req domain.PaymentDetails
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}
	st, err := h.checkout.SubmitPayment(req)
	if err != nil {
		h.fail(c, "SubmitPayment", st, err)
		return
	}
	c.JSON(http.StatusAccepted, st)
}

func (h *CheckoutHandler) AbandonCheckout(c *gin.Context) {
	st, err := h.checkout.AbandonCheckout()
	if err != nil {
		h.fail(c, "AbandonCheckout", st, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

func (h *CheckoutHandler) fail(c *gin.Context, op string, st service.Status, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": domain.ErrInvalidPayment.Error(), "fields": verr.Fields, "state": st.State})
	case errors.Is(err, service.ErrEmptyCart):
		c.JSON(http.StatusConflict, gin.H{"error": "Cart is empty", "state": st.State})
	case errors.Is(err, service.ErrCheckoutInProgress), errors.Is(err, service.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "state": st.State})
	default:
		logger.Error(op+": service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Checkout failed"})
	}
}
