package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ridloal/sorav-storefront/internal/checkout/domain"
	"github.com/ridloal/sorav-storefront/internal/checkout/service"
	orderdomain "github.com/ridloal/sorav-storefront/internal/order/domain"
)

type stubCheckout struct {
	status  service.Status
	err     error
	details domain.PaymentDetails
}

func (s *stubCheckout) BeginCheckout() (service.Status, error) { return s.status, s.err }

func (s *stubCheckout) SubmitPayment(d domain.PaymentDetails) (service.Status, error) {
	s.details = d
	if s.err == nil {
		if err := d.Validate(); err != nil {
			return s.status, err
		}
	}
	return s.status, s.err
}

func (s *stubCheckout) AbandonCheckout() (service.Status, error) { return s.status, s.err }
func (s *stubCheckout) CheckoutStatus() service.Status           { return s.status }

func setupRouter(c Checkout) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewCheckoutHandler(c).RegisterRoutes(router.Group("/api/v1"))
	return router
}

func do(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCheckoutHandler_Begin(t *testing.T) {
	stub := &stubCheckout{status: service.Status{State: domain.StateAwaitingPaymentInput}}
	w := do(setupRouter(stub), http.MethodPost, "/api/v1/checkout", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"state":"AWAITING_PAYMENT_INPUT"}`, w.Body.String())
}

func TestCheckoutHandler_BeginEmptyCart(t *testing.T) {
	stub := &stubCheckout{err: service.ErrEmptyCart}
	w := do(setupRouter(stub), http.MethodPost, "/api/v1/checkout", "")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "Cart is empty")
	assert.Contains(t, w.Body.String(), `"state":"IDLE"`)
}

func TestCheckoutHandler_PaymentAccepted(t *testing.T) {
	stub := &stubCheckout{status: service.Status{State: domain.StateProcessing}}
	body := `{"name":"Asha","card_number":"4111 1111 1111 1111","cvv":"123","expiry":"12/29"}`
	w := do(setupRouter(stub), http.MethodPost, "/api/v1/checkout/payment", body)
	require.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, "4111 1111 1111 1111", stub.details.CardNumber)
	assert.JSONEq(t, `{"state":"PROCESSING"}`, w.Body.String())
}

func TestCheckoutHandler_PaymentRejected(t *testing.T) {
	stub := &stubCheckout{status: service.Status{State: domain.StateAwaitingPaymentInput}}
	body := `{"name":"","card_number":"12","cvv":"1","expiry":""}`
	w := do(setupRouter(stub), http.MethodPost, "/api/v1/checkout/payment", body)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp struct {
		Fields map[string]string `json:"fields"`
		State  string            `json:"state"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Fields, 4)
	assert.Equal(t, "AWAITING_PAYMENT_INPUT", resp.State)
}

func TestCheckoutHandler_InProgress(t *testing.T) {
	stub := &stubCheckout{status: service.Status{State: domain.StateProcessing}, err: service.ErrCheckoutInProgress}
	w := do(setupRouter(stub), http.MethodDelete, "/api/v1/checkout", "")
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCheckoutHandler_StatusWithOrder(t *testing.T) {
	order := orderdomain.Order{ID: "ORD1", Kind: orderdomain.KindFinal, GrandTotal: 7670}
	stub := &stubCheckout{status: service.Status{State: domain.StateCompleted, Order: &order, InvoiceHTML: "<p>ORD1</p>"}}
	w := do(setupRouter(stub), http.MethodGet, "/api/v1/checkout", "")
	require.Equal(t, http.StatusOK, w.Code)

	var st struct {
		State       string            `json:"state"`
		Order       orderdomain.Order `json:"order"`
		InvoiceHTML string            `json:"invoice_html"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &st))
	assert.Equal(t, "COMPLETED", st.State)
	assert.Equal(t, "ORD1", st.Order.ID)
	assert.Equal(t, int64(7670), st.Order.GrandTotal)
	assert.Equal(t, "<p>ORD1</p>", st.InvoiceHTML)
}
