package payment

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"

	"payhub-backend/internal/database"
	"payhub-backend/internal/payment"
	"payhub-backend/internal/payment/yookassa"
)

type stubTransport struct {
	lastParams   map[string]interface{}
	chargeTarget string
	validateCode payment.Code
}

func (f *stubTransport) Charge(params map[string]interface{}) (string, error) {
	f.lastParams = params
	return f.chargeTarget, nil
}

func (f *stubTransport) Validate(n payment.Notification) payment.Code {
	return f.validateCode
}

func (f *stubTransport) NotificationResponse(payload []byte, code payment.Code) string {
	return "ok"
}

func (f *stubTransport) CheckResponse(payload []byte, code payment.Code) string {
	return "ok"
}

func setupHandlerTest(t *testing.T, ft *stubTransport) *gin.Engine {
	gin.SetMode(gin.TestMode)

	mr, err := miniredis.Run()
	if err != nil {
		panic(err)
	}
	t.Cleanup(mr.Close)
	database.RedisClient = redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	payment.Register("test-kassa", func() payment.Driver {
		return yookassa.NewDriver().SetTransport(ft)
	})

	router := gin.New()
	RegisterRoutes(router.Group("/api/v1"))
	return router
}

func TestCreateLinkEndpoint(t *testing.T) {
	ft := &stubTransport{chargeTarget: "https://pay.example/go"}
	router := setupHandlerTest(t, ft)

	body, _ := json.Marshal(map[string]interface{}{
		"driver":      "test-kassa",
		"order_id":    "order-1",
		"amount":      "100.50",
		"currency":    "643",
		"method":      "card",
		"success_url": "https://shop.example/ok",
		"receipt": map[string]interface{}{
			"contact":    "a@b.com",
			"tax_system": 2,
			"items": []map[string]interface{}{
				{"name": "Widget", "quantity": "1", "price": "100.50", "vat_code": 3},
			},
		},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payment/link", bytes.NewReader(body))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data CreateLinkResponse `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "https://pay.example/go", resp.Data.PaymentURL)
	assert.Equal(t, "order-1", resp.Data.OrderID)
	assert.NotEmpty(t, resp.Data.PaymentID, "payment id is assigned when omitted")

	// Numeric currency reached the provider as alpha-3
	amount := ft.lastParams["amount"].(map[string]interface{})
	assert.Equal(t, "RUB", amount["currency"])

	receipt := ft.lastParams["receipt"].(map[string]interface{})
	assert.Equal(t, "a@b.com", receipt["email"])
	assert.Equal(t, 2, receipt["tax_system_code"])
}

func TestCreateLinkEndpoint_BadReceipt(t *testing.T) {
	router := setupHandlerTest(t, &stubTransport{chargeTarget: "url"})

	body, _ := json.Marshal(map[string]interface{}{
		"driver":      "test-kassa",
		"order_id":    "order-1",
		"amount":      "100.50",
		"currency":    "RUB",
		"success_url": "https://shop.example/ok",
		"receipt": map[string]interface{}{
			"contact": "a@b.com",
			"items": []map[string]interface{}{
				{"name": "Widget", "quantity": "-1", "price": "100.50"},
			},
		},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payment/link", bytes.NewReader(body))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRecurringEndpoint(t *testing.T) {
	ft := &stubTransport{}
	router := setupHandlerTest(t, ft)

	body, _ := json.Marshal(map[string]interface{}{
		"driver":     "test-kassa",
		"token":      "pm-1",
		"user_id":    "user-1",
		"payment_id": "pay-2",
		"amount":     "49.90",
		"currency":   "RUB",
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payment/recurring", bytes.NewReader(body))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pm-1", ft.lastParams["payment_method_id"])
}

func TestNotifyEndpoint(t *testing.T) {
	router := setupHandlerTest(t, &stubTransport{validateCode: payment.CodeSuccess})

	body := []byte(`{"event": "payment.succeeded", "object": {"id": "tx-1", "status": "succeeded", "metadata": {"orderId": "o-1"}}}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payment/notify/test-kassa", bytes.NewReader(body))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}

func TestNotifyEndpoint_InvalidStillOK(t *testing.T) {
	router := setupHandlerTest(t, &stubTransport{validateCode: payment.CodeCorruptedSignature})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payment/notify/test-kassa", bytes.NewReader([]byte(`{}`)))
	router.ServeHTTP(w, req)

	// Provider retry storms are worse than a swallowed bad notification
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}

func TestNotifyEndpoint_UnknownDriver(t *testing.T) {
	router := setupHandlerTest(t, &stubTransport{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payment/notify/never-registered", bytes.NewReader([]byte(`{}`)))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMethodsEndpoint(t *testing.T) {
	router := setupHandlerTest(t, &stubTransport{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/payment/methods", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data MethodsResponse `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Data.Drivers, "test-kassa")
	assert.Contains(t, resp.Data.Methods, "card")
}
