package payment

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"payhub-backend/internal/payment"
	"payhub-backend/internal/services"
	"payhub-backend/internal/utils"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// Methods returns the registered drivers and the generic payment methods
func (h *Handler) Methods(c *gin.Context) {
	methods := make([]string, 0)
	for _, m := range payment.Methods() {
		methods = append(methods, string(m))
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("success", MethodsResponse{
		Drivers: payment.Names(),
		Methods: methods,
	}))
}

// CreateLink builds a payment link for the redirect checkout flow
func (h *Handler) CreateLink(c *gin.Context) {
	var req CreateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, err.Error()))
		return
	}

	if req.PaymentID == "" {
		req.PaymentID = strings.ReplaceAll(uuid.New().String(), "-", "")
	}

	url, err := services.CreatePaymentLink(req.Driver, toChargeRequest(&req))
	if err != nil {
		var itemErr *payment.InvalidReceiptItemError
		if errors.As(err, &itemErr) {
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("success", CreateLinkResponse{
		PaymentURL: url,
		OrderID:    req.OrderID,
		PaymentID:  req.PaymentID,
	}))
}

// RecurringCharge charges a previously stored payment token
func (h *Handler) RecurringCharge(c *gin.Context) {
	var req RecurringChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, err.Error()))
		return
	}

	ok, err := services.InitRecurringPayment(req.Driver, req.Token, req.UserID, req.PaymentID, req.Amount, req.Description, req.Currency, req.Extra)
	if err != nil {
		var unsupported *services.UnsupportedFeatureError
		if errors.As(err, &unsupported) {
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("success", RecurringChargeResponse{
		Initiated: ok,
		PaymentID: req.PaymentID,
	}))
}

// Notify handles the provider webhook. The acknowledgment body comes from
// the driver and is returned with 200 even when validation fails; the
// provider only needs to know delivery succeeded.
func (h *Handler) Notify(c *gin.Context) {
	driverName := c.Param("driver")
	if driverName == "" {
		c.String(http.StatusBadRequest, "missing driver")
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.String(http.StatusBadRequest, "unreadable body")
		return
	}

	result, err := services.HandleNotification(driverName, payment.Notification{
		Body:     body,
		SourceIP: c.ClientIP(),
	})
	if err != nil {
		c.String(http.StatusNotFound, err.Error())
		return
	}

	c.String(http.StatusOK, result.Ack)
}

func toChargeRequest(req *CreateLinkRequest) payment.Request {
	method := payment.Method(req.Method)
	if req.Method == "" {
		method = payment.MethodCard
	}

	out := payment.Request{
		OrderID:     req.OrderID,
		PaymentID:   req.PaymentID,
		Amount:      req.Amount,
		Currency:    req.Currency,
		Method:      method,
		SuccessURL:  req.SuccessURL,
		FailURL:     req.FailURL,
		Description: req.Description,
		Extra:       req.Extra,
		Recurring:   req.Recurring,
		UserID:      req.UserID,
	}

	if req.Receipt != nil {
		receipt := payment.NewReceipt(req.Receipt.Contact)
		if req.Receipt.TaxSystem != nil {
			receipt.SetTaxSystem(*req.Receipt.TaxSystem)
		}
		for _, item := range req.Receipt.Items {
			receipt.AddItem(payment.ReceiptItem{
				Name:     item.Name,
				Quantity: item.Quantity,
				Price:    item.Price,
				Currency: req.Currency,
				VAT:      payment.VATCode(item.VATCode),
			})
		}
		out.Receipt = receipt
	}

	return out
}
