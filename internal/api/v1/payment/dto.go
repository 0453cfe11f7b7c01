package payment

import "github.com/shopspring/decimal"

type ReceiptItemRequest struct {
	Name     string          `json:"name" binding:"required"`
	Quantity decimal.Decimal `json:"quantity" binding:"required"`
	Price    decimal.Decimal `json:"price" binding:"required"`
	VATCode  int             `json:"vat_code"`
}

type ReceiptRequest struct {
	Contact   string               `json:"contact" binding:"required"`
	TaxSystem *int                 `json:"tax_system,omitempty"`
	Items     []ReceiptItemRequest `json:"items" binding:"required,dive"`
}

type CreateLinkRequest struct {
	Driver      string                 `json:"driver" binding:"required"`
	OrderID     string                 `json:"order_id" binding:"required"`
	PaymentID   string                 `json:"payment_id"`
	Amount      decimal.Decimal        `json:"amount" binding:"required"`
	Currency    string                 `json:"currency" binding:"required"`
	Method      string                 `json:"method"`
	SuccessURL  string                 `json:"success_url" binding:"required"`
	FailURL     string                 `json:"fail_url"`
	Description string                 `json:"description"`
	Extra       map[string]interface{} `json:"extra"`
	Receipt     *ReceiptRequest        `json:"receipt,omitempty"`
	Recurring   bool                   `json:"recurring"`
	UserID      string                 `json:"user_id"`
}

type CreateLinkResponse struct {
	PaymentURL string `json:"payment_url"`
	OrderID    string `json:"order_id"`
	PaymentID  string `json:"payment_id"`
}

type RecurringChargeRequest struct {
	Driver      string                 `json:"driver" binding:"required"`
	Token       string                 `json:"token" binding:"required"`
	UserID      string                 `json:"user_id" binding:"required"`
	PaymentID   string                 `json:"payment_id" binding:"required"`
	Amount      decimal.Decimal        `json:"amount" binding:"required"`
	Currency    string                 `json:"currency" binding:"required"`
	Description string                 `json:"description"`
	Extra       map[string]interface{} `json:"extra"`
}

type RecurringChargeResponse struct {
	Initiated bool   `json:"initiated"`
	PaymentID string `json:"payment_id"`
}

type MethodsResponse struct {
	Drivers []string `json:"drivers"`
	Methods []string `json:"methods"`
}
