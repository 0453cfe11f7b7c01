package yookassa

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"payhub-backend/internal/payment"
	"payhub-backend/pkg/iso4217"
)

// Name is the registry key the driver is exposed under.
const Name = "yookassa"

// errTransportUnset is returned when a driver is used before SetConfig or
// SetTransport wired one.
var errTransportUnset = errors.New("yookassa: transport not configured")

// Driver is the provider facade: it builds charge payloads, delegates the
// network call to its transport and exposes a normalized view over the last
// stored notification. One instance per payment flow; concurrent
// SetResponse calls on a shared instance race with last-write-wins.
type Driver struct {
	transport     payment.Transport
	notif         notification
	lastError     payment.Code
	needRecurring bool
	userID        string
}

// NewDriver creates an unconfigured driver. Wire a transport with
// SetTransport or via SetConfig.
func NewDriver() *Driver {
	return &Driver{}
}

// SetTransport replaces the provider transport. Mainly for tests and
// sandbox wiring.
func (d *Driver) SetTransport(t payment.Transport) *Driver {
	d.transport = t
	return d
}

// Name implements payment.Driver.
func (d *Driver) Name() string {
	return Name
}

// SetConfig builds the transport from host configuration. Recognized keys:
// shopId (string or number), secretKey, optional endpoint.
func (d *Driver) SetConfig(config map[string]interface{}) error {
	var shopID string
	switch v := config["shopId"].(type) {
	case string:
		shopID = v
	case float64:
		shopID = fmt.Sprintf("%.0f", v)
	}
	if shopID == "" {
		return errors.New("missing shopId in config")
	}

	secretKey, ok := config["secretKey"].(string)
	if !ok || secretKey == "" {
		return errors.New("missing secretKey in config")
	}

	kassa := NewKassa(shopID, secretKey)
	if endpoint, ok := config["endpoint"].(string); ok && endpoint != "" {
		kassa.SetEndpoint(endpoint)
	}
	d.transport = kassa
	return nil
}

// PaymentLink creates a charge and returns the confirmation target for the
// redirect flow.
func (d *Driver) PaymentLink(req payment.Request) (string, error) {
	if d.transport == nil {
		return "", errTransportUnset
	}
	params, err := d.chargeParams(req, "redirect")
	if err != nil {
		return "", err
	}
	return d.transport.Charge(params)
}

// NeedForm reports that the redirect flow is the default for this provider.
func (d *Driver) NeedForm() bool {
	return false
}

// PaymentForm creates a charge for the embedded-widget flow and wraps the
// confirmation token in a renderable form.
func (d *Driver) PaymentForm(req payment.Request) (payment.Form, error) {
	if d.transport == nil {
		return nil, errTransportUnset
	}
	params, err := d.chargeParams(req, "embedded")
	if err != nil {
		return nil, err
	}
	token, err := d.transport.Charge(params)
	if err != nil {
		return nil, err
	}
	return &Form{returnURL: req.SuccessURL, confirmationToken: token}, nil
}

// chargeParams assembles the outbound charge payload. Merge order is
// load-bearing: req.Extra is applied last so callers can override any
// computed field.
func (d *Driver) chargeParams(req payment.Request, confirmationType string) (map[string]interface{}, error) {
	currency := req.Currency
	if iso4217.IsNumeric(currency) {
		alpha, ok := iso4217.ByNumeric(currency)
		if !ok {
			return nil, fmt.Errorf("unknown numeric currency code %q", currency)
		}
		currency = alpha
	}

	params := map[string]interface{}{
		"amount": map[string]interface{}{
			"value":    req.Amount.StringFixed(2),
			"currency": currency,
		},
		"metadata": map[string]interface{}{
			"orderId":   req.OrderID,
			"paymentId": req.PaymentID,
		},
		"confirmation": map[string]interface{}{
			"type":       confirmationType,
			"return_url": req.SuccessURL,
		},
		"payment_method_data": methodData(req.Method, req.Extra),
		"description":         req.Description,
		"capture":             true,
	}
	if req.Recurring || d.needRecurring {
		params["save_payment_method"] = true
	}
	if req.Receipt != nil {
		receipt, err := BuildReceipt(req.Receipt)
		if err != nil {
			return nil, err
		}
		params["receipt"] = receipt
	}
	for key, v := range req.Extra {
		params[key] = v
	}
	return params, nil
}

// Validate delegates to the transport and records the outcome code. Codes
// outside the known taxonomy surface as CodeUnknownProvider instead of
// being coerced into a mapped one.
func (d *Driver) Validate(n payment.Notification) bool {
	if d.transport == nil {
		d.lastError = payment.CodeBadParameters
		return false
	}
	d.lastError = payment.NormalizeCode(d.transport.Validate(n))
	return d.lastError == payment.CodeSuccess
}

// LastError returns the code recorded by the last Validate.
func (d *Driver) LastError() payment.Code {
	return d.lastError
}

// SetResponse stores a notification payload wholesale and stamps its
// arrival time. A later call replaces the previous payload entirely.
func (d *Driver) SetResponse(n payment.Notification) {
	d.notif = newNotification(n.Body)
}

// Param reads a dotted-path field from the stored notification.
func (d *Driver) Param(path, def string) string {
	return d.notif.param(path, def)
}

// Status returns the normalized payment state. Provider statuses outside
// the known set (and a missing field) map to StatusUnknown - never to
// succeeded or canceled.
func (d *Driver) Status() payment.Status {
	switch d.Param("status", "") {
	case "pending", "waiting_for_capture":
		return payment.StatusPending
	case "succeeded":
		return payment.StatusSucceeded
	case "canceled":
		return payment.StatusCanceled
	}
	return payment.StatusUnknown
}

// IsSuccess reports whether the provider confirmed the payment.
func (d *Driver) IsSuccess() bool {
	return d.Status() == payment.StatusSucceeded
}

func (d *Driver) OrderID() string {
	return d.Param("metadata.orderId", "")
}

func (d *Driver) PaymentID() string {
	return d.Param("metadata.paymentId", "")
}

func (d *Driver) TransactionID() string {
	return d.Param("id", "")
}

// Amount returns the provider-reported amount, zero when absent or
// unparseable.
func (d *Driver) Amount() decimal.Decimal {
	value, err := decimal.NewFromString(d.Param("amount.value", "0"))
	if err != nil {
		return decimal.Zero
	}
	return value
}

// Provider returns the payment-method type reported by the provider.
func (d *Driver) Provider() string {
	return d.Param("payment_method.type", "")
}

// Pan returns the masked card number: first six and last four digits with a
// fixed mask in between. The full PAN is never available here.
func (d *Driver) Pan() string {
	return d.Param("payment_method.card.first6", "") + "******" + d.Param("payment_method.card.last4", "")
}

// DateTime returns the wall-clock arrival time of the stored notification,
// the zero time before any SetResponse.
func (d *Driver) DateTime() time.Time {
	return d.notif.receivedAt
}

// ErrorCode infers the outcome from the legacy action field: any action
// other than cancelOrder counts as success, absence counts as failure.
// Inverted-logic contract kept for compatibility; Status is the reliable
// signal for new callers.
func (d *Driver) ErrorCode() payment.Code {
	if d.Param("action", "cancelOrder") != "cancelOrder" {
		return payment.CodeSuccess
	}
	return payment.CodeCorruptedSignature
}

// NotificationResponse returns the acknowledgment body for the provider's
// webhook, using the recorded last error unless an explicit code is given.
// A failed validation still gets a well-formed acknowledgment; anything
// else provokes provider-side redelivery storms.
func (d *Driver) NotificationResponse(code ...payment.Code) string {
	c := d.lastError
	if len(code) > 0 {
		c = code[0]
	}
	return d.transport.NotificationResponse(d.notif.raw, c)
}

// CheckResponse returns the body for the provider's check request.
func (d *Driver) CheckResponse(code ...payment.Code) string {
	c := d.lastError
	if len(code) > 0 {
		c = code[0]
	}
	return d.transport.CheckResponse(d.notif.raw, c)
}

// Options describes the settings the host must supply.
func (d *Driver) Options() []payment.Option {
	return []payment.Option{
		{Alias: "shopId", Label: "ShopId", Type: payment.OptionTypeString},
		{Alias: "secretKey", Label: "SecretKey", Type: payment.OptionTypeString},
	}
}

// MakeRecurring asks the provider to remember the payment instrument on the
// next charge.
func (d *Driver) MakeRecurring() {
	d.needRecurring = true
}

// NeedRecurring reports whether the next charge saves the instrument.
func (d *Driver) NeedRecurring() bool {
	return d.needRecurring
}

// SetUserID binds subsequent recurring charges to a user account.
func (d *Driver) SetUserID(id string) {
	d.userID = id
}

func (d *Driver) UserID() string {
	return d.userID
}

// RecurringToken extracts the provider-issued instrument token from the
// stored notification.
func (d *Driver) RecurringToken() string {
	return d.Param("payment_method.id", "")
}

// InitPayment charges a previously stored recurring token. The payload is
// keyed by payment_method_id instead of payment_method_data and tags the
// metadata with the bound user. Success means the charge-creation call
// completed; settlement is reported through the webhook.
func (d *Driver) InitPayment(token, paymentID string, amount decimal.Decimal, description, currency string, extra map[string]interface{}) (bool, error) {
	if d.transport == nil {
		return false, errTransportUnset
	}
	metadata := make(map[string]interface{}, len(extra)+2)
	for key, v := range extra {
		metadata[key] = v
	}
	metadata["AccountId"] = d.userID
	metadata["PaymentId"] = paymentID

	params := map[string]interface{}{
		"amount": map[string]interface{}{
			"value":    amount.StringFixed(2),
			"currency": currency,
		},
		"payment_method_id": token,
		"description":       description,
		"metadata":          metadata,
	}

	if _, err := d.transport.Charge(params); err != nil {
		return false, err
	}
	return true, nil
}

var (
	_ payment.Driver         = (*Driver)(nil)
	_ payment.RecurringPayer = (*Driver)(nil)
)
