package payment

import (
	"time"

	"github.com/shopspring/decimal"
)

// Driver is the interface every payment driver must implement. It is the
// provider-agnostic facade the rest of the application programs against:
// outbound it turns a charge Request into a confirmation target, inbound it
// ingests provider notifications and exposes a normalized view over them.
//
// A Driver instance carries per-flow state (the last notification, the last
// error code, the recurring intent) and must be scoped to a single logical
// payment flow. Resolve a fresh instance per request instead of sharing one
// across goroutines.
type Driver interface {
	// Name returns the registry key the driver is exposed under.
	Name() string

	// SetConfig applies provider credentials and endpoint settings.
	SetConfig(config map[string]interface{}) error

	// PaymentLink creates a payment at the provider and returns the
	// confirmation target the buyer should be redirected to.
	PaymentLink(req Request) (string, error)

	// NeedForm reports whether the provider requires an embedded checkout
	// form instead of a redirect.
	NeedForm() bool

	// PaymentForm creates a payment for the embedded-widget flow and
	// returns the form carrying the confirmation token.
	PaymentForm(req Request) (Form, error)

	// Validate verifies an inbound notification and records the outcome
	// code; call LastError for the non-boolean result.
	Validate(n Notification) bool

	// LastError returns the outcome code recorded by the last Validate.
	LastError() Code

	// SetResponse stores a notification payload wholesale, replacing any
	// previously stored one. Accessors below read from it and return
	// defaults until a payload has been set; they never panic.
	SetResponse(n Notification)

	Status() Status
	IsSuccess() bool
	OrderID() string
	PaymentID() string
	TransactionID() string
	Amount() decimal.Decimal
	Provider() string
	Pan() string
	DateTime() time.Time
	ErrorCode() Code

	// Param reads a raw dotted-path field from the stored notification,
	// returning def when the path is absent.
	Param(path, def string) string

	// NotificationResponse returns the acknowledgment body the provider
	// expects on its webhook. The optional code overrides LastError.
	NotificationResponse(code ...Code) string

	// CheckResponse returns the body for the provider's check request.
	CheckResponse(code ...Code) string

	// Options describes the settings the host application must supply.
	Options() []Option
}

// RecurringPayer is implemented by drivers that support charging a stored
// payment instrument without re-collecting its details.
type RecurringPayer interface {
	// MakeRecurring asks the provider to remember the payment instrument
	// on the next PaymentLink call.
	MakeRecurring()

	// NeedRecurring reports whether MakeRecurring was called.
	NeedRecurring() bool

	// SetUserID binds the recurring token to a user account.
	SetUserID(id string)
	UserID() string

	// RecurringToken extracts the provider-issued instrument token from
	// the stored notification.
	RecurringToken() string

	// InitPayment charges a previously stored token. Success means the
	// charge-creation call completed; it does not poll for settlement.
	InitPayment(token, paymentID string, amount decimal.Decimal, description, currency string, extra map[string]interface{}) (bool, error)
}

// Transport is the provider-specific adapter behind a Driver. It owns the
// credentials and the network call; the Driver owns payload semantics.
type Transport interface {
	// Charge performs one charge-creation call and returns the
	// confirmation target: a redirect URL or an embedded token, depending
	// on the confirmation type the provider reports. No internal retries;
	// charge creation is not idempotent unless the caller supplies an
	// idempotency key.
	Charge(params map[string]interface{}) (string, error)

	// Validate checks the authenticity of an inbound notification and
	// returns an outcome Code.
	Validate(n Notification) Code

	// NotificationResponse builds the acknowledgment body for a webhook.
	// Pure: inspects the payload only.
	NotificationResponse(payload []byte, code Code) string

	// CheckResponse builds the body for the provider's check request.
	CheckResponse(payload []byte, code Code) string
}

// Form is the embedded-checkout alternative to a redirect URL.
type Form interface {
	ReturnURL() string
	ConfirmationToken() string
	// Render returns the HTML snippet mounting the provider's widget.
	Render() string
}

// Option describes one configuration setting a driver needs from the host.
type Option struct {
	Alias string `json:"alias"`
	Label string `json:"label"`
	Type  string `json:"type"`
}

// Option value types.
const (
	OptionTypeString = "string"
	OptionTypeBool   = "bool"
)
