package payment

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrTransportFailure marks a network or provider-API level fault. It is
// propagated, never retried internally: charge creation is not safely
// idempotent without a caller-supplied idempotency key. A timeout wrapped
// in it means "outcome unknown", never success or failure.
var ErrTransportFailure = errors.New("payment transport failure")

// Method is the generic payment-method enum. Drivers translate it into
// their provider's vocabulary.
type Method string

const (
	MethodCard          Method = "card"
	MethodCash          Method = "cash"
	MethodMobileBalance Method = "mobile_balance"
	MethodQiwi          Method = "qiwi"
	MethodSberbank      Method = "sberbank"
	MethodWallet        Method = "wallet"
	MethodAlfabank      Method = "alfabank"
)

// Methods lists every generic payment method.
func Methods() []Method {
	return []Method{
		MethodCard,
		MethodCash,
		MethodMobileBalance,
		MethodQiwi,
		MethodSberbank,
		MethodWallet,
		MethodAlfabank,
	}
}

// Status is the normalized payment outcome state. Anything a driver cannot
// map onto pending/succeeded/canceled surfaces as StatusUnknown; unknown is
// never collapsed into success or failure.
type Status string

const (
	StatusPending   Status = "pending"
	StatusSucceeded Status = "succeeded"
	StatusCanceled  Status = "canceled"
	StatusUnknown   Status = "unknown"
)

// Code is a provider-agnostic outcome code for validation and
// acknowledgment flows.
type Code int

const (
	// CodeSuccess - all right.
	CodeSuccess Code = 0
	// CodeCorruptedSignature - the notification failed authenticity checks.
	CodeCorruptedSignature Code = 1
	// CodeOrderNotFound - the notification references no known order.
	CodeOrderNotFound Code = 100
	// CodeBadParameters - the request could not be understood.
	CodeBadParameters Code = 200
	// CodeUnknownProvider - the provider reported a code outside the known
	// set. Kept distinct so reconciliation never miscounts it as one of
	// the mapped outcomes.
	CodeUnknownProvider Code = -1
)

// NormalizeCode maps a raw code onto the known taxonomy, turning anything
// unmapped into CodeUnknownProvider.
func NormalizeCode(c Code) Code {
	switch c {
	case CodeSuccess, CodeCorruptedSignature, CodeOrderNotFound, CodeBadParameters:
		return c
	}
	return CodeUnknownProvider
}

// Request carries everything needed to create one charge. Constructed per
// call and never persisted by this layer.
type Request struct {
	OrderID     string
	PaymentID   string
	Amount      decimal.Decimal
	Currency    string // alpha-3 or numeric ISO 4217, normalized before transmission
	Method      Method
	SuccessURL  string
	FailURL     string
	Description string
	// Extra is merged into the outbound payload last, so it can override
	// any computed field. It is the caller's escape hatch for provider
	// quirks (and the place to pass an idempotence_key).
	Extra     map[string]interface{}
	Receipt   *Receipt
	Recurring bool
	UserID    string
}

// Notification is an inbound provider webhook: the raw body plus the source
// address transports may check against provider allow-lists.
type Notification struct {
	Body     []byte
	SourceIP string
}
