package yookassa

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/netip"
	"time"

	"github.com/tidwall/gjson"

	"payhub-backend/internal/payment"
	"payhub-backend/internal/utils"
)

// DefaultEndpoint is the provider's charge-creation endpoint.
const DefaultEndpoint = "https://api.yookassa.ru/v3/payments"

// ackBody is the fixed acknowledgment the provider's webhook contract
// expects, regardless of the processing outcome.
const ackBody = "ok"

// Subnets the provider sends notifications from, per its documentation.
var notificationSources = []netip.Prefix{
	netip.MustParsePrefix("185.71.76.0/27"),
	netip.MustParsePrefix("185.71.77.0/27"),
	netip.MustParsePrefix("77.75.153.0/25"),
	netip.MustParsePrefix("77.75.154.128/25"),
	netip.MustParsePrefix("77.75.156.11/32"),
	netip.MustParsePrefix("77.75.156.35/32"),
	netip.MustParsePrefix("2a02:5180::/32"),
}

// Kassa talks to the provider's payments API. It holds the shop credentials
// for its lifetime and reuses one lazily built HTTP client across calls.
// The client reuse is not a thread-safety guarantee for Kassa itself: scope
// an instance to a single payment flow.
type Kassa struct {
	shopID     string
	secretKey  string
	endpoint   string
	httpClient *http.Client
}

// NewKassa creates a transport with the given shop credentials.
func NewKassa(shopID, secretKey string) *Kassa {
	return &Kassa{
		shopID:    shopID,
		secretKey: secretKey,
		endpoint:  DefaultEndpoint,
	}
}

// SetEndpoint overrides the API endpoint (tests, sandbox).
func (k *Kassa) SetEndpoint(endpoint string) *Kassa {
	k.endpoint = endpoint
	return k
}

// ShopID returns the configured shop identifier.
func (k *Kassa) ShopID() string {
	return k.shopID
}

func (k *Kassa) client() *http.Client {
	if k.httpClient == nil {
		k.httpClient = utils.NewHTTPClient(30 * time.Second)
	}
	return k.httpClient
}

// Charge performs one charge-creation call and extracts the confirmation
// target from the response: confirmation_url for the redirect flow,
// confirmation_token for the embedded flow, selected by the confirmation
// type the provider reports.
//
// A caller-supplied idempotence_key in params is forwarded as the
// Idempotence-Key header; none is synthesized here.
func (k *Kassa) Charge(params map[string]interface{}) (string, error) {
	idempotenceKey, _ := params["idempotence_key"].(string)
	if idempotenceKey != "" {
		// Header-only field, the API rejects unknown body keys.
		body := make(map[string]interface{}, len(params))
		for key, v := range params {
			if key != "idempotence_key" {
				body[key] = v
			}
		}
		params = body
	}

	payload, err := json.Marshal(params)
	if err != nil {
		return "", fmt.Errorf("marshal charge params: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, k.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build charge request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(k.shopID, k.secretKey)
	if idempotenceKey != "" {
		req.Header.Set("Idempotence-Key", idempotenceKey)
	}

	resp, err := k.client().Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", payment.ErrTransportFailure, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read response: %v", payment.ErrTransportFailure, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		desc := gjson.GetBytes(respBody, "description").String()
		if desc == "" {
			desc = resp.Status
		}
		return "", fmt.Errorf("%w: %s", payment.ErrTransportFailure, desc)
	}

	confirmation := gjson.GetBytes(respBody, "confirmation")
	switch confirmation.Get("type").String() {
	case "embedded":
		return confirmation.Get("confirmation_token").String(), nil
	default:
		return confirmation.Get("confirmation_url").String(), nil
	}
}

// Validate verifies an inbound notification. The provider offers no
// signature scheme, so the check is source-IP allow-listing plus payload
// shape: a source outside the published subnets fails as a corrupted
// signature, a body that is not a notification envelope as bad parameters,
// and an envelope without an order reference as order-not-found.
func (k *Kassa) Validate(n payment.Notification) payment.Code {
	if n.SourceIP != "" {
		addr, err := netip.ParseAddr(n.SourceIP)
		if err != nil {
			return payment.CodeBadParameters
		}
		if !sourceAllowed(addr) {
			return payment.CodeCorruptedSignature
		}
	}
	if !gjson.ValidBytes(n.Body) || !gjson.GetBytes(n.Body, "object").Exists() {
		return payment.CodeBadParameters
	}
	if !gjson.GetBytes(n.Body, "object.metadata.orderId").Exists() {
		return payment.CodeOrderNotFound
	}
	return payment.CodeSuccess
}

func sourceAllowed(addr netip.Addr) bool {
	for _, prefix := range notificationSources {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

// NotificationResponse returns the webhook acknowledgment body. The
// provider expects the same fixed body whatever the outcome; answering
// anything else triggers redelivery storms.
func (k *Kassa) NotificationResponse(payload []byte, code payment.Code) string {
	return ackBody
}

// CheckResponse returns the body for the provider's check request.
func (k *Kassa) CheckResponse(payload []byte, code payment.Code) string {
	return ackBody
}
