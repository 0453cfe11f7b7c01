package yookassa

import (
	"github.com/go-playground/validator/v10"

	"payhub-backend/internal/payment"
	"payhub-backend/pkg/iso4217"
)

// Provider VAT codes (vat_code field of a receipt item).
const (
	vatCodeNone = 1
	vatCode0    = 2
	vatCode10   = 3
	vatCode20   = 4
	vatCode110  = 5
	vatCode120  = 6
)

// maxItemDescription is the provider's limit on a receipt item description.
const maxItemDescription = 128

var vatMap = map[payment.VATCode]int{
	payment.VATNone: vatCodeNone,
	payment.VATZero: vatCode0,
	payment.VAT10:   vatCode10,
	payment.VAT20:   vatCode20,
	payment.VAT110:  vatCode110,
	payment.VAT120:  vatCode120,
}

var contactValidator = validator.New()

// contactKey decides how the buyer contact is tagged. Anything that parses
// as an email address goes under "email"; everything else is treated as a
// phone number without further format checks. Permissive on purpose: the
// provider performs the real phone validation.
func contactKey(contact string) string {
	if contactValidator.Var(contact, "email") == nil {
		return "email"
	}
	return "phone"
}

// BuildReceipt serializes a receipt into the provider's wire shape:
// contact under "email" or "phone", ordered items with string quantities,
// {value,currency} amounts, provider vat_code and a description capped at
// 128 characters, plus tax_system_code only when the caller set one.
//
// Items with a negative quantity or non-positive price are caller contract
// violations and fail with InvalidReceiptItemError instead of being
// clamped.
func BuildReceipt(r *payment.Receipt) (map[string]interface{}, error) {
	items := make([]map[string]interface{}, 0, len(r.Items()))
	for i, item := range r.Items() {
		if item.Quantity.IsNegative() {
			return nil, &payment.InvalidReceiptItemError{Index: i, Reason: "negative quantity"}
		}
		if !item.Price.IsPositive() {
			return nil, &payment.InvalidReceiptItemError{Index: i, Reason: "non-positive price"}
		}
		vat, ok := vatMap[item.VAT]
		if !ok {
			vat = vatCodeNone
		}
		currency := item.Currency
		if iso4217.IsNumeric(currency) {
			if alpha, ok := iso4217.ByNumeric(currency); ok {
				currency = alpha
			}
		}
		items = append(items, map[string]interface{}{
			"quantity": item.Quantity.String(),
			"amount": map[string]interface{}{
				"value":    item.Price.StringFixed(2),
				"currency": currency,
			},
			"vat_code":    vat,
			"description": truncate(item.Name, maxItemDescription),
		})
	}

	result := map[string]interface{}{
		contactKey(r.Contact()): r.Contact(),
		"items":                 items,
	}
	if code, ok := r.TaxSystem(); ok {
		result["tax_system_code"] = code
	}
	return result, nil
}

// truncate caps s at max codepoints. Byte-based slicing would corrupt
// multi-byte text, so count runes.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
