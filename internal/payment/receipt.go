package payment

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// VATCode is the provider-agnostic VAT rate of a receipt item. Drivers remap
// it onto their provider's fixed enumeration.
type VATCode int

const (
	VATNone VATCode = iota // not subject to VAT
	VATZero                // 0% rate
	VAT10
	VAT20
	VAT110 // estimated 10/110 rate
	VAT120 // estimated 20/120 rate
)

// Tax system codes for fiscal receipts.
const (
	TaxSystemCommon        = 1
	TaxSystemSimpleIncome  = 2
	TaxSystemSimpleOutcome = 3
	TaxSystemUnified       = 4
	TaxSystemAgro          = 5
	TaxSystemPatent        = 6
)

// ReceiptItem is one fiscal line item. Amounts use the same currency as the
// parent request.
type ReceiptItem struct {
	Name     string
	Quantity decimal.Decimal
	Price    decimal.Decimal
	Currency string
	VAT      VATCode
}

// Receipt is the fiscal payload some jurisdictions require for card
// payments: buyer contact plus ordered line items. Item order is
// significant and must match what the buyer was shown.
type Receipt struct {
	contact   string
	items     []ReceiptItem
	taxSystem int
	hasTax    bool
}

// NewReceipt creates a receipt for the given buyer contact. The contact may
// be an email address or a phone number; drivers decide which by format.
func NewReceipt(contact string) *Receipt {
	return &Receipt{contact: contact}
}

// AddItem appends a line item, preserving insertion order.
func (r *Receipt) AddItem(item ReceiptItem) *Receipt {
	r.items = append(r.items, item)
	return r
}

// Contact returns the buyer contact string.
func (r *Receipt) Contact() string {
	return r.contact
}

// Items returns the line items in insertion order.
func (r *Receipt) Items() []ReceiptItem {
	return r.items
}

// SetTaxSystem sets the tax system code. Untouched receipts serialize
// without the field entirely.
func (r *Receipt) SetTaxSystem(code int) *Receipt {
	r.taxSystem = code
	r.hasTax = true
	return r
}

// TaxSystem returns the tax system code and whether it was set.
func (r *Receipt) TaxSystem() (int, bool) {
	return r.taxSystem, r.hasTax
}

// InvalidReceiptItemError reports a caller contract violation in receipt
// data: a negative quantity or a non-positive price. Bad items fail fast
// instead of being clamped.
type InvalidReceiptItemError struct {
	Index  int
	Reason string
}

func (e *InvalidReceiptItemError) Error() string {
	return fmt.Sprintf("invalid receipt item %d: %s", e.Index, e.Reason)
}
