package yookassa

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"payhub-backend/internal/payment"
)

func testItem() payment.ReceiptItem {
	return payment.ReceiptItem{
		Name:     "Widget",
		Quantity: decimal.NewFromInt(2),
		Price:    decimal.RequireFromString("99.90"),
		Currency: "RUB",
		VAT:      payment.VAT20,
	}
}

func TestBuildReceipt_EmailContact(t *testing.T) {
	r := payment.NewReceipt("a@b.com").AddItem(testItem())

	out, err := BuildReceipt(r)
	assert.NoError(t, err)
	assert.Equal(t, "a@b.com", out["email"])
	_, hasPhone := out["phone"]
	assert.False(t, hasPhone)
}

func TestBuildReceipt_PhoneContact(t *testing.T) {
	r := payment.NewReceipt("+79990000000").AddItem(testItem())

	out, err := BuildReceipt(r)
	assert.NoError(t, err)
	assert.Equal(t, "+79990000000", out["phone"])
	_, hasEmail := out["email"]
	assert.False(t, hasEmail)
}

func TestBuildReceipt_ItemSerialization(t *testing.T) {
	r := payment.NewReceipt("a@b.com").AddItem(testItem())

	out, err := BuildReceipt(r)
	assert.NoError(t, err)

	items := out["items"].([]map[string]interface{})
	assert.Len(t, items, 1)
	assert.Equal(t, "2", items[0]["quantity"])
	assert.Equal(t, vatCode20, items[0]["vat_code"])
	assert.Equal(t, "Widget", items[0]["description"])

	amount := items[0]["amount"].(map[string]interface{})
	assert.Equal(t, "99.90", amount["value"])
	assert.Equal(t, "RUB", amount["currency"])
}

func TestBuildReceipt_NumericItemCurrency(t *testing.T) {
	item := testItem()
	item.Currency = "643"
	r := payment.NewReceipt("a@b.com").AddItem(item)

	out, err := BuildReceipt(r)
	assert.NoError(t, err)

	items := out["items"].([]map[string]interface{})
	amount := items[0]["amount"].(map[string]interface{})
	assert.Equal(t, "RUB", amount["currency"])
}

func TestBuildReceipt_TaxSystemCode(t *testing.T) {
	r := payment.NewReceipt("a@b.com").AddItem(testItem())

	out, err := BuildReceipt(r)
	assert.NoError(t, err)
	_, present := out["tax_system_code"]
	assert.False(t, present, "unset tax system must not appear at all")

	r.SetTaxSystem(payment.TaxSystemSimpleIncome)
	out, err = BuildReceipt(r)
	assert.NoError(t, err)
	assert.Equal(t, 2, out["tax_system_code"])
}

func TestBuildReceipt_DescriptionTruncation(t *testing.T) {
	item := testItem()
	item.Name = strings.Repeat("я", 200)
	r := payment.NewReceipt("a@b.com").AddItem(item)

	out, err := BuildReceipt(r)
	assert.NoError(t, err)

	items := out["items"].([]map[string]interface{})
	desc := items[0]["description"].(string)
	assert.Equal(t, 128, len([]rune(desc)))
	assert.Equal(t, strings.Repeat("я", 128), desc)
}

func TestBuildReceipt_ShortDescriptionUntouched(t *testing.T) {
	r := payment.NewReceipt("a@b.com").AddItem(testItem())

	out, err := BuildReceipt(r)
	assert.NoError(t, err)

	items := out["items"].([]map[string]interface{})
	assert.Equal(t, "Widget", items[0]["description"])
}

func TestBuildReceipt_InvalidItems(t *testing.T) {
	negQty := testItem()
	negQty.Quantity = decimal.NewFromInt(-1)
	_, err := BuildReceipt(payment.NewReceipt("a@b.com").AddItem(negQty))
	var itemErr *payment.InvalidReceiptItemError
	assert.ErrorAs(t, err, &itemErr)
	assert.Equal(t, 0, itemErr.Index)

	freebie := testItem()
	freebie.Price = decimal.Zero
	_, err = BuildReceipt(payment.NewReceipt("a@b.com").AddItem(testItem()).AddItem(freebie))
	assert.ErrorAs(t, err, &itemErr)
	assert.Equal(t, 1, itemErr.Index)
}

func TestBuildReceipt_ItemOrderPreserved(t *testing.T) {
	r := payment.NewReceipt("a@b.com")
	for _, name := range []string{"first", "second", "third"} {
		item := testItem()
		item.Name = name
		r.AddItem(item)
	}

	out, err := BuildReceipt(r)
	assert.NoError(t, err)

	items := out["items"].([]map[string]interface{})
	assert.Equal(t, "first", items[0]["description"])
	assert.Equal(t, "second", items[1]["description"])
	assert.Equal(t, "third", items[2]["description"])
}
