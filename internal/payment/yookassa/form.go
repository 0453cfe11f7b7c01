package yookassa

import (
	"fmt"

	"github.com/google/uuid"
)

// Form carries the confirmation token for the embedded checkout widget,
// for hosts that render the payment page themselves instead of redirecting.
type Form struct {
	returnURL         string
	confirmationToken string
}

func (f *Form) ReturnURL() string {
	return f.returnURL
}

func (f *Form) ConfirmationToken() string {
	return f.confirmationToken
}

// Render returns an HTML snippet mounting the provider's checkout widget
// with the confirmation token.
func (f *Form) Render() string {
	id := "yookassa-" + uuid.New().String()
	return fmt.Sprintf(`<script src="https://yookassa.ru/checkout-widget/v1/checkout-widget.js"></script>
<div id="%[1]s"></div>
<script>
  const checkout = new window.YooMoneyCheckoutWidget({
    confirmation_token: '%[2]s',
    return_url: '%[3]s',
    error_callback: function(error) { console.log(error); }
  });
  checkout.render('%[1]s');
</script>`, id, f.confirmationToken, f.returnURL)
}
