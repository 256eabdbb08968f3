package qr

import (
	"fmt"
	"net/url"
)

const imageEndpoint = "https://qr.sepay.vn/img"

// PaymentURL builds the SePay QR image URL for a bank transfer. The transfer
// description carries the order id so the webhook can reconcile the payment
// later; it must match the grammar the content parser accepts.
func PaymentURL(bank, account string, amount int64, description string) string {
	values := url.Values{}
	values.Set("bank", bank)
	values.Set("acc", account)
	values.Set("amount", fmt.Sprintf("%d", amount))
	values.Set("des", description)
	values.Set("template", "compact")
	return imageEndpoint + "?" + values.Encode()
}
