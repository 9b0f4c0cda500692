package payments

import (
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
)

const transactionNote = "Course%20Payment"

// FormatAmount renders an amount held in the smallest currency unit (paise)
// as rupees with two decimal places, the form UPI apps expect in am=.
func FormatAmount(amount int64) string {
	return decimal.New(amount, -2).StringFixed(2)
}

// BuildUPILink returns a upi://pay deep link for the payee and amount.
func BuildUPILink(vpa, payeeName string, amount int64) string {
	var b strings.Builder
	b.WriteString("upi://pay?pa=")
	b.WriteString(vpa)
	b.WriteString("&pn=")
	b.WriteString(url.PathEscape(payeeName))
	b.WriteString("&am=")
	b.WriteString(FormatAmount(amount))
	b.WriteString("&tn=")
	b.WriteString(transactionNote)
	return b.String()
}
