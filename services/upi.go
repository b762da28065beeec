package services

import (
	"fmt"
	"net/url"
	"strings"
)

// BuildUPILink returns the UPI deep link that requests amount (in rupees)
// for payee upiID. The payee name is percent-encoded with %20 for spaces.
func BuildUPILink(upiID, payeeName string, amount float64) string {
	name := strings.ReplaceAll(url.QueryEscape(payeeName), "+", "%20")
	return fmt.Sprintf("upi://pay?pa=%s&pn=%s&am=%.2f&cu=INR",
		strings.TrimSpace(upiID), name, round(amount, 2))
}
