// Package notify builds the out-of-band payment hand-off artifacts: a
// WhatsApp deep link carrying the order summary, and a QR image URL
// encoding the payment string. Payment itself happens outside the system;
// the customer sends proof through the chat link.
package notify

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"bakehouse/internal/domain"
)

// Builder generates hand-off links for placed orders.
type Builder struct {
	whatsAppNumber string
	merchantHandle string
	qrBaseURL      string
	qrSize         string
}

// NewBuilder creates a Builder. Empty fields disable the corresponding
// artifact (the methods return "").
func NewBuilder(whatsAppNumber, merchantHandle, qrBaseURL, qrSize string) *Builder {
	return &Builder{
		whatsAppNumber: whatsAppNumber,
		merchantHandle: merchantHandle,
		qrBaseURL:      qrBaseURL,
		qrSize:         qrSize,
	}
}

// WhatsAppLink returns the wa.me deep link with the percent-encoded order
// summary: id, customer name and phone, formatted delivery date/time, one
// line per item, and the total. Field order is part of the contract.
func (b *Builder) WhatsAppLink(order *domain.Order) string {
	if b.whatsAppNumber == "" {
		return ""
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "New order %s\n", order.ID)
	fmt.Fprintf(&msg, "Name: %s\n", order.Customer.Name)
	fmt.Fprintf(&msg, "Phone: %s\n", order.Customer.Phone)
	fmt.Fprintf(&msg, "Delivery: %s\n", order.DeliveryAt.Format("Mon, 2 Jan 2006 3:04 PM"))
	msg.WriteString("Items:\n")
	for _, item := range order.Items {
		fmt.Fprintf(&msg, "- %d x %s%s = %.2f\n",
			item.Quantity, item.ProductName, formatSelections(item.Selections), item.LineTotal)
	}
	fmt.Fprintf(&msg, "Total: %.2f", order.Total)

	return fmt.Sprintf("https://wa.me/%s?text=%s", b.whatsAppNumber, url.QueryEscape(msg.String()))
}

// PaymentQRURL returns the QR rendering service URL for the payment string
// (merchant handle plus amount, with the order id as reference).
func (b *Builder) PaymentQRURL(order *domain.Order) string {
	if b.merchantHandle == "" || b.qrBaseURL == "" {
		return ""
	}

	payload := fmt.Sprintf("pay:%s?amount=%.2f&ref=%s", b.merchantHandle, order.Total, order.ID)

	params := url.Values{}
	params.Set("size", b.qrSize)
	params.Set("data", payload)
	return fmt.Sprintf("%s?%s", strings.TrimRight(b.qrBaseURL, "?"), params.Encode())
}

func formatSelections(selections map[string]string) string {
	if len(selections) == 0 {
		return ""
	}
	groups := make([]string, 0, len(selections))
	for group := range selections {
		groups = append(groups, group)
	}
	sort.Strings(groups)

	parts := make([]string, 0, len(groups))
	for _, group := range groups {
		parts = append(parts, fmt.Sprintf("%s: %s", group, selections[group]))
	}
	return " (" + strings.Join(parts, ", ") + ")"
}
