package order

import (
	"fmt"
	"strings"
	"time"
)

const (
	dateLayout      = "January 02, 2006"
	notAvailable    = "Not available"
	notYetDelivered = "Not yet delivered"
)

func formatDate(t *time.Time, absent string) string {
	if t == nil {
		return absent
	}
	return t.Format(dateLayout)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// FormatDetails renders one order as the customer-facing status reply.
// Missing dates render as "Not available" / "Not yet delivered"; an
// estimated delivery date in the past is flagged as potentially overdue
// unless the order is already delivered or canceled.
func FormatDetails(o Order, now time.Time) string {
	status := o.Status
	if status == "" {
		status = "unknown"
	}
	desc, ok := StatusDescriptions[status]
	if !ok {
		desc = fmt.Sprintf("Unknown status ('%s')", status)
	}

	overdue := false
	estimated := notAvailable
	if o.EstimatedDeliveryAt != nil {
		estimated = o.EstimatedDeliveryAt.Format(dateLayout)
		if o.EstimatedDeliveryAt.Before(now) && status != StatusDelivered && status != StatusCanceled {
			estimated += " (Potentially Overdue)"
			overdue = true
		}
	}

	lines := []string{
		fmt.Sprintf("Okay, here's the information for order #%s:", o.OrderID),
		fmt.Sprintf("Status: **%s**", capitalize(status)),
		"   - " + desc,
		"Purchased on: " + formatDate(o.PurchasedAt, notAvailable),
	}

	if status != StatusCanceled && status != StatusCreated {
		if o.ApprovedAt != nil {
			lines = append(lines, "Payment Approved on: "+o.ApprovedAt.Format(dateLayout))
		}
		if estimated != notAvailable {
			lines = append(lines, "Estimated Delivery: "+estimated)
		}
		if status == StatusDelivered {
			lines = append(lines, "Delivered on: "+formatDate(o.DeliveredAt, notYetDelivered))
		}
	}

	switch status {
	case StatusProcessing:
		lines = append(lines, "\nYour order is being prepared. You'll receive an update once it ships.")
	case StatusShipped:
		lines = append(lines, "\nYour order is on its way!")
		if overdue {
			lines = append(lines, "It seems to be past the estimated delivery date. Please allow a little extra time, or contact support if it doesn't arrive soon.")
		}
	case StatusCanceled:
		lines = append(lines, "\nThis order was canceled. If this seems incorrect, please contact customer support.")
	case StatusDelivered:
		lines = append(lines, "\nWe hope you enjoy your items!")
	default:
		if overdue {
			lines = append(lines, "\nThis order is past its estimated delivery date. Please contact customer support for assistance.")
		}
	}

	return strings.Join(lines, "\n")
}
