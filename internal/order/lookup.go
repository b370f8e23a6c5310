package order

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/shopmate/support-chat/internal/bot"
	"github.com/shopmate/support-chat/internal/docstore"
)

const timestampLayout = "2006-01-02 15:04:05"

const requestIdentifierMsg = `To check your order status, I'll need your order ID or customer ID.

The order ID is a 32-character code that was included in your order confirmation email. It looks something like: e481f51cbdc54678b7cc49136f2d6af7

Could you please provide your order ID?`

const lookupErrorMsg = "I'm sorry, I encountered an error while looking up that order. Please try again in a moment."

const summaryLimit = 5

// Service resolves identifiers against the in-memory indexes first and
// the document store second. It implements bot.OrderService; every
// failure is logged and converted to user-safe text here.
type Service struct {
	idx  *Index
	docs docstore.Store
	log  *logrus.Logger
	now  func() time.Time
}

func NewService(idx *Index, docs docstore.Store, log *logrus.Logger) *Service {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Service{idx: idx, docs: docs, log: log, now: time.Now}
}

func (s *Service) RequestIdentifier() string { return requestIdentifierMsg }

// Lookup tries the order index, then the customer index, then the
// document store, then reports not-found echoing the identifier.
func (s *Service) Lookup(ctx context.Context, identifier string) bot.LookupResult {
	id := strings.ToLower(strings.TrimSpace(identifier))

	if o, ok := s.idx.Order(id); ok {
		return bot.LookupResult{
			Reply:   FormatDetails(o, s.now()),
			Found:   true,
			OrderID: id,
		}
	}

	if orders := s.idx.CustomerOrders(id); len(orders) > 0 {
		return s.customerResult(id, orders)
	}

	if res, ok := s.lookupFallback(ctx, id); ok {
		return res
	}

	return bot.LookupResult{
		Reply: fmt.Sprintf("I couldn't find any orders or customers with ID %s. Please check the ID and try again.", identifier),
	}
}

func (s *Service) customerResult(customerID string, orders []Order) bot.LookupResult {
	recent := orders[0] // index keeps lists most-recent first
	details := FormatDetails(recent, s.now())
	if len(orders) == 1 {
		return bot.LookupResult{
			Reply:   fmt.Sprintf("I found an order for customer ID %s. %s", customerID, details),
			Found:   true,
			OrderID: strings.ToLower(recent.OrderID),
		}
	}
	return bot.LookupResult{
		Reply: fmt.Sprintf("I found %d orders for customer ID %s. Here's the status of your most recent order: %s",
			len(orders), customerID, details),
		Found:   true,
		OrderID: strings.ToLower(recent.OrderID),
	}
}

// lookupFallback queries the document store as a secondary exact-match
// index. A store failure is swallowed: the caller falls through to the
// not-found reply and the error only reaches the log.
func (s *Service) lookupFallback(ctx context.Context, id string) (bot.LookupResult, bool) {
	if s.docs == nil {
		return bot.LookupResult{}, false
	}

	docs, err := s.docs.QueryByField(ctx, "order_id", id, 1)
	if err != nil {
		s.log.WithField("identifier", id).WithError(err).Error("order lookup: docstore query failed")
		return bot.LookupResult{Reply: lookupErrorMsg}, true
	}
	if len(docs) > 0 {
		o := orderFromDocument(docs[0])
		return bot.LookupResult{
			Reply:   FormatDetails(o, s.now()),
			Found:   true,
			OrderID: strings.ToLower(o.OrderID),
		}, true
	}

	docs, err = s.docs.QueryByField(ctx, "customer_id", id, 100)
	if err != nil {
		s.log.WithField("identifier", id).WithError(err).Error("order lookup: docstore query failed")
		return bot.LookupResult{Reply: lookupErrorMsg}, true
	}
	if len(docs) == 0 {
		return bot.LookupResult{}, false
	}

	orders := make([]Order, 0, len(docs))
	for _, d := range docs {
		orders = append(orders, orderFromDocument(d))
	}
	sortByPurchaseDesc(orders)
	return s.customerResult(id, orders), true
}

// Summary lists a customer's most recent orders, up to five.
func (s *Service) Summary(ctx context.Context, customerID string) bot.LookupResult {
	id := strings.ToLower(strings.TrimSpace(customerID))

	orders := s.idx.CustomerOrders(id)
	if len(orders) == 0 {
		// The identifier may be an order ID after all, or only present
		// in the document store; fall back to the full lookup chain.
		return s.Lookup(ctx, customerID)
	}
	if len(orders) == 1 {
		o := orders[0]
		return bot.LookupResult{
			Reply:   fmt.Sprintf("You have 1 order with customer ID %s. Here are the details: %s", id, FormatDetails(o, s.now())),
			Found:   true,
			OrderID: strings.ToLower(o.OrderID),
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You have %d orders with customer ID %s. Here's a summary:\n\n", len(orders), id)
	shown := orders
	if len(shown) > summaryLimit {
		shown = shown[:summaryLimit]
	}
	for i, o := range shown {
		fmt.Fprintf(&b, "%d. Order ID: %s\n   Status: %s\n   Purchased: %s\n",
			i+1, o.OrderID, o.Status, formatDate(o.PurchasedAt, notAvailable))
		if i < len(shown)-1 {
			b.WriteString("\n")
		}
	}
	if len(orders) > summaryLimit {
		fmt.Fprintf(&b, "\nShowing %d most recent orders out of %d total.", summaryLimit, len(orders))
	}
	return bot.LookupResult{
		Reply:   b.String(),
		Found:   true,
		OrderID: strings.ToLower(orders[0].OrderID),
	}
}

func orderFromDocument(d docstore.Document) Order {
	o := Order{
		OrderID:    d.Metadata["order_id"],
		CustomerID: d.Metadata["customer_id"],
		Status:     d.Metadata["status"],
	}
	if raw := d.Metadata["purchase_date"]; raw != "" {
		if t, err := time.Parse(timestampLayout, raw); err == nil {
			o.PurchasedAt = &t
		}
	}
	return o
}
