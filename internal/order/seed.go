package order

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopmate/support-chat/internal/docstore"
)

// Documents converts orders into docstore records keyed by order ID,
// with the metadata fields the fallback lookup filters on.
func Documents(orders []Order) []docstore.Document {
	docs := make([]docstore.Document, 0, len(orders))
	for _, o := range orders {
		oid := strings.ToLower(o.OrderID)
		if oid == "" {
			continue
		}
		meta := map[string]string{
			"order_id":    oid,
			"customer_id": strings.ToLower(o.CustomerID),
			"status":      o.Status,
		}
		if o.PurchasedAt != nil {
			meta["purchase_date"] = o.PurchasedAt.Format(timestampLayout)
		}
		docs = append(docs, docstore.Document{
			ID:       oid,
			Metadata: meta,
			Content:  fmt.Sprintf("Order %s for customer %s has status %s.", oid, meta["customer_id"], o.Status),
		})
	}
	return docs
}

// Seed loads every document into the store in batches.
func Seed(ctx context.Context, dst docstore.Adder, orders []Order) error {
	docs := Documents(orders)
	const batch = 500
	for start := 0; start < len(docs); start += batch {
		end := start + batch
		if end > len(docs) {
			end = len(docs)
		}
		if err := dst.Add(ctx, docs[start:end]...); err != nil {
			return fmt.Errorf("seed documents [%d:%d]: %w", start, end, err)
		}
	}
	return nil
}
