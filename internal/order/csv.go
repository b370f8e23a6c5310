package order

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// LoadCSV reads the reference dataset export. The header row names the
// columns; unknown columns are ignored and rows without an order_id
// are skipped.
func LoadCSV(path string) ([]Order, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("orders csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("orders csv: read header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	if _, ok := col["order_id"]; !ok {
		return nil, fmt.Errorf("orders csv: missing order_id column")
	}

	field := func(rec []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}
	ts := func(rec []string, name string) *time.Time {
		raw := field(rec, name)
		if raw == "" {
			return nil
		}
		t, err := time.Parse(timestampLayout, raw)
		if err != nil {
			return nil
		}
		return &t
	}

	var orders []Order
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("orders csv: %w", err)
		}
		oid := field(rec, "order_id")
		if oid == "" {
			continue
		}
		orders = append(orders, Order{
			OrderID:             oid,
			CustomerID:          field(rec, "customer_id"),
			Status:              field(rec, "order_status"),
			PurchasedAt:         ts(rec, "order_purchase_timestamp"),
			ApprovedAt:          ts(rec, "order_approved_at"),
			CarrierDeliveredAt:  ts(rec, "order_delivered_carrier_date"),
			DeliveredAt:         ts(rec, "order_delivered_customer_date"),
			EstimatedDeliveryAt: ts(rec, "order_estimated_delivery_date"),
		})
	}
	return orders, nil
}
