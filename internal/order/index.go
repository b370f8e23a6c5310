package order

import (
	"sort"
	"strings"
)

// Index holds the in-memory lookup maps built once from the reference
// dataset. Keys are lowercased; lookups fold the same way, so the
// folding rule is applied uniformly at build and query time.
type Index struct {
	byOrder    map[string]Order
	byCustomer map[string][]Order
}

// NewIndex builds the order-id and customer-id maps. Customer order
// lists are kept sorted by purchase time, most recent first; orders
// without a purchase timestamp sort last, ties keep dataset order.
func NewIndex(orders []Order) *Index {
	idx := &Index{
		byOrder:    make(map[string]Order, len(orders)),
		byCustomer: make(map[string][]Order),
	}
	for _, o := range orders {
		oid := strings.ToLower(o.OrderID)
		if oid == "" {
			continue
		}
		idx.byOrder[oid] = o
		if cid := strings.ToLower(o.CustomerID); cid != "" {
			idx.byCustomer[cid] = append(idx.byCustomer[cid], o)
		}
	}
	for _, list := range idx.byCustomer {
		sortByPurchaseDesc(list)
	}
	return idx
}

// sortByPurchaseDesc orders a list by purchase time, most recent
// first. Orders without a timestamp sort last; ties keep input order.
func sortByPurchaseDesc(list []Order) {
	sort.SliceStable(list, func(i, j int) bool {
		a, b := list[i].PurchasedAt, list[j].PurchasedAt
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.After(*b)
		}
	})
}

// Order returns the order with the given id, folding case.
func (idx *Index) Order(id string) (Order, bool) {
	o, ok := idx.byOrder[strings.ToLower(id)]
	return o, ok
}

// CustomerOrders returns a customer's orders, most recent first.
func (idx *Index) CustomerOrders(id string) []Order {
	list := idx.byCustomer[strings.ToLower(id)]
	out := make([]Order, len(list))
	copy(out, list)
	return out
}

// Len reports the number of indexed orders.
func (idx *Index) Len() int { return len(idx.byOrder) }
