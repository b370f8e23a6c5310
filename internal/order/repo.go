package order

import (
	"context"

	"gorm.io/gorm"
)

// Repo reads the order reference dataset.
type Repo struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

// LoadAll returns every order. Called once at startup to build the
// in-memory indexes; the dataset is read-only afterwards.
func (r *Repo) LoadAll(ctx context.Context) ([]Order, error) {
	var orders []Order
	if err := r.db.WithContext(ctx).Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Count reports how many orders are in the table.
func (r *Repo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&Order{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// Import bulk-inserts orders, typically once from the CSV export into
// an empty table.
func (r *Repo) Import(ctx context.Context, orders []Order) error {
	if len(orders) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(orders, 1000).Error
}
