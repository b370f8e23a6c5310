package docstore

import (
	"context"
	"fmt"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

// OrderDocument is the Postgres row backing one indexed document. The
// embedding column exists for the external embedding pipeline; this
// service only filters on the metadata columns.
type OrderDocument struct {
	ID           uint   `gorm:"primaryKey;autoIncrement"`
	DocID        string `gorm:"type:varchar(64);uniqueIndex;not null"`
	OrderID      string `gorm:"type:varchar(32);index;not null"`
	CustomerID   string `gorm:"type:varchar(32);index"`
	Status       string `gorm:"type:varchar(50)"`
	PurchaseDate string `gorm:"type:varchar(32)"`
	Content      string `gorm:"type:text"`

	Embedding *pgvector.Vector `gorm:"type:vector(384)"`
}

func (OrderDocument) TableName() string { return "order_documents" }

// PGStore answers exact-field queries from the order_documents table.
type PGStore struct {
	db *gorm.DB
}

func NewPGStore(db *gorm.DB) *PGStore {
	return &PGStore{db: db}
}

// Migrate creates the backing table. The pgvector extension must
// already be installed in the target database.
func (s *PGStore) Migrate() error {
	return s.db.AutoMigrate(&OrderDocument{})
}

func (s *PGStore) Add(ctx context.Context, docs ...Document) error {
	rows := make([]OrderDocument, 0, len(docs))
	for _, d := range docs {
		rows = append(rows, OrderDocument{
			DocID:        d.ID,
			OrderID:      d.Metadata["order_id"],
			CustomerID:   d.Metadata["customer_id"],
			Status:       d.Metadata["status"],
			PurchaseDate: d.Metadata["purchase_date"],
			Content:      d.Content,
		})
	}
	if len(rows) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).CreateInBatches(rows, 500).Error
}

func (s *PGStore) QueryByField(ctx context.Context, field, value string, limit int) ([]Document, error) {
	if limit <= 0 {
		limit = 10
	}
	var column string
	switch field {
	case "order_id":
		column = "order_id"
	case "customer_id":
		column = "customer_id"
	case "status":
		column = "status"
	default:
		return nil, fmt.Errorf("docstore: unsupported query field %q", field)
	}

	var rows []OrderDocument
	if err := s.db.WithContext(ctx).
		Where(column+" = ?", value).
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("docstore: query %s=%s: %w", field, value, err)
	}

	out := make([]Document, 0, len(rows))
	for _, r := range rows {
		out = append(out, Document{
			ID: r.DocID,
			Metadata: map[string]string{
				"order_id":      r.OrderID,
				"customer_id":   r.CustomerID,
				"status":        r.Status,
				"purchase_date": r.PurchaseDate,
			},
			Content: r.Content,
		})
	}
	return out, nil
}
