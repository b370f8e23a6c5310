// Package docstore is the secondary exact-match index over the order
// documents. It mirrors the shape of a similarity store but is only
// ever queried by structured metadata filter, never by semantic
// ranking.
package docstore

import "context"

// Document is one indexed record: free-text content plus the metadata
// fields it can be filtered on.
type Document struct {
	ID       string
	Metadata map[string]string
	Content  string
}

// Store answers exact metadata-field queries.
type Store interface {
	QueryByField(ctx context.Context, field, value string, limit int) ([]Document, error)
}

// Adder ingests documents at index-build time.
type Adder interface {
	Add(ctx context.Context, docs ...Document) error
}
