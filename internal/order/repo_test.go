package order

import (
	"context"
	"testing"
	"time"

	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(gormsqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&Order{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func TestRepo_ImportAndLoadAll(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepo(db)
	ctx := context.Background()

	n, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected empty table, got %d", n)
	}

	in := []Order{
		{
			OrderID:     "e481f51cbdc54678b7cc49136f2d6af7",
			CustomerID:  "9ef432eb6251297304e76186b10a928d",
			Status:      StatusDelivered,
			PurchasedAt: tp(time.Date(2017, 10, 2, 10, 56, 33, 0, time.UTC)),
		},
		{
			OrderID:    "53cdb2fc8bc7dce0b6741e2150273451",
			CustomerID: "b0830fb4747a6c6d20dea0b8c802d7ef",
			Status:     StatusShipped,
		},
	}
	if err := repo.Import(ctx, in); err != nil {
		t.Fatalf("import: %v", err)
	}

	n, err = repo.Count(ctx)
	if err != nil || n != 2 {
		t.Fatalf("count after import: %d, %v", n, err)
	}

	out, err := repo.LoadAll(ctx)
	if err != nil {
		t.Fatalf("load all: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(out))
	}

	idx := NewIndex(out)
	o, ok := idx.Order("E481F51CBDC54678B7CC49136F2D6AF7")
	if !ok {
		t.Fatal("index miss after round trip")
	}
	if o.Status != StatusDelivered || o.PurchasedAt == nil {
		t.Fatalf("fields lost in round trip: %+v", o)
	}
	if o.DeliveredAt != nil {
		t.Fatal("absent timestamp should stay nil")
	}
}
