package catalog

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestApplyStockDelta(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	rows := sqlmock.NewRows([]string{"stock"}).AddRow(7)
	mock.ExpectQuery("UPDATE variants").WithArgs(1, "1kg", -3).WillReturnRows(rows)

	remaining, err := repo.ApplyStockDelta(context.Background(), 1, "1kg", -3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if remaining != 7 {
		t.Fatalf("remaining = %d, want 7", remaining)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestApplyStockDeltaConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	// the guard rejects the update but the variant exists
	mock.ExpectQuery("UPDATE variants").WithArgs(1, "1kg", -3).WillReturnError(sql.ErrNoRows)
	exists := sqlmock.NewRows([]string{"exists"}).AddRow(true)
	mock.ExpectQuery("SELECT EXISTS").WithArgs(1, "1kg").WillReturnRows(exists)

	_, err = repo.ApplyStockDelta(context.Background(), 1, "1kg", -3)
	if err != ErrStockConflict {
		t.Fatalf("err = %v, want ErrStockConflict", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestApplyStockDeltaUnknownVariant(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("UPDATE variants").WithArgs(9, "1kg", -1).WillReturnError(sql.ErrNoRows)
	exists := sqlmock.NewRows([]string{"exists"}).AddRow(false)
	mock.ExpectQuery("SELECT EXISTS").WithArgs(9, "1kg").WillReturnRows(exists)

	_, err = repo.ApplyStockDelta(context.Background(), 9, "1kg", -1)
	if err != ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestGetProductsByIDs(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	products := sqlmock.NewRows([]string{"productID", "title", "status", "categoryID", "subcategoryID", "isDealAvailable", "dealPercent"}).
		AddRow(1, "Basmati Rice", true, 4, 12, true, "10").
		AddRow(2, "Olive Oil", true, 5, 20, false, "0")
	mock.ExpectQuery("FROM products p").WillReturnRows(products)

	variants := sqlmock.NewRows([]string{"productID", "unit", "price", "stock", "enable", "offerAvailable", "offerPercent"}).
		AddRow(1, "1kg", "33.335", 10, true, false, "0").
		AddRow(1, "5kg", "150", 3, true, false, "0").
		AddRow(2, "500ml", "50", 5, true, true, "20")
	mock.ExpectQuery("FROM variants v").WillReturnRows(variants)

	got, err := repo.GetProductsByIDs(context.Background(), []int{1, 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d products, want 2", len(got))
	}
	if len(got[0].Variants) != 2 || len(got[1].Variants) != 1 {
		t.Fatalf("variant grouping wrong: %d/%d", len(got[0].Variants), len(got[1].Variants))
	}
	if got[1].Variants[0].Unit != "500ml" {
		t.Errorf("unexpected variant %q", got[1].Variants[0].Unit)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestGetProductsByIDsEmpty(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	got, err := repo.GetProductsByIDs(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("got %d products, want 0", len(got))
	}
}
