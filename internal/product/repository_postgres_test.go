package product

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/freshkart/grocer-backend/internal/catalog"
)

func TestListGroupsVariants(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	products := sqlmock.NewRows([]string{"productID", "title", "status", "categoryID", "subcategoryID", "isDealAvailable", "dealPercent"}).
		AddRow(1, "Basmati Rice", true, 4, 12, true, "10").
		AddRow(2, "Olive Oil", true, 5, 20, false, "0")
	mock.ExpectQuery("FROM products").WillReturnRows(products)

	variants := sqlmock.NewRows([]string{"productID", "unit", "price", "stock", "enable", "offerAvailable", "offerPercent"}).
		AddRow(1, "1kg", "33.335", 10, true, false, "0").
		AddRow(2, "500ml", "50", 5, true, true, "20")
	mock.ExpectQuery("FROM variants").WillReturnRows(variants)

	got, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d products, want 2", len(got))
	}
	if len(got[0].Variants) != 1 || got[0].Variants[0].Unit != "1kg" {
		t.Fatalf("variant grouping wrong: %+v", got[0].Variants)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	empty := sqlmock.NewRows([]string{"productID", "title", "status", "categoryID", "subcategoryID", "isDealAvailable", "dealPercent"})
	mock.ExpectQuery("FROM products").WithArgs(9).WillReturnRows(empty)

	_, err = repo.GetByID(context.Background(), 9)
	if err != catalog.ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestUpsertInsertReplacesVariants(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectBegin()
	id := sqlmock.NewRows([]string{"productID"}).AddRow(7)
	mock.ExpectQuery("INSERT INTO products").WillReturnRows(id)
	mock.ExpectExec("DELETE FROM variants").WithArgs(7).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO variants").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	p := catalog.Product{Title: "Basmati Rice", Status: true, Variants: []catalog.Variant{{Unit: "1kg", Enable: true}}}
	saved, err := repo.Upsert(context.Background(), p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved.ID != 7 {
		t.Fatalf("id = %d, want 7", saved.ID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestUpsertUpdateUnknownProduct(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE products").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err = repo.Upsert(context.Background(), catalog.Product{ID: 9, Title: "Ghost"})
	if err != catalog.ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestDeleteUnknownProduct(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM variants").WithArgs(9).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM products").WithArgs(9).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	if err := repo.Delete(context.Background(), 9); err != catalog.ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
