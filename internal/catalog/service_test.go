package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"

	pkgerrors "github.com/warunglabs/warungpos-backend/pkg/errors"
)

func TestServiceGetByID(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc, err := NewService(NewRepository(db), 10)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	ctx := context.Background()

	seeded := seedProduct(t, db, "Teh Botol", 500, 8)

	product, err := svc.GetByID(ctx, seeded.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if product.Name != "Teh Botol" {
		t.Fatalf("name = %q", product.Name)
	}

	_, err = svc.GetByID(ctx, uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}

	_, err = svc.GetByID(ctx, uuid.Nil)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected VALIDATION_ERROR for nil id, got %v", err)
	}
}

func TestServiceListLowStockUsesThreshold(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc, err := NewService(NewRepository(db), 3)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	seedProduct(t, db, "Running Low", 1000, 2)
	seedProduct(t, db, "Plenty", 1000, 50)

	products, err := svc.ListLowStock(context.Background())
	if err != nil {
		t.Fatalf("list low stock: %v", err)
	}
	if len(products) != 1 {
		t.Fatalf("got %d products, want 1", len(products))
	}
	if products[0].Name != "Running Low" {
		t.Fatalf("unexpected product %q", products[0].Name)
	}
}

func TestServiceListAvailableRejectsBadCursor(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc, err := NewService(NewRepository(db), 10)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, err = svc.ListAvailable(context.Background(), ListParams{Cursor: "not-a-cursor"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
}

func TestNewServiceRejectsNegativeThreshold(t *testing.T) {
	t.Parallel()

	if _, err := NewService(NewRepository(newTestDB(t)), -1); err == nil {
		t.Fatal("expected error")
	}
}
