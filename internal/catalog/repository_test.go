package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/warunglabs/warungpos-backend/pkg/db/models"
	pkgerrors "github.com/warunglabs/warungpos-backend/pkg/errors"
)

func TestDecrementStock(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	product := seedProduct(t, db, "Kopi Susu", 2500, 5)

	ok, err := repo.DecrementStock(ctx, product.ID, 3)
	if err != nil {
		t.Fatalf("decrement: %v", err)
	}
	if !ok {
		t.Fatal("expected decrement to succeed")
	}

	ok, err = repo.DecrementStock(ctx, product.ID, 3)
	if err != nil {
		t.Fatalf("second decrement: %v", err)
	}
	if ok {
		t.Fatal("expected decrement past remaining stock to be refused")
	}

	reloaded, err := repo.FindByID(ctx, product.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Stock != 2 {
		t.Fatalf("stock = %d, want 2", reloaded.Stock)
	}
}

func TestDecrementStockMissingProduct(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewRepository(db)

	ok, err := repo.DecrementStock(context.Background(), uuid.New(), 1)
	if err != nil {
		t.Fatalf("decrement: %v", err)
	}
	if ok {
		t.Fatal("expected decrement of unknown product to be refused")
	}
}

func TestListAvailableFiltersAndSearches(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	seedProduct(t, db, "Kopi Susu", 2500, 5)
	seedProduct(t, db, "Teh Manis", 1500, 3)
	seedProduct(t, db, "Kopi Hitam", 2000, 0)

	products, _, err := repo.ListAvailable(ctx, listAvailableQuery{Limit: 10})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("expected 2 sellable products, got %d", len(products))
	}
	for _, p := range products {
		if p.Stock <= 0 {
			t.Fatalf("product %s has no stock", p.Name)
		}
	}

	products, _, err = repo.ListAvailable(ctx, listAvailableQuery{Search: "kopi", Limit: 10})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(products) != 1 || products[0].Name != "Kopi Susu" {
		t.Fatalf("unexpected search result: %+v", products)
	}
}

func TestListAvailablePaginates(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		product := &models.Product{
			ID:         uuid.New(),
			Name:       "Item",
			SKU:        uuid.NewString(),
			PriceCents: 1000,
			Stock:      1,
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
		}
		if err := db.Create(product).Error; err != nil {
			t.Fatalf("seed product: %v", err)
		}
	}

	page, next, err := repo.ListAvailable(ctx, listAvailableQuery{Limit: 2})
	if err != nil {
		t.Fatalf("first page: %v", err)
	}
	if len(page) != 2 || next == nil {
		t.Fatalf("expected full first page with cursor, got %d items", len(page))
	}

	rest, last, err := repo.ListAvailable(ctx, listAvailableQuery{Limit: 2, Cursor: next})
	if err != nil {
		t.Fatalf("second page: %v", err)
	}
	if len(rest) != 1 || last != nil {
		t.Fatalf("expected final page of 1, got %d items", len(rest))
	}
}

func TestListLowStock(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewRepository(db)

	seedProduct(t, db, "Plenty", 1000, 50)
	seedProduct(t, db, "Low", 1000, 4)
	seedProduct(t, db, "Empty", 1000, 0)

	products, err := repo.ListLowStock(context.Background(), 10, 25)
	if err != nil {
		t.Fatalf("list low stock: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("expected 2 low stock products, got %d", len(products))
	}
	if products[0].Name != "Empty" {
		t.Fatalf("expected emptiest first, got %s", products[0].Name)
	}
}

func TestListFavoritesRanksByOrderCount(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	popular := seedProduct(t, db, "Popular", 1000, 10)
	rare := seedProduct(t, db, "Rare", 1000, 10)

	seedOrderLine(t, db, popular.ID, 2)
	seedOrderLine(t, db, popular.ID, 1)
	seedOrderLine(t, db, rare.ID, 5)

	favorites, err := repo.ListFavorites(ctx, 10)
	if err != nil {
		t.Fatalf("list favorites: %v", err)
	}
	if len(favorites) != 2 {
		t.Fatalf("expected 2 favorites, got %d", len(favorites))
	}
	if favorites[0].ProductID != popular.ID || favorites[0].TimesOrdered != 2 {
		t.Fatalf("unexpected top favorite: %+v", favorites[0])
	}
	if favorites[1].UnitsSold != 5 {
		t.Fatalf("unexpected units sold for rare: %+v", favorites[1])
	}
}

func TestServiceGetByIDNotFound(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc, err := NewService(NewRepository(db), 10)
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	_, err = svc.GetByID(context.Background(), uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("unexpected error: %v", err)
	}
}

func seedProduct(t *testing.T, db *gorm.DB, name string, priceCents, stock int) *models.Product {
	t.Helper()
	product := &models.Product{
		ID:         uuid.New(),
		Name:       name,
		SKU:        uuid.NewString(),
		PriceCents: priceCents,
		Stock:      stock,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("seed product %s: %v", name, err)
	}
	return product
}

func seedOrderLine(t *testing.T, db *gorm.DB, productID uuid.UUID, qty int) {
	t.Helper()
	line := &models.OrderLine{
		ID:             uuid.New(),
		OrderID:        uuid.New(),
		ProductID:      productID,
		ProductName:    "snapshot",
		Quantity:       qty,
		UnitPriceCents: 1000,
		LineTotalCents: 1000 * qty,
	}
	if err := db.Create(line).Error; err != nil {
		t.Fatalf("seed order line: %v", err)
	}
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:catalog_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	ddl := `
CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  sku TEXT NOT NULL UNIQUE,
  price_cents INTEGER NOT NULL,
  stock INTEGER NOT NULL DEFAULT 0,
  image_url TEXT,
  created_at DATETIME,
  updated_at DATETIME
);
CREATE TABLE IF NOT EXISTS order_lines (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  product_name TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  unit_price_cents INTEGER NOT NULL,
  line_total_cents INTEGER NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	if err := db.Exec(ddl).Error; err != nil {
		t.Fatalf("create tables: %v", err)
	}
	return db
}
