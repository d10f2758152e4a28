package catalog

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/warunglabs/warungpos-backend/pkg/db/models"
	"github.com/warunglabs/warungpos-backend/pkg/pagination"
)

// Repository wires together product persistence for the register and the
// admin widgets.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// FindByID loads the product without associations.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

type listAvailableQuery struct {
	Search string
	Limit  int
	Cursor *pagination.Cursor
}

// ListAvailable returns sellable products (stock above zero), newest
// first, optionally filtered by a case-insensitive name match.
func (r *Repository) ListAvailable(ctx context.Context, query listAvailableQuery) ([]models.Product, *pagination.Cursor, error) {
	limit := pagination.LimitWithBuffer(query.Limit)
	normalized := pagination.NormalizeLimit(query.Limit)

	qb := r.db.WithContext(ctx).Model(&models.Product{}).Where("stock > 0")
	if search := strings.TrimSpace(query.Search); search != "" {
		qb = qb.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}
	if query.Cursor != nil {
		qb = qb.Where("(created_at, id) < (?, ?)", query.Cursor.CreatedAt, query.Cursor.ID)
	}

	var products []models.Product
	if err := qb.Order("created_at DESC, id DESC").Limit(limit).Find(&products).Error; err != nil {
		return nil, nil, err
	}

	if len(products) > normalized {
		next := products[normalized]
		products = products[:normalized]
		return products, &pagination.Cursor{CreatedAt: next.CreatedAt, ID: next.ID}, nil
	}
	return products, nil, nil
}

// ListLowStock returns products at or below the threshold, emptiest first.
func (r *Repository) ListLowStock(ctx context.Context, threshold, limit int) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).
		Where("stock <= ?", threshold).
		Order("stock ASC, name ASC").
		Limit(limit).
		Find(&products).
		Error
	return products, err
}

// FavoriteProduct aggregates how often a product has been sold.
type FavoriteProduct struct {
	ProductID    uuid.UUID `gorm:"column:product_id" json:"product_id"`
	Name         string    `gorm:"column:name" json:"name"`
	PriceCents   int       `gorm:"column:price_cents" json:"price_cents"`
	TimesOrdered int64     `gorm:"column:times_ordered" json:"times_ordered"`
	UnitsSold    int64     `gorm:"column:units_sold" json:"units_sold"`
}

// ListFavorites returns the best sellers ranked by how many orders
// included them.
func (r *Repository) ListFavorites(ctx context.Context, limit int) ([]FavoriteProduct, error) {
	var favorites []FavoriteProduct
	err := r.db.WithContext(ctx).
		Table("order_lines l").
		Select(strings.Join([]string{
			"p.id AS product_id",
			"p.name AS name",
			"p.price_cents AS price_cents",
			"COUNT(l.id) AS times_ordered",
			"SUM(l.quantity) AS units_sold",
		}, ", ")).
		Joins("JOIN products p ON p.id = l.product_id").
		Group("p.id, p.name, p.price_cents").
		Order("times_ordered DESC, units_sold DESC").
		Limit(limit).
		Scan(&favorites).
		Error
	return favorites, err
}

// DecrementStock atomically subtracts qty from the product's stock,
// refusing to go below zero. It reports whether a row was updated; false
// means the product is gone or the remaining stock is short.
func (r *Repository) DecrementStock(ctx context.Context, productID uuid.UUID, qty int) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ? AND stock >= ?", productID, qty).
		UpdateColumn("stock", gorm.Expr("stock - ?", qty))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
