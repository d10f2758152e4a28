package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/warunglabs/warungpos-backend/pkg/db/models"
	pkgerrors "github.com/warunglabs/warungpos-backend/pkg/errors"
	"github.com/warunglabs/warungpos-backend/pkg/pagination"
)

const favoritesDefaultLimit = 10

// Service exposes catalog read paths for the register and admin widgets.
type Service interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	ListAvailable(ctx context.Context, params ListParams) (*ListResult, error)
	ListLowStock(ctx context.Context) ([]models.Product, error)
	ListFavorites(ctx context.Context, limit int) ([]FavoriteProduct, error)
}

// ListParams configures search and pagination for the browse endpoint.
type ListParams struct {
	Search string
	Limit  int
	Cursor string
}

// ListResult wraps returned products and the cursor for the next page.
type ListResult struct {
	Items  []models.Product `json:"items"`
	Cursor string           `json:"cursor"`
}

type service struct {
	repo              *Repository
	lowStockThreshold int
}

// NewService wires catalog dependencies. The low stock threshold comes
// from configuration.
func NewService(repo *Repository, lowStockThreshold int) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "catalog repository required")
	}
	if lowStockThreshold < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "low stock threshold must be non-negative")
	}
	return &service{repo: repo, lowStockThreshold: lowStockThreshold}, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return product, nil
}

func (s *service) ListAvailable(ctx context.Context, params ListParams) (*ListResult, error) {
	query := listAvailableQuery{
		Search: params.Search,
		Limit:  params.Limit,
	}
	if params.Cursor != "" {
		cursor, err := pagination.ParseCursor(params.Cursor)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
		}
		query.Cursor = cursor
	}

	products, next, err := s.repo.ListAvailable(ctx, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}

	cursor := ""
	if next != nil {
		cursor = pagination.EncodeCursor(*next)
	}
	return &ListResult{Items: products, Cursor: cursor}, nil
}

func (s *service) ListLowStock(ctx context.Context) ([]models.Product, error) {
	products, err := s.repo.ListLowStock(ctx, s.lowStockThreshold, pagination.DefaultLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list low stock products")
	}
	return products, nil
}

func (s *service) ListFavorites(ctx context.Context, limit int) ([]FavoriteProduct, error) {
	if limit <= 0 {
		limit = favoritesDefaultLimit
	}
	favorites, err := s.repo.ListFavorites(ctx, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list favorite products")
	}
	return favorites, nil
}
