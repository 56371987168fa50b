package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"tienda-pos/internal/domain"
	"tienda-pos/internal/repository"

	"github.com/google/uuid"
)

var (
	// ErrCategoryInUse means a category delete was rejected because
	// products still reference it. Deletion is strictly deny-on-conflict;
	// there is no cascade path.
	ErrCategoryInUse = errors.New("category still contains products")

	ErrInvalidName  = errors.New("name must not be empty")
	ErrInvalidPrice = errors.New("price must not be negative")
)

// CatalogService defines the interface for catalog business logic
type CatalogService interface {
	ListCategories(ctx context.Context) ([]*domain.Category, error)
	CreateCategory(ctx context.Context, name string) (*domain.Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, name string) (*domain.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	ListProducts(ctx context.Context, categoryID *uuid.UUID, search string, page, pageSize int) ([]*domain.Product, int, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	CreateProduct(ctx context.Context, name string, price int64, categoryID *uuid.UUID) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, name string, price int64, categoryID *uuid.UUID) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

type catalogService struct {
	db           *sql.DB
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
}

// NewCatalogService creates a new instance of CatalogService. The *sql.DB is
// needed alongside the repositories because the category deletion guard runs
// its reference check and the delete in one transaction.
func NewCatalogService(
	db *sql.DB,
	categoryRepo repository.CategoryRepository,
	productRepo repository.ProductRepository,
) CatalogService {
	return &catalogService{
		db:           db,
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
	}
}

// ListCategories returns all categories
func (s *catalogService) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	return s.categoryRepo.List(ctx)
}

// CreateCategory creates a new category with a non-empty name
func (s *catalogService) CreateCategory(ctx context.Context, name string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}

	category := &domain.Category{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: time.Now(),
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

// UpdateCategory renames an existing category
func (s *catalogService) UpdateCategory(ctx context.Context, id uuid.UUID, name string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}

	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	category.Name = name
	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

// DeleteCategory deletes a category only if no product references it. The
// reference count and the delete run inside a single transaction, and the
// schema backs the same invariant with an ON DELETE RESTRICT foreign key, so
// a product inserted during the check cannot be left dangling.
func (s *catalogService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	count, err := s.productRepo.CountByCategoryTx(ctx, tx, id)
	if err != nil {
		return err
	}

	if count > 0 {
		return fmt.Errorf("%w: category %s has %d products", ErrCategoryInUse, id, count)
	}

	if err := s.categoryRepo.DeleteTx(ctx, tx, id); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit category delete: %w", err)
	}

	return nil
}

const (
	// DefaultPageSize is used when a product listing request gives no page size
	DefaultPageSize = 50

	// MaxPageSize caps how many products one listing page may return
	MaxPageSize = 200
)

// NormalizePaging clamps paging parameters to sane values. Out-of-range
// values are normalized rather than rejected.
func NormalizePaging(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}

// ListProducts returns one page of products and the total count, optionally
// filtered by category or by a name search term
func (s *catalogService) ListProducts(ctx context.Context, categoryID *uuid.UUID, search string, page, pageSize int) ([]*domain.Product, int, error) {
	page, pageSize = NormalizePaging(page, pageSize)

	if strings.TrimSpace(search) != "" {
		return s.productRepo.Search(ctx, search, page, pageSize)
	}
	return s.productRepo.List(ctx, categoryID, page, pageSize)
}

// GetProduct retrieves a single product by ID
func (s *catalogService) GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	return s.productRepo.FindByID(ctx, id)
}

// CreateProduct creates a new product. The category, when given, must exist.
func (s *catalogService) CreateProduct(ctx context.Context, name string, price int64, categoryID *uuid.UUID) (*domain.Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}
	if price < 0 {
		return nil, ErrInvalidPrice
	}

	product := &domain.Product{
		ID:         uuid.New(),
		Name:       name,
		Price:      price,
		CategoryID: categoryID,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	if categoryID != nil {
		category, err := s.categoryRepo.FindByID(ctx, *categoryID)
		if err != nil {
			return nil, err
		}
		product.CategoryName = category.Name
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// UpdateProduct updates an existing product's name, price and category
func (s *catalogService) UpdateProduct(ctx context.Context, id uuid.UUID, name string, price int64, categoryID *uuid.UUID) (*domain.Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}
	if price < 0 {
		return nil, ErrInvalidPrice
	}

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	product.Name = name
	product.Price = price
	product.CategoryID = categoryID
	product.CategoryName = ""
	product.UpdatedAt = time.Now()

	if categoryID != nil {
		category, err := s.categoryRepo.FindByID(ctx, *categoryID)
		if err != nil {
			return nil, err
		}
		product.CategoryName = category.Name
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// DeleteProduct removes a product from the catalog
func (s *catalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return s.productRepo.Delete(ctx, id)
}
