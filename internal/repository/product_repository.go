package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"tienda-pos/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

// ProductRepository defines the interface for product data access. List and
// Search paginate and report the total row count alongside the page.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	List(ctx context.Context, categoryID *uuid.UUID, page, pageSize int) ([]*domain.Product, int, error)
	Search(ctx context.Context, query string, page, pageSize int) ([]*domain.Product, int, error)
	CountByCategoryTx(ctx context.Context, tx *sql.Tx, categoryID uuid.UUID) (int, error)
}

type productRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new instance of ProductRepository
func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{db: db}
}

// Create inserts a new product into the database using parameterized queries
func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	query := `
		INSERT INTO products (id, name, price, category_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		product.ID,
		product.Name,
		product.Price,
		product.CategoryID,
		product.CreatedAt,
		product.UpdatedAt,
	)

	if err != nil {
		// FK violation on category_id means the referenced category is gone
		if strings.Contains(err.Error(), "fk_products_category") {
			return ErrCategoryNotFound
		}
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

// Update updates an existing product in the database using parameterized queries
func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	query := `
		UPDATE products
		SET name = $2, price = $3, category_id = $4, updated_at = $5
		WHERE id = $1
	`

	result, err := r.db.ExecContext(
		ctx,
		query,
		product.ID,
		product.Name,
		product.Price,
		product.CategoryID,
		product.UpdatedAt,
	)

	if err != nil {
		if strings.Contains(err.Error(), "fk_products_category") {
			return ErrCategoryNotFound
		}
		return fmt.Errorf("failed to update product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}

// Delete removes a product from the database using parameterized queries
func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM products WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}

// FindByID retrieves a product by ID together with its category name
func (r *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	query := `
		SELECT p.id, p.name, p.price, p.category_id, COALESCE(c.name, ''), p.created_at, p.updated_at
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE p.id = $1
	`

	product := &domain.Product{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&product.ID,
		&product.Name,
		&product.Price,
		&product.CategoryID,
		&product.CategoryName,
		&product.CreatedAt,
		&product.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}

	return product, nil
}

// List retrieves one page of products with their category names, optionally
// filtered by category, ordered by name
func (r *productRepository) List(ctx context.Context, categoryID *uuid.UUID, page, pageSize int) ([]*domain.Product, int, error) {
	whereClause := ""
	args := []interface{}{}
	argIndex := 1

	if categoryID != nil {
		whereClause = fmt.Sprintf("WHERE p.category_id = $%d", argIndex)
		args = append(args, *categoryID)
		argIndex++
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM products p %s", whereClause)
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	offset := (page - 1) * pageSize

	query := fmt.Sprintf(`
		SELECT p.id, p.name, p.price, p.category_id, COALESCE(c.name, ''), p.created_at, p.updated_at
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		%s
		ORDER BY p.name ASC
		LIMIT $%d OFFSET $%d
	`, whereClause, argIndex, argIndex+1)
	args = append(args, pageSize, offset)

	products, err := r.queryProducts(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// Search searches for products by name, case-insensitively, with pagination
func (r *productRepository) Search(ctx context.Context, search string, page, pageSize int) ([]*domain.Product, int, error) {
	if strings.TrimSpace(search) == "" {
		return r.List(ctx, nil, page, pageSize)
	}

	searchPattern := "%" + search + "%"

	countQuery := `SELECT COUNT(*) FROM products WHERE name ILIKE $1`
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, searchPattern).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count search results: %w", err)
	}

	offset := (page - 1) * pageSize

	query := `
		SELECT p.id, p.name, p.price, p.category_id, COALESCE(c.name, ''), p.created_at, p.updated_at
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE p.name ILIKE $1
		ORDER BY p.name ASC
		LIMIT $2 OFFSET $3
	`

	products, err := r.queryProducts(ctx, query, searchPattern, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// CountByCategoryTx counts the products referencing a category inside the
// caller's transaction. The category integrity guard runs this and the
// category delete within one transaction so a racing product insert cannot
// slip between the check and the delete.
func (r *productRepository) CountByCategoryTx(ctx context.Context, tx *sql.Tx, categoryID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM products WHERE category_id = $1`

	var count int
	if err := tx.QueryRowContext(ctx, query, categoryID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count products by category: %w", err)
	}

	return count, nil
}

func (r *productRepository) queryProducts(ctx context.Context, query string, args ...interface{}) ([]*domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := []*domain.Product{}
	for rows.Next() {
		product := &domain.Product{}
		err := rows.Scan(
			&product.ID,
			&product.Name,
			&product.Price,
			&product.CategoryID,
			&product.CategoryName,
			&product.CreatedAt,
			&product.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}
