package service

import (
	"context"
	"database/sql"
	"strings"

	"tienda-pos/internal/domain"
	"tienda-pos/internal/repository"

	"github.com/google/uuid"
)

// Mock repositories for testing

type mockCategoryRepository struct {
	categories map[uuid.UUID]*domain.Category
}

func newMockCategoryRepository() *mockCategoryRepository {
	return &mockCategoryRepository{
		categories: make(map[uuid.UUID]*domain.Category),
	}
}

func (m *mockCategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	for _, existing := range m.categories {
		if strings.EqualFold(existing.Name, category.Name) {
			return repository.ErrCategoryAlreadyExists
		}
	}
	m.categories[category.ID] = category
	return nil
}

func (m *mockCategoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	out := []*domain.Category{}
	for _, category := range m.categories {
		out = append(out, category)
	}
	return out, nil
}

func (m *mockCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	category, exists := m.categories[id]
	if !exists {
		return nil, repository.ErrCategoryNotFound
	}
	return category, nil
}

func (m *mockCategoryRepository) Update(ctx context.Context, category *domain.Category) error {
	if _, exists := m.categories[category.ID]; !exists {
		return repository.ErrCategoryNotFound
	}
	m.categories[category.ID] = category
	return nil
}

func (m *mockCategoryRepository) DeleteTx(ctx context.Context, tx *sql.Tx, id uuid.UUID) error {
	if _, exists := m.categories[id]; !exists {
		return repository.ErrCategoryNotFound
	}
	delete(m.categories, id)
	return nil
}

type mockProductRepository struct {
	products map[uuid.UUID]*domain.Product
}

func newMockProductRepository() *mockProductRepository {
	return &mockProductRepository{
		products: make(map[uuid.UUID]*domain.Product),
	}
}

func (m *mockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	m.products[product.ID] = product
	return nil
}

func (m *mockProductRepository) Update(ctx context.Context, product *domain.Product) error {
	if _, exists := m.products[product.ID]; !exists {
		return repository.ErrProductNotFound
	}
	m.products[product.ID] = product
	return nil
}

func (m *mockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, exists := m.products[id]; !exists {
		return repository.ErrProductNotFound
	}
	delete(m.products, id)
	return nil
}

func (m *mockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	product, exists := m.products[id]
	if !exists {
		return nil, repository.ErrProductNotFound
	}
	copied := *product
	return &copied, nil
}

func (m *mockProductRepository) List(ctx context.Context, categoryID *uuid.UUID, page, pageSize int) ([]*domain.Product, int, error) {
	out := []*domain.Product{}
	for _, product := range m.products {
		if categoryID != nil && (product.CategoryID == nil || *product.CategoryID != *categoryID) {
			continue
		}
		out = append(out, product)
	}
	return paginate(out, page, pageSize), len(out), nil
}

func (m *mockProductRepository) Search(ctx context.Context, query string, page, pageSize int) ([]*domain.Product, int, error) {
	out := []*domain.Product{}
	for _, product := range m.products {
		if strings.Contains(strings.ToLower(product.Name), strings.ToLower(query)) {
			out = append(out, product)
		}
	}
	return paginate(out, page, pageSize), len(out), nil
}

func paginate(products []*domain.Product, page, pageSize int) []*domain.Product {
	start := (page - 1) * pageSize
	if start >= len(products) {
		return []*domain.Product{}
	}
	end := start + pageSize
	if end > len(products) {
		end = len(products)
	}
	return products[start:end]
}

func (m *mockProductRepository) CountByCategoryTx(ctx context.Context, tx *sql.Tx, categoryID uuid.UUID) (int, error) {
	count := 0
	for _, product := range m.products {
		if product.CategoryID != nil && *product.CategoryID == categoryID {
			count++
		}
	}
	return count, nil
}

type mockOperatorRepository struct {
	operators map[string]*domain.Operator
}

func newMockOperatorRepository() *mockOperatorRepository {
	return &mockOperatorRepository{
		operators: make(map[string]*domain.Operator),
	}
}

func (m *mockOperatorRepository) Create(ctx context.Context, operator *domain.Operator) error {
	if _, exists := m.operators[operator.Email]; exists {
		return repository.ErrOperatorAlreadyExists
	}
	m.operators[operator.Email] = operator
	return nil
}

func (m *mockOperatorRepository) FindByEmail(ctx context.Context, email string) (*domain.Operator, error) {
	operator, exists := m.operators[email]
	if !exists {
		return nil, repository.ErrOperatorNotFound
	}
	return operator, nil
}

func (m *mockOperatorRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Operator, error) {
	for _, operator := range m.operators {
		if operator.ID == id {
			return operator, nil
		}
	}
	return nil, repository.ErrOperatorNotFound
}
