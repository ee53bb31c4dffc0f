package repository

import (
	"context"
	"errors"
	"sort"
	"strings"

	"storefront/internal/domain"
)

var (
	ErrProductNotFound        = errors.New("product not found")
	ErrShippingOptionNotFound = errors.New("shipping option not found")
)

// SortOrder represents the sort direction
type SortOrder string

const (
	SortOrderAsc  SortOrder = "ASC"
	SortOrderDesc SortOrder = "DESC"
)

// ProductRepository defines read access to the product catalog
type ProductRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context, page, pageSize int, sortBy string, sortOrder SortOrder) ([]*domain.Product, int, error)
	Search(ctx context.Context, query string, page, pageSize int) ([]*domain.Product, int, error)
}

type productRepository struct {
	products []domain.Product
}

// NewProductRepository creates a read-only catalog over products. The slice
// is copied; callers only ever receive copies of its entries.
func NewProductRepository(products []domain.Product) ProductRepository {
	own := make([]domain.Product, len(products))
	for i, p := range products {
		own[i] = cloneProduct(p)
	}
	return &productRepository{products: own}
}

func cloneProduct(p domain.Product) domain.Product {
	p.Features = append([]string(nil), p.Features...)
	return p
}

// FindByID retrieves a product by ID
func (r *productRepository) FindByID(_ context.Context, id string) (*domain.Product, error) {
	for _, p := range r.products {
		if p.ID == id {
			product := cloneProduct(p)
			return &product, nil
		}
	}
	return nil, ErrProductNotFound
}

// List retrieves products with pagination and sorting. Without a valid sort
// field the catalog order is kept.
func (r *productRepository) List(_ context.Context, page, pageSize int, sortBy string, sortOrder SortOrder) ([]*domain.Product, int, error) {
	products := r.copyAll()

	// Validate sort order
	if sortOrder != SortOrderAsc && sortOrder != SortOrderDesc {
		sortOrder = SortOrderAsc
	}

	less := map[string]func(a, b *domain.Product) bool{
		"name":  func(a, b *domain.Product) bool { return strings.ToLower(a.Name) < strings.ToLower(b.Name) },
		"price": func(a, b *domain.Product) bool { return a.Price.LessThan(b.Price) },
		"stock": func(a, b *domain.Product) bool { return a.Stock < b.Stock },
	}[sortBy]

	if less != nil {
		sort.SliceStable(products, func(i, j int) bool {
			if sortOrder == SortOrderDesc {
				return less(products[j], products[i])
			}
			return less(products[i], products[j])
		})
	}

	return paginate(products, page, pageSize), len(products), nil
}

// Search matches query case-insensitively against name and description
func (r *productRepository) Search(ctx context.Context, query string, page, pageSize int) ([]*domain.Product, int, error) {
	// If query is empty, return all products
	if strings.TrimSpace(query) == "" {
		return r.List(ctx, page, pageSize, "", SortOrderAsc)
	}

	needle := strings.ToLower(strings.TrimSpace(query))
	var matches []*domain.Product
	for _, p := range r.copyAll() {
		if strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.Description), needle) {
			matches = append(matches, p)
		}
	}

	return paginate(matches, page, pageSize), len(matches), nil
}

func (r *productRepository) copyAll() []*domain.Product {
	products := make([]*domain.Product, 0, len(r.products))
	for _, p := range r.products {
		product := cloneProduct(p)
		products = append(products, &product)
	}
	return products
}

// paginate returns the 1-based page. A page size of zero or less returns everything.
func paginate(products []*domain.Product, page, pageSize int) []*domain.Product {
	if pageSize <= 0 {
		if products == nil {
			return []*domain.Product{}
		}
		return products
	}
	if page < 1 {
		page = 1
	}

	offset := (page - 1) * pageSize
	if offset >= len(products) {
		return []*domain.Product{}
	}
	end := min(offset+pageSize, len(products))
	return products[offset:end]
}
