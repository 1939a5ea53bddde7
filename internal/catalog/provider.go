package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// Provider exposes read-only catalog lookups. Implementations never mutate
// records after construction.
type Provider interface {
	FindProductByID(ctx context.Context, id string) (*Product, bool)
	ListProducts(ctx context.Context) []Product
	ListProductsByCategory(ctx context.Context, categoryID string) []Product
	SearchProducts(ctx context.Context, query string) []Product
	ListCategories(ctx context.Context) []Category
	FindCategoryByID(ctx context.Context, id string) (*Category, bool)
	ReviewsForProduct(ctx context.Context, productID string) []Review
}

type memoryProvider struct {
	products   map[string]Product
	order      []string
	categories []Category
	reviews    map[string][]Review
}

// NewMemoryProvider validates the records and indexes them for lookup.
func NewMemoryProvider(products []Product, categories []Category, reviews []Review) (Provider, error) {
	indexed := make(map[string]Product, len(products))
	order := make([]string, 0, len(products))
	for _, product := range products {
		if err := validateProduct(product); err != nil {
			return nil, err
		}
		if _, exists := indexed[product.ID]; exists {
			return nil, fmt.Errorf("duplicate product id %q", product.ID)
		}
		indexed[product.ID] = product
		order = append(order, product.ID)
	}

	byProduct := make(map[string][]Review, len(reviews))
	for _, review := range reviews {
		if _, ok := indexed[review.ProductID]; !ok {
			return nil, fmt.Errorf("review %q references unknown product %q", review.ID, review.ProductID)
		}
		byProduct[review.ProductID] = append(byProduct[review.ProductID], review)
	}

	return &memoryProvider{
		products:   indexed,
		order:      order,
		categories: append([]Category(nil), categories...),
		reviews:    byProduct,
	}, nil
}

func validateProduct(p Product) error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("product id is required")
	}
	if p.PriceCents < 0 {
		return fmt.Errorf("product %q: price cannot be negative", p.ID)
	}
	if p.CompareAtPriceCents != nil && *p.CompareAtPriceCents < p.PriceCents {
		return fmt.Errorf("product %q: compare-at price below price", p.ID)
	}
	if p.StockQuantity < 0 {
		return fmt.Errorf("product %q: stock cannot be negative", p.ID)
	}
	if len(p.Images) == 0 {
		return fmt.Errorf("product %q: at least one image is required", p.ID)
	}
	return nil
}

func (m *memoryProvider) FindProductByID(ctx context.Context, id string) (*Product, bool) {
	product, ok := m.products[id]
	if !ok {
		return nil, false
	}
	copied := cloneProduct(product)
	return &copied, true
}

func (m *memoryProvider) ListProducts(ctx context.Context) []Product {
	out := make([]Product, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, cloneProduct(m.products[id]))
	}
	return out
}

func (m *memoryProvider) ListProductsByCategory(ctx context.Context, categoryID string) []Product {
	var out []Product
	for _, id := range m.order {
		if product := m.products[id]; product.CategoryID == categoryID {
			out = append(out, cloneProduct(product))
		}
	}
	return out
}

func (m *memoryProvider) SearchProducts(ctx context.Context, query string) []Product {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return m.ListProducts(ctx)
	}
	var out []Product
	for _, id := range m.order {
		product := m.products[id]
		haystack := strings.ToLower(product.Name + " " + product.Brand + " " + product.Description)
		if strings.Contains(haystack, needle) {
			out = append(out, cloneProduct(product))
		}
	}
	return out
}

func (m *memoryProvider) ListCategories(ctx context.Context) []Category {
	return append([]Category(nil), m.categories...)
}

func (m *memoryProvider) FindCategoryByID(ctx context.Context, id string) (*Category, bool) {
	for _, category := range m.categories {
		if category.ID == id {
			copied := category
			return &copied, true
		}
	}
	return nil, false
}

func (m *memoryProvider) ReviewsForProduct(ctx context.Context, productID string) []Review {
	reviews := append([]Review(nil), m.reviews[productID]...)
	sort.SliceStable(reviews, func(i, j int) bool {
		return reviews[i].CreatedAt > reviews[j].CreatedAt
	})
	return reviews
}

func cloneProduct(p Product) Product {
	out := p
	out.Images = append([]string(nil), p.Images...)
	if p.Specifications != nil {
		specs := make(map[string]string, len(p.Specifications))
		for k, v := range p.Specifications {
			specs[k] = v
		}
		out.Specifications = specs
	}
	if p.CompareAtPriceCents != nil {
		compareAt := *p.CompareAtPriceCents
		out.CompareAtPriceCents = &compareAt
	}
	return out
}
