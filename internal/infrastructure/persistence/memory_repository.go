package persistence

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/mveges/grocery/internal/domain/catalog"
	"github.com/mveges/grocery/internal/domain/partner"
	"github.com/mveges/grocery/internal/domain/shared"
)

// MemoryCustomerRepository keeps customers in insertion order in process memory.
// Records are lost when the process exits.
type MemoryCustomerRepository struct {
	mu        sync.RWMutex
	customers []partner.Customer
	index     map[string]int
}

// NewMemoryCustomerRepository creates an empty in-memory customer repository
func NewMemoryCustomerRepository() *MemoryCustomerRepository {
	return &MemoryCustomerRepository{index: make(map[string]int)}
}

// FindByID finds a customer by its ID
func (r *MemoryCustomerRepository) FindByID(_ context.Context, id string) (*partner.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	customer := r.customers[i]
	return &customer, nil
}

// FindAll finds all customers matching the filter
func (r *MemoryCustomerRepository) FindAll(_ context.Context, filter shared.Filter) ([]partner.Customer, error) {
	r.mu.RLock()
	matched := r.match(filter)
	r.mu.RUnlock()

	field := ValidateSortField(filter.OrderBy, CustomerSortFields, "created_at")
	if compare, ok := customerComparators[field]; ok {
		slices.SortStableFunc(matched, compare)
	}
	if ValidateSortOrder(filter.OrderDir) == "DESC" {
		slices.Reverse(matched)
	}
	return paginate(matched, filter), nil
}

// Create appends a new customer. An ID that is already stored is rejected.
func (r *MemoryCustomerRepository) Create(_ context.Context, customer *partner.Customer) error {
	stored := *customer
	stored.ClearDomainEvents()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.index[stored.ID]; ok {
		return shared.ErrAlreadyExists
	}
	r.index[stored.ID] = len(r.customers)
	r.customers = append(r.customers, stored)
	return nil
}

// Count counts customers matching the filter
func (r *MemoryCustomerRepository) Count(_ context.Context, filter shared.Filter) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.match(filter))), nil
}

func (r *MemoryCustomerRepository) match(filter shared.Filter) []partner.Customer {
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	membership, _ := filter.Filters["membership"].(string)

	result := make([]partner.Customer, 0, len(r.customers))
	for _, c := range r.customers {
		if membership != "" && string(c.Membership) != membership {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(c.Name), search) &&
			!strings.Contains(strings.ToLower(c.Email), search) {
			continue
		}
		result = append(result, c)
	}
	return result
}

var customerComparators = map[string]func(a, b partner.Customer) int{
	"name":       func(a, b partner.Customer) int { return cmp.Compare(a.Name, b.Name) },
	"email":      func(a, b partner.Customer) int { return cmp.Compare(a.Email, b.Email) },
	"age":        func(a, b partner.Customer) int { return cmp.Compare(a.Age, b.Age) },
	"membership": func(a, b partner.Customer) int { return cmp.Compare(a.Membership, b.Membership) },
}

// MemoryProductRepository keeps products in insertion order in process memory.
// Records are lost when the process exits.
type MemoryProductRepository struct {
	mu       sync.RWMutex
	products []catalog.Product
	index    map[string]int
}

// NewMemoryProductRepository creates an empty in-memory product repository
func NewMemoryProductRepository() *MemoryProductRepository {
	return &MemoryProductRepository{index: make(map[string]int)}
}

// FindByID finds a product by its ID
func (r *MemoryProductRepository) FindByID(_ context.Context, id string) (*catalog.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	product := r.products[i]
	return &product, nil
}

// FindAll finds all products matching the filter
func (r *MemoryProductRepository) FindAll(_ context.Context, filter shared.Filter) ([]catalog.Product, error) {
	r.mu.RLock()
	matched := r.match(filter)
	r.mu.RUnlock()

	field := ValidateSortField(filter.OrderBy, ProductSortFields, "created_at")
	if compare, ok := productComparators[field]; ok {
		slices.SortStableFunc(matched, compare)
	}
	if ValidateSortOrder(filter.OrderDir) == "DESC" {
		slices.Reverse(matched)
	}
	return paginate(matched, filter), nil
}

// Create appends a new product. An ID that is already stored is rejected.
func (r *MemoryProductRepository) Create(_ context.Context, product *catalog.Product) error {
	stored := *product
	stored.ClearDomainEvents()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.index[stored.ID]; ok {
		return shared.ErrAlreadyExists
	}
	r.index[stored.ID] = len(r.products)
	r.products = append(r.products, stored)
	return nil
}

// Count counts products matching the filter
func (r *MemoryProductRepository) Count(_ context.Context, filter shared.Filter) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.match(filter))), nil
}

func (r *MemoryProductRepository) match(filter shared.Filter) []catalog.Product {
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	category, _ := filter.Filters["category"].(string)

	result := make([]catalog.Product, 0, len(r.products))
	for _, p := range r.products {
		if category != "" && p.Category != category {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Category), search) {
			continue
		}
		result = append(result, p)
	}
	return result
}

var productComparators = map[string]func(a, b catalog.Product) int{
	"name":     func(a, b catalog.Product) int { return cmp.Compare(a.Name, b.Name) },
	"price":    func(a, b catalog.Product) int { return a.Price.Cmp(b.Price) },
	"quantity": func(a, b catalog.Product) int { return cmp.Compare(a.Quantity, b.Quantity) },
	"category": func(a, b catalog.Product) int { return cmp.Compare(a.Category, b.Category) },
}

func paginate[T any](items []T, filter shared.Filter) []T {
	if filter.PageSize <= 0 {
		return items
	}
	start := min(filter.Offset(), len(items))
	end := min(start+filter.PageSize, len(items))
	return items[start:end]
}

var (
	_ partner.CustomerRepository = (*MemoryCustomerRepository)(nil)
	_ catalog.ProductRepository  = (*MemoryProductRepository)(nil)
)
