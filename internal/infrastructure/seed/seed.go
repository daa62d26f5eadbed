// Package seed loads fixture customers and products from a YAML file through the
// application services, so fixture records are validated like form input.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	catalogapp "github.com/mveges/grocery/internal/application/catalog"
	partnerapp "github.com/mveges/grocery/internal/application/partner"
	"github.com/mveges/grocery/internal/domain/shared"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// ErrFixtureNotFound is returned when the fixture file does not exist
var ErrFixtureNotFound = errors.New("seed fixture not found")

// File is the fixture file layout. Scalar values are read as text, the way
// a form submits them.
type File struct {
	Customers []Customer `yaml:"customers"`
	Products  []Product  `yaml:"products"`
}

// Customer is one fixture customer
type Customer struct {
	Name       string `yaml:"name"`
	Email      string `yaml:"email"`
	Age        string `yaml:"age"`
	Membership string `yaml:"membership"`
}

// Product is one fixture product
type Product struct {
	Name     string `yaml:"name"`
	Price    string `yaml:"price"`
	Quantity string `yaml:"quantity"`
	Category string `yaml:"category"`
}

// Result summarizes a seeding run
type Result struct {
	Customers int `json:"customers"`
	Products  int `json:"products"`
	Rejected  int `json:"rejected"`
}

// CustomerRegistrar registers customers
type CustomerRegistrar interface {
	Register(ctx context.Context, req partnerapp.RegisterCustomerRequest) (*partnerapp.CustomerRegistrationResponse, error)
}

// ProductAdder adds products
type ProductAdder interface {
	Add(ctx context.Context, req catalogapp.AddProductRequest) (*catalogapp.ProductResponse, error)
}

// Loader feeds fixture records to the services
type Loader struct {
	customers CustomerRegistrar
	products  ProductAdder
	logger    *zap.Logger
}

// NewLoader creates a new fixture loader
func NewLoader(customers CustomerRegistrar, products ProductAdder, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		customers: customers,
		products:  products,
		logger:    logger.Named("seed"),
	}
}

// Parse decodes a fixture document
func Parse(r io.Reader) (*File, error) {
	var file File
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return &file, nil
		}
		return nil, fmt.Errorf("parsing seed fixture: %w", err)
	}
	return &file, nil
}

// LoadFile reads the fixture at path and loads it
func (l *Loader) LoadFile(ctx context.Context, path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFixtureNotFound, path)
		}
		return nil, fmt.Errorf("reading seed fixture: %w", err)
	}
	defer f.Close()

	file, err := Parse(f)
	if err != nil {
		return nil, err
	}
	return l.Load(ctx, file)
}

// Load registers every fixture customer and product in file order.
// Records failing validation are logged and counted as rejected; any other
// error stops the run.
func (l *Loader) Load(ctx context.Context, file *File) (*Result, error) {
	result := &Result{}

	for i, c := range file.Customers {
		_, err := l.customers.Register(ctx, partnerapp.RegisterCustomerRequest{
			Name:       c.Name,
			Email:      c.Email,
			Age:        c.Age,
			Membership: c.Membership,
		})
		if err != nil {
			if !l.reject(err, "customer", i) {
				return result, fmt.Errorf("seed customer %d: %w", i, err)
			}
			result.Rejected++
			continue
		}
		result.Customers++
	}

	for i, p := range file.Products {
		_, err := l.products.Add(ctx, catalogapp.AddProductRequest{
			Name:     p.Name,
			Price:    p.Price,
			Quantity: p.Quantity,
			Category: p.Category,
		})
		if err != nil {
			if !l.reject(err, "product", i) {
				return result, fmt.Errorf("seed product %d: %w", i, err)
			}
			result.Rejected++
			continue
		}
		result.Products++
	}

	l.logger.Info("seed fixture loaded",
		zap.Int("customers", result.Customers),
		zap.Int("products", result.Products),
		zap.Int("rejected", result.Rejected),
	)
	return result, nil
}

// reject logs validation failures and reports whether err was one
func (l *Loader) reject(err error, kind string, index int) bool {
	var domainErr *shared.DomainError
	if !errors.As(err, &domainErr) {
		return false
	}
	l.logger.Warn("seed record rejected",
		zap.String("kind", kind),
		zap.Int("index", index),
		zap.String("code", domainErr.Code),
		zap.String("reason", domainErr.Message),
	)
	return true
}
