package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/mveges/grocery/internal/domain/catalog"
	"github.com/mveges/grocery/internal/domain/partner"
	"github.com/mveges/grocery/internal/infrastructure/config"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Repositories bundles the repositories selected by the storage driver
type Repositories struct {
	Customers partner.CustomerRepository
	Products  catalog.ProductRepository

	// Database is nil for the memory driver
	Database *Database
}

// NewRepositories creates the repositories for the configured storage driver.
// SQL drivers open the database, register the given GORM plugins and migrate the schema.
func NewRepositories(ctx context.Context, cfg config.StorageConfig, gormLog gormlogger.Interface, plugins ...gorm.Plugin) (*Repositories, error) {
	if cfg.Driver == config.DriverMemory || cfg.Driver == "" {
		return &Repositories{
			Customers: NewMemoryCustomerRepository(),
			Products:  NewMemoryProductRepository(),
		}, nil
	}

	db, err := NewDatabase(cfg, gormLog)
	if err != nil {
		return nil, err
	}
	for _, plugin := range plugins {
		if err := db.DB.Use(plugin); err != nil {
			return nil, errors.Join(fmt.Errorf("register gorm plugin %s: %w", plugin.Name(), err), db.Close())
		}
	}
	if err := db.Migrate(ctx); err != nil {
		return nil, errors.Join(err, db.Close())
	}

	return &Repositories{
		Customers: NewGormCustomerRepository(db.DB),
		Products:  NewGormProductRepository(db.DB),
		Database:  db,
	}, nil
}

// Close releases the database connection, if any
func (r *Repositories) Close() error {
	if r.Database == nil {
		return nil
	}
	return r.Database.Close()
}
