package persistence

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/mveges/grocery/internal/domain/catalog"
	"github.com/mveges/grocery/internal/domain/partner"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var baseTime = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

// newMockGorm creates a GORM DB on the postgres dialect backed by sqlmock
func newMockGorm(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	mockDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
		DisableAutomaticPing:   true,
		TranslateError:         true,
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func newTestCustomer(t *testing.T, n int, name, membership string, age int) *partner.Customer {
	t.Helper()
	customer, err := partner.NewCustomer(
		fmt.Sprintf("%d", baseTime.UnixMilli()+int64(n)),
		partner.RegistrationInput{
			Name:       name,
			Email:      fmt.Sprintf("customer%d@example.com", n),
			Age:        &age,
			Membership: membership,
		},
		partner.DefaultMembershipDiscounts(),
		baseTime.Add(time.Duration(n)*time.Minute),
	)
	require.NoError(t, err)
	return customer
}

func newTestProduct(t *testing.T, n int, name, price string, qty int, category string) *catalog.Product {
	t.Helper()
	p := decimal.RequireFromString(price)
	product, err := catalog.NewProduct(
		fmt.Sprintf("PRD-%04d", n),
		catalog.ProductInput{Name: name, Price: &p, Quantity: &qty, Category: category},
		baseTime.Add(time.Duration(n)*time.Minute),
	)
	require.NoError(t, err)
	return product
}
