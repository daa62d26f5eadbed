package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mveges/grocery/internal/domain/partner"
	"github.com/mveges/grocery/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var customerColumns = []string{"id", "created_at", "updated_at", "name", "email", "age", "membership", "registered_at", "total_purchases", "loyalty_points"}

func TestGormCustomerRepository_FindByID(t *testing.T) {
	t.Run("finds existing customer", func(t *testing.T) {
		db, mock, mockDB := newMockGorm(t)
		defer mockDB.Close()
		repo := NewGormCustomerRepository(db)

		rows := sqlmock.NewRows(customerColumns).
			AddRow("1709283600000", baseTime, baseTime, "Wanjiku Kamau", "wanjiku@example.com", 34, "premium", baseTime, "0", 0)

		mock.ExpectQuery(`SELECT \* FROM "customers" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("1709283600000", 1).
			WillReturnRows(rows)

		customer, err := repo.FindByID(context.Background(), "1709283600000")

		require.NoError(t, err)
		assert.Equal(t, "1709283600000", customer.ID)
		assert.Equal(t, "Wanjiku Kamau", customer.Name)
		assert.Equal(t, partner.MembershipPremium, customer.Membership)
		assert.Equal(t, 34, customer.Age)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found for missing customer", func(t *testing.T) {
		db, mock, mockDB := newMockGorm(t)
		defer mockDB.Close()
		repo := NewGormCustomerRepository(db)

		mock.ExpectQuery(`SELECT \* FROM "customers" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("missing", 1).
			WillReturnError(gorm.ErrRecordNotFound)

		customer, err := repo.FindByID(context.Background(), "missing")

		assert.Nil(t, customer)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("passes through database errors", func(t *testing.T) {
		db, mock, mockDB := newMockGorm(t)
		defer mockDB.Close()
		repo := NewGormCustomerRepository(db)

		dbErr := errors.New("connection reset")
		mock.ExpectQuery(`SELECT \* FROM "customers"`).WillReturnError(dbErr)

		_, err := repo.FindByID(context.Background(), "x")
		assert.ErrorIs(t, err, dbErr)
	})
}

func TestGormCustomerRepository_FindAll(t *testing.T) {
	t.Run("applies membership filter, order and page", func(t *testing.T) {
		db, mock, mockDB := newMockGorm(t)
		defer mockDB.Close()
		repo := NewGormCustomerRepository(db)

		rows := sqlmock.NewRows(customerColumns).
			AddRow("1", baseTime, baseTime, "Wanjiku Kamau", "w@example.com", 34, "premium", baseTime, "0", 0).
			AddRow("2", baseTime, baseTime, "Achieng Atieno", "a@example.com", 65, "premium", baseTime, "0", 0)

		mock.ExpectQuery(`SELECT \* FROM "customers" WHERE membership = \$1 ORDER BY created_at ASC,id ASC LIMIT \$2`).
			WithArgs("premium", 20).
			WillReturnRows(rows)

		filter := shared.DefaultFilter()
		filter.Filters["membership"] = "premium"
		customers, err := repo.FindAll(context.Background(), filter)

		require.NoError(t, err)
		require.Len(t, customers, 2)
		assert.Equal(t, "Achieng Atieno", customers[1].Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("search is case-insensitive over name and email", func(t *testing.T) {
		db, mock, mockDB := newMockGorm(t)
		defer mockDB.Close()
		repo := NewGormCustomerRepository(db)

		mock.ExpectQuery(`SELECT \* FROM "customers" WHERE LOWER\(name\) LIKE \$1 OR LOWER\(email\) LIKE \$2 ORDER BY created_at DESC,id DESC LIMIT \$3 OFFSET \$4`).
			WithArgs("%wanjiku%", "%wanjiku%", 10, 10).
			WillReturnRows(sqlmock.NewRows(customerColumns))

		filter := shared.DefaultFilter()
		filter.Search = " Wanjiku "
		filter.OrderDir = "desc"
		filter.Page = 2
		filter.PageSize = 10
		customers, err := repo.FindAll(context.Background(), filter)

		require.NoError(t, err)
		assert.Empty(t, customers)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown sort field falls back to created_at", func(t *testing.T) {
		db, mock, mockDB := newMockGorm(t)
		defer mockDB.Close()
		repo := NewGormCustomerRepository(db)

		mock.ExpectQuery(`ORDER BY created_at ASC`).
			WillReturnRows(sqlmock.NewRows(customerColumns))

		filter := shared.DefaultFilter()
		filter.OrderBy = "1; DROP TABLE customers"
		_, err := repo.FindAll(context.Background(), filter)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormCustomerRepository_Create(t *testing.T) {
	t.Run("inserts new customer", func(t *testing.T) {
		db, mock, mockDB := newMockGorm(t)
		defer mockDB.Close()
		repo := NewGormCustomerRepository(db)

		mock.ExpectExec(`INSERT INTO "customers"`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Create(context.Background(), newTestCustomer(t, 1, "Wanjiku Kamau", "gold", 40))

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unique violation maps to already exists", func(t *testing.T) {
		db, mock, mockDB := newMockGorm(t)
		defer mockDB.Close()
		repo := NewGormCustomerRepository(db)

		mock.ExpectExec(`INSERT INTO "customers"`).
			WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"})

		err := repo.Create(context.Background(), newTestCustomer(t, 1, "Wanjiku Kamau", "gold", 40))

		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormCustomerRepository_Count(t *testing.T) {
	db, mock, mockDB := newMockGorm(t)
	defer mockDB.Close()
	repo := NewGormCustomerRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "customers" WHERE membership = \$1`).
		WithArgs("gold").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	filter := shared.DefaultFilter()
	filter.Filters["membership"] = "gold"
	count, err := repo.Count(context.Background(), filter)

	require.NoError(t, err)
	assert.Equal(t, int64(4), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
