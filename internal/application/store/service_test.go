package store

import (
	"context"
	"errors"
	"testing"

	"github.com/mveges/grocery/internal/domain/partner"
	"github.com/mveges/grocery/internal/domain/shared"
	"github.com/mveges/grocery/internal/domain/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCounter struct {
	mock.Mock
}

func (m *MockCounter) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func TestService_Info(t *testing.T) {
	ctx := context.Background()
	customers := new(MockCounter)
	products := new(MockCounter)
	customers.On("Count", ctx, mock.Anything).Return(int64(3), nil)
	products.On("Count", ctx, mock.Anything).Return(int64(7), nil)

	svc := NewService(store.DefaultSettings(), partner.DefaultMembershipDiscounts(), customers, products)

	info, err := svc.Info(ctx)

	require.NoError(t, err)
	assert.Equal(t, "M-Veges Grocery Store", info.Settings.Name)
	assert.Equal(t, "Nairobi, Kenya", info.Settings.Location)
	assert.Equal(t, "KES", info.Settings.Currency)
	assert.True(t, info.Settings.IsOpen)
	assert.Equal(t, "Open", info.Settings.Status)
	assert.Equal(t, int64(3), info.Stats.TotalCustomers)
	assert.Equal(t, int64(7), info.Stats.TotalProducts)

	require.Len(t, info.Discounts, 3)
	assert.Equal(t, DiscountResponse{Membership: "basic", Label: "BASIC", Rate: "0.05", Percent: 5}, info.Discounts[0])
	assert.Equal(t, int64(10), info.Discounts[1].Percent)
	assert.Equal(t, int64(15), info.Discounts[2].Percent)
}

func TestService_StatsError(t *testing.T) {
	ctx := context.Background()
	customers := new(MockCounter)
	products := new(MockCounter)
	customers.On("Count", ctx, mock.Anything).Return(int64(0), errors.New("db down"))

	svc := NewService(store.DefaultSettings(), partner.DefaultMembershipDiscounts(), customers, products)

	_, err := svc.Info(ctx)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "count customers")
	products.AssertNotCalled(t, "Count", mock.Anything, mock.Anything)
}
