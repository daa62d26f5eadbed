package telemetry

import (
	"context"
	"fmt"

	"github.com/mveges/grocery/internal/domain/catalog"
	"github.com/mveges/grocery/internal/domain/partner"
	"github.com/mveges/grocery/internal/domain/shared"
	"go.opentelemetry.io/otel/metric"
)

// StoreMetrics records store activity from domain events.
// It is subscribed to the event bus so services never call it directly.
type StoreMetrics struct {
	customersRegistered *Counter
	productsAdded       *Counter
	stockUnitsAdded     *Counter
	productPrice        *Histogram
}

// NewStoreMetrics creates the store's counters on the given meter
func NewStoreMetrics(meter metric.Meter) (*StoreMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}

	var (
		m   StoreMetrics
		err error
	)
	if m.customersRegistered, err = NewCounter(meter,
		"grocery_customers_registered_total",
		"Total number of customers registered",
		"{customers}",
	); err != nil {
		return nil, err
	}
	if m.productsAdded, err = NewCounter(meter,
		"grocery_products_added_total",
		"Total number of products added to the inventory",
		"{products}",
	); err != nil {
		return nil, err
	}
	if m.stockUnitsAdded, err = NewCounter(meter,
		"grocery_stock_units_added_total",
		"Total stock units brought in with new products",
		"{units}",
	); err != nil {
		return nil, err
	}
	if m.productPrice, err = NewHistogram(meter, HistogramOpts{
		Name:        "grocery_product_price",
		Description: "Unit price of added products",
		Unit:        "{currency}",
		Boundaries:  PriceBuckets,
	}); err != nil {
		return nil, err
	}
	return &m, nil
}

// EventTypes implements shared.EventHandler
func (m *StoreMetrics) EventTypes() []string {
	return []string{partner.EventTypeCustomerRegistered, catalog.EventTypeProductAdded}
}

// Handle implements shared.EventHandler
func (m *StoreMetrics) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *partner.CustomerRegisteredEvent:
		m.customersRegistered.Inc(ctx, AttrMembership.String(e.Membership.String()))
	case *catalog.ProductAddedEvent:
		category := AttrCategory.String(e.Category)
		m.productsAdded.Inc(ctx, category)
		m.stockUnitsAdded.Add(ctx, int64(e.Quantity), category)
		m.productPrice.Record(ctx, e.Price.InexactFloat64(), category)
	default:
		return fmt.Errorf("store metrics: unexpected event type %s", event.EventType())
	}
	return nil
}

var _ shared.EventHandler = (*StoreMetrics)(nil)
