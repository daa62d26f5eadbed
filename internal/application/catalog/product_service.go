package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/mveges/grocery/internal/application/forminput"
	"github.com/mveges/grocery/internal/domain/catalog"
	"github.com/mveges/grocery/internal/domain/shared"
	"github.com/mveges/grocery/internal/domain/shared/valueobject"
	"github.com/mveges/grocery/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// ProductService handles product-related business operations
type ProductService struct {
	productRepo    catalog.ProductRepository
	ids            shared.IDGenerator
	currency       valueobject.Currency
	now            func() time.Time
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewProductService creates a new ProductService.
// Prices are displayed in the given store currency.
func NewProductService(productRepo catalog.ProductRepository, ids shared.IDGenerator, currency valueobject.Currency) *ProductService {
	if currency == "" {
		currency = valueobject.DefaultCurrency
	}
	return &ProductService{
		productRepo: productRepo,
		ids:         ids,
		currency:    currency,
		now:         time.Now,
		logger:      zap.NewNop(),
	}
}

// SetEventPublisher sets the publisher that receives ProductAdded events
func (s *ProductService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetLogger sets the service logger
func (s *ProductService) SetLogger(logger *zap.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// SetClock overrides the time source used for the date added
func (s *ProductService) SetClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// Add validates the raw product form and appends a new product.
// Nothing is stored when validation fails.
func (s *ProductService) Add(ctx context.Context, req AddProductRequest) (*ProductResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "product", "add")
	defer span.End()

	input := catalog.ProductInput{
		Name:     req.Name,
		Price:    forminput.ParseDecimal(req.Price),
		Quantity: forminput.ParseInt(req.Quantity),
		Category: req.Category,
	}

	// IDs are only drawn for input that passed validation
	if err := catalog.ValidateProduct(input); err != nil {
		s.logger.Warn("product rejected",
			zap.String("name", req.Name),
			zap.String("price", req.Price),
			zap.String("quantity", req.Quantity),
			zap.Error(err),
		)
		telemetry.AddEvent(span, "validation_failed", telemetry.SpanAttrErrorCode, shared.ErrorCode(err))
		return nil, err
	}

	product, err := catalog.NewProduct(s.ids.NextID(), input, s.now())
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.publishEvents(ctx, product)

	telemetry.SetAttributes(span,
		telemetry.SpanAttrProductID, product.ID,
		telemetry.SpanAttrCategory, product.Category,
	)
	s.logger.Info("product added",
		zap.String("product_id", product.ID),
		zap.String("category", product.Category),
		zap.Int("quantity", product.Quantity),
	)

	response := ToProductResponse(product, s.currency)
	return &response, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, id string) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, catalog.ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}

	response := ToProductResponse(product, s.currency)
	return &response, nil
}

// List retrieves products with filtering and pagination
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) ([]ProductResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	domainFilter.Search = filter.Search
	if filter.Category != "" {
		domainFilter.Filters["category"] = filter.Category
	}

	products, err := s.productRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.productRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToProductResponses(products, s.currency), total, nil
}

// Count returns the number of products in the inventory
func (s *ProductService) Count(ctx context.Context) (int64, error) {
	return s.productRepo.Count(ctx, shared.DefaultFilter())
}

func (s *ProductService) publishEvents(ctx context.Context, product *catalog.Product) {
	if s.eventPublisher == nil {
		product.ClearDomainEvents()
		return
	}
	for _, event := range product.GetDomainEvents() {
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.logger.Error("failed to publish product event",
				zap.String("event_type", event.EventType()),
				zap.String("product_id", product.ID),
				zap.Error(err),
			)
		}
	}
	product.ClearDomainEvents()
}
