package partner

import (
	"context"
	"errors"
	"time"

	"github.com/mveges/grocery/internal/application/forminput"
	"github.com/mveges/grocery/internal/domain/partner"
	"github.com/mveges/grocery/internal/domain/shared"
	"github.com/mveges/grocery/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// CustomerService handles customer-related business operations
type CustomerService struct {
	customerRepo   partner.CustomerRepository
	ids            shared.IDGenerator
	discounts      partner.MembershipDiscounts
	now            func() time.Time
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo partner.CustomerRepository, ids shared.IDGenerator, discounts partner.MembershipDiscounts) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		ids:          ids,
		discounts:    discounts,
		now:          time.Now,
		logger:       zap.NewNop(),
	}
}

// SetEventPublisher sets the publisher that receives CustomerRegistered events
func (s *CustomerService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetLogger sets the service logger
func (s *CustomerService) SetLogger(logger *zap.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// SetClock overrides the time source used for registration dates
func (s *CustomerService) SetClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// Discounts returns the membership discount table used by the service
func (s *CustomerService) Discounts() partner.MembershipDiscounts {
	return s.discounts
}

// Register validates the raw registration form and stores a new customer.
// Nothing is stored when validation fails.
func (s *CustomerService) Register(ctx context.Context, req RegisterCustomerRequest) (*CustomerRegistrationResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "customer", "register")
	defer span.End()

	input := partner.RegistrationInput{
		Name:       req.Name,
		Email:      req.Email,
		Age:        forminput.ParseInt(req.Age),
		Membership: req.Membership,
	}

	if err := partner.ValidateRegistration(input, s.discounts); err != nil {
		s.logger.Warn("customer registration rejected",
			zap.String("email", req.Email),
			zap.Error(err),
		)
		telemetry.AddEvent(span, "validation_failed", telemetry.SpanAttrErrorCode, shared.ErrorCode(err))
		return nil, err
	}

	customer, err := partner.NewCustomer(s.ids.NextID(), input, s.discounts, s.now())
	if err != nil {
		return nil, err
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.publishEvents(ctx, customer)

	telemetry.SetAttributes(span,
		telemetry.SpanAttrCustomerID, customer.ID,
		telemetry.SpanAttrMembership, customer.Membership.String(),
	)
	s.logger.Info("customer registered",
		zap.String("customer_id", customer.ID),
		zap.String("membership", customer.Membership.String()),
		zap.String("age_bracket", string(customer.AgeBracket())),
	)

	response := ToCustomerRegistrationResponse(customer, s.discounts)
	return &response, nil
}

// GetByID retrieves a customer by ID
func (s *CustomerService) GetByID(ctx context.Context, id string) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, partner.ErrCustomerNotFound
	}
	if err != nil {
		return nil, err
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// List retrieves customers with filtering and pagination
func (s *CustomerService) List(ctx context.Context, filter CustomerListFilter) ([]CustomerResponse, int64, error) {
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
	if filter.Membership != "" {
		domainFilter.Filters["membership"] = filter.Membership
	}

	customers, err := s.customerRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.customerRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToCustomerResponses(customers), total, nil
}

// Count returns the number of registered customers
func (s *CustomerService) Count(ctx context.Context) (int64, error) {
	return s.customerRepo.Count(ctx, shared.DefaultFilter())
}

func (s *CustomerService) publishEvents(ctx context.Context, customer *partner.Customer) {
	if s.eventPublisher == nil {
		customer.ClearDomainEvents()
		return
	}
	for _, event := range customer.GetDomainEvents() {
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.logger.Error("failed to publish customer event",
				zap.String("event_type", event.EventType()),
				zap.String("customer_id", customer.ID),
				zap.Error(err),
			)
		}
	}
	customer.ClearDomainEvents()
}
