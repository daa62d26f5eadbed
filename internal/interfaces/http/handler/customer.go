package handler

import (
	"github.com/gin-gonic/gin"
	partnerapp "github.com/mveges/grocery/internal/application/partner"
	"github.com/mveges/grocery/internal/interfaces/http/dto"
	"github.com/mveges/grocery/internal/interfaces/http/middleware"
)

// CustomerHandler handles customer-related API endpoints
type CustomerHandler struct {
	BaseHandler
	customerService *partnerapp.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(customerService *partnerapp.CustomerService) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
	}
}

// RegisterCustomerRequest is the registration form, sent as JSON or as
// form-urlencoded fields. Age may be a JSON number or a string.
type RegisterCustomerRequest struct {
	Name       dto.FlexString `json:"name" form:"name"`
	Email      dto.FlexString `json:"email" form:"email"`
	Age        dto.FlexString `json:"age" form:"age"`
	Membership dto.FlexString `json:"membership" form:"membership"`
}

func (r RegisterCustomerRequest) toApp() partnerapp.RegisterCustomerRequest {
	return partnerapp.RegisterCustomerRequest{
		Name:       r.Name.String(),
		Email:      r.Email.String(),
		Age:        r.Age.String(),
		Membership: r.Membership.String(),
	}
}

// Register handles POST /customers
func (h *CustomerHandler) Register(c *gin.Context) {
	var req RegisterCustomerRequest
	if err := c.ShouldBind(&req); err != nil {
		h.InvalidBody(c, err)
		return
	}

	resp, err := h.customerService.Register(c.Request.Context(), req.toApp())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// List handles GET /customers
func (h *CustomerHandler) List(c *gin.Context) {
	var filter partnerapp.CustomerListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	customers, total, err := h.customerService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, customers, total, filter.Page, filter.PageSize)
}

// GetByID handles GET /customers/:id
func (h *CustomerHandler) GetByID(c *gin.Context) {
	customer, err := h.customerService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customer)
}
