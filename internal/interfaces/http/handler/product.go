package handler

import (
	"github.com/gin-gonic/gin"
	catalogapp "github.com/mveges/grocery/internal/application/catalog"
	"github.com/mveges/grocery/internal/interfaces/http/dto"
	"github.com/mveges/grocery/internal/interfaces/http/middleware"
)

// ProductHandler handles product-related API endpoints
type ProductHandler struct {
	BaseHandler
	productService *catalogapp.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *catalogapp.ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
	}
}

// AddProductRequest is the product form. Price and quantity may be JSON numbers or strings.
type AddProductRequest struct {
	Name     dto.FlexString `json:"name" form:"name"`
	Price    dto.FlexString `json:"price" form:"price"`
	Quantity dto.FlexString `json:"quantity" form:"quantity"`
	Category dto.FlexString `json:"category" form:"category"`
}

func (r AddProductRequest) toApp() catalogapp.AddProductRequest {
	return catalogapp.AddProductRequest{
		Name:     r.Name.String(),
		Price:    r.Price.String(),
		Quantity: r.Quantity.String(),
		Category: r.Category.String(),
	}
}

// Add handles POST /products
func (h *ProductHandler) Add(c *gin.Context) {
	var req AddProductRequest
	if err := c.ShouldBind(&req); err != nil {
		h.InvalidBody(c, err)
		return
	}

	resp, err := h.productService.Add(c.Request.Context(), req.toApp())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// List handles GET /products
func (h *ProductHandler) List(c *gin.Context) {
	var filter catalogapp.ProductListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	products, total, err := h.productService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, products, total, filter.Page, filter.PageSize)
}

// GetByID handles GET /products/:id
func (h *ProductHandler) GetByID(c *gin.Context) {
	product, err := h.productService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}
