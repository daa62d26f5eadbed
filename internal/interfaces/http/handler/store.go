package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/mveges/grocery/internal/application/activity"
	storeapp "github.com/mveges/grocery/internal/application/store"
	"github.com/mveges/grocery/internal/interfaces/http/middleware"
)

// StoreHandler serves the store overview and the activity log
type StoreHandler struct {
	BaseHandler
	storeService *storeapp.Service
	activityLog  *activity.Log
}

// NewStoreHandler creates a new StoreHandler
func NewStoreHandler(storeService *storeapp.Service, activityLog *activity.Log) *StoreHandler {
	return &StoreHandler{
		storeService: storeService,
		activityLog:  activityLog,
	}
}

// ActivityQuery limits how many activity entries are returned
type ActivityQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=1000"`
}

// Info handles GET /store: settings, counters and membership discounts
func (h *StoreHandler) Info(c *gin.Context) {
	info, err := h.storeService.Info(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, info)
}

// Activity handles GET /activity, newest entries first
func (h *StoreHandler) Activity(c *gin.Context) {
	var q ActivityQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	h.Success(c, h.activityLog.Recent(q.Limit))
}
