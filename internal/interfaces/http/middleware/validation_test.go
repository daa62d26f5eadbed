package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mveges/grocery/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type listQuery struct {
	Membership string `form:"membership" binding:"omitempty,oneof=basic premium gold"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

func TestFormatValidationErrors(t *testing.T) {
	SetupValidator()

	r := gin.New()
	var resp dto.Response
	r.GET("/customers", func(c *gin.Context) {
		var q listQuery
		if err := c.ShouldBindQuery(&q); err != nil {
			resp = FormatValidationErrors(err, "req-1")
			HandleValidationError(c, err)
			return
		}
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/customers?membership=platinum&page_size=500", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeBadRequest, resp.Error.Code)
	assert.Equal(t, "req-1", resp.Error.RequestID)
	assert.ElementsMatch(t, []dto.ValidationDetail{
		{Field: "membership", Message: "Must be one of: basic premium gold"},
		{Field: "page_size", Message: "Must be at most 100"},
	}, resp.Error.Details)
}

func TestFormatValidationErrors_PlainError(t *testing.T) {
	resp := FormatValidationErrors(errors.New(`strconv.ParseInt: parsing "abc": invalid syntax`), "")

	require.Len(t, resp.Error.Details, 1)
	assert.Empty(t, resp.Error.Details[0].Field)
	assert.Contains(t, resp.Error.Details[0].Message, "invalid syntax")
}
