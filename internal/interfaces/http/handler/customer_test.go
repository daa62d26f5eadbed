package handler_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	partnerapp "github.com/mveges/grocery/internal/application/partner"
	"github.com/mveges/grocery/internal/domain/partner"
	"github.com/mveges/grocery/internal/infrastructure/idgen"
	"github.com/mveges/grocery/internal/infrastructure/persistence"
	"github.com/mveges/grocery/internal/interfaces/http/dto"
	"github.com/mveges/grocery/internal/interfaces/http/handler"
	"github.com/mveges/grocery/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

func newCustomerEngine(t *testing.T, repo partner.CustomerRepository) *gin.Engine {
	t.Helper()

	service := partnerapp.NewCustomerService(repo, idgen.NewSequence("CUS", 4, 0), partner.DefaultMembershipDiscounts())
	service.SetClock(func() time.Time { return testNow })
	h := handler.NewCustomerHandler(service)

	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.POST("/customers", h.Register)
	engine.GET("/customers", h.List)
	engine.GET("/customers/:id", h.GetByID)
	return engine
}

func TestCustomerHandler_Register_JSON(t *testing.T) {
	engine := newCustomerEngine(t, persistence.NewMemoryCustomerRepository())

	w, resp := perform(t, engine, http.MethodPost, "/customers", "application/json",
		`{"name":"  Wanjiru Kamau ","email":"wanjiru@example.com","age":34,"membership":"premium"}`)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.True(t, resp.Success)

	created := decodeData[partnerapp.CustomerRegistrationResponse](t, resp)
	assert.Equal(t, "CUS-0001", created.ID)
	assert.Equal(t, "Wanjiru Kamau", created.Name)
	assert.Equal(t, 34, created.Age)
	assert.Equal(t, "premium", created.Membership)
	assert.Equal(t, "PREMIUM", created.MembershipLabel)
	assert.Equal(t, int64(10), created.DiscountPercent)
	assert.Equal(t, "Great to serve another health-conscious adult!", created.WelcomeMessage)
	assert.True(t, testNow.Equal(created.RegisteredAt))
}

func TestCustomerHandler_Register_Form(t *testing.T) {
	engine := newCustomerEngine(t, persistence.NewMemoryCustomerRepository())

	w, resp := perform(t, engine, http.MethodPost, "/customers", "application/x-www-form-urlencoded",
		"name=Otieno&email=otieno%40example.com&age=16+years&membership=gold")

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decodeData[partnerapp.CustomerRegistrationResponse](t, resp)
	assert.Equal(t, 16, created.Age)
	assert.Equal(t, "Youth", created.AgeBracket)
	assert.Equal(t, int64(15), created.DiscountPercent)
}

func TestCustomerHandler_Register_ExponentAge(t *testing.T) {
	engine := newCustomerEngine(t, persistence.NewMemoryCustomerRepository())

	w, resp := perform(t, engine, http.MethodPost, "/customers", "application/json",
		`{"name":"Baraka","email":"baraka@example.com","age":1e2,"membership":"basic"}`)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decodeData[partnerapp.CustomerRegistrationResponse](t, resp)
	assert.Equal(t, 100, created.Age)
	assert.Equal(t, "Senior", created.AgeBracket)
}

func TestCustomerHandler_Register_ValidationErrors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantReason string
		wantMsg    string
	}{
		{
			name:       "short name",
			body:       `{"name":"A","email":"a@example.com","age":"30","membership":"basic"}`,
			wantReason: "INVALID_NAME",
			wantMsg:    "Please enter a valid name (at least 2 characters)",
		},
		{
			name:       "bad email",
			body:       `{"name":"Amina","email":"amina.example.com","age":"30","membership":"basic"}`,
			wantReason: "INVALID_EMAIL",
			wantMsg:    "Please enter a valid email address",
		},
		{
			name:       "age out of range",
			body:       `{"name":"Amina","email":"amina@example.com","age":"121","membership":"basic"}`,
			wantReason: "INVALID_AGE",
			wantMsg:    "Please enter a valid age (1-120)",
		},
		{
			name:       "missing membership",
			body:       `{"name":"Amina","email":"amina@example.com","age":"30"}`,
			wantReason: "INVALID_MEMBERSHIP",
			wantMsg:    "Please select a membership type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := persistence.NewMemoryCustomerRepository()
			engine := newCustomerEngine(t, repo)

			w, resp := perform(t, engine, http.MethodPost, "/customers", "application/json", tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			require.NotNil(t, resp.Error)
			assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
			assert.Equal(t, tt.wantReason, resp.Error.Reason)
			assert.Equal(t, tt.wantMsg, resp.Error.Message)

			_, list := perform(t, engine, http.MethodGet, "/customers", "", "")
			assert.Equal(t, int64(0), list.Meta.Total)
		})
	}
}

func TestCustomerHandler_Register_MalformedBody(t *testing.T) {
	engine := newCustomerEngine(t, persistence.NewMemoryCustomerRepository())

	w, resp := perform(t, engine, http.MethodPost, "/customers", "application/json", `{"name":`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrCodeInvalidJSON, resp.Error.Code)
}

func TestCustomerHandler_Register_RepositoryFailure(t *testing.T) {
	engine := newCustomerEngine(t, failingCustomerRepo{err: errors.New("disk full")})

	w, resp := perform(t, engine, http.MethodPost, "/customers", "application/json",
		`{"name":"Amina","email":"amina@example.com","age":"30","membership":"basic"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, dto.ErrCodeInternal, resp.Error.Code)
	assert.NotContains(t, resp.Error.Message, "disk full")
}

func TestCustomerHandler_ListAndGet(t *testing.T) {
	engine := newCustomerEngine(t, persistence.NewMemoryCustomerRepository())

	for _, body := range []string{
		`{"name":"Amina","email":"amina@example.com","age":"30","membership":"basic"}`,
		`{"name":"Baraka","email":"baraka@example.com","age":"65","membership":"gold"}`,
		`{"name":"Chebet","email":"chebet@example.com","age":"22","membership":"gold"}`,
	} {
		w, _ := perform(t, engine, http.MethodPost, "/customers", "application/json", body)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	t.Run("all in registration order", func(t *testing.T) {
		w, resp := perform(t, engine, http.MethodGet, "/customers", "", "")

		assert.Equal(t, http.StatusOK, w.Code)
		customers := decodeData[[]partnerapp.CustomerResponse](t, resp)
		require.Len(t, customers, 3)
		assert.Equal(t, "Amina", customers[0].Name)
		assert.Equal(t, "Chebet", customers[2].Name)
		assert.Equal(t, int64(3), resp.Meta.Total)
		assert.Equal(t, 1, resp.Meta.Page)
		assert.Equal(t, 20, resp.Meta.PageSize)
	})

	t.Run("filter by membership", func(t *testing.T) {
		_, resp := perform(t, engine, http.MethodGet, "/customers?membership=gold", "", "")

		customers := decodeData[[]partnerapp.CustomerResponse](t, resp)
		require.Len(t, customers, 2)
		assert.Equal(t, int64(2), resp.Meta.Total)
	})

	t.Run("invalid filter", func(t *testing.T) {
		w, resp := perform(t, engine, http.MethodGet, "/customers?membership=platinum", "", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeBadRequest, resp.Error.Code)
	})

	t.Run("get by id", func(t *testing.T) {
		w, resp := perform(t, engine, http.MethodGet, "/customers/CUS-0002", "", "")

		assert.Equal(t, http.StatusOK, w.Code)
		customer := decodeData[partnerapp.CustomerResponse](t, resp)
		assert.Equal(t, "Baraka", customer.Name)
		assert.Equal(t, "Senior", customer.AgeBracket)
	})

	t.Run("unknown id", func(t *testing.T) {
		w, resp := perform(t, engine, http.MethodGet, "/customers/CUS-9999", "", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, dto.ErrCodeNotFound, resp.Error.Code)
		assert.Equal(t, "Customer not found", resp.Error.Message)
	})
}
