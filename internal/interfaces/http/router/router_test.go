package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rentdesk/backend/docs"
	ledgerapp "github.com/rentdesk/backend/internal/application/ledger"
	"github.com/rentdesk/backend/internal/domain/ledger"
	"github.com/rentdesk/backend/internal/infrastructure/config"
	"github.com/rentdesk/backend/internal/infrastructure/persistence"
	"github.com/rentdesk/backend/internal/infrastructure/persistence/models"
	"github.com/rentdesk/backend/internal/infrastructure/strategy/allocation"
	"github.com/rentdesk/backend/internal/interfaces/http/dto"
	"github.com/rentdesk/backend/internal/interfaces/http/handler"
	"github.com/rentdesk/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestNewRouter(t *testing.T) {
	r := NewRouter(gin.New())
	assert.Equal(t, "v1", r.apiVersion)
	assert.Empty(t, r.registrars)

	r = NewRouter(gin.New(), WithAPIVersion("v2"))
	assert.Equal(t, "v2", r.apiVersion)
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	group := NewDomainGroup("test", "/test").
		GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") }).
		PUT("/item", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.Register(group)
	r.Setup()

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/test/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/api/v1/test/item", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestDomainGroup_MiddlewareAndSubgroups(t *testing.T) {
	engine := gin.New()
	group := NewDomainGroup("reports", "/reports").Use(func(c *gin.Context) {
		c.Header("X-Group", "reports")
		c.Next()
	})
	group.Group("collections", "/collections").GET("", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	NewRouter(engine).Register(group).Setup()

	assert.Equal(t, "reports", group.Name())
	assert.Equal(t, "/reports", group.Prefix())

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/reports/collections", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "reports", w.Header().Get("X-Group"))
}

func newTestEngine(t *testing.T, swagger config.SwaggerConfig) *gin.Engine {
	t.Helper()
	require.NoError(t, middleware.SetupValidator())

	db, err := persistence.NewDatabase(&config.DatabaseConfig{Driver: config.DriverSQLite, Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.DB.AutoMigrate(models.AllModels()...))

	repo := persistence.NewGormLedgerRepository(db.DB)
	uow := persistence.NewLedgerUnitOfWork(db)
	svc := ledgerapp.NewService(uow, repo, repo.Leases(),
		ledger.NewAllocationEngine(uow, allocation.NewFIFOFeeFirstStrategy()))

	engine, err := NewEngine(EngineConfig{Swagger: swagger}, LedgerHandlers{
		Leases:   handler.NewLeaseHandler(svc, nil),
		Payments: handler.NewPaymentHandler(svc, nil),
		Reports:  handler.NewReportHandler(svc, nil),
		System:   handler.NewSystemHandler("Rentdesk Ledger API", "test", db),
	})
	require.NoError(t, err)
	return engine
}

func TestNewEngine(t *testing.T) {
	engine := newTestEngine(t, config.SwaggerConfig{Enabled: false})

	t.Run("health", func(t *testing.T) {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotEmpty(t, w.Header().Get(middleware.HeaderRequestID))
		assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	})

	t.Run("system info under api prefix", func(t *testing.T) {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/system/info", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("swagger disabled", func(t *testing.T) {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("lease round trip", func(t *testing.T) {
		body, _ := json.Marshal(map[string]any{
			"tenant_id":   uuid.New(),
			"property_id": uuid.New(),
			"rent_amount": "950.00",
			"cadence":     "bi_weekly",
			"start_date":  "2024-01-05",
		})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/leases", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		id := resp.Data.(map[string]any)["id"].(string)

		w = httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/leases/"+id, nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("oversized body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/payments", strings.NewReader(strings.Repeat("x", int(defaultMaxBodySize)+1)))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	})

	t.Run("cors preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/v1/leases", nil)
		req.Header.Set("Origin", "https://app.example.com")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}

func TestLedgerRoutesAreDocumented(t *testing.T) {
	var doc struct {
		Paths map[string]map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(docs.SwaggerInfo.ReadDoc()), &doc))

	engine := newTestEngine(t, config.SwaggerConfig{Enabled: false})
	prefix := "/api/v1"
	var checked int
	for _, route := range engine.Routes() {
		if !strings.HasPrefix(route.Path, prefix+"/") {
			continue
		}
		segments := strings.Split(strings.TrimPrefix(route.Path, prefix), "/")
		for i, seg := range segments {
			if strings.HasPrefix(seg, ":") {
				segments[i] = "{" + seg[1:] + "}"
			}
		}
		path := strings.Join(segments, "/")
		checked++

		ops, ok := doc.Paths[path]
		if !assert.True(t, ok, "%s %s is not documented", route.Method, path) {
			continue
		}
		assert.Contains(t, ops, strings.ToLower(route.Method), "%s %s is not documented", route.Method, path)
	}
	assert.Positive(t, checked)
}
