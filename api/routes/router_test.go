package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/angelmondragon/mixtrack-backend/internal/mixes"
	"github.com/angelmondragon/mixtrack-backend/internal/receipts"
	"github.com/angelmondragon/mixtrack-backend/pkg/config"
	"github.com/angelmondragon/mixtrack-backend/pkg/db/models"
	"github.com/angelmondragon/mixtrack-backend/pkg/enums"
	"github.com/angelmondragon/mixtrack-backend/pkg/logger"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubReceiptService struct {
	receipts.Service
	created int
}

func (s *stubReceiptService) Create(_ context.Context, in receipts.CreateReceiptInput) (*models.Receipt, error) {
	s.created++
	return &models.Receipt{ID: 1, Folio: in.Folio, Status: enums.ReceiptStatusPending}, nil
}

func (s *stubReceiptService) Get(_ context.Context, id uint) (*receipts.ReceiptDetail, error) {
	return &receipts.ReceiptDetail{Receipt: models.Receipt{ID: id}}, nil
}

func (s *stubReceiptService) RecomputeStatus(context.Context, *gorm.DB, uint) (enums.ReceiptStatus, error) {
	return enums.ReceiptStatusPending, nil
}

type stubMixService struct {
	mixes.Service
	marked []uint
}

func (s *stubMixService) MarkAsDelivered(_ context.Context, id uint) (*models.Mix, error) {
	s.marked = append(s.marked, id)
	date := "2024-03-15"
	return &models.Mix{ID: id, Status: enums.MixStatusDelivered, DeliveredDate: &date}, nil
}

func (s *stubMixService) ListByReceipt(context.Context, uint) ([]models.Mix, error) {
	return []models.Mix{}, nil
}

func newTestRouter(t *testing.T) (http.Handler, *stubReceiptService, *stubMixService) {
	t.Helper()
	cfg := &config.Config{
		App:  config.AppConfig{Env: "test"},
		CORS: config.CORSConfig{Origins: []string{"http://localhost:3000"}},
	}
	logg := logger.New(logger.Options{ServiceName: "router-test", Level: logger.ParseLevel("error"), Output: io.Discard})

	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewCounter(prometheus.CounterOpts{Name: "mixtrack_router_test_total", Help: "test"}))

	rs := &stubReceiptService{}
	ms := &stubMixService{}
	router := NewRouter(cfg, logg, Deps{
		DB:       stubPinger{},
		Gatherer: reg,
		Receipts: rs,
		Mixes:    ms,
	})
	return router, rs, ms
}

func serve(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestHealthRoutes(t *testing.T) {
	router, _, _ := newTestRouter(t)

	resp := serve(router, http.MethodGet, "/health/live", "")
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "test", resp.Header().Get("X-Mixtrack-Env"))
	assert.NotEmpty(t, resp.Header().Get("X-Request-Id"))

	resp = serve(router, http.MethodGet, "/health/ready", "")
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"db":"ok"`)
	assert.NotContains(t, resp.Body.String(), "redis")
}

func TestMetricsRoute(t *testing.T) {
	router, _, _ := newTestRouter(t)

	resp := serve(router, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "mixtrack_router_test_total")
}

func TestReceiptRoutes(t *testing.T) {
	router, rs, _ := newTestRouter(t)

	body := `{"date":"2024-03-01","folio":"F-1","kind":"raspberry","sap":"1","mixes":[{"quantity":"1","presentation":"box"}]}`
	resp := serve(router, http.MethodPost, "/api/v1/receipts", body)
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	assert.Equal(t, 1, rs.created)

	resp = serve(router, http.MethodGet, "/api/v1/receipts/12", "")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"id":12`)

	resp = serve(router, http.MethodGet, "/api/v1/receipts/12/mixes", "")
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestMarkAsDeliveredRoute(t *testing.T) {
	router, _, ms := newTestRouter(t)

	resp := serve(router, http.MethodPut, "/api/v1/mixes/5/markAsDelivered", "")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, []uint{5}, ms.marked)

	resp = serve(router, http.MethodPost, "/api/v1/mixes/5/markAsDelivered", "")
	assert.Equal(t, http.StatusMethodNotAllowed, resp.Code)
}

func TestUnknownRoute(t *testing.T) {
	router, _, _ := newTestRouter(t)

	resp := serve(router, http.MethodGet, "/api/v1/unknown", "")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestCORSPreflight(t *testing.T) {
	router, _, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/receipts", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, "http://localhost:3000", resp.Header().Get("Access-Control-Allow-Origin"))
}
