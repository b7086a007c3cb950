package routes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/angelmondragon/sportomic-backend/internal/dashboard"
	"github.com/angelmondragon/sportomic-backend/internal/ingest"
	"github.com/angelmondragon/sportomic-backend/internal/records"
	"github.com/angelmondragon/sportomic-backend/pkg/config"
	"github.com/angelmondragon/sportomic-backend/pkg/db"
	"github.com/angelmondragon/sportomic-backend/pkg/db/dbtest"
	"github.com/angelmondragon/sportomic-backend/pkg/logger"
	"github.com/angelmondragon/sportomic-backend/pkg/metrics"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

const (
	venueHex   = "65f1c2a9e4b0a1b2c3d4e5f6"
	otherVenue = "65f1c2a9e4b0a1b2c3d4e5f7"
	memberHex  = "65f1c2a9e4b0a1b2c3d4e5a1"
	bookingHex = "65f1c2a9e4b0a1b2c3d4e5b1"
	sportHex   = "65f1c2a9e4b0a1b2c3d4e5c1"
)

var importBody = `{
	"venues": [{"_id": "` + venueHex + `", "name": "Arena", "location": "Pune"}],
	"members": [{"_id": "` + memberHex + `", "name": "Asha", "status": "active", "is_trial_user": true, "join_date": "2024-01-02"}],
	"bookings": [{"_id": "` + bookingHex + `", "member_id": "` + memberHex + `", "venue_id": "` + venueHex + `", "sport_id": "` + sportHex + `", "booking_date": "2024-03-05T10:00:00Z", "amount": 500, "status": "confirmed"}],
	"transactions": [{"booking_id": "` + bookingHex + `", "type": "payment", "amount": 500, "status": "success", "transaction_date": "2024-03-05T10:05:00Z"}]
}`

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test"},
		HTTP: config.HTTPConfig{
			AllowedOrigins: []string{"http://localhost:5173"},
			MaxImportBytes: 1 << 20,
		},
	}
}

func newTestRouter(t *testing.T, cfg *config.Config) (http.Handler, *prometheus.Registry) {
	t.Helper()
	conn := db.Static(dbtest.Open(t))
	logg := logger.Nop()
	reg := prometheus.NewRegistry()

	dashboardSvc, err := dashboard.NewService(dashboard.NewRepository(conn), dashboard.ServiceConfig{
		Logger:  logg,
		Metrics: metrics.NewDashboardMetrics(reg),
	})
	if err != nil {
		t.Fatalf("dashboard service: %v", err)
	}
	recordsSvc, err := records.NewService(records.NewRepository(conn))
	if err != nil {
		t.Fatalf("records service: %v", err)
	}
	engine := ingest.NewEngine(ingest.NewStore(conn), ingest.EngineConfig{
		Logger:  logg,
		Metrics: metrics.NewIngestMetrics(reg),
	})
	ingestSvc, err := ingest.NewService(engine, logg)
	if err != nil {
		t.Fatalf("ingest service: %v", err)
	}

	router := NewRouter(cfg, logg, stubPinger{}, nil, Services{
		Dashboard: dashboardSvc,
		Records:   recordsSvc,
		Ingest:    ingestSvc,
	}, Observability{HTTP: metrics.NewHTTPMetrics(reg), Gatherer: reg})
	return router, reg
}

func serve(router http.Handler, method, target string, body io.Reader) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(method, target, body))
	return rec
}

func TestRouterImportThenRead(t *testing.T) {
	router, _ := newTestRouter(t, testConfig())

	rec := serve(router, http.MethodPost, "/import", strings.NewReader(importBody))
	if rec.Code != http.StatusOK {
		t.Fatalf("import: expected 200 got %d (%s)", rec.Code, rec.Body.String())
	}
	var imported struct {
		OK     bool                      `json:"ok"`
		Result map[string]map[string]int `json:"result"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &imported); err != nil {
		t.Fatalf("decode import: %v", err)
	}
	if !imported.OK || imported.Result["venues"]["upserted"] != 1 || imported.Result["transactions"]["inserted"] != 1 {
		t.Fatalf("unexpected import result %s", rec.Body.String())
	}

	rec = serve(router, http.MethodGet, "/dashboard?venue_id="+venueHex+"&month=2024-03", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("dashboard: expected 200 got %d (%s)", rec.Code, rec.Body.String())
	}
	if rec.Header().Get("Cache-Control") != "no-store" {
		t.Fatalf("dashboard must not be cacheable")
	}
	var snap dashboard.Snapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatalf("decode dashboard: %v", err)
	}
	if snap.Revenue.Total != 500 {
		t.Fatalf("expected revenue 500 got %v", snap.Revenue.Total)
	}
	if snap.Members.Active != 1 || snap.Bookings.Count != 1 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}

	rec = serve(router, http.MethodGet, "/dashboard?venue_id="+otherVenue+"&month=2024-03", nil)
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatalf("decode dashboard: %v", err)
	}
	if snap.Revenue.Total != 0 {
		t.Fatalf("expected no revenue for another venue, got %v", snap.Revenue.Total)
	}

	rec = serve(router, http.MethodGet, "/bookings", nil)
	var bookings struct {
		Items []records.BookingItem `json:"items"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &bookings); err != nil {
		t.Fatalf("decode bookings: %v", err)
	}
	if len(bookings.Items) != 1 || bookings.Items[0].VenueName == nil || *bookings.Items[0].VenueName != "Arena" {
		t.Fatalf("unexpected bookings %s", rec.Body.String())
	}

	rec = serve(router, http.MethodGet, "/sports", nil)
	if strings.TrimSpace(rec.Body.String()) != `{"items":[{"sport_id":"`+sportHex+`","count":1}]}` {
		t.Fatalf("unexpected sports %s", rec.Body.String())
	}
}

func TestRouterNotFoundAndMethodNotAllowed(t *testing.T) {
	router, _ := newTestRouter(t, testConfig())

	rec := serve(router, http.MethodGet, "/nope", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"error":"Not Found"`) {
		t.Fatalf("unexpected 404 body %s", rec.Body.String())
	}

	for _, target := range []string{"/dashboard", "/bookings", "/venues"} {
		rec = serve(router, http.MethodDelete, target, nil)
		if rec.Code != http.StatusMethodNotAllowed {
			t.Fatalf("%s: expected 405 got %d", target, rec.Code)
		}
	}
	rec = serve(router, http.MethodGet, "/import", nil)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("GET /import: expected 405 got %d", rec.Code)
	}
}

func TestRouterImportBodyLimit(t *testing.T) {
	cfg := testConfig()
	cfg.HTTP.MaxImportBytes = 16
	router, _ := newTestRouter(t, cfg)

	rec := serve(router, http.MethodPost, "/import", strings.NewReader(importBody))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Request body too large") {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestRouterPreflight(t *testing.T) {
	router, _ := newTestRouter(t, testConfig())

	req := httptest.NewRequest(http.MethodOptions, "/import", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Header().Get("Access-Control-Allow-Origin") != "http://localhost:5173" {
		t.Fatalf("expected CORS allow origin, headers %v", rec.Header())
	}
}

func TestRouterHealthAndMetrics(t *testing.T) {
	router, _ := newTestRouter(t, testConfig())

	if rec := serve(router, http.MethodGet, "/health/live", nil); rec.Code != http.StatusOK {
		t.Fatalf("live: expected 200 got %d", rec.Code)
	}
	if rec := serve(router, http.MethodGet, "/health/ready", nil); rec.Code != http.StatusOK {
		t.Fatalf("ready: expected 200 got %d", rec.Code)
	}
	_ = serve(router, http.MethodGet, "/venues", nil)

	rec := serve(router, http.MethodGet, "/metrics", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics: expected 200 got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `http_requests{method="GET",route="/venues",status="200"} 1`) {
		t.Fatalf("expected venue request counter in %s", rec.Body.String())
	}
}
