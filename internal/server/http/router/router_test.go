package router

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/khangtran/keygate/internal/config"
	"github.com/khangtran/keygate/internal/server/http/dto"
	testhelpers "github.com/khangtran/keygate/internal/test"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestSetupRegistersPublicRoutes(t *testing.T) {
	engine := Setup(&testhelpers.ShopFacadeStub{}, &config.Config{}, testLogger())

	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200 from health, got %d", recorder.Code)
	}

	body, _ := json.Marshal(dto.CreateOrderRequest{PackageID: "7day"})
	req := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	recorder = httptest.NewRecorder()
	engine.ServeHTTP(recorder, req)
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200 from create order, got %d", recorder.Code)
	}

	body, _ = json.Marshal(dto.WebhookRequest{TransferType: "in", Content: "DH1", TransferAmount: 1})
	req = httptest.NewRequest(http.MethodPost, "/api/webhook/sepay", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	recorder = httptest.NewRecorder()
	engine.ServeHTTP(recorder, req)
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200 from webhook, got %d", recorder.Code)
	}
}

func TestSetupOmitsAdminRoutesWithoutKeyHash(t *testing.T) {
	engine := Setup(&testhelpers.ShopFacadeStub{}, &config.Config{}, testLogger())

	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/admin/orders", nil))
	if recorder.Code != http.StatusNotFound {
		t.Fatalf("expected 404 when admin is disabled, got %d", recorder.Code)
	}
}

func TestSetupGuardsAdminRoutes(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("operator-key"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	engine := Setup(&testhelpers.ShopFacadeStub{}, &config.Config{AdminKeyHash: string(hash)}, testLogger())

	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/admin/orders", nil))
	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without key, got %d", recorder.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/admin/orders", nil)
	req.Header.Set("X-Admin-Key", "operator-key")
	recorder = httptest.NewRecorder()
	engine.ServeHTTP(recorder, req)
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200 with valid key, got %d", recorder.Code)
	}
}

func TestHealthPayload(t *testing.T) {
	engine := Setup(&testhelpers.ShopFacadeStub{}, &config.Config{}, testLogger())

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	engine.ServeHTTP(recorder, req)

	var payload map[string]string
	if err := json.Unmarshal(recorder.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if payload["status"] != "ok" || payload["timestamp"] == "" {
		t.Fatalf("unexpected health payload %v", payload)
	}
}
