package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRequestLoggerEmitsRequestFields(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	engine := gin.New()
	engine.Use(RequestLogger(logger))
	engine.GET("/api/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log entry: %v", err)
	}
	if entry["method"] != http.MethodGet || entry["path"] != "/api/health" {
		t.Fatalf("unexpected log entry %v", entry)
	}
	if entry["status"] != float64(http.StatusOK) {
		t.Fatalf("unexpected status in log entry %v", entry)
	}
}

func adminEngine(t *testing.T, keyHash string) *gin.Engine {
	t.Helper()
	engine := gin.New()
	engine.GET("/admin", AdminAuth(keyHash), func(c *gin.Context) { c.Status(http.StatusOK) })
	return engine
}

func adminRequest(engine *gin.Engine, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	if key != "" {
		req.Header.Set(AdminKeyHeader, key)
	}
	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, req)
	return recorder
}

func TestAdminAuth(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("operator-key"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	engine := adminEngine(t, string(hash))

	if recorder := adminRequest(engine, ""); recorder.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without key, got %d", recorder.Code)
	}
	if recorder := adminRequest(engine, "wrong-key"); recorder.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for wrong key, got %d", recorder.Code)
	}
	if recorder := adminRequest(engine, "operator-key"); recorder.Code != http.StatusOK {
		t.Fatalf("expected 200 for valid key, got %d", recorder.Code)
	}
}

func TestRequestLoggerPassesThrough(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	engine := gin.New()
	engine.Use(RequestLogger(logger))
	engine.POST("/echo", func(c *gin.Context) {
		body, _ := io.ReadAll(c.Request.Body)
		c.String(http.StatusOK, string(body))
	})

	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/echo", bytes.NewBufferString("payload")))
	if recorder.Body.String() != "payload" {
		t.Fatalf("expected body passthrough, got %q", recorder.Body.String())
	}
}
