package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"darakbang/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Server.Port = 8080
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.Expiry = 60
	cfg.Push.GatewayURL = "http://localhost:0"
	return cfg
}

func TestPushProxyServesAnyOrigin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := setupRouter(testConfig())

	// preflight from an origin outside the console allowlist
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/send-push-all", nil)
	req.Header.Set("Origin", "https://ops.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	// the actual POST reaches the handler, not a CORS rejection
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/send-push-all", strings.NewReader(`{"messages":[]}`))
	req.Header.Set("Origin", "https://ops.example.com")
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestPushProxyRejectsOtherMethodsThroughRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := setupRouter(testConfig())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/send-push-all", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
