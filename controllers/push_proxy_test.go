package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newProxyRouter(gatewayURL string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := SendPushAll(gatewayURL)
	router.Any("/api/send-push-all", handler)
	return router
}

func TestSendPushAllRejectsEmptyMessages(t *testing.T) {
	router := newProxyRouter("http://localhost:0")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/send-push-all", strings.NewReader(`{"messages":[]}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSendPushAllTalliesGatewayReceipts(t *testing.T) {
	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Write([]byte(`{"data":[{"status":"ok"},{"status":"error"}]}`))
	}))
	defer gateway.Close()

	router := newProxyRouter(gateway.URL)

	body := `{"messages":[{"to":"tok1"},{"to":"tok2"}]}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/send-push-all", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success      bool `json:"success"`
		SuccessCount int  `json:"successCount"`
		FailureCount int  `json:"failureCount"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 1, resp.SuccessCount)
	assert.Equal(t, 1, resp.FailureCount)
}

func TestSendPushAllEmptyGatewayReceipts(t *testing.T) {
	// valid gateway response carrying no receipts tallies as zero either way
	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer gateway.Close()

	router := newProxyRouter(gateway.URL)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/send-push-all", strings.NewReader(`{"messages":[{"to":"tok1"},{"to":"tok2"}]}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success      bool `json:"success"`
		SuccessCount int  `json:"successCount"`
		FailureCount int  `json:"failureCount"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 0, resp.SuccessCount)
	assert.Equal(t, 0, resp.FailureCount)
}

func TestSendPushAllAnswersPreflight(t *testing.T) {
	router := newProxyRouter("http://localhost:0")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/send-push-all", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "POST, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
}

func TestSendPushAllRejectsOtherMethods(t *testing.T) {
	router := newProxyRouter("http://localhost:0")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/send-push-all", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestSendPushAllReportsGatewayFailure(t *testing.T) {
	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer gateway.Close()

	router := newProxyRouter(gateway.URL)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/send-push-all", strings.NewReader(`{"messages":[{"to":"tok1"}]}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp map[string]string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Failed to send push notifications", resp["error"])
	assert.NotEmpty(t, resp["details"])
}
