package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"darakbang/models"

	"github.com/stretchr/testify/assert"
)

func strptr(s string) *string { return &s }

func TestCollectTokensDedupes(t *testing.T) {
	users := []models.User{
		{PushToken: strptr("A")},
		{PushToken: strptr("B")},
		{PushToken: nil},
		{PushToken: strptr("A")},
		{PushToken: strptr("")},
		{PushToken: strptr("C")},
	}

	tokens := CollectTokens(users)

	assert.Equal(t, []string{"A", "B", "C"}, tokens)
}

func TestBuildMessages(t *testing.T) {
	data := map[string]string{"type": "notice", "noticeId": "abc"}
	messages := BuildMessages([]string{"tok1", "tok2"}, "title", "body", data)

	assert.Len(t, messages, 2)
	assert.Equal(t, "tok1", messages[0].To)
	assert.Equal(t, "default", messages[0].Sound)
	assert.Equal(t, "title", messages[0].Title)
	assert.Equal(t, "body", messages[0].Body)
	assert.Equal(t, data, messages[1].Data)
}

func TestDispatchBatches(t *testing.T) {
	var batchSizes []int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Messages []PushMessage `json:"messages"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		batchSizes = append(batchSizes, len(req.Messages))
		json.NewEncoder(w).Encode(ProxyResponse{Success: true, SuccessCount: len(req.Messages)})
	}))
	defer server.Close()

	tokens := make([]string, 250)
	for i := range tokens {
		tokens[i] = "tok"
	}
	messages := BuildMessages(tokens, "t", "b", nil)

	svc := NewPushService(server.URL)
	result := svc.Dispatch(context.Background(), messages)

	assert.Equal(t, []int{100, 100, 50}, batchSizes)
	assert.Equal(t, 250, result.Tokens)
	assert.Equal(t, 3, result.Batches)
	assert.Equal(t, 250, result.SuccessCount)
	assert.Equal(t, 0, result.FailureCount)
}

func TestDispatchContinuesPastFailedBatch(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		var req struct {
			Messages []PushMessage `json:"messages"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		if calls == 2 {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(ProxyResponse{Success: false, Error: "gateway down"})
			return
		}
		json.NewEncoder(w).Encode(ProxyResponse{Success: true, SuccessCount: len(req.Messages)})
	}))
	defer server.Close()

	tokens := make([]string, 250)
	for i := range tokens {
		tokens[i] = "tok"
	}
	messages := BuildMessages(tokens, "t", "b", nil)

	svc := NewPushService(server.URL)
	result := svc.Dispatch(context.Background(), messages)

	// batch two fails wholesale, batches one and three still deliver
	assert.Equal(t, 3, calls)
	assert.Equal(t, 150, result.SuccessCount)
	assert.Equal(t, 100, result.FailureCount)
}

func TestDispatchEmpty(t *testing.T) {
	svc := NewPushService("http://localhost:0")
	result := svc.Dispatch(context.Background(), nil)

	assert.Equal(t, 0, result.Tokens)
	assert.Equal(t, 0, result.Batches)
}

func TestDispatchResultSummary(t *testing.T) {
	r := DispatchResult{Tokens: 250, Batches: 3, SuccessCount: 150, FailureCount: 100}
	assert.Equal(t, "Delivered to 150 devices (100 failed) across 3 batches", r.Summary())
}
