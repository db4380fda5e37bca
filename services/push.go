package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"darakbang/config"
	"darakbang/models"
)

// PushBatchSize is the maximum number of envelopes per proxy call, matching
// the gateway's batch limit.
const PushBatchSize = 100

// PushMessage is one push envelope addressed to a single device token.
type PushMessage struct {
	To    string            `json:"to"`
	Sound string            `json:"sound"`
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data"`
}

// ProxyResponse is what the send-push-all proxy returns per batch.
type ProxyResponse struct {
	Success      bool   `json:"success"`
	SuccessCount int    `json:"successCount"`
	FailureCount int    `json:"failureCount"`
	Error        string `json:"error,omitempty"`
}

// DispatchResult accumulates per-batch tallies for one dispatch.
type DispatchResult struct {
	Tokens       int `json:"tokens"`
	Batches      int `json:"batches"`
	SuccessCount int `json:"successCount"`
	FailureCount int `json:"failureCount"`
}

// Summary renders the result the way the console shows it to the operator.
func (r DispatchResult) Summary() string {
	return fmt.Sprintf("Delivered to %d devices (%d failed) across %d batches", r.SuccessCount, r.FailureCount, r.Batches)
}

// PushService forwards message batches to the local push proxy. Batches are
// sent strictly one at a time: the gateway sees bounded load and the tallies
// need no synchronization.
type PushService struct {
	ProxyURL string
	Client   *http.Client
}

var pushService *PushService

// InitPushService configures the singleton dispatcher from config.
func InitPushService(cfg *config.Config) {
	pushService = NewPushService(cfg.Push.ProxyURL)
	log.Printf("Push dispatcher targeting proxy at %s", pushService.ProxyURL)
}

// GetPushService returns the singleton dispatcher.
func GetPushService() *PushService {
	return pushService
}

func NewPushService(proxyURL string) *PushService {
	return &PushService{
		ProxyURL: proxyURL,
		Client:   &http.Client{Timeout: 30 * time.Second},
	}
}

// CollectTokens gathers the distinct non-empty push tokens across users,
// preserving first-seen order. A device registered on several accounts is
// messaged once.
func CollectTokens(users []models.User) []string {
	seen := make(map[string]bool, len(users))
	var tokens []string
	for _, u := range users {
		if u.PushToken == nil || *u.PushToken == "" {
			continue
		}
		if seen[*u.PushToken] {
			continue
		}
		seen[*u.PushToken] = true
		tokens = append(tokens, *u.PushToken)
	}
	return tokens
}

// BuildMessages constructs one envelope per token.
func BuildMessages(tokens []string, title, body string, data map[string]string) []PushMessage {
	messages := make([]PushMessage, 0, len(tokens))
	for _, token := range tokens {
		messages = append(messages, PushMessage{
			To:    token,
			Sound: "default",
			Title: title,
			Body:  body,
			Data:  data,
		})
	}
	return messages
}

// Dispatch sends messages in sequential batches of PushBatchSize and sums the
// tallies the proxy reports. A failed batch counts every one of its messages
// as a failure and does not stop the remaining batches. Best effort only: no
// retry, no backoff, re-invoking resends to every token.
func (s *PushService) Dispatch(ctx context.Context, messages []PushMessage) DispatchResult {
	result := DispatchResult{Tokens: len(messages)}

	for start := 0; start < len(messages); start += PushBatchSize {
		end := start + PushBatchSize
		if end > len(messages) {
			end = len(messages)
		}
		batch := messages[start:end]
		result.Batches++

		resp, err := s.sendBatch(ctx, batch)
		if err != nil || !resp.Success {
			if err != nil {
				log.Printf("Push batch %d failed: %v", result.Batches, err)
			} else {
				log.Printf("Push batch %d rejected by proxy: %s", result.Batches, resp.Error)
			}
			result.FailureCount += len(batch)
			continue
		}
		result.SuccessCount += resp.SuccessCount
		result.FailureCount += resp.FailureCount
	}

	log.Printf("Push dispatch finished: %s", result.Summary())
	return result
}

func (s *PushService) sendBatch(ctx context.Context, batch []PushMessage) (ProxyResponse, error) {
	payload, err := json.Marshal(map[string][]PushMessage{"messages": batch})
	if err != nil {
		return ProxyResponse{}, fmt.Errorf("failed to marshal batch: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.ProxyURL, bytes.NewReader(payload))
	if err != nil {
		return ProxyResponse{}, fmt.Errorf("failed to build proxy request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return ProxyResponse{}, fmt.Errorf("proxy call failed: %w", err)
	}
	defer resp.Body.Close()

	var proxyResp ProxyResponse
	if err := json.NewDecoder(resp.Body).Decode(&proxyResp); err != nil {
		return ProxyResponse{}, fmt.Errorf("failed to decode proxy response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return proxyResp, fmt.Errorf("proxy returned status %d", resp.StatusCode)
	}
	return proxyResp, nil
}
