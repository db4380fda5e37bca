package controllers

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

var proxyClient = &http.Client{Timeout: 30 * time.Second}

// SendPushAll proxies push batches to the external gateway. The mobile release
// pipeline calls this endpoint directly from a browser context, so it answers
// its own CORS preflight and stays outside the admin auth chain.
func SendPushAll(gatewayURL string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Header("Access-Control-Allow-Origin", "*")
		ctx.Header("Access-Control-Allow-Methods", "POST, OPTIONS")
		ctx.Header("Access-Control-Allow-Headers", "Content-Type")

		if ctx.Request.Method == http.MethodOptions {
			ctx.Status(http.StatusOK)
			return
		}
		if ctx.Request.Method != http.MethodPost {
			ctx.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
			return
		}

		var req struct {
			Messages []json.RawMessage `json:"messages"`
		}
		if err := ctx.ShouldBindJSON(&req); err != nil || len(req.Messages) == 0 {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "messages array is required"})
			return
		}

		payload, err := json.Marshal(req.Messages)
		if err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send push notifications", "details": err.Error()})
			return
		}

		gwReq, err := http.NewRequestWithContext(ctx.Request.Context(), http.MethodPost, gatewayURL, bytes.NewReader(payload))
		if err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send push notifications", "details": err.Error()})
			return
		}
		gwReq.Header.Set("Accept", "application/json")
		gwReq.Header.Set("Accept-encoding", "gzip, deflate")
		gwReq.Header.Set("Content-Type", "application/json")

		resp, err := proxyClient.Do(gwReq)
		if err != nil {
			log.Printf("Push gateway call failed: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send push notifications", "details": err.Error()})
			return
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send push notifications", "details": err.Error()})
			return
		}

		// The gateway answers one receipt per envelope; anything that is not
		// status "ok" counts as a failure.
		var gwResp struct {
			Data []map[string]interface{} `json:"data"`
		}
		if err := json.Unmarshal(body, &gwResp); err != nil {
			log.Printf("Unexpected push gateway response: %s", string(body))
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send push notifications", "details": "unexpected gateway response"})
			return
		}

		successCount, failureCount := 0, 0
		for _, item := range gwResp.Data {
			if status, _ := item["status"].(string); status == "ok" {
				successCount++
			} else {
				failureCount++
			}
		}

		ctx.JSON(http.StatusOK, gin.H{
			"success":      true,
			"successCount": successCount,
			"failureCount": failureCount,
			"data":         gwResp.Data,
		})
	}
}
