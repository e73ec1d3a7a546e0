package middle

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mstgnz/payu-console/infra/opensearch"
)

// responseWriter wraps http.ResponseWriter to capture response data
type responseWriter struct {
	http.ResponseWriter
	body       *bytes.Buffer
	statusCode int
	startTime  time.Time
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		body:           &bytes.Buffer{},
		statusCode:     http.StatusOK,
		startTime:      time.Now(),
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	rw.body.Write(b)
	return rw.ResponseWriter.Write(b)
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	rw.statusCode = statusCode
	rw.ResponseWriter.WriteHeader(statusCode)
}

// AttemptLoggingMiddleware creates a middleware for logging checkout attempts
func AttemptLoggingMiddleware(logger *opensearch.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Skip logging for non-checkout endpoints
			if !isCheckoutEndpoint(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			// Generate request ID
			requestID := uuid.New().String()
			r.Header.Set("X-Request-ID", requestID)

			flow, action := extractFlowActionFromURL(r.URL.Path)
			if flow == "" {
				flow = "attempts"
			}

			// Capture request body
			var requestBody []byte
			if r.Body != nil {
				requestBody, _ = io.ReadAll(r.Body)
				r.Body = io.NopCloser(bytes.NewBuffer(requestBody))
			}

			// Create response writer wrapper
			rw := newResponseWriter(w)

			// Process request
			next.ServeHTTP(rw, r)

			attemptLog := opensearch.AttemptLog{
				Timestamp: rw.startTime,
				Flow:      flow,
				Action:    action,
				RequestID: requestID,
				UserAgent: r.UserAgent(),
				ClientIP:  GetClientIP(r),
				Request: opensearch.RequestLog{
					Body: opensearch.SanitizeForLog(string(requestBody)),
				},
				Response: opensearch.ResponseLog{
					StatusCode:       rw.statusCode,
					Body:             opensearch.SanitizeForLog(rw.body.String()),
					ProcessingTimeMs: time.Since(rw.startTime).Milliseconds(),
				},
			}

			// Extract attempt information from request/response
			if attemptInfo := extractAttemptInfo(string(requestBody), rw.body.String()); attemptInfo != nil {
				attemptLog.AttemptInfo = *attemptInfo
			}

			// Extract error information if response indicates error
			if rw.statusCode >= 400 {
				if errorInfo := extractErrorInfo(rw.body.String()); errorInfo != nil {
					attemptLog.Error = *errorInfo
				}
			}

			// Log to OpenSearch asynchronously to avoid blocking the response
			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()

				_ = logger.LogAttempt(ctx, attemptLog)
			}()
		})
	}
}

// isCheckoutEndpoint checks if the URL path is a checkout-related endpoint
func isCheckoutEndpoint(path string) bool {
	return strings.HasPrefix(path, "/v1/checkout")
}

// extractFlowActionFromURL extracts the flow name and action from the URL path
func extractFlowActionFromURL(path string) (string, string) {
	// URL pattern: /v1/checkout/{flow}/{action}[/{language}]
	segments := strings.Split(strings.Trim(path, "/"), "/")

	if len(segments) >= 4 && segments[1] == "checkout" {
		return segments[2], segments[3]
	}
	if len(segments) == 3 && segments[1] == "checkout" {
		return segments[2], ""
	}

	return "", ""
}

// extractAttemptInfo extracts checkout attempt information from request/response bodies
func extractAttemptInfo(requestBody, responseBody string) *opensearch.AttemptInfo {
	attemptInfo := &opensearch.AttemptInfo{}

	if requestBody != "" {
		var requestData map[string]any
		if err := json.Unmarshal([]byte(requestBody), &requestData); err == nil {
			if amount, ok := requestData["amount"].(string); ok {
				attemptInfo.Amount = amount
			}
			if email, ok := requestData["email"].(string); ok {
				attemptInfo.Email = email
			}
		}
	}

	if responseBody != "" {
		var responseData map[string]any
		if err := json.Unmarshal([]byte(responseBody), &responseData); err == nil {
			// The submit response nests attempt details under data
			if data, ok := responseData["data"].(map[string]any); ok {
				if txnid, ok := data["txnid"].(string); ok {
					attemptInfo.TxnID = txnid
				}
				if key, ok := data["merchant_key"].(string); ok {
					attemptInfo.MerchantKey = key
				}
				if hash, ok := data["hash"].(string); ok {
					attemptInfo.HashLength = len(hash)
				}
			}
		}
	}

	if attemptInfo.TxnID == "" && attemptInfo.Amount == "" && attemptInfo.Email == "" {
		return nil
	}

	return attemptInfo
}

// extractErrorInfo extracts error information from response body
func extractErrorInfo(responseBody string) *opensearch.ErrorInfo {
	if responseBody == "" {
		return nil
	}

	var responseData map[string]any
	if err := json.Unmarshal([]byte(responseBody), &responseData); err != nil {
		return nil
	}

	errorInfo := &opensearch.ErrorInfo{}

	if errorMsg, ok := responseData["error"].(string); ok {
		errorInfo.Message = errorMsg
	} else if errorMsg, ok := responseData["message"].(string); ok {
		errorInfo.Message = errorMsg
	}

	if field, ok := responseData["field"].(string); ok {
		errorInfo.Field = field
	}

	if errorInfo.Field == "" && errorInfo.Message == "" {
		return nil
	}

	return errorInfo
}

// StatsMiddleware creates middleware for serving attempt statistics
func StatsMiddleware(logger *opensearch.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/v1/stats" && r.Method == "GET" {
				handleStatsRequest(w, r, logger)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// handleStatsRequest handles requests for attempt statistics
func handleStatsRequest(w http.ResponseWriter, r *http.Request, logger *opensearch.Logger) {
	flow := r.URL.Query().Get("flow")
	hoursStr := r.URL.Query().Get("hours")

	hours := 24 // Default to 24 hours
	if hoursStr != "" {
		if h, err := strconv.Atoi(hoursStr); err == nil && h > 0 {
			hours = h
		}
	}

	if flow == "" {
		http.Error(w, "flow parameter is required", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	stats, err := logger.GetFlowStats(ctx, flow, hours)
	if err != nil {
		http.Error(w, "Failed to get stats: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(stats); err != nil {
		http.Error(w, "Failed to encode stats", http.StatusInternalServerError)
		return
	}
}
