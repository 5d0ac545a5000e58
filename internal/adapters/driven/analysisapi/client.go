// Package analysisapi is the HTTP adapter for the business-intelligence
// analysis service.
package analysisapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/buger/jsonparser"
	"github.com/google/uuid"

	"github.com/custodia-labs/bizlens-cli/internal/core/domain"
	"github.com/custodia-labs/bizlens-cli/internal/core/ports/driven"
	"github.com/custodia-labs/bizlens-cli/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.AnalysisAPI = (*Client)(nil)

// Service endpoints.
const (
	pathAnalyze  = "/api/analyze-business"
	pathAnalysis = "/api/analysis/"
	pathAnalyses = "/api/analyses"
	pathHealth   = "/api/health"
)

// HeaderRequestID carries the submission identifier.
const HeaderRequestID = "X-Request-ID"

// maxResponseSize bounds how much of a response body is read.
const maxResponseSize = 32 << 20

// Config holds configuration for the analysis service client.
type Config struct {
	// BaseURL is the service base URL (default: domain.DefaultAPIURL).
	BaseURL string

	// Timeout bounds each request. Zero means no timeout; analyses can take minutes.
	Timeout time.Duration

	// RateLimit caps requests per second. Zero disables limiting.
	RateLimit float64

	// UserAgent is sent with every request.
	UserAgent string

	// HTTPClient replaces the default client. Timeout is ignored when set.
	HTTPClient *http.Client
}

// Client talks to the analysis service over HTTP/JSON. It never retries.
type Client struct {
	client    *http.Client
	baseURL   string
	userAgent string
	limiter   *rateLimiter
}

// NewClient creates a new analysis service client.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = domain.DefaultAPIURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "bizlens"
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{
		client:    httpClient,
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		userAgent: cfg.UserAgent,
		limiter:   newRateLimiter(cfg.RateLimit),
	}
}

// BaseURL returns the service base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Analyze submits one analysis request.
func (c *Client) Analyze(ctx context.Context, req domain.AnalysisRequest) (*domain.AnalysisResult, error) {
	const op = "analyze"

	body, err := c.do(ctx, op, http.MethodPost, pathAnalyze, req, false)
	if err != nil {
		return nil, err
	}

	data, err := envelopeData(op, body, jsonparser.Object)
	if err != nil {
		return nil, err
	}

	result := decodeResult(data)
	if result.AnalysisID == "" {
		result.AnalysisID = getString(body, "analysis_id")
	}
	return result, nil
}

// GetAnalysis fetches a stored analysis. A 404 wraps domain.ErrNotFound.
func (c *Client) GetAnalysis(ctx context.Context, analysisID string) (*domain.AnalysisResult, error) {
	const op = "get analysis"

	body, err := c.do(ctx, op, http.MethodGet, pathAnalysis+url.PathEscape(analysisID), nil, true)
	if err != nil {
		return nil, err
	}

	data, err := envelopeData(op, body, jsonparser.Object)
	if err != nil {
		return nil, err
	}

	result := decodeResult(data)
	if result.AnalysisID == "" {
		result.AnalysisID = analysisID
	}
	return result, nil
}

// ListAnalyses returns stored analyses in service order.
func (c *Client) ListAnalyses(ctx context.Context) ([]domain.HistoryEntry, error) {
	const op = "list analyses"

	body, err := c.do(ctx, op, http.MethodGet, pathAnalyses, nil, false)
	if err != nil {
		return nil, err
	}

	data, err := envelopeData(op, body, jsonparser.Array)
	if err != nil {
		return nil, err
	}
	return decodeHistory(data), nil
}

// Health reports the service's health.
func (c *Client) Health(ctx context.Context) (*domain.ServiceHealth, error) {
	const op = "health"

	body, err := c.do(ctx, op, http.MethodGet, pathHealth, nil, false)
	if err != nil {
		return nil, err
	}
	if _, dataType, _, err := jsonparser.Get(body); err != nil || dataType != jsonparser.Object {
		return nil, fmt.Errorf("%s: %w: decode response: not a JSON object", op, domain.ErrRequestFailed)
	}
	return decodeHealth(body), nil
}

// do sends one request and returns the body of a 2xx response.
// lookup marks requests for which a 404 means "not found".
func (c *Client) do(ctx context.Context, op, method, path string, payload any, lookup bool) ([]byte, error) {
	requestID := driven.RequestIDFromContext(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	log := logger.WithFields(map[string]string{"request_id": requestID, "op": op})

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w: rate limit: %w", op, domain.ErrRequestFailed, err)
	}

	var reader io.Reader
	if payload != nil {
		jsonBody, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("%s: marshal request: %w", op, err)
		}
		reader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: create request: %w", op, domain.ErrRequestFailed, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(HeaderRequestID, requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log.Debug("%s %s", method, req.URL.Redacted())
	start := time.Now()

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: send request: %w", op, domain.ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("%s: %w: read response: %w", op, domain.ErrRequestFailed, err)
	}

	log.Debug("%s %s -> %d in %s (%d bytes)", method, path, resp.StatusCode, time.Since(start).Round(time.Millisecond), len(body))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Detail:     extractDetail(body),
			RequestID:  requestID,
			kind:       statusKind(resp.StatusCode, lookup),
		}
	}
	return body, nil
}

// envelopeData unwraps {"success": bool, "data": ...}. A missing success
// flag is treated as success; success=false becomes an *APIError.
func envelopeData(op string, body []byte, want jsonparser.ValueType) ([]byte, error) {
	if success, err := jsonparser.GetBoolean(body, "success"); err == nil && !success {
		detail := extractDetail(body)
		if detail == "" {
			detail = "service reported failure"
		}
		return nil, &APIError{Op: op, StatusCode: http.StatusOK, Detail: detail, kind: domain.ErrRequestFailed}
	}

	data, dataType, _, err := jsonparser.Get(body, "data")
	if err != nil || dataType != want {
		return nil, fmt.Errorf("%s: %w: decode response: missing %s data", op, domain.ErrRequestFailed, typeName(want))
	}
	return data, nil
}

func typeName(t jsonparser.ValueType) string {
	if t == jsonparser.Array {
		return "array"
	}
	return "object"
}
