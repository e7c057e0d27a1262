package paylink

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"souq-be/internal/logger"

	"go.uber.org/zap"
)

const (
	// Paylink REST hosts. The pilot host is used in test mode.
	TestBaseURL = "https://restpilot.paylink.sa"
	LiveBaseURL = "https://restapi.paylink.sa"

	// Pilot credentials issued by Paylink for test-mode integrations.
	TestAppID     = "APP_ID_1123453311"
	TestSecretKey = "0662abb5-13c7-38ab-cd12-236e58f43766"

	defaultTimeout = 15 * time.Second
	invoiceTimeout = 60 * time.Second
)

// BaseURL returns the API host for the given environment flag.
func BaseURL(testMode bool) string {
	if testMode {
		return TestBaseURL
	}
	return LiveBaseURL
}

// Client is the low-level HTTP client for the Paylink REST API. It performs
// a single attempt per call; retry policy belongs to the caller, if anywhere.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

// response is the raw outcome of one API call.
type response struct {
	StatusCode int
	Status     string
	Body       []byte
}

// successful reports whether the remote answered with a 2xx status.
func (r *response) successful() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// statusLine carries the remote status message into error text.
func (r *response) statusLine() string {
	if r.Status != "" {
		return r.Status
	}
	return fmt.Sprintf("%d", r.StatusCode)
}

// send performs one HTTP call against the API. body is JSON-encoded when
// non-nil. A zero timeout uses the client default.
func (c *Client) send(ctx context.Context, method, path string, headers map[string]string, body any, timeout time.Duration) (*response, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("method", method),
		zap.String("path", path),
	)

	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			log.Error("Failed to marshal request body", zap.Error(err))
			return nil, fmt.Errorf("%w: encode request: %v", ErrTransport, err)
		}
		reader = bytes.NewReader(jsonBody)
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		log.Error("Failed building request", zap.Error(err))
		return nil, fmt.Errorf("%w: build request: %v", ErrTransport, err)
	}

	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("Paylink request failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error("Failed to read response body", zap.Error(err))
		return nil, fmt.Errorf("%w: read response: %v", ErrTransport, err)
	}

	return &response{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Body:       bodyBytes,
	}, nil
}
