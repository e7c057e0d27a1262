package paylink

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"souq-be/internal/logger"

	"go.uber.org/zap"
)

// ErrorCollectorURL is Paylink's remote error-collection endpoint.
const ErrorCollectorURL = "https://paylinkapp.paylink.sa/careapi/wp_log_error"

// Reporter ships gateway errors to Paylink's collector, best effort. A
// failed report is logged locally and never propagated.
type Reporter struct {
	collectorURL string
	appID        string
	secretKey    string
	httpClient   *http.Client
}

func NewReporter(appID, secretKey string) *Reporter {
	return &Reporter{
		collectorURL: ErrorCollectorURL,
		appID:        appID,
		secretKey:    secretKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Report posts one error record. Fire and forget: every failure path only
// logs and returns.
func (r *Reporter) Report(ctx context.Context, errText, calledURL, method string) {
	log := logger.FromCtx(ctx).With(
		zap.String("operation", method),
		zap.String("called_url", calledURL),
	)

	payload := map[string]string{
		"apiId":     r.appID,
		"apiKey":    r.secretKey,
		"error":     errText,
		"calledUrl": calledURL,
		"method":    method,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		log.Warn("Failed to encode error report", zap.Error(err))
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.collectorURL, bytes.NewReader(body))
	if err != nil {
		log.Warn("Failed to build error report request", zap.Error(err))
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		log.Warn("Failed to deliver error report", zap.Error(err))
		return
	}
	defer resp.Body.Close()
}
