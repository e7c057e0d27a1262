package paylink

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"souq-be/internal/logger"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const authPath = "/api/auth"

// Authenticator obtains and caches a bearer token for one merchant. The
// cache is instance-local: each request lifecycle gets its own
// Authenticator, so no locking is needed.
type Authenticator struct {
	client    *Client
	appID     string
	secretKey string
	token     string
}

func NewAuthenticator(client *Client, appID, secretKey string) *Authenticator {
	return &Authenticator{
		client:    client,
		appID:     appID,
		secretKey: secretKey,
	}
}

// Token returns the cached bearer token, authenticating at most once when
// the cache is empty or the cached token has expired. Downstream failures
// never trigger a second attempt within the same call.
func (a *Authenticator) Token(ctx context.Context) (string, error) {
	if a.token != "" && !tokenExpired(a.token) {
		return a.token, nil
	}
	return a.Authenticate(ctx)
}

// Authenticate performs the auth call and caches the resulting token. Any
// failure clears the cache.
func (a *Authenticator) Authenticate(ctx context.Context) (string, error) {
	log := logger.FromCtx(ctx).With(zap.String("app_id", a.appID))

	if a.appID == "" || a.secretKey == "" {
		a.token = ""
		return "", fmt.Errorf("%w: API ID or secret key is missing", ErrConfig)
	}

	body := map[string]any{
		"apiId":        a.appID,
		"secretKey":    a.secretKey,
		"persistToken": true,
	}

	resp, err := a.client.send(ctx, http.MethodPost, authPath, nil, body, 0)
	if err != nil {
		a.token = ""
		return "", err
	}

	if !resp.successful() {
		a.token = ""
		log.Error("Paylink auth returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("response", resp.Body),
		)
		return "", fmt.Errorf("%w: auth failed with status %s", ErrAPI, resp.statusLine())
	}

	if len(resp.Body) == 0 {
		a.token = ""
		return "", fmt.Errorf("%w: empty response from auth endpoint", ErrAPI)
	}

	var decoded struct {
		IDToken string `json:"id_token"`
	}
	if err := json.Unmarshal(resp.Body, &decoded); err != nil {
		a.token = ""
		log.Error("Failed decoding auth response", zap.Error(err))
		return "", fmt.Errorf("%w: malformed auth response: %v", ErrAPI, err)
	}
	if decoded.IDToken == "" {
		a.token = ""
		return "", fmt.Errorf("%w: no authentication token in auth response", ErrAPI)
	}

	a.token = decoded.IDToken
	log.Info("Authenticated with Paylink API")
	return a.token, nil
}

// tokenExpired inspects the cached token's exp claim without verifying the
// signature (the token is opaque to us; only Paylink verifies it). Tokens
// that are not JWTs or carry no expiry are treated as still valid.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
