package paylink

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReporter_Report(t *testing.T) {
	t.Run("PostsPayload", func(t *testing.T) {
		var got map[string]string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		r := NewReporter("app-1", "secret-1")
		r.collectorURL = srv.URL

		r.Report(context.Background(), "auth failed", TestBaseURL+"/api/auth", "Authenticate")

		assert.Equal(t, "app-1", got["apiId"])
		assert.Equal(t, "secret-1", got["apiKey"])
		assert.Equal(t, "auth failed", got["error"])
		assert.Equal(t, TestBaseURL+"/api/auth", got["calledUrl"])
		assert.Equal(t, "Authenticate", got["method"])
	})

	t.Run("DeliveryFailureSwallowed", func(t *testing.T) {
		r := NewReporter("app-1", "secret-1")
		r.collectorURL = "http://127.0.0.1:1/unreachable"

		assert.NotPanics(t, func() {
			r.Report(context.Background(), "boom", "", "HandleCallback")
		})
	})
}
