package paylink

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func invoiceRequestFixture() *InvoiceRequest {
	return &InvoiceRequest{
		OrderNumber:  "101",
		ClientName:   "Sara Alghamdi",
		ClientMobile: "+966500000001",
		ClientEmail:  "sara@example.com",
		Amount:       149.50,
		CallBackURL:  "https://shop.example.com/checkout/order-received/101?gateway=paylink",
		Lang:         "ar",
		Products: []Product{
			{Title: "Dates Box", Price: 99.50, Qty: 1, Description: "1kg premium", IsDigital: false},
			{Title: "Gift Card", Price: 50.00, Qty: 1, IsDigital: true},
		},
		Currency:       "SAR",
		DisplayPending: true,
	}
}

func TestClient_AddInvoice(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		c := NewClient(TestBaseURL)
		c.httpClient.Transport = MockRoundTripper(func(req *http.Request) *http.Response {
			assert.Equal(t, "POST", req.Method)
			assert.Equal(t, TestBaseURL+"/api/addInvoice", req.URL.String())
			assert.Equal(t, "Bearer tok-1", req.Header.Get("Authorization"))

			var body map[string]any
			require.NoError(t, json.NewDecoder(req.Body).Decode(&body))
			assert.Equal(t, "101", body["orderNumber"])
			assert.Equal(t, "ar", body["lang"])
			assert.Equal(t, true, body["displayPending"])
			products, ok := body["products"].([]any)
			require.True(t, ok)
			assert.Len(t, products, 2)

			return jsonResponse(http.StatusOK, `{"url":"https://pay.example/x","transactionNo":"TXN-9"}`)
		})

		resp, err := c.AddInvoice(context.Background(), "tok-1", invoiceRequestFixture())
		require.NoError(t, err)
		assert.Equal(t, "https://pay.example/x", resp.URL)
		assert.Equal(t, "TXN-9", resp.TransactionNo)
	})

	t.Run("APIError", func(t *testing.T) {
		c := NewClient(TestBaseURL)
		c.httpClient.Transport = MockRoundTripper(func(req *http.Request) *http.Response {
			return jsonResponse(http.StatusBadRequest, `{"detail":"invalid amount"}`)
		})

		_, err := c.AddInvoice(context.Background(), "tok-1", invoiceRequestFixture())
		assert.ErrorIs(t, err, ErrAPI)
	})

	t.Run("EmptyBody", func(t *testing.T) {
		c := NewClient(TestBaseURL)
		c.httpClient.Transport = MockRoundTripper(func(req *http.Request) *http.Response {
			return jsonResponse(http.StatusOK, ``)
		})

		_, err := c.AddInvoice(context.Background(), "tok-1", invoiceRequestFixture())
		assert.ErrorIs(t, err, ErrAPI)
	})

	t.Run("MissingURL", func(t *testing.T) {
		c := NewClient(TestBaseURL)
		c.httpClient.Transport = MockRoundTripper(func(req *http.Request) *http.Response {
			return jsonResponse(http.StatusOK, `{"transactionNo":"TXN-9"}`)
		})

		_, err := c.AddInvoice(context.Background(), "tok-1", invoiceRequestFixture())
		assert.ErrorIs(t, err, ErrAPI)
	})
}

func TestClient_GetInvoice(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		c := NewClient(TestBaseURL)
		c.httpClient.Transport = MockRoundTripper(func(req *http.Request) *http.Response {
			assert.Equal(t, "GET", req.Method)
			assert.Equal(t, TestBaseURL+"/api/getInvoice/TXN-9", req.URL.String())
			assert.Equal(t, "Bearer tok-1", req.Header.Get("Authorization"))
			return jsonResponse(http.StatusOK, `{"orderStatus":"Paid"}`)
		})

		status, err := c.GetInvoice(context.Background(), "tok-1", "TXN-9")
		require.NoError(t, err)
		assert.Equal(t, "Paid", status.OrderStatus)
		assert.False(t, status.HasPaymentErrors())
	})

	t.Run("WithPaymentErrors", func(t *testing.T) {
		c := NewClient(TestBaseURL)
		c.httpClient.Transport = MockRoundTripper(func(req *http.Request) *http.Response {
			return jsonResponse(http.StatusOK, `{"orderStatus":"Pending","paymentErrors":[{"code":"3DS_FAILED"}]}`)
		})

		status, err := c.GetInvoice(context.Background(), "tok-1", "TXN-9")
		require.NoError(t, err)
		assert.True(t, status.HasPaymentErrors())
	})

	t.Run("MissingOrderStatus", func(t *testing.T) {
		c := NewClient(TestBaseURL)
		c.httpClient.Transport = MockRoundTripper(func(req *http.Request) *http.Response {
			return jsonResponse(http.StatusOK, `{"paymentErrors":null}`)
		})

		_, err := c.GetInvoice(context.Background(), "tok-1", "TXN-9")
		assert.ErrorIs(t, err, ErrAPI)
	})

	t.Run("NotFound", func(t *testing.T) {
		c := NewClient(TestBaseURL)
		c.httpClient.Transport = MockRoundTripper(func(req *http.Request) *http.Response {
			return jsonResponse(http.StatusNotFound, `{}`)
		})

		_, err := c.GetInvoice(context.Background(), "tok-1", "TXN-missing")
		assert.ErrorIs(t, err, ErrAPI)
	})
}

func TestInvoiceStatus_HasPaymentErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want bool
	}{
		{"Absent", "", false},
		{"Null", "null", false},
		{"EmptyArray", "[]", false},
		{"EmptyObject", "{}", false},
		{"EmptyString", `""`, false},
		{"Populated", `[{"code":"X"}]`, true},
		{"NonEmptyString", `"declined"`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &InvoiceStatus{PaymentErrors: json.RawMessage(tt.raw)}
			assert.Equal(t, tt.want, s.HasPaymentErrors())
		})
	}
}
