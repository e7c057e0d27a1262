package paylink

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"souq-be/internal/logger"

	"go.uber.org/zap"
)

const (
	addInvoicePath = "/api/addInvoice"
	getInvoicePath = "/api/getInvoice/"
)

// Product is one order line on an invoice request.
type Product struct {
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Qty         int     `json:"qty"`
	Description string  `json:"description"`
	IsDigital   bool    `json:"isDigital"`
}

// InvoiceRequest is the payload for addInvoice, built fresh per checkout
// attempt and never persisted.
type InvoiceRequest struct {
	OrderNumber    string    `json:"orderNumber"`
	ClientName     string    `json:"clientName"`
	ClientMobile   string    `json:"clientMobile"`
	ClientEmail    string    `json:"clientEmail"`
	Amount         float64   `json:"amount"`
	CallBackURL    string    `json:"callBackUrl"`
	Note           string    `json:"note"`
	Lang           string    `json:"lang"`
	Products       []Product `json:"products"`
	Currency       string    `json:"currency"`
	DisplayPending bool      `json:"displayPending"`
}

// InvoiceResponse carries the hosted payment page URL.
type InvoiceResponse struct {
	URL           string `json:"url"`
	TransactionNo string `json:"transactionNo"`
}

// InvoiceStatus is the authoritative invoice state returned by getInvoice.
type InvoiceStatus struct {
	OrderStatus   string          `json:"orderStatus"`
	PaymentErrors json.RawMessage `json:"paymentErrors"`
}

// HasPaymentErrors reports whether the status response carried a non-empty
// paymentErrors field.
func (s *InvoiceStatus) HasPaymentErrors() bool {
	switch string(s.PaymentErrors) {
	case "", "null", "[]", "{}", `""`:
		return false
	}
	return true
}

// AddInvoice submits an invoice-creation request with bearer auth and a
// 60-second timeout. The returned URL is required; its absence is an error.
func (c *Client) AddInvoice(ctx context.Context, token string, req *InvoiceRequest) (*InvoiceResponse, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("order_number", req.OrderNumber),
		zap.Float64("amount", req.Amount),
		zap.String("currency", req.Currency),
	)

	headers := map[string]string{
		"Authorization": "Bearer " + token,
	}

	resp, err := c.send(ctx, http.MethodPost, addInvoicePath, headers, req, invoiceTimeout)
	if err != nil {
		return nil, err
	}

	if !resp.successful() {
		log.Error("Paylink addInvoice returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("response", resp.Body),
		)
		return nil, fmt.Errorf("%w: addInvoice failed with status %s", ErrAPI, resp.statusLine())
	}

	if len(resp.Body) == 0 {
		return nil, fmt.Errorf("%w: empty response from addInvoice", ErrAPI)
	}

	var decoded InvoiceResponse
	if err := json.Unmarshal(resp.Body, &decoded); err != nil {
		log.Error("Failed decoding addInvoice response", zap.Error(err))
		return nil, fmt.Errorf("%w: malformed addInvoice response: %v", ErrAPI, err)
	}
	if decoded.URL == "" {
		return nil, fmt.Errorf("%w: no payment URL in addInvoice response", ErrAPI)
	}

	log.Info("Paylink invoice created",
		zap.String("transaction_no", decoded.TransactionNo),
		zap.String("url", decoded.URL),
	)
	return &decoded, nil
}

// GetInvoice queries the authoritative status of an invoice by transaction
// number with bearer auth and a 60-second timeout.
func (c *Client) GetInvoice(ctx context.Context, token, transactionNo string) (*InvoiceStatus, error) {
	log := logger.FromCtx(ctx).With(zap.String("transaction_no", transactionNo))

	headers := map[string]string{
		"Authorization": "Bearer " + token,
	}

	resp, err := c.send(ctx, http.MethodGet, getInvoicePath+transactionNo, headers, nil, invoiceTimeout)
	if err != nil {
		return nil, err
	}

	if !resp.successful() {
		log.Error("Paylink getInvoice returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("response", resp.Body),
		)
		return nil, fmt.Errorf("%w: getInvoice failed with status %s", ErrAPI, resp.statusLine())
	}

	if len(resp.Body) == 0 {
		return nil, fmt.Errorf("%w: empty response from getInvoice", ErrAPI)
	}

	var decoded InvoiceStatus
	if err := json.Unmarshal(resp.Body, &decoded); err != nil {
		log.Error("Failed decoding getInvoice response", zap.Error(err))
		return nil, fmt.Errorf("%w: malformed getInvoice response: %v", ErrAPI, err)
	}
	if decoded.OrderStatus == "" {
		return nil, fmt.Errorf("%w: no order status in getInvoice response", ErrAPI)
	}

	log.Info("Paylink invoice status fetched", zap.String("order_status", decoded.OrderStatus))
	return &decoded, nil
}
