package gateway

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"souq-be/internal/cart"
	"souq-be/internal/logger"
	"souq-be/internal/order"
	"souq-be/internal/paylink"
	"souq-be/internal/utils"

	"go.uber.org/zap"
)

// GatewayMarker tags the callback URL so the storefront routes the
// provider's redirect back to this gateway.
const GatewayMarker = "paylink"

// InterimDelaySeconds is how long the interim confirmation page waits
// before the client-side redirect to the hosted payment page.
const InterimDelaySeconds = 2

// PaymentGateway is the capability this package offers the checkout flow.
type PaymentGateway interface {
	CreateInvoice(ctx context.Context, orderID uint) (*CheckoutResult, error)
	HandleCallback(ctx context.Context, in CallbackInput) (redirectURL string, err error)
	RenderFields() string
	Config() *Settings
}

// CheckoutResult tells the HTTP layer how to move the customer to the
// hosted payment page.
type CheckoutResult struct {
	RedirectURL  string
	Interim      bool
	Instructions string
	DelaySeconds int
}

// CallbackInput is the provider's callback, validated at the boundary
// before entering the reconciler.
type CallbackInput struct {
	OrderNumber   string
	TransactionNo string
}

// Notice is a user-facing message raised during an operation.
type Notice struct {
	Kind    string
	Message string
}

// Notifier delivers notices to the customer when the host surface has a
// notice mechanism. Without one, notices accumulate on the gateway.
type Notifier interface {
	Notice(kind, message string)
}

type tokenSource interface {
	Token(ctx context.Context) (string, error)
}

type invoiceAPI interface {
	AddInvoice(ctx context.Context, token string, req *paylink.InvoiceRequest) (*paylink.InvoiceResponse, error)
	GetInvoice(ctx context.Context, token, transactionNo string) (*paylink.InvoiceStatus, error)
}

type errorReporter interface {
	Report(ctx context.Context, errText, calledURL, method string)
}

// Gateway drives the payment-session lifecycle for one request. It is not
// safe for concurrent use; construct one per inbound request.
type Gateway struct {
	settings *Settings
	auth     tokenSource
	api      invoiceAPI
	orders   order.Service
	carts    cart.Service
	reporter errorReporter
	notifier Notifier
	notices  []Notice
}

func New(settings *Settings, auth tokenSource, api invoiceAPI, orders order.Service, carts cart.Service, reporter errorReporter, notifier Notifier) *Gateway {
	return &Gateway{
		settings: settings,
		auth:     auth,
		api:      api,
		orders:   orders,
		carts:    carts,
		reporter: reporter,
		notifier: notifier,
	}
}

func (g *Gateway) Config() *Settings {
	return g.settings
}

// Notices returns messages accumulated while no Notifier was attached.
func (g *Gateway) Notices() []Notice {
	return g.notices
}

// CreateInvoice builds and submits the invoice for an order and returns the
// redirect to the hosted payment page. Order payment status is never
// touched here; only the callback reconciler transitions it.
func (g *Gateway) CreateInvoice(ctx context.Context, orderID uint) (*CheckoutResult, error) {
	const op = "CreateInvoice"
	endpoint := g.settings.BaseURL + "/api/addInvoice"

	if orderID == 0 {
		return nil, g.fail(ctx, op, endpoint, 0,
			fmt.Errorf("%w: order ID is missing", paylink.ErrValidation))
	}

	token, err := g.auth.Token(ctx)
	if err != nil {
		return nil, g.fail(ctx, op, g.settings.BaseURL+"/api/auth", orderID,
			fmt.Errorf("%w: %v", paylink.ErrAuth, err))
	}

	o, err := g.orders.Get(ctx, orderID)
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			err = fmt.Errorf("%w: order %d", paylink.ErrNotFound, orderID)
		}
		return nil, g.fail(ctx, op, endpoint, orderID, err)
	}

	callbackURL := utils.AddQueryArg(g.orders.ReceivedURL(o), "gateway", GatewayMarker)

	products := make([]paylink.Product, 0, len(o.Items))
	for _, it := range o.Items {
		products = append(products, paylink.Product{
			Title:       it.Title,
			Price:       it.Price,
			Qty:         it.Quantity,
			Description: it.Description,
			IsDigital:   !it.Shippable,
		})
	}

	req := &paylink.InvoiceRequest{
		OrderNumber:    strconv.FormatUint(uint64(o.ID), 10),
		ClientName:     o.BillingName,
		ClientMobile:   o.BillingPhone,
		ClientEmail:    o.BillingEmail,
		Amount:         o.Total,
		CallBackURL:    callbackURL,
		Note:           "",
		Lang:           "ar",
		Products:       products,
		Currency:       o.Currency,
		DisplayPending: true,
	}

	resp, err := g.api.AddInvoice(ctx, token, req)
	if err != nil {
		return nil, g.fail(ctx, op, endpoint, orderID, err)
	}

	if err := g.orders.AddNote(ctx, o.ID, "Paylink invoice created, transaction "+resp.TransactionNo); err != nil {
		logger.FromCtx(ctx).Warn("Failed to record invoice note",
			zap.Uint("order_id", o.ID), zap.Error(err))
	}

	result := &CheckoutResult{RedirectURL: resp.URL}
	if g.settings.ShowInterim {
		result.Interim = true
		result.Instructions = g.settings.Instructions
		result.DelaySeconds = InterimDelaySeconds
	}
	return result, nil
}

// HandleCallback reconciles the provider's callback against the
// authoritative invoice status and drives the order transition. The
// returned redirect is always usable: the generic checkout URL unless the
// paid path replaced it with the order-received page.
func (g *Gateway) HandleCallback(ctx context.Context, in CallbackInput) (redirectURL string, err error) {
	const op = "HandleCallback"
	endpoint := g.settings.BaseURL + "/api/getInvoice"

	// The finalizing redirect fires on every path, error or not.
	redirectURL = g.orders.CheckoutURL()
	var orderID uint
	defer func() {
		if err != nil {
			g.fail(ctx, op, endpoint, orderID,
				fmt.Errorf("%s, %v", g.settings.FailMessage, err))
		}
	}()

	if in.OrderNumber == "" {
		err = fmt.Errorf("%w: no order ID found in the request", paylink.ErrValidation)
		return
	}
	if in.TransactionNo == "" {
		err = fmt.Errorf("%w: no transaction number found in the request", paylink.ErrValidation)
		return
	}

	token, authErr := g.auth.Token(ctx)
	if authErr != nil {
		err = fmt.Errorf("%w: %v", paylink.ErrAuth, authErr)
		return
	}

	orderNumber := utils.SanitizeText(in.OrderNumber)
	transactionNo := utils.SanitizeText(in.TransactionNo)
	if orderNumber == "" {
		err = fmt.Errorf("%w: order ID is missing", paylink.ErrValidation)
		return
	}
	if transactionNo == "" {
		err = fmt.Errorf("%w: transaction number is missing", paylink.ErrValidation)
		return
	}

	parsed, parseErr := strconv.ParseUint(orderNumber, 10, 64)
	if parseErr != nil {
		err = fmt.Errorf("%w: order ID %q is not numeric", paylink.ErrValidation, orderNumber)
		return
	}
	orderID = uint(parsed)
	endpoint = g.settings.BaseURL + "/api/getInvoice/" + transactionNo

	o, getErr := g.orders.Get(ctx, orderID)
	if getErr != nil {
		err = getErr
		if errors.Is(getErr, order.ErrOrderNotFound) {
			err = fmt.Errorf("%w: order %d", paylink.ErrNotFound, orderID)
		}
		return
	}

	status, apiErr := g.api.GetInvoice(ctx, token, transactionNo)
	if apiErr != nil {
		err = apiErr
		return
	}

	switch strings.ToLower(status.OrderStatus) {
	case "paid":
		if markErr := g.orders.MarkPaid(ctx, o.ID, transactionNo); markErr != nil {
			err = markErr
			return
		}
		if clearErr := g.carts.Clear(ctx, o.CustomerID); clearErr != nil {
			// The payment is settled; an unemptied cart is not worth
			// failing the customer over.
			logger.FromCtx(ctx).Warn("Failed to clear cart after payment",
				zap.Uint("customer_id", o.CustomerID), zap.Error(clearErr))
		}
		redirectURL = utils.AddQueryArg(g.orders.ReceivedURL(o), "transactionNo", transactionNo)

	case "canceled":
		if updErr := g.orders.UpdateStatus(ctx, o.ID, order.StatusCancelled); updErr != nil {
			err = updErr
			return
		}
		err = fmt.Errorf("payment was cancelled")

	case "pending":
		if !status.HasPaymentErrors() {
			if updErr := g.orders.UpdateStatus(ctx, o.ID, order.StatusPending); updErr != nil {
				err = updErr
				return
			}
			err = fmt.Errorf("payment is pending")
			return
		}
		fallthrough

	default:
		if updErr := g.orders.UpdateStatus(ctx, o.ID, order.StatusFailed); updErr != nil {
			err = updErr
			return
		}
		err = fmt.Errorf("payment failed, try again")
	}

	return
}

// fail applies the shared failure policy: server-side log, user notice,
// best-effort remote report. It returns err unchanged so call sites can
// propagate it.
func (g *Gateway) fail(ctx context.Context, op, endpoint string, orderID uint, err error) error {
	logger.FromCtx(ctx).Error("Paylink operation failed",
		zap.String("operation", op),
		zap.String("endpoint", endpoint),
		zap.Error(err),
	)

	g.notice("error", err.Error())

	if orderID != 0 {
		if noteErr := g.orders.AddNote(ctx, orderID, op+" failed: "+err.Error()); noteErr != nil {
			logger.FromCtx(ctx).Warn("Failed to record failure note", zap.Error(noteErr))
		}
	}

	g.reporter.Report(ctx, err.Error(), endpoint, op)
	return err
}

func (g *Gateway) notice(kind, message string) {
	if g.notifier != nil {
		g.notifier.Notice(kind, message)
		return
	}
	g.notices = append(g.notices, Notice{Kind: kind, Message: message})
}
