package gateway

import (
	"context"
	"fmt"
	"html"
	"net/http"
	"strconv"

	"souq-be/internal/logger"
	"souq-be/internal/order"
	"souq-be/internal/utils"

	"go.uber.org/zap"
)

// GatewayProvider hands out a request-scoped gateway instance.
type GatewayProvider interface {
	Gateway(ctx context.Context) (*Gateway, error)
}

// Handler exposes the browser-facing checkout and callback endpoints.
type Handler struct {
	provider GatewayProvider
	orders   order.Service
}

func NewHandler(provider GatewayProvider, orders order.Service) *Handler {
	return &Handler{provider: provider, orders: orders}
}

// ProcessHandler starts a checkout attempt: it annotates the order and
// sends the customer to the pay page that creates the invoice.
func (h *Handler) ProcessHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orderID := parseOrderID(r.FormValue("order_id"))
	if orderID == 0 {
		http.Redirect(w, r, h.orders.CheckoutURL(), http.StatusFound)
		return
	}

	gw, err := h.provider.Gateway(ctx)
	if err != nil || !gw.Config().Enabled {
		logger.FromCtx(ctx).Error("Payment gateway unavailable", zap.Error(err))
		http.Redirect(w, r, h.orders.CheckoutURL(), http.StatusFound)
		return
	}

	o, err := h.orders.Get(ctx, orderID)
	if err != nil {
		logger.FromCtx(ctx).Error("Order lookup failed",
			zap.Uint("order_id", orderID), zap.Error(err))
		http.Redirect(w, r, h.orders.CheckoutURL(), http.StatusFound)
		return
	}

	if err := h.orders.AddNote(ctx, o.ID, "Thank you for your order. Please complete your payment using the payment button below."); err != nil {
		logger.FromCtx(ctx).Warn("Failed to record checkout note", zap.Error(err))
	}

	payURL := utils.AddQueryArg("/checkout/pay", "order_id", strconv.FormatUint(uint64(o.ID), 10))
	payURL = utils.AddQueryArg(payURL, "key", o.OrderKey)
	http.Redirect(w, r, payURL, http.StatusFound)
}

// PayHandler creates the provider invoice and moves the customer to the
// hosted payment page, through the interim confirmation page when enabled.
func (h *Handler) PayHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	gw, err := h.provider.Gateway(ctx)
	if err != nil {
		logger.FromCtx(ctx).Error("Payment gateway unavailable", zap.Error(err))
		http.Redirect(w, r, h.orders.CheckoutURL(), http.StatusFound)
		return
	}

	result, err := gw.CreateInvoice(ctx, parseOrderID(r.FormValue("order_id")))
	if err != nil {
		http.Redirect(w, r, h.orders.CheckoutURL(), http.StatusFound)
		return
	}

	if result.Interim {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprintf(w, interimPage,
			html.EscapeString(result.Instructions),
			result.RedirectURL,
			result.DelaySeconds*1000,
		)
		return
	}

	http.Redirect(w, r, result.RedirectURL, http.StatusFound)
}

// CallbackHandler receives the provider's redirect carrying orderNumber and
// transactionNo and always terminates in a redirect.
func (h *Handler) CallbackHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	gw, err := h.provider.Gateway(ctx)
	if err != nil {
		logger.FromCtx(ctx).Error("Payment gateway unavailable", zap.Error(err))
		http.Redirect(w, r, h.orders.CheckoutURL(), http.StatusFound)
		return
	}

	in := CallbackInput{
		OrderNumber:   r.FormValue("orderNumber"),
		TransactionNo: r.FormValue("transactionNo"),
	}

	redirectURL, _ := gw.HandleCallback(ctx, in)
	http.Redirect(w, r, redirectURL, http.StatusFound)
}

// FieldsHandler serves the checkout description block for this method.
func (h *Handler) FieldsHandler(w http.ResponseWriter, r *http.Request) {
	gw, err := h.provider.Gateway(r.Context())
	if err != nil {
		http.Error(w, "payment method unavailable", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, gw.RenderFields())
}

func parseOrderID(raw string) uint {
	id, err := strconv.ParseUint(utils.SanitizeText(raw), 10, 64)
	if err != nil {
		return 0
	}
	return uint(id)
}

const interimPage = `<!DOCTYPE html>
<html>
<body>
<p>%s</p>
<script>setTimeout(function() {window.location.href = %q;}, %d);</script>
</body>
</html>
`
