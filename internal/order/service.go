package order

import (
	"context"
	"fmt"

	"souq-be/internal/logger"
	"souq-be/internal/utils"

	"go.uber.org/zap"
)

type Service interface {
	Get(ctx context.Context, orderID uint) (*Order, error)
	// MarkPaid records the payment reference and moves the order to
	// processing. Idempotent: an already-paid order is left untouched.
	MarkPaid(ctx context.Context, orderID uint, transactionNo string) error
	UpdateStatus(ctx context.Context, orderID uint, status Status) error
	AddNote(ctx context.Context, orderID uint, note string) error
	// ReceivedURL is the order-received confirmation page for this order.
	ReceivedURL(o *Order) string
	// CheckoutURL is the generic checkout page customers land on after a
	// failed or unresolved payment.
	CheckoutURL() string
}

type service struct {
	repo     Repository
	storeURL string
}

func NewService(repo Repository, storeURL string) Service {
	return &service{repo: repo, storeURL: storeURL}
}

func (s *service) Get(ctx context.Context, orderID uint) (*Order, error) {
	return s.repo.GetOrder(ctx, orderID)
}

func (s *service) MarkPaid(ctx context.Context, orderID uint, transactionNo string) error {
	log := logger.FromCtx(ctx).With(
		zap.Uint("order_id", orderID),
		zap.String("transaction_no", transactionNo),
	)

	applied, err := s.repo.MarkPaid(ctx, orderID, transactionNo)
	if err != nil {
		return fmt.Errorf("mark order paid: %w", err)
	}
	if !applied {
		log.Info("Order already paid, skipping transition")
		return nil
	}

	log.Info("Order marked paid")
	return s.repo.AddNote(ctx, orderID, "Payment completed via Paylink, transaction "+transactionNo)
}

func (s *service) UpdateStatus(ctx context.Context, orderID uint, status Status) error {
	logger.FromCtx(ctx).Info("Updating order status",
		zap.Uint("order_id", orderID),
		zap.String("status", string(status)),
	)
	return s.repo.UpdateStatus(ctx, orderID, status)
}

func (s *service) AddNote(ctx context.Context, orderID uint, note string) error {
	return s.repo.AddNote(ctx, orderID, note)
}

func (s *service) ReceivedURL(o *Order) string {
	url := fmt.Sprintf("%s/checkout/order-received/%d", s.storeURL, o.ID)
	return utils.AddQueryArg(url, "key", o.OrderKey)
}

func (s *service) CheckoutURL() string {
	return s.storeURL + "/checkout"
}
