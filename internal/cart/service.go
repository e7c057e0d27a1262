package cart

import (
	"context"
	"fmt"

	"souq-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	// Clear empties the customer's active cart, invoked once an order is
	// paid.
	Clear(ctx context.Context, customerID uint) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Clear(ctx context.Context, customerID uint) error {
	count, err := s.repo.Count(ctx, customerID)
	if err != nil {
		return fmt.Errorf("count cart items: %w", err)
	}
	if count == 0 {
		return nil
	}
	if err := s.repo.Clear(ctx, customerID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	logger.FromCtx(ctx).Info("Cart cleared",
		zap.Uint("customer_id", customerID),
		zap.Int("items", count),
	)
	return nil
}
