package cart

import (
	"context"
	"database/sql"
)

type Repository interface {
	// Clear removes every cart item for the customer.
	Clear(ctx context.Context, customerID uint) error
	Count(ctx context.Context, customerID uint) (int, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Clear(ctx context.Context, customerID uint) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM cart_items WHERE customer_id = $1
	`, customerID)
	return err
}

func (r *repository) Count(ctx context.Context, customerID uint) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM cart_items WHERE customer_id = $1
	`, customerID).Scan(&count)
	return count, err
}
