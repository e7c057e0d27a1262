package order

import (
	"context"
	"database/sql"
	"errors"
)

type Repository interface {
	GetOrder(ctx context.Context, orderID uint) (*Order, error)
	// MarkPaid transitions an order into the processing state and records
	// the payment reference. Returns applied=false when the order was
	// already paid (a safe no-op).
	MarkPaid(ctx context.Context, orderID uint, transactionNo string) (applied bool, err error)
	UpdateStatus(ctx context.Context, orderID uint, status Status) error
	AddNote(ctx context.Context, orderID uint, note string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetOrder(ctx context.Context, orderID uint) (*Order, error) {
	const q = `
		SELECT id, order_key, customer_id, billing_name, billing_phone, billing_email,
		       total, currency, status, COALESCE(transaction_no, ''), created_at, updated_at
		FROM orders
		WHERE id = $1
	`

	var o Order
	err := r.db.QueryRowContext(ctx, q, orderID).Scan(
		&o.ID, &o.OrderKey, &o.CustomerID, &o.BillingName, &o.BillingPhone, &o.BillingEmail,
		&o.Total, &o.Currency, &o.Status, &o.TransactionNo, &o.CreatedAt, &o.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	const itemsQ = `
		SELECT id, order_id, title, price, quantity, COALESCE(description, ''), shippable
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, itemsQ, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.OrderID, &it.Title, &it.Price, &it.Quantity, &it.Description, &it.Shippable); err != nil {
			return nil, err
		}
		o.Items = append(o.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &o, nil
}

func (r *repository) MarkPaid(ctx context.Context, orderID uint, transactionNo string) (bool, error) {
	// The status guard makes re-applying paid a no-op for duplicate
	// callbacks carrying the same transaction number.
	const q = `
		UPDATE orders
		SET status = 'processing', transaction_no = $2, updated_at = NOW()
		WHERE id = $1 AND status <> 'processing'
	`

	res, err := r.db.ExecContext(ctx, q, orderID, transactionNo)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *repository) UpdateStatus(ctx context.Context, orderID uint, status Status) error {
	const q = `
		UPDATE orders SET status = $2, updated_at = NOW() WHERE id = $1
	`

	res, err := r.db.ExecContext(ctx, q, orderID, status)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *repository) AddNote(ctx context.Context, orderID uint, note string) error {
	const q = `
		INSERT INTO order_notes (order_id, note) VALUES ($1, $2)
	`

	_, err := r.db.ExecContext(ctx, q, orderID, note)
	return err
}
