package order

import "time"

type Status string

const (
	StatusPending Status = "pending"
	// StatusProcessing is the paid state: payment received, order being
	// fulfilled.
	StatusProcessing Status = "processing"
	StatusCancelled  Status = "cancelled"
	StatusFailed     Status = "failed"
)

type Order struct {
	ID            uint
	OrderKey      string
	CustomerID    uint
	BillingName   string
	BillingPhone  string
	BillingEmail  string
	Total         float64
	Currency      string
	Status        Status
	TransactionNo string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Items         []Item
}

type Item struct {
	ID          uint
	OrderID     uint
	Title       string
	Price       float64
	Quantity    int
	Description string
	// Shippable is false for virtual goods that need no delivery.
	Shippable bool
}
