package gateway

import (
	"context"

	"souq-be/internal/order"
	"souq-be/internal/paylink"

	"github.com/stretchr/testify/mock"
)

type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) Get(ctx context.Context, orderID uint) (*order.Order, error) {
	args := m.Called(ctx, orderID)
	if o := args.Get(0); o != nil {
		return o.(*order.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderService) MarkPaid(ctx context.Context, orderID uint, transactionNo string) error {
	return m.Called(ctx, orderID, transactionNo).Error(0)
}

func (m *MockOrderService) UpdateStatus(ctx context.Context, orderID uint, status order.Status) error {
	return m.Called(ctx, orderID, status).Error(0)
}

func (m *MockOrderService) AddNote(ctx context.Context, orderID uint, note string) error {
	return m.Called(ctx, orderID, note).Error(0)
}

func (m *MockOrderService) ReceivedURL(o *order.Order) string {
	return m.Called(o).String(0)
}

func (m *MockOrderService) CheckoutURL() string {
	return m.Called().String(0)
}

type MockCartService struct {
	mock.Mock
}

func (m *MockCartService) Clear(ctx context.Context, customerID uint) error {
	return m.Called(ctx, customerID).Error(0)
}

type MockTokenSource struct {
	mock.Mock
}

func (m *MockTokenSource) Token(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

type MockInvoiceAPI struct {
	mock.Mock
}

func (m *MockInvoiceAPI) AddInvoice(ctx context.Context, token string, req *paylink.InvoiceRequest) (*paylink.InvoiceResponse, error) {
	args := m.Called(ctx, token, req)
	if r := args.Get(0); r != nil {
		return r.(*paylink.InvoiceResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockInvoiceAPI) GetInvoice(ctx context.Context, token, transactionNo string) (*paylink.InvoiceStatus, error) {
	args := m.Called(ctx, token, transactionNo)
	if r := args.Get(0); r != nil {
		return r.(*paylink.InvoiceStatus), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockReporter struct {
	mock.Mock
}

func (m *MockReporter) Report(ctx context.Context, errText, calledURL, method string) {
	m.Called(ctx, errText, calledURL, method)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notice(kind, message string) {
	m.Called(kind, message)
}
