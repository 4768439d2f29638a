package service

import "context"

// CheckoutOrder is what the gateway needs to open a hosted checkout page.
type CheckoutOrder struct {
	OrderID       string
	Amount        float64
	Currency      string
	ItemName      string
	CustomerName  string
	CustomerEmail string
}

// CheckoutSession is the gateway's answer: where to send the user.
type CheckoutSession struct {
	Token       string
	RedirectURL string
}

// TransactionStatus is the gateway-side view of an order, normalized so the
// reconciler never has to know processor-specific status strings.
type TransactionStatus struct {
	OrderID    string
	Paid       bool
	GatewayRef string
	RawStatus  string
}

// Gateway abstracts the payment processor. The production implementation
// talks to Midtrans; tests substitute a stub.
type Gateway interface {
	CreateCheckoutSession(ctx context.Context, order CheckoutOrder) (*CheckoutSession, error)
	CheckTransaction(ctx context.Context, orderID string) (*TransactionStatus, error)
}
