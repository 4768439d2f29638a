package service

import (
	"context"
	"fmt"
	"math"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
	"github.com/midtrans/midtrans-go/snap"
)

// MidtransGateway implements Gateway on top of Midtrans Snap (hosted
// checkout) and Core API (status lookups).
type MidtransGateway struct {
	Snap snap.Client
	Core coreapi.Client
}

func NewMidtransGateway(serverKey string, production bool) *MidtransGateway {
	env := midtrans.Sandbox
	if production {
		env = midtrans.Production
	}
	g := &MidtransGateway{}
	g.Snap.New(serverKey, env)
	g.Core.New(serverKey, env)
	return g
}

func (g *MidtransGateway) CreateCheckoutSession(ctx context.Context, order CheckoutOrder) (*CheckoutSession, error) {
	// GrossAmt is whole IDR; fractional amounts are rejected before checkout.
	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  order.OrderID,
			GrossAmt: int64(math.Round(order.Amount)),
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: order.CustomerName,
			Email: order.CustomerEmail,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:    order.OrderID,
				Name:  order.ItemName,
				Price: int64(math.Round(order.Amount)),
				Qty:   1,
			},
		},
	}

	resp, err := g.Snap.CreateTransaction(req)
	if err != nil {
		return nil, fmt.Errorf("snap create transaction: %w", err)
	}
	return &CheckoutSession{
		Token:       resp.Token,
		RedirectURL: resp.RedirectURL,
	}, nil
}

func (g *MidtransGateway) CheckTransaction(ctx context.Context, orderID string) (*TransactionStatus, error) {
	resp, err := g.Core.CheckTransaction(orderID)
	if err != nil {
		return nil, fmt.Errorf("check transaction %s: %w", orderID, err)
	}

	// settlement is final; capture counts only when fraud review accepted it.
	paid := resp.TransactionStatus == "settlement" ||
		(resp.TransactionStatus == "capture" && resp.FraudStatus == "accept")

	return &TransactionStatus{
		OrderID:    resp.OrderID,
		Paid:       paid,
		GatewayRef: resp.TransactionID,
		RawStatus:  resp.TransactionStatus,
	}, nil
}
