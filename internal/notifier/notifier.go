package notifier

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Line struct {
	Title    string
	Price    decimal.Decimal
	Quantity int
}

// OrderEmail carries everything needed to confirm one order to both
// parties.
type OrderEmail struct {
	OrderID     uuid.UUID
	BuyerEmail  string
	BuyerName   string
	SellerEmail string
	SellerName  string
	TotalAmount decimal.Decimal
	Items       []Line
}

type Notifier interface {
	SendOrderConfirmation(ctx context.Context, email OrderEmail) error
}

// Noop is used in tests and when SMTP is not configured.
type Noop struct{}

func (Noop) SendOrderConfirmation(context.Context, OrderEmail) error { return nil }
