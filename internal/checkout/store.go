package checkout

import (
	"context"

	"ebuy-be/internal/address"
	"ebuy-be/internal/order"
	"ebuy-be/internal/product"

	"github.com/google/uuid"
)

// Store runs a checkout as one transaction: either every mutation in
// fn lands, or none do.
type Store interface {
	RunInTx(ctx context.Context, fn func(tx Tx) error) error
}

// Tx is the data surface a checkout needs inside its transaction.
// Product reads take row locks so concurrent checkouts serialize on
// shared listings.
type Tx interface {
	GetCartWithItems(ctx context.Context, userID uint) (uuid.UUID, []CartLine, error)
	GetAddress(ctx context.Context, addressID uuid.UUID, userID uint) (*address.Address, error)
	GetProductForUpdate(ctx context.Context, productID uuid.UUID) (*product.Product, error)
	UpdateProductStock(ctx context.Context, productID uuid.UUID, quantity int, status product.Status) error
	CreateOrder(ctx context.Context, o *order.Order) error
	ClearCart(ctx context.Context, cartID uuid.UUID) error
}
