package checkout

import (
	"context"
	"database/sql"
	"errors"

	"ebuy-be/internal/address"
	"ebuy-be/internal/logger"
	"ebuy-be/internal/order"
	"ebuy-be/internal/product"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) Store {
	return &store{db: db}
}

func (s *store) RunInTx(ctx context.Context, fn func(tx Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to begin checkout tx", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	if err := fn(&pgTx{tx: tx}); err != nil {
		return err
	}

	return tx.Commit()
}

type pgTx struct {
	tx *sql.Tx
}

func (t *pgTx) GetCartWithItems(
	ctx context.Context,
	userID uint,
) (uuid.UUID, []CartLine, error) {

	const cartQ = `
		SELECT id
		FROM carts
		WHERE user_id = $1
	`

	var cartID uuid.UUID
	err := t.tx.QueryRowContext(ctx, cartQ, userID).Scan(&cartID)
	if errors.Is(err, sql.ErrNoRows) {
		return uuid.Nil, nil, ErrCartEmpty
	}
	if err != nil {
		return uuid.Nil, nil, err
	}

	const itemsQ = `
		SELECT product_id, quantity
		FROM cart_items
		WHERE cart_id = $1
		ORDER BY created_at
	`

	rows, err := t.tx.QueryContext(ctx, itemsQ, cartID)
	if err != nil {
		return uuid.Nil, nil, err
	}
	defer rows.Close()

	var lines []CartLine
	for rows.Next() {
		var line CartLine
		if err := rows.Scan(&line.ProductID, &line.Quantity); err != nil {
			return uuid.Nil, nil, err
		}
		lines = append(lines, line)
	}

	return cartID, lines, rows.Err()
}

func (t *pgTx) GetAddress(
	ctx context.Context,
	addressID uuid.UUID,
	userID uint,
) (*address.Address, error) {

	const q = `
		SELECT id, user_id, full_name, address1, address2,
		       city, state, zip_code, country, is_default, created_at
		FROM shipping_addresses
		WHERE id = $1
		  AND user_id = $2
	`

	var a address.Address
	err := t.tx.QueryRowContext(ctx, q, addressID, userID).Scan(
		&a.ID, &a.UserID, &a.FullName, &a.Address1, &a.Address2,
		&a.City, &a.State, &a.ZipCode, &a.Country, &a.IsDefault, &a.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrInvalidAddress
	}
	if err != nil {
		return nil, err
	}

	return &a, nil
}

// GetProductForUpdate locks the product row for the rest of the
// transaction so concurrent checkouts cannot both pass the stock
// check.
func (t *pgTx) GetProductForUpdate(
	ctx context.Context,
	productID uuid.UUID,
) (*product.Product, error) {

	const q = `
		SELECT p.id, p.seller_id, p.title, p.price, p.quantity, p.status,
		       u.username, u.email
		FROM products p
		JOIN users u ON u.id = p.seller_id
		WHERE p.id = $1
		FOR UPDATE OF p
	`

	var p product.Product
	err := t.tx.QueryRowContext(ctx, q, productID).Scan(
		&p.ID, &p.SellerID, &p.Title, &p.Price, &p.Quantity, &p.Status,
		&p.SellerUsername, &p.SellerEmail,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductGone
	}
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (t *pgTx) UpdateProductStock(
	ctx context.Context,
	productID uuid.UUID,
	quantity int,
	status product.Status,
) error {

	const q = `
		UPDATE products
		SET quantity = $1, status = $2, updated_at = NOW()
		WHERE id = $3
		  AND quantity >= $1
	`

	res, err := t.tx.ExecContext(ctx, q, quantity, status, productID)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrProductGone
	}

	return nil
}

func (t *pgTx) CreateOrder(
	ctx context.Context,
	o *order.Order,
) error {

	const orderQ = `
		INSERT INTO orders (
			id, buyer_id, seller_id, total_amount, status,
			ship_full_name, ship_address1, ship_address2,
			ship_city, ship_state, ship_zip_code, ship_country
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		RETURNING created_at, updated_at
	`

	err := t.tx.QueryRowContext(ctx, orderQ,
		o.ID, o.BuyerID, o.SellerID, o.TotalAmount, o.Status,
		o.ShipFullName, o.ShipAddress1, o.ShipAddress2,
		o.ShipCity, o.ShipState, o.ShipZipCode, o.ShipCountry,
	).Scan(&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return err
	}

	const itemQ = `
		INSERT INTO order_items (id, order_id, product_id, title, price, quantity)
		VALUES ($1,$2,$3,$4,$5,$6)
	`

	for _, it := range o.Items {
		if _, err := t.tx.ExecContext(ctx, itemQ,
			it.ID, o.ID, it.ProductID, it.Title, it.Price, it.Quantity,
		); err != nil {
			return err
		}
	}

	return nil
}

func (t *pgTx) ClearCart(
	ctx context.Context,
	cartID uuid.UUID,
) error {

	const q = `DELETE FROM cart_items WHERE cart_id = $1`

	_, err := t.tx.ExecContext(ctx, q, cartID)
	return err
}
