package order

import (
	"context"
	"database/sql"
	"errors"

	"ebuy-be/internal/logger"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Order, error)
	ListByBuyer(ctx context.Context, buyerID uint) ([]*Order, error)
	ListBySeller(ctx context.Context, sellerID uint) ([]*Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from, next Status) (*Order, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const orderColumns = `
	o.id, o.buyer_id, o.seller_id, o.total_amount, o.status,
	o.ship_full_name, o.ship_address1, o.ship_address2,
	o.ship_city, o.ship_state, o.ship_zip_code, o.ship_country,
	o.created_at, o.updated_at,
	b.username, s.username
`

func scanOrder(row interface{ Scan(...any) error }) (*Order, error) {
	var o Order
	err := row.Scan(
		&o.ID, &o.BuyerID, &o.SellerID, &o.TotalAmount, &o.Status,
		&o.ShipFullName, &o.ShipAddress1, &o.ShipAddress2,
		&o.ShipCity, &o.ShipState, &o.ShipZipCode, &o.ShipCountry,
		&o.CreatedAt, &o.UpdatedAt,
		&o.BuyerUsername, &o.SellerUsername,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *repository) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*Order, error) {

	const q = `
		SELECT ` + orderColumns + `
		FROM orders o
		JOIN users b ON b.id = o.buyer_id
		JOIN users s ON s.id = o.seller_id
		WHERE o.id = $1
	`

	o, err := scanOrder(r.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("failed to fetch order",
			zap.String("order_id", id.String()),
			zap.Error(err),
		)
		return nil, err
	}

	if err := r.attachItems(ctx, []*Order{o}); err != nil {
		return nil, err
	}

	return o, nil
}

func (r *repository) ListByBuyer(
	ctx context.Context,
	buyerID uint,
) ([]*Order, error) {

	const q = `
		SELECT ` + orderColumns + `
		FROM orders o
		JOIN users b ON b.id = o.buyer_id
		JOIN users s ON s.id = o.seller_id
		WHERE o.buyer_id = $1
		ORDER BY o.created_at DESC
	`

	return r.list(ctx, q, buyerID)
}

func (r *repository) ListBySeller(
	ctx context.Context,
	sellerID uint,
) ([]*Order, error) {

	const q = `
		SELECT ` + orderColumns + `
		FROM orders o
		JOIN users b ON b.id = o.buyer_id
		JOIN users s ON s.id = o.seller_id
		WHERE o.seller_id = $1
		ORDER BY o.created_at DESC
	`

	return r.list(ctx, q, sellerID)
}

func (r *repository) list(
	ctx context.Context,
	query string,
	userID uint,
) ([]*Order, error) {

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to list orders",
			zap.Uint("user_id", userID),
			zap.Error(err),
		)
		return nil, err
	}
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachItems(ctx, orders); err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *repository) attachItems(ctx context.Context, orders []*Order) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]string, 0, len(orders))
	byID := make(map[uuid.UUID]*Order, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID.String())
		byID[o.ID] = o
	}

	const q = `
		SELECT id, order_id, product_id, title, price, quantity
		FROM order_items
		WHERE order_id = ANY($1::uuid[])
		ORDER BY title
	`

	rows, err := r.db.QueryContext(ctx, q, pq.Array(ids))
	if err != nil {
		logger.FromCtx(ctx).Error("failed to fetch order items", zap.Error(err))
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var it OrderItem
		if err := rows.Scan(
			&it.ID, &it.OrderID, &it.ProductID, &it.Title, &it.Price, &it.Quantity,
		); err != nil {
			return err
		}
		if o, ok := byID[it.OrderID]; ok {
			o.Items = append(o.Items, &it)
		}
	}

	return rows.Err()
}

// UpdateStatus moves the order from one status to another. The
// expected current status is part of the WHERE clause, so a
// concurrent writer that already moved the order makes this a no-op
// instead of overwriting the newer state.
func (r *repository) UpdateStatus(
	ctx context.Context,
	id uuid.UUID,
	from, next Status,
) (*Order, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Order"),
		zap.String("method", "UpdateStatus"),
		zap.String("order_id", id.String()),
		zap.String("status", string(next)),
	)

	const q = `
		UPDATE orders o
		SET status = $1, updated_at = NOW()
		FROM users b, users s
		WHERE o.id = $2
		  AND o.status = $3
		  AND b.id = o.buyer_id
		  AND s.id = o.seller_id
		RETURNING ` + orderColumns + `
	`

	o, err := scanOrder(r.db.QueryRowContext(ctx, q, next, id, from))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, r.statusConflict(ctx, id, next)
	}
	if err != nil {
		log.Error("update failed", zap.Error(err))
		return nil, err
	}

	if err := r.attachItems(ctx, []*Order{o}); err != nil {
		return nil, err
	}

	log.Info("order status updated")
	return o, nil
}

// statusConflict tells an order that vanished apart from one whose
// status moved between the caller's read and the update.
func (r *repository) statusConflict(ctx context.Context, id uuid.UUID, next Status) error {
	var current Status
	err := r.db.QueryRowContext(ctx,
		`SELECT status FROM orders WHERE id = $1`, id,
	).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrOrderNotFound
	}
	if err != nil {
		return err
	}
	return &InvalidTransitionError{From: current, To: next}
}
