package cart

import (
	"context"
	"database/sql"
	"errors"

	"ebuy-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repository interface {
	GetOrCreate(ctx context.Context, userID uint) (*Cart, error)
	GetItems(ctx context.Context, cartID uuid.UUID) ([]*CartItem, error)
	GetItemByProduct(ctx context.Context, cartID, productID uuid.UUID) (*CartItem, error)
	GetItemForUser(ctx context.Context, itemID uuid.UUID, userID uint) (*CartItem, error)
	AddItem(ctx context.Context, item *CartItem) error
	UpdateQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error
	RemoveItem(ctx context.Context, itemID uuid.UUID) error
	Clear(ctx context.Context, cartID uuid.UUID) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetOrCreate(
	ctx context.Context,
	userID uint,
) (*Cart, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Cart"),
		zap.String("method", "GetOrCreate"),
		zap.Uint("user_id", userID),
	)

	const get = `
		SELECT id, user_id, created_at
		FROM carts
		WHERE user_id = $1
	`

	var c Cart
	err := r.db.QueryRowContext(ctx, get, userID).
		Scan(&c.ID, &c.UserID, &c.CreatedAt)
	if err == nil {
		return &c, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}

	const create = `
		INSERT INTO carts (id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING id, user_id, created_at
	`

	err = r.db.QueryRowContext(ctx, create, uuid.New(), userID).
		Scan(&c.ID, &c.UserID, &c.CreatedAt)
	if err != nil {
		log.Error("insert failed", zap.Error(err))
		return nil, err
	}

	return &c, nil
}

const itemColumns = `
	ci.id, ci.cart_id, ci.product_id, ci.quantity, ci.created_at,
	p.title, p.price, p.quantity, p.status, p.seller_id
`

func scanItem(row interface{ Scan(...any) error }) (*CartItem, error) {
	var it CartItem
	err := row.Scan(
		&it.ID, &it.CartID, &it.ProductID, &it.Quantity, &it.CreatedAt,
		&it.Title, &it.Price, &it.ProductStock, &it.ProductStatus, &it.SellerID,
	)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *repository) GetItems(
	ctx context.Context,
	cartID uuid.UUID,
) ([]*CartItem, error) {

	const q = `
		SELECT ` + itemColumns + `
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.cart_id = $1
		ORDER BY ci.created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, q, cartID)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to fetch cart items",
			zap.String("cart_id", cartID.String()),
			zap.Error(err),
		)
		return nil, err
	}
	defer rows.Close()

	var items []*CartItem
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}

	return items, rows.Err()
}

func (r *repository) GetItemByProduct(
	ctx context.Context,
	cartID, productID uuid.UUID,
) (*CartItem, error) {

	const q = `
		SELECT ` + itemColumns + `
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.cart_id = $1
		  AND ci.product_id = $2
	`

	it, err := scanItem(r.db.QueryRowContext(ctx, q, cartID, productID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrItemNotFound
	}
	return it, err
}

func (r *repository) GetItemForUser(
	ctx context.Context,
	itemID uuid.UUID,
	userID uint,
) (*CartItem, error) {

	const q = `
		SELECT ` + itemColumns + `
		FROM cart_items ci
		JOIN carts c ON c.id = ci.cart_id
		JOIN products p ON p.id = ci.product_id
		WHERE ci.id = $1
		  AND c.user_id = $2
	`

	it, err := scanItem(r.db.QueryRowContext(ctx, q, itemID, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrItemNotFound
	}
	return it, err
}

func (r *repository) AddItem(
	ctx context.Context,
	item *CartItem,
) error {

	const q = `
		INSERT INTO cart_items (id, cart_id, product_id, quantity)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`

	err := r.db.QueryRowContext(ctx, q,
		item.ID, item.CartID, item.ProductID, item.Quantity,
	).Scan(&item.CreatedAt)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to add cart item",
			zap.String("cart_id", item.CartID.String()),
			zap.String("product_id", item.ProductID.String()),
			zap.Error(err),
		)
		return err
	}

	return nil
}

func (r *repository) UpdateQuantity(
	ctx context.Context,
	itemID uuid.UUID,
	quantity int,
) error {

	const q = `
		UPDATE cart_items
		SET quantity = $1
		WHERE id = $2
	`

	res, err := r.db.ExecContext(ctx, q, quantity, itemID)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrItemNotFound
	}

	return nil
}

func (r *repository) RemoveItem(
	ctx context.Context,
	itemID uuid.UUID,
) error {

	const q = `DELETE FROM cart_items WHERE id = $1`

	res, err := r.db.ExecContext(ctx, q, itemID)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrItemNotFound
	}

	return nil
}

func (r *repository) Clear(
	ctx context.Context,
	cartID uuid.UUID,
) error {

	const q = `DELETE FROM cart_items WHERE cart_id = $1`

	_, err := r.db.ExecContext(ctx, q, cartID)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to clear cart",
			zap.String("cart_id", cartID.String()),
			zap.Error(err),
		)
	}
	return err
}
