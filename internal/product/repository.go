package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"ebuy-be/internal/logger"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	List(ctx context.Context, filters Filters, page, limit int32) ([]*Product, int64, error)
	ListBySeller(ctx context.Context, opts SellerListOptions) ([]*Product, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Product, error)
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
	SetStatus(ctx context.Context, id uuid.UUID, status Status) (*Product, error)
	IncrementViews(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const productColumns = `
	p.id, p.seller_id, p.title, p.description, p.price, p.quantity,
	p.condition, p.category, p.images, p.status, p.views,
	p.created_at, p.updated_at,
	u.username, u.email
`

func scanProduct(row interface{ Scan(...any) error }) (*Product, error) {
	var p Product
	err := row.Scan(
		&p.ID, &p.SellerID, &p.Title, &p.Description, &p.Price, &p.Quantity,
		&p.Condition, &p.Category, pq.Array(&p.Images), &p.Status, &p.Views,
		&p.CreatedAt, &p.UpdatedAt,
		&p.SellerUsername, &p.SellerEmail,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) List(
	ctx context.Context,
	filters Filters,
	page, limit int32,
) ([]*Product, int64, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListProducts"),
		zap.Int32("page", page),
		zap.Int32("limit", limit),
	)

	start := time.Now()

	// ---------- where ----------
	where := []string{}
	args := []any{}

	if filters.Status != nil {
		where = append(where, fmt.Sprintf("p.status = $%d", len(args)+1))
		args = append(args, *filters.Status)
	} else {
		// the public catalog only ever shows active listings
		where = append(where, fmt.Sprintf("p.status = $%d", len(args)+1))
		args = append(args, StatusActive)
	}

	if filters.Category != nil && *filters.Category != "" {
		where = append(where, fmt.Sprintf("p.category = $%d", len(args)+1))
		args = append(args, *filters.Category)
	}

	if filters.Condition != nil && *filters.Condition != "" {
		where = append(where, fmt.Sprintf("p.condition = $%d", len(args)+1))
		args = append(args, *filters.Condition)
	}

	if filters.MinPrice != nil {
		where = append(where, fmt.Sprintf("p.price >= $%d", len(args)+1))
		args = append(args, *filters.MinPrice)
	}

	if filters.MaxPrice != nil {
		where = append(where, fmt.Sprintf("p.price <= $%d", len(args)+1))
		args = append(args, *filters.MaxPrice)
	}

	if filters.Search != nil && *filters.Search != "" {
		where = append(where, fmt.Sprintf(
			"(p.title ILIKE $%d OR p.description ILIKE $%d)",
			len(args)+1, len(args)+1,
		))
		args = append(args, "%"+*filters.Search+"%")
	}

	whereClause := strings.Join(where, " AND ")

	// ---------- count ----------
	var total int64
	countQuery := `SELECT COUNT(*) FROM products p WHERE ` + whereClause
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		log.Error("count query failed", zap.Error(err))
		return nil, 0, err
	}

	// ---------- page ----------
	offset := (page - 1) * limit

	query := `
		SELECT ` + productColumns + `
		FROM products p
		JOIN users u ON u.id = p.seller_id
		WHERE ` + whereClause + `
		ORDER BY p.created_at DESC
		LIMIT $` + fmt.Sprint(len(args)+1) + ` OFFSET $` + fmt.Sprint(len(args)+2)

	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("query failed", zap.Error(err), zap.Duration("duration", time.Since(start)))
		return nil, 0, err
	}
	defer rows.Close()

	products := make([]*Product, 0, limit)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, 0, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		log.Error("rows iteration failed", zap.Error(err))
		return nil, 0, err
	}

	log.Debug("query success",
		zap.Int("rows", len(products)),
		zap.Int64("total", total),
		zap.Duration("duration", time.Since(start)),
	)

	return products, total, nil
}

func (r *repository) ListBySeller(
	ctx context.Context,
	opts SellerListOptions,
) ([]*Product, int64, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListBySeller"),
		zap.Uint("seller_id", opts.SellerID),
	)

	where := []string{"p.seller_id = $1"}
	args := []any{opts.SellerID}

	if opts.Status != nil && *opts.Status != "" {
		where = append(where, fmt.Sprintf("p.status = $%d", len(args)+1))
		args = append(args, *opts.Status)
	}

	whereClause := strings.Join(where, " AND ")

	var total int64
	countQuery := `SELECT COUNT(*) FROM products p WHERE ` + whereClause
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		log.Error("count query failed", zap.Error(err))
		return nil, 0, err
	}

	orderBy := "p.created_at DESC"
	switch opts.SortBy {
	case "oldest":
		orderBy = "p.created_at ASC"
	case "price-high":
		orderBy = "p.price DESC"
	case "price-low":
		orderBy = "p.price ASC"
	case "views":
		orderBy = "p.views DESC"
	}

	offset := (opts.Page - 1) * opts.Limit

	query := `
		SELECT ` + productColumns + `
		FROM products p
		JOIN users u ON u.id = p.seller_id
		WHERE ` + whereClause + `
		ORDER BY ` + orderBy + `
		LIMIT $` + fmt.Sprint(len(args)+1) + ` OFFSET $` + fmt.Sprint(len(args)+2)

	args = append(args, opts.Limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, 0, err
	}
	defer rows.Close()

	products := make([]*Product, 0, opts.Limit)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, 0, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products p
		JOIN users u ON u.id = p.seller_id
		WHERE p.id = $1
	`

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("failed to fetch product",
			zap.String("product_id", id.String()),
			zap.Error(err),
		)
		return nil, err
	}

	return p, nil
}

func (r *repository) Create(ctx context.Context, p *Product) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateProduct"),
		zap.String("product_id", p.ID.String()),
		zap.Uint("seller_id", p.SellerID),
	)

	const q = `
		INSERT INTO products (
			id, seller_id, title, description, price, quantity,
			condition, category, images, status
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, q,
		p.ID, p.SellerID, p.Title, p.Description, p.Price, p.Quantity,
		p.Condition, p.Category, pq.Array(p.Images), p.Status,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		log.Error("insert failed", zap.Error(err))
		return err
	}

	log.Info("product created")
	return nil
}

func (r *repository) Update(
	ctx context.Context,
	id uuid.UUID,
	input UpdateProductInput,
) (*Product, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "UpdateProduct"),
		zap.String("product_id", id.String()),
	)

	set := []string{"updated_at = NOW()"}
	args := []any{}

	addSet := func(column string, value any) {
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)+1))
		args = append(args, value)
	}

	if input.Title != nil {
		addSet("title", *input.Title)
	}
	if input.Description != nil {
		addSet("description", *input.Description)
	}
	if input.Price != nil {
		addSet("price", *input.Price)
	}
	if input.Quantity != nil {
		addSet("quantity", *input.Quantity)
	}
	if input.Condition != nil {
		addSet("condition", *input.Condition)
	}
	if input.Category != nil {
		addSet("category", *input.Category)
	}
	if input.Images != nil {
		addSet("images", pq.Array(input.Images))
	}
	if input.Status != nil {
		addSet("status", *input.Status)
	}

	query := `
		UPDATE products p
		SET ` + strings.Join(set, ", ") + `
		FROM users u
		WHERE p.id = $` + fmt.Sprint(len(args)+1) + ` AND u.id = p.seller_id
		RETURNING ` + productColumns

	args = append(args, id)

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		log.Error("update failed", zap.Error(err))
		return nil, err
	}

	log.Info("product updated")
	return p, nil
}

// Delete removes the product and any cart lines referencing it in one
// transaction. Products already referenced by order lines cannot be
// deleted; the caller should deactivate instead.
func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "DeleteProduct"),
		zap.String("product_id", id.String()),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM cart_items WHERE product_id = $1`, id); err != nil {
		log.Error("failed to clear cart references", zap.Error(err))
		return err
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == PgForeignKeyViolation {
			return ErrProductInOrders
		}
		log.Error("delete failed", zap.Error(err))
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrProductNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit product delete: %w", err)
	}

	log.Info("product deleted")
	return nil
}

func (r *repository) SetStatus(
	ctx context.Context,
	id uuid.UUID,
	status Status,
) (*Product, error) {

	query := `
		UPDATE products p
		SET status = $1, updated_at = NOW()
		FROM users u
		WHERE p.id = $2 AND u.id = p.seller_id
		RETURNING ` + productColumns

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, status, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("failed to set product status",
			zap.String("product_id", id.String()),
			zap.Error(err),
		)
		return nil, err
	}

	return p, nil
}

func (r *repository) IncrementViews(
	ctx context.Context,
	id uuid.UUID,
) error {

	const q = `
		UPDATE products
		SET views = views + 1
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, q, id)
	return err
}
