package address

import (
	"context"
	"database/sql"
	"errors"

	"ebuy-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repository interface {
	GetByUserID(ctx context.Context, userID uint) ([]*Address, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Address, error)
	Create(ctx context.Context, addr *Address) error
	SetDefault(ctx context.Context, userID uint, addressID uuid.UUID) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const addressColumns = `
	id, user_id, full_name, address1, address2,
	city, state, zip_code, country, is_default, created_at
`

func (r *repository) GetByUserID(
	ctx context.Context,
	userID uint,
) ([]*Address, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Address"),
		zap.String("method", "GetByUserID"),
		zap.Uint("user_id", userID),
	)

	const q = `
		SELECT ` + addressColumns + `
		FROM shipping_addresses
		WHERE user_id = $1
		ORDER BY is_default DESC, created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var res []*Address
	for rows.Next() {
		var a Address
		if err := rows.Scan(
			&a.ID, &a.UserID, &a.FullName, &a.Address1, &a.Address2,
			&a.City, &a.State, &a.ZipCode, &a.Country, &a.IsDefault, &a.CreatedAt,
		); err != nil {
			log.Error("scan failed", zap.Error(err))
			return nil, err
		}
		res = append(res, &a)
	}

	return res, rows.Err()
}

func (r *repository) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*Address, error) {

	const q = `
		SELECT ` + addressColumns + `
		FROM shipping_addresses
		WHERE id = $1
	`

	var a Address
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&a.ID, &a.UserID, &a.FullName, &a.Address1, &a.Address2,
		&a.City, &a.State, &a.ZipCode, &a.Country, &a.IsDefault, &a.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAddressNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("failed to fetch address",
			zap.String("address_id", id.String()),
			zap.Error(err),
		)
		return nil, err
	}

	return &a, nil
}

// Create inserts the address. When it arrives flagged as default the
// previous default is cleared in the same transaction, so the user
// never ends up with two defaults.
func (r *repository) Create(
	ctx context.Context,
	addr *Address,
) error {

	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Address"),
		zap.String("method", "Create"),
		zap.String("address_id", addr.ID.String()),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("begin failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	if addr.IsDefault {
		const clear = `
			UPDATE shipping_addresses
			SET is_default = false
			WHERE user_id = $1
			  AND is_default = true
		`
		if _, err := tx.ExecContext(ctx, clear, addr.UserID); err != nil {
			log.Error("failed to clear previous default", zap.Error(err))
			return err
		}
	}

	const q = `
		INSERT INTO shipping_addresses (
			id, user_id, full_name, address1, address2,
			city, state, zip_code, country, is_default
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING created_at
	`

	err = tx.QueryRowContext(ctx, q,
		addr.ID, addr.UserID, addr.FullName, addr.Address1, addr.Address2,
		addr.City, addr.State, addr.ZipCode, addr.Country, addr.IsDefault,
	).Scan(&addr.CreatedAt)
	if err != nil {
		log.Error("insert failed", zap.Error(err))
		return err
	}

	return tx.Commit()
}

// SetDefault flips the whole set in one statement: the target becomes
// the default, every other address of the user stops being one. The
// EXISTS guard makes an unknown or unowned id match nothing, leaving
// the current default in place.
func (r *repository) SetDefault(
	ctx context.Context,
	userID uint,
	addressID uuid.UUID,
) error {

	const q = `
		UPDATE shipping_addresses
		SET is_default = (id = $2)
		WHERE user_id = $1
		  AND EXISTS (
			SELECT 1 FROM shipping_addresses
			WHERE id = $2 AND user_id = $1
		  )
	`

	res, err := r.db.ExecContext(ctx, q, userID, addressID)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrAddressNotFound
	}

	return nil
}
