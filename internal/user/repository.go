package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"ebuy-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, email, username, hashedPassword string) (User, error)
	FindByEmail(ctx context.Context, email string) (User, error)
	FindByID(ctx context.Context, id uint) (User, error)
	UpdateProfile(ctx context.Context, id uint, username, email *string) (User, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(
	ctx context.Context,
	email, username, hashedPassword string,
) (User, error) {

	const q = `
		INSERT INTO users (email, username, password)
		VALUES ($1, $2, $3)
		RETURNING id, email, username, password, created_at, updated_at
	`

	var u User
	err := r.db.QueryRowContext(ctx, q, email, username, hashedPassword).Scan(
		&u.ID, &u.Email, &u.Username, &u.Password, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to insert user",
			zap.String("email", email),
			zap.Error(err),
		)
		return User{}, err
	}

	return u, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (User, error) {
	const q = `
		SELECT id, email, username, password, created_at, updated_at
		FROM users
		WHERE email = $1
	`

	var u User
	err := r.db.QueryRowContext(ctx, q, email).Scan(
		&u.ID, &u.Email, &u.Username, &u.Password, &u.CreatedAt, &u.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrUserNotFound
	}
	if err != nil {
		return User{}, err
	}

	return u, nil
}

func (r *repository) FindByID(ctx context.Context, id uint) (User, error) {
	const q = `
		SELECT id, email, username, password, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	var u User
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&u.ID, &u.Email, &u.Username, &u.Password, &u.CreatedAt, &u.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrUserNotFound
	}
	if err != nil {
		return User{}, err
	}

	return u, nil
}

func (r *repository) UpdateProfile(
	ctx context.Context,
	id uint,
	username, email *string,
) (User, error) {

	const q = `
		UPDATE users
		SET username = COALESCE($1, username),
		    email = COALESCE($2, email),
		    updated_at = NOW()
		WHERE id = $3
		RETURNING id, email, username, password, created_at, updated_at
	`

	var u User
	err := r.db.QueryRowContext(ctx, q, username, email, id).Scan(
		&u.ID, &u.Email, &u.Username, &u.Password, &u.CreatedAt, &u.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrUserNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("failed to update profile: %w", err)
	}

	return u, nil
}
