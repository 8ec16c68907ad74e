package user

import (
	"context"
	"strings"

	"ebuy-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	Register(ctx context.Context, input RegisterInput) (string, User, error)
	Login(ctx context.Context, input LoginInput) (string, User, error)
	GetProfile(ctx context.Context, userID uint) (User, error)
	UpdateProfile(ctx context.Context, userID uint, input UpdateProfileInput) (User, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Register(ctx context.Context, input RegisterInput) (string, User, error) {
	log := logger.FromCtx(ctx)

	hashed, err := HashPassword(input.Password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return "", User{}, err
	}

	u, err := s.repo.Create(ctx, input.Email, input.Username, hashed)
	if err != nil {
		if strings.Contains(err.Error(), "users_email_key") {
			return "", User{}, ErrEmailExists
		}
		log.Error("failed to create user", zap.String("email", input.Email), zap.Error(err))
		return "", User{}, err
	}

	token, err := GenerateJWT(u.ID, u.Email, u.Username)
	if err != nil {
		log.Error("failed to generate jwt", zap.Uint("user_id", u.ID), zap.Error(err))
		return "", User{}, err
	}

	log.Info("user registered",
		zap.Uint("user_id", u.ID),
		zap.String("email", u.Email),
	)

	return token, u, nil
}

func (s *service) Login(ctx context.Context, input LoginInput) (string, User, error) {
	log := logger.FromCtx(ctx)

	u, err := s.repo.FindByEmail(ctx, input.Email)
	if err != nil {
		log.Debug("login: email not found", zap.String("email", input.Email))
		return "", User{}, ErrInvalidCredentials
	}

	if !CheckPasswordHash(input.Password, u.Password) {
		log.Debug("login: password mismatch", zap.Uint("user_id", u.ID))
		return "", User{}, ErrInvalidCredentials
	}

	token, err := GenerateJWT(u.ID, u.Email, u.Username)
	return token, u, err
}

func (s *service) GetProfile(ctx context.Context, userID uint) (User, error) {
	return s.repo.FindByID(ctx, userID)
}

func (s *service) UpdateProfile(
	ctx context.Context,
	userID uint,
	input UpdateProfileInput,
) (User, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("service", "User"),
		zap.String("method", "UpdateProfile"),
		zap.Uint("user_id", userID),
	)

	u, err := s.repo.UpdateProfile(ctx, userID, input.Username, input.Email)
	if err != nil {
		log.Error("failed to update profile", zap.Error(err))
		return User{}, err
	}

	log.Info("profile updated")
	return u, nil
}
