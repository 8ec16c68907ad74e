package order

import (
	"context"
	"errors"

	"ebuy-be/internal/logger"
	"ebuy-be/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	GetOrder(ctx context.Context, id uuid.UUID) (*Order, error)
	ListPurchases(ctx context.Context) ([]*Order, error)
	ListSales(ctx context.Context) ([]*Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, next Status) (*Order, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// GetOrder is visible to the two parties of the order only.
func (s *service) GetOrder(ctx context.Context, id uuid.UUID) (*Order, error) {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("unauthenticated")
	}

	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if o.BuyerID != userID && o.SellerID != userID {
		return nil, ErrNotAuthorized
	}

	return o, nil
}

func (s *service) ListPurchases(ctx context.Context) ([]*Order, error) {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("unauthenticated")
	}

	return s.repo.ListByBuyer(ctx, userID)
}

func (s *service) ListSales(ctx context.Context) ([]*Order, error) {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("unauthenticated")
	}

	return s.repo.ListBySeller(ctx, userID)
}

// UpdateStatus walks the lifecycle graph one step. Only the seller
// moves an order, and only along an allowed edge.
func (s *service) UpdateStatus(
	ctx context.Context,
	id uuid.UUID,
	next Status,
) (*Order, error) {

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("unauthenticated")
	}

	if !next.Valid() {
		return nil, ErrInvalidStatus
	}

	log := logger.FromCtx(ctx).With(
		zap.String("service", "Order"),
		zap.String("method", "UpdateStatus"),
		zap.String("order_id", id.String()),
		zap.Uint("user_id", userID),
	)

	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if o.SellerID != userID {
		return nil, ErrNotAuthorized
	}

	if !o.Status.CanTransitionTo(next) {
		log.Warn("rejected status transition",
			zap.String("from", string(o.Status)),
			zap.String("to", string(next)),
		)
		return nil, &InvalidTransitionError{From: o.Status, To: next}
	}

	return s.repo.UpdateStatus(ctx, id, o.Status, next)
}
