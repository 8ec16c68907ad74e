package order

import (
	"context"
	"testing"

	"ebuy-be/internal/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetByID(ctx context.Context, id uuid.UUID) (*Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

func (m *MockRepository) ListByBuyer(ctx context.Context, buyerID uint) ([]*Order, error) {
	args := m.Called(ctx, buyerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Order), args.Error(1)
}

func (m *MockRepository) ListBySeller(ctx context.Context, sellerID uint) ([]*Order, error) {
	args := m.Called(ctx, sellerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Order), args.Error(1)
}

func (m *MockRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, next Status) (*Order, error) {
	args := m.Called(ctx, id, from, next)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

func userCtx(userID uint) context.Context {
	return utils.SetUserContext(context.Background(), userID, "user@example.com", "user")
}

func TestStatus_CanTransitionTo(t *testing.T) {
	allowed := []struct{ from, to Status }{
		{StatusPending, StatusConfirmed},
		{StatusPending, StatusCancelled},
		{StatusConfirmed, StatusShipped},
		{StatusConfirmed, StatusCancelled},
		{StatusShipped, StatusDelivered},
	}
	for _, tc := range allowed {
		assert.True(t, tc.from.CanTransitionTo(tc.to),
			"%s -> %s should be allowed", tc.from, tc.to)
	}

	rejected := []struct{ from, to Status }{
		{StatusPending, StatusShipped},
		{StatusPending, StatusDelivered},
		{StatusShipped, StatusCancelled},
		{StatusShipped, StatusConfirmed},
		{StatusDelivered, StatusCancelled},
		{StatusCancelled, StatusPending},
		{StatusDelivered, StatusPending},
	}
	for _, tc := range rejected {
		assert.False(t, tc.from.CanTransitionTo(tc.to),
			"%s -> %s should be rejected", tc.from, tc.to)
	}
}

func TestService_GetOrder_Visibility(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	o := &Order{ID: uuid.New(), BuyerID: 1, SellerID: 2, Status: StatusPending}
	repo.On("GetByID", mock.Anything, o.ID).Return(o, nil)

	t.Run("buyer can view", func(t *testing.T) {
		got, err := svc.GetOrder(userCtx(1), o.ID)
		require.NoError(t, err)
		assert.Equal(t, o.ID, got.ID)
	})

	t.Run("seller can view", func(t *testing.T) {
		_, err := svc.GetOrder(userCtx(2), o.ID)
		assert.NoError(t, err)
	})

	t.Run("third party cannot", func(t *testing.T) {
		_, err := svc.GetOrder(userCtx(3), o.ID)
		assert.ErrorIs(t, err, ErrNotAuthorized)
	})
}

func TestService_UpdateStatus(t *testing.T) {
	t.Run("seller confirms pending order", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		o := &Order{ID: uuid.New(), BuyerID: 1, SellerID: 2, Status: StatusPending}
		updated := &Order{ID: o.ID, BuyerID: 1, SellerID: 2, Status: StatusConfirmed}
		repo.On("GetByID", mock.Anything, o.ID).Return(o, nil)
		repo.On("UpdateStatus", mock.Anything, o.ID, StatusPending, StatusConfirmed).Return(updated, nil)

		got, err := svc.UpdateStatus(userCtx(2), o.ID, StatusConfirmed)
		require.NoError(t, err)
		assert.Equal(t, StatusConfirmed, got.Status)
	})

	t.Run("buyer cannot move status", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		o := &Order{ID: uuid.New(), BuyerID: 1, SellerID: 2, Status: StatusPending}
		repo.On("GetByID", mock.Anything, o.ID).Return(o, nil)

		_, err := svc.UpdateStatus(userCtx(1), o.ID, StatusConfirmed)
		assert.ErrorIs(t, err, ErrNotAuthorized)
		repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("illegal transition rejected", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		o := &Order{ID: uuid.New(), BuyerID: 1, SellerID: 2, Status: StatusDelivered}
		repo.On("GetByID", mock.Anything, o.ID).Return(o, nil)

		_, err := svc.UpdateStatus(userCtx(2), o.ID, StatusCancelled)
		var transitionErr *InvalidTransitionError
		require.ErrorAs(t, err, &transitionErr)
		assert.Equal(t, StatusDelivered, transitionErr.From)
		repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		_, err := svc.UpdateStatus(userCtx(2), uuid.New(), Status("PACKED"))
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})
}

func TestService_ListPurchases(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	orders := []*Order{{ID: uuid.New(), BuyerID: 5}}
	repo.On("ListByBuyer", mock.Anything, uint(5)).Return(orders, nil)

	got, err := svc.ListPurchases(userCtx(5))
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
