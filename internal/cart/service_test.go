package cart

import (
	"context"
	"testing"

	"ebuy-be/internal/product"
	"ebuy-be/internal/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetOrCreate(ctx context.Context, userID uint) (*Cart, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Cart), args.Error(1)
}

func (m *MockRepository) GetItems(ctx context.Context, cartID uuid.UUID) ([]*CartItem, error) {
	args := m.Called(ctx, cartID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*CartItem), args.Error(1)
}

func (m *MockRepository) GetItemByProduct(ctx context.Context, cartID, productID uuid.UUID) (*CartItem, error) {
	args := m.Called(ctx, cartID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*CartItem), args.Error(1)
}

func (m *MockRepository) GetItemForUser(ctx context.Context, itemID uuid.UUID, userID uint) (*CartItem, error) {
	args := m.Called(ctx, itemID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*CartItem), args.Error(1)
}

func (m *MockRepository) AddItem(ctx context.Context, item *CartItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockRepository) UpdateQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error {
	args := m.Called(ctx, itemID, quantity)
	return args.Error(0)
}

func (m *MockRepository) RemoveItem(ctx context.Context, itemID uuid.UUID) error {
	args := m.Called(ctx, itemID)
	return args.Error(0)
}

func (m *MockRepository) Clear(ctx context.Context, cartID uuid.UUID) error {
	args := m.Called(ctx, cartID)
	return args.Error(0)
}

type MockProductRepo struct {
	mock.Mock
}

func (m *MockProductRepo) List(ctx context.Context, f product.Filters, page, limit int32) ([]*product.Product, int64, error) {
	args := m.Called(ctx, f, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*product.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepo) ListBySeller(ctx context.Context, opts product.SellerListOptions) ([]*product.Product, int64, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*product.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*product.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductRepo) Create(ctx context.Context, p *product.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductRepo) Update(ctx context.Context, id uuid.UUID, input product.UpdateProductInput) (*product.Product, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepo) SetStatus(ctx context.Context, id uuid.UUID, status product.Status) (*product.Product, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductRepo) IncrementViews(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func buyerCtx(userID uint) context.Context {
	return utils.SetUserContext(context.Background(), userID, "buyer@example.com", "buyer")
}

func activeProduct(sellerID uint, stock int) *product.Product {
	return &product.Product{
		ID:       uuid.New(),
		SellerID: sellerID,
		Title:    "GTX 1080",
		Price:    decimal.NewFromInt(250),
		Quantity: stock,
		Status:   product.StatusActive,
	}
}

func TestService_AddItem_OwnListingRejected(t *testing.T) {
	repo := new(MockRepository)
	products := new(MockProductRepo)
	svc := NewService(repo, products)
	ctx := buyerCtx(7)

	p := activeProduct(7, 3)
	products.On("GetByID", ctx, p.ID).Return(p, nil)

	_, err := svc.AddItem(ctx, AddItemInput{ProductID: p.ID.String(), Quantity: 1})
	assert.ErrorIs(t, err, ErrOwnListing)
	repo.AssertNotCalled(t, "AddItem", mock.Anything, mock.Anything)
}

func TestService_AddItem_InactiveProduct(t *testing.T) {
	repo := new(MockRepository)
	products := new(MockProductRepo)
	svc := NewService(repo, products)
	ctx := buyerCtx(7)

	p := activeProduct(2, 3)
	p.Status = product.StatusSold
	products.On("GetByID", ctx, p.ID).Return(p, nil)

	_, err := svc.AddItem(ctx, AddItemInput{ProductID: p.ID.String(), Quantity: 1})
	assert.ErrorIs(t, err, ErrProductUnavailable)
}

func TestService_AddItem_NewItem(t *testing.T) {
	repo := new(MockRepository)
	products := new(MockProductRepo)
	svc := NewService(repo, products)
	ctx := buyerCtx(7)

	p := activeProduct(2, 3)
	c := &Cart{ID: uuid.New(), UserID: 7}

	products.On("GetByID", ctx, p.ID).Return(p, nil)
	repo.On("GetOrCreate", ctx, uint(7)).Return(c, nil)
	repo.On("GetItemByProduct", ctx, c.ID, p.ID).Return(nil, ErrItemNotFound)
	repo.On("AddItem", ctx, mock.AnythingOfType("*cart.CartItem")).Return(nil)

	item, err := svc.AddItem(ctx, AddItemInput{ProductID: p.ID.String(), Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, item.Quantity)
	assert.Equal(t, "GTX 1080", item.Title)
	repo.AssertExpectations(t)
}

func TestService_AddItem_StockLimits(t *testing.T) {
	t.Run("new item over stock", func(t *testing.T) {
		repo := new(MockRepository)
		products := new(MockProductRepo)
		svc := NewService(repo, products)
		ctx := buyerCtx(7)

		p := activeProduct(2, 3)
		c := &Cart{ID: uuid.New(), UserID: 7}
		products.On("GetByID", ctx, p.ID).Return(p, nil)
		repo.On("GetOrCreate", ctx, uint(7)).Return(c, nil)
		repo.On("GetItemByProduct", ctx, c.ID, p.ID).Return(nil, ErrItemNotFound)

		_, err := svc.AddItem(ctx, AddItemInput{ProductID: p.ID.String(), Quantity: 4})
		var stockErr *StockError
		require.ErrorAs(t, err, &stockErr)
		assert.Equal(t, "Only 3 items available", stockErr.Error())
	})

	t.Run("existing item at cap", func(t *testing.T) {
		repo := new(MockRepository)
		products := new(MockProductRepo)
		svc := NewService(repo, products)
		ctx := buyerCtx(7)

		p := activeProduct(2, 3)
		c := &Cart{ID: uuid.New(), UserID: 7}
		existing := &CartItem{ID: uuid.New(), CartID: c.ID, ProductID: p.ID, Quantity: 3}
		products.On("GetByID", ctx, p.ID).Return(p, nil)
		repo.On("GetOrCreate", ctx, uint(7)).Return(c, nil)
		repo.On("GetItemByProduct", ctx, c.ID, p.ID).Return(existing, nil)

		_, err := svc.AddItem(ctx, AddItemInput{ProductID: p.ID.String(), Quantity: 1})
		var stockErr *StockError
		require.ErrorAs(t, err, &stockErr)
		assert.Equal(t, "Maximum quantity already in cart", stockErr.Error())
	})

	t.Run("existing item partial headroom", func(t *testing.T) {
		repo := new(MockRepository)
		products := new(MockProductRepo)
		svc := NewService(repo, products)
		ctx := buyerCtx(7)

		p := activeProduct(2, 3)
		c := &Cart{ID: uuid.New(), UserID: 7}
		existing := &CartItem{ID: uuid.New(), CartID: c.ID, ProductID: p.ID, Quantity: 2}
		products.On("GetByID", ctx, p.ID).Return(p, nil)
		repo.On("GetOrCreate", ctx, uint(7)).Return(c, nil)
		repo.On("GetItemByProduct", ctx, c.ID, p.ID).Return(existing, nil)

		_, err := svc.AddItem(ctx, AddItemInput{ProductID: p.ID.String(), Quantity: 2})
		var stockErr *StockError
		require.ErrorAs(t, err, &stockErr)
		assert.Equal(t, "Can only add 1 more item(s)", stockErr.Error())
	})
}

func TestService_AddItem_MergesExisting(t *testing.T) {
	repo := new(MockRepository)
	products := new(MockProductRepo)
	svc := NewService(repo, products)
	ctx := buyerCtx(7)

	p := activeProduct(2, 5)
	c := &Cart{ID: uuid.New(), UserID: 7}
	existing := &CartItem{ID: uuid.New(), CartID: c.ID, ProductID: p.ID, Quantity: 2}

	products.On("GetByID", ctx, p.ID).Return(p, nil)
	repo.On("GetOrCreate", ctx, uint(7)).Return(c, nil)
	repo.On("GetItemByProduct", ctx, c.ID, p.ID).Return(existing, nil)
	repo.On("UpdateQuantity", ctx, existing.ID, 4).Return(nil)

	item, err := svc.AddItem(ctx, AddItemInput{ProductID: p.ID.String(), Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, 4, item.Quantity)
	repo.AssertExpectations(t)
}

func TestService_GetCart_Subtotal(t *testing.T) {
	repo := new(MockRepository)
	products := new(MockProductRepo)
	svc := NewService(repo, products)
	ctx := buyerCtx(7)

	c := &Cart{ID: uuid.New(), UserID: 7}
	items := []*CartItem{
		{ID: uuid.New(), Quantity: 2, Price: decimal.NewFromFloat(99.50)},
		{ID: uuid.New(), Quantity: 1, Price: decimal.NewFromInt(250)},
	}

	repo.On("GetOrCreate", ctx, uint(7)).Return(c, nil)
	repo.On("GetItems", ctx, c.ID).Return(items, nil)

	view, err := svc.GetCart(ctx)
	require.NoError(t, err)
	assert.True(t, view.Subtotal.Equal(decimal.NewFromInt(449)))
}

func TestService_UpdateItemQuantity_OverStock(t *testing.T) {
	repo := new(MockRepository)
	products := new(MockProductRepo)
	svc := NewService(repo, products)
	ctx := buyerCtx(7)

	item := &CartItem{ID: uuid.New(), Quantity: 1, ProductStock: 2}
	repo.On("GetItemForUser", ctx, item.ID, uint(7)).Return(item, nil)

	_, err := svc.UpdateItemQuantity(ctx, item.ID, 5)
	var stockErr *StockError
	require.ErrorAs(t, err, &stockErr)
	repo.AssertNotCalled(t, "UpdateQuantity", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_RemoveItem_NotOwned(t *testing.T) {
	repo := new(MockRepository)
	products := new(MockProductRepo)
	svc := NewService(repo, products)
	ctx := buyerCtx(7)

	id := uuid.New()
	repo.On("GetItemForUser", ctx, id, uint(7)).Return(nil, ErrItemNotFound)

	err := svc.RemoveItem(ctx, id)
	assert.ErrorIs(t, err, ErrItemNotFound)
	repo.AssertNotCalled(t, "RemoveItem", mock.Anything, mock.Anything)
}

func TestService_UpdateItemQuantity_ZeroRemoves(t *testing.T) {
	repo := new(MockRepository)
	products := new(MockProductRepo)
	svc := NewService(repo, products)
	ctx := buyerCtx(7)

	item := &CartItem{ID: uuid.New(), Quantity: 2, ProductStock: 5}
	repo.On("GetItemForUser", ctx, item.ID, uint(7)).Return(item, nil)
	repo.On("RemoveItem", ctx, item.ID).Return(nil)

	got, err := svc.UpdateItemQuantity(ctx, item.ID, 0)
	require.NoError(t, err)
	assert.Nil(t, got)
	repo.AssertExpectations(t)
}
