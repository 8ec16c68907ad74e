package cart

import (
	"context"
	"errors"

	"ebuy-be/internal/logger"
	"ebuy-be/internal/product"
	"ebuy-be/internal/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Service interface {
	GetCart(ctx context.Context) (*CartView, error)
	AddItem(ctx context.Context, input AddItemInput) (*CartItem, error)
	UpdateItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) (*CartItem, error)
	RemoveItem(ctx context.Context, itemID uuid.UUID) error
	Clear(ctx context.Context) error
}

type service struct {
	repo     Repository
	products product.Repository
}

func NewService(repo Repository, products product.Repository) Service {
	return &service{repo: repo, products: products}
}

func (s *service) GetCart(ctx context.Context) (*CartView, error) {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("unauthenticated")
	}

	c, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.GetItems(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*CartItem{}
	}

	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}

	return &CartView{ID: c.ID, Items: items, Subtotal: subtotal}, nil
}

func (s *service) AddItem(
	ctx context.Context,
	input AddItemInput,
) (*CartItem, error) {

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("unauthenticated")
	}

	productID, err := uuid.Parse(input.ProductID)
	if err != nil {
		return nil, product.ErrProductNotFound
	}

	log := logger.FromCtx(ctx).With(
		zap.String("service", "Cart"),
		zap.String("method", "AddItem"),
		zap.Uint("user_id", userID),
		zap.String("product_id", input.ProductID),
	)

	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p.Status != product.StatusActive {
		return nil, ErrProductUnavailable
	}
	if p.SellerID == userID {
		return nil, ErrOwnListing
	}

	c, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.GetItemByProduct(ctx, c.ID, productID)
	if err != nil && !errors.Is(err, ErrItemNotFound) {
		return nil, err
	}

	if existing != nil {
		newQty := existing.Quantity + input.Quantity
		if newQty > p.Quantity {
			return nil, &StockError{Available: p.Quantity, InCart: existing.Quantity}
		}
		if err := s.repo.UpdateQuantity(ctx, existing.ID, newQty); err != nil {
			return nil, err
		}
		existing.Quantity = newQty
		log.Info("cart item quantity bumped", zap.Int("quantity", newQty))
		return existing, nil
	}

	if input.Quantity > p.Quantity {
		return nil, &StockError{Available: p.Quantity}
	}

	item := &CartItem{
		ID:        uuid.New(),
		CartID:    c.ID,
		ProductID: productID,
		Quantity:  input.Quantity,
	}
	if err := s.repo.AddItem(ctx, item); err != nil {
		return nil, err
	}

	item.Title = p.Title
	item.Price = p.Price
	item.ProductStock = p.Quantity
	item.ProductStatus = string(p.Status)
	item.SellerID = p.SellerID

	log.Info("cart item added", zap.Int("quantity", item.Quantity))
	return item, nil
}

func (s *service) UpdateItemQuantity(
	ctx context.Context,
	itemID uuid.UUID,
	quantity int,
) (*CartItem, error) {

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("unauthenticated")
	}

	item, err := s.repo.GetItemForUser(ctx, itemID, userID)
	if err != nil {
		return nil, err
	}

	if quantity <= 0 {
		if err := s.repo.RemoveItem(ctx, itemID); err != nil {
			return nil, err
		}
		return nil, nil
	}

	if quantity > item.ProductStock {
		return nil, &StockError{Available: item.ProductStock}
	}

	if err := s.repo.UpdateQuantity(ctx, itemID, quantity); err != nil {
		return nil, err
	}

	item.Quantity = quantity
	return item, nil
}

func (s *service) RemoveItem(
	ctx context.Context,
	itemID uuid.UUID,
) error {

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return errors.New("unauthenticated")
	}

	if _, err := s.repo.GetItemForUser(ctx, itemID, userID); err != nil {
		return err
	}

	return s.repo.RemoveItem(ctx, itemID)
}

func (s *service) Clear(ctx context.Context) error {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return errors.New("unauthenticated")
	}

	c, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return err
	}

	return s.repo.Clear(ctx, c.ID)
}
