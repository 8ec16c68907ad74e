package product

import (
	"context"

	"ebuy-be/internal/logger"
	"ebuy-be/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context, filters Filters, page, limit int32) (*ListResult, error)
	ListBySeller(ctx context.Context, opts SellerListOptions) (*ListResult, error)
	Get(ctx context.Context, id uuid.UUID) (*Product, error)
	Create(ctx context.Context, sellerID uint, input CreateProductInput) (*Product, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Deactivate(ctx context.Context, id uuid.UUID) (*Product, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func normalizePage(page, limit int32) (int32, int32) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	} else if limit > 100 {
		limit = 100
	}
	return page, limit
}

func lastPage(total int64, limit int32) int32 {
	if total == 0 {
		return 1
	}
	return int32((total + int64(limit) - 1) / int64(limit))
}

func (s *service) List(
	ctx context.Context,
	filters Filters,
	page, limit int32,
) (*ListResult, error) {

	page, limit = normalizePage(page, limit)

	products, total, err := s.repo.List(ctx, filters, page, limit)
	if err != nil {
		return nil, err
	}

	return &ListResult{
		Products: products,
		Total:    total,
		Page:     page,
		LastPage: lastPage(total, limit),
	}, nil
}

func (s *service) ListBySeller(
	ctx context.Context,
	opts SellerListOptions,
) (*ListResult, error) {

	opts.Page, opts.Limit = normalizePage(opts.Page, opts.Limit)

	products, total, err := s.repo.ListBySeller(ctx, opts)
	if err != nil {
		return nil, err
	}

	return &ListResult{
		Products: products,
		Total:    total,
		Page:     opts.Page,
		LastPage: lastPage(total, opts.Limit),
	}, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Sellers browsing their own listing do not bump the view count.
	if viewerID, ok := utils.GetUserIDFromContext(ctx); !ok || viewerID != p.SellerID {
		if err := s.repo.IncrementViews(ctx, id); err == nil {
			p.Views++
		}
	}

	return p, nil
}

func (s *service) Create(
	ctx context.Context,
	sellerID uint,
	input CreateProductInput,
) (*Product, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("service", "Product"),
		zap.String("method", "Create"),
		zap.Uint("seller_id", sellerID),
	)

	p := &Product{
		ID:          uuid.New(),
		SellerID:    sellerID,
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		Quantity:    input.Quantity,
		Condition:   input.Condition,
		Category:    input.Category,
		Images:      input.Images,
		Status:      StatusActive,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		log.Error("failed to create product", zap.Error(err))
		return nil, err
	}

	log.Info("listing created", zap.String("product_id", p.ID.String()))
	return p, nil
}

func (s *service) Update(
	ctx context.Context,
	id uuid.UUID,
	input UpdateProductInput,
) (*Product, error) {

	userID, _ := utils.GetUserIDFromContext(ctx)

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.SellerID != userID {
		return nil, ErrNotOwner
	}

	return s.repo.Update(ctx, id, input)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	userID, _ := utils.GetUserIDFromContext(ctx)

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.SellerID != userID {
		return ErrNotOwner
	}

	return s.repo.Delete(ctx, id)
}

func (s *service) Deactivate(ctx context.Context, id uuid.UUID) (*Product, error) {
	userID, _ := utils.GetUserIDFromContext(ctx)

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.SellerID != userID {
		return nil, ErrNotOwner
	}

	return s.repo.SetStatus(ctx, id, StatusInactive)
}
