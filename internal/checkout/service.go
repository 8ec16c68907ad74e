package checkout

import (
	"context"
	"errors"
	"time"

	"ebuy-be/internal/logger"
	"ebuy-be/internal/metrics"
	"ebuy-be/internal/notifier"
	"ebuy-be/internal/order"
	"ebuy-be/internal/product"
	"ebuy-be/internal/utils"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Service interface {
	Checkout(ctx context.Context, addressID uuid.UUID) ([]*OrderSummary, error)
}

type service struct {
	store    Store
	notifier notifier.Notifier
	timeout  time.Duration
}

func NewService(store Store, n notifier.Notifier, timeout time.Duration) Service {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &service{store: store, notifier: n, timeout: timeout}
}

// sellerGroup accumulates one seller's share of the cart while the
// transaction walks the lines.
type sellerGroup struct {
	sellerID    uint
	sellerName  string
	sellerEmail string
	total       decimal.Decimal
	items       []*order.OrderItem
}

// Checkout converts the buyer's whole cart into orders, one per
// seller, inside a single transaction. On any failure nothing is
// kept: no order rows, no stock changes, the cart is untouched.
func (s *service) Checkout(
	ctx context.Context,
	addressID uuid.UUID,
) ([]*OrderSummary, error) {

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("unauthenticated")
	}

	log := logger.FromCtx(ctx).With(
		zap.String("service", "Checkout"),
		zap.Uint("user_id", userID),
		zap.String("address_id", addressID.String()),
	)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	timer := prometheus.NewTimer(metrics.CheckoutDuration)
	defer timer.ObserveDuration()

	var (
		summaries []*OrderSummary
		emails    []notifier.OrderEmail
	)

	err := s.store.RunInTx(ctx, func(tx Tx) error {
		cartID, lines, err := tx.GetCartWithItems(ctx, userID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return ErrCartEmpty
		}

		addr, err := tx.GetAddress(ctx, addressID, userID)
		if err != nil {
			return err
		}

		// Group lines by seller, keeping first-occurrence order so
		// the response is stable for a given cart.
		var sellerIDs []uint
		groups := make(map[uint]*sellerGroup)

		for _, line := range lines {
			p, err := tx.GetProductForUpdate(ctx, line.ProductID)
			if err != nil {
				return err
			}
			if p.Status != product.StatusActive {
				return &UnavailableError{Title: p.Title}
			}
			if p.Quantity < line.Quantity {
				return &ShortfallError{Title: p.Title, Available: p.Quantity}
			}

			remaining := p.Quantity - line.Quantity
			status := product.StatusActive
			if remaining == 0 {
				status = product.StatusSold
			}
			if err := tx.UpdateProductStock(ctx, p.ID, remaining, status); err != nil {
				return err
			}

			g, seen := groups[p.SellerID]
			if !seen {
				g = &sellerGroup{
					sellerID:    p.SellerID,
					sellerName:  p.SellerUsername,
					sellerEmail: p.SellerEmail,
					total:       decimal.Zero,
				}
				groups[p.SellerID] = g
				sellerIDs = append(sellerIDs, p.SellerID)
			}

			g.total = g.total.Add(p.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
			g.items = append(g.items, &order.OrderItem{
				ID:        uuid.New(),
				ProductID: p.ID,
				Title:     p.Title,
				Price:     p.Price,
				Quantity:  line.Quantity,
			})
		}

		buyerEmail := utils.GetUserEmailFromContext(ctx)
		buyerName := utils.GetUsernameFromContext(ctx)

		for _, sellerID := range sellerIDs {
			g := groups[sellerID]

			o := &order.Order{
				ID:           uuid.New(),
				BuyerID:      userID,
				SellerID:     sellerID,
				TotalAmount:  g.total,
				Status:       order.StatusPending,
				ShipFullName: addr.FullName,
				ShipAddress1: addr.Address1,
				ShipAddress2: addr.Address2,
				ShipCity:     addr.City,
				ShipState:    addr.State,
				ShipZipCode:  addr.ZipCode,
				ShipCountry:  addr.Country,
				Items:        g.items,
			}
			if err := tx.CreateOrder(ctx, o); err != nil {
				return err
			}

			summary := &OrderSummary{
				ID:          o.ID,
				SellerID:    sellerID,
				TotalAmount: g.total,
				Status:      string(order.StatusPending),
			}
			emailLines := make([]notifier.Line, 0, len(g.items))
			for _, it := range g.items {
				summary.Items = append(summary.Items, SummaryItem{
					ProductID: it.ProductID,
					Title:     it.Title,
					Price:     it.Price,
					Quantity:  it.Quantity,
				})
				emailLines = append(emailLines, notifier.Line{
					Title:    it.Title,
					Price:    it.Price,
					Quantity: it.Quantity,
				})
			}
			summaries = append(summaries, summary)

			emails = append(emails, notifier.OrderEmail{
				OrderID:     o.ID,
				BuyerEmail:  buyerEmail,
				BuyerName:   buyerName,
				SellerEmail: g.sellerEmail,
				SellerName:  g.sellerName,
				TotalAmount: g.total,
				Items:       emailLines,
			})
		}

		return tx.ClearCart(ctx, cartID)
	})
	if err != nil {
		switch {
		case errors.Is(err, context.DeadlineExceeded):
			metrics.CheckoutAttempts.WithLabelValues("timeout").Inc()
			log.Warn("checkout timed out")
			return nil, ErrCheckoutTimeout
		case isRejection(err):
			metrics.CheckoutAttempts.WithLabelValues("rejected").Inc()
			log.Info("checkout rejected", zap.Error(err))
			return nil, err
		default:
			metrics.CheckoutAttempts.WithLabelValues("error").Inc()
			log.Error("checkout failed", zap.Error(err))
			return nil, err
		}
	}

	metrics.CheckoutAttempts.WithLabelValues("success").Inc()
	metrics.OrdersCreated.Add(float64(len(summaries)))
	log.Info("checkout complete", zap.Int("orders", len(summaries)))

	// The transaction is committed. Email failures are logged and
	// swallowed so they cannot undo a successful checkout.
	for _, email := range emails {
		if err := s.notifier.SendOrderConfirmation(context.WithoutCancel(ctx), email); err != nil {
			log.Warn("order confirmation email failed",
				zap.String("order_id", email.OrderID.String()),
				zap.Error(err),
			)
		}
	}

	return summaries, nil
}

func isRejection(err error) bool {
	var unavailable *UnavailableError
	var shortfall *ShortfallError
	return errors.Is(err, ErrCartEmpty) ||
		errors.Is(err, ErrInvalidAddress) ||
		errors.As(err, &unavailable) ||
		errors.As(err, &shortfall)
}
