package order

import (
	"context"
	"strings"

	"landa-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	Create(ctx context.Context, userID int64, params CheckoutParams) (*Order, error)
	GetByID(ctx context.Context, orderID, actorID int64, isAdmin bool) (*Order, error)
	ListAll(ctx context.Context, opts ListOptions) ([]Order, int, error)
	ListForUser(ctx context.Context, userID int64) ([]Order, error)
	ListForSeller(ctx context.Context, sellerID int64) ([]Order, error)
	UpdateOverallStatus(ctx context.Context, orderID, actorID int64, isAdmin bool, status OverallStatus) error
	UpdateItemStatus(ctx context.Context, orderID, itemID, actorID int64, isAdmin bool, status ItemStatus) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Create converts the caller's cart into a pending order.
func (s *service) Create(ctx context.Context, userID int64, params CheckoutParams) (*Order, error) {
	if strings.TrimSpace(params.ShippingAddress) == "" {
		return nil, ErrMissingShippingAddress
	}

	return s.repo.Checkout(ctx, userID, params)
}

// GetByID returns the order when the actor owns it or is an admin.
func (s *service) GetByID(ctx context.Context, orderID, actorID int64, isAdmin bool) (*Order, error) {
	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !isAdmin && o.UserID != actorID {
		return nil, ErrUnauthorized
	}

	return o, nil
}

func (s *service) ListAll(ctx context.Context, opts ListOptions) ([]Order, int, error) {
	return s.repo.ListAll(ctx, opts)
}

func (s *service) ListForUser(ctx context.Context, userID int64) ([]Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) ListForSeller(ctx context.Context, sellerID int64) ([]Order, error) {
	return s.repo.ListBySeller(ctx, sellerID)
}

// UpdateOverallStatus sets the order-level status directly. The status is
// not cross-checked against item statuses: an order can be marked Completed
// while items remain Pending.
func (s *service) UpdateOverallStatus(ctx context.Context, orderID, actorID int64, isAdmin bool, status OverallStatus) error {
	if !ValidOverallStatus(status) {
		return ErrInvalidStatus
	}

	if !isAdmin {
		if err := s.requireSellerInOrder(ctx, orderID, actorID); err != nil {
			return err
		}
	}

	return s.repo.UpdateOverallStatus(ctx, orderID, status)
}

// UpdateItemStatus moves one order line to the given status. A transition
// into Completed from any other state credits the seller's earnings by the
// product's current price (not the order-time snapshot). When every item of
// the order is Completed afterwards, the overall status is forced to
// Completed. There is no analogous rule for Cancelled.
func (s *service) UpdateItemStatus(ctx context.Context, orderID, itemID, actorID int64, isAdmin bool, status ItemStatus) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateItemStatus"),
		zap.Int64("order_id", orderID),
		zap.Int64("item_id", itemID),
		zap.String("status", string(status)),
	)

	if !ValidItemStatus(status) {
		return ErrInvalidStatus
	}

	item, err := s.repo.GetItem(ctx, orderID, itemID)
	if err != nil {
		return err
	}

	if !isAdmin && item.SellerID != actorID {
		return ErrUnauthorized
	}

	// Credit exactly once per transition into Completed; a repeated
	// Completed update must not double-credit.
	if status == ItemCompleted && item.Status != ItemCompleted {
		price, err := s.repo.CurrentProductPrice(ctx, item.ProductID)
		if err != nil {
			log.Error("failed to read current product price", zap.Error(err))
			return err
		}

		if err := s.repo.CreditSellerEarnings(ctx, item.SellerID, price); err != nil {
			return err
		}
	}

	if err := s.repo.UpdateItemStatus(ctx, orderID, itemID, status); err != nil {
		return err
	}

	statuses, err := s.repo.GetItemStatuses(ctx, orderID)
	if err != nil {
		return err
	}

	allCompleted := len(statuses) > 0
	for _, st := range statuses {
		if st != ItemCompleted {
			allCompleted = false
			break
		}
	}

	if allCompleted {
		log.Info("all items completed, promoting overall status")
		return s.repo.UpdateOverallStatus(ctx, orderID, OverallCompleted)
	}

	return nil
}

func (s *service) requireSellerInOrder(ctx context.Context, orderID, sellerID int64) error {
	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}

	for _, item := range o.Items {
		if item.SellerID == sellerID {
			return nil
		}
	}

	return ErrUnauthorized
}
