package cart

import (
	"context"

	"landa-be/internal/product"
	"landa-be/internal/user"
)

// Service defines the business logic for carts.
type Service interface {
	Get(ctx context.Context, userID int64) ([]CartItem, error)
	Add(ctx context.Context, userID int64, role user.Role, productID int64) (*CartItem, error)
	Remove(ctx context.Context, userID, itemID int64) error
	Clear(ctx context.Context, userID int64) error
}

type service struct {
	repo        Repository
	productRepo product.Repository
}

func NewService(repo Repository, productRepo product.Repository) Service {
	return &service{repo: repo, productRepo: productRepo}
}

// Get returns the user's cart. Entries whose product has disappeared or is
// no longer available are pruned before the read, so a stale entry never
// survives a fetch.
func (s *service) Get(ctx context.Context, userID int64) ([]CartItem, error) {
	if _, err := s.repo.PruneStale(ctx, userID); err != nil {
		return nil, err
	}

	return s.repo.GetItems(ctx, userID)
}

// Add appends a product reference to the cart. Admins do not shop, sellers
// do not buy their own listings, and an entry is unique per product.
func (s *service) Add(ctx context.Context, userID int64, role user.Role, productID int64) (*CartItem, error) {
	if role == user.RoleAdmin {
		return nil, ErrAdminCannotShop
	}

	p, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !p.IsAvailable {
		return nil, ErrProductUnavailable
	}
	if p.SellerID == userID {
		return nil, ErrOwnProduct
	}

	existing, err := s.repo.GetItemByUserAndProduct(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrCartItemAlreadyExist
	}

	item, err := s.repo.CreateItem(ctx, userID, productID)
	if err != nil {
		return nil, err
	}

	item.Product = p
	return item, nil
}

func (s *service) Remove(ctx context.Context, userID, itemID int64) error {
	return s.repo.RemoveItem(ctx, userID, itemID)
}

func (s *service) Clear(ctx context.Context, userID int64) error {
	return s.repo.Clear(ctx, userID)
}
