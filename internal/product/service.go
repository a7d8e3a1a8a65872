package product

import (
	"context"
	"strings"
)

// Service defines the business logic for the catalog.
type Service interface {
	Create(ctx context.Context, params CreateProductParams) (Product, error)
	GetByID(ctx context.Context, id int64) (Product, error)
	List(ctx context.Context, opts ListOptions) ([]Product, int, error)
	Update(ctx context.Context, actorID int64, isAdmin bool, params UpdateProductParams) (Product, error)
	Delete(ctx context.Context, actorID int64, isAdmin bool, productID int64) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, params CreateProductParams) (Product, error) {
	params.Title = strings.TrimSpace(params.Title)
	if params.Title == "" {
		return Product{}, ErrMissingTitle
	}
	if params.Price <= 0 {
		return Product{}, ErrInvalidPrice
	}
	if params.Quantity <= 0 {
		params.Quantity = 1
	}

	return s.repo.Create(ctx, params)
}

func (s *service) GetByID(ctx context.Context, id int64) (Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, opts ListOptions) ([]Product, int, error) {
	return s.repo.List(ctx, opts)
}

func (s *service) Update(ctx context.Context, actorID int64, isAdmin bool, params UpdateProductParams) (Product, error) {
	existing, err := s.repo.GetByID(ctx, params.ProductID)
	if err != nil {
		return Product{}, err
	}

	if !isAdmin && existing.SellerID != actorID {
		return Product{}, ErrNotProductOwner
	}

	if params.Price != nil && *params.Price <= 0 {
		return Product{}, ErrInvalidPrice
	}

	return s.repo.Update(ctx, params)
}

func (s *service) Delete(ctx context.Context, actorID int64, isAdmin bool, productID int64) error {
	existing, err := s.repo.GetByID(ctx, productID)
	if err != nil {
		return err
	}

	if !isAdmin && existing.SellerID != actorID {
		return ErrNotProductOwner
	}

	return s.repo.Delete(ctx, productID)
}
