package sellerrequest

import (
	"context"
	"strings"

	"landa-be/internal/logger"
	"landa-be/internal/user"

	"go.uber.org/zap"
)

type Service interface {
	Apply(ctx context.Context, userID int64, role user.Role, businessName, reason string) (*SellerRequest, error)
	Get(ctx context.Context, userID int64) (*SellerRequest, error)
	ListAll(ctx context.Context) ([]SellerRequest, error)
	Review(ctx context.Context, requestID int64, status Status) (*SellerRequest, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Apply files a seller application for a regular user. A previously rejected
// request is overwritten in place and reset to Pending; a pending or
// approved request blocks a new application.
func (s *service) Apply(ctx context.Context, userID int64, role user.Role, businessName, reason string) (*SellerRequest, error) {
	if role != user.RoleUser {
		return nil, ErrOnlyUsersMayApply
	}

	businessName = strings.TrimSpace(businessName)
	reason = strings.TrimSpace(reason)
	if businessName == "" || reason == "" {
		return nil, ErrMissingFields
	}

	existing, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if existing == nil {
		return s.repo.Create(ctx, userID, businessName, reason)
	}

	if existing.Status != StatusRejected {
		return nil, ErrRequestExists
	}

	return s.repo.Reapply(ctx, existing.ID, businessName, reason)
}

func (s *service) Get(ctx context.Context, userID int64) (*SellerRequest, error) {
	sr, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if sr == nil {
		return nil, ErrRequestNotFound
	}
	return sr, nil
}

func (s *service) ListAll(ctx context.Context) ([]SellerRequest, error) {
	return s.repo.ListAll(ctx)
}

// Review resolves a request. Approval promotes the applicant to seller and
// copies the business name onto the user record; rejection reverts the
// applicant to the user role and clears the business name, whatever role
// they held before.
func (s *service) Review(ctx context.Context, requestID int64, status Status) (*SellerRequest, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Review"),
		zap.Int64("request_id", requestID),
		zap.String("status", string(status)),
	)

	if status != StatusApproved && status != StatusRejected {
		return nil, ErrInvalidStatus
	}

	sr, err := s.repo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.SetStatus(ctx, requestID, status); err != nil {
		return nil, err
	}

	switch status {
	case StatusApproved:
		if err := s.repo.PromoteUser(ctx, sr.UserID, sr.BusinessName); err != nil {
			log.Error("failed to promote user", zap.Error(err))
			return nil, err
		}
	case StatusRejected:
		if err := s.repo.DemoteUser(ctx, sr.UserID); err != nil {
			log.Error("failed to demote user", zap.Error(err))
			return nil, err
		}
	}

	sr.Status = status
	log.Info("seller request reviewed", zap.Int64("user_id", sr.UserID))

	return sr, nil
}
