package user

import (
	"context"
	"fmt"

	"landa-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	Register(ctx context.Context, params CreateUserParams) (string, User, error)
	Login(ctx context.Context, email, password string) (string, User, error)
	GetProfile(ctx context.Context, userID int64) (User, error)
	UpdateProfile(ctx context.Context, params UpdateProfileParams) (User, error)
	ChangePassword(ctx context.Context, userID int64, current, next string) error
	IsBlocked(ctx context.Context, userID int64) (bool, error)
	ListUsers(ctx context.Context, opts ListUsersOptions) ([]User, int, error)
	SetBlocked(ctx context.Context, userID int64, blocked bool) error
}

type service struct {
	repo      Repository
	jwtSecret string
}

func NewService(repo Repository, jwtSecret string) Service {
	return &service{repo: repo, jwtSecret: jwtSecret}
}

func (s *service) Register(ctx context.Context, params CreateUserParams) (string, User, error) {
	log := logger.FromCtx(ctx)

	hashed, err := HashPassword(params.Password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return "", User{}, err
	}
	params.Password = hashed

	u, err := s.repo.Create(ctx, params)
	if err != nil {
		log.Error("failed to create user", zap.String("email", params.Email), zap.Error(err))
		return "", User{}, err
	}

	token, err := GenerateJWT(u.ID, string(u.Role), u.Email, s.jwtSecret)
	if err != nil {
		log.Error("failed to generate jwt", zap.String("user_id", fmt.Sprint(u.ID)), zap.Error(err))
		return "", User{}, err
	}

	log.Info("register service completed",
		zap.String("user_id", fmt.Sprint(u.ID)),
		zap.String("email", params.Email),
	)

	return token, u, nil
}

func (s *service) Login(ctx context.Context, email, password string) (string, User, error) {
	log := logger.FromCtx(ctx)

	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		log.Info("login failed: email not found", zap.String("email", email))
		return "", User{}, ErrInvalidCredentials
	}

	if !CheckPasswordHash(password, u.Password) {
		log.Info("login failed: password mismatch", zap.String("email", email))
		return "", User{}, ErrInvalidCredentials
	}

	if u.IsBlocked {
		return "", User{}, ErrUserBlocked
	}

	token, err := GenerateJWT(u.ID, string(u.Role), u.Email, s.jwtSecret)
	return token, u, err
}

func (s *service) GetProfile(ctx context.Context, userID int64) (User, error) {
	return s.repo.FindByID(ctx, userID)
}

func (s *service) UpdateProfile(ctx context.Context, params UpdateProfileParams) (User, error) {
	return s.repo.UpdateProfile(ctx, params)
}

func (s *service) ChangePassword(ctx context.Context, userID int64, current, next string) error {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if !CheckPasswordHash(current, u.Password) {
		return ErrWrongPassword
	}

	hashed, err := HashPassword(next)
	if err != nil {
		return err
	}

	return s.repo.UpdatePassword(ctx, userID, hashed)
}

func (s *service) IsBlocked(ctx context.Context, userID int64) (bool, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return false, err
	}
	return u.IsBlocked, nil
}

func (s *service) ListUsers(ctx context.Context, opts ListUsersOptions) ([]User, int, error) {
	return s.repo.List(ctx, opts)
}

func (s *service) SetBlocked(ctx context.Context, userID int64, blocked bool) error {
	return s.repo.SetBlocked(ctx, userID, blocked)
}
