package sellerrequest

import (
	"context"
	"database/sql"

	"landa-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	GetByUser(ctx context.Context, userID int64) (*SellerRequest, error)
	GetByID(ctx context.Context, id int64) (*SellerRequest, error)
	Create(ctx context.Context, userID int64, businessName, reason string) (*SellerRequest, error)
	Reapply(ctx context.Context, id int64, businessName, reason string) (*SellerRequest, error)
	ListAll(ctx context.Context) ([]SellerRequest, error)
	SetStatus(ctx context.Context, id int64, status Status) error
	PromoteUser(ctx context.Context, userID int64, businessName string) error
	DemoteUser(ctx context.Context, userID int64) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const requestColumns = `
	id, user_id, business_name, reason, status, created_at, updated_at
`

func scanRequest(row interface{ Scan(...any) error }) (SellerRequest, error) {
	var sr SellerRequest
	err := row.Scan(
		&sr.ID, &sr.UserID, &sr.BusinessName, &sr.Reason, &sr.Status,
		&sr.CreatedAt, &sr.UpdatedAt,
	)
	return sr, err
}

func (r *repository) GetByUser(ctx context.Context, userID int64) (*SellerRequest, error) {
	sr, err := scanRequest(r.db.QueryRowContext(ctx,
		`SELECT `+requestColumns+` FROM seller_requests WHERE user_id = $1`, userID,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sr, nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*SellerRequest, error) {
	sr, err := scanRequest(r.db.QueryRowContext(ctx,
		`SELECT `+requestColumns+` FROM seller_requests WHERE id = $1`, id,
	))
	if err == sql.ErrNoRows {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sr, nil
}

func (r *repository) Create(ctx context.Context, userID int64, businessName, reason string) (*SellerRequest, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
		zap.Int64("user_id", userID),
	)

	sr, err := scanRequest(r.db.QueryRowContext(ctx, `
		INSERT INTO seller_requests (user_id, business_name, reason)
		VALUES ($1, $2, $3)
		RETURNING `+requestColumns,
		userID, businessName, reason,
	))
	if err != nil {
		log.Error("failed to create seller request", zap.Error(err))
		return nil, err
	}

	log.Info("seller request created", zap.Int64("request_id", sr.ID))

	return &sr, nil
}

// Reapply resets a rejected request back to Pending, overwriting the
// business name and reason on the same row.
func (r *repository) Reapply(ctx context.Context, id int64, businessName, reason string) (*SellerRequest, error) {
	sr, err := scanRequest(r.db.QueryRowContext(ctx, `
		UPDATE seller_requests
		SET business_name = $2, reason = $3, status = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING `+requestColumns,
		id, businessName, reason, StatusPending,
	))
	if err == sql.ErrNoRows {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sr, nil
}

func (r *repository) ListAll(ctx context.Context) ([]SellerRequest, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			sr.id, sr.user_id, sr.business_name, sr.reason, sr.status,
			sr.created_at, sr.updated_at,
			u.name, u.email
		FROM seller_requests sr
		JOIN users u ON sr.user_id = u.id
		ORDER BY sr.created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]SellerRequest, 0)
	for rows.Next() {
		var sr SellerRequest
		if err := rows.Scan(
			&sr.ID, &sr.UserID, &sr.BusinessName, &sr.Reason, &sr.Status,
			&sr.CreatedAt, &sr.UpdatedAt,
			&sr.UserName, &sr.UserEmail,
		); err != nil {
			return nil, err
		}
		requests = append(requests, sr)
	}

	return requests, rows.Err()
}

func (r *repository) SetStatus(ctx context.Context, id int64, status Status) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE seller_requests
		SET status = $2, updated_at = NOW()
		WHERE id = $1
	`, id, status)
	if err != nil {
		return err
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrRequestNotFound
	}

	return nil
}

// PromoteUser flips the applicant to the seller role and copies the
// business name onto the user record.
func (r *repository) PromoteUser(ctx context.Context, userID int64, businessName string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET role = 'seller', business_name = $2, updated_at = NOW()
		WHERE id = $1
	`, userID, businessName)
	return err
}

// DemoteUser reverts the applicant to the user role and clears the
// business name.
func (r *repository) DemoteUser(ctx context.Context, userID int64) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET role = 'user', business_name = NULL, updated_at = NOW()
		WHERE id = $1
	`, userID)
	return err
}
