package user

import (
	"context"
	"database/sql"
	"fmt"

	"landa-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

// PgUniqueViolation is the Postgres error code for unique constraint violations.
const PgUniqueViolation = "23505"

type Repository interface {
	Create(ctx context.Context, params CreateUserParams) (User, error)
	FindByEmail(ctx context.Context, email string) (User, error)
	FindByID(ctx context.Context, id int64) (User, error)
	UpdateProfile(ctx context.Context, params UpdateProfileParams) (User, error)
	UpdatePassword(ctx context.Context, id int64, hashed string) error
	List(ctx context.Context, opts ListUsersOptions) ([]User, int, error)
	SetBlocked(ctx context.Context, id int64, blocked bool) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const userColumns = `
	id, name, email, password, role, is_blocked,
	address, phone, profile_image, business_name, earnings,
	created_at, updated_at
`

func scanUser(row interface{ Scan(...any) error }) (User, error) {
	var u User
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.Password, &u.Role, &u.IsBlocked,
		&u.Address, &u.Phone, &u.ProfileImage, &u.BusinessName, &u.Earnings,
		&u.CreatedAt, &u.UpdatedAt,
	)
	return u, err
}

func (r *repository) Create(ctx context.Context, params CreateUserParams) (User, error) {
	log := logger.FromCtx(ctx)

	u, err := scanUser(r.db.QueryRowContext(ctx, `
		INSERT INTO users (name, email, password)
		VALUES ($1, $2, $3)
		RETURNING `+userColumns,
		params.Name, params.Email, params.Password,
	))

	if err != nil {
		if pErr, ok := err.(*pq.Error); ok && string(pErr.Code) == PgUniqueViolation {
			return User{}, ErrEmailExists
		}
		log.Error("db: failed to insert user",
			zap.String("email", params.Email),
			zap.Error(err),
		)
		return User{}, err
	}

	return u, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email,
	))
	if err == sql.ErrNoRows {
		return User{}, ErrUserNotFound
	}
	return u, err
}

func (r *repository) FindByID(ctx context.Context, id int64) (User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id,
	))
	if err == sql.ErrNoRows {
		return User{}, ErrUserNotFound
	}
	return u, err
}

func (r *repository) UpdateProfile(ctx context.Context, params UpdateProfileParams) (User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, `
		UPDATE users
		SET name = COALESCE($2, name),
		    address = COALESCE($3, address),
		    phone = COALESCE($4, phone),
		    profile_image = COALESCE($5, profile_image),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING `+userColumns,
		params.UserID, params.Name, params.Address, params.Phone, params.ProfileImage,
	))
	if err == sql.ErrNoRows {
		return User{}, ErrUserNotFound
	}
	return u, err
}

func (r *repository) UpdatePassword(ctx context.Context, id int64, hashed string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET password = $2, updated_at = NOW()
		WHERE id = $1
	`, id, hashed)
	if err != nil {
		return err
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (r *repository) List(ctx context.Context, opts ListUsersOptions) ([]User, int, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "List"),
	)

	limit := opts.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	page := opts.Page
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * limit

	where := "TRUE"
	args := []any{}
	if opts.Role != nil {
		where = "role = $1"
		args = append(args, *opts.Role)
	}

	var total int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE `+where, args...,
	).Scan(&total); err != nil {
		log.Error("count query failed", zap.Error(err))
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT %s FROM users
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, userColumns, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, 0, err
	}
	defer rows.Close()

	users := make([]User, 0, limit)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, 0, err
		}
		users = append(users, u)
	}

	return users, total, rows.Err()
}

func (r *repository) SetBlocked(ctx context.Context, id int64, blocked bool) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET is_blocked = $2, updated_at = NOW()
		WHERE id = $1
	`, id, blocked)
	if err != nil {
		return err
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}
