package product

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"landa-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, params CreateProductParams) (Product, error)
	GetByID(ctx context.Context, id int64) (Product, error)
	List(ctx context.Context, opts ListOptions) ([]Product, int, error)
	Update(ctx context.Context, params UpdateProductParams) (Product, error)
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const productJoin = `
	SELECT
		p.id, p.title, p.description, p.price, p.category, p.image,
		p.seller_id, COALESCE(u.name, 'UNKNOWN'), p.quantity, p.is_available,
		p.created_at, p.updated_at
	FROM products p
	LEFT JOIN users u ON p.seller_id = u.id
`

func scanProduct(row interface{ Scan(...any) error }) (Product, error) {
	var p Product
	err := row.Scan(
		&p.ID, &p.Title, &p.Description, &p.Price, &p.Category, &p.Image,
		&p.SellerID, &p.SellerName, &p.Quantity, &p.IsAvailable,
		&p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

func (r *repository) Create(ctx context.Context, params CreateProductParams) (Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
		zap.Int64("seller_id", params.SellerID),
	)

	var id int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO products (title, description, price, category, image, seller_id, quantity)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`,
		params.Title, params.Description, params.Price,
		params.Category, params.Image, params.SellerID, params.Quantity,
	).Scan(&id)
	if err != nil {
		log.Error("failed to create product", zap.Error(err))
		return Product{}, err
	}

	log.Info("product created", zap.Int64("product_id", id))

	return r.GetByID(ctx, id)
}

func (r *repository) GetByID(ctx context.Context, id int64) (Product, error) {
	p, err := scanProduct(r.db.QueryRowContext(ctx, productJoin+` WHERE p.id = $1`, id))
	if err == sql.ErrNoRows {
		return Product{}, ErrProductNotFound
	}
	return p, err
}

func (r *repository) List(ctx context.Context, opts ListOptions) ([]Product, int, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "List"),
	)

	start := time.Now()

	// ---------- pagination ----------
	limit := opts.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	page := opts.Page
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * limit

	// ---------- where ----------
	where := []string{"TRUE"}
	args := []any{}

	if opts.OnlyAvailable {
		where = append(where, "p.is_available = TRUE")
	}
	if opts.Category != nil && *opts.Category != "" {
		where = append(where, fmt.Sprintf("p.category = $%d", len(args)+1))
		args = append(args, *opts.Category)
	}
	if opts.Search != nil && *opts.Search != "" {
		where = append(where, fmt.Sprintf("(p.title ILIKE $%d OR p.description ILIKE $%d)", len(args)+1, len(args)+1))
		args = append(args, "%"+*opts.Search+"%")
	}
	if opts.SellerID != nil {
		where = append(where, fmt.Sprintf("p.seller_id = $%d", len(args)+1))
		args = append(args, *opts.SellerID)
	}

	whereClause := strings.Join(where, " AND ")

	var total int
	countQuery := `SELECT COUNT(*) FROM products p WHERE ` + whereClause
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		log.Error("count query failed", zap.Error(err))
		return nil, 0, err
	}

	query := productJoin + ` WHERE ` + whereClause +
		` ORDER BY p.created_at DESC` +
		` LIMIT $` + fmt.Sprint(len(args)+1) +
		` OFFSET $` + fmt.Sprint(len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("query failed",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)),
		)
		return nil, 0, err
	}
	defer rows.Close()

	products := make([]Product, 0, limit)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, 0, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	log.Debug("query success",
		zap.Int("rows", len(products)),
		zap.Duration("duration", time.Since(start)),
	)

	return products, total, nil
}

func (r *repository) Update(ctx context.Context, params UpdateProductParams) (Product, error) {
	_, err := r.db.ExecContext(ctx, `
		UPDATE products
		SET title = COALESCE($2, title),
		    description = COALESCE($3, description),
		    price = COALESCE($4, price),
		    category = COALESCE($5, category),
		    image = COALESCE($6, image),
		    quantity = COALESCE($7, quantity),
		    is_available = COALESCE($8, is_available),
		    updated_at = NOW()
		WHERE id = $1
	`,
		params.ProductID, params.Title, params.Description, params.Price,
		params.Category, params.Image, params.Quantity, params.IsAvailable,
	)
	if err != nil {
		return Product{}, err
	}

	return r.GetByID(ctx, params.ProductID)
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}
