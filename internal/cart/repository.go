package cart

import (
	"context"
	"database/sql"
	"time"

	"landa-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	GetItems(ctx context.Context, userID int64) ([]CartItem, error)
	PruneStale(ctx context.Context, userID int64) (int64, error)
	GetItemByUserAndProduct(ctx context.Context, userID, productID int64) (*CartItem, error)
	CreateItem(ctx context.Context, userID, productID int64) (*CartItem, error)
	RemoveItem(ctx context.Context, userID, itemID int64) error
	Clear(ctx context.Context, userID int64) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// GetItems returns the cart joined with product data, newest first.
func (r *repository) GetItems(ctx context.Context, userID int64) ([]CartItem, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "GetItems"),
		zap.Int64("user_id", userID),
	)

	start := time.Now()

	query := `
	SELECT
		c.id, c.user_id, c.added_at,

		p.id, p.title, p.description, p.price, p.category, p.image,
		p.seller_id, COALESCE(u.name, 'UNKNOWN'), p.quantity, p.is_available,
		p.created_at, p.updated_at
	FROM cart_items c
	JOIN products p ON c.product_id = p.id
	LEFT JOIN users u ON p.seller_id = u.id
	WHERE c.user_id = $1
	ORDER BY c.added_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("query failed",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)),
		)
		return nil, err
	}
	defer rows.Close()

	items := make([]CartItem, 0)
	for rows.Next() {
		var item CartItem
		if err := rows.Scan(
			&item.ID,
			&item.UserID,
			&item.AddedAt,

			&item.Product.ID,
			&item.Product.Title,
			&item.Product.Description,
			&item.Product.Price,
			&item.Product.Category,
			&item.Product.Image,
			&item.Product.SellerID,
			&item.Product.SellerName,
			&item.Product.Quantity,
			&item.Product.IsAvailable,
			&item.Product.CreatedAt,
			&item.Product.UpdatedAt,
		); err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	log.Debug("query success",
		zap.Int("rows", len(items)),
		zap.Duration("duration", time.Since(start)),
	)

	return items, nil
}

// PruneStale deletes cart rows whose product no longer exists or is no
// longer available, returning how many rows were removed.
func (r *repository) PruneStale(ctx context.Context, userID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM cart_items c
		WHERE c.user_id = $1
		  AND NOT EXISTS (
			SELECT 1 FROM products p
			WHERE p.id = c.product_id AND p.is_available = TRUE
		  )
	`, userID)
	if err != nil {
		return 0, err
	}

	return res.RowsAffected()
}

func (r *repository) GetItemByUserAndProduct(ctx context.Context, userID, productID int64) (*CartItem, error) {
	item := &CartItem{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, product_id, added_at
		FROM cart_items
		WHERE user_id = $1 AND product_id = $2
	`, userID, productID).Scan(
		&item.ID,
		&item.UserID,
		&item.Product.ID,
		&item.AddedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return item, nil
}

func (r *repository) CreateItem(ctx context.Context, userID, productID int64) (*CartItem, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateItem"),
		zap.Int64("user_id", userID),
		zap.Int64("product_id", productID),
	)

	item := &CartItem{}
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO cart_items (user_id, product_id)
		VALUES ($1, $2)
		RETURNING id, user_id, product_id, added_at
	`, userID, productID).Scan(
		&item.ID,
		&item.UserID,
		&item.Product.ID,
		&item.AddedAt,
	)
	if err != nil {
		log.Error("failed to create cart item", zap.Error(err))
		return nil, err
	}

	log.Info("cart item created", zap.Int64("cart_item_id", item.ID))

	return item, nil
}

// RemoveItem is idempotent: removing an item that does not exist is not an error.
func (r *repository) RemoveItem(ctx context.Context, userID, itemID int64) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM cart_items
		WHERE user_id = $1 AND id = $2
	`, userID, itemID)
	return err
}

func (r *repository) Clear(ctx context.Context, userID int64) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM cart_items
		WHERE user_id = $1
	`, userID)
	return err
}
