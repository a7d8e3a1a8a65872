package order

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"landa-be/internal/logger"
	"landa-be/internal/utils"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	Checkout(ctx context.Context, userID int64, params CheckoutParams) (*Order, error)
	GetByID(ctx context.Context, orderID int64) (*Order, error)
	ListAll(ctx context.Context, opts ListOptions) ([]Order, int, error)
	ListByUser(ctx context.Context, userID int64) ([]Order, error)
	ListBySeller(ctx context.Context, sellerID int64) ([]Order, error)
	UpdateOverallStatus(ctx context.Context, orderID int64, status OverallStatus) error
	GetItem(ctx context.Context, orderID, itemID int64) (*OrderItem, error)
	UpdateItemStatus(ctx context.Context, orderID, itemID int64, status ItemStatus) error
	GetItemStatuses(ctx context.Context, orderID int64) ([]ItemStatus, error)
	CurrentProductPrice(ctx context.Context, productID int64) (float64, error)
	CreditSellerEarnings(ctx context.Context, sellerID int64, amount float64) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// checkoutRow is the cart snapshot read at the start of a checkout.
type checkoutRow struct {
	ProductID int64
	Title     string
	Price     float64
	SellerID  int64
	Available bool
}

// Checkout converts the user's cart into an order: every product is
// re-checked for availability, flipped to unavailable, snapshotted into an
// order item at its current price, and the cart is emptied.
//
// The writes are sequential and deliberately not wrapped in a database
// transaction: a failure after some products were flagged unavailable but
// before the order insert leaves those products orphaned with no
// compensating order.
func (r *repository) Checkout(ctx context.Context, userID int64, params CheckoutParams) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Checkout"),
		zap.Int64("user_id", userID),
	)

	rows, err := r.db.QueryContext(ctx, `
		SELECT p.id, p.title, p.price, p.seller_id, p.is_available
		FROM cart_items c
		JOIN products p ON c.product_id = p.id
		WHERE c.user_id = $1
		ORDER BY c.added_at
	`, userID)
	if err != nil {
		log.Error("failed to read cart", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var entries []checkoutRow
	for rows.Next() {
		var e checkoutRow
		if err := rows.Scan(&e.ProductID, &e.Title, &e.Price, &e.SellerID, &e.Available); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(entries) == 0 {
		return nil, ErrCartEmpty
	}

	var total float64
	for _, e := range entries {
		if !e.Available {
			return nil, fmt.Errorf("%w: %s", ErrProductUnavailable, e.Title)
		}
		total += e.Price
	}

	for _, e := range entries {
		_, err := r.db.ExecContext(ctx, `
			UPDATE products
			SET is_available = FALSE, updated_at = NOW()
			WHERE id = $1
		`, e.ProductID)
		if err != nil {
			log.Error("failed to mark product unavailable",
				zap.Int64("product_id", e.ProductID),
				zap.Error(err),
			)
			return nil, err
		}
	}

	o := &Order{
		OrderNumber:     utils.GenerateOrderNumber(),
		UserID:          userID,
		TotalAmount:     total,
		OverallStatus:   OverallPending,
		ShippingAddress: params.ShippingAddress,
		ContactName:     params.ContactName,
		ContactEmail:    params.ContactEmail,
		ContactPhone:    params.ContactPhone,
		AdditionalNotes: params.AdditionalNotes,
	}

	err = r.db.QueryRowContext(ctx, `
		INSERT INTO orders (
			order_number, user_id, total_amount, overall_status,
			shipping_address, contact_name, contact_email, contact_phone,
			additional_notes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`,
		o.OrderNumber, o.UserID, o.TotalAmount, o.OverallStatus,
		o.ShippingAddress, o.ContactName, o.ContactEmail, o.ContactPhone,
		o.AdditionalNotes,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		log.Error("failed to insert order", zap.Error(err))
		return nil, err
	}

	for _, e := range entries {
		item := OrderItem{
			OrderID:      o.ID,
			ProductID:    e.ProductID,
			SellerID:     e.SellerID,
			Price:        e.Price,
			Status:       ItemPending,
			ProductTitle: e.Title,
		}

		err := r.db.QueryRowContext(ctx, `
			INSERT INTO order_items (order_id, product_id, seller_id, price, item_status)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`, item.OrderID, item.ProductID, item.SellerID, item.Price, item.Status).Scan(&item.ID)
		if err != nil {
			log.Error("failed to insert order item",
				zap.Int64("product_id", e.ProductID),
				zap.Error(err),
			)
			return nil, err
		}

		o.Items = append(o.Items, item)
	}

	if _, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID); err != nil {
		log.Error("failed to clear cart", zap.Error(err))
		return nil, err
	}

	log.Info("checkout completed",
		zap.Int64("order_id", o.ID),
		zap.String("order_number", o.OrderNumber),
		zap.Int("items", len(o.Items)),
		zap.Float64("total", o.TotalAmount),
	)

	return o, nil
}

const orderColumns = `
	id, order_number, user_id, total_amount, overall_status,
	shipping_address, contact_name, contact_email, contact_phone,
	additional_notes, created_at, updated_at
`

func scanOrder(row interface{ Scan(...any) error }) (Order, error) {
	var o Order
	err := row.Scan(
		&o.ID, &o.OrderNumber, &o.UserID, &o.TotalAmount, &o.OverallStatus,
		&o.ShippingAddress, &o.ContactName, &o.ContactEmail, &o.ContactPhone,
		&o.AdditionalNotes, &o.CreatedAt, &o.UpdatedAt,
	)
	return o, err
}

func (r *repository) GetByID(ctx context.Context, orderID int64) (*Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`, orderID,
	))
	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	items, err := r.loadItems(ctx, []int64{o.ID}, nil)
	if err != nil {
		return nil, err
	}
	o.Items = items[o.ID]

	return &o, nil
}

func (r *repository) ListAll(ctx context.Context, opts ListOptions) ([]Order, int, error) {
	limit := opts.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	page := opts.Page
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * limit

	where := []string{"TRUE"}
	args := []any{}
	if opts.Status != nil {
		where = append(where, fmt.Sprintf("overall_status = $%d", len(args)+1))
		args = append(args, *opts.Status)
	}
	whereClause := strings.Join(where, " AND ")

	var total int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM orders WHERE `+whereClause, args...,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + orderColumns + ` FROM orders WHERE ` + whereClause +
		` ORDER BY created_at DESC` +
		` LIMIT $` + fmt.Sprint(len(args)+1) +
		` OFFSET $` + fmt.Sprint(len(args)+2)
	args = append(args, limit, offset)

	orders, err := r.queryOrders(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}

	if err := r.attachItems(ctx, orders, nil); err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

func (r *repository) ListByUser(ctx context.Context, userID int64) ([]Order, error) {
	orders, err := r.queryOrders(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}

	if err := r.attachItems(ctx, orders, nil); err != nil {
		return nil, err
	}

	return orders, nil
}

// ListBySeller returns orders containing the seller's items, with the item
// list filtered down to that seller's lines.
func (r *repository) ListBySeller(ctx context.Context, sellerID int64) ([]Order, error) {
	orders, err := r.queryOrders(ctx, `
		SELECT DISTINCT o.id, o.order_number, o.user_id, o.total_amount, o.overall_status,
			o.shipping_address, o.contact_name, o.contact_email, o.contact_phone,
			o.additional_notes, o.created_at, o.updated_at
		FROM orders o
		JOIN order_items oi ON oi.order_id = o.id
		WHERE oi.seller_id = $1
		ORDER BY o.created_at DESC
	`, sellerID)
	if err != nil {
		return nil, err
	}

	if err := r.attachItems(ctx, orders, &sellerID); err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *repository) queryOrders(ctx context.Context, query string, args ...any) ([]Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, rows.Err()
}

func (r *repository) attachItems(ctx context.Context, orders []Order, sellerID *int64) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}

	items, err := r.loadItems(ctx, ids, sellerID)
	if err != nil {
		return err
	}

	for i := range orders {
		orders[i].Items = items[orders[i].ID]
	}

	return nil
}

func (r *repository) loadItems(ctx context.Context, orderIDs []int64, sellerID *int64) (map[int64][]OrderItem, error) {
	query := `
		SELECT
			oi.id, oi.order_id, oi.product_id, oi.seller_id, oi.price, oi.item_status,
			COALESCE(p.title, ''), COALESCE(p.image, '')
		FROM order_items oi
		LEFT JOIN products p ON oi.product_id = p.id
		WHERE oi.order_id = ANY($1)
	`
	args := []any{pq.Array(orderIDs)}

	if sellerID != nil {
		query += ` AND oi.seller_id = $2`
		args = append(args, *sellerID)
	}

	query += ` ORDER BY oi.id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make(map[int64][]OrderItem)
	for rows.Next() {
		var item OrderItem
		if err := rows.Scan(
			&item.ID, &item.OrderID, &item.ProductID, &item.SellerID,
			&item.Price, &item.Status,
			&item.ProductTitle, &item.ProductImage,
		); err != nil {
			return nil, err
		}
		items[item.OrderID] = append(items[item.OrderID], item)
	}

	return items, rows.Err()
}

func (r *repository) UpdateOverallStatus(ctx context.Context, orderID int64, status OverallStatus) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders
		SET overall_status = $2, updated_at = NOW()
		WHERE id = $1
	`, orderID, status)
	if err != nil {
		return err
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrOrderNotFound
	}

	return nil
}

func (r *repository) GetItem(ctx context.Context, orderID, itemID int64) (*OrderItem, error) {
	var item OrderItem
	err := r.db.QueryRowContext(ctx, `
		SELECT id, order_id, product_id, seller_id, price, item_status
		FROM order_items
		WHERE order_id = $1 AND id = $2
	`, orderID, itemID).Scan(
		&item.ID, &item.OrderID, &item.ProductID, &item.SellerID,
		&item.Price, &item.Status,
	)

	if err == sql.ErrNoRows {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}

	return &item, nil
}

func (r *repository) UpdateItemStatus(ctx context.Context, orderID, itemID int64, status ItemStatus) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE order_items
		SET item_status = $3
		WHERE order_id = $1 AND id = $2
	`, orderID, itemID, status)
	if err != nil {
		return err
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrItemNotFound
	}

	return nil
}

func (r *repository) GetItemStatuses(ctx context.Context, orderID int64) ([]ItemStatus, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT item_status FROM order_items WHERE order_id = $1
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var statuses []ItemStatus
	for rows.Next() {
		var s ItemStatus
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		statuses = append(statuses, s)
	}

	return statuses, rows.Err()
}

func (r *repository) CurrentProductPrice(ctx context.Context, productID int64) (float64, error) {
	var price float64
	err := r.db.QueryRowContext(ctx,
		`SELECT price FROM products WHERE id = $1`, productID,
	).Scan(&price)
	return price, err
}

func (r *repository) CreditSellerEarnings(ctx context.Context, sellerID int64, amount float64) error {
	start := time.Now()
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreditSellerEarnings"),
		zap.Int64("seller_id", sellerID),
	)

	_, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET earnings = earnings + $2, updated_at = NOW()
		WHERE id = $1
	`, sellerID, amount)
	if err != nil {
		log.Error("failed to credit earnings",
			zap.Float64("amount", amount),
			zap.Error(err),
		)
		return err
	}

	log.Info("seller earnings credited",
		zap.Float64("amount", amount),
		zap.Duration("duration", time.Since(start)),
	)

	return nil
}
