package product

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var productCols = []string{
	"id", "title", "description", "price", "category", "image",
	"seller_id", "name", "quantity", "is_available",
	"created_at", "updated_at",
}

func productRow(id int64, title string, price float64, sellerID int64, available bool) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(productCols).AddRow(
		id, title, "desc", price, "jackets", "img.jpg",
		sellerID, "Seller Name", 1, available,
		now, now,
	)
}

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO products").
			WithArgs("Denim Jacket", "desc", 25.5, "jackets", "img.jpg", int64(2), 1).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))
		mock.ExpectQuery("SELECT .* FROM products p").
			WithArgs(int64(10)).
			WillReturnRows(productRow(10, "Denim Jacket", 25.5, 2, true))

		p, err := repo.Create(context.Background(), CreateProductParams{
			Title:       "Denim Jacket",
			Description: "desc",
			Price:       25.5,
			Category:    "jackets",
			Image:       "img.jpg",
			SellerID:    2,
			Quantity:    1,
		})
		assert.NoError(t, err)
		assert.Equal(t, int64(10), p.ID)
		assert.Equal(t, "Seller Name", p.SellerName)
	})

	t.Run("Error", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO products").
			WillReturnError(errors.New("db error"))

		_, err := repo.Create(context.Background(), CreateProductParams{
			Title:    "Denim Jacket",
			Price:    25.5,
			SellerID: 2,
			Quantity: 1,
		})
		assert.Error(t, err)
	})
}

func TestRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("SELECT .* FROM products p").
			WithArgs(int64(10)).
			WillReturnRows(productRow(10, "Denim Jacket", 25.5, 2, true))

		p, err := repo.GetByID(context.Background(), 10)
		assert.NoError(t, err)
		assert.Equal(t, "Denim Jacket", p.Title)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT .* FROM products p").
			WithArgs(int64(99)).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByID(context.Background(), 99)
		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}

func TestRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM products p").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectQuery("SELECT .* FROM products p").
			WithArgs(20, 0).
			WillReturnRows(productRow(10, "Denim Jacket", 25.5, 2, true))

		products, total, err := repo.List(context.Background(), ListOptions{})
		assert.NoError(t, err)
		assert.Equal(t, 1, total)
		assert.Len(t, products, 1)
	})

	t.Run("Filters", func(t *testing.T) {
		category := "jackets"
		search := "denim"
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM products p").
			WithArgs(category, "%denim%").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectQuery("SELECT .* FROM products p").
			WithArgs(category, "%denim%", 20, 0).
			WillReturnRows(productRow(10, "Denim Jacket", 25.5, 2, true))

		products, total, err := repo.List(context.Background(), ListOptions{
			OnlyAvailable: true,
			Category:      &category,
			Search:        &search,
		})
		assert.NoError(t, err)
		assert.Equal(t, 1, total)
		assert.Len(t, products, 1)
	})

	t.Run("CountError", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM products p").
			WillReturnError(errors.New("db error"))

		_, _, err := repo.List(context.Background(), ListOptions{})
		assert.Error(t, err)
	})
}

func TestRepository_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	title := "Updated Title"

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE products").
			WithArgs(int64(10), &title, nil, nil, nil, nil, nil, nil).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("SELECT .* FROM products p").
			WithArgs(int64(10)).
			WillReturnRows(productRow(10, title, 25.5, 2, true))

		p, err := repo.Update(context.Background(), UpdateProductParams{
			ProductID: 10,
			Title:     &title,
		})
		assert.NoError(t, err)
		assert.Equal(t, title, p.Title)
	})

	t.Run("Error", func(t *testing.T) {
		mock.ExpectExec("UPDATE products").
			WillReturnError(errors.New("db error"))

		_, err := repo.Update(context.Background(), UpdateProductParams{ProductID: 10})
		assert.Error(t, err)
	})
}

func TestRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM products").
			WithArgs(int64(10)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Delete(context.Background(), 10)
		assert.NoError(t, err)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM products").
			WithArgs(int64(99)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), 99)
		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}
