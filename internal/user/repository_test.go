package user

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

var userCols = []string{
	"id", "name", "email", "password", "role", "is_blocked",
	"address", "phone", "profile_image", "business_name", "earnings",
	"created_at", "updated_at",
}

func userRow(id int64, name, email, role string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(userCols).AddRow(
		id, name, email, "hashed-pw", role, false,
		nil, nil, nil, nil, 0.0,
		now, now,
	)
}

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO users").
			WithArgs("Alice", "alice@example.com", "hashed-pw").
			WillReturnRows(userRow(1, "Alice", "alice@example.com", "user"))

		u, err := repo.Create(context.Background(), CreateUserParams{
			Name:     "Alice",
			Email:    "alice@example.com",
			Password: "hashed-pw",
		})
		assert.NoError(t, err)
		assert.Equal(t, int64(1), u.ID)
		assert.Equal(t, RoleUser, u.Role)
	})

	t.Run("Error", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO users").
			WithArgs("Bob", "bob@example.com", "hashed-pw").
			WillReturnError(errors.New("db error"))

		_, err := repo.Create(context.Background(), CreateUserParams{
			Name:     "Bob",
			Email:    "bob@example.com",
			Password: "hashed-pw",
		})
		assert.Error(t, err)
	})
}

func TestRepository_FindByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("SELECT .* FROM users WHERE email = \\$1").
			WithArgs("alice@example.com").
			WillReturnRows(userRow(1, "Alice", "alice@example.com", "user"))

		u, err := repo.FindByEmail(context.Background(), "alice@example.com")
		assert.NoError(t, err)
		assert.Equal(t, "alice@example.com", u.Email)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT .* FROM users WHERE email = \\$1").
			WithArgs("missing@example.com").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.FindByEmail(context.Background(), "missing@example.com")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestRepository_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("SELECT .* FROM users WHERE id = \\$1").
			WithArgs(int64(7)).
			WillReturnRows(userRow(7, "Carol", "carol@example.com", "seller"))

		u, err := repo.FindByID(context.Background(), 7)
		assert.NoError(t, err)
		assert.Equal(t, RoleSeller, u.Role)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT .* FROM users WHERE id = \\$1").
			WithArgs(int64(99)).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.FindByID(context.Background(), 99)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestRepository_UpdateProfile(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	name := "Alice Updated"

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("UPDATE users").
			WithArgs(int64(1), &name, nil, nil, nil).
			WillReturnRows(userRow(1, name, "alice@example.com", "user"))

		u, err := repo.UpdateProfile(context.Background(), UpdateProfileParams{
			UserID: 1,
			Name:   &name,
		})
		assert.NoError(t, err)
		assert.Equal(t, name, u.Name)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("UPDATE users").
			WithArgs(int64(99), &name, nil, nil, nil).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.UpdateProfile(context.Background(), UpdateProfileParams{
			UserID: 99,
			Name:   &name,
		})
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestRepository_UpdatePassword(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE users").
			WithArgs(int64(1), "new-hash").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdatePassword(context.Background(), 1, "new-hash")
		assert.NoError(t, err)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectExec("UPDATE users").
			WithArgs(int64(99), "new-hash").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdatePassword(context.Background(), 99, "new-hash")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM users").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
		mock.ExpectQuery("SELECT .* FROM users").
			WithArgs(20, 0).
			WillReturnRows(userRow(1, "Alice", "alice@example.com", "user").
				AddRow(2, "Bob", "bob@example.com", "hashed-pw", "seller", false,
					nil, nil, nil, nil, 0.0, time.Now(), time.Now()))

		users, total, err := repo.List(context.Background(), ListUsersOptions{})
		assert.NoError(t, err)
		assert.Equal(t, 2, total)
		assert.Len(t, users, 2)
	})

	t.Run("RoleFilter", func(t *testing.T) {
		role := RoleSeller
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM users WHERE role = \\$1").
			WithArgs(role).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectQuery("SELECT .* FROM users").
			WithArgs(role, 20, 0).
			WillReturnRows(userRow(2, "Bob", "bob@example.com", "seller"))

		users, total, err := repo.List(context.Background(), ListUsersOptions{Role: &role})
		assert.NoError(t, err)
		assert.Equal(t, 1, total)
		assert.Len(t, users, 1)
	})

	t.Run("CountError", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM users").
			WillReturnError(errors.New("db error"))

		_, _, err := repo.List(context.Background(), ListUsersOptions{})
		assert.Error(t, err)
	})
}

func TestRepository_SetBlocked(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE users").
			WithArgs(int64(1), true).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.SetBlocked(context.Background(), 1, true)
		assert.NoError(t, err)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectExec("UPDATE users").
			WithArgs(int64(99), false).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.SetBlocked(context.Background(), 99, false)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}
