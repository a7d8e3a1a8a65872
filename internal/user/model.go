package user

import "time"

type Role string

const (
	RoleUser   Role = "user"
	RoleSeller Role = "seller"
	RoleAdmin  Role = "admin"
)

type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Password     string    `json:"-"`
	Role         Role      `json:"role"`
	IsBlocked    bool      `json:"is_blocked"`
	Address      *string   `json:"address,omitempty"`
	Phone        *string   `json:"phone,omitempty"`
	ProfileImage *string   `json:"profile_image,omitempty"`
	BusinessName *string   `json:"business_name,omitempty"`
	Earnings     float64   `json:"earnings"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type CreateUserParams struct {
	Name     string
	Email    string
	Password string
}

type UpdateProfileParams struct {
	UserID       int64
	Name         *string
	Address      *string
	Phone        *string
	ProfileImage *string
}

type ListUsersOptions struct {
	Role  *Role
	Limit int
	Page  int
}
