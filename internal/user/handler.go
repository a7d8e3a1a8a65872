package user

import (
	"errors"
	"net/http"
	"strings"

	"landa-be/internal/auth"
	"landa-be/internal/logger"
	"landa-be/internal/transport"
	"landa-be/internal/utils"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type Handler struct {
	svc          Service
	secureCookie bool
}

func NewHandler(svc Service, secureCookie bool) *Handler {
	return &Handler{svc: svc, secureCookie: secureCookie}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := transport.DecodeJSON(r, &req); err != nil {
		transport.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Name == "" || req.Email == "" || len(req.Password) < 6 {
		transport.Error(w, http.StatusBadRequest, "name, email and a password of at least 6 characters are required")
		return
	}

	token, u, err := h.svc.Register(r.Context(), CreateUserParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, ErrEmailExists) {
			transport.Error(w, http.StatusConflict, err.Error())
			return
		}
		transport.Error(w, http.StatusInternalServerError, "failed to register")
		return
	}

	auth.SetAccessTokenCookie(w, token, h.secureCookie)
	transport.JSON(w, http.StatusCreated, u)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := transport.DecodeJSON(r, &req); err != nil {
		transport.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, u, err := h.svc.Login(r.Context(), strings.TrimSpace(strings.ToLower(req.Email)), req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			transport.Error(w, http.StatusUnauthorized, err.Error())
		case errors.Is(err, ErrUserBlocked):
			transport.Error(w, http.StatusForbidden, err.Error())
		default:
			transport.Error(w, http.StatusInternalServerError, "failed to login")
		}
		return
	}

	auth.SetAccessTokenCookie(w, token, h.secureCookie)
	transport.JSON(w, http.StatusOK, u)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearAccessTokenCookie(w, h.secureCookie)
	transport.Message(w, http.StatusOK, "logged out")
}

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	u, err := h.svc.GetProfile(r.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			transport.Error(w, http.StatusNotFound, err.Error())
			return
		}
		transport.Error(w, http.StatusInternalServerError, "failed to load profile")
		return
	}

	transport.JSON(w, http.StatusOK, u)
}

type updateProfileRequest struct {
	Name         *string `json:"name"`
	Address      *string `json:"address"`
	Phone        *string `json:"phone"`
	ProfileImage *string `json:"profile_image"`
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	var req updateProfileRequest
	if err := transport.DecodeJSON(r, &req); err != nil {
		transport.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	u, err := h.svc.UpdateProfile(r.Context(), UpdateProfileParams{
		UserID:       userID,
		Name:         req.Name,
		Address:      req.Address,
		Phone:        req.Phone,
		ProfileImage: req.ProfileImage,
	})
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			transport.Error(w, http.StatusNotFound, err.Error())
			return
		}
		logger.FromCtx(r.Context()).Error("update profile failed", zap.Error(err))
		transport.Error(w, http.StatusInternalServerError, "failed to update profile")
		return
	}

	transport.JSON(w, http.StatusOK, u)
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	var req changePasswordRequest
	if err := transport.DecodeJSON(r, &req); err != nil {
		transport.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if len(req.NewPassword) < 6 {
		transport.Error(w, http.StatusBadRequest, "new password must be at least 6 characters")
		return
	}

	err := h.svc.ChangePassword(r.Context(), userID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, ErrWrongPassword):
			transport.Error(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrUserNotFound):
			transport.Error(w, http.StatusNotFound, err.Error())
		default:
			transport.Error(w, http.StatusInternalServerError, "failed to change password")
		}
		return
	}

	transport.Message(w, http.StatusOK, "password updated")
}

// ListUsers is the admin moderation view.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	opts := ListUsersOptions{
		Limit: utils.ParsePositiveInt(r.URL.Query().Get("limit"), 20),
		Page:  utils.ParsePositiveInt(r.URL.Query().Get("page"), 1),
	}
	if role := r.URL.Query().Get("role"); role != "" {
		rr := Role(role)
		opts.Role = &rr
	}

	users, total, err := h.svc.ListUsers(r.Context(), opts)
	if err != nil {
		transport.Error(w, http.StatusInternalServerError, "failed to list users")
		return
	}

	transport.JSON(w, http.StatusOK, map[string]any{
		"users": users,
		"total": total,
		"page":  opts.Page,
		"limit": opts.Limit,
	})
}

type setBlockedRequest struct {
	Blocked bool `json:"blocked"`
}

func (h *Handler) SetBlocked(w http.ResponseWriter, r *http.Request) {
	targetID, err := utils.ParseID(mux.Vars(r)["id"])
	if err != nil {
		transport.Error(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var req setBlockedRequest
	if err := transport.DecodeJSON(r, &req); err != nil {
		transport.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.svc.SetBlocked(r.Context(), targetID, req.Blocked); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			transport.Error(w, http.StatusNotFound, err.Error())
			return
		}
		transport.Error(w, http.StatusInternalServerError, "failed to update user")
		return
	}

	transport.Message(w, http.StatusOK, "user updated")
}
