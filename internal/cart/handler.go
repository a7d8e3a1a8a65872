package cart

import (
	"errors"
	"net/http"

	"landa-be/internal/product"
	"landa-be/internal/transport"
	"landa-be/internal/user"
	"landa-be/internal/utils"

	"github.com/gorilla/mux"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	items, err := h.svc.Get(r.Context(), userID)
	if err != nil {
		transport.Error(w, http.StatusInternalServerError, "failed to load cart")
		return
	}

	transport.JSON(w, http.StatusOK, map[string]any{"items": items})
}

type addToCartRequest struct {
	ProductID int64 `json:"product_id"`
}

func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())
	role := user.Role(utils.GetUserRoleFromContext(r.Context()))

	var req addToCartRequest
	if err := transport.DecodeJSON(r, &req); err != nil {
		transport.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.svc.Add(r.Context(), userID, role, req.ProductID)
	if err != nil {
		switch {
		case errors.Is(err, product.ErrProductNotFound):
			transport.Error(w, http.StatusNotFound, err.Error())
		case errors.Is(err, ErrProductUnavailable),
			errors.Is(err, ErrCartItemAlreadyExist):
			transport.Error(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrAdminCannotShop), errors.Is(err, ErrOwnProduct):
			transport.Error(w, http.StatusForbidden, err.Error())
		default:
			transport.Error(w, http.StatusInternalServerError, "failed to add to cart")
		}
		return
	}

	transport.JSON(w, http.StatusCreated, item)
}

func (h *Handler) Remove(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	itemID, err := utils.ParseID(mux.Vars(r)["itemID"])
	if err != nil {
		transport.Error(w, http.StatusBadRequest, "invalid cart item id")
		return
	}

	if err := h.svc.Remove(r.Context(), userID, itemID); err != nil {
		transport.Error(w, http.StatusInternalServerError, "failed to remove cart item")
		return
	}

	transport.Message(w, http.StatusOK, "cart item removed")
}

func (h *Handler) Clear(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	if err := h.svc.Clear(r.Context(), userID); err != nil {
		transport.Error(w, http.StatusInternalServerError, "failed to clear cart")
		return
	}

	transport.Message(w, http.StatusOK, "cart cleared")
}
