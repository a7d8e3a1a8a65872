package order

import (
	"errors"
	"net/http"

	"landa-be/internal/transport"
	"landa-be/internal/utils"

	"github.com/gorilla/mux"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

type checkoutRequest struct {
	ShippingAddress string  `json:"shipping_address"`
	ContactName     string  `json:"contact_name"`
	ContactEmail    string  `json:"contact_email"`
	ContactPhone    string  `json:"contact_phone"`
	AdditionalNotes *string `json:"additional_notes"`
}

// Create is the checkout endpoint: POST /orders.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	var req checkoutRequest
	if err := transport.DecodeJSON(r, &req); err != nil {
		transport.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	o, err := h.svc.Create(r.Context(), userID, CheckoutParams{
		ShippingAddress: req.ShippingAddress,
		ContactName:     req.ContactName,
		ContactEmail:    req.ContactEmail,
		ContactPhone:    req.ContactPhone,
		AdditionalNotes: req.AdditionalNotes,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrCartEmpty),
			errors.Is(err, ErrMissingShippingAddress),
			errors.Is(err, ErrProductUnavailable):
			transport.Error(w, http.StatusBadRequest, err.Error())
		default:
			transport.Error(w, http.StatusInternalServerError, "failed to create order")
		}
		return
	}

	transport.JSON(w, http.StatusCreated, o)
}

// ListAll is the admin order overview: GET /orders.
func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	opts := ListOptions{
		Limit: utils.ParsePositiveInt(q.Get("limit"), 20),
		Page:  utils.ParsePositiveInt(q.Get("page"), 1),
	}
	if status := q.Get("status"); status != "" {
		st := OverallStatus(status)
		opts.Status = &st
	}

	orders, total, err := h.svc.ListAll(r.Context(), opts)
	if err != nil {
		transport.Error(w, http.StatusInternalServerError, "failed to list orders")
		return
	}

	transport.JSON(w, http.StatusOK, map[string]any{
		"orders": orders,
		"total":  total,
		"page":   opts.Page,
		"limit":  opts.Limit,
	})
}

// ListMine returns the calling buyer's orders: GET /orders/userOrder.
func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	orders, err := h.svc.ListForUser(r.Context(), userID)
	if err != nil {
		transport.Error(w, http.StatusInternalServerError, "failed to list orders")
		return
	}

	transport.JSON(w, http.StatusOK, map[string]any{"orders": orders})
}

// ListSelling returns orders containing the calling seller's items:
// GET /orders/sellerOrder.
func (h *Handler) ListSelling(w http.ResponseWriter, r *http.Request) {
	sellerID, _ := utils.GetUserIDFromContext(r.Context())

	orders, err := h.svc.ListForSeller(r.Context(), sellerID)
	if err != nil {
		transport.Error(w, http.StatusInternalServerError, "failed to list orders")
		return
	}

	transport.JSON(w, http.StatusOK, map[string]any{"orders": orders})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	orderID, err := utils.ParseID(mux.Vars(r)["id"])
	if err != nil {
		transport.Error(w, http.StatusBadRequest, "invalid order id")
		return
	}

	actorID, _ := utils.GetUserIDFromContext(r.Context())
	isAdmin := utils.GetUserRoleFromContext(r.Context()) == "admin"

	o, err := h.svc.GetByID(r.Context(), orderID, actorID, isAdmin)
	if err != nil {
		switch {
		case errors.Is(err, ErrOrderNotFound):
			transport.Error(w, http.StatusNotFound, err.Error())
		case errors.Is(err, ErrUnauthorized):
			transport.Error(w, http.StatusForbidden, err.Error())
		default:
			transport.Error(w, http.StatusInternalServerError, "failed to load order")
		}
		return
	}

	transport.JSON(w, http.StatusOK, o)
}

type updateOverallStatusRequest struct {
	Status OverallStatus `json:"status"`
}

// UpdateOverall sets the order-level status directly: PUT /orders/{id}.
func (h *Handler) UpdateOverall(w http.ResponseWriter, r *http.Request) {
	orderID, err := utils.ParseID(mux.Vars(r)["id"])
	if err != nil {
		transport.Error(w, http.StatusBadRequest, "invalid order id")
		return
	}

	actorID, _ := utils.GetUserIDFromContext(r.Context())
	isAdmin := utils.GetUserRoleFromContext(r.Context()) == "admin"

	var req updateOverallStatusRequest
	if err := transport.DecodeJSON(r, &req); err != nil {
		transport.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.svc.UpdateOverallStatus(r.Context(), orderID, actorID, isAdmin, req.Status); err != nil {
		switch {
		case errors.Is(err, ErrInvalidStatus):
			transport.Error(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrOrderNotFound):
			transport.Error(w, http.StatusNotFound, err.Error())
		case errors.Is(err, ErrUnauthorized):
			transport.Error(w, http.StatusForbidden, err.Error())
		default:
			transport.Error(w, http.StatusInternalServerError, "failed to update order")
		}
		return
	}

	transport.Message(w, http.StatusOK, "order updated")
}

type updateItemStatusRequest struct {
	Status ItemStatus `json:"status"`
}

// UpdateItem moves one order line to a new status:
// PUT /orders/{id}/items/{itemID}.
func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	orderID, err := utils.ParseID(vars["id"])
	if err != nil {
		transport.Error(w, http.StatusBadRequest, "invalid order id")
		return
	}
	itemID, err := utils.ParseID(vars["itemID"])
	if err != nil {
		transport.Error(w, http.StatusBadRequest, "invalid order item id")
		return
	}

	actorID, _ := utils.GetUserIDFromContext(r.Context())
	isAdmin := utils.GetUserRoleFromContext(r.Context()) == "admin"

	var req updateItemStatusRequest
	if err := transport.DecodeJSON(r, &req); err != nil {
		transport.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.svc.UpdateItemStatus(r.Context(), orderID, itemID, actorID, isAdmin, req.Status); err != nil {
		switch {
		case errors.Is(err, ErrInvalidStatus):
			transport.Error(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrItemNotFound), errors.Is(err, ErrOrderNotFound):
			transport.Error(w, http.StatusNotFound, err.Error())
		case errors.Is(err, ErrUnauthorized):
			transport.Error(w, http.StatusForbidden, err.Error())
		default:
			transport.Error(w, http.StatusInternalServerError, "failed to update order item")
		}
		return
	}

	transport.Message(w, http.StatusOK, "order item updated")
}
