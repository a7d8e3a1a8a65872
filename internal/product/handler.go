package product

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

// List is the public storefront listing: available products only,
// page/limit pagination with optional category and search filters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	opts := ListOptions{
		OnlyAvailable: true,
		Limit:         utils.ParsePositiveInt(q.Get("limit"), 20),
		Page:          utils.ParsePositiveInt(q.Get("page"), 1),
	}
	if category := q.Get("category"); category != "" {
		opts.Category = &category
	}
	if search := q.Get("search"); search != "" {
		opts.Search = &search
	}

	products, total, err := h.svc.List(r.Context(), opts)
	if err != nil {
		transport.Error(w, http.StatusInternalServerError, "failed to list products")
		return
	}

	transport.JSON(w, http.StatusOK, map[string]any{
		"products": products,
		"total":    total,
		"page":     opts.Page,
		"limit":    opts.Limit,
	})
}

// ListMine returns the calling seller's own products, unavailable ones included.
func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	sellerID, _ := utils.GetUserIDFromContext(r.Context())

	opts := ListOptions{
		SellerID: &sellerID,
		Limit:    utils.ParsePositiveInt(r.URL.Query().Get("limit"), 20),
		Page:     utils.ParsePositiveInt(r.URL.Query().Get("page"), 1),
	}

	products, total, err := h.svc.List(r.Context(), opts)
	if err != nil {
		transport.Error(w, http.StatusInternalServerError, "failed to list products")
		return
	}

	transport.JSON(w, http.StatusOK, map[string]any{
		"products": products,
		"total":    total,
		"page":     opts.Page,
		"limit":    opts.Limit,
	})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(mux.Vars(r)["id"])
	if err != nil {
		transport.Error(w, http.StatusBadRequest, "invalid product id")
		return
	}

	p, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			transport.Error(w, http.StatusNotFound, err.Error())
			return
		}
		transport.Error(w, http.StatusInternalServerError, "failed to load product")
		return
	}

	transport.JSON(w, http.StatusOK, p)
}

type createProductRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	Quantity    int     `json:"quantity"`
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	sellerID, _ := utils.GetUserIDFromContext(r.Context())

	var req createProductRequest
	if err := transport.DecodeJSON(r, &req); err != nil {
		transport.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.svc.Create(r.Context(), CreateProductParams{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Image:       req.Image,
		SellerID:    sellerID,
		Quantity:    req.Quantity,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingTitle), errors.Is(err, ErrInvalidPrice):
			transport.Error(w, http.StatusBadRequest, err.Error())
		default:
			transport.Error(w, http.StatusInternalServerError, "failed to create product")
		}
		return
	}

	transport.JSON(w, http.StatusCreated, p)
}

type updateProductRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Category    *string  `json:"category"`
	Image       *string  `json:"image"`
	Quantity    *int     `json:"quantity"`
	IsAvailable *bool    `json:"is_available"`
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(mux.Vars(r)["id"])
	if err != nil {
		transport.Error(w, http.StatusBadRequest, "invalid product id")
		return
	}

	actorID, _ := utils.GetUserIDFromContext(r.Context())
	isAdmin := utils.GetUserRoleFromContext(r.Context()) == "admin"

	var req updateProductRequest
	if err := transport.DecodeJSON(r, &req); err != nil {
		transport.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.svc.Update(r.Context(), actorID, isAdmin, UpdateProductParams{
		ProductID:   id,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Image:       req.Image,
		Quantity:    req.Quantity,
		IsAvailable: req.IsAvailable,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrProductNotFound):
			transport.Error(w, http.StatusNotFound, err.Error())
		case errors.Is(err, ErrNotProductOwner):
			transport.Error(w, http.StatusForbidden, err.Error())
		case errors.Is(err, ErrInvalidPrice):
			transport.Error(w, http.StatusBadRequest, err.Error())
		default:
			transport.Error(w, http.StatusInternalServerError, "failed to update product")
		}
		return
	}

	transport.JSON(w, http.StatusOK, p)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(mux.Vars(r)["id"])
	if err != nil {
		transport.Error(w, http.StatusBadRequest, "invalid product id")
		return
	}

	actorID, _ := utils.GetUserIDFromContext(r.Context())
	isAdmin := utils.GetUserRoleFromContext(r.Context()) == "admin"

	if err := h.svc.Delete(r.Context(), actorID, isAdmin, id); err != nil {
		switch {
		case errors.Is(err, ErrProductNotFound):
			transport.Error(w, http.StatusNotFound, err.Error())
		case errors.Is(err, ErrNotProductOwner):
			transport.Error(w, http.StatusForbidden, err.Error())
		default:
			transport.Error(w, http.StatusInternalServerError, "failed to delete product")
		}
		return
	}

	transport.Message(w, http.StatusOK, "product deleted")
}
