package sellerrequest

import (
	"errors"
	"net/http"

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

type applyRequest struct {
	BusinessName string `json:"business_name"`
	Reason       string `json:"reason"`
}

func (h *Handler) Apply(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())
	role := user.Role(utils.GetUserRoleFromContext(r.Context()))

	var req applyRequest
	if err := transport.DecodeJSON(r, &req); err != nil {
		transport.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sr, err := h.svc.Apply(r.Context(), userID, role, req.BusinessName, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, ErrOnlyUsersMayApply):
			transport.Error(w, http.StatusForbidden, err.Error())
		case errors.Is(err, ErrRequestExists), errors.Is(err, ErrMissingFields):
			transport.Error(w, http.StatusBadRequest, err.Error())
		default:
			transport.Error(w, http.StatusInternalServerError, "failed to submit seller request")
		}
		return
	}

	transport.JSON(w, http.StatusCreated, sr)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	sr, err := h.svc.Get(r.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrRequestNotFound) {
			transport.Error(w, http.StatusNotFound, err.Error())
			return
		}
		transport.Error(w, http.StatusInternalServerError, "failed to load seller request")
		return
	}

	transport.JSON(w, http.StatusOK, sr)
}

func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	requests, err := h.svc.ListAll(r.Context())
	if err != nil {
		transport.Error(w, http.StatusInternalServerError, "failed to list seller requests")
		return
	}

	transport.JSON(w, http.StatusOK, map[string]any{"requests": requests})
}

type reviewRequest struct {
	Status Status `json:"status"`
}

func (h *Handler) Review(w http.ResponseWriter, r *http.Request) {
	requestID, err := utils.ParseID(mux.Vars(r)["id"])
	if err != nil {
		transport.Error(w, http.StatusBadRequest, "invalid seller request id")
		return
	}

	var req reviewRequest
	if err := transport.DecodeJSON(r, &req); err != nil {
		transport.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sr, err := h.svc.Review(r.Context(), requestID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidStatus):
			transport.Error(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrRequestNotFound):
			transport.Error(w, http.StatusNotFound, err.Error())
		default:
			transport.Error(w, http.StatusInternalServerError, "failed to review seller request")
		}
		return
	}

	transport.JSON(w, http.StatusOK, sr)
}
