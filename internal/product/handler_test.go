package product

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"landa-be/internal/utils"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// --- Mocks ---

type MockService struct {
	mock.Mock
}

func (m *MockService) Create(ctx context.Context, params CreateProductParams) (Product, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(Product), args.Error(1)
}

func (m *MockService) GetByID(ctx context.Context, id int64) (Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(Product), args.Error(1)
}

func (m *MockService) List(ctx context.Context, opts ListOptions) ([]Product, int, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]Product), args.Int(1), args.Error(2)
}

func (m *MockService) Update(ctx context.Context, actorID int64, isAdmin bool, params UpdateProductParams) (Product, error) {
	args := m.Called(ctx, actorID, isAdmin, params)
	return args.Get(0).(Product), args.Error(1)
}

func (m *MockService) Delete(ctx context.Context, actorID int64, isAdmin bool, productID int64) error {
	args := m.Called(ctx, actorID, isAdmin, productID)
	return args.Error(0)
}

func sellerRequest(t *testing.T, method, target string, body any, userID int64, role string) *http.Request {
	t.Helper()

	var req *http.Request
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		req = httptest.NewRequest(method, target, bytes.NewBuffer(b))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	ctx := utils.SetUserContext(req.Context(), userID, "seller@example.com", role)
	return req.WithContext(ctx)
}

func TestHandler_List(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := new(MockService)
		h := NewHandler(svc)

		svc.On("List", mock.Anything, mock.MatchedBy(func(opts ListOptions) bool {
			return opts.OnlyAvailable && opts.Limit == 20 && opts.Page == 1
		})).Return([]Product{{ID: 1, Title: "Denim Jacket"}}, 1, nil)

		w := httptest.NewRecorder()
		h.List(w, httptest.NewRequest("GET", "/products", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Denim Jacket")
	})

	t.Run("FiltersForwarded", func(t *testing.T) {
		svc := new(MockService)
		h := NewHandler(svc)

		svc.On("List", mock.Anything, mock.MatchedBy(func(opts ListOptions) bool {
			return opts.Category != nil && *opts.Category == "jackets" &&
				opts.Search != nil && *opts.Search == "denim" &&
				opts.Limit == 5 && opts.Page == 2
		})).Return([]Product{}, 0, nil)

		w := httptest.NewRecorder()
		h.List(w, httptest.NewRequest("GET", "/products?category=jackets&search=denim&limit=5&page=2", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		svc.AssertExpectations(t)
	})
}

func TestHandler_ListMine(t *testing.T) {
	svc := new(MockService)
	h := NewHandler(svc)

	svc.On("List", mock.Anything, mock.MatchedBy(func(opts ListOptions) bool {
		return opts.SellerID != nil && *opts.SellerID == int64(3) && !opts.OnlyAvailable
	})).Return([]Product{{ID: 9, SellerID: 3}}, 1, nil)

	w := httptest.NewRecorder()
	h.ListMine(w, sellerRequest(t, "GET", "/products/mine", nil, 3, "seller"))

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestHandler_Get(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := new(MockService)
		h := NewHandler(svc)

		svc.On("GetByID", mock.Anything, int64(7)).Return(Product{ID: 7, Title: "Wool Coat"}, nil)

		req := mux.SetURLVars(httptest.NewRequest("GET", "/products/7", nil), map[string]string{"id": "7"})
		w := httptest.NewRecorder()

		h.Get(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("NotFound", func(t *testing.T) {
		svc := new(MockService)
		h := NewHandler(svc)

		svc.On("GetByID", mock.Anything, int64(7)).Return(Product{}, ErrProductNotFound)

		req := mux.SetURLVars(httptest.NewRequest("GET", "/products/7", nil), map[string]string{"id": "7"})
		w := httptest.NewRecorder()

		h.Get(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("BadID", func(t *testing.T) {
		svc := new(MockService)
		h := NewHandler(svc)

		req := mux.SetURLVars(httptest.NewRequest("GET", "/products/abc", nil), map[string]string{"id": "abc"})
		w := httptest.NewRecorder()

		h.Get(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "GetByID")
	})
}

func TestHandler_Create(t *testing.T) {
	body := map[string]any{"title": "Denim Jacket", "price": 25.5, "category": "jackets"}

	t.Run("Success", func(t *testing.T) {
		svc := new(MockService)
		h := NewHandler(svc)

		svc.On("Create", mock.Anything, mock.MatchedBy(func(p CreateProductParams) bool {
			return p.Title == "Denim Jacket" && p.Price == 25.5 && p.SellerID == int64(3)
		})).Return(Product{ID: 10, Title: "Denim Jacket", SellerID: 3}, nil)

		w := httptest.NewRecorder()
		h.Create(w, sellerRequest(t, "POST", "/products", body, 3, "seller"))

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("InvalidPrice", func(t *testing.T) {
		svc := new(MockService)
		h := NewHandler(svc)

		svc.On("Create", mock.Anything, mock.Anything).Return(Product{}, ErrInvalidPrice)

		w := httptest.NewRecorder()
		h.Create(w, sellerRequest(t, "POST", "/products", map[string]any{"title": "x", "price": -1}, 3, "seller"))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_Update(t *testing.T) {
	newTitle := "Denim Jacket v2"
	body := map[string]any{"title": newTitle}

	t.Run("Success", func(t *testing.T) {
		svc := new(MockService)
		h := NewHandler(svc)

		svc.On("Update", mock.Anything, int64(3), false, mock.MatchedBy(func(p UpdateProductParams) bool {
			return p.ProductID == int64(10) && p.Title != nil && *p.Title == newTitle
		})).Return(Product{ID: 10, Title: newTitle}, nil)

		req := sellerRequest(t, "PUT", "/products/10", body, 3, "seller")
		req = mux.SetURLVars(req, map[string]string{"id": "10"})
		w := httptest.NewRecorder()

		h.Update(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("NotOwner", func(t *testing.T) {
		svc := new(MockService)
		h := NewHandler(svc)

		svc.On("Update", mock.Anything, int64(4), false, mock.Anything).
			Return(Product{}, ErrNotProductOwner)

		req := sellerRequest(t, "PUT", "/products/10", body, 4, "seller")
		req = mux.SetURLVars(req, map[string]string{"id": "10"})
		w := httptest.NewRecorder()

		h.Update(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestHandler_Delete(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := new(MockService)
		h := NewHandler(svc)

		svc.On("Delete", mock.Anything, int64(3), false, int64(10)).Return(nil)

		req := sellerRequest(t, "DELETE", "/products/10", nil, 3, "seller")
		req = mux.SetURLVars(req, map[string]string{"id": "10"})
		w := httptest.NewRecorder()

		h.Delete(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("NotFound", func(t *testing.T) {
		svc := new(MockService)
		h := NewHandler(svc)

		svc.On("Delete", mock.Anything, int64(99), true, int64(10)).Return(ErrProductNotFound)

		req := sellerRequest(t, "DELETE", "/products/10", nil, 99, "admin")
		req = mux.SetURLVars(req, map[string]string{"id": "10"})
		w := httptest.NewRecorder()

		h.Delete(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
