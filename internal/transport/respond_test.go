package transport

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJSON(t *testing.T) {
	w := httptest.NewRecorder()
	JSON(w, http.StatusCreated, map[string]int{"id": 7})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"id":7}`, w.Body.String())
}

func TestError(t *testing.T) {
	w := httptest.NewRecorder()
	Error(w, http.StatusNotFound, "not found")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"not found"}`, w.Body.String())
}

func TestMessage(t *testing.T) {
	w := httptest.NewRecorder()
	Message(w, http.StatusOK, "done")

	assert.JSONEq(t, `{"message":"done"}`, w.Body.String())
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	t.Run("Valid", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"x"}`))
		var p payload
		assert.NoError(t, DecodeJSON(req, &p))
		assert.Equal(t, "x", p.Name)
	})

	t.Run("UnknownField", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"x","extra":1}`))
		var p payload
		assert.Error(t, DecodeJSON(req, &p))
	})

	t.Run("Garbage", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(`nope`))
		var p payload
		assert.Error(t, DecodeJSON(req, &p))
	})
}
