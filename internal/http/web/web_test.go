package web_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autentke/autentke/internal/apperr"
	"github.com/autentke/autentke/internal/http/web"
)

func TestStatusOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "Invalid", err: apperr.Invalid("bad markup"), want: http.StatusBadRequest},
		{name: "NotFound", err: apperr.NotFound("product not found"), want: http.StatusNotFound},
		{name: "Conflict", err: apperr.Conflict("product already sold"), want: http.StatusConflict},
		{name: "Wrapped", err: fmt.Errorf("row 3: %w", apperr.Invalid("bad cost")), want: http.StatusBadRequest},
		{name: "Internal", err: errors.New("connection refused"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, web.StatusOf(tt.err))
		})
	}
}

func newRenderer(t *testing.T) *web.Renderer {
	t.Helper()

	rd, err := web.NewRenderer()
	require.NoError(t, err)

	return rd
}

func TestFinish_Success(t *testing.T) {
	rd := newRenderer(t)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/products", nil)

	rd.Finish(w, r, web.Ok("%d produto(s) cadastrado(s)", 3))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "flash", cookies[0].Name)

	// the next page view reads and clears the message
	next := httptest.NewRequest(http.MethodGet, "/", nil)
	next.AddCookie(cookies[0])

	nw := httptest.NewRecorder()
	assert.Equal(t, "3 produto(s) cadastrado(s)", web.PopFlash(nw, next))

	cleared := nw.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Equal(t, -1, cleared[0].MaxAge)
}

func TestFinish_Failure(t *testing.T) {
	rd := newRenderer(t)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "Conflict",
			err:        apperr.Conflict("product already sold"),
			wantStatus: http.StatusConflict,
			wantBody:   "product already sold",
		},
		{
			name:       "InternalHidesCause",
			err:        errors.New("pq: password authentication failed"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   "internal error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "/products/x/sell", nil)

			rd.Finish(w, r, web.Fail(tt.err))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
			assert.NotContains(t, w.Body.String(), "password")
			assert.Empty(t, w.Result().Cookies())
		})
	}
}

func TestPopFlash_None(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	assert.Empty(t, web.PopFlash(w, r))
	assert.Empty(t, w.Result().Cookies())
}

func TestJSONError(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/v1/products/x", nil)

	web.JSONError(w, r, apperr.NotFound("product not found"))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"product not found","kind":"not_found"}`, w.Body.String())
}
