package form_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autentke/autentke/internal/apperr"
	"github.com/autentke/autentke/internal/http/form"
)

func post(values url.Values) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return r
}

func TestCents(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{in: "", want: 0},
		{in: "12.50", want: 1250},
		{in: "12,50", want: 1250},
		{in: "1.234,56", want: 123456},
		{in: "R$ 99,90", want: 9990},
		{in: "doze", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := form.Cents(post(url.Values{"v": {tt.in}}), "v")

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, apperr.KindInvalid, apperr.KindOf(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRequiredCents(t *testing.T) {
	_, err := form.RequiredCents(post(url.Values{}), "amount")
	assert.Equal(t, apperr.KindInvalid, apperr.KindOf(err))
}

func TestOptionalDecimal(t *testing.T) {
	got, err := form.OptionalDecimal(post(url.Values{"d": {" "}}), "d")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = form.OptionalDecimal(post(url.Values{"d": {"10%"}}), "d")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(10).Equal(*got))

	got, err = form.OptionalDecimal(post(url.Values{"d": {"1,8"}}), "d")
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("1.8").Equal(*got))

	_, err = form.OptionalDecimal(post(url.Values{"d": {"x"}}), "d")
	assert.Equal(t, apperr.KindInvalid, apperr.KindOf(err))
}

func TestInt(t *testing.T) {
	n, err := form.Int(post(url.Values{"n": {"3"}}), "n")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	_, err = form.Int(post(url.Values{"n": {"três"}}), "n")
	assert.Equal(t, apperr.KindInvalid, apperr.KindOf(err))
}

func TestBool(t *testing.T) {
	assert.True(t, form.Bool(post(url.Values{"promo": {"sim"}}), "promo"))
	assert.True(t, form.Bool(post(url.Values{"promo": {"on"}}), "promo"))
	assert.False(t, form.Bool(post(url.Values{}), "promo"))
}

func TestDate(t *testing.T) {
	got, err := form.Date(post(url.Values{"d": {"2026-03-14"}}), "d")
	require.NoError(t, err)
	assert.Equal(t, 14, got.Day())

	_, err = form.Date(post(url.Values{"d": {"14/03/2026"}}), "d")
	assert.Equal(t, apperr.KindInvalid, apperr.KindOf(err))
}

func TestID(t *testing.T) {
	id := uuid.New()

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id.String())

	r := httptest.NewRequest(http.MethodPost, "/", nil)
	r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))

	got, err := form.ID(r)
	require.NoError(t, err)
	assert.Equal(t, id, got)

	rctx.URLParams = chi.RouteParams{}
	rctx.URLParams.Add("id", "nope")

	_, err = form.ID(r)
	assert.Equal(t, apperr.KindInvalid, apperr.KindOf(err))
}
