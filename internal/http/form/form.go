// Package form converts submitted form fields into domain values. Every
// conversion failure is an invalid-input error naming the field.
package form

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/autentke/autentke/internal/apperr"
	"github.com/autentke/autentke/internal/pricing"
)

func String(r *http.Request, key string) string {
	return strings.TrimSpace(r.FormValue(key))
}

// Cents parses a money field; an empty field is zero.
func Cents(r *http.Request, key string) (int64, error) {
	s := String(r, key)
	if s == "" {
		return 0, nil
	}

	c, err := pricing.ParseAmount(s)
	if err != nil {
		return 0, apperr.InvalidWrap(err, "invalid amount %q for %s", s, key)
	}

	return c, nil
}

// RequiredCents is Cents rejecting an empty field.
func RequiredCents(r *http.Request, key string) (int64, error) {
	if String(r, key) == "" {
		return 0, apperr.Invalid("%s is required", key)
	}

	return Cents(r, key)
}

// OptionalCents returns nil for an empty field.
func OptionalCents(r *http.Request, key string) (*int64, error) {
	if String(r, key) == "" {
		return nil, nil
	}

	c, err := Cents(r, key)
	if err != nil {
		return nil, err
	}

	return &c, nil
}

// Decimal parses a decimal field; an empty field is zero.
func Decimal(r *http.Request, key string) (decimal.Decimal, error) {
	d, err := OptionalDecimal(r, key)
	if err != nil || d == nil {
		return decimal.Zero, err
	}

	return *d, nil
}

// OptionalDecimal returns nil for an empty field.
func OptionalDecimal(r *http.Request, key string) (*decimal.Decimal, error) {
	s := String(r, key)
	if s == "" {
		return nil, nil
	}

	d, err := pricing.ParseDecimal(strings.TrimSuffix(s, "%"))
	if err != nil {
		return nil, apperr.InvalidWrap(err, "invalid number %q for %s", s, key)
	}

	return &d, nil
}

// Int parses an integer field; an empty field is zero.
func Int(r *http.Request, key string) (int, error) {
	s := String(r, key)
	if s == "" {
		return 0, nil
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, apperr.InvalidWrap(err, "invalid integer %q for %s", s, key)
	}

	return n, nil
}

// Bool reports whether a checkbox-like field is set.
func Bool(r *http.Request, key string) bool {
	switch strings.ToLower(String(r, key)) {
	case "on", "sim", "true", "1", "yes":
		return true
	}

	return false
}

// Date parses a YYYY-MM-DD field; an empty field is the zero time.
func Date(r *http.Request, key string) (time.Time, error) {
	s := String(r, key)
	if s == "" {
		return time.Time{}, nil
	}

	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, apperr.InvalidWrap(err, "invalid date %q for %s", s, key)
	}

	return t, nil
}

// UUID parses a form field holding an id.
func UUID(r *http.Request, key string) (uuid.UUID, error) {
	s := String(r, key)

	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, apperr.InvalidWrap(err, "invalid id %q for %s", s, key)
	}

	return id, nil
}

// ID parses the {id} route parameter.
func ID(r *http.Request) (uuid.UUID, error) {
	s := chi.URLParam(r, "id")

	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, apperr.InvalidWrap(err, "invalid id %q", s)
	}

	return id, nil
}
