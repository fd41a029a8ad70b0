package web

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/autentke/autentke/internal/apperr"
)

// Result is the outcome of a form submission.
type Result struct {
	Message string
	Err     error
}

func Ok(format string, args ...any) Result {
	return Result{Message: fmt.Sprintf(format, args...)}
}

func Fail(err error) Result {
	return Result{Err: err}
}

// StatusOf maps an error to the HTTP status reported to the operator.
func StatusOf(err error) int {
	switch apperr.KindOf(err) {
	case apperr.KindInvalid:
		return http.StatusBadRequest
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindConflict:
		return http.StatusConflict
	}

	return http.StatusInternalServerError
}

type errorPage struct {
	Status  int
	Message string
}

// Finish settles a submission: on success the message is flashed and the
// browser sent back to the dashboard, on failure an error page is shown.
func (rd *Renderer) Finish(w http.ResponseWriter, r *http.Request, res Result) {
	if res.Err == nil {
		SetFlash(w, res.Message)
		http.Redirect(w, r, "/", http.StatusSeeOther)

		return
	}

	status := StatusOf(res.Err)

	attrs := []any{
		"method", r.Method,
		"path", r.URL.Path,
		"status", status,
		"error", res.Err,
	}

	if status == http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "request failed", attrs...)
	} else {
		slog.WarnContext(r.Context(), "request rejected", attrs...)
	}

	rd.Render(w, r, status, "error.html", Page{
		Title: "Erro",
		Data:  errorPage{Status: status, Message: apperr.Message(res.Err)},
	})
}

// Submit adapts a form action into a handler settled by Finish.
func (rd *Renderer) Submit(action func(r *http.Request) Result) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rd.Finish(w, r, action(r))
	}
}
