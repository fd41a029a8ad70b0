// Package web renders the back office pages and settles form submissions.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/autentke/autentke/internal/pricing"
)

//go:embed templates/*.html
var templatesFS embed.FS

const layoutFile = "templates/layout.html"

var funcs = template.FuncMap{
	"brl": pricing.FormatBRL,
	"dec": pricing.FormatDecimal,
	"brld": func(cents decimal.Decimal) string {
		return pricing.FormatBRL(cents.Round(0).IntPart())
	},
	"pct": func(f float64) string {
		return strings.Replace(decimal.NewFromFloat(f).StringFixed(1), ".", ",", 1) + "%"
	},
	"date": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}

		return t.Format("02/01/2006")
	},
	"input": pricing.FormatAmount,
}

// Renderer executes the embedded page templates. Each page is parsed together
// with the shared layout.
type Renderer struct {
	pages map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	files, err := fs.Glob(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("listing templates: %w", err)
	}

	pages := make(map[string]*template.Template)

	for _, f := range files {
		if f == layoutFile {
			continue
		}

		t, err := template.New("layout.html").Funcs(funcs).ParseFS(templatesFS, layoutFile, f)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", f, err)
		}

		pages[strings.TrimPrefix(f, "templates/")] = t
	}

	return &Renderer{pages: pages}, nil
}

// Page holds what every page shows besides its own data.
type Page struct {
	Title string
	Flash string
	Data  any
}

// Render writes page name with the given status. The page is rendered into a
// buffer first so a template error still yields a clean 500.
func (rd *Renderer) Render(w http.ResponseWriter, r *http.Request, status int, name string, page Page) {
	t, ok := rd.pages[name]
	if !ok {
		slog.ErrorContext(r.Context(), "unknown template", "template", name)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout.html", page); err != nil {
		slog.ErrorContext(r.Context(), "failed to render template", "template", name, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)

	if _, err := buf.WriteTo(w); err != nil {
		slog.ErrorContext(r.Context(), "failed to write response", "error", err)
	}
}
