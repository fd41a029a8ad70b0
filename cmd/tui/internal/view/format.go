package view

import (
	"context"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/autentke/autentke/internal/pricing"
)

const dbTimeout = 5 * time.Second

// FormatAmount formats cents as Brazilian currency.
func FormatAmount(cents int64) string {
	return pricing.FormatBRL(cents)
}

// FormatDate formats a time.Time as DD/MM/YYYY.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}

	return t.Format("02/01/2006")
}

// DbCtx returns a context with a standard timeout for database operations.
func DbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	faintStyle   = lipgloss.NewStyle().Faint(true)
)

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

func amountStyle(cents int64) string {
	if cents < 0 {
		return errorStyle.Render(FormatAmount(cents))
	}

	return FormatAmount(cents)
}
