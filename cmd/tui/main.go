package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/autentke/autentke/cmd/tui/internal/view"
	"github.com/autentke/autentke/internal/app"
	"github.com/autentke/autentke/internal/config"
)

type model struct {
	app *app.App

	currentView View
	active      view.View
}

type View int

const (
	ViewMenu View = iota
	ViewDashboard
	ViewStock
	ViewSales
	ViewImport
	ViewGoal
	ViewExport
)

var menu = []struct {
	key  string
	view View
	name string
}{
	{"1", ViewDashboard, "Painel"},
	{"2", ViewStock, "Estoque e vendas"},
	{"3", ViewSales, "Histórico de vendas"},
	{"4", ViewImport, "Importar lista de compra"},
	{"5", ViewGoal, "Meta do mês"},
	{"6", ViewExport, "Exportar relatório"},
}

func initialModel(a *app.App) model {
	return model{app: a, currentView: ViewMenu}
}

func (m model) open(v View) view.View {
	switch v {
	case ViewDashboard:
		return view.NewDashboardModel(m.app.Reports)
	case ViewStock:
		return view.NewStockModel(m.app.Reports, m.app.Products)
	case ViewSales:
		return view.NewSalesModel(m.app.Reports, m.app.Products)
	case ViewImport:
		return view.NewImportModel(m.app.Collections, m.app.Imports)
	case ViewGoal:
		return view.NewGoalModel(m.app.Goals, m.app.Reports)
	case ViewExport:
		return view.NewExportModel(m.app.Exports, m.app.Reports)
	}

	return nil
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			if msg.String() == "q" {
				return m, tea.Quit
			}

			for _, item := range menu {
				if msg.String() == item.key {
					m.currentView = item.view
					m.active = m.open(item.view)

					return m, m.active.Init()
				}
			}

			return m, nil
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		m.active = nil

		return m, nil
	}

	if m.active == nil {
		return m, nil
	}

	next, cmd := m.active.Update(msg)
	if v, ok := next.(view.View); ok {
		m.active = v
	}

	return m, cmd
}

func (m model) View() string {
	if m.currentView == ViewMenu || m.active == nil {
		s := m.app.StoreName + "\n\n"
		for _, item := range menu {
			s += item.key + ". " + item.name + "\n"
		}

		return lipgloss.NewStyle().Padding(2).Render(s + "\nq. Sair")
	}

	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).Render(m.active.Title())
	help := lipgloss.NewStyle().Faint(true).Render(m.active.ShortHelp())

	return lipgloss.JoinVertical(lipgloss.Left, title, m.active.View(), help)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	a, err := app.New(context.Background(), cfg)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	// Log lines would corrupt the terminal UI.
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))

	p := tea.NewProgram(initialModel(a), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to run TUI: %v\n", err)
		a.Close()
		os.Exit(1)
	}
}
