package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/autentke/autentke/internal/report"
)

var cardStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("63")).
	Padding(0, 1).
	Width(22)

// DashboardModel is a read-only overview of the shop.
type DashboardModel struct {
	CommonModel
	reports *report.Service

	dashboard *report.Dashboard
	bar       progress.Model

	loading bool
	err     error
}

func NewDashboardModel(reports *report.Service) DashboardModel {
	return DashboardModel{
		reports: reports,
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithWidth(60)),
		loading: true,
	}
}

func (m DashboardModel) Title() string { return "Painel" }

func (m DashboardModel) ShortHelp() string { return "Esc: voltar | r: atualizar" }

func (m DashboardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		}

	case loadDashboardMsg:
		m.loading = false
		m.err = msg.err
		m.dashboard = msg.dashboard

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.bar.Width = max(min(msg.Width-8, 80), 20)
	}

	return m, nil
}

func (m DashboardModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Carregando painel...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle.Render(fmt.Sprintf("Erro: %v", m.err)) + "\n\n(Esc para voltar)")
	}

	d := m.dashboard
	s := d.Summary

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		card("Faturamento", FormatAmount(s.Revenue)),
		card("Lucro bruto", amountStyle(s.GrossProfit)),
		card("Despesas", FormatAmount(s.TotalExpenses)),
		card("Lucro final", amountStyle(s.NetProfit)),
	)

	counts := fmt.Sprintf("%d venda(s) | ticket médio %s | %d peça(s) em estoque",
		s.SoldCount, FormatAmount(s.AverageTicket), s.StockCount)

	goalLine := fmt.Sprintf("Meta %s: %s de %s (%.2f%%)", d.Goal.Month,
		FormatAmount(d.Goal.Revenue), FormatAmount(d.Goal.Target), d.Goal.Percent)
	if d.Goal.Default {
		goalLine += faintStyle.Render(" meta padrão")
	}

	sections := []string{
		lipgloss.NewStyle().Bold(true).Render(d.StoreName),
		cards,
		counts,
		"",
		goalLine,
		m.bar.ViewAs(min(d.Goal.Percent/100, 1)),
		"",
		buckets("Canais", d.Channels),
		buckets("Campanhas", d.Campaigns),
		buyers(d.TopBuyers),
	}

	return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func card(title, value string) string {
	return cardStyle.Render(faintStyle.Render(title) + "\n" + value)
}

func buckets(title string, bs []report.Bucket) string {
	if len(bs) == 0 {
		return ""
	}

	var sb strings.Builder

	sb.WriteString(activeStyle(title) + "\n")

	for _, b := range bs {
		fmt.Fprintf(&sb, "  %-20s %3d  %14s  %6.2f%%\n", b.Name, b.Count, FormatAmount(b.Amount), b.Percent)
	}

	return sb.String()
}

func buyers(bs []report.Buyer) string {
	if len(bs) == 0 {
		return ""
	}

	var sb strings.Builder

	sb.WriteString(activeStyle("Melhores clientes") + "\n")

	for i, b := range bs {
		fmt.Fprintf(&sb, "  %d. %-24s %2d compra(s)  %s\n", i+1, b.Name, b.Count, FormatAmount(b.Amount))
	}

	return sb.String()
}

type loadDashboardMsg struct {
	dashboard *report.Dashboard
	err       error
}

func (m DashboardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		d, err := m.reports.Dashboard(ctx)

		return loadDashboardMsg{dashboard: d, err: err}
	}
}
