package view

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/autentke/autentke/internal/pricing"
	"github.com/autentke/autentke/internal/product"
	"github.com/autentke/autentke/internal/report"
)

type salesState int

const (
	salesStateTimeframe salesState = iota
	salesStateList
	salesStateEditing
)

// saleItem wraps a sale line to implement list.Item.
type saleItem struct {
	line report.SaleLine
}

func (i saleItem) Title() string {
	kind := faintStyle.Render(fmt.Sprintf("[%s]", i.line.Kind))

	return fmt.Sprintf("%s  %s  %s  %s", FormatDate(i.line.SoldAt), FormatAmount(i.line.SalePrice), kind, i.line.Name)
}

func (i saleItem) Description() string {
	parts := []string{i.line.Buyer}

	for _, s := range []string{i.line.Channel, i.line.Campaign, i.line.PaymentMethod} {
		if s != "" {
			parts = append(parts, s)
		}
	}

	return fmt.Sprintf("%s | lucro %s", strings.Join(parts, " · "), FormatAmount(i.line.Profit))
}

func (i saleItem) FilterValue() string {
	return i.line.Name + " " + i.line.Buyer
}

// editForm holds the huh bindings for correcting a recorded sale.
type editForm struct {
	discount  string
	salePrice string
}

type SalesModel struct {
	CommonModel
	reports  *report.Service
	products *product.Service

	state           salesState
	timeframePicker TimeframePicker
	period          TimeframeSelectedMsg
	list            list.Model
	form            *huh.Form
	edit            *editForm
	sales           []report.SaleLine
	selected        *report.SaleLine

	loading bool
	status  string
}

func NewSalesModel(reports *report.Service, products *product.Service) SalesModel {
	l := list.New([]list.Item{}, saleItemDelegate{}, 0, 0)
	l.Title = "Vendas"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(true)

	return SalesModel{
		reports:         reports,
		products:        products,
		timeframePicker: NewTimeframePicker(TimeframeThisMonth),
		list:            l,
	}
}

func (m SalesModel) Title() string { return "Vendas" }

func (m SalesModel) ShortHelp() string {
	switch m.state {
	case salesStateTimeframe:
		return "Esc: voltar | Enter: selecionar"
	case salesStateList:
		return "Esc: voltar | Enter: corrigir | /: filtrar"
	case salesStateEditing:
		return "Esc: cancelar | Enter/Tab: navegar"
	}

	return ""
}

func (m SalesModel) Init() tea.Cmd {
	return nil
}

func (m SalesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TimeframeSelectedMsg:
		m.period = msg
		m.loading = true
		m.state = salesStateList
		m.list.Title = "Vendas: " + msg.Label

		return m, m.loadCmd()

	case loadSalesMsg:
		m.loading = false
		if msg.err != nil {
			m.status = errorStyle.Render(fmt.Sprintf("Erro: %v", msg.err))
			return m, nil
		}

		m.sales = msg.sales
		m.refreshListItems()

		if len(m.sales) == 0 {
			m.status = "Nenhuma venda no período."
		}

		return m, nil

	case saveSaleMsg:
		m.state = salesStateList
		m.form = nil
		m.edit = nil

		if msg.err != nil {
			m.status = errorStyle.Render(fmt.Sprintf("Erro ao salvar: %v", msg.err))
			return m, nil
		}

		m.status = "Venda corrigida."

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.list.SetSize(msg.Width-4, msg.Height-10)

		return m, nil
	}

	switch m.state {
	case salesStateTimeframe:
		return m.updateTimeframe(msg)
	case salesStateList:
		return m.updateList(msg)
	case salesStateEditing:
		return m.updateEditing(msg)
	}

	return m, nil
}

func (m SalesModel) updateTimeframe(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc && m.timeframePicker.IsSelecting() {
			return m, Back
		}
	}

	var cmd tea.Cmd
	m.timeframePicker, cmd = m.timeframePicker.Update(msg)

	return m, cmd
}

func (m SalesModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		switch keyMsg.Type {
		case tea.KeyEsc:
			m.state = salesStateTimeframe
			m.timeframePicker.Reset()
			m.status = ""

			return m, nil
		case tea.KeyEnter:
			return m.startEditing()
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)

	return m, cmd
}

func (m SalesModel) startEditing() (tea.Model, tea.Cmd) {
	item, ok := m.list.SelectedItem().(saleItem)
	if !ok {
		return m, nil
	}

	line := item.line
	m.selected = &line
	m.edit = &editForm{discount: pricing.FormatDecimal(line.Discount)}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("discount").
				Title("Desconto (%)").
				Value(&m.edit.discount).
				Validate(func(s string) error {
					if _, err := pricing.ParseDecimal(strings.TrimSuffix(s, "%")); err != nil {
						return fmt.Errorf("número inválido")
					}

					return nil
				}),

			huh.NewInput().
				Key("sale_price").
				Title("Preço manual (opcional)").
				Placeholder("vazio = preço ideal menos desconto").
				Value(&m.edit.salePrice).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}

					if _, err := pricing.ParseAmount(s); err != nil {
						return fmt.Errorf("valor inválido")
					}

					return nil
				}),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = salesStateEditing

	return m, m.form.Init()
}

func (m SalesModel) updateEditing(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = salesStateList
		m.form = nil
		m.edit = nil

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	save := m.saveCmd()

	m.state = salesStateList
	m.form = nil
	m.status = "Salvando..."

	return m, save
}

func (m SalesModel) View() string {
	switch m.state {
	case salesStateTimeframe:
		return lipgloss.NewStyle().Padding(1).Render(m.timeframePicker.View())

	case salesStateList:
		if m.loading {
			return lipgloss.NewStyle().Padding(2).Render("Carregando vendas...")
		}

		statusLine := ""
		if m.status != "" {
			statusLine = faintStyle.Render(m.status) + "\n"
		}

		return lipgloss.NewStyle().Padding(1).Render(statusLine + m.totalsView() + "\n" + m.list.View())

	case salesStateEditing:
		if m.form == nil || m.selected == nil {
			return ""
		}

		return lipgloss.NewStyle().Padding(1).Render(m.saleInfoView() + "\n" + m.form.View())
	}

	return ""
}

func (m SalesModel) totalsView() string {
	var revenue, profit int64
	for _, s := range m.sales {
		revenue += s.SalePrice
		profit += s.Profit
	}

	return fmt.Sprintf("%d venda(s) | faturamento %s | lucro bruto %s",
		len(m.sales), activeStyle(FormatAmount(revenue)), amountStyle(profit))
}

func (m SalesModel) saleInfoView() string {
	s := m.selected

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1).
		Render(fmt.Sprintf(
			"%s  |  %s  |  %s\nCliente: %s  |  Custo + rateio: %s",
			s.Name,
			FormatDate(s.SoldAt),
			FormatAmount(s.SalePrice),
			s.Buyer,
			FormatAmount(s.UnitCost),
		))
}

func (m *SalesModel) refreshListItems() {
	items := make([]list.Item, len(m.sales))
	for i, s := range m.sales {
		items[i] = saleItem{line: s}
	}

	m.list.SetItems(items)
}

// Messages

type loadSalesMsg struct {
	sales []report.SaleLine
	err   error
}

func (m SalesModel) loadCmd() tea.Cmd {
	period := m.period

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		h, err := m.reports.History(ctx)
		if err != nil {
			return loadSalesMsg{err: err}
		}

		sales := make([]report.SaleLine, 0, len(h.Sales))
		for _, s := range h.Sales {
			if period.Contains(s.SoldAt) {
				sales = append(sales, s)
			}
		}

		return loadSalesMsg{sales: sales}
	}
}

type saveSaleMsg struct {
	err error
}

func (m SalesModel) saveCmd() tea.Cmd {
	line := *m.selected
	edit := *m.edit

	return func() tea.Msg {
		discount, err := pricing.ParseDecimal(strings.TrimSuffix(edit.discount, "%"))
		if err != nil {
			return saveSaleMsg{err: err}
		}

		params := product.EditParams{
			Name:     line.Name,
			Photo:    line.Photo,
			BaseCost: line.BaseCost,
			Markup:   line.Markup,
			Discount: discount,
		}

		if s := strings.TrimSpace(edit.salePrice); s != "" {
			price, err := pricing.ParseAmount(s)
			if err != nil {
				return saveSaleMsg{err: err}
			}

			params.SalePrice = &price
		}

		ctx, cancel := DbCtx()
		defer cancel()

		_, err = m.products.Edit(ctx, line.ID, params)

		return saveSaleMsg{err: err}
	}
}

// saleItemDelegate renders sales in the list.
type saleItemDelegate struct{}

func (d saleItemDelegate) Height() int                             { return 2 }
func (d saleItemDelegate) Spacing() int                            { return 0 }
func (d saleItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d saleItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(saleItem)
	if !ok {
		return
	}

	title := i.Title()
	if index == m.Index() {
		title = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true).Render("> " + title)
	}

	fmt.Fprintf(w, "  %s\n", title)
	fmt.Fprintf(w, "    %s\n", faintStyle.Render(i.Description()))
}
