package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/autentke/autentke/internal/pricing"
	"github.com/autentke/autentke/internal/product"
	"github.com/autentke/autentke/internal/report"
)

type stockState int

const (
	stockStateBrowse stockState = iota
	stockStateSell
)

// saleForm holds the huh bindings; it lives behind a pointer so the form
// keeps writing to the same values while the model is copied around.
type saleForm struct {
	buyer    string
	contact  string
	payment  string
	channel  string
	campaign string
	discount string
	promo    bool
}

func (f *saleForm) params() (product.SellParams, error) {
	params := product.SellParams{
		Buyer:         f.buyer,
		BuyerContact:  f.contact,
		PaymentMethod: f.payment,
		Channel:       f.channel,
		Campaign:      f.campaign,
		Promo:         f.promo,
	}

	if s := strings.TrimSpace(strings.TrimSuffix(f.discount, "%")); s != "" {
		d, err := pricing.ParseDecimal(s)
		if err != nil {
			return product.SellParams{}, fmt.Errorf("desconto inválido %q", f.discount)
		}

		params.Discount = &d
	}

	return params, nil
}

var (
	paymentMethods = []string{"Pix", "Cartão de crédito", "Cartão de débito", "Dinheiro"}
	salesChannels  = []string{"Instagram", "WhatsApp", "Tráfego Pago", "Indicação", "Loja"}
)

type StockModel struct {
	CommonModel
	reports  *report.Service
	products *product.Service

	state stockState
	table table.Model
	items []report.StockItem
	form  *huh.Form
	sale  *saleForm

	loading bool
	err     error
	status  string
}

func NewStockModel(reports *report.Service, products *product.Service) StockModel {
	columns := []table.Column{
		{Title: "Produto", Width: 28},
		{Title: "Coleção", Width: 18},
		{Title: "Custo + rateio", Width: 14},
		{Title: "Markup", Width: 7},
		{Title: "Preço", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return StockModel{
		reports:  reports,
		products: products,
		table:    t,
		loading:  true,
	}
}

func (m StockModel) Title() string { return "Estoque" }

func (m StockModel) ShortHelp() string {
	if m.state == stockStateSell {
		return "Navegue pelo formulário | Esc: cancelar"
	}

	return "Esc: voltar | Enter: vender | a: arquivar vendidos | r: atualizar"
}

func (m StockModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m StockModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadStockMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.items = msg.items
		m.refreshTable()

		return m, nil

	case stockActionMsg:
		m.status = msg.status
		if msg.err != nil {
			m.status = errorStyle.Render(fmt.Sprintf("Erro: %v", msg.err))
		}

		m.state = stockStateBrowse
		m.form = nil
		m.sale = nil
		m.table.Focus()

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.table.SetHeight(max(msg.Height-10, 5))

		return m, nil
	}

	switch m.state {
	case stockStateBrowse:
		return m.updateBrowse(msg)
	case stockStateSell:
		return m.updateSell(msg)
	}

	return m, nil
}

func (m StockModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "a":
			return m, m.archiveCmd()
		case "enter", "v":
			return m.enterSellMode()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m StockModel) enterSellMode() (tea.Model, tea.Cmd) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.items) {
		return m, nil
	}

	m.sale = &saleForm{payment: paymentMethods[0], channel: salesChannels[0]}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("buyer").
				Title("Cliente").
				Value(&m.sale.buyer).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("informe o cliente")
					}

					return nil
				}),

			huh.NewInput().
				Key("contact").
				Title("Contato").
				Placeholder("@instagram ou telefone").
				Value(&m.sale.contact),

			huh.NewSelect[string]().
				Key("payment").
				Title("Pagamento").
				Options(huh.NewOptions(paymentMethods...)...).
				Value(&m.sale.payment),

			huh.NewSelect[string]().
				Key("channel").
				Title("Canal").
				Options(huh.NewOptions(salesChannels...)...).
				Value(&m.sale.channel),
		),
		huh.NewGroup(
			huh.NewInput().
				Key("campaign").
				Title("Campanha").
				Value(&m.sale.campaign),

			huh.NewInput().
				Key("discount").
				Title("Desconto (%)").
				Placeholder("vazio = sem desconto").
				Value(&m.sale.discount).
				Validate(func(s string) error {
					s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
					if s == "" {
						return nil
					}

					if _, err := pricing.ParseDecimal(s); err != nil {
						return fmt.Errorf("número inválido")
					}

					return nil
				}),

			huh.NewConfirm().
				Key("promo").
				Title("Venda promocional?").
				Description("Aplica o desconto de promoção quando nenhum desconto é informado").
				Value(&m.sale.promo),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = stockStateSell
	m.table.Blur()

	return m, m.form.Init()
}

func (m StockModel) updateSell(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = stockStateBrowse
		m.form = nil
		m.sale = nil
		m.table.Focus()

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	sell := m.sellCmd()

	m.state = stockStateBrowse
	m.form = nil
	m.sale = nil
	m.status = "Registrando venda..."
	m.table.Focus()

	return m, sell
}

func (m StockModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Carregando estoque...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle.Render(fmt.Sprintf("Erro: %v", m.err)))
	}

	header := fmt.Sprintf("%s peça(s) em estoque", activeStyle(fmt.Sprint(len(m.items))))

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if m.state == stockStateSell && m.form != nil {
		item := m.items[m.table.Cursor()]

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(fmt.Sprintf("Vender %s\nPreço: %s\n\n%s", item.Name, FormatAmount(item.SalePrice), m.form.View()))

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = faintStyle.Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *StockModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.items))
	for _, it := range m.items {
		rows = append(rows, table.Row{
			it.Name,
			it.CollectionName,
			FormatAmount(it.UnitCost),
			pricing.FormatDecimal(it.Markup),
			FormatAmount(it.SalePrice),
		})
	}

	m.table.SetRows(rows)
}

// Messages

type loadStockMsg struct {
	items []report.StockItem
	err   error
}

func (m StockModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		d, err := m.reports.Dashboard(ctx)
		if err != nil {
			return loadStockMsg{err: err}
		}

		return loadStockMsg{items: d.Stock}
	}
}

type stockActionMsg struct {
	status string
	err    error
}

func (m StockModel) sellCmd() tea.Cmd {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.items) || m.sale == nil {
		return nil
	}

	item := m.items[idx]
	sale := m.sale

	return func() tea.Msg {
		params, err := sale.params()
		if err != nil {
			return stockActionMsg{err: err}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		p, err := m.products.Sell(ctx, item.ID, params)
		if err != nil {
			return stockActionMsg{err: err}
		}

		return stockActionMsg{status: fmt.Sprintf("%s vendido para %s por %s (desconto %s%%)",
			p.Name, p.Sale.Buyer, FormatAmount(p.Price()), pricing.FormatDecimal(p.Sale.Discount))}
	}
}

func (m StockModel) archiveCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		n, err := m.products.ArchiveSold(ctx)
		if err != nil {
			return stockActionMsg{err: err}
		}

		return stockActionMsg{status: fmt.Sprintf("%d produto(s) vendido(s) arquivado(s)", n)}
	}
}
