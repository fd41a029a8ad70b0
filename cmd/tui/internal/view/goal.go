package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/autentke/autentke/internal/goal"
	"github.com/autentke/autentke/internal/pricing"
	"github.com/autentke/autentke/internal/report"
)

// GoalModel shows the current month's progress and sets a new target.
type GoalModel struct {
	CommonModel
	goals   *goal.Service
	reports *report.Service

	progress    *report.GoalProgress
	targetInput textinput.Model

	loading bool
	status  string
	err     error
}

func NewGoalModel(goals *goal.Service, reports *report.Service) GoalModel {
	ti := textinput.New()
	ti.Placeholder = "5.000,00"
	ti.Prompt = "Nova meta: R$ "
	ti.Width = 20
	ti.Focus()

	return GoalModel{
		goals:       goals,
		reports:     reports,
		targetInput: ti,
		loading:     true,
	}
}

func (m GoalModel) Title() string { return "Meta do mês" }

func (m GoalModel) ShortHelp() string { return "Enter: salvar | Esc: voltar" }

func (m GoalModel) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), textinput.Blink)
}

func (m GoalModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc:
			return m, Back
		case tea.KeyEnter:
			target, err := pricing.ParseAmount(m.targetInput.Value())
			if err != nil {
				m.status = errorStyle.Render("Valor inválido")
				return m, nil
			}

			return m, m.saveCmd(target)
		}

	case loadGoalMsg:
		m.loading = false
		m.err = msg.err
		m.progress = msg.progress

		return m, nil

	case goalSavedMsg:
		if msg.err != nil {
			m.status = errorStyle.Render(fmt.Sprintf("Erro: %v", msg.err))
			return m, nil
		}

		m.status = successStyle.Render(fmt.Sprintf("Meta de %s definida em %s", msg.goal.Month, FormatAmount(msg.goal.Target)))
		m.targetInput.SetValue("")

		return m, m.loadCmd()
	}

	m.targetInput, cmd = m.targetInput.Update(msg)

	return m, cmd
}

func (m GoalModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Carregando meta...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle.Render(fmt.Sprintf("Erro: %v", m.err)) + "\n\n(Esc para voltar)")
	}

	p := m.progress

	origin := ""
	if p.Default {
		origin = faintStyle.Render(" (meta padrão)")
	}

	info := fmt.Sprintf(
		"Mês: %s\nMeta: %s%s\nFaturamento: %s\nProgresso: %s\n",
		p.Month,
		FormatAmount(p.Target),
		origin,
		FormatAmount(p.Revenue),
		activeStyle(fmt.Sprintf("%.2f%%", p.Percent)),
	)

	s := info + "\n" + m.targetInput.View()
	if m.status != "" {
		s += "\n\n" + m.status
	}

	return lipgloss.NewStyle().Padding(2).Render(s)
}

type loadGoalMsg struct {
	progress *report.GoalProgress
	err      error
}

func (m GoalModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		d, err := m.reports.Dashboard(ctx)
		if err != nil {
			return loadGoalMsg{err: err}
		}

		return loadGoalMsg{progress: &d.Goal}
	}
}

type goalSavedMsg struct {
	goal *goal.Goal
	err  error
}

func (m GoalModel) saveCmd(target int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		g, err := m.goals.Set(ctx, "", target)

		return goalSavedMsg{goal: g, err: err}
	}
}
