package view

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/autentke/autentke/internal/collection"
	"github.com/autentke/autentke/internal/importer"
)

const importTimeout = 2 * time.Minute

type importState int

const (
	importStateCollectionSelect importState = iota
	importStateFilePick
	importStateImporting
	importStateResult
)

// ImportModel loads a supplier packing list into one collection.
type ImportModel struct {
	CommonModel
	collectionService *collection.Service
	importService     *importer.Service

	state       importState
	filePicker  filepicker.Model
	collections []*collection.Collection
	cursor      int
	target      *collection.Collection

	status string
	err    error
}

func NewImportModel(collectionSvc *collection.Service, impSvc *importer.Service) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.AllowedTypes = []string{".csv", ".txt"}
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	return ImportModel{
		collectionService: collectionSvc,
		importService:     impSvc,
		filePicker:        fp,
		status:            "Carregando coleções...",
	}
}

func (m ImportModel) Title() string { return "Importar lista de compra" }

func (m ImportModel) ShortHelp() string {
	return "Esc: voltar | Enter: selecionar"
}

func (m ImportModel) Init() tea.Cmd {
	return m.loadCollectionsCmd()
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.handleEsc()
		}

		if m.state == importStateCollectionSelect {
			return m.updateCollectionSelect(msg)
		}

	case loadCollectionsMsg:
		if msg.err != nil {
			m.err = msg.err
			m.status = fmt.Sprintf("Erro: %v", msg.err)

			return m, nil
		}

		m.collections = msg.collections
		m.status = ""

		return m, nil

	case importResultMsg:
		m.state = importStateResult

		if msg.err != nil {
			m.err = msg.err
			m.status = fmt.Sprintf("Erro: %v", msg.err)

			if msg.result != nil && msg.result.Products > 0 {
				m.status += fmt.Sprintf("\n%d produto(s) já cadastrado(s) antes da falha.", msg.result.Products)
			}

			return m, nil
		}

		m.status = fmt.Sprintf("%d produto(s) importado(s) de %d linha(s) em %s.",
			msg.result.Products, msg.result.Lines, m.target.Name)

		return m, nil
	}

	if m.state != importStateFilePick {
		return m, nil
	}

	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		m.state = importStateImporting
		m.status = fmt.Sprintf("Importando %s...", path)

		return m, m.importCmd(path)
	}

	return m, cmd
}

func (m ImportModel) handleEsc() (tea.Model, tea.Cmd) {
	switch m.state {
	case importStateFilePick:
		m.state = importStateCollectionSelect
		return m, nil
	case importStateResult:
		m.state = importStateCollectionSelect
		m.err = nil
		m.status = ""

		return m, nil
	}

	return m, Back
}

func (m ImportModel) updateCollectionSelect(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case tea.KeyDown:
		if m.cursor < len(m.collections)-1 {
			m.cursor++
		}
	case tea.KeyEnter:
		if len(m.collections) == 0 {
			return m, nil
		}

		m.target = m.collections[m.cursor]
		m.state = importStateFilePick

		return m, m.filePicker.Init()
	}

	return m, nil
}

func (m ImportModel) View() string {
	switch m.state {
	case importStateCollectionSelect:
		return m.viewCollectionSelect()
	case importStateFilePick:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("Arquivo da lista para %s:\n\n%s", m.target.Name, m.filePicker.View()),
		)
	case importStateImporting:
		return lipgloss.NewStyle().Padding(2).Render(m.status)
	case importStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ImportModel) viewCollectionSelect() string {
	if m.status != "" {
		return lipgloss.NewStyle().Padding(2).Render(m.status)
	}

	if len(m.collections) == 0 {
		return lipgloss.NewStyle().Padding(2).Render("Nenhuma coleção cadastrada. Crie uma pelo painel web.\n\n(Esc para voltar)")
	}

	s := "Coleção de destino:\n\n"

	for i, c := range m.collections {
		cursor := " "
		if i == m.cursor {
			cursor = ">"
		}

		s += fmt.Sprintf("%s %s  %s\n", cursor, c.Name,
			faintStyle.Render(fmt.Sprintf("(%d peças, rateio %s)", c.Pieces, FormatAmount(c.Rateio().Round(0).IntPart()))))
	}

	return lipgloss.NewStyle().Padding(2).Render(s)
}

func (m ImportModel) viewResult() string {
	style := lipgloss.NewStyle().Padding(2)
	if m.err != nil {
		return style.Render(errorStyle.Render(m.status) + "\n\n(Esc para voltar)")
	}

	return style.Render(successStyle.Render(m.status) + "\n\n(Esc para voltar)")
}

// Messages

type loadCollectionsMsg struct {
	collections []*collection.Collection
	err         error
}

func (m ImportModel) loadCollectionsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		cs, err := m.collectionService.List(ctx)

		return loadCollectionsMsg{collections: cs, err: err}
	}
}

type importResultMsg struct {
	result *importer.Result
	err    error
}

func (m ImportModel) importCmd(path string) tea.Cmd {
	target := m.target

	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return importResultMsg{err: err}
		}
		defer f.Close()

		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		res, err := m.importService.Import(ctx, target.ID, f)

		return importResultMsg{result: res, err: err}
	}
}
