package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"pet-manager-admin/internal/domain/photos"
)

type tutorsLoadedMsg struct{}

// TutorsModel es el listado paginado de tutores. A diferencia de los
// pets, el API no ofrece búsqueda por nombre acá.
type TutorsModel struct {
	deps   *Deps
	styles Styles

	cursor int
}

func NewTutorsModel(deps *Deps, st Styles) TutorsModel {
	return TutorsModel{deps: deps, styles: st}
}

func (m *TutorsModel) enter(page int) tea.Cmd {
	m.cursor = 0
	return m.loadCmd(page)
}

func (m *TutorsModel) loadCmd(page int) tea.Cmd {
	f := m.deps.Tutors
	return func() tea.Msg {
		f.List(context.Background(), page)
		return tutorsLoadedMsg{}
	}
}

func (m TutorsModel) Update(msg tea.Msg) (TutorsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tutorsLoadedMsg:
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m TutorsModel) handleKey(msg tea.KeyMsg) (TutorsModel, tea.Cmd) {
	st := m.deps.Tutors.State()
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(st.Items)-1 {
			m.cursor++
		}
	case "enter":
		if m.cursor < len(st.Items) {
			return m, navToID(pageTutorDetail, st.Items[m.cursor].ID)
		}
	case "left", "h":
		if st.Pagination.Page > 0 {
			m.cursor = 0
			return m, m.loadCmd(st.Pagination.Page - 1)
		}
	case "right", "l":
		if st.Pagination.Page < st.Pagination.TotalPages-1 {
			m.cursor = 0
			return m, m.loadCmd(st.Pagination.Page + 1)
		}
	case "n":
		return m, navToID(pageTutorForm, 0)
	case "r":
		return m, m.loadCmd(st.Pagination.Page)
	case "esc", "q":
		return m, navTo(pageHome)
	}
	return m, nil
}

func (m TutorsModel) View() string {
	st := m.deps.Tutors.State()

	var b strings.Builder
	b.WriteString(m.styles.Header.Render("Tutores"))
	b.WriteString("\n\n")

	if st.Busy {
		b.WriteString(m.styles.Dim.Render("Carregando..."))
		b.WriteString("\n")
	}
	if st.Err != "" {
		b.WriteString(m.styles.Error.Render(st.Err))
		b.WriteString("\n")
	}

	if len(st.Items) == 0 && !st.Busy {
		b.WriteString(m.styles.Dim.Render("Nenhum tutor encontrado."))
		b.WriteString("\n")
	} else {
		b.WriteString(m.styles.Label.Render(fmt.Sprintf("%-5s %-20s %-15s %-25s %s", "ID", "Nome", "Telefone", "Endereço", "Foto")))
		b.WriteString("\n")
		for i, t := range st.Items {
			badge := "—"
			if photos.StaticURL(t.Photos) != "" {
				badge = "✓"
			}
			row := fmt.Sprintf("%-5d %-20s %-15s %-25s %s",
				t.ID, clip(t.Name, 20), clip(t.Phone, 15), clip(t.Address, 25), badge)
			if i == m.cursor {
				b.WriteString(m.styles.Selected.Render(row))
			} else {
				b.WriteString(m.styles.Value.Render(row))
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Dim.Render(paginationLine(st.Pagination.Page, st.Pagination.TotalPages, st.Pagination.TotalElements)))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Help.Render("↑/↓: navegar • enter: detalhes • ←/→: página • n: novo tutor • r: recarregar • esc: voltar"))
	return b.String()
}
